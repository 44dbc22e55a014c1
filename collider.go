package nphase

import (
	"github.com/setanarut/vec"
)

// Collider is the read-only view of a collider the narrow phase works with.
type Collider struct {
	Entity Entity
	Shape  Shape
	// Pose is the world transform of the collider. It must be rigid.
	Pose Transform
	// Body is the owning rigid body, or InvalidEntity for a collider without one.
	Body Entity

	// Optional overrides. Nil falls back to the body, then to the global default.
	Friction          *Friction
	Restitution       *Restitution
	CollisionMargin   *float64
	SpeculativeMargin *float64

	// Sensor colliders report contacts but never generate constraints.
	Sensor bool
	// SurfaceVelocity is the tangential velocity of the surface, used for conveyor belts.
	SurfaceVelocity vec.Vec2
	ActiveHooks     ActiveHooks
}

// NewCollider returns a collider for shape at pose, attached to body.
func NewCollider(entity Entity, shape Shape, pose Transform, body Entity) *Collider {
	return &Collider{
		Entity: entity,
		Shape:  shape,
		Pose:   pose,
		Body:   body,
	}
}

// HasBody reports whether the collider is attached to a rigid body.
func (c *Collider) HasBody() bool {
	return c.Body.Valid()
}

// BB returns the world bounding box of the collider.
func (c *Collider) BB() BB {
	return c.Shape.BB(c.Pose)
}
