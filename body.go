package nphase

import (
	"fmt"

	"github.com/setanarut/vec"
)

// BodyType for bodies; Dynamic, Kinematic or Static
type BodyType uint8

const (
	Dynamic   BodyType = 0
	Kinematic BodyType = 1
	Static    BodyType = 2
)

func (bt BodyType) String() string {
	switch bt {
	case Dynamic:
		return "Dynamic"
	case Kinematic:
		return "Kinematic"
	case Static:
		return "Static"
	default:
		return fmt.Sprintf("BodyType(%d)", uint8(bt))
	}
}

// RigidBody is the read-only view of a body the narrow phase works with.
type RigidBody struct {
	Entity Entity
	Type   BodyType

	// Position is the world space center of gravity.
	Position        vec.Vec2
	LinearVelocity  vec.Vec2
	AngularVelocity float64

	// Inverse mass and inverse moment of inertia. Zero means infinite.
	InverseMass    float64
	InverseInertia float64

	Sleeping bool
	Sensor   bool

	// Optional overrides used when the collider does not specify its own.
	Friction          *Friction
	Restitution       *Restitution
	CollisionMargin   *float64
	SpeculativeMargin *float64
}

// String returns body entity and type as string
func (body RigidBody) String() string {
	return fmt.Sprint("Body ", body.Entity, ", ", body.Type)
}

// NewBody returns a dynamic body with the given mass and moment of inertia.
//
// Guessing the moment of inertia is usually a bad idea. Use the moment estimation functions MomentFor*().
func NewBody(entity Entity, mass, moment float64) *RigidBody {
	body := &RigidBody{Entity: entity, Type: Dynamic}
	body.SetMass(mass)
	body.SetMoment(moment)
	return body
}

// NewStaticBody returns a static body.
func NewStaticBody(entity Entity) *RigidBody {
	return &RigidBody{Entity: entity, Type: Static}
}

// NewKinematicBody returns a kinematic body.
func NewKinematicBody(entity Entity) *RigidBody {
	return &RigidBody{Entity: entity, Type: Kinematic}
}

// SetMass sets mass of the body
func (body *RigidBody) SetMass(mass float64) {
	body.InverseMass = 1 / mass
}

// SetMoment sets moment of inertia of the body.
func (body *RigidBody) SetMoment(moment float64) {
	body.InverseInertia = 1 / moment
}

func (body *RigidBody) IsDynamic() bool {
	return body.Type == Dynamic
}

func (body *RigidBody) IsStatic() bool {
	return body.Type == Static
}

// IsActive reports whether the body is neither static nor sleeping.
func (body *RigidBody) IsActive() bool {
	return !body.IsStatic() && !body.Sleeping
}

// effectiveMass returns the inverse mass and inertia the contact solver sees.
// Only awake dynamic bodies respond to contact impulses.
func (body *RigidBody) effectiveMass() (float64, float64) {
	if !body.IsDynamic() || body.Sleeping {
		return 0, 0
	}
	return body.InverseMass, body.InverseInertia
}

// VelocityAtWorldPoint returns the velocity of a point on a body.
//
// Get the world (absolute) velocity of a point on a rigid body specified in world coordinates.
func (body *RigidBody) VelocityAtWorldPoint(point vec.Vec2) vec.Vec2 {
	return body.velocityAtOffset(point.Sub(body.Position))
}

func (body *RigidBody) velocityAtOffset(r vec.Vec2) vec.Vec2 {
	return body.LinearVelocity.Add(r.Perp().Scale(body.AngularVelocity))
}

func kScalarBody(invMass, invInertia float64, r, n vec.Vec2) float64 {
	rcn := r.Cross(n)
	return invMass + invInertia*rcn*rcn
}
