package nphase

import (
	"github.com/setanarut/vec"
)

// ConstraintPoint is the solver data of one contact point.
type ConstraintPoint struct {
	// ContactIndex is the index of the source point in its manifold.
	ContactIndex int

	// World space offsets of the contact from each body's center of gravity.
	Anchor1, Anchor2 vec.Vec2

	// Effective masses along the normal and tangent.
	NormalMass, TangentMass float64

	// Warm start impulses, and the impulses accumulated by the solver.
	NormalImpulse, TangentImpulse float64

	// NormalSpeed is the relative velocity along the normal before solving, used for restitution.
	NormalSpeed float64

	// InitialSeparation is the separation minus the distance between the world contact
	// points along the normal. The solver adds the current distance to recover the separation.
	InitialSeparation float64
}

// ContactConstraint is the solver payload of one contact manifold.
type ContactConstraint struct {
	Collider1, Collider2 Entity
	Body1, Body2         Entity
	ManifoldIndex        int

	Normal, Tangent vec.Vec2
	Points          []ConstraintPoint

	Friction     float64
	Restitution  float64
	TangentSpeed float64

	Softness SoftnessCoefficients

	// CollisionMargin is the combined collision margin of both colliders.
	CollisionMargin float64
	// SpeculativeMargin bounds the separation of solved points. math.MaxFloat64 means unbounded.
	SpeculativeMargin float64
	// WarmStart is set when impulses were carried over from the previous step.
	WarmStart bool
}

// Key returns the registry key of the constraint's pair.
func (c *ContactConstraint) Key() PairKey {
	return NewPairKey(c.Collider1, c.Collider2)
}

// constraintInput is everything needed to turn a manifold into a constraint.
type constraintInput struct {
	collider1, collider2 *Collider
	body1, body2         *RigidBody
	collisionMargin      float64
	speculativeMargin    float64
	softness             SoftnessCoefficients
	warmStart            bool
}

// newContactConstraint builds the constraint of manifold.
// Points with no effective mass, or beyond a finite speculative margin, are left out.
func newContactConstraint(manifold *ContactManifold, in *constraintInput) ContactConstraint {
	normal := manifold.Normal
	tangent := manifold.Tangent()

	constraint := ContactConstraint{
		Collider1:         in.collider1.Entity,
		Collider2:         in.collider2.Entity,
		Body1:             in.body1.Entity,
		Body2:             in.body2.Entity,
		ManifoldIndex:     manifold.Index,
		Normal:            normal,
		Tangent:           tangent,
		Points:            make([]ConstraintPoint, 0, len(manifold.Points)),
		Friction:          manifold.Friction,
		Restitution:       manifold.Restitution,
		TangentSpeed:      manifold.TangentSpeed,
		Softness:          in.softness,
		CollisionMargin:   in.collisionMargin,
		SpeculativeMargin: in.speculativeMargin,
		WarmStart:         in.warmStart,
	}

	im1, ii1 := in.body1.effectiveMass()
	im2, ii2 := in.body2.effectiveMass()

	for i, contact := range manifold.Points {
		if in.speculativeMargin < infinity && contact.Distance-in.collisionMargin > in.speculativeMargin {
			continue
		}

		p1 := in.collider1.Pose.Apply(contact.LocalPoint1)
		p2 := in.collider2.Pose.Apply(contact.LocalPoint2)
		r1 := p1.Sub(in.body1.Position)
		r2 := p2.Sub(in.body2.Position)

		// Calculate the mass normal and mass tangent.
		kn := kScalarBody(im1, ii1, r1, normal) + kScalarBody(im2, ii2, r2, normal)
		if kn <= 0 {
			continue
		}
		var tMass float64
		if kt := kScalarBody(im1, ii1, r1, tangent) + kScalarBody(im2, ii2, r2, tangent); kt > 0 {
			tMass = 1 / kt
		}

		point := ConstraintPoint{
			ContactIndex:      i,
			Anchor1:           r1,
			Anchor2:           r2,
			NormalMass:        1 / kn,
			TangentMass:       tMass,
			NormalSpeed:       in.body2.velocityAtOffset(r2).Sub(in.body1.velocityAtOffset(r1)).Dot(normal),
			InitialSeparation: contact.Distance - p2.Sub(p1).Dot(normal),
		}
		if in.warmStart {
			point.NormalImpulse = contact.NormalImpulse
			point.TangentImpulse = contact.TangentImpulse
		}
		constraint.Points = append(constraint.Points, point)
	}

	return constraint
}
