package nphase

import (
	"github.com/setanarut/vec"
)

// MarginSide holds the margin inputs of one side of a pair.
type MarginSide struct {
	LinearVelocity vec.Vec2
	// Overrides from the collider and its body. Nil means not set.
	ColliderCollisionMargin, BodyCollisionMargin     *float64
	ColliderSpeculativeMargin, BodySpeculativeMargin *float64
}

// CollisionMargin resolves the static collision margin: collider, then body, then zero.
func (s MarginSide) CollisionMargin() float64 {
	return firstOf(0, s.ColliderCollisionMargin, s.BodyCollisionMargin)
}

// SpeculativeMargin resolves the speculative margin: collider, then body, then def.
func (s MarginSide) SpeculativeMargin(def float64) float64 {
	return firstOf(def, s.ColliderSpeculativeMargin, s.BodySpeculativeMargin)
}

// newMarginSide collects the margin inputs of a collider and its optional body.
func newMarginSide(collider *Collider, body *RigidBody) MarginSide {
	side := MarginSide{
		ColliderCollisionMargin:   collider.CollisionMargin,
		ColliderSpeculativeMargin: collider.SpeculativeMargin,
	}
	if body != nil {
		side.LinearVelocity = body.LinearVelocity
		side.BodyCollisionMargin = body.CollisionMargin
		side.BodySpeculativeMargin = body.SpeculativeMargin
	}
	return side
}

// EffectiveSpeculativeMargin returns how far the two sides can move towards each other
// during dt. A side with a finite speculative margin m has its speed clamped to m/dt.
func EffectiveSpeculativeMargin(side1, side2 MarginSide, defaultMargin, dt float64) float64 {
	v1 := side1.LinearVelocity
	v2 := side2.LinearVelocity

	invDt := 1 / dt
	if m := side1.SpeculativeMargin(defaultMargin); m < infinity {
		v1 = v1.ClampMag(m*invDt)
	}
	if m := side2.SpeculativeMargin(defaultMargin); m < infinity {
		v2 = v2.ClampMag(m*invDt)
	}

	return dt * v1.Sub(v2).Mag()
}

// MaxContactDistance returns the distance below which the pair reports contacts.
// It is at least the contact tolerance plus the collision margins of both sides.
func MaxContactDistance(side1, side2 MarginSide, defaultMargin, contactTolerance, dt float64) float64 {
	effective := EffectiveSpeculativeMargin(side1, side2, defaultMargin, dt)
	return max(effective, contactTolerance) + side1.CollisionMargin() + side2.CollisionMargin()
}

func firstOf(def float64, values ...*float64) float64 {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return def
}
