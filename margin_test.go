package nphase_test

import (
	"math"
	"testing"

	"github.com/setanarut/vec"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func TestEffectiveSpeculativeMarginUnbounded(t *testing.T) {
	side1 := nphase.MarginSide{LinearVelocity: vec.Vec2{X: 50}}
	side2 := nphase.MarginSide{}

	m := nphase.EffectiveSpeculativeMargin(side1, side2, math.MaxFloat64, dt)
	test.That(t, m, test.ShouldAlmostEqual, 1.0, 1e-12)

	// Only relative motion counts.
	side2.LinearVelocity = vec.Vec2{X: 50}
	test.That(t, nphase.EffectiveSpeculativeMargin(side1, side2, math.MaxFloat64, dt), test.ShouldEqual, 0.0)
}

func TestEffectiveSpeculativeMarginClamped(t *testing.T) {
	side1 := nphase.MarginSide{
		LinearVelocity:            vec.Vec2{X: 50},
		ColliderSpeculativeMargin: ptr(0.25),
	}
	side2 := nphase.MarginSide{}

	m := nphase.EffectiveSpeculativeMargin(side1, side2, math.MaxFloat64, dt)
	test.That(t, m, test.ShouldAlmostEqual, 0.25, 1e-12)

	side1.ColliderCollisionMargin = ptr(0.1)
	side2.BodyCollisionMargin = ptr(0.05)
	d := nphase.MaxContactDistance(side1, side2, math.MaxFloat64, 0.005, dt)
	test.That(t, d, test.ShouldAlmostEqual, 0.4, 1e-12)
}

func TestMarginResolutionOrder(t *testing.T) {
	side := nphase.MarginSide{}
	test.That(t, side.CollisionMargin(), test.ShouldEqual, 0.0)
	test.That(t, side.SpeculativeMargin(2), test.ShouldEqual, 2.0)

	side.BodyCollisionMargin = ptr(0.2)
	side.BodySpeculativeMargin = ptr(1.5)
	test.That(t, side.CollisionMargin(), test.ShouldEqual, 0.2)
	test.That(t, side.SpeculativeMargin(2), test.ShouldEqual, 1.5)

	side.ColliderCollisionMargin = ptr(0.3)
	side.ColliderSpeculativeMargin = ptr(0.5)
	test.That(t, side.CollisionMargin(), test.ShouldEqual, 0.3)
	test.That(t, side.SpeculativeMargin(2), test.ShouldEqual, 0.5)
}

func TestZeroDefaultMarginDisablesPrediction(t *testing.T) {
	side1 := nphase.MarginSide{LinearVelocity: vec.Vec2{X: 50}}
	side2 := nphase.MarginSide{LinearVelocity: vec.Vec2{Y: -20}}

	test.That(t, nphase.EffectiveSpeculativeMargin(side1, side2, 0, dt), test.ShouldEqual, 0.0)
	test.That(t, nphase.MaxContactDistance(side1, side2, 0, 0.005, dt), test.ShouldAlmostEqual, 0.005, 1e-12)
}
