package nphase_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func TestRigidSoftness(t *testing.T) {
	c := nphase.SoftnessParameters{DampingRatio: 10}.Coefficients(dt)
	test.That(t, c, test.ShouldResemble, nphase.SoftnessCoefficients{BiasRate: 0, MassScale: 1, ImpulseScale: 0})
}

func TestSoftnessCoefficients(t *testing.T) {
	softness := nphase.DefaultContactSoftness().Coefficients(dt)

	for _, c := range []nphase.SoftnessCoefficients{softness.Dynamic, softness.NonDynamic} {
		test.That(t, c.BiasRate, test.ShouldBeGreaterThan, 0.0)
		test.That(t, c.MassScale+c.ImpulseScale, test.ShouldAlmostEqual, 1, 1e-12)
	}

	// The non-dynamic spring is stiffer.
	test.That(t, softness.NonDynamic.MassScale, test.ShouldBeGreaterThan, softness.Dynamic.MassScale)
}
