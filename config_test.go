package nphase_test

import (
	"math"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func TestDefaultConfig(t *testing.T) {
	cfg := nphase.DefaultConfig()
	test.That(t, cfg.DefaultSpeculativeMargin, test.ShouldEqual, math.MaxFloat64)
	test.That(t, cfg.ContactTolerance, test.ShouldEqual, 0.005)
	test.That(t, cfg.MatchContacts, test.ShouldBeTrue)
	test.That(t, cfg.LengthUnit, test.ShouldEqual, 1.0)
	test.That(t, cfg.Workers, test.ShouldEqual, 1)
	test.That(t, cfg.Validate(), test.ShouldBeNil)
}

func TestConfigValidate(t *testing.T) {
	cfg := nphase.DefaultConfig()
	cfg.LengthUnit = 0
	cfg.ContactTolerance = -1
	cfg.Workers = 0
	cfg.Softness.Dynamic.Frequency = -30

	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, multierr.Errors(err), test.ShouldHaveLength, 4)
	test.That(t, err.Error(), test.ShouldContainSubstring, "workers must be at least 1")

	_, err = nphase.NewPipeline(cfg, nil)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid narrow phase config")
}
