package nphase

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Config holds the narrow phase settings.
type Config struct {
	// DefaultSpeculativeMargin bounds the predictive contact distance for colliders without
	// an override. math.MaxFloat64 means unbounded and zero disables speculative contacts.
	// Scaled by LengthUnit.
	DefaultSpeculativeMargin float64

	// ContactTolerance is the minimum contact distance, so resting contacts are not lost
	// to floating point jitter. Scaled by LengthUnit.
	ContactTolerance float64

	// MatchContacts enables copying impulses from the previous step for warm starting.
	MatchContacts bool

	// LengthUnit is the size of a typical object in world units.
	LengthUnit float64

	DefaultFriction    Friction
	DefaultRestitution Restitution

	Softness ContactSoftness

	// Workers is the number of goroutines used for collection and constraint generation.
	Workers int
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		DefaultSpeculativeMargin: infinity,
		ContactTolerance:         0.005,
		MatchContacts:            true,
		LengthUnit:               1,
		DefaultFriction:          NewFriction(0.5),
		DefaultRestitution:       Restitution{},
		Softness:                 DefaultContactSoftness(),
		Workers:                  1,
	}
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			err = multierr.Append(err, errors.Errorf(format, args...))
		}
	}

	check(c.LengthUnit > 0 && !math.IsInf(c.LengthUnit, 0), "length unit must be positive and finite, got %v", c.LengthUnit)
	check(c.ContactTolerance >= 0, "contact tolerance must not be negative, got %v", c.ContactTolerance)
	check(c.DefaultSpeculativeMargin >= 0, "default speculative margin must not be negative, got %v", c.DefaultSpeculativeMargin)
	check(c.DefaultFriction.Dynamic >= 0 && c.DefaultFriction.Static >= 0, "default friction must not be negative, got %+v", c.DefaultFriction)
	check(c.DefaultRestitution.Coefficient >= 0, "default restitution must not be negative, got %v", c.DefaultRestitution.Coefficient)
	check(c.Workers >= 1, "workers must be at least 1, got %d", c.Workers)
	for _, s := range []struct {
		name string
		p    SoftnessParameters
	}{{"dynamic", c.Softness.Dynamic}, {"non-dynamic", c.Softness.NonDynamic}} {
		check(s.p.DampingRatio >= 0, "%s softness damping ratio must not be negative, got %v", s.name, s.p.DampingRatio)
		check(s.p.Frequency >= 0, "%s softness frequency must not be negative, got %v", s.name, s.p.Frequency)
	}
	return err
}

// scaledMargins are the length dependent settings multiplied by the length unit.
type scaledMargins struct {
	defaultSpeculativeMargin float64
	contactTolerance         float64
	matchThreshold           float64
}

func (c Config) scaled() scaledMargins {
	margin := c.DefaultSpeculativeMargin
	if margin < infinity {
		margin *= c.LengthUnit
	}
	return scaledMargins{
		defaultSpeculativeMargin: margin,
		contactTolerance:         c.ContactTolerance * c.LengthUnit,
		matchThreshold:           matchDistanceFactor * c.LengthUnit,
	}
}
