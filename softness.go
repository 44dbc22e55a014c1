package nphase

import (
	"math"
)

// SoftnessParameters describe a contact spring by damping ratio and frequency in Hertz.
// A zero frequency makes the contact rigid.
type SoftnessParameters struct {
	DampingRatio float64
	Frequency    float64
}

// SoftnessCoefficients are the solver coefficients of SoftnessParameters for one time step.
type SoftnessCoefficients struct {
	BiasRate     float64
	MassScale    float64
	ImpulseScale float64
}

// Coefficients computes the soft constraint coefficients for time step dt.
func (p SoftnessParameters) Coefficients(dt float64) SoftnessCoefficients {
	if p.Frequency == 0 {
		return SoftnessCoefficients{BiasRate: 0, MassScale: 1, ImpulseScale: 0}
	}

	omega := 2 * math.Pi * p.Frequency
	a1 := 2*p.DampingRatio + omega*dt
	a2 := dt * omega * a1
	a3 := 1 / (1 + a2)

	return SoftnessCoefficients{
		BiasRate:     omega / a1,
		MassScale:    a2 * a3,
		ImpulseScale: a3,
	}
}

// ContactSoftness selects the spring used for contacts between dynamic bodies and
// the stiffer one used when a static or kinematic body is involved.
type ContactSoftness struct {
	Dynamic    SoftnessParameters
	NonDynamic SoftnessParameters
}

func DefaultContactSoftness() ContactSoftness {
	return ContactSoftness{
		Dynamic:    SoftnessParameters{DampingRatio: 10, Frequency: 30},
		NonDynamic: SoftnessParameters{DampingRatio: 10, Frequency: 60},
	}
}

// ContactSoftnessCoefficients are both softness coefficient sets for one time step.
type ContactSoftnessCoefficients struct {
	Dynamic    SoftnessCoefficients
	NonDynamic SoftnessCoefficients
}

func (s ContactSoftness) Coefficients(dt float64) ContactSoftnessCoefficients {
	return ContactSoftnessCoefficients{
		Dynamic:    s.Dynamic.Coefficients(dt),
		NonDynamic: s.NonDynamic.Coefficients(dt),
	}
}
