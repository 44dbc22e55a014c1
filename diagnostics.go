package nphase

import (
	"time"

	"go.uber.org/zap/zapcore"
)

// CollisionDiagnostics reports what the last step did. The values are observational only.
type CollisionDiagnostics struct {
	// Time spent computing contacts and generating constraints.
	Collect             time.Duration
	GenerateConstraints time.Duration

	// PairCount is the number of candidate pairs given to Collect.
	PairCount int
	// ContactCount is the number of registry entries after collection.
	ContactCount int
	// ConstraintCount is the number of generated constraints.
	ConstraintCount int
	// WakeUpCount is the number of distinct bodies to wake.
	WakeUpCount int
	// EvictedCount is the number of entries removed by the last Finish.
	EvictedCount int
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (d CollisionDiagnostics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddDuration("collect", d.Collect)
	enc.AddDuration("generate_constraints", d.GenerateConstraints)
	enc.AddInt("pairs", d.PairCount)
	enc.AddInt("contacts", d.ContactCount)
	enc.AddInt("constraints", d.ConstraintCount)
	enc.AddInt("wake_ups", d.WakeUpCount)
	enc.AddInt("evicted", d.EvictedCount)
	return nil
}
