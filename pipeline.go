package nphase

import (
	"slices"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// PostProcessFunc reads or mutates the registry between collection and constraint generation.
// It runs on a single goroutine.
type PostProcessFunc func(collisions *Collisions)

// Pipeline owns the collision registry and runs the narrow phase stages of a step.
//
// A step is Begin, Collect, PostProcess and GenerateConstraints, which Step runs in order.
// The host then solves the constraints, optionally stores impulses back with StoreImpulses,
// reads contact events with ReportContacts and finally calls Finish to evict ended pairs.
// Lifecycle reset and eviction happen once per step no matter how many backends contribute.
type Pipeline struct {
	config      Config
	backends    []*NarrowPhase
	postProcess []PostProcessFunc
	collisions  *Collisions
	constraints []ContactConstraint
	wakeUps     []Entity
	commands    Commands
	diagnostics CollisionDiagnostics

	logger *zap.Logger
	clock  clock.Clock
	locked bool
}

// NewPipeline returns a Pipeline using backends in order, the first accepting backend
// handling each pair. Without backends a GeometryOracle with no hooks is used.
func NewPipeline(cfg Config, logger *zap.Logger, backends ...*NarrowPhase) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid narrow phase config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(backends) == 0 {
		backends = []*NarrowPhase{NewNarrowPhase(NewGeometryOracle(logger), nil)}
	}
	return &Pipeline{
		config:     cfg,
		backends:   backends,
		collisions: NewCollisions(),
		logger:     logger,
		clock:      clock.New(),
	}, nil
}

func (p *Pipeline) Config() Config {
	return p.config
}

// SetClock replaces the clock used for diagnostics timings.
func (p *Pipeline) SetClock(c clock.Clock) {
	p.clock = c
}

// AddPostProcess registers f to run after collection, in registration order.
func (p *Pipeline) AddPostProcess(f PostProcessFunc) {
	p.postProcess = append(p.postProcess, f)
}

// Collisions returns the registry.
func (p *Pipeline) Collisions() *Collisions {
	return p.collisions
}

// Constraints returns the constraints generated by the last step.
func (p *Pipeline) Constraints() []ContactConstraint {
	return p.constraints
}

// Commands returns the commands queued by hooks during collection.
func (p *Pipeline) Commands() *Commands {
	return &p.commands
}

// Diagnostics returns the diagnostics of the last step.
func (p *Pipeline) Diagnostics() CollisionDiagnostics {
	return p.diagnostics
}

// DrainWakeUps removes and returns the sleeping bodies to wake, in ascending pair order.
func (p *Pipeline) DrainWakeUps() []Entity {
	wakeUps := p.wakeUps
	p.wakeUps = nil
	return wakeUps
}

// IsLocked returns true while a stage is running.
func (p *Pipeline) IsLocked() bool {
	return p.locked
}

func (p *Pipeline) lock() error {
	if p.locked {
		return errors.New("narrow phase stage is already running")
	}
	p.locked = true
	return nil
}

func (p *Pipeline) unlock() {
	p.locked = false
}

// Step runs Begin, Collect, PostProcess and GenerateConstraints.
func (p *Pipeline) Step(src EntitySource, pairs []Pair, dt float64) error {
	if err := p.Begin(src); err != nil {
		return err
	}
	if err := p.Collect(src, pairs, dt); err != nil {
		return err
	}
	p.PostProcess()
	return p.GenerateConstraints(src, dt)
}

// Begin resets the lifecycle flags of every entry.
func (p *Pipeline) Begin(src EntitySource) error {
	if err := p.lock(); err != nil {
		return err
	}
	defer p.unlock()

	return p.collisions.ResetCollisionStates(src)
}

// Collect computes contacts for pairs and merges them into the registry.
//
// Pairs are split into contiguous chunks processed by up to Config.Workers goroutines.
// The registry is only read while workers run; chunk results are merged in chunk order.
func (p *Pipeline) Collect(src EntitySource, pairs []Pair, dt float64) error {
	if err := p.lock(); err != nil {
		return err
	}
	defer p.unlock()

	start := p.clock.Now()
	ctx := NewStepContext(src, p.collisions, p.config, dt)

	outs, err := runChunks(p.config.Workers, pairs, func(chunk []Pair, out *chunkOutput) error {
		for _, pair := range chunk {
			c1, c2, ok, err := ctx.colliderPair(pair.A, pair.B)
			if err != nil {
				return errors.Wrapf(err, "collecting pair (%d, %d)", pair.A, pair.B)
			}
			if !ok {
				out.skipped++
				continue
			}
			np := p.backendFor(c1, c2)
			if np == nil {
				continue
			}
			contacts, err := np.HandleColliderPair(ctx, c1, c2, &out.commands)
			if err != nil {
				return errors.Wrapf(err, "collecting pair (%d, %d)", pair.A, pair.B)
			}
			if contacts != nil {
				out.contacts = append(out.contacts, contacts)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var skipped int
	for _, out := range outs {
		p.collisions.Extend(out.contacts)
		p.commands.Append(&out.commands)
		skipped += out.skipped
	}

	p.diagnostics.Collect = p.clock.Since(start)
	p.diagnostics.PairCount = len(pairs)
	p.diagnostics.ContactCount = p.collisions.Len()
	if skipped > 0 {
		p.logger.Debug("skipped pairs with deleted colliders", zap.Int("count", skipped))
	}
	return nil
}

func (p *Pipeline) backendFor(c1, c2 *Collider) *NarrowPhase {
	for _, np := range p.backends {
		if np.accepts(c1, c2) {
			return np
		}
	}
	return nil
}

// PostProcess runs the post-process stages on the registry.
func (p *Pipeline) PostProcess() {
	for _, f := range p.postProcess {
		f(p.collisions)
	}
}

// GenerateConstraints replaces the constraint list with constraints for every registry entry
// and records the sleeping bodies to wake.
// Entries that stopped touching during this step get no constraints.
func (p *Pipeline) GenerateConstraints(src EntitySource, dt float64) error {
	if err := p.lock(); err != nil {
		return err
	}
	defer p.unlock()

	start := p.clock.Now()
	ctx := NewStepContext(src, p.collisions, p.config, dt)

	outs, err := runChunks(p.config.Workers, p.collisions.Keys(), func(chunk []PairKey, out *chunkOutput) error {
		for _, key := range chunk {
			contacts, _ := p.collisions.Get(key.Entity1, key.Entity2)
			constraints, wakeUp, err := GenerateConstraints(ctx, contacts)
			if err != nil {
				return errors.Wrapf(err, "generating constraints for pair (%d, %d)", key.Entity1, key.Entity2)
			}
			out.constraints = append(out.constraints, constraints...)
			if wakeUp.Valid() {
				out.wakeUps = append(out.wakeUps, wakeUp)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var constraints []ContactConstraint
	wakeUps := slices.Clone(p.wakeUps)
	for _, out := range outs {
		constraints = append(constraints, out.constraints...)
		wakeUps = append(wakeUps, out.wakeUps...)
	}
	p.constraints = constraints
	p.wakeUps = lo.Uniq(wakeUps)

	p.diagnostics.GenerateConstraints = p.clock.Since(start)
	p.diagnostics.ConstraintCount = len(p.constraints)
	p.diagnostics.WakeUpCount = len(p.wakeUps)
	p.logger.Debug("narrow phase", zap.Object("diagnostics", p.diagnostics))
	return nil
}

// StoreImpulses writes solved impulses back into the registry for warm starting.
func (p *Pipeline) StoreImpulses(constraints []ContactConstraint) {
	p.collisions.StoreImpulses(constraints)
}

// Finish evicts every entry that did not touch during this step and returns how many were removed.
func (p *Pipeline) Finish() int {
	evicted := p.collisions.RemoveEnded()
	p.diagnostics.EvictedCount = evicted
	if evicted > 0 {
		p.logger.Debug("removed ended collisions", zap.Int("count", evicted))
	}
	return evicted
}
