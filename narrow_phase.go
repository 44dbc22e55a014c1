package nphase

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// StepContext is the read-only state shared by every worker during one stage of a step.
type StepContext struct {
	Source EntitySource
	// Collisions holds the contacts of the previous step. It is only read while collecting.
	Collisions *Collisions
	Config     Config
	DeltaTime  float64

	margins  scaledMargins
	softness ContactSoftnessCoefficients
}

// NewStepContext caches the length scaled settings and softness coefficients for dt.
func NewStepContext(src EntitySource, collisions *Collisions, cfg Config, dt float64) *StepContext {
	if collisions == nil {
		collisions = NewCollisions()
	}
	return &StepContext{
		Source:     src,
		Collisions: collisions,
		Config:     cfg,
		DeltaTime:  dt,
		margins:    cfg.scaled(),
		softness:   cfg.Softness.Coefficients(dt),
	}
}

// collider looks up a collider. A deleted collider returns nil without error.
func (ctx *StepContext) collider(e Entity) (*Collider, error) {
	c, err := ctx.Source.Collider(e)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "looking up collider %d", e)
	}
	return c, nil
}

// body looks up the body of c. A collider without a body, or whose body was deleted, returns nil.
func (ctx *StepContext) body(c *Collider) (*RigidBody, error) {
	if !c.HasBody() {
		return nil, nil
	}
	b, err := ctx.Source.Body(c.Body)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "looking up body %d of collider %d", c.Body, c.Entity)
	}
	return b, nil
}

// colliderPair looks up both colliders. ok is false if either was deleted.
func (ctx *StepContext) colliderPair(entity1, entity2 Entity) (c1, c2 *Collider, ok bool, err error) {
	if c1, err = ctx.collider(entity1); err != nil || c1 == nil {
		return nil, nil, false, err
	}
	if c2, err = ctx.collider(entity2); err != nil || c2 == nil {
		return nil, nil, false, err
	}
	return c1, c2, true, nil
}

// NarrowPhase computes contacts for candidate pairs with one ContactOracle.
//
// A Pipeline may hold several NarrowPhase backends sharing one registry, for example one
// per family of shapes. Lifecycle bookkeeping is left to the Pipeline.
type NarrowPhase struct {
	Oracle ContactOracle
	Hooks  CollisionHooks
	// Accepts selects the pairs handled by this backend. Nil accepts every pair.
	Accepts func(collider1, collider2 *Collider) bool
}

// NewNarrowPhase returns a backend using oracle. Nil hooks accept every pair unchanged.
func NewNarrowPhase(oracle ContactOracle, hooks CollisionHooks) *NarrowPhase {
	if hooks == nil {
		hooks = NoHooks{}
	}
	return &NarrowPhase{Oracle: oracle, Hooks: hooks}
}

func (np *NarrowPhase) accepts(c1, c2 *Collider) bool {
	return np.Accepts == nil || np.Accepts(c1, c2)
}

// HandleEntityPair returns the contacts between entity1 and entity2 if they are touching
// or expected to touch within the next step. It returns nil if either collider was deleted.
func (np *NarrowPhase) HandleEntityPair(ctx *StepContext, entity1, entity2 Entity, commands *Commands) (*Contacts, error) {
	c1, c2, ok, err := ctx.colliderPair(entity1, entity2)
	if !ok {
		return nil, err
	}
	return np.HandleColliderPair(ctx, c1, c2, commands)
}

// HandleColliderPair resolves margins and surface properties of a pair and computes its contacts.
func (np *NarrowPhase) HandleColliderPair(ctx *StepContext, c1, c2 *Collider, commands *Commands) (*Contacts, error) {
	// Canonical order, so previous contacts and feature ids line up across steps.
	if c2.Entity < c1.Entity {
		c1, c2 = c2, c1
	}
	if queryReject(c1, c2) {
		return nil, nil
	}

	b1, err := ctx.body(c1)
	if err != nil {
		return nil, err
	}
	b2, err := ctx.body(c2)
	if err != nil {
		return nil, err
	}

	maxDistance := MaxContactDistance(
		newMarginSide(c1, b1),
		newMarginSide(c2, b2),
		ctx.margins.defaultSpeculativeMargin,
		ctx.margins.contactTolerance,
		ctx.DeltaTime,
	)

	friction := resolveFriction(c1, b1, ctx.Config.DefaultFriction).
		CombineWith(resolveFriction(c2, b2, ctx.Config.DefaultFriction)).Dynamic
	restitution := resolveRestitution(c1, b1, ctx.Config.DefaultRestitution).
		CombineWith(resolveRestitution(c2, b2, ctx.Config.DefaultRestitution)).Coefficient

	return np.ComputeContactPair(ctx, c1, c2, b1, b2, friction, restitution, maxDistance, commands), nil
}

// ComputeContactPair computes the contacts between c1 and c2, which must be in canonical order.
// b1 and b2 are the bodies of the colliders, or nil.
//
// It returns nil if the shapes are further apart than maxDistance, if the hooks reject the
// pair, or if no manifold has any point left.
func (np *NarrowPhase) ComputeContactPair(
	ctx *StepContext,
	c1, c2 *Collider,
	b1, b2 *RigidBody,
	friction, restitution, maxDistance float64,
	commands *Commands,
) *Contacts {
	manifolds := np.Oracle.ContactManifolds(c1.Shape, c1.Pose, c2.Shape, c2.Pose, maxDistance, ManifoldContext{c1.Entity, c2.Entity})
	if len(manifolds) == 0 {
		return nil
	}

	// Relative surface velocity, for conveyor belts.
	surfaceVelocity := c2.SurfaceVelocity.Sub(c1.SurfaceVelocity)

	for i := range manifolds {
		m := &manifolds[i]
		m.Friction = friction
		m.Restitution = restitution
		m.TangentSpeed = surfaceVelocity.Dot(m.Tangent())
		for j := range m.Points {
			m.Points[j].NormalImpulse = 0
			m.Points[j].TangentImpulse = 0
		}
	}

	previous, hasPrevious := ctx.Collisions.Get(c1.Entity, c2.Entity)

	contacts := &Contacts{
		Entity1:             c1.Entity,
		Entity2:             c2.Entity,
		Body1:               c1.Body,
		Body2:               c2.Body,
		Manifolds:           manifolds,
		DuringCurrentFrame:  true,
		DuringPreviousFrame: hasPrevious && previous.DuringPreviousFrame,
		IsSensor:            c1.Sensor || c2.Sensor || b1 == nil || b2 == nil,
	}

	if c1.ActiveHooks.Union(c2.ActiveHooks).Contains(HookModifyContacts) && np.Hooks != nil {
		if !np.Hooks.ModifyContacts(contacts, commands) {
			return nil
		}
	}

	// Degenerate manifolds are dropped.
	contacts.Manifolds = lo.Filter(contacts.Manifolds, func(m ContactManifold, _ int) bool {
		return len(m.Points) > 0
	})
	if len(contacts.Manifolds) == 0 {
		return nil
	}
	for i := range contacts.Manifolds {
		contacts.Manifolds[i].Index = i
	}

	// Match contacts and copy previous contact impulses for warm starting the solver.
	if hasPrevious && ctx.Config.MatchContacts && len(contacts.Manifolds) <= MaxMatchedManifolds {
		threshold := ctx.margins.matchThreshold
		for i := range contacts.Manifolds {
			for _, prev := range previous.Manifolds {
				contacts.Manifolds[i].MatchContacts(prev.Points, threshold)
			}
		}
	}

	return contacts
}

// GenerateConstraints returns the solver constraints of contacts and the sleeping body to
// wake, or InvalidEntity.
//
// Nothing is generated for sensors, for pairs that stopped touching, for pairs without two
// bodies, for pairs where no body is dynamic, or where both bodies are static or sleeping.
func GenerateConstraints(ctx *StepContext, contacts *Contacts) ([]ContactConstraint, Entity, error) {
	// Ended pairs still hold the manifolds of their last contact until they are evicted.
	if contacts.IsSensor || !contacts.DuringCurrentFrame {
		return nil, InvalidEntity, nil
	}

	c1, c2, ok, err := ctx.colliderPair(contacts.Entity1, contacts.Entity2)
	if !ok {
		return nil, InvalidEntity, err
	}
	b1, err := ctx.body(c1)
	if err != nil || b1 == nil {
		return nil, InvalidEntity, err
	}
	b2, err := ctx.body(c2)
	if err != nil || b2 == nil {
		return nil, InvalidEntity, err
	}

	// At least one of the bodies must be dynamic for contact constraints to be generated.
	if !b1.IsDynamic() && !b2.IsDynamic() {
		return nil, InvalidEntity, nil
	}

	// No collision response if both bodies are static or sleeping
	// or if either of the colliders is a sensor collider.
	if (!b1.IsActive() && !b2.IsActive()) || c1.Sensor || b1.Sensor || c2.Sensor || b2.Sensor {
		return nil, InvalidEntity, nil
	}

	// When an active body collides with a sleeping body, wake up the sleeping body.
	wakeUp := InvalidEntity
	if b1.Sleeping {
		wakeUp = b1.Entity
	} else if b2.Sleeping {
		wakeUp = b2.Entity
	}

	softness := ctx.softness.Dynamic
	if !b1.IsDynamic() || !b2.IsDynamic() {
		softness = ctx.softness.NonDynamic
	}

	in := constraintInput{
		collider1:         c1,
		collider2:         c2,
		body1:             b1,
		body2:             b2,
		collisionMargin:   newMarginSide(c1, b1).CollisionMargin() + newMarginSide(c2, b2).CollisionMargin(),
		speculativeMargin: ctx.margins.defaultSpeculativeMargin,
		softness:          softness,
		warmStart:         ctx.Config.MatchContacts,
	}

	var constraints []ContactConstraint
	for i := range contacts.Manifolds {
		constraint := newContactConstraint(&contacts.Manifolds[i], &in)
		if len(constraint.Points) > 0 {
			constraints = append(constraints, constraint)
		}
	}
	return constraints, wakeUp, nil
}

// queryReject returns true if colliders a and b reject to collide.
func queryReject(a, b *Collider) bool {
	if a.Entity == b.Entity {
		return true
	}
	// Colliders of the same body never collide.
	return a.HasBody() && a.Body == b.Body
}

func resolveFriction(c *Collider, b *RigidBody, def Friction) Friction {
	if c.Friction != nil {
		return *c.Friction
	}
	if b != nil && b.Friction != nil {
		return *b.Friction
	}
	return def
}

func resolveRestitution(c *Collider, b *RigidBody, def Restitution) Restitution {
	if c.Restitution != nil {
		return *c.Restitution
	}
	if b != nil && b.Restitution != nil {
		return *b.Restitution
	}
	return def
}
