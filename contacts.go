package nphase

import (
	"github.com/setanarut/vec"
)

// Contacts tracks the contact state of a pair of colliders.
//
// A unique value is kept for each pair of touching colliders. It persists across steps
// until the colliders separate, which lets the solver be warm started from the previous solve.
type Contacts struct {
	// Colliders in canonical order, Entity1 < Entity2.
	Entity1, Entity2 Entity
	// Owning bodies, or InvalidEntity.
	Body1, Body2 Entity

	Manifolds []ContactManifold

	DuringCurrentFrame  bool
	DuringPreviousFrame bool

	// IsSensor is set when either collider is a sensor or lacks a rigid body.
	IsSensor bool
}

// Key returns the registry key of the pair.
func (c *Contacts) Key() PairKey {
	return NewPairKey(c.Entity1, c.Entity2)
}

// CollisionStarted reports whether the pair started touching this step.
func (c *Contacts) CollisionStarted() bool {
	return c.DuringCurrentFrame && !c.DuringPreviousFrame
}

// CollisionEnded reports whether the pair stopped touching this step.
func (c *Contacts) CollisionEnded() bool {
	return !c.DuringCurrentFrame && c.DuringPreviousFrame
}

// PointCount returns the number of points over all manifolds.
func (c *Contacts) PointCount() int {
	var n int
	for i := range c.Manifolds {
		n += len(c.Manifolds[i].Points)
	}
	return n
}

// TotalNormalImpulse sums the normal impulses applied by the last solve.
func (c *Contacts) TotalNormalImpulse() float64 {
	var sum float64
	for i := range c.Manifolds {
		for _, p := range c.Manifolds[i].Points {
			sum += p.NormalImpulse
		}
	}
	return sum
}

// TotalImpulse calculates the total impulse including the friction that was applied to collider 2.
//
// This is only meaningful after the solver has stored its impulses.
func (c *Contacts) TotalImpulse() vec.Vec2 {
	var sum vec.Vec2
	for i := range c.Manifolds {
		m := &c.Manifolds[i]
		for _, p := range m.Points {
			sum = sum.Add(m.Normal.RotateComplex(vec.Vec2{X: p.NormalImpulse, Y: p.TangentImpulse}))
		}
	}
	return sum
}

// Clone returns a deep copy of the contacts.
func (c *Contacts) Clone() *Contacts {
	clone := *c
	clone.Manifolds = make([]ContactManifold, len(c.Manifolds))
	for i, m := range c.Manifolds {
		m.Points = append([]ContactPoint(nil), m.Points...)
		clone.Manifolds[i] = m
	}
	return &clone
}
