package nphase

import (
	"slices"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Collisions is the registry of Contacts keyed by canonical collider pair.
//
// Iteration is always in ascending key order. Collisions is not safe for concurrent mutation.
type Collisions struct {
	contacts map[PairKey]*Contacts
}

// NewCollisions returns an empty registry.
func NewCollisions() *Collisions {
	return &Collisions{contacts: map[PairKey]*Contacts{}}
}

func (c *Collisions) Len() int {
	return len(c.contacts)
}

// Get returns the contacts between a and b in either order.
func (c *Collisions) Get(a, b Entity) (*Contacts, bool) {
	contacts, ok := c.contacts[NewPairKey(a, b)]
	return contacts, ok
}

// Contains reports whether the registry holds an entry for a and b.
func (c *Collisions) Contains(a, b Entity) bool {
	_, ok := c.contacts[NewPairKey(a, b)]
	return ok
}

// Insert adds contacts, replacing any entry with the same key.
func (c *Collisions) Insert(contacts *Contacts) {
	c.contacts[contacts.Key()] = contacts
}

// Extend inserts each of contacts in order.
func (c *Collisions) Extend(contacts []*Contacts) {
	for _, con := range contacts {
		c.Insert(con)
	}
}

// Remove deletes the entry for a and b and returns it.
func (c *Collisions) Remove(a, b Entity) (*Contacts, bool) {
	key := NewPairKey(a, b)
	contacts, ok := c.contacts[key]
	if ok {
		delete(c.contacts, key)
	}
	return contacts, ok
}

// Keys returns every key in ascending order.
func (c *Collisions) Keys() []PairKey {
	keys := lo.Keys(c.contacts)
	slices.SortFunc(keys, comparePairKeys)
	return keys
}

// Each calls f for every entry in ascending key order.
func (c *Collisions) Each(f func(*Contacts)) {
	for _, key := range c.Keys() {
		f(c.contacts[key])
	}
}

// Retain keeps only the entries for which keep returns true.
func (c *Collisions) Retain(keep func(*Contacts) bool) {
	for _, key := range c.Keys() {
		if !keep(c.contacts[key]) {
			delete(c.contacts, key)
		}
	}
}

// CollisionsWith returns the entries involving collider e in ascending key order.
func (c *Collisions) CollisionsWith(e Entity) []*Contacts {
	var out []*Contacts
	c.Each(func(contacts *Contacts) {
		if contacts.Entity1 == e || contacts.Entity2 == e {
			out = append(out, contacts)
		}
	})
	return out
}

// ResetCollisionStates prepares the lifecycle flags before pairs are collected.
//
// Entries with an active side expect fresh evidence this step. Entries whose sides both
// exist but are inactive are not re-evaluated and stay current. Entries with a missing
// side have ended and will be evicted by RemoveEnded.
func (c *Collisions) ResetCollisionStates(src EntitySource) error {
	for _, key := range c.Keys() {
		contacts := c.contacts[key]

		active1, ok1, err := sideActivity(src, contacts.Entity1, contacts.Body1)
		if err != nil {
			return err
		}
		active2, ok2, err := sideActivity(src, contacts.Entity2, contacts.Body2)
		if err != nil {
			return err
		}

		contacts.DuringPreviousFrame = true
		contacts.DuringCurrentFrame = ok1 && ok2 && !active1 && !active2
	}
	return nil
}

// sideActivity reports whether one side of a pair is active and whether it still exists.
// A side exists while its collider and, if it has one, its body exist. A side without a
// body counts as active.
func sideActivity(src EntitySource, collider, body Entity) (active, exists bool, err error) {
	if _, err := src.Collider(collider); err != nil {
		if IsNotFound(err) {
			return false, false, nil
		}
		return false, false, errors.Wrapf(err, "resetting collision state of collider %d", collider)
	}
	if !body.Valid() {
		return true, true, nil
	}

	b, err := src.Body(body)
	if err != nil {
		if IsNotFound(err) {
			return false, false, nil
		}
		return false, false, errors.Wrapf(err, "resetting collision state of collider %d", collider)
	}
	return b.IsActive(), true, nil
}

// RemoveEnded evicts every entry that did not touch during the current step.
func (c *Collisions) RemoveEnded() int {
	before := c.Len()
	c.Retain(func(contacts *Contacts) bool {
		return contacts.DuringCurrentFrame
	})
	return before - c.Len()
}

// StoreImpulses writes the accumulated impulses of solved constraints back onto their
// contact points so the next step can warm start from them.
func (c *Collisions) StoreImpulses(constraints []ContactConstraint) {
	for i := range constraints {
		constraint := &constraints[i]
		contacts, ok := c.Get(constraint.Collider1, constraint.Collider2)
		if !ok || constraint.ManifoldIndex >= len(contacts.Manifolds) {
			continue
		}
		manifold := &contacts.Manifolds[constraint.ManifoldIndex]
		for _, point := range constraint.Points {
			if point.ContactIndex >= len(manifold.Points) {
				continue
			}
			con := &manifold.Points[point.ContactIndex]
			con.NormalImpulse = point.NormalImpulse
			con.TangentImpulse = point.TangentImpulse
		}
	}
}
