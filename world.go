package nphase

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// ColliderSource looks up colliders by entity.
// It is read from several workers at once.
type ColliderSource interface {
	// Collider returns the collider, or an error wrapping ErrNotFound if it was deleted.
	Collider(e Entity) (*Collider, error)
}

// BodySource looks up rigid bodies by entity.
// It is read from several workers at once.
type BodySource interface {
	// Body returns the body, or an error wrapping ErrNotFound if it was deleted.
	Body(e Entity) (*RigidBody, error)
}

// EntitySource provides both colliders and bodies.
type EntitySource interface {
	ColliderSource
	BodySource
}

// World is an in-memory EntitySource.
//
// It must not be modified while a step is running.
type World struct {
	colliders map[Entity]*Collider
	bodies    map[Entity]*RigidBody
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		colliders: map[Entity]*Collider{},
		bodies:    map[Entity]*RigidBody{},
	}
}

// AddBody adds or replaces a body.
func (w *World) AddBody(body *RigidBody) *RigidBody {
	w.bodies[body.Entity] = body
	return body
}

// AddCollider adds or replaces a collider.
func (w *World) AddCollider(collider *Collider) *Collider {
	w.colliders[collider.Entity] = collider
	return collider
}

// RemoveBody deletes a body. Colliders attached to it are kept.
func (w *World) RemoveBody(e Entity) {
	delete(w.bodies, e)
}

// RemoveCollider deletes a collider.
func (w *World) RemoveCollider(e Entity) {
	delete(w.colliders, e)
}

// Collider implements ColliderSource.
func (w *World) Collider(e Entity) (*Collider, error) {
	if !e.Valid() {
		return nil, errors.Wrap(ErrInvalidEntity, "collider")
	}
	c, ok := w.colliders[e]
	if !ok {
		return nil, NewNotFoundError("collider", e)
	}
	return c, nil
}

// Body implements BodySource.
func (w *World) Body(e Entity) (*RigidBody, error) {
	if !e.Valid() {
		return nil, errors.Wrap(ErrInvalidEntity, "body")
	}
	b, ok := w.bodies[e]
	if !ok {
		return nil, NewNotFoundError("body", e)
	}
	return b, nil
}

// WakeUp clears the sleeping flag of each body that exists.
func (w *World) WakeUp(entities ...Entity) {
	for _, e := range entities {
		if b, ok := w.bodies[e]; ok {
			b.Sleeping = false
		}
	}
}

// Colliders returns the collider entities in ascending order.
func (w *World) Colliders() []Entity {
	return sortedEntities(lo.Keys(w.colliders))
}

// Bodies returns the body entities in ascending order.
func (w *World) Bodies() []Entity {
	return sortedEntities(lo.Keys(w.bodies))
}

// AllPairs returns every collider pair whose bounding boxes, grown by margin, overlap.
// It is a brute force stand-in for a broad phase.
func (w *World) AllPairs(margin float64) []Pair {
	entities := w.Colliders()
	var pairs []Pair
	for i, a := range entities {
		bbA := w.colliders[a].BB().Grow(margin)
		for _, b := range entities[i+1:] {
			if bbA.Intersects(w.colliders[b].BB()) {
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	return pairs
}
