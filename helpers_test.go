package nphase_test

import (
	"testing"

	"github.com/setanarut/vec"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

const dt = 0.02

// addBall adds a body and a circle collider sharing entity e.
func addBall(w *nphase.World, e nphase.Entity, pos vec.Vec2, radius float64, bodyType nphase.BodyType) (*nphase.Collider, *nphase.RigidBody) {
	var body *nphase.RigidBody
	switch bodyType {
	case nphase.Static:
		body = nphase.NewStaticBody(e)
	case nphase.Kinematic:
		body = nphase.NewKinematicBody(e)
	default:
		body = nphase.NewBody(e, 1, nphase.MomentForCircle(1, 0, 2*radius, vec.Vec2{}))
	}
	body.Position = pos
	w.AddBody(body)

	collider := nphase.NewCollider(e, nphase.NewCircle(radius, vec.Vec2{}), nphase.NewTransformTranslate(pos), e)
	w.AddCollider(collider)
	return collider, body
}

// moveBall moves both the body and the collider of e.
func moveBall(w *nphase.World, e nphase.Entity, pos vec.Vec2) {
	c, _ := w.Collider(e)
	b, _ := w.Body(e)
	c.Pose = nphase.NewTransformTranslate(pos)
	b.Position = pos
}

func newPipeline(t *testing.T, cfg nphase.Config, backends ...*nphase.NarrowPhase) *nphase.Pipeline {
	t.Helper()
	p, err := nphase.NewPipeline(cfg, zaptest.NewLogger(t), backends...)
	test.That(t, err, test.ShouldBeNil)
	return p
}

// step runs a full step including eviction.
func step(t *testing.T, p *nphase.Pipeline, w *nphase.World, pairs ...nphase.Pair) {
	t.Helper()
	test.That(t, p.Step(w, pairs, dt), test.ShouldBeNil)
	p.Finish()
}

func ptr[T any](v T) *T {
	return &v
}
