package nphase_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/setanarut/vec"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func TestWorldLookup(t *testing.T) {
	w := nphase.NewWorld()
	addBall(w, 2, vec.Vec2{}, 1, nphase.Dynamic)
	addBall(w, 1, vec.Vec2{X: 10}, 1, nphase.Static)

	test.That(t, w.Colliders(), test.ShouldResemble, []nphase.Entity{1, 2})
	test.That(t, w.Bodies(), test.ShouldResemble, []nphase.Entity{1, 2})

	_, err := w.Collider(3)
	test.That(t, nphase.IsNotFound(err), test.ShouldBeTrue)
	test.That(t, err.Error(), test.ShouldContainSubstring, "collider 3")

	_, err = w.Body(nphase.InvalidEntity)
	test.That(t, errors.Is(err, nphase.ErrInvalidEntity), test.ShouldBeTrue)
	test.That(t, nphase.IsNotFound(err), test.ShouldBeFalse)
}

func TestWorldAllPairs(t *testing.T) {
	w := nphase.NewWorld()
	addBall(w, 1, vec.Vec2{}, 1, nphase.Dynamic)
	addBall(w, 2, vec.Vec2{X: 1.8}, 1, nphase.Dynamic)
	addBall(w, 3, vec.Vec2{X: 4.5}, 1, nphase.Dynamic)

	test.That(t, w.AllPairs(0), test.ShouldResemble, []nphase.Pair{{A: 1, B: 2}})
	test.That(t, w.AllPairs(1), test.ShouldResemble, []nphase.Pair{{A: 1, B: 2}, {A: 2, B: 3}})
}

func TestCommands(t *testing.T) {
	var order []int
	var a, b nphase.Commands
	a.Queue(func() { order = append(order, 1) })
	a.Queue(nil)
	b.Queue(func() { order = append(order, 2) })

	a.Append(&b)
	test.That(t, a.Len(), test.ShouldEqual, 2)
	test.That(t, b.Len(), test.ShouldEqual, 0)

	a.Apply()
	test.That(t, order, test.ShouldResemble, []int{1, 2})
	test.That(t, a.Len(), test.ShouldEqual, 0)
}

func TestBodyType(t *testing.T) {
	body := nphase.NewKinematicBody(1)
	test.That(t, body.IsActive(), test.ShouldBeTrue)
	test.That(t, body.IsDynamic(), test.ShouldBeFalse)
	test.That(t, body.String(), test.ShouldEqual, "Body 1, Kinematic")

	body = nphase.NewBody(2, 2, 4)
	body.AngularVelocity = 1
	v := body.VelocityAtWorldPoint(vec.Vec2{X: 1})
	test.That(t, v.Y, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, body.InverseMass, test.ShouldEqual, 0.5)
}
