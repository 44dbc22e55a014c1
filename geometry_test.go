package nphase_test

import (
	"testing"

	"github.com/setanarut/vec"
	"go.uber.org/zap/zaptest"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func translate(x, y float64) nphase.Transform {
	return nphase.NewTransformTranslate(vec.Vec2{X: x, Y: y})
}

func TestCircleToCircleOverlap(t *testing.T) {
	oracle := nphase.NewGeometryOracle(zaptest.NewLogger(t))
	circle := nphase.NewCircle(1, vec.Vec2{})

	manifolds := oracle.ContactManifolds(circle, translate(0, 0), circle, translate(1.8, 0), 0.005, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldHaveLength, 1)

	m := manifolds[0]
	test.That(t, m.Normal.X, test.ShouldAlmostEqual, 1, 1e-12)
	test.That(t, m.Normal.Y, test.ShouldEqual, 0.0)
	test.That(t, m.Points, test.ShouldHaveLength, 1)

	p := m.Points[0]
	test.That(t, p.Distance, test.ShouldAlmostEqual, -0.2, 1e-9)
	test.That(t, p.LocalPoint1.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, p.LocalPoint2.X, test.ShouldAlmostEqual, -1, 1e-9)
	test.That(t, p.FeatureID, test.ShouldEqual, nphase.HashValue(0))
}

func TestCircleToCircleSpeculative(t *testing.T) {
	oracle := nphase.NewGeometryOracle(nil)
	circle := nphase.NewCircle(1, vec.Vec2{})

	manifolds := oracle.ContactManifolds(circle, translate(0, 0), circle, translate(3, 0), 1, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldHaveLength, 1)
	test.That(t, manifolds[0].Points[0].Distance, test.ShouldAlmostEqual, 1, 1e-9)

	manifolds = oracle.ContactManifolds(circle, translate(0, 0), circle, translate(3, 0), 0.5, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldBeEmpty)
}

func TestSegmentToCircleSwapped(t *testing.T) {
	oracle := nphase.NewGeometryOracle(nil)
	segment := nphase.NewSegment(vec.Vec2{X: -2}, vec.Vec2{X: 2}, 0)
	circle := nphase.NewCircle(1, vec.Vec2{})

	// The circle is collided first internally, the result must still point from segment to circle.
	manifolds := oracle.ContactManifolds(segment, translate(0, 0), circle, translate(0, 0.5), 0, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldHaveLength, 1)

	m := manifolds[0]
	test.That(t, m.Normal.X, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, m.Normal.Y, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, m.Points[0].Distance, test.ShouldAlmostEqual, -0.5, 1e-9)
	test.That(t, m.Points[0].LocalPoint1.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, m.Points[0].LocalPoint2.Y, test.ShouldAlmostEqual, -1, 1e-9)
}

func TestBoxToBoxOverlap(t *testing.T) {
	oracle := nphase.NewGeometryOracle(zaptest.NewLogger(t))
	box := nphase.NewBox(2, 2, 0)

	manifolds := oracle.ContactManifolds(box, translate(0, 0), box, translate(1.5, 0), 0.005, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldHaveLength, 1)

	m := manifolds[0]
	test.That(t, m.Normal.X, test.ShouldAlmostEqual, 1, 1e-9)
	test.That(t, m.Normal.Y, test.ShouldAlmostEqual, 0, 1e-9)
	test.That(t, m.Points, test.ShouldHaveLength, 2)
	for _, p := range m.Points {
		test.That(t, p.Distance, test.ShouldAlmostEqual, -0.5, 1e-9)
		test.That(t, p.FeatureID, test.ShouldNotEqual, nphase.HashValue(0))
	}
	test.That(t, m.Points[0].FeatureID, test.ShouldNotEqual, m.Points[1].FeatureID)
}

func TestBoxToBoxSpeculative(t *testing.T) {
	oracle := nphase.NewGeometryOracle(nil)
	box := nphase.NewBox(2, 2, 0)

	manifolds := oracle.ContactManifolds(box, translate(0, 0), box, translate(2.3, 0), 0.5, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldHaveLength, 1)
	test.That(t, manifolds[0].Points, test.ShouldHaveLength, 2)
	for _, p := range manifolds[0].Points {
		test.That(t, p.Distance, test.ShouldAlmostEqual, 0.3, 1e-9)
	}

	manifolds = oracle.ContactManifolds(box, translate(0, 0), box, translate(2.3, 0), 0.1, nphase.ManifoldContext{})
	test.That(t, manifolds, test.ShouldBeEmpty)
}

func TestFeatureIDsStableAcrossPoses(t *testing.T) {
	oracle := nphase.NewGeometryOracle(nil)
	box := nphase.NewBox(2, 2, 0)

	ids := func(m []nphase.ContactManifold) map[nphase.HashValue]bool {
		out := map[nphase.HashValue]bool{}
		for _, p := range m[0].Points {
			out[p.FeatureID] = true
		}
		return out
	}

	first := oracle.ContactManifolds(box, translate(0, 0), box, translate(1.5, 0), 0.005, nphase.ManifoldContext{})
	second := oracle.ContactManifolds(box, translate(0, 0), box, translate(1.55, 0.01), 0.005, nphase.ManifoldContext{})
	test.That(t, ids(second), test.ShouldResemble, ids(first))
}

type unknownShape struct{}

func (unknownShape) BB(nphase.Transform) nphase.BB {
	return nphase.NewBB(-1, -1, 1, 1)
}

func TestUnsupportedShape(t *testing.T) {
	oracle := nphase.NewGeometryOracle(zaptest.NewLogger(t))
	circle := nphase.NewCircle(1, vec.Vec2{})

	manifolds := oracle.ContactManifolds(unknownShape{}, translate(0, 0), circle, translate(0, 0), 0, nphase.ManifoldContext{Entity1: 1, Entity2: 2})
	test.That(t, manifolds, test.ShouldBeEmpty)
}

func TestPolyConvexHull(t *testing.T) {
	poly := nphase.NewPoly([]vec.Vec2{
		{X: -1, Y: -1},
		{X: 0, Y: 0},
		{X: 1, Y: -1},
		{X: 0.5, Y: 0.2},
		{X: 1, Y: 1},
		{X: -1, Y: 1},
	}, nphase.NewTransformIdentity(), 0)

	if poly.Count() != 4 {
		t.Errorf("Expected 4 hull vertexes, got %d", poly.Count())
	}
	if bb := poly.BB(nphase.NewTransformIdentity()); bb != nphase.NewBB(-1, -1, 1, 1) {
		t.Errorf("Unexpected hull bounds %v", bb)
	}
}

func TestBoxBB(t *testing.T) {
	box := nphase.NewBox(2, 4, 0.5)
	bb := box.BB(translate(10, 0))
	if bb != nphase.NewBB(8.5, -2.5, 11.5, 2.5) {
		t.Fail()
	}
}

func TestTransformInverse(t *testing.T) {
	tf := nphase.NewTransformRigid(vec.Vec2{X: 3, Y: -2}, 0.7)
	p := vec.Vec2{X: 1.25, Y: -4}
	q := tf.Inverse().Apply(tf.Apply(p))
	test.That(t, q.X, test.ShouldAlmostEqual, p.X, 1e-12)
	test.That(t, q.Y, test.ShouldAlmostEqual, p.Y, 1e-12)
}
