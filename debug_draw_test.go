package nphase_test

import (
	"testing"

	"github.com/setanarut/vec"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

type recordingDrawer struct {
	flags    uint
	circles  []vec.Vec2
	segments [][2]vec.Vec2
	polygons [][]vec.Vec2
}

func (d *recordingDrawer) DrawCircle(pos vec.Vec2, _ float64, _, _ nphase.FColor, _ any) {
	d.circles = append(d.circles, pos)
}

func (d *recordingDrawer) DrawSegment(a, b vec.Vec2, _ nphase.FColor, _ any) {
	d.segments = append(d.segments, [2]vec.Vec2{a, b})
}

func (d *recordingDrawer) DrawFatSegment(a, b vec.Vec2, _ float64, _, _ nphase.FColor, _ any) {
	d.segments = append(d.segments, [2]vec.Vec2{a, b})
}

func (d *recordingDrawer) DrawPolygon(verts []vec.Vec2, _ float64, _, _ nphase.FColor, _ any) {
	d.polygons = append(d.polygons, verts)
}

func (d *recordingDrawer) Flags() uint { return d.flags }
func (d *recordingDrawer) OutlineColor() nphase.FColor { return nphase.FColor{A: 1} }
func (d *recordingDrawer) ColliderColor(*nphase.Collider, any) nphase.FColor { return nphase.FColor{R: 1, A: 1} }
func (d *recordingDrawer) CollisionPointColor() nphase.FColor { return nphase.FColor{G: 1, A: 1} }
func (d *recordingDrawer) Data() any { return nil }

func TestDrawShape(t *testing.T) {
	d := &recordingDrawer{}
	nphase.DrawShape(nphase.NewCollider(1, nphase.NewBox(2, 2, 0), translate(5, 0), nphase.InvalidEntity), d)
	nphase.DrawShape(nphase.NewCollider(2, nphase.NewCircle(1, vec.Vec2{X: 1}), translate(5, 0), nphase.InvalidEntity), d)

	test.That(t, d.polygons, test.ShouldHaveLength, 1)
	test.That(t, d.polygons[0], test.ShouldHaveLength, 4)
	test.That(t, d.polygons[0][0], test.ShouldResemble, vec.Vec2{X: 6, Y: -1})
	test.That(t, d.circles, test.ShouldResemble, []vec.Vec2{{X: 6}})
}

func TestDrawCollisions(t *testing.T) {
	w := nphase.NewWorld()
	addBall(w, 1, vec.Vec2{}, 1, nphase.Dynamic)
	addBall(w, 2, vec.Vec2{X: 1.8}, 1, nphase.Dynamic)
	addBall(w, 3, vec.Vec2{X: 3.6}, 1, nphase.Dynamic)

	p := newPipeline(t, nphase.DefaultConfig())
	test.That(t, p.Step(w, w.AllPairs(0), dt), test.ShouldBeNil)

	d := &recordingDrawer{flags: nphase.DrawShapes | nphase.DrawCollisionPoints}
	nphase.DrawCollisions(p.Collisions(), w, d)

	// Every collider is drawn once even though ball 2 is in two pairs.
	test.That(t, d.circles, test.ShouldHaveLength, 3)
	test.That(t, d.segments, test.ShouldHaveLength, 2)
	first := d.segments[0]
	test.That(t, first[0].X, test.ShouldAlmostEqual, -1, 1e-9)
	test.That(t, first[1].X, test.ShouldAlmostEqual, 2.8, 1e-9)

	d = &recordingDrawer{flags: nphase.DrawCollisionPoints}
	nphase.DrawCollisions(p.Collisions(), w, d)
	test.That(t, d.circles, test.ShouldBeEmpty)
	test.That(t, d.segments, test.ShouldHaveLength, 2)
}
