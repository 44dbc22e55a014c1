package nphase

import (
	"github.com/setanarut/vec"
)

// Segment is a line segment with rounded ends.
//
// ATangent and BTangent point towards neighbouring segments when segments are
// chained into terrain; contacts with the shared end caps are then rejected.
// Leave them zero for a free standing segment.
type Segment struct {
	A, B               vec.Vec2
	Radius             float64
	ATangent, BTangent vec.Vec2
}

// Normal returns the local normal of the segment.
func (seg *Segment) Normal() vec.Vec2 {
	return unitOr(seg.B.Sub(seg.A), vec.Vec2{X: 1}).ReversePerp()
}

func (seg *Segment) BB(t Transform) BB {
	a := t.Apply(seg.A)
	b := t.Apply(seg.B)
	return NewBBForCircle(a, 0).Expand(b).Grow(seg.Radius)
}

func (seg *Segment) pose(t Transform, side HashValue) posedShape {
	a := t.Apply(seg.A)
	b := t.Apply(seg.B)
	return posedShape{
		order:    orderSegment,
		side:     side,
		bb:       NewBBForCircle(a, 0).Expand(b).Grow(seg.Radius),
		radius:   seg.Radius,
		a:        a,
		b:        b,
		n:        t.ApplyVector(seg.Normal()),
		aTangent: t.ApplyVector(seg.ATangent),
		bTangent: t.ApplyVector(seg.BTangent),
	}
}
