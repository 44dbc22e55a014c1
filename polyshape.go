package nphase

import (
	"math"

	"github.com/setanarut/vec"
)

// Poly is a convex polygon with optionally rounded corners.
type Poly struct {
	Radius float64
	// Local edges with counter-clockwise winding.
	planes []SplittingPlane
}

// Count returns the number of vertexes.
func (ps *Poly) Count() int {
	return len(ps.planes)
}

// Vert returns the local vertex at index i.
func (ps *Poly) Vert(i int) vec.Vec2 {
	return ps.planes[i].V0
}

// SetVerts replaces the vertexes. They must be convex with a counter-clockwise winding.
func (ps *Poly) SetVerts(verts []vec.Vec2) {
	count := len(verts)
	ps.planes = make([]SplittingPlane, count)

	for i := range count {
		a := verts[(i-1+count)%count]
		b := verts[i]
		ps.planes[i] = SplittingPlane{V0: b, N: unitOr(b.Sub(a), vec.Vec2{X: 1}).ReversePerp()}
	}
}

func (ps *Poly) BB(t Transform) BB {
	l, b, r, top := infinity, infinity, -infinity, -infinity
	for _, plane := range ps.planes {
		v := t.Apply(plane.V0)
		l = math.Min(l, v.X)
		r = math.Max(r, v.X)
		b = math.Min(b, v.Y)
		top = math.Max(top, v.Y)
	}
	return BB{l, b, r, top}.Grow(ps.Radius)
}

func (ps *Poly) pose(t Transform, side HashValue) posedShape {
	planes := make([]SplittingPlane, len(ps.planes))
	for i, plane := range ps.planes {
		planes[i] = SplittingPlane{V0: t.Apply(plane.V0), N: t.ApplyVector(plane.N)}
	}
	return posedShape{
		order:  orderPoly,
		side:   side,
		bb:     ps.BB(t),
		radius: ps.Radius,
		planes: planes,
	}
}

// QuickHull seemed like a neat algorithm, and efficient-ish for large input sets.
// My implementation performs an in place reduction using the result array as scratch space.
func convexHull(count int, verts []vec.Vec2, tol float64) int {
	start, end := loopIndexes(verts, count)
	if start == end {
		return 1
	}

	verts[0], verts[start] = verts[start], verts[0]
	if end == 0 {
		verts[1], verts[start] = verts[start], verts[1]
	} else {
		verts[1], verts[end] = verts[end], verts[1]
	}

	a := verts[0]
	b := verts[1]

	return qHullReduce(tol, verts[2:], count-2, a, b, a, verts[1:]) + 1
}

func loopIndexes(verts []vec.Vec2, count int) (int, int) {
	start := 0
	end := 0

	min := verts[0]
	max := min

	for i := 1; i < count; i++ {
		v := verts[i]

		if v.X < min.X || (v.X == min.X && v.Y < min.Y) {
			min = v
			start = i
		} else if v.X > max.X || (v.X == max.X && v.Y > max.Y) {
			max = v
			end = i
		}
	}

	return start, end
}

func qHullReduce(tol float64, verts []vec.Vec2, count int, a, pivot, b vec.Vec2, result []vec.Vec2) int {
	if count == 0 {
		result[0] = pivot
		return 1
	}

	leftCount := qHullPartition(verts, count, a, pivot, tol)
	var index int
	if leftCount-1 >= 0 {
		index = qHullReduce(tol, verts[1:], leftCount-1, a, verts[0], pivot, result)
	}

	result[index] = pivot
	index++

	rightCount := qHullPartition(verts[leftCount:], count-leftCount, pivot, b, tol)
	if rightCount-1 < 0 {
		return index
	}
	return index + qHullReduce(tol, verts[leftCount+1:], rightCount-1, pivot, verts[leftCount], b, result[index:])
}

func qHullPartition(verts []vec.Vec2, count int, a, b vec.Vec2, tol float64) int {
	if count == 0 {
		return 0
	}

	max := 0.0
	pivot := 0

	delta := b.Sub(a)
	valueTol := tol * delta.Mag()

	head := 0
	for tail := count - 1; head <= tail; {
		value := verts[head].Sub(a).Cross(delta)
		if value > valueTol {
			if value > max {
				max = value
				pivot = head
			}

			head++
		} else {
			verts[head], verts[tail] = verts[tail], verts[head]
			tail--
		}
	}

	// move the new pivot to the front if it's not already there.
	if pivot != 0 {
		verts[0], verts[pivot] = verts[pivot], verts[0]
	}
	return head
}
