package nphase

import (
	"github.com/setanarut/vec"
)

// Shape is collider geometry expressed in the collider's local frame.
//
// The built-in GeometryOracle understands *Circle, *Segment and *Poly.
// Hosts with other geometry supply their own ContactOracle.
type Shape interface {
	// BB returns the world bounding box of the shape at pose t.
	BB(t Transform) BB
}

// builtinShape is implemented by the shapes GeometryOracle can collide.
type builtinShape interface {
	Shape
	pose(t Transform, side HashValue) posedShape
}

const (
	orderCircle = iota
	orderSegment
	orderPoly
	shapeTypeNum
)

// posedShape is a built-in shape moved into world space for a single query.
// It is built per call so concurrent workers never share cached geometry.
type posedShape struct {
	order  int
	side   HashValue
	bb     BB
	radius float64

	// Circle center, or segment end points and normal.
	a, b, n vec.Vec2
	// Segment neighbour tangents used to reject end cap contacts.
	aTangent, bTangent vec.Vec2

	planes []SplittingPlane
}

// SupportPoint is the extreme point of a shape along some direction.
type SupportPoint struct {
	p vec.Vec2
	// Save an index of the point so it can be cheaply looked up as a starting point for the next frame.
	index uint32
}

func NewSupportPoint(p vec.Vec2, index uint32) SupportPoint {
	return SupportPoint{p, index}
}

func (s *posedShape) supportPoint(n vec.Vec2) SupportPoint {
	switch s.order {
	case orderCircle:
		return NewSupportPoint(s.a, 0)
	case orderSegment:
		if s.a.Dot(n) > s.b.Dot(n) {
			return NewSupportPoint(s.a, 0)
		}
		return NewSupportPoint(s.b, 1)
	default:
		i := polySupportPointIndex(s.planes, n)
		return NewSupportPoint(s.planes[i].V0, uint32(i))
	}
}

func polySupportPointIndex(planes []SplittingPlane, n vec.Vec2) int {
	max := -infinity
	var index int
	for i := range planes {
		d := planes[i].V0.Dot(n)
		if d > max {
			max = d
			index = i
		}
	}
	return index
}
