package nphase

import "github.com/setanarut/vec"

// NewCircle returns a Circle shape with a specified radius and offset.
func NewCircle(r float64, offset vec.Vec2) *Circle {
	return &Circle{Offset: offset, Radius: r}
}

// NewSegment returns a Segment shape using two points 'a' and 'b'
// and rounding radius 'r'.
func NewSegment(a, b vec.Vec2, r float64) *Segment {
	return &Segment{A: a, B: b, Radius: r}
}

// NewBox returns a Box shape with specified width 'w',
// height 'h', and rounding radius 'r', centered on the collider origin.
func NewBox(w, h, r float64) *Poly {
	hw := w / 2.0
	hh := h / 2.0
	return NewBoxBB(BB{-hw, -hh, hw, hh}, r)
}

// NewBoxBB returns a Box shape covering the bounding box 'bb'
// with rounding radius 'r'.
func NewBoxBB(bb BB, r float64) *Poly {
	return NewPolyRaw([]vec.Vec2{
		{X: bb.R, Y: bb.B},
		{X: bb.R, Y: bb.T},
		{X: bb.L, Y: bb.T},
		{X: bb.L, Y: bb.B},
	}, r)
}

// NewPoly returns the convex hull of vertices, transformed by t, as a
// polygon with rounding radius r.
func NewPoly(vertices []vec.Vec2, t Transform, r float64) *Poly {
	hullVerts := make([]vec.Vec2, len(vertices))
	// Transform the verts before building the hull in case of a negative scale.
	for i, v := range vertices {
		hullVerts[i] = t.Apply(v)
	}

	hullCount := convexHull(len(hullVerts), hullVerts, 0)
	return NewPolyRaw(hullVerts[:hullCount], r)
}

// NewPolyRaw initializes a polygon shape with rounded corners.
// The vertexes must be convex with a counter-clockwise winding.
func NewPolyRaw(verts []vec.Vec2, r float64) *Poly {
	poly := &Poly{Radius: r}
	poly.SetVerts(verts)
	return poly
}

// MomentForCircle calculates the moment of inertia for a circle.
//
// d1 and d2 are the inner and outer diameters. A solid circle has an inner
// diameter (d1) of 0.
func MomentForCircle(mass, d1, d2 float64, offset vec.Vec2) float64 {
	return mass * (0.5*(d1*d1+d2*d2) + offset.LengthSq())
}

// MomentForBox calculates the moment of inertia for a solid box.
func MomentForBox(mass, width, height float64) float64 {
	return mass * (width*width + height*height) / 12.0
}

// MomentForSegment calculates the moment of inertia for a line segment.
//
// Beveling radius is not supported.
func MomentForSegment(mass float64, a, b vec.Vec2, radius float64) float64 {
	offset := a.Lerp(b, 0.5)
	length := a.Distance(b) + 2.0*radius
	return mass * ((length*length+4.0*radius*radius)/12.0 + offset.LengthSq())
}
