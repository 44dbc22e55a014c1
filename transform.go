package nphase

import (
	"math"

	"github.com/setanarut/vec"
)

// Transform represents a 2D affine transformation using a 2x3 matrix.
//
//	| a  c  tx |   -> X' = a * X + c * Y + tx
//	| b  d  ty |   -> Y' = b * X + d * Y + ty
//
// Collider poses are rigid transforms (rotation and translation only).
type Transform struct {
	a, b, c, d, tx, ty float64
}

// NewTransformIdentity creates and returns an identity transformation.
func NewTransformIdentity() Transform {
	return Transform{1, 0, 0, 1, 0, 0}
}

// NewTransformTranspose returns a new transformation matrix in transposed order.
func NewTransformTranspose(a, c, tx, b, d, ty float64) Transform {
	return Transform{a, b, c, d, tx, ty}
}

// NewTransformTranslate returns a new transformation matrix with translation
func NewTransformTranslate(translate vec.Vec2) Transform {
	return NewTransformTranspose(
		1, 0, translate.X,
		0, 1, translate.Y,
	)
}

// NewTransformRigid creates a rigid transformation from a translation and a
// rotation angle in radians.
func NewTransformRigid(translate vec.Vec2, rotation float64) Transform {
	cos, sin := math.Cos(rotation), math.Sin(rotation)
	return NewTransformTranspose(
		cos, -sin, translate.X,
		sin, cos, translate.Y,
	)
}

// Inverse returns the inverse of this matrix t.
func (t Transform) Inverse() Transform {
	invDet := 1.0 / (t.a*t.d - t.c*t.b)
	return NewTransformTranspose(
		t.d*invDet, -t.c*invDet, (t.c*t.ty-t.tx*t.d)*invDet,
		-t.b*invDet, t.a*invDet, (t.tx*t.b-t.a*t.ty)*invDet,
	)
}

// Mult multiplies this and t2
func (t Transform) Mult(t2 Transform) Transform {
	return NewTransformTranspose(
		t.a*t2.a+t.c*t2.b, t.a*t2.c+t.c*t2.d, t.a*t2.tx+t.c*t2.ty+t.tx,
		t.b*t2.a+t.d*t2.b, t.b*t2.c+t.d*t2.d, t.b*t2.tx+t.d*t2.ty+t.ty,
	)
}

// Apply transforms the point p.
func (t Transform) Apply(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: t.a*p.X + t.c*p.Y + t.tx, Y: t.b*p.X + t.d*p.Y + t.ty}
}

// ApplyVector transforms the direction v, ignoring translation.
func (t Transform) ApplyVector(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: t.a*v.X + t.c*v.Y, Y: t.b*v.X + t.d*v.Y}
}

// Translation returns the translation part of t.
func (t Transform) Translation() vec.Vec2 {
	return vec.Vec2{X: t.tx, Y: t.ty}
}

// Rotation returns the rotation of t as a unit complex number (cos, sin).
func (t Transform) Rotation() vec.Vec2 {
	return vec.Vec2{X: t.a, Y: t.b}
}

// BB returns the bounding box that contains bb after transformation.
func (t Transform) BB(bb BB) BB {
	center := bb.Center()
	hw := (bb.R - bb.L) * 0.5
	hh := (bb.T - bb.B) * 0.5

	a, b, d, e := t.a*hw, t.c*hh, t.b*hw, t.d*hh
	hwMax := math.Max(math.Abs(a+b), math.Abs(a-b))
	hhMax := math.Max(math.Abs(d+e), math.Abs(d-e))
	return NewBBForExtents(t.Apply(center), hwMax, hhMax)
}
