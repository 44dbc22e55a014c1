package nphase

import (
	"github.com/setanarut/vec"
)

// Circle is a solid circle offset from the collider origin.
type Circle struct {
	Offset vec.Vec2
	Radius float64
}

func (circle *Circle) BB(t Transform) BB {
	return NewBBForCircle(t.Apply(circle.Offset), circle.Radius)
}

func (circle *Circle) pose(t Transform, side HashValue) posedShape {
	c := t.Apply(circle.Offset)
	return posedShape{
		order:  orderCircle,
		side:   side,
		bb:     NewBBForCircle(c, circle.Radius),
		radius: circle.Radius,
		a:      c,
	}
}
