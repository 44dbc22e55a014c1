package nphase

import (
	"github.com/setanarut/vec"
)

// Draw flags
const (
	DrawShapes          = 1 << 0
	DrawCollisionPoints = 1 << 1
)

// 16 bytes
type FColor struct {
	R, G, B, A float32
}

type Drawer interface {
	DrawCircle(pos vec.Vec2, radius float64, outline, fill FColor, data any)
	DrawSegment(a, b vec.Vec2, fill FColor, data any)
	DrawFatSegment(a, b vec.Vec2, radius float64, outline, fill FColor, data any)
	DrawPolygon(verts []vec.Vec2, radius float64, outline, fill FColor, data any)

	Flags() uint
	OutlineColor() FColor
	ColliderColor(collider *Collider, data any) FColor
	CollisionPointColor() FColor
	Data() any
}

// DrawShape draws a collider's shape with the drawer implementation.
// Shapes other than Circle, Segment and Poly are skipped.
func DrawShape(collider *Collider, drawer Drawer) {
	data := drawer.Data()

	outline := drawer.OutlineColor()
	fill := drawer.ColliderColor(collider, data)
	t := collider.Pose

	switch shape := collider.Shape.(type) {
	case *Circle:
		drawer.DrawCircle(t.Apply(shape.Offset), shape.Radius, outline, fill, data)
	case *Segment:
		drawer.DrawFatSegment(t.Apply(shape.A), t.Apply(shape.B), shape.Radius, outline, fill, data)
	case *Poly:
		verts := make([]vec.Vec2, shape.Count())
		for i := range verts {
			verts[i] = t.Apply(shape.Vert(i))
		}
		drawer.DrawPolygon(verts, shape.Radius, outline, fill, data)
	}
}

// DrawCollisions draws colliders and the contact points of every registry entry, depending on the drawer flags.
// Each contact point is drawn as a short segment along the normal.
func DrawCollisions(collisions *Collisions, colliders ColliderSource, drawer Drawer) {
	flags := drawer.Flags()
	data := drawer.Data()

	drawn := map[Entity]bool{}
	collisions.Each(func(c *Contacts) {
		c1, err1 := colliders.Collider(c.Entity1)
		c2, err2 := colliders.Collider(c.Entity2)
		if err1 != nil || err2 != nil {
			return
		}

		if flags&DrawShapes != 0 {
			for _, collider := range []*Collider{c1, c2} {
				if !drawn[collider.Entity] {
					drawn[collider.Entity] = true
					DrawShape(collider, drawer)
				}
			}
		}

		if flags&DrawCollisionPoints == 0 {
			return
		}
		color := drawer.CollisionPointColor()
		for _, m := range c.Manifolds {
			n := m.Normal
			for _, p := range m.Points {
				p1 := c1.Pose.Apply(p.LocalPoint1)
				p2 := c2.Pose.Apply(p.LocalPoint2)

				a := p1.Add(n.Scale(-2))
				b := p2.Add(n.Scale(2))
				drawer.DrawSegment(a, b, color, data)
			}
		}
	})
}
