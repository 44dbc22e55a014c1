package nphase

import (
	"github.com/setanarut/vec"
)

// ContactPoint is a single point of contact between two colliders.
type ContactPoint struct {
	// LocalPoint1 and LocalPoint2 are the surface points in the local frames of collider 1 and 2.
	LocalPoint1, LocalPoint2 vec.Vec2
	// Distance is the signed separation along the normal. Overlapping means it will be negative.
	Distance float64
	// Accumulated impulses of the previous solve, used to warm start the solver.
	NormalImpulse, TangentImpulse float64
	// FeatureID identifies the pair of features in contact. Zero means unknown.
	FeatureID HashValue
}

// ContactManifold is a set of points sharing one contact normal.
type ContactManifold struct {
	Points []ContactPoint
	// Normal is the world space contact normal pointing from collider 1 towards collider 2.
	Normal       vec.Vec2
	Friction     float64
	Restitution  float64
	TangentSpeed float64
	// Index of the manifold within its Contacts.
	Index int
}

// Tangent returns the friction direction of the manifold.
func (m *ContactManifold) Tangent() vec.Vec2 {
	return m.Normal.Perp()
}

// MaxPenetration returns the deepest overlap of the manifold, or zero if all points are separated.
func (m *ContactManifold) MaxPenetration() float64 {
	var depth float64
	for _, p := range m.Points {
		depth = max(depth, -p.Distance)
	}
	return depth
}

// MatchContacts copies accumulated impulses from previous onto matching points of m.
//
// Points are matched by feature id when both carry one. Otherwise the nearest previous point
// whose two local points both lie within threshold is used. Unmatched points are left unchanged.
func (m *ContactManifold) MatchContacts(previous []ContactPoint, threshold float64) {
	thresholdSq := threshold * threshold

	for i := range m.Points {
		con := &m.Points[i]

		if con.FeatureID != 0 {
			if old, ok := matchFeature(previous, con.FeatureID); ok {
				con.NormalImpulse = old.NormalImpulse
				con.TangentImpulse = old.TangentImpulse
				continue
			}
		}

		best := -1
		bestDist := infinity
		for j, old := range previous {
			d1 := con.LocalPoint1.DistanceSq(old.LocalPoint1)
			d2 := con.LocalPoint2.DistanceSq(old.LocalPoint2)
			if d1 > thresholdSq || d2 > thresholdSq {
				continue
			}
			if d := d1 + d2; d < bestDist {
				bestDist = d
				best = j
			}
		}
		if best >= 0 {
			con.NormalImpulse = previous[best].NormalImpulse
			con.TangentImpulse = previous[best].TangentImpulse
		}
	}
}

func matchFeature(points []ContactPoint, id HashValue) (ContactPoint, bool) {
	for _, p := range points {
		if p.FeatureID == id {
			return p, true
		}
	}
	return ContactPoint{}, false
}
