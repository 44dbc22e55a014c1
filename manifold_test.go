package nphase_test

import (
	"testing"

	"github.com/setanarut/vec"
	"go.viam.com/test"

	"github.com/setanarut/nphase"
)

func TestMatchContactsByFeature(t *testing.T) {
	previous := []nphase.ContactPoint{
		{FeatureID: 7, NormalImpulse: 1, TangentImpulse: 0.5},
		{FeatureID: 9, NormalImpulse: 2, TangentImpulse: -0.5},
	}
	m := nphase.ContactManifold{Points: []nphase.ContactPoint{
		// Far from the old point, the feature id still matches.
		{FeatureID: 9, LocalPoint1: vec.Vec2{X: 10}, LocalPoint2: vec.Vec2{X: 10}},
	}}

	m.MatchContacts(previous, 0.1)
	test.That(t, m.Points[0].NormalImpulse, test.ShouldEqual, 2.0)
	test.That(t, m.Points[0].TangentImpulse, test.ShouldEqual, -0.5)
}

func TestMatchContactsByPosition(t *testing.T) {
	previous := []nphase.ContactPoint{
		{LocalPoint1: vec.Vec2{X: 1}, LocalPoint2: vec.Vec2{X: -1}, NormalImpulse: 3},
		{LocalPoint1: vec.Vec2{X: 1, Y: 0.08}, LocalPoint2: vec.Vec2{X: -1, Y: 0.08}, NormalImpulse: 4},
	}
	m := nphase.ContactManifold{Points: []nphase.ContactPoint{
		{LocalPoint1: vec.Vec2{X: 1, Y: 0.01}, LocalPoint2: vec.Vec2{X: -1, Y: 0.01}},
		{LocalPoint1: vec.Vec2{X: 1, Y: 0.5}, LocalPoint2: vec.Vec2{X: -1, Y: 0.5}},
	}}

	m.MatchContacts(previous, 0.1)
	// Nearest of the two candidates within the threshold.
	test.That(t, m.Points[0].NormalImpulse, test.ShouldEqual, 3.0)
	// Beyond the threshold.
	test.That(t, m.Points[1].NormalImpulse, test.ShouldEqual, 0.0)
}

func TestMatchContactsBothPointsWithinThreshold(t *testing.T) {
	previous := []nphase.ContactPoint{
		{LocalPoint1: vec.Vec2{X: 1}, LocalPoint2: vec.Vec2{X: -1, Y: 0.3}, NormalImpulse: 3},
	}
	m := nphase.ContactManifold{Points: []nphase.ContactPoint{
		{LocalPoint1: vec.Vec2{X: 1}, LocalPoint2: vec.Vec2{X: -1}},
	}}

	m.MatchContacts(previous, 0.1)
	test.That(t, m.Points[0].NormalImpulse, test.ShouldEqual, 0.0)
}

func TestMaxPenetration(t *testing.T) {
	m := nphase.ContactManifold{Points: []nphase.ContactPoint{{Distance: -0.2}, {Distance: 0.1}, {Distance: -0.05}}}
	test.That(t, m.MaxPenetration(), test.ShouldEqual, 0.2)

	m = nphase.ContactManifold{Points: []nphase.ContactPoint{{Distance: 0.1}}}
	test.That(t, m.MaxPenetration(), test.ShouldEqual, 0.0)
}
