package nphase

import (
	"math"
	"slices"

	"github.com/setanarut/vec"
)

const (
	infinity     float64 = math.MaxFloat64
	magicEpsilon float64 = 1e-5

	// MaxContactsPerManifold is the most points a built-in shape pair can report in one manifold.
	MaxContactsPerManifold int = 2

	// MaxMatchedManifolds is the manifold count above which warm-start matching is skipped.
	MaxMatchedManifolds int = 4

	// matchDistanceFactor scales the length unit into the position matching threshold.
	matchDistanceFactor float64 = 0.1
)

// Entity is an opaque handle to a collider or rigid body owned by the host.
// Handles are totally ordered by their numeric value.
type Entity uint32

// InvalidEntity marks an absent optional reference, such as a collider without a body.
const InvalidEntity Entity = ^Entity(0)

// Valid reports whether e refers to an entity.
func (e Entity) Valid() bool {
	return e != InvalidEntity
}

// Pair is an ordered candidate pair produced by the broad phase.
type Pair struct {
	A, B Entity
}

// PairKey is the canonical registry key for an unordered collider pair.
// Entity1 is always less than Entity2.
type PairKey struct {
	Entity1, Entity2 Entity
}

// NewPairKey returns the canonical key for a and b regardless of argument order.
func NewPairKey(a, b Entity) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{a, b}
}

// Less orders keys by Entity1, then Entity2.
func (k PairKey) Less(other PairKey) bool {
	if k.Entity1 != other.Entity1 {
		return k.Entity1 < other.Entity1
	}
	return k.Entity2 < other.Entity2
}

func sortedEntities(entities []Entity) []Entity {
	slices.Sort(entities)
	return entities
}

func comparePairKeys(a, b PairKey) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// HashValue identifies geometric features (vertices, edges) for contact matching.
// Zero means the feature is unknown.
type HashValue uint32

const hashCoef = 3344921057

// HashPair combines two feature hashes.
// It is symmetric: HashPair(a, b) == HashPair(b, a).
func HashPair(a, b HashValue) HashValue {
	return a*hashCoef ^ b*hashCoef
}

// featureHash identifies vertex index on the collider at the given side (1 or 2).
func featureHash(side HashValue, index int) HashValue {
	return side<<16 | HashValue(index+1)
}

// CombineRule selects how the coefficients of two colliders are merged.
// When the two sides disagree the rule with the higher value wins.
type CombineRule uint8

const (
	CombineAverage CombineRule = iota
	CombineMin
	CombineMultiply
	CombineMax
)

func (r CombineRule) combine(a, b float64) float64 {
	switch r {
	case CombineMin:
		return math.Min(a, b)
	case CombineMultiply:
		return a * b
	case CombineMax:
		return math.Max(a, b)
	default:
		return (a + b) * 0.5
	}
}

// Friction holds the friction coefficients of a collider or body.
type Friction struct {
	Dynamic, Static float64
	Combine         CombineRule
}

// NewFriction returns a friction with equal static and dynamic coefficients.
func NewFriction(coefficient float64) Friction {
	return Friction{Dynamic: coefficient, Static: coefficient}
}

// CombineWith merges f and other using the higher priority rule of the two.
func (f Friction) CombineWith(other Friction) Friction {
	rule := max(f.Combine, other.Combine)
	return Friction{
		Dynamic: rule.combine(f.Dynamic, other.Dynamic),
		Static:  rule.combine(f.Static, other.Static),
		Combine: rule,
	}
}

// Restitution holds the coefficient of restitution of a collider or body.
type Restitution struct {
	Coefficient float64
	Combine     CombineRule
}

// CombineWith merges r and other using the higher priority rule of the two.
func (r Restitution) CombineWith(other Restitution) Restitution {
	rule := max(r.Combine, other.Combine)
	return Restitution{
		Coefficient: rule.combine(r.Coefficient, other.Coefficient),
		Combine:     rule,
	}
}

// SplittingPlane is a polygon edge: its end vertex and outward normal.
type SplittingPlane struct {
	V0, N vec.Vec2
}

func clamp(f, min, max float64) float64 {
	if f > min {
		return math.Min(f, max)
	}
	return math.Min(min, max)
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(f, 1))
}

func lerpT(a, b vec.Vec2, t float64) vec.Vec2 {
	ht := 0.5 * t
	return a.Scale(0.5 - ht).Add(b.Scale(0.5 + ht))
}

func closestDist(v0, v1 vec.Vec2) float64 {
	return lerpT(v0, v1, closestT(v0, v1)).LengthSq()
}

func closestT(a, b vec.Vec2) float64 {
	delta := b.Sub(a)
	return -clamp(delta.Dot(a.Add(b))/delta.LengthSq(), -1.0, 1.0)
}

func checkAxis(v, v1, p, n vec.Vec2) bool {
	return p.Dot(n) <= math.Max(v.Dot(n), v1.Dot(n))
}

func pointGreater(v, b, c vec.Vec2) bool {
	return (b.Y-v.Y)*(v.X+b.X-2*c.X) > (b.X-v.X)*(v.Y+b.Y-2*c.Y)
}

// unitOr normalizes v, falling back to fallback for near-zero vectors.
func unitOr(v vec.Vec2, fallback vec.Vec2) vec.Vec2 {
	l := math.Sqrt(v.Dot(v))
	if l < magicEpsilon {
		return fallback
	}
	return v.Scale(1 / l)
}

