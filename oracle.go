package nphase

import (
	"fmt"

	"go.uber.org/zap"
)

// ManifoldContext identifies the colliders a ContactOracle query is made for.
type ManifoldContext struct {
	Entity1, Entity2 Entity
}

// ContactOracle computes contact manifolds between two posed shapes.
//
// Implementations must return an empty result, not fail, when the shapes are further
// apart than maxDistance. Normals point from shape1 to shape2 and local points are
// expressed in the frames given by pose1 and pose2. ContactManifolds is called from
// several workers at once and must not mutate shared state.
type ContactOracle interface {
	ContactManifolds(shape1 Shape, pose1 Transform, shape2 Shape, pose2 Transform, maxDistance float64, ctx ManifoldContext) []ContactManifold
}

// ContactOracleFunc adapts a function to ContactOracle.
type ContactOracleFunc func(shape1 Shape, pose1 Transform, shape2 Shape, pose2 Transform, maxDistance float64, ctx ManifoldContext) []ContactManifold

func (f ContactOracleFunc) ContactManifolds(shape1 Shape, pose1 Transform, shape2 Shape, pose2 Transform, maxDistance float64, ctx ManifoldContext) []ContactManifold {
	return f(shape1, pose1, shape2, pose2, maxDistance, ctx)
}

// GeometryOracle is the ContactOracle for Circle, Segment and Poly shapes.
// Every pair yields at most one manifold of up to MaxContactsPerManifold points.
type GeometryOracle struct {
	logger *zap.Logger
}

// NewGeometryOracle returns a GeometryOracle. A nil logger disables logging.
func NewGeometryOracle(logger *zap.Logger) *GeometryOracle {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeometryOracle{logger: logger}
}

func (o *GeometryOracle) ContactManifolds(shape1 Shape, pose1 Transform, shape2 Shape, pose2 Transform, maxDistance float64, ctx ManifoldContext) []ContactManifold {
	s1, ok1 := shape1.(builtinShape)
	s2, ok2 := shape2.(builtinShape)
	if !ok1 || !ok2 {
		o.logger.Debug("unsupported shape pair",
			zap.Uint32("entity1", uint32(ctx.Entity1)),
			zap.Uint32("entity2", uint32(ctx.Entity2)),
			zap.String("shape1", fmt.Sprintf("%T", shape1)),
			zap.String("shape2", fmt.Sprintf("%T", shape2)),
		)
		return nil
	}

	a := s1.pose(pose1, 1)
	b := s2.pose(pose2, 2)
	if !a.bb.Grow(maxDistance).Intersects(b.bb) {
		return nil
	}

	info := Collide(&a, &b, maxDistance, o.logger)
	if info.count == 0 {
		return nil
	}

	// Collide may have swapped the shape order, flip the normal.
	swapped := info.a != &a
	normal := info.n
	if swapped {
		normal = normal.Neg()
	}

	inv1 := pose1.Inverse()
	inv2 := pose2.Inverse()
	points := make([]ContactPoint, 0, info.count)
	for _, con := range info.Contacts() {
		p1, p2 := con.p1, con.p2
		if swapped {
			p1, p2 = p2, p1
		}
		points = append(points, ContactPoint{
			LocalPoint1: inv1.Apply(p1),
			LocalPoint2: inv2.Apply(p2),
			Distance:    p2.Sub(p1).Dot(normal),
			FeatureID:   con.hash,
		})
	}

	return []ContactManifold{{Points: points, Normal: normal}}
}
