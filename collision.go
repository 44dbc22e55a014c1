package nphase

import (
	"math"

	"github.com/setanarut/vec"
	"go.uber.org/zap"
)

const (
	maxGjkIterations  = 30
	maxEpaIterations  = 30
	warnEpaIterations = 20
)

type SupportContext struct {
	shape1, shape2 *posedShape
	logger         *zap.Logger
}

// Support calculates the maximal point on the minkowski difference of two shapes along a particular axis.
func (ctx *SupportContext) Support(n vec.Vec2) MinkowskiPoint {
	a := ctx.shape1.supportPoint(n.Neg())
	b := ctx.shape2.supportPoint(n)
	return NewMinkowskiPoint(a, b)
}

type ClosestPoints struct {
	// Surface points in absolute coordinates.
	a, b vec.Vec2
	// Minimum separating axis of the two shapes.
	n vec.Vec2
	// Signed distance between the points.
	d float64
}

// Contact is a pair of world space surface points found by a collision function.
type Contact struct {
	p1, p2 vec.Vec2
	hash   HashValue
}

// CollisionInfo collects the contacts of two posed shapes.
// Shapes are sorted by order so a and b may be swapped relative to the caller.
type CollisionInfo struct {
	a, b *posedShape
	// Separated shapes closer than this still report contacts.
	maxDistance float64
	// Normal pointing from a to b.
	n     vec.Vec2
	count int
	arr   [MaxContactsPerManifold]Contact
}

// PushContact appends a contact. Extra contacts beyond the manifold capacity are ignored.
func (info *CollisionInfo) PushContact(p1, p2 vec.Vec2, hash HashValue) {
	if info.count >= len(info.arr) {
		return
	}
	info.arr[info.count] = Contact{p1, p2, hash}
	info.count++
}

// Contacts returns the contacts found so far.
func (info *CollisionInfo) Contacts() []Contact {
	return info.arr[:info.count]
}

type CollisionFunc func(info *CollisionInfo, logger *zap.Logger)

func CircleToCircle(info *CollisionInfo, _ *zap.Logger) {
	c1 := info.a
	c2 := info.b

	mindist := c1.radius + c2.radius
	delta := c2.a.Sub(c1.a)
	dist := delta.Mag()

	if dist-mindist <= info.maxDistance {
		if dist != 0 {
			info.n = delta.Scale(1.0 / dist)
		} else {
			info.n = vec.Vec2{X: 1}
		}
		info.PushContact(c1.a.Add(info.n.Scale(c1.radius)), c2.a.Add(info.n.Scale(-c2.radius)), 0)
	}
}

func CollisionError(_ *CollisionInfo, _ *zap.Logger) {
	panic("Shape types are not sorted")
}

func CircleToSegment(info *CollisionInfo, _ *zap.Logger) {
	circle := info.a
	segment := info.b

	segA := segment.a
	segB := segment.b
	center := circle.a

	segDelta := segB.Sub(segA)
	closestT := 0.0
	if lenSq := segDelta.LengthSq(); lenSq > 0 {
		closestT = clamp01(segDelta.Dot(center.Sub(segA)) / lenSq)
	}
	closest := segA.Add(segDelta.Scale(closestT))

	mindist := circle.radius + segment.radius
	delta := closest.Sub(center)
	dist := delta.Mag()
	if dist-mindist <= info.maxDistance {
		if dist != 0 {
			info.n = delta.Scale(1 / dist)
		} else {
			info.n = segment.n
		}
		n := info.n

		if (closestT != 0.0 || n.Dot(segment.aTangent) >= 0.0) &&
			(closestT != 1.0 || n.Dot(segment.bTangent) >= 0.0) {
			info.PushContact(center.Add(n.Scale(circle.radius)), closest.Add(n.Scale(-segment.radius)), 0)
		}
	}
}

func SegmentToSegment(info *CollisionInfo, logger *zap.Logger) {
	seg1 := info.a
	seg2 := info.b

	context := SupportContext{seg1, seg2, logger}
	points := GJK(context)

	n := points.n

	if points.d-seg1.radius-seg2.radius > info.maxDistance {
		return
	}

	if (points.a != seg1.a || n.Dot(seg1.aTangent) <= 0) &&
		(points.a != seg1.b || n.Dot(seg1.bTangent) <= 0) &&
		(points.b != seg2.a || n.Dot(seg2.aTangent) >= 0) &&
		(points.b != seg2.b || n.Dot(seg2.bTangent) >= 0) {
		ContactPoints(SupportEdgeForSegment(seg1, n), SupportEdgeForSegment(seg2, n.Neg()), points, info)
	}
}

func CircleToPoly(info *CollisionInfo, logger *zap.Logger) {
	circle := info.a
	poly := info.b

	context := SupportContext{circle, poly, logger}
	points := GJK(context)

	if points.d-circle.radius-poly.radius <= info.maxDistance {
		info.n = points.n
		info.PushContact(points.a.Add(info.n.Scale(circle.radius)), points.b.Add(info.n.Scale(-poly.radius)), 0)
	}
}

func SegmentToPoly(info *CollisionInfo, logger *zap.Logger) {
	segment := info.a
	poly := info.b

	context := SupportContext{segment, poly, logger}
	points := GJK(context)

	n := points.n

	// If the closest points are nearer than the sum of the radii...
	if points.d-segment.radius-poly.radius <= info.maxDistance && (
	// Reject endcap collisions if tangents are provided.
	(points.a != segment.a || n.Dot(segment.aTangent) <= 0) &&
		(points.a != segment.b || n.Dot(segment.bTangent) <= 0)) {
		ContactPoints(SupportEdgeForSegment(segment, n), SupportEdgeForPoly(poly, n.Neg()), points, info)
	}
}

func PolyToPoly(info *CollisionInfo, logger *zap.Logger) {
	poly1 := info.a
	poly2 := info.b

	context := SupportContext{poly1, poly2, logger}
	points := GJK(context)

	if points.d-poly1.radius-poly2.radius <= info.maxDistance {
		ContactPoints(SupportEdgeForPoly(poly1, points.n), SupportEdgeForPoly(poly2, points.n.Neg()), points, info)
	}
}

// MinkowskiPoint is a point on the surface of two shapes' minkowski difference.
type MinkowskiPoint struct {
	// Cache the two original support points.
	a, b vec.Vec2
	// b - a
	ab vec.Vec2
	// Concatenate the two support point indexes.
	collisionID uint32
}

func NewMinkowskiPoint(a, b SupportPoint) MinkowskiPoint {
	return MinkowskiPoint{a.p, b.p, b.p.Sub(a.p), (a.index&0xFF)<<8 | (b.index & 0xFF)}
}

// ClosestPoints calculates the closest points on two shapes given the closest edge on their minkowski difference to (0, 0)
func (v0 MinkowskiPoint) ClosestPoints(v1 MinkowskiPoint) ClosestPoints {
	// Find the closest p(t) on the minkowski difference to (0, 0)
	t := closestT(v0.ab, v1.ab)
	p := lerpT(v0.ab, v1.ab, t)

	// Interpolate the original support points using the same 't' value as above.
	// This gives you the closest surface points in absolute coordinates. NEAT!
	pa := lerpT(v0.a, v1.a, t)
	pb := lerpT(v0.b, v1.b, t)

	// First try calculating the MSA from the minkowski difference edge.
	// This gives us a nice, accurate MSA when the surfaces are close together.
	delta := v1.ab.Sub(v0.ab)
	n := unitOr(delta.ReversePerp(), vec.Vec2{X: 1})
	d := n.Dot(p)

	if d <= 0 || (-1 < t && t < 1) {
		// If the shapes are overlapping, or we have a regular vertex/edge collision, we are done.
		return ClosestPoints{pa, pb, n, d}
	}

	// Vertex/vertex collisions need special treatment since the MSA won't be shared with an axis of the minkowski difference.
	d2 := p.Mag()
	n2 := p.Scale(1 / (d2 + math.SmallestNonzeroFloat64))

	return ClosestPoints{pa, pb, n2, d2}
}

type EdgePoint struct {
	p vec.Vec2
	// Feature hash of the vertex, used to match contacts across steps.
	hash HashValue
}

type Edge struct {
	a, b EdgePoint
	r    float64
	n    vec.Vec2
}

func SupportEdgeForSegment(seg *posedShape, n vec.Vec2) Edge {
	if seg.n.Dot(n) > 0 {
		return Edge{
			a: EdgePoint{seg.a, featureHash(seg.side, 0)},
			b: EdgePoint{seg.b, featureHash(seg.side, 1)},
			r: seg.radius,
			n: seg.n,
		}
	}

	return Edge{
		a: EdgePoint{seg.b, featureHash(seg.side, 1)},
		b: EdgePoint{seg.a, featureHash(seg.side, 0)},
		r: seg.radius,
		n: seg.n.Neg(),
	}
}

func SupportEdgeForPoly(poly *posedShape, n vec.Vec2) Edge {
	planes := poly.planes
	count := len(planes)
	i1 := polySupportPointIndex(planes, n)

	i0 := (i1 - 1 + count) % count
	i2 := (i1 + 1) % count

	if n.Dot(planes[i1].N) > n.Dot(planes[i2].N) {
		return Edge{
			EdgePoint{planes[i0].V0, featureHash(poly.side, i0)},
			EdgePoint{planes[i1].V0, featureHash(poly.side, i1)},
			poly.radius,
			planes[i1].N,
		}
	}

	return Edge{
		EdgePoint{planes[i1].V0, featureHash(poly.side, i1)},
		EdgePoint{planes[i2].V0, featureHash(poly.side, i2)},
		poly.radius,
		planes[i2].N,
	}
}

// ContactPoints finds contact point pairs on two support edges' surfaces.
// Pairs separated by more than info.maxDistance along the normal are discarded.
func ContactPoints(e1, e2 Edge, points ClosestPoints, info *CollisionInfo) {
	mindist := e1.r + e2.r

	if points.d-mindist > info.maxDistance {
		return
	}

	n := points.n
	info.n = points.n

	dE1A := e1.a.p.Cross(n)
	dE1B := e1.b.p.Cross(n)
	dE2A := e2.a.p.Cross(n)
	dE2B := e2.b.p.Cross(n)

	e1Denom := 1 / (dE1B - dE1A + math.SmallestNonzeroFloat64)
	e2Denom := 1 / (dE2B - dE2A + math.SmallestNonzeroFloat64)

	// Project the endpoints of the two edges onto the opposing edge, clamping them as necessary.
	// Compare the projected points to the collision normal to see if the shapes overlap there.
	{
		p1 := n.Scale(e1.r).Add(e1.a.p.Lerp(e1.b.p, clamp01((dE2B-dE1A)*e1Denom)))
		p2 := n.Scale(-e2.r).Add(e2.a.p.Lerp(e2.b.p, clamp01((dE1A-dE2A)*e2Denom)))
		dist := p2.Sub(p1).Dot(n)
		if dist <= info.maxDistance {
			hash1a2b := HashPair(e1.a.hash, e2.b.hash)
			info.PushContact(p1, p2, hash1a2b)
		}
	}
	{
		p1 := n.Scale(e1.r).Add(e1.a.p.Lerp(e1.b.p, clamp01((dE2A-dE1A)*e1Denom)))
		p2 := n.Scale(-e2.r).Add(e2.a.p.Lerp(e2.b.p, clamp01((dE1B-dE2A)*e2Denom)))
		dist := p2.Sub(p1).Dot(n)
		if dist <= info.maxDistance {
			hash1b2a := HashPair(e1.b.hash, e2.a.hash)
			info.PushContact(p1, p2, hash1b2a)
		}
	}
}

// GJK finds the closest points between two shapes using the GJK algorithm.
func GJK(ctx SupportContext) ClosestPoints {
	// Use the shapes' bounding box centers as a guess for a starting axis.
	axis := ctx.shape1.bb.Center().Sub(ctx.shape2.bb.Center()).Perp()
	v0 := ctx.Support(axis)
	v1 := ctx.Support(axis.Neg())

	return GJKRecurse(ctx, v0, v1, 1)
}

// GJKRecurse implementation of the GJK loop.
func GJKRecurse(ctx SupportContext, v0, v1 MinkowskiPoint, iteration int) ClosestPoints {
	if iteration > maxGjkIterations {
		return v0.ClosestPoints(v1)
	}

	if pointGreater(v1.ab, v0.ab, vec.Vec2{}) {
		// Origin is behind axis. Flip and try again.
		return GJKRecurse(ctx, v1, v0, iteration)
	}
	t := closestT(v0.ab, v1.ab)
	var n vec.Vec2
	if -1.0 < t && t < 1.0 {
		n = v1.ab.Sub(v0.ab).Perp()
	} else {
		n = lerpT(v0.ab, v1.ab, t).Neg()
	}
	p := ctx.Support(n)

	if pointGreater(p.ab, v0.ab, vec.Vec2{}) && pointGreater(v1.ab, p.ab, vec.Vec2{}) {
		return EPA(ctx, v0, p, v1)
	}

	if checkAxis(v0.ab, v1.ab, p.ab, n) {
		return v0.ClosestPoints(v1)
	}

	if closestDist(v0.ab, p.ab) < closestDist(p.ab, v1.ab) {
		return GJKRecurse(ctx, v0, p, iteration+1)
	}

	return GJKRecurse(ctx, p, v1, iteration+1)
}

// EPA is called from GJK when two shapes overlap.
// Finds the closest points on the surface of two overlapping shapes using the EPA algorithm.
// This is a moderately expensive step! Avoid it by adding radii to your shapes so their inner polygons won't overlap.
func EPA(ctx SupportContext, v0, v1, v2 MinkowskiPoint) ClosestPoints {
	hull := []MinkowskiPoint{v0, v1, v2}
	return EPARecurse(ctx, 3, hull, 1)
}

// EPARecurse implementation of the EPA loop.
// Each recursion adds a point to the convex hull until it's known that we have the closest point on the surface.
func EPARecurse(ctx SupportContext, count int, hull []MinkowskiPoint, iteration int) ClosestPoints {
	mini := 0
	minDist := infinity

	// Find the closest segment hull[i] and hull[i + 1] to (0, 0)
	i := count - 1
	j := 0
	for j < count {
		d := closestDist(hull[i].ab, hull[j].ab)
		if d < minDist {
			minDist = d
			mini = i
		}
		i = j
		j++
	}

	v0 := hull[mini]
	v1 := hull[(mini+1)%count]

	p := ctx.Support(v1.ab.Sub(v0.ab).Perp())

	duplicate := p.collisionID == v0.collisionID || p.collisionID == v1.collisionID

	if !duplicate && pointGreater(v0.ab, v1.ab, p.ab) && iteration < maxEpaIterations {
		// Rebuild the convex hull by inserting p.
		hull2 := make([]MinkowskiPoint, count+1)
		count2 := 1
		hull2[0] = p

		for i := range count {
			index := (mini + 1 + i) % count

			h0 := hull2[count2-1].ab
			h1 := hull[index].ab
			var h2 vec.Vec2
			if i+1 < count {
				h2 = hull[(index+1)%count].ab
			} else {
				h2 = p.ab
			}

			if pointGreater(h0, h2, h1) {
				hull2[count2] = hull[index]
				count2++
			}
		}

		return EPARecurse(ctx, count2, hull2, iteration+1)
	}

	if iteration > warnEpaIterations {
		ctx.logger.Warn("high EPA iterations", zap.Int("iterations", iteration))
	}

	// Could not find a new point to insert, so we have found the closest edge of the minkowski difference.
	return v0.ClosestPoints(v1)
}

var builtinCollisionFuncs = [shapeTypeNum * shapeTypeNum]CollisionFunc{
	CircleToCircle,
	CollisionError,
	CollisionError,
	CircleToSegment,
	SegmentToSegment,
	CollisionError,
	CircleToPoly,
	SegmentToPoly,
	PolyToPoly,
}

// Collide performs a collision between two posed shapes.
func Collide(a, b *posedShape, maxDistance float64, logger *zap.Logger) CollisionInfo {
	if logger == nil {
		logger = zap.NewNop()
	}
	info := CollisionInfo{maxDistance: maxDistance}

	// Make sure the shape types are in order.
	if a.order > b.order {
		info.a = b
		info.b = a
	} else {
		info.a = a
		info.b = b
	}

	builtinCollisionFuncs[info.a.order+info.b.order*shapeTypeNum](&info, logger)
	return info
}
