package collide2d

import "math"

// FeatureType classifies the shape feature a contact point came from.
type FeatureType uint8

const (
	FeatureVertex FeatureType = iota
	FeatureFace
)

// FeatureID identifies the pair of features that intersect to form a
// contact point: one feature per shape. The solver matches points of
// successive manifolds by ID to carry accumulated impulses across steps
// (warm starting). IDs are stable for unchanged geometry and are swapped
// consistently when the reference role flips between the shapes.
type FeatureID struct {
	IndexA uint8 // feature index on shape A
	IndexB uint8 // feature index on shape B
	TypeA  FeatureType
	TypeB  FeatureType
}

// Key packs the ID into a single word for fast comparison.
func (id FeatureID) Key() uint32 {
	return uint32(id.IndexA) |
		uint32(id.IndexB)<<8 |
		uint32(id.TypeA)<<16 |
		uint32(id.TypeB)<<24
}

func (id *FeatureID) SetKey(key uint32) {
	id.IndexA = uint8(key & 0xFF)
	id.IndexB = uint8(key >> 8 & 0xFF)
	id.TypeA = FeatureType(key >> 16 & 0xFF)
	id.TypeB = FeatureType(key >> 24 & 0xFF)
}

// Swapped returns the ID with the per-shape tags exchanged.
func (id FeatureID) Swapped() FeatureID {
	return FeatureID{
		IndexA: id.IndexB,
		IndexB: id.IndexA,
		TypeA:  id.TypeB,
		TypeB:  id.TypeA,
	}
}

// ManifoldPoint is a contact point belonging to a manifold. The local
// point is stored in the incident shape's frame, so the manifold stays
// meaningful if the caller re-queries after a small transform update.
// This structure is stored across time steps, so it is kept small. The
// impulses are warm-start caches owned by the solver and may not reflect
// reliable contact forces for high speed collisions.
type ManifoldPoint struct {
	LocalPoint     Vec2      // usage depends on the manifold type
	NormalImpulse  float64   // the non-penetration impulse
	TangentImpulse float64   // the friction impulse
	ID             FeatureID // uniquely identifies a point between two shapes
}

// ManifoldType is the closed set of contact configurations.
type ManifoldType uint8

const (
	// ManifoldPoints is point versus point with radius (rounded shapes).
	ManifoldPoints ManifoldType = iota
	// ManifoldFaceA is clip points of B against a face of A.
	ManifoldFaceA
	// ManifoldFaceB is clip points of A against a face of B.
	ManifoldFaceB
)

// Manifold describes the contact between two touching convex shapes in a
// transform-independent way. The local point usage depends on the type:
// for ManifoldPoints it is the local center on shape A, for ManifoldFaceA
// the center of the face on A, for ManifoldFaceB the center of the face
// on B. The local normal is the face normal of the reference shape and is
// unused for ManifoldPoints.
type Manifold struct {
	Points      [MaxManifoldPoints]ManifoldPoint
	LocalNormal Vec2
	LocalPoint  Vec2
	Type        ManifoldType
	PointCount  int
}

// WorldManifold is the world-space evaluation of a manifold under a pair
// of placements.
type WorldManifold struct {
	Normal      Vec2                       // world vector pointing from A to B
	Points      [MaxManifoldPoints]Vec2    // world contact points
	Separations [MaxManifoldPoints]float64 // negative values indicate overlap
}

// Initialize evaluates the manifold in world space using the current
// placements and skin radii of the two shapes.
func (wm *WorldManifold) Initialize(manifold *Manifold, xfA Transform, radiusA float64, xfB Transform, radiusB float64) {
	if manifold.PointCount == 0 {
		return
	}

	switch manifold.Type {
	case ManifoldPoints:
		wm.Normal = Vec2{1.0, 0.0}
		pointA := xfA.Apply(manifold.LocalPoint)
		pointB := xfB.Apply(manifold.Points[0].LocalPoint)
		if pointA.DistanceSquaredTo(pointB) > epsilon*epsilon {
			wm.Normal = pointB.Sub(pointA).Normalize()
		}

		cA := pointA.Add(wm.Normal.Scale(radiusA))
		cB := pointB.Sub(wm.Normal.Scale(radiusB))
		wm.Points[0] = cA.Add(cB).Scale(0.5)
		wm.Separations[0] = cB.Sub(cA).Dot(wm.Normal)

	case ManifoldFaceA:
		wm.Normal = xfA.Q.Apply(manifold.LocalNormal)
		planePoint := xfA.Apply(manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := xfB.Apply(manifold.Points[i].LocalPoint)
			cA := clipPoint.Add(wm.Normal.Scale(radiusA - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cB := clipPoint.Sub(wm.Normal.Scale(radiusB))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cB.Sub(cA).Dot(wm.Normal)
		}

	case ManifoldFaceB:
		wm.Normal = xfB.Q.Apply(manifold.LocalNormal)
		planePoint := xfB.Apply(manifold.LocalPoint)

		for i := 0; i < manifold.PointCount; i++ {
			clipPoint := xfA.Apply(manifold.Points[i].LocalPoint)
			cB := clipPoint.Add(wm.Normal.Scale(radiusB - clipPoint.Sub(planePoint).Dot(wm.Normal)))
			cA := clipPoint.Sub(wm.Normal.Scale(radiusA))
			wm.Points[i] = cA.Add(cB).Scale(0.5)
			wm.Separations[i] = cA.Sub(cB).Dot(wm.Normal)
		}

		// Ensure the normal points from A to B.
		wm.Normal = wm.Normal.Neg()
	}
}

// PointState classifies a manifold point relative to the other manifold
// of a successive pair.
type PointState uint8

const (
	NullState    PointState = iota // point does not exist
	AddState                       // point was added in the update
	PersistState                   // point persisted across the update
	RemoveState                    // point was removed in the update
)

// PointStates computes the transition state of every point of two
// successive manifolds, matching points by feature ID.
func PointStates(state1, state2 *[MaxManifoldPoints]PointState, manifold1, manifold2 *Manifold) {
	for i := 0; i < MaxManifoldPoints; i++ {
		state1[i] = NullState
		state2[i] = NullState
	}

	// Detect persists and removes.
	for i := 0; i < manifold1.PointCount; i++ {
		id := manifold1.Points[i].ID
		state1[i] = RemoveState
		for j := 0; j < manifold2.PointCount; j++ {
			if manifold2.Points[j].ID.Key() == id.Key() {
				state1[i] = PersistState
				break
			}
		}
	}

	// Detect persists and adds.
	for i := 0; i < manifold2.PointCount; i++ {
		id := manifold2.Points[i].ID
		state2[i] = AddState
		for j := 0; j < manifold1.PointCount; j++ {
			if manifold1.Points[j].ID.Key() == id.Key() {
				state2[i] = PersistState
				break
			}
		}
	}
}

// ClipVertex is a candidate contact point with its feature identity,
// used while clipping the incident edge.
type ClipVertex struct {
	V  Vec2
	ID FeatureID
}

// ClipSegmentToLine clips the two-point segment vIn against the
// half-plane dot(normal, p) <= offset, Sutherland-Hodgman style. Points
// behind the plane pass through with their tags; a straddling segment
// gains an interpolated boundary point tagged with vertexIndexA to mark
// it as synthesized by this side plane. Returns the number of output
// points, 0 to 2.
func ClipSegmentToLine(vOut []ClipVertex, vIn []ClipVertex, normal Vec2, offset float64, vertexIndexA int) int {
	numOut := 0

	// Distances of the end points to the line.
	distance0 := normal.Dot(vIn[0].V) - offset
	distance1 := normal.Dot(vIn[1].V) - offset

	if distance0 <= 0.0 {
		vOut[numOut] = vIn[0]
		numOut++
	}
	if distance1 <= 0.0 {
		vOut[numOut] = vIn[1]
		numOut++
	}

	// The points are on different sides of the plane.
	if distance0*distance1 < 0.0 {
		interp := distance0 / (distance0 - distance1)
		vOut[numOut].V = vIn[0].V.Add(vIn[1].V.Sub(vIn[0].V).Scale(interp))

		// VertexA is hitting edgeB.
		vOut[numOut].ID = FeatureID{
			IndexA: uint8(vertexIndexA),
			IndexB: vIn[0].ID.IndexB,
			TypeA:  FeatureVertex,
			TypeB:  FeatureFace,
		}
		numOut++
	}

	return numOut
}

// AABB is an axis aligned bounding box.
type AABB struct {
	LowerBound Vec2
	UpperBound Vec2
}

func (bb AABB) Center() Vec2 {
	return bb.LowerBound.Add(bb.UpperBound).Scale(0.5)
}

// Extents returns the half-widths.
func (bb AABB) Extents() Vec2 {
	return bb.UpperBound.Sub(bb.LowerBound).Scale(0.5)
}

func (bb AABB) Perimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

// Combine grows the box to enclose another box.
func (bb *AABB) Combine(aabb AABB) {
	bb.LowerBound = Vec2Min(bb.LowerBound, aabb.LowerBound)
	bb.UpperBound = Vec2Max(bb.UpperBound, aabb.UpperBound)
}

func (bb AABB) Contains(aabb AABB) bool {
	return bb.LowerBound.X <= aabb.LowerBound.X &&
		bb.LowerBound.Y <= aabb.LowerBound.Y &&
		aabb.UpperBound.X <= bb.UpperBound.X &&
		aabb.UpperBound.Y <= bb.UpperBound.Y
}

func (bb AABB) IsValid() bool {
	d := bb.UpperBound.Sub(bb.LowerBound)
	return d.X >= 0.0 && d.Y >= 0.0 && bb.LowerBound.IsValid() && bb.UpperBound.IsValid()
}

// TestOverlapAABB reports whether two boxes intersect.
func TestOverlapAABB(a, b AABB) bool {
	d1 := b.LowerBound.Sub(a.UpperBound)
	d2 := a.LowerBound.Sub(b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}
	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}
	return true
}

// RayCastInput is a ray from P1 to P1 + MaxFraction * (P2 - P1).
type RayCastInput struct {
	P1, P2      Vec2
	MaxFraction float64
}

// RayCastOutput reports a hit at P1 + Fraction * (P2 - P1).
type RayCastOutput struct {
	Normal   Vec2
	Fraction float64
}

// RayCast intersects a ray with the box using the slab method.
// From Real-time Collision Detection, p179.
func (bb AABB) RayCast(output *RayCastOutput, input RayCastInput) bool {
	tmin := -maxFloat
	tmax := maxFloat

	p := input.P1
	d := input.P2.Sub(input.P1)
	absD := Vec2Abs(d)

	var normal Vec2

	for i := 0; i < 2; i++ {
		var pI, dI, absDI, lowerI, upperI float64
		if i == 0 {
			pI, dI, absDI = p.X, d.X, absD.X
			lowerI, upperI = bb.LowerBound.X, bb.UpperBound.X
		} else {
			pI, dI, absDI = p.Y, d.Y, absD.Y
			lowerI, upperI = bb.LowerBound.Y, bb.UpperBound.Y
		}

		if absDI < epsilon {
			// Parallel.
			if pI < lowerI || upperI < pI {
				return false
			}
			continue
		}

		invD := 1.0 / dI
		t1 := (lowerI - pI) * invD
		t2 := (upperI - pI) * invD

		// Sign of the normal vector.
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}

		// Push the min up.
		if t1 > tmin {
			normal = Vec2{}
			if i == 0 {
				normal.X = s
			} else {
				normal.Y = s
			}
			tmin = t1
		}

		// Pull the max down.
		tmax = math.Min(tmax, t2)

		if tmin > tmax {
			return false
		}
	}

	// Does the ray start inside the box?
	// Does the ray intersect beyond the max fraction?
	if tmin < 0.0 || input.MaxFraction < tmin {
		return false
	}

	output.Fraction = tmin
	output.Normal = normal
	return true
}
