package collide2d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureIDKeyRoundTrip(t *testing.T) {
	id := FeatureID{IndexA: 3, IndexB: 7, TypeA: FeatureFace, TypeB: FeatureVertex}

	var back FeatureID
	back.SetKey(id.Key())
	assert.Equal(t, id, back)

	swapped := id.Swapped()
	assert.Equal(t, uint8(7), swapped.IndexA)
	assert.Equal(t, uint8(3), swapped.IndexB)
	assert.Equal(t, FeatureVertex, swapped.TypeA)
	assert.Equal(t, FeatureFace, swapped.TypeB)
	assert.Equal(t, id, swapped.Swapped())
}

func TestClipSegmentFullyInside(t *testing.T) {
	in := []ClipVertex{
		{V: Vec2{-1, 0}, ID: FeatureID{IndexA: 1, IndexB: 2, TypeA: FeatureFace, TypeB: FeatureVertex}},
		{V: Vec2{1, 0}, ID: FeatureID{IndexA: 1, IndexB: 3, TypeA: FeatureFace, TypeB: FeatureVertex}},
	}
	out := make([]ClipVertex, 2)

	// Half-plane x <= 5 contains both points: a no-op pass-through with
	// order and tags unchanged.
	np := ClipSegmentToLine(out, in, Vec2{1, 0}, 5.0, 9)
	require.Equal(t, 2, np)
	assert.Equal(t, in[0], out[0])
	assert.Equal(t, in[1], out[1])
}

func TestClipSegmentStraddling(t *testing.T) {
	in := []ClipVertex{
		{V: Vec2{-1, 0}, ID: FeatureID{IndexA: 0, IndexB: 4, TypeA: FeatureFace, TypeB: FeatureVertex}},
		{V: Vec2{3, 0}, ID: FeatureID{IndexA: 0, IndexB: 5, TypeA: FeatureFace, TypeB: FeatureVertex}},
	}
	out := make([]ClipVertex, 2)

	// Half-plane x <= 1 keeps the first point and synthesizes the
	// boundary point.
	np := ClipSegmentToLine(out, in, Vec2{1, 0}, 1.0, 6)
	require.Equal(t, 2, np)

	assert.Equal(t, in[0], out[0])

	assert.InDelta(t, 1.0, out[1].V.X, 1e-12)
	assert.InDelta(t, 0.0, out[1].V.Y, 1e-12)
	assert.Equal(t, uint8(6), out[1].ID.IndexA)
	assert.Equal(t, uint8(4), out[1].ID.IndexB)
	assert.Equal(t, FeatureVertex, out[1].ID.TypeA)
	assert.Equal(t, FeatureFace, out[1].ID.TypeB)
}

func TestClipSegmentFullyOutside(t *testing.T) {
	in := []ClipVertex{
		{V: Vec2{2, 0}},
		{V: Vec2{3, 0}},
	}
	out := make([]ClipVertex, 2)

	np := ClipSegmentToLine(out, in, Vec2{1, 0}, 1.0, 0)
	assert.Equal(t, 0, np)
}

func TestPointStates(t *testing.T) {
	idA := FeatureID{IndexA: 0, IndexB: 0, TypeA: FeatureFace, TypeB: FeatureVertex}
	idB := FeatureID{IndexA: 0, IndexB: 1, TypeA: FeatureFace, TypeB: FeatureVertex}
	idC := FeatureID{IndexA: 2, IndexB: 1, TypeA: FeatureVertex, TypeB: FeatureFace}

	var m1, m2 Manifold
	m1.PointCount = 2
	m1.Points[0].ID = idA
	m1.Points[1].ID = idB

	m2.PointCount = 2
	m2.Points[0].ID = idB
	m2.Points[1].ID = idC

	var state1, state2 [MaxManifoldPoints]PointState
	PointStates(&state1, &state2, &m1, &m2)

	assert.Equal(t, RemoveState, state1[0])  // idA vanished
	assert.Equal(t, PersistState, state1[1]) // idB survived
	assert.Equal(t, PersistState, state2[0])
	assert.Equal(t, AddState, state2[1]) // idC is new
}

func TestAABBBasics(t *testing.T) {
	a := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{2, 4}}

	assert.Equal(t, Vec2{1, 2}, a.Center())
	assert.Equal(t, Vec2{1, 2}, a.Extents())
	assert.Equal(t, 12.0, a.Perimeter())
	assert.True(t, a.IsValid())

	b := AABB{LowerBound: Vec2{1, 1}, UpperBound: Vec2{3, 3}}
	assert.True(t, TestOverlapAABB(a, b))
	assert.False(t, a.Contains(b))

	a.Combine(b)
	assert.Equal(t, Vec2{0, 0}, a.LowerBound)
	assert.Equal(t, Vec2{3, 4}, a.UpperBound)
	assert.True(t, a.Contains(b))

	far := AABB{LowerBound: Vec2{10, 10}, UpperBound: Vec2{11, 11}}
	assert.False(t, TestOverlapAABB(a, far))
}

func TestAABBRayCast(t *testing.T) {
	bb := AABB{LowerBound: Vec2{-1, -1}, UpperBound: Vec2{1, 1}}

	var output RayCastOutput
	input := RayCastInput{P1: Vec2{-3, 0}, P2: Vec2{3, 0}, MaxFraction: 1}
	require.True(t, bb.RayCast(&output, input))
	assert.InDelta(t, 1.0/3.0, output.Fraction, 1e-12)
	assert.Equal(t, Vec2{-1, 0}, output.Normal)

	// Parallel miss.
	input = RayCastInput{P1: Vec2{-3, 2}, P2: Vec2{3, 2}, MaxFraction: 1}
	assert.False(t, bb.RayCast(&output, input))

	// Starts past the box.
	input = RayCastInput{P1: Vec2{2, 0}, P2: Vec2{5, 0}, MaxFraction: 1}
	assert.False(t, bb.RayCast(&output, input))
}

func TestWorldManifoldPointPoint(t *testing.T) {
	// Hand-built point-point manifold, the configuration produced by
	// rounded shapes: local points are the shape centers, the radii
	// carry the surfaces.
	var manifold Manifold
	manifold.Type = ManifoldPoints
	manifold.PointCount = 1
	manifold.LocalPoint = Vec2{}           // center on A
	manifold.Points[0].LocalPoint = Vec2{} // center on B

	xfA := TransformIdentity
	xfB := MakeTransform(Vec2{3, 0}, 0)

	var wm WorldManifold
	wm.Initialize(&manifold, xfA, 1.0, xfB, 1.0)

	assert.Equal(t, Vec2{1, 0}, wm.Normal)
	assert.InDelta(t, 1.5, wm.Points[0].X, 1e-12)
	assert.InDelta(t, 1.0, wm.Separations[0], 1e-12)
}

func TestWorldManifoldFaceA(t *testing.T) {
	// Unit squares sharing the edge x = 1.
	polyA := MakeBox(0.5, 0.5)
	polyB := MakeBox(0.5, 0.5)
	polyA.Radius = 0
	polyB.Radius = 0

	xfA := MakeTransform(Vec2{0.5, 0}, 0)
	xfB := MakeTransform(Vec2{1.5, 0}, 0)

	var manifold Manifold
	CollidePolygons(&manifold, &polyA, xfA, &polyB, xfB)
	require.Equal(t, 2, manifold.PointCount)

	var wm WorldManifold
	wm.Initialize(&manifold, xfA, polyA.Radius, xfB, polyB.Radius)

	assert.InDelta(t, 1.0, wm.Normal.X, 1e-12)
	assert.InDelta(t, 0.0, wm.Normal.Y, 1e-12)

	for i := 0; i < manifold.PointCount; i++ {
		assert.InDelta(t, 1.0, wm.Points[i].X, 1e-12)
		assert.InDelta(t, 0.0, wm.Separations[i], 1e-12)
		assert.LessOrEqual(t, wm.Points[i].Y, 0.5+1e-12)
		assert.GreaterOrEqual(t, wm.Points[i].Y, -0.5-1e-12)
	}
}
