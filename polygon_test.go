package collide2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeBox(t *testing.T) {
	box := MakeBox(1, 2)

	require.Equal(t, 4, box.Count)
	assert.Equal(t, PolygonRadius, box.Radius)
	assert.Equal(t, Vec2{}, box.Centroid)

	assert.Equal(t, Vec2{-1, -2}, box.Vertices[0])
	assert.Equal(t, Vec2{1, -2}, box.Vertices[1])
	assert.Equal(t, Vec2{1, 2}, box.Vertices[2])
	assert.Equal(t, Vec2{-1, 2}, box.Vertices[3])

	assert.Equal(t, Vec2{0, -1}, box.Normals[0])
	assert.Equal(t, Vec2{1, 0}, box.Normals[1])
	assert.Equal(t, Vec2{0, 1}, box.Normals[2])
	assert.Equal(t, Vec2{-1, 0}, box.Normals[3])

	assert.True(t, box.Validate())
}

func TestSetBoxAt(t *testing.T) {
	p := MakePolygon()
	p.SetBoxAt(0.5, 0.5, Vec2{2, 3}, math.Pi/2)

	require.Equal(t, 4, p.Count)
	assert.Equal(t, Vec2{2, 3}, p.Centroid)

	// A quarter turn maps the (0,-1) normal to (1,0).
	assert.InDelta(t, 1.0, p.Normals[0].X, 1e-12)
	assert.InDelta(t, 0.0, p.Normals[0].Y, 1e-12)

	assert.True(t, p.Validate())
}

func TestSetConvexHull(t *testing.T) {
	// A shuffled square with an interior point; the hull drops the
	// interior point.
	points := []Vec2{
		{1, 1},
		{-1, -1},
		{0, 0.25},
		{-1, 1},
		{1, -1},
	}

	p := MakePolygon()
	p.Set(points)

	require.Equal(t, 4, p.Count)
	assert.True(t, p.Validate())

	// Normals are unit length and outward.
	for i := 0; i < p.Count; i++ {
		assert.InDelta(t, 1.0, p.Normals[i].Length(), 1e-12)
	}
	assert.InDelta(t, 0.0, p.Centroid.X, 1e-12)
	assert.InDelta(t, 0.0, p.Centroid.Y, 1e-12)
}

func TestSetWeldsClosePoints(t *testing.T) {
	points := []Vec2{
		{0, 0},
		{0, 1e-4}, // within half a linear slop of the previous point
		{1, 0},
		{0, 1},
	}

	p := MakePolygon()
	p.Set(points)

	require.Equal(t, 3, p.Count)
	assert.True(t, p.Validate())
}

func TestSetDegenerateFallsBackToBox(t *testing.T) {
	// Collinear cloud; the hull degenerates and Set falls back to a
	// unit box.
	points := []Vec2{{0, 0}, {1, 0}, {2, 0}, {3, 0}}

	p := MakePolygon()
	p.Set(points)

	require.Equal(t, 4, p.Count)
	assert.Equal(t, Vec2{-1, -1}, p.Vertices[0])
	assert.Equal(t, Vec2{1, 1}, p.Vertices[2])
}

func TestPolygonTestPoint(t *testing.T) {
	box := MakeBox(0.5, 0.5)
	xf := MakeTransform(Vec2{1, 1}, 0)

	assert.True(t, box.TestPoint(xf, Vec2{1, 1}))
	assert.True(t, box.TestPoint(xf, Vec2{1.49, 0.51}))
	assert.False(t, box.TestPoint(xf, Vec2{1.51, 1}))
	assert.False(t, box.TestPoint(xf, Vec2{0, 0}))
}

func TestPolygonRayCast(t *testing.T) {
	box := MakeBox(0.5, 0.5)
	xf := TransformIdentity

	var output RayCastOutput
	input := RayCastInput{
		P1:          Vec2{-2, 0},
		P2:          Vec2{2, 0},
		MaxFraction: 1,
	}

	require.True(t, box.RayCast(&output, input, xf))
	// Hit at x = -0.5, a quarter along the segment.
	assert.InDelta(t, 0.375, output.Fraction, 1e-12)
	assert.InDelta(t, -1.0, output.Normal.X, 1e-12)
	assert.InDelta(t, 0.0, output.Normal.Y, 1e-12)

	// A ray that misses.
	input.P1 = Vec2{-2, 2}
	input.P2 = Vec2{2, 2}
	assert.False(t, box.RayCast(&output, input, xf))
}

func TestPolygonComputeAABB(t *testing.T) {
	box := MakeBox(0.5, 1)
	xf := MakeTransform(Vec2{3, -2}, 0)

	aabb := box.ComputeAABB(xf)
	require.True(t, aabb.IsValid())

	assert.InDelta(t, 2.5-box.Radius, aabb.LowerBound.X, 1e-12)
	assert.InDelta(t, -3-box.Radius, aabb.LowerBound.Y, 1e-12)
	assert.InDelta(t, 3.5+box.Radius, aabb.UpperBound.X, 1e-12)
	assert.InDelta(t, -1+box.Radius, aabb.UpperBound.Y, 1e-12)
}

func TestVertexOutOfRangePanics(t *testing.T) {
	box := MakeBox(0.5, 0.5)

	assert.PanicsWithValue(t, "collide2d: assertion failed", func() {
		box.Vertex(4)
	})
}

func TestValidateRejectsNonConvex(t *testing.T) {
	var p Polygon
	p.Radius = PolygonRadius
	p.Count = 4
	p.Vertices[0] = Vec2{-1, -1}
	p.Vertices[1] = Vec2{1, -1}
	p.Vertices[2] = Vec2{0, -0.5} // dent
	p.Vertices[3] = Vec2{-1, 1}

	assert.False(t, p.Validate())
}
