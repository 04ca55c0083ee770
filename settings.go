package collide2d

import "math"

// Global tuning constants, in meters-kilograms-seconds units.

const maxFloat = math.MaxFloat64
const epsilon = 2.220446049250313e-16
const pi = math.Pi

// MaxManifoldPoints is the maximum number of contact points between two
// convex shapes. Do not change this value.
const MaxManifoldPoints = 2

// MaxPolygonVertices is the maximum number of vertices on a convex polygon.
const MaxPolygonVertices = 8

// LinearSlop is a small length used as a collision and constraint
// tolerance. Chosen to be numerically significant but visually
// insignificant.
const LinearSlop = 0.005

// PolygonRadius is the skin radius of polygon shapes. Making this smaller
// means polygons will have an insufficient buffer for continuous
// collision. Making it larger may create artifacts for vertex collision.
const PolygonRadius = 2.0 * LinearSlop

// RefFaceTolerance biases the choice of reference face in CollidePolygons
// toward shape A. Without the bias the reference face can flicker between
// the shapes when their best separations are nearly equal, which breaks
// feature IDs and warm starting across steps.
const RefFaceTolerance = 0.1 * LinearSlop

// MaxTOIIterations caps the conservative advancement loop in
// TimeOfImpact. Exceeding the cap reports TOIStateFailed.
const MaxTOIIterations = 20

// maxDistanceIterations caps the GJK main loop.
const maxDistanceIterations = 20

func assertTrue(a bool) {
	if !a {
		panic("collide2d: assertion failed")
	}
}
