package collide2d

// FindMaxSeparation finds the best separating-axis candidate among the
// face normals of poly1: for each face it computes the minimum signed
// distance from the face to poly2's vertices, and returns the face index
// and value maximizing that minimum. A positive result certifies the
// polygons disjoint along that axis.
func FindMaxSeparation(poly1 *Polygon, xf1 Transform, poly2 *Polygon, xf2 Transform) (int, float64) {
	count1 := poly1.Count
	count2 := poly2.Count

	xf := xf2.MulT(xf1)

	bestIndex := 0
	maxSeparation := -maxFloat
	for i := 0; i < count1; i++ {
		// Get poly1 normal in frame2.
		n := xf.Q.Apply(poly1.Normals[i])
		v1 := xf.Apply(poly1.Vertices[i])

		// Find the deepest point for normal i.
		si := maxFloat
		for j := 0; j < count2; j++ {
			sij := n.Dot(poly2.Vertices[j].Sub(v1))
			if sij < si {
				si = sij
			}
		}

		if si > maxSeparation {
			maxSeparation = si
			bestIndex = i
		}
	}

	return bestIndex, maxSeparation
}

// findIncidentEdge selects the edge of poly2 most anti-parallel to the
// reference edge edge1 of poly1 and emits its endpoints in world space,
// tagged with the reference edge and incident vertex indices.
func findIncidentEdge(c *[2]ClipVertex, poly1 *Polygon, xf1 Transform, edge1 int, poly2 *Polygon, xf2 Transform) {
	count2 := poly2.Count

	assertTrue(0 <= edge1 && edge1 < poly1.Count)

	// Get the normal of the reference edge in poly2's frame.
	normal1 := xf2.Q.ApplyT(xf1.Q.Apply(poly1.Normals[edge1]))

	// Find the incident edge on poly2.
	index := 0
	minDot := maxFloat
	for i := 0; i < count2; i++ {
		dot := normal1.Dot(poly2.Normals[i])
		if dot < minDot {
			minDot = dot
			index = i
		}
	}

	// Build the clip vertices for the incident edge.
	i1 := index
	i2 := 0
	if i1+1 < count2 {
		i2 = i1 + 1
	}

	c[0].V = xf2.Apply(poly2.Vertices[i1])
	c[0].ID = FeatureID{
		IndexA: uint8(edge1),
		IndexB: uint8(i1),
		TypeA:  FeatureFace,
		TypeB:  FeatureVertex,
	}

	c[1].V = xf2.Apply(poly2.Vertices[i2])
	c[1].ID = FeatureID{
		IndexA: uint8(edge1),
		IndexB: uint8(i2),
		TypeA:  FeatureFace,
		TypeB:  FeatureVertex,
	}
}

// CollidePolygons computes the contact manifold between two convex
// polygons. The resulting normal points from shape 1 to shape 2.
//
// Find the edge normal of max separation on A; return if a separating
// axis is found. Same with B. Choose the reference edge with a bias
// toward A, find the incident edge, clip.
func CollidePolygons(manifold *Manifold, polyA *Polygon, xfA Transform, polyB *Polygon, xfB Transform) {
	manifold.PointCount = 0
	totalRadius := polyA.Radius + polyB.Radius

	edgeA, separationA := FindMaxSeparation(polyA, xfA, polyB, xfB)
	if separationA > totalRadius {
		return
	}

	edgeB, separationB := FindMaxSeparation(polyB, xfB, polyA, xfA)
	if separationB > totalRadius {
		return
	}

	var poly1 *Polygon // reference polygon
	var poly2 *Polygon // incident polygon
	var xf1, xf2 Transform
	var edge1 int // reference edge
	flip := false

	if separationB > separationA+RefFaceTolerance {
		poly1 = polyB
		poly2 = polyA
		xf1 = xfB
		xf2 = xfA
		edge1 = edgeB
		manifold.Type = ManifoldFaceB
		flip = true
	} else {
		poly1 = polyA
		poly2 = polyB
		xf1 = xfA
		xf2 = xfB
		edge1 = edgeA
		manifold.Type = ManifoldFaceA
	}

	var incidentEdge [2]ClipVertex
	findIncidentEdge(&incidentEdge, poly1, xf1, edge1, poly2, xf2)

	count1 := poly1.Count

	iv1 := edge1
	iv2 := 0
	if edge1+1 < count1 {
		iv2 = edge1 + 1
	}

	v11 := poly1.Vertices[iv1]
	v12 := poly1.Vertices[iv2]

	localTangent := v12.Sub(v11).Normalize()
	localNormal := localTangent.CrossS(1.0)
	planePoint := v11.Add(v12).Scale(0.5)

	tangent := xf1.Q.Apply(localTangent)
	normal := tangent.CrossS(1.0)

	v11 = xf1.Apply(v11)
	v12 = xf1.Apply(v12)

	// Face offset.
	frontOffset := normal.Dot(v11)

	// Side offsets, extended by the polytope skin thickness.
	sideOffset1 := -tangent.Dot(v11) + totalRadius
	sideOffset2 := tangent.Dot(v12) + totalRadius

	// Clip the incident edge against the extruded side planes of edge1.
	var clipPoints1 [2]ClipVertex
	var clipPoints2 [2]ClipVertex

	np := ClipSegmentToLine(clipPoints1[:], incidentEdge[:], tangent.Neg(), sideOffset1, iv1)
	if np < 2 {
		return
	}

	np = ClipSegmentToLine(clipPoints2[:], clipPoints1[:], tangent, sideOffset2, iv2)
	if np < 2 {
		return
	}

	// clipPoints2 now holds the surviving points.
	manifold.LocalNormal = localNormal
	manifold.LocalPoint = planePoint

	pointCount := 0
	for i := 0; i < MaxManifoldPoints; i++ {
		separation := normal.Dot(clipPoints2[i].V) - frontOffset

		if separation <= totalRadius {
			cp := &manifold.Points[pointCount]
			cp.LocalPoint = xf2.ApplyT(clipPoints2[i].V)
			cp.ID = clipPoints2[i].ID
			if flip {
				// Keep the (shapeA, shapeB) tag convention regardless of
				// which polygon was geometrically the reference.
				cp.ID = cp.ID.Swapped()
			}
			pointCount++
		}
	}

	manifold.PointCount = pointCount
}
