package collide2d

// Polygon is a solid convex polygon. The interior is to the left of each
// edge: vertices are wound counter-clockwise and Normals[i] is the unit
// outward normal of the edge Vertices[i] -> Vertices[i+1 mod Count].
// Polygons have at most MaxPolygonVertices vertices and carry a small
// skin radius used to treat near-touching as touching.
type Polygon struct {
	Centroid Vec2
	Vertices [MaxPolygonVertices]Vec2
	Normals  [MaxPolygonVertices]Vec2
	Count    int
	Radius   float64
}

// MakePolygon returns an empty polygon with the default skin radius.
func MakePolygon() Polygon {
	return Polygon{Radius: PolygonRadius}
}

// MakeBox returns an axis-aligned box with half-width hx and half-height
// hy, centered on the local origin.
func MakeBox(hx, hy float64) Polygon {
	p := MakePolygon()
	p.SetBox(hx, hy)
	return p
}

// SetBox builds an axis-aligned box centered on the local origin.
func (poly *Polygon) SetBox(hx, hy float64) {
	poly.Count = 4
	poly.Vertices[0] = Vec2{-hx, -hy}
	poly.Vertices[1] = Vec2{hx, -hy}
	poly.Vertices[2] = Vec2{hx, hy}
	poly.Vertices[3] = Vec2{-hx, hy}
	poly.Normals[0] = Vec2{0.0, -1.0}
	poly.Normals[1] = Vec2{1.0, 0.0}
	poly.Normals[2] = Vec2{0.0, 1.0}
	poly.Normals[3] = Vec2{-1.0, 0.0}
	poly.Centroid = Vec2{}
}

// SetBoxAt builds a box centered at center and rotated by angle radians.
func (poly *Polygon) SetBoxAt(hx, hy float64, center Vec2, angle float64) {
	poly.SetBox(hx, hy)
	poly.Centroid = center

	xf := MakeTransform(center, angle)

	// Transform vertices and normals.
	for i := 0; i < poly.Count; i++ {
		poly.Vertices[i] = xf.Apply(poly.Vertices[i])
		poly.Normals[i] = xf.Q.Apply(poly.Normals[i])
	}
}

// Vertex returns a local vertex by index.
func (poly *Polygon) Vertex(index int) Vec2 {
	assertTrue(0 <= index && index < poly.Count)
	return poly.Vertices[index]
}

// Set builds a convex polygon from a point cloud. Close points are
// welded, then the convex hull is taken, so the resulting vertex count
// may be lower than len(points). Degenerate input (fewer than three
// distinct points, or a collinear cloud) falls back to a unit box.
func (poly *Polygon) Set(points []Vec2) {
	count := len(points)
	assertTrue(3 <= count && count <= MaxPolygonVertices)
	if count < 3 {
		poly.SetBox(1.0, 1.0)
		return
	}

	n := count
	if n > MaxPolygonVertices {
		n = MaxPolygonVertices
	}

	// Weld close vertices into a local buffer.
	var ps [MaxPolygonVertices]Vec2
	tempCount := 0
	for i := 0; i < n; i++ {
		v := points[i]

		unique := true
		for j := 0; j < tempCount; j++ {
			if v.DistanceSquaredTo(ps[j]) < (0.5*LinearSlop)*(0.5*LinearSlop) {
				unique = false
				break
			}
		}

		if unique {
			ps[tempCount] = v
			tempCount++
		}
	}

	n = tempCount
	if n < 3 {
		// Polygon is degenerate.
		poly.SetBox(1.0, 1.0)
		return
	}

	// Create the convex hull using the gift wrapping algorithm.
	// Start at the right-most point on the hull.
	i0 := 0
	x0 := ps[0].X
	for i := 1; i < n; i++ {
		x := ps[i].X
		if x > x0 || (x == x0 && ps[i].Y < ps[i0].Y) {
			i0 = i
			x0 = x
		}
	}

	var hull [MaxPolygonVertices]int
	m := 0
	ih := i0

	for {
		assertTrue(m < MaxPolygonVertices)
		hull[m] = ih

		ie := 0
		for j := 1; j < n; j++ {
			if ie == ih {
				ie = j
				continue
			}

			r := ps[ie].Sub(ps[hull[m]])
			v := ps[j].Sub(ps[hull[m]])
			c := r.Cross(v)
			if c < 0.0 {
				ie = j
			}

			// Collinearity check.
			if c == 0.0 && v.LengthSquared() > r.LengthSquared() {
				ie = j
			}
		}

		m++
		ih = ie

		if ie == i0 {
			break
		}
	}

	if m < 3 {
		// Polygon is degenerate.
		poly.SetBox(1.0, 1.0)
		return
	}

	poly.Count = m

	for i := 0; i < m; i++ {
		poly.Vertices[i] = ps[hull[i]]
	}

	// Compute normals. The hull guarantees non-zero edge lengths.
	for i := 0; i < m; i++ {
		i2 := 0
		if i+1 < m {
			i2 = i + 1
		}

		edge := poly.Vertices[i2].Sub(poly.Vertices[i])
		assertTrue(edge.LengthSquared() > epsilon*epsilon)
		poly.Normals[i] = edge.CrossS(1.0).Normalize()
	}

	poly.Centroid = computeCentroid(poly.Vertices[:m])
}

func computeCentroid(vs []Vec2) Vec2 {
	count := len(vs)
	assertTrue(count >= 3)

	var c Vec2
	area := 0.0

	// pRef is the reference point for forming triangles. Its location
	// does not change the result, except for rounding error.
	var pRef Vec2
	for i := 0; i < count; i++ {
		pRef = pRef.Add(vs[i])
	}
	pRef = pRef.Scale(1.0 / float64(count))

	const inv3 = 1.0 / 3.0

	for i := 0; i < count; i++ {
		// Triangle vertices.
		p1 := pRef
		p2 := vs[i]
		p3 := vs[0]
		if i+1 < count {
			p3 = vs[i+1]
		}

		e1 := p2.Sub(p1)
		e2 := p3.Sub(p1)

		triangleArea := 0.5 * e1.Cross(e2)
		area += triangleArea

		// Area weighted centroid.
		c = c.Add(p1.Add(p2).Add(p3).Scale(triangleArea * inv3))
	}

	assertTrue(area > epsilon)
	return c.Scale(1.0 / area)
}

// Validate reports whether the polygon is convex with CCW winding. Meant
// for debug checks after Set with suspect input.
func (poly *Polygon) Validate() bool {
	for i := 0; i < poly.Count; i++ {
		i1 := i
		i2 := 0
		if i < poly.Count-1 {
			i2 = i1 + 1
		}

		p := poly.Vertices[i1]
		e := poly.Vertices[i2].Sub(p)

		for j := 0; j < poly.Count; j++ {
			if j == i1 || j == i2 {
				continue
			}

			v := poly.Vertices[j].Sub(p)
			if e.Cross(v) < 0.0 {
				return false
			}
		}
	}

	return true
}

// TestPoint reports whether a world point lies inside the polygon placed
// by xf. The skin radius is ignored.
func (poly *Polygon) TestPoint(xf Transform, p Vec2) bool {
	pLocal := xf.Q.ApplyT(p.Sub(xf.P))

	for i := 0; i < poly.Count; i++ {
		if poly.Normals[i].Dot(pLocal.Sub(poly.Vertices[i])) > 0.0 {
			return false
		}
	}

	return true
}

// RayCast intersects a ray with the polygon placed by xf. The skin
// radius is ignored.
func (poly *Polygon) RayCast(output *RayCastOutput, input RayCastInput, xf Transform) bool {
	// Put the ray into the polygon's frame of reference.
	p1 := xf.Q.ApplyT(input.P1.Sub(xf.P))
	p2 := xf.Q.ApplyT(input.P2.Sub(xf.P))
	d := p2.Sub(p1)

	lower := 0.0
	upper := input.MaxFraction

	index := -1

	for i := 0; i < poly.Count; i++ {
		// p = p1 + a * d
		// dot(normal, p - v) = 0
		// dot(normal, p1 - v) + a * dot(normal, d) = 0
		numerator := poly.Normals[i].Dot(poly.Vertices[i].Sub(p1))
		denominator := poly.Normals[i].Dot(d)

		if denominator == 0.0 {
			if numerator < 0.0 {
				return false
			}
		} else {
			// We want the predicate without division:
			// lower < numerator / denominator, where denominator < 0.
			if denominator < 0.0 && numerator < lower*denominator {
				// The segment enters this half-space.
				lower = numerator / denominator
				index = i
			} else if denominator > 0.0 && numerator < upper*denominator {
				// The segment exits this half-space.
				upper = numerator / denominator
			}
		}

		if upper < lower {
			return false
		}
	}

	assertTrue(0.0 <= lower && lower <= input.MaxFraction)

	if index >= 0 {
		output.Fraction = lower
		output.Normal = xf.Q.Apply(poly.Normals[index])
		return true
	}

	return false
}

// ComputeAABB returns the bounding box of the polygon placed by xf,
// inflated by the skin radius.
func (poly *Polygon) ComputeAABB(xf Transform) AABB {
	lower := xf.Apply(poly.Vertices[0])
	upper := lower

	for i := 1; i < poly.Count; i++ {
		v := xf.Apply(poly.Vertices[i])
		lower = Vec2Min(lower, v)
		upper = Vec2Max(upper, v)
	}

	r := Vec2{poly.Radius, poly.Radius}
	return AABB{
		LowerBound: lower.Sub(r),
		UpperBound: upper.Add(r),
	}
}
