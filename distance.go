package collide2d

// GJK closest-point query using Voronoi regions (Christer Ericson) and
// barycentric coordinates.

var gjkCalls, gjkIters, gjkMaxIters int

// DistanceProxy abstracts a convex point set with a skin radius, so the
// distance and time-of-impact queries do not depend on a concrete shape
// type.
type DistanceProxy struct {
	Vertices []Vec2
	Count    int
	Radius   float64
}

// SetPolygon points the proxy at a polygon's vertices. The proxy borrows
// the polygon's storage; the caller must not mutate the polygon while a
// query referencing the proxy is in flight.
func (p *DistanceProxy) SetPolygon(polygon *Polygon) {
	p.Vertices = polygon.Vertices[:polygon.Count]
	p.Count = polygon.Count
	p.Radius = polygon.Radius
}

// SetVertices points the proxy at a raw convex point set.
func (p *DistanceProxy) SetVertices(vertices []Vec2, radius float64) {
	p.Vertices = vertices
	p.Count = len(vertices)
	p.Radius = radius
}

func (p *DistanceProxy) VertexCount() int {
	return p.Count
}

func (p *DistanceProxy) Vertex(index int) Vec2 {
	assertTrue(0 <= index && index < p.Count)
	return p.Vertices[index]
}

// Support returns the index of the vertex with maximal projection on d.
func (p *DistanceProxy) Support(d Vec2) int {
	bestIndex := 0
	bestValue := p.Vertices[0].Dot(d)
	for i := 1; i < p.Count; i++ {
		value := p.Vertices[i].Dot(d)
		if value > bestValue {
			bestIndex = i
			bestValue = value
		}
	}
	return bestIndex
}

// SupportVertex returns the vertex with maximal projection on d.
func (p *DistanceProxy) SupportVertex(d Vec2) Vec2 {
	return p.Vertices[p.Support(d)]
}

// MaxRadius returns the largest distance from center to any vertex of
// the core point set. The skin radius is not included.
func (p *DistanceProxy) MaxRadius(center Vec2) float64 {
	r := 0.0
	for i := 0; i < p.Count; i++ {
		d := p.Vertices[i].DistanceTo(center)
		if d > r {
			r = d
		}
	}
	return r
}

// SimplexCache warm starts Distance across repeated queries on the same
// pair. Zero value means cold.
type SimplexCache struct {
	Metric float64 // length or area of the cached simplex
	Count  int
	IndexA [3]int // vertices on shape A
	IndexB [3]int // vertices on shape B
}

// DistanceInput is a closest-point query between two proxies under two
// placements. UseRadii selects whether the skin radii are subtracted
// from the core distance.
type DistanceInput struct {
	ProxyA     DistanceProxy
	ProxyB     DistanceProxy
	TransformA Transform
	TransformB Transform
	UseRadii   bool
}

// DistanceOutput holds the closest points on each shape in world space.
type DistanceOutput struct {
	PointA     Vec2
	PointB     Vec2
	Distance   float64
	Iterations int
}

type simplexVertex struct {
	wA     Vec2    // support point in proxyA
	wB     Vec2    // support point in proxyB
	w      Vec2    // wB - wA
	a      float64 // barycentric coordinate for closest point
	indexA int
	indexB int
}

type simplex struct {
	vs    [3]simplexVertex
	count int
}

func (s *simplex) readCache(cache *SimplexCache, proxyA *DistanceProxy, transformA Transform, proxyB *DistanceProxy, transformB Transform) {
	assertTrue(cache.Count <= 3)

	// Copy data from the cache.
	s.count = cache.Count
	for i := 0; i < s.count; i++ {
		v := &s.vs[i]
		v.indexA = cache.IndexA[i]
		v.indexB = cache.IndexB[i]
		v.wA = transformA.Apply(proxyA.Vertex(v.indexA))
		v.wB = transformB.Apply(proxyB.Vertex(v.indexB))
		v.w = v.wB.Sub(v.wA)
		v.a = 0.0
	}

	// If the new simplex metric is substantially different from the old
	// one the cache is stale; flush it.
	if s.count > 1 {
		metric1 := cache.Metric
		metric2 := s.metric()
		if metric2 < 0.5*metric1 || 2.0*metric1 < metric2 || metric2 < epsilon {
			s.count = 0
		}
	}

	// The cache is empty or invalid.
	if s.count == 0 {
		v := &s.vs[0]
		v.indexA = 0
		v.indexB = 0
		v.wA = transformA.Apply(proxyA.Vertex(0))
		v.wB = transformB.Apply(proxyB.Vertex(0))
		v.w = v.wB.Sub(v.wA)
		v.a = 1.0
		s.count = 1
	}
}

func (s *simplex) writeCache(cache *SimplexCache) {
	cache.Metric = s.metric()
	cache.Count = s.count
	for i := 0; i < s.count; i++ {
		cache.IndexA[i] = s.vs[i].indexA
		cache.IndexB[i] = s.vs[i].indexB
	}
}

func (s *simplex) searchDirection() Vec2 {
	switch s.count {
	case 1:
		return s.vs[0].w.Neg()

	case 2:
		e12 := s.vs[1].w.Sub(s.vs[0].w)
		sgn := e12.Cross(s.vs[0].w.Neg())
		if sgn > 0.0 {
			// Origin is left of e12.
			return CrossSV(1.0, e12)
		}
		// Origin is right of e12.
		return e12.CrossS(1.0)

	default:
		assertTrue(false)
		return Vec2{}
	}
}

func (s *simplex) witnessPoints(pA, pB *Vec2) {
	switch s.count {
	case 1:
		*pA = s.vs[0].wA
		*pB = s.vs[0].wB

	case 2:
		*pA = s.vs[0].wA.Scale(s.vs[0].a).Add(s.vs[1].wA.Scale(s.vs[1].a))
		*pB = s.vs[0].wB.Scale(s.vs[0].a).Add(s.vs[1].wB.Scale(s.vs[1].a))

	case 3:
		*pA = s.vs[0].wA.Scale(s.vs[0].a).
			Add(s.vs[1].wA.Scale(s.vs[1].a)).
			Add(s.vs[2].wA.Scale(s.vs[2].a))
		*pB = *pA

	default:
		assertTrue(false)
	}
}

func (s *simplex) metric() float64 {
	switch s.count {
	case 1:
		return 0.0

	case 2:
		return s.vs[0].w.DistanceTo(s.vs[1].w)

	case 3:
		return s.vs[1].w.Sub(s.vs[0].w).Cross(s.vs[2].w.Sub(s.vs[0].w))

	default:
		assertTrue(false)
		return 0.0
	}
}

// solve2 finds the point of a line segment closest to the origin using
// barycentric coordinates.
func (s *simplex) solve2() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	e12 := w2.Sub(w1)

	// w1 region
	d12_2 := -w1.Dot(e12)
	if d12_2 <= 0.0 {
		// a2 <= 0, so we clamp it to 0.
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// w2 region
	d12_1 := w2.Dot(e12)
	if d12_1 <= 0.0 {
		// a1 <= 0, so we clamp it to 0.
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// Must be in e12 region.
	invD12 := 1.0 / (d12_1 + d12_2)
	s.vs[0].a = d12_1 * invD12
	s.vs[1].a = d12_2 * invD12
	s.count = 2
}

// solve3 finds the point of a triangle closest to the origin. Possible
// regions: each vertex, each edge, or the triangle interior.
func (s *simplex) solve3() {
	w1 := s.vs[0].w
	w2 := s.vs[1].w
	w3 := s.vs[2].w

	// Edge12
	// [1      1     ][a1] = [1]
	// [w1.e12 w2.e12][a2] = [0]
	// a3 = 0
	e12 := w2.Sub(w1)
	w1e12 := w1.Dot(e12)
	w2e12 := w2.Dot(e12)
	d12_1 := w2e12
	d12_2 := -w1e12

	// Edge13
	// [1      1     ][a1] = [1]
	// [w1.e13 w3.e13][a3] = [0]
	// a2 = 0
	e13 := w3.Sub(w1)
	w1e13 := w1.Dot(e13)
	w3e13 := w3.Dot(e13)
	d13_1 := w3e13
	d13_2 := -w1e13

	// Edge23
	// [1      1     ][a2] = [1]
	// [w2.e23 w3.e23][a3] = [0]
	// a1 = 0
	e23 := w3.Sub(w2)
	w2e23 := w2.Dot(e23)
	w3e23 := w3.Dot(e23)
	d23_1 := w3e23
	d23_2 := -w2e23

	// Triangle123
	n123 := e12.Cross(e13)

	d123_1 := n123 * w2.Cross(w3)
	d123_2 := n123 * w3.Cross(w1)
	d123_3 := n123 * w1.Cross(w2)

	// w1 region
	if d12_2 <= 0.0 && d13_2 <= 0.0 {
		s.vs[0].a = 1.0
		s.count = 1
		return
	}

	// e12
	if d12_1 > 0.0 && d12_2 > 0.0 && d123_3 <= 0.0 {
		invD12 := 1.0 / (d12_1 + d12_2)
		s.vs[0].a = d12_1 * invD12
		s.vs[1].a = d12_2 * invD12
		s.count = 2
		return
	}

	// e13
	if d13_1 > 0.0 && d13_2 > 0.0 && d123_2 <= 0.0 {
		invD13 := 1.0 / (d13_1 + d13_2)
		s.vs[0].a = d13_1 * invD13
		s.vs[2].a = d13_2 * invD13
		s.count = 2
		s.vs[1] = s.vs[2]
		return
	}

	// w2 region
	if d12_1 <= 0.0 && d23_2 <= 0.0 {
		s.vs[1].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[1]
		return
	}

	// w3 region
	if d13_1 <= 0.0 && d23_1 <= 0.0 {
		s.vs[2].a = 1.0
		s.count = 1
		s.vs[0] = s.vs[2]
		return
	}

	// e23
	if d23_1 > 0.0 && d23_2 > 0.0 && d123_1 <= 0.0 {
		invD23 := 1.0 / (d23_1 + d23_2)
		s.vs[1].a = d23_1 * invD23
		s.vs[2].a = d23_2 * invD23
		s.count = 2
		s.vs[0] = s.vs[2]
		return
	}

	// Must be in triangle123
	invD123 := 1.0 / (d123_1 + d123_2 + d123_3)
	s.vs[0].a = d123_1 * invD123
	s.vs[1].a = d123_2 * invD123
	s.vs[2].a = d123_3 * invD123
	s.count = 3
}

// Distance computes the closest points between two convex point sets.
// On the first call for a pair the cache must be zeroed; subsequent
// calls warm start from it.
func Distance(output *DistanceOutput, cache *SimplexCache, input *DistanceInput) {
	gjkCalls++

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	transformA := input.TransformA
	transformB := input.TransformB

	// Initialize the simplex.
	var s simplex
	s.readCache(cache, proxyA, transformA, proxyB, transformB)

	// Vertices of the last simplex, to check for duplicates and prevent
	// cycling.
	var saveA, saveB [3]int
	saveCount := 0

	iter := 0
	for iter < maxDistanceIterations {
		// Copy simplex so we can identify duplicates.
		saveCount = s.count
		for i := 0; i < saveCount; i++ {
			saveA[i] = s.vs[i].indexA
			saveB[i] = s.vs[i].indexB
		}

		switch s.count {
		case 1:
		case 2:
			s.solve2()
		case 3:
			s.solve3()
		default:
			assertTrue(false)
		}

		// With 3 points the origin is inside the triangle.
		if s.count == 3 {
			break
		}

		d := s.searchDirection()

		// Ensure the search direction is numerically fit.
		if d.LengthSquared() < epsilon*epsilon {
			// The origin is probably contained by a line segment or
			// triangle, so the shapes are overlapped.
			//
			// We can't return zero here even though there may be overlap.
			// When the simplex is a point, segment, or triangle it is hard
			// to determine if the origin is contained in the CSO or very
			// close to it.
			break
		}

		// Compute a tentative new simplex vertex using support points.
		vertex := &s.vs[s.count]
		vertex.indexA = proxyA.Support(transformA.Q.ApplyT(d.Neg()))
		vertex.wA = transformA.Apply(proxyA.Vertex(vertex.indexA))
		vertex.indexB = proxyB.Support(transformB.Q.ApplyT(d))
		vertex.wB = transformB.Apply(proxyB.Vertex(vertex.indexB))
		vertex.w = vertex.wB.Sub(vertex.wA)

		// Iteration count is equated to the number of support point calls.
		iter++
		gjkIters++

		// A duplicate support point is the main termination criterion.
		duplicate := false
		for i := 0; i < saveCount; i++ {
			if vertex.indexA == saveA[i] && vertex.indexB == saveB[i] {
				duplicate = true
				break
			}
		}
		if duplicate {
			break
		}

		// The new vertex is ok and needed.
		s.count++
	}

	if iter > gjkMaxIters {
		gjkMaxIters = iter
	}

	s.witnessPoints(&output.PointA, &output.PointB)
	output.Distance = output.PointA.DistanceTo(output.PointB)
	output.Iterations = iter

	s.writeCache(cache)

	if input.UseRadii {
		rA := proxyA.Radius
		rB := proxyB.Radius

		if output.Distance > rA+rB && output.Distance > epsilon {
			// The shapes are still not overlapped.
			// Move the witness points to the outer surface.
			output.Distance -= rA + rB
			normal := output.PointB.Sub(output.PointA).Normalize()
			output.PointA = output.PointA.Add(normal.Scale(rA))
			output.PointB = output.PointB.Sub(normal.Scale(rB))
		} else {
			// The shapes are overlapped when radii are considered.
			// Move the witness points to the middle.
			p := output.PointA.Add(output.PointB).Scale(0.5)
			output.PointA = p
			output.PointB = p
			output.Distance = 0.0
		}
	}
}

// Overlap reports whether two polygons overlap under the given
// placements, skin radii included.
func Overlap(polyA *Polygon, xfA Transform, polyB *Polygon, xfB Transform) bool {
	var input DistanceInput
	input.ProxyA.SetPolygon(polyA)
	input.ProxyB.SetPolygon(polyB)
	input.TransformA = xfA
	input.TransformB = xfB
	input.UseRadii = true

	var cache SimplexCache
	var output DistanceOutput
	Distance(&output, &cache, &input)

	return output.Distance < 10.0*epsilon
}
