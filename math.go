package collide2d

import "math"

// IsValidFloat reports whether x is neither NaN nor infinite.
func IsValidFloat(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Vec2 is a 2D column vector.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a.X + b.X, a.Y + b.Y}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a.X - b.X, a.Y - b.Y}
}

func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{s * a.X, s * a.Y}
}

func (a Vec2) Neg() Vec2 {
	return Vec2{-a.X, -a.Y}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a.X*b.X + a.Y*b.Y
}

// Cross returns the 2D cross product, a scalar.
func (a Vec2) Cross(b Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

// CrossS computes the cross product of a vector and a scalar, a vector.
func (a Vec2) CrossS(s float64) Vec2 {
	return Vec2{s * a.Y, -s * a.X}
}

// CrossSV computes the cross product of a scalar and a vector, a vector.
func CrossSV(s float64, a Vec2) Vec2 {
	return Vec2{-s * a.Y, s * a.X}
}

func (a Vec2) Length() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// LengthSquared avoids the square root of Length where only comparison
// is needed.
func (a Vec2) LengthSquared() float64 {
	return a.X*a.X + a.Y*a.Y
}

// Normalize returns the unit vector along a, or the zero vector when a is
// shorter than epsilon.
func (a Vec2) Normalize() Vec2 {
	length := a.Length()
	if length < epsilon {
		return Vec2{}
	}
	return a.Scale(1.0 / length)
}

// Skew returns the vector such that skew(a).Dot(b) == a.Cross(b).
func (a Vec2) Skew() Vec2 {
	return Vec2{-a.Y, a.X}
}

func (a Vec2) IsValid() bool {
	return IsValidFloat(a.X) && IsValidFloat(a.Y)
}

func Vec2Min(a, b Vec2) Vec2 {
	return Vec2{math.Min(a.X, b.X), math.Min(a.Y, b.Y)}
}

func Vec2Max(a, b Vec2) Vec2 {
	return Vec2{math.Max(a.X, b.X), math.Max(a.Y, b.Y)}
}

func Vec2Abs(a Vec2) Vec2 {
	return Vec2{math.Abs(a.X), math.Abs(a.Y)}
}

// DistanceTo returns the distance between two points.
func (a Vec2) DistanceTo(b Vec2) float64 {
	return a.Sub(b).Length()
}

func (a Vec2) DistanceSquaredTo(b Vec2) float64 {
	c := a.Sub(b)
	return c.Dot(c)
}

// Rot is a rotation stored as a sine/cosine pair.
type Rot struct {
	S, C float64
}

// MakeRot builds a rotation from an angle in radians.
func MakeRot(angle float64) Rot {
	return Rot{S: math.Sin(angle), C: math.Cos(angle)}
}

// RotIdentity is the identity rotation.
var RotIdentity = Rot{S: 0, C: 1}

func (q Rot) Angle() float64 {
	return math.Atan2(q.S, q.C)
}

func (q Rot) XAxis() Vec2 {
	return Vec2{q.C, q.S}
}

func (q Rot) YAxis() Vec2 {
	return Vec2{-q.S, q.C}
}

// Mul composes two rotations: q * r.
func (q Rot) Mul(r Rot) Rot {
	return Rot{
		S: q.S*r.C + q.C*r.S,
		C: q.C*r.C - q.S*r.S,
	}
}

// MulT composes the inverse of q with r: qT * r.
func (q Rot) MulT(r Rot) Rot {
	return Rot{
		S: q.C*r.S - q.S*r.C,
		C: q.C*r.C + q.S*r.S,
	}
}

// Apply rotates a vector.
func (q Rot) Apply(v Vec2) Vec2 {
	return Vec2{q.C*v.X - q.S*v.Y, q.S*v.X + q.C*v.Y}
}

// ApplyT inverse-rotates a vector.
func (q Rot) ApplyT(v Vec2) Vec2 {
	return Vec2{q.C*v.X + q.S*v.Y, -q.S*v.X + q.C*v.Y}
}

// Transform is a rigid placement: a rotation followed by a translation.
type Transform struct {
	P Vec2
	Q Rot
}

// MakeTransform builds a placement from a position and an angle in
// radians.
func MakeTransform(position Vec2, angle float64) Transform {
	return Transform{P: position, Q: MakeRot(angle)}
}

// TransformIdentity is the identity placement.
var TransformIdentity = Transform{Q: Rot{S: 0, C: 1}}

// Apply maps a point from the transform's local frame to the world.
func (t Transform) Apply(v Vec2) Vec2 {
	return Vec2{
		(t.Q.C*v.X - t.Q.S*v.Y) + t.P.X,
		(t.Q.S*v.X + t.Q.C*v.Y) + t.P.Y,
	}
}

// ApplyT maps a world point into the transform's local frame.
func (t Transform) ApplyT(v Vec2) Vec2 {
	px := v.X - t.P.X
	py := v.Y - t.P.Y
	return Vec2{t.Q.C*px + t.Q.S*py, -t.Q.S*px + t.Q.C*py}
}

// Mul composes two placements: a.Apply(b.Apply(v)) == a.Mul(b).Apply(v).
func (a Transform) Mul(b Transform) Transform {
	return Transform{
		P: a.Q.Apply(b.P).Add(a.P),
		Q: a.Q.Mul(b.Q),
	}
}

// MulT composes the inverse of a with b. The result maps b's local frame
// into a's local frame.
func (a Transform) MulT(b Transform) Transform {
	return Transform{
		P: a.Q.ApplyT(b.P.Sub(a.P)),
		Q: a.Q.MulT(b.Q),
	}
}

// Sweep describes the motion of a body over a sub-step for TOI
// computation. Shapes are defined with respect to the body origin, which
// may not coincide with the center of mass, so the center of mass is what
// gets interpolated.
type Sweep struct {
	LocalCenter Vec2    // local center of mass
	C0, C       Vec2    // world center of mass at the interval endpoints
	A0, A       float64 // world angles at the interval endpoints

	// Alpha0 is the fraction of the current time step at which C0 and A0
	// are sampled, in [0,1).
	Alpha0 float64
}

// Transform interpolates the body placement at fraction beta of the
// interval.
func (sweep Sweep) Transform(beta float64) Transform {
	var xf Transform
	xf.P = sweep.C0.Scale(1.0 - beta).Add(sweep.C.Scale(beta))
	xf.Q = MakeRot((1.0-beta)*sweep.A0 + beta*sweep.A)

	// Shift to origin.
	xf.P = xf.P.Sub(xf.Q.Apply(sweep.LocalCenter))
	return xf
}

// Advance moves the start of the sweep forward to absolute fraction
// alpha, keeping the endpoint fixed.
func (sweep *Sweep) Advance(alpha float64) {
	assertTrue(sweep.Alpha0 < 1.0)
	beta := (alpha - sweep.Alpha0) / (1.0 - sweep.Alpha0)
	sweep.C0 = sweep.C0.Add(sweep.C.Sub(sweep.C0).Scale(beta))
	sweep.A0 += beta * (sweep.A - sweep.A0)
	sweep.Alpha0 = alpha
}

// Normalize shifts both angles by a multiple of 2*pi so that A0 lies in
// [0, 2*pi). Large angles degrade the advancement bound in TimeOfImpact.
func (sweep *Sweep) Normalize() {
	twoPi := 2.0 * pi
	d := twoPi * math.Floor(sweep.A0/twoPi)
	sweep.A0 -= d
	sweep.A -= d
}
