package collide2d

import "math"

var toiCalls, toiIters, toiMaxIters int

// TOIInput is a continuous collision query: two convex proxies, each
// following a rigid sweep, over the interval [0, TMax].
type TOIInput struct {
	ProxyA DistanceProxy
	ProxyB DistanceProxy
	SweepA Sweep
	SweepB Sweep
	TMax   float64
}

// TOIState is the terminal state of a time-of-impact query.
type TOIState uint8

const (
	// TOIStateUnknown is the pre-query state; it never escapes
	// TimeOfImpact.
	TOIStateUnknown TOIState = iota
	// TOIStateFailed means no safe time bound could be established. The
	// caller must assume immediate contact.
	TOIStateFailed
	// TOIStateOverlapped means the shapes already touch or interpenetrate
	// at the start of the interval; resolve via the discrete contact path.
	TOIStateOverlapped
	// TOIStateTouching means the shapes reach the touching tolerance at
	// time T.
	TOIStateTouching
	// TOIStateSeparated means the gap never closes to tolerance within
	// [0, TMax].
	TOIStateSeparated
)

// TOIOutput is the result of a time-of-impact query. T is a fraction in
// [0, TMax].
type TOIOutput struct {
	State TOIState
	T     float64
}

// TimeOfImpact computes an upper bound on the time before the two swept
// proxies come within tolerance of touching, by conservative
// advancement: at each candidate time the closest-point distance is
// measured, and the candidate is advanced by the remaining gap divided
// by a bound on the closing speed that cannot be exceeded by the sweeps.
// The bound never overshoots, so the advancement is monotonic and the
// reported time is safe.
//
// Identical inputs always yield identical (State, T).
func TimeOfImpact(output *TOIOutput, input *TOIInput) {
	toiCalls++

	output.State = TOIStateUnknown
	output.T = input.TMax

	proxyA := &input.ProxyA
	proxyB := &input.ProxyB

	sweepA := input.SweepA
	sweepB := input.SweepB

	// Large rotations can make the advancement bound useless, so the
	// sweep angles are normalized.
	sweepA.Normalize()
	sweepB.Normalize()

	tMax := input.TMax

	totalRadius := proxyA.Radius + proxyB.Radius
	target := math.Max(LinearSlop, totalRadius-3.0*LinearSlop)
	tolerance := 0.25 * LinearSlop
	assertTrue(target > tolerance)

	// Closing-speed bound per unit sweep time: relative linear speed plus
	// each body's angular speed times its bounding radius about the
	// center of mass. The gap cannot close faster than this.
	dA := sweepA.C.Sub(sweepA.C0)
	dB := sweepB.C.Sub(sweepB.C0)
	omegaA := sweepA.A - sweepA.A0
	omegaB := sweepB.A - sweepB.A0
	maxRadiusA := proxyA.MaxRadius(sweepA.LocalCenter)
	maxRadiusB := proxyB.MaxRadius(sweepB.LocalCenter)
	bound := dB.Sub(dA).Length() +
		math.Abs(omegaA)*maxRadiusA +
		math.Abs(omegaB)*maxRadiusB

	t := 0.0
	iter := 0

	// Prepare input for the distance queries. Radii are handled through
	// target, not inside the distance query.
	var cache SimplexCache
	var distanceInput DistanceInput
	distanceInput.ProxyA = input.ProxyA
	distanceInput.ProxyB = input.ProxyB
	distanceInput.UseRadii = false

	for {
		distanceInput.TransformA = sweepA.Transform(t)
		distanceInput.TransformB = sweepB.Transform(t)

		var distanceOutput DistanceOutput
		Distance(&distanceOutput, &cache, &distanceInput)

		d := distanceOutput.Distance

		// The gap has closed to the touching band, or the cores already
		// interpenetrate.
		if d < target+tolerance {
			if t == 0.0 {
				output.State = TOIStateOverlapped
				output.T = 0.0
			} else {
				output.State = TOIStateTouching
				output.T = t
			}
			break
		}

		if bound < epsilon {
			// No relative motion; the advancement step would divide by
			// a vanishing denominator.
			output.State = TOIStateFailed
			output.T = t
			break
		}

		// Conservative step: the gap beyond the band cannot close faster
		// than bound, so advancing by its quotient cannot overshoot the
		// true time of impact.
		t2 := t + (d-target)/bound
		if t2 >= tMax {
			output.State = TOIStateSeparated
			output.T = tMax
			break
		}
		t = t2

		iter++
		toiIters++

		if iter == MaxTOIIterations {
			// The advancement stalled without reaching the band.
			output.State = TOIStateFailed
			output.T = t
			break
		}
	}

	if iter > toiMaxIters {
		toiMaxIters = iter
	}
}
