package arc

import (
	"fmt"
	"math"

	"github.com/npillmayer/werkbank"
)

// Resolved is a fully determined arc: a circle segment from Start to End
// around Center, swept by Sweep radians, counterclockwise positive.
type Resolved struct {
	Center werkbank.Pair
	Radius float64
	Start  werkbank.Pair
	End    werkbank.Pair
	Sweep  float64
}

// StartAngle is the angle of the start point around the center.
func (r Resolved) StartAngle() float64 {
	return (r.Start - r.Center).Angle()
}

// EndAngle is the angle of the end point around the center.
func (r Resolved) EndAngle() float64 {
	return r.StartAngle() + r.Sweep
}

// At returns the point at parameter t ∈ [0,1] along the arc.
func (r Resolved) At(t float64) werkbank.Pair {
	return r.Start.Rotatedaround(r.Center, r.Sweep*t)
}

// Mid returns the point halfway along the arc.
func (r Resolved) Mid() werkbank.Pair {
	return r.At(0.5)
}

// EndTangent is the unit direction of travel at the end point.
func (r Resolved) EndTangent() werkbank.Pair {
	radial := (r.End - r.Center).Unit()
	if r.Sweep >= 0 {
		return radial.Perp()
	}
	return radial.Perp().Scaled(-1)
}

// Pretty Stringer for resolved arcs.
func (r Resolved) String() string {
	return fmt.Sprintf("arc[c=%v r=%g Δ=%g°]", r.Center, r.Radius, r.Sweep/werkbank.Deg2Rad)
}

// Resolve completes the constraint set spec into concrete arc geometry,
// starting at start. It fails with ErrValidation for contradictory or
// underconstrained sets and with werkbank.ErrDegenerateGeometry for arcs
// that collapse (zero sweep, coinciding points, full circles).
func Resolve(start werkbank.Pair, spec Spec) (Resolved, error) {
	if err := spec.verify(start); err != nil {
		return Resolved{}, err
	}
	var sweep float64
	if spec.hasSweep {
		sweep = signedSweep(spec.sweep*werkbank.Deg2Rad, spec.dir)
		if err := checkSweepMagnitude(sweep); err != nil {
			return Resolved{}, err
		}
	}
	var r Resolved
	var err error
	switch {
	case spec.hasCenter:
		r, err = resolveAroundCenter(start, spec, sweep)
	case spec.hasEnd:
		r, err = resolveFromChord(start, spec, sweep)
	case spec.tangent:
		r, err = resolveTangent(start, spec, sweep)
	default:
		err = fmt.Errorf("%w: arc needs a center, an end point, or tangent continuation (%v)",
			ErrValidation, spec)
	}
	if err != nil {
		return Resolved{}, err
	}
	if !r.Center.IsFinite() || !r.End.IsFinite() || !werkbank.IsFinite(r.Sweep) {
		return Resolved{}, fmt.Errorf("%w: arc resolution produced non-finite geometry",
			werkbank.ErrDegenerateGeometry)
	}
	tracer().Debugf("resolved %v from %v", r, spec)
	return r, nil
}

// resolveAroundCenter handles all constraint sets with a known center.
func resolveAroundCenter(start werkbank.Pair, spec Spec, sweep float64) (Resolved, error) {
	c := spec.center
	if spec.centerRel {
		c = start.Shifted(spec.center)
	}
	r := spec.radius
	if d := start.Dist(c); !spec.hasRadius {
		r = d
		if werkbank.Is0(r) {
			return Resolved{}, fmt.Errorf("%w: radius must be > 0 (start coincides with center)",
				ErrValidation)
		}
	} else if !isclose(d, r, RadiusTol) {
		return Resolved{}, fmt.Errorf("%w: start %v not on circle around %v: |S−C| = %g, radius %g",
			ErrValidation, start, c, d, r)
	}
	var end werkbank.Pair
	if spec.hasEnd {
		end = spec.end
		if spec.endRel {
			end = start.Shifted(spec.end)
		}
		if d := end.Dist(c); !isclose(d, r, RadiusTol) {
			return Resolved{}, fmt.Errorf("%w: end %v not on circle around %v: |E−C| = %g, radius %g",
				ErrValidation, end, c, d, r)
		}
		if start.Dist(end) <= CoincideTol {
			return Resolved{}, fmt.Errorf("%w: start and end coincide; use a circle loop",
				werkbank.ErrDegenerateGeometry)
		}
	}
	var delta float64
	switch {
	case spec.hasSweep:
		delta = sweep
		if !spec.hasEnd {
			end = start.Rotatedaround(c, delta)
		}
	case spec.hasEnd:
		ccw := ccwDelta(c, start, end)
		switch spec.dir {
		case CCW:
			delta = ccw
		case CW:
			delta = ccw - 2*math.Pi
		default: // minor arc, antipodal ties turn counterclockwise
			delta = ccw
			if ccw > math.Pi+antipodalSlack {
				delta = ccw - 2*math.Pi
			}
		}
		if err := checkSweepMagnitude(delta); err != nil {
			return Resolved{}, err
		}
	default:
		return Resolved{}, fmt.Errorf("%w: arc around a center needs an end point or a sweep (%v)",
			ErrValidation, spec)
	}
	return Resolved{Center: c, Radius: r, Start: start, End: end, Sweep: delta}, nil
}

// resolveFromChord handles R+E constraint sets: the center is one of the
// two intersection points of the radius-R circles around start and end,
// i.e. it sits on the perpendicular bisector of the chord.
func resolveFromChord(start werkbank.Pair, spec Spec, sweep float64) (Resolved, error) {
	if !spec.hasRadius {
		return Resolved{}, fmt.Errorf("%w: radius required when center is omitted (%v)",
			ErrValidation, spec)
	}
	r := spec.radius
	end := spec.end
	if spec.endRel {
		end = start.Shifted(spec.end)
	}
	chord := start.Dist(end)
	if chord <= CoincideTol {
		return Resolved{}, fmt.Errorf("%w: start and end coincide; use a circle loop",
			werkbank.ErrDegenerateGeometry)
	}
	if r < chord/2-chordSlack {
		return Resolved{}, fmt.Errorf("%w: radius %g too small for end point (chord %g)",
			ErrValidation, r, chord)
	}
	h := math.Sqrt(math.Max(r*r-chord*chord/4, 0))
	mid := start.Shifted(end).Scaled(0.5)
	n := (end - start).Unit().Perp()
	wantCCW, wantMinor := true, true
	switch {
	case spec.hasSweep:
		wantCCW = sweep > 0
		wantMinor = math.Abs(sweep) <= math.Pi+antipodalSlack
	case spec.dir == CW:
		wantCCW = false
	}
	// Around each candidate, travel in the wanted direction is either the
	// minor or the major arc; the two candidates complement each other.
	c := mid.Shifted(n.Scaled(h))
	ccw := ccwDelta(c, start, end)
	if minorAlong(ccw, wantCCW) != wantMinor {
		c = mid.Shifted(n.Scaled(-h))
		ccw = ccwDelta(c, start, end)
	}
	delta := ccw
	if !wantCCW {
		delta = ccw - 2*math.Pi
	}
	if err := checkSweepMagnitude(delta); err != nil {
		return Resolved{}, err
	}
	return Resolved{Center: c, Radius: r, Start: start, End: end, Sweep: delta}, nil
}

// resolveTangent handles R+θ+T: the arc continues smoothly from a travel
// direction, bending to whichever side the turn demands.
func resolveTangent(start werkbank.Pair, spec Spec, sweep float64) (Resolved, error) {
	if !spec.hasRadius {
		return Resolved{}, fmt.Errorf("%w: radius required when center is omitted (%v)",
			ErrValidation, spec)
	}
	if !spec.hasSweep {
		return Resolved{}, fmt.Errorf("%w: tangent continuation needs a sweep (%v)",
			ErrValidation, spec)
	}
	t := spec.tandir.Unit()
	if !spec.hasTandir || t.IsOrigin() {
		return Resolved{}, fmt.Errorf("%w: no tangent direction available (%v)",
			ErrValidation, spec)
	}
	side := t.Perp() // 90° left of travel for counterclockwise turns
	if sweep < 0 {
		side = side.Scaled(-1)
	}
	c := start.Shifted(side.Scaled(spec.radius))
	end := start.Rotatedaround(c, sweep)
	return Resolved{Center: c, Radius: spec.radius, Start: start, End: end, Sweep: sweep}, nil
}

// signedSweep folds an explicit direction into a signed sweep: a negative
// angle always turns clockwise, a positive one follows d.
func signedSweep(rad float64, d Dir) float64 {
	if rad >= 0 && d == CW {
		return -rad
	}
	return rad
}

// checkSweepMagnitude rejects sweeps that collapse the arc or close the
// full circle.
func checkSweepMagnitude(rad float64) error {
	a := math.Abs(rad)
	if a < SweepTol {
		return fmt.Errorf("%w: sweep %g° too small", werkbank.ErrDegenerateGeometry,
			rad/werkbank.Deg2Rad)
	}
	if a >= 2*math.Pi-SweepTol {
		return fmt.Errorf("%w: full-circle sweep; use a circle loop",
			werkbank.ErrDegenerateGeometry)
	}
	return nil
}

// ccwDelta is the counterclockwise angle from s to e around c, in [0,2π).
func ccwDelta(c, s, e werkbank.Pair) float64 {
	d := (e - c).Angle() - (s - c).Angle()
	for d < 0 {
		d += 2 * math.Pi
	}
	for d >= 2*math.Pi {
		d -= 2 * math.Pi
	}
	return d
}

// minorAlong reports whether travel in the given direction around a
// candidate center covers the minor arc, given the counterclockwise delta
// around that center.
func minorAlong(ccw float64, wantCCW bool) bool {
	if wantCCW {
		return ccw <= math.Pi+antipodalSlack
	}
	return ccw >= math.Pi-antipodalSlack
}

// isclose is the combined relative and absolute tolerance test used for
// circle membership: |a−b| ≤ max(tol·max(|a|,|b|), tol).
func isclose(a, b, tol float64) bool {
	return math.Abs(a-b) <= math.Max(tol*math.Max(math.Abs(a), math.Abs(b)), tol)
}
