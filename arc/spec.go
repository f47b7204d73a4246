/*
Package arc solves under-specified circular arcs. Clients describe an arc
by a partial constraint set (some of center, radius, end point, sweep
angle, turning direction, tangent continuation) and Resolve completes it
into concrete geometry or rejects it.

Supported constraint combinations, with S the (always known) start point,
C center, R radius, E end point, θ sweep in degrees, D direction and T
tangent continuation:

	C, E [, R]   radius from |C−S| when omitted, else membership-checked;
	             sweep measured along D, defaulting to the minor arc
	C, θ [, R]   end point by rotating S about C
	C, R, θ      as above, with S checked against the circle
	R, E [, D]   two candidate centers on the chord bisector; D picks the
	             side, the arc defaults to minor
	R, E, θ      sign of θ picks the side (overriding D), its magnitude
	             picks minor (≤180°) or major; sweep recomputed from the
	             chosen geometry
	R, θ, T      tangent continuation: the center sits 90° off the tangent
	             direction, on the side the turn bends to

Everything else is rejected: underconstrained sets, points off the circle
(tolerance RadiusTol), non-positive radii. Zero and full-circle sweeps and
coinciding start/end points are degenerate; full circles must be drawn as
circle loops instead.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package arc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/werkbank"
)

// tracer writes to trace with key 'werkbank.arc'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.arc")
}

// Tolerances for arc resolution. These are fixed properties of the
// geometry checks, not client-configurable knobs.
const (
	// RadiusTol is the combined relative and absolute tolerance for
	// circle membership checks.
	RadiusTol = 1e-4
	// CoincideTol is the distance below which start and end point of an
	// arc count as the same point.
	CoincideTol = 1e-4
	// SweepTol is the sweep angle in radians below which an arc is
	// degenerate.
	SweepTol = 1e-6

	chordSlack     = 1e-8 // grace for radius vs half-chord comparisons
	antipodalSlack = 1e-8 // grace for minor/major decisions at 180°
)

// ErrValidation flags arc constraint sets that are contradictory,
// underconstrained or out of tolerance.
var ErrValidation = errors.New("invalid arc constraints")

// Dir selects the turning sense of an arc.
type Dir int8

const (
	CCW Dir = 1  // counterclockwise, positive sweep
	CW  Dir = -1 // clockwise, negative sweep
)

func (d Dir) String() string {
	switch d {
	case CCW:
		return "ccw"
	case CW:
		return "cw"
	}
	return fmt.Sprintf("dir(%d)", int8(d))
}

// Spec is a partial arc constraint set, assembled fluently:
//
//	arc.NewSpec().Radius(5).EndAt(werkbank.P(-5, 0)).Dir(arc.CW)
//
// Spec values are immutable; every method returns a modified copy.
type Spec struct {
	radius    float64
	center    werkbank.Pair
	end       werkbank.Pair
	sweep     float64 // degrees, signed
	tandir    werkbank.Pair
	dir       Dir
	hasRadius bool
	hasCenter bool
	centerRel bool
	hasEnd    bool
	endRel    bool
	hasSweep  bool
	tangent   bool
	hasTandir bool
}

// NewSpec returns an empty constraint set.
func NewSpec() Spec {
	return Spec{}
}

// Radius constrains the arc radius.
func (s Spec) Radius(r float64) Spec {
	s.radius, s.hasRadius = r, true
	return s
}

// CenterAt constrains the center to an absolute point.
func (s Spec) CenterAt(c werkbank.Pair) Spec {
	s.center, s.hasCenter, s.centerRel = c, true, false
	return s
}

// CenterBy constrains the center relative to the start point.
func (s Spec) CenterBy(d werkbank.Pair) Spec {
	s.center, s.hasCenter, s.centerRel = d, true, true
	return s
}

// EndAt constrains the end point to an absolute point.
func (s Spec) EndAt(e werkbank.Pair) Spec {
	s.end, s.hasEnd, s.endRel = e, true, false
	return s
}

// EndBy constrains the end point relative to the start point.
func (s Spec) EndBy(d werkbank.Pair) Spec {
	s.end, s.hasEnd, s.endRel = d, true, true
	return s
}

// Sweep constrains the sweep angle in degrees. Positive angles turn
// counterclockwise unless Dir says otherwise; negative angles always turn
// clockwise.
func (s Spec) Sweep(deg float64) Spec {
	s.sweep, s.hasSweep = deg, true
	return s
}

// Dir constrains the turning sense.
func (s Spec) Dir(d Dir) Spec {
	s.dir = d
	return s
}

// Tangent requests tangent continuation: the arc starts in the travel
// direction of the preceding segment. The direction itself is injected by
// the profile builder.
func (s Spec) Tangent() Spec {
	s.tangent = true
	return s
}

// TangentDir requests tangent continuation with an explicit start
// direction.
func (s Spec) TangentDir(v werkbank.Pair) Spec {
	s.tandir, s.hasTandir, s.tangent = v, true, true
	return s
}

// TangentRequested reports whether tangent continuation was requested
// without a direction to continue from.
func (s Spec) TangentRequested() bool {
	return s.tangent && !s.hasTandir
}

// Debug Stringer for constraint sets.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString("arc{")
	if s.hasRadius {
		fmt.Fprintf(&b, " r=%g", s.radius)
	}
	if s.hasCenter {
		fmt.Fprintf(&b, " c=%v", s.center)
		if s.centerRel {
			b.WriteString("rel")
		}
	}
	if s.hasEnd {
		fmt.Fprintf(&b, " e=%v", s.end)
		if s.endRel {
			b.WriteString("rel")
		}
	}
	if s.hasSweep {
		fmt.Fprintf(&b, " Δ=%g°", s.sweep)
	}
	if s.dir != 0 {
		fmt.Fprintf(&b, " %v", s.dir)
	}
	if s.tangent {
		b.WriteString(" tangent")
		if s.hasTandir {
			fmt.Fprintf(&b, "=%v", s.tandir)
		}
	}
	b.WriteString(" }")
	return b.String()
}

// verify checks the raw constraint fields before any resolution.
func (s Spec) verify(start werkbank.Pair) error {
	if s.dir != 0 && s.dir != CCW && s.dir != CW {
		return fmt.Errorf("%w: dir must be cw or ccw, is %v", ErrValidation, s.dir)
	}
	if s.hasRadius {
		if !werkbank.IsFinite(s.radius) {
			return fmt.Errorf("%w: non-finite radius", werkbank.ErrDegenerateGeometry)
		}
		if s.radius <= 0 {
			return fmt.Errorf("%w: radius must be > 0, is %g", ErrValidation, s.radius)
		}
	}
	if s.hasSweep && !werkbank.IsFinite(s.sweep) {
		return fmt.Errorf("%w: non-finite sweep", werkbank.ErrDegenerateGeometry)
	}
	if !start.IsFinite() ||
		(s.hasCenter && !s.center.IsFinite()) ||
		(s.hasEnd && !s.end.IsFinite()) ||
		(s.hasTandir && !s.tandir.IsFinite()) {
		return fmt.Errorf("%w: non-finite arc coordinates", werkbank.ErrDegenerateGeometry)
	}
	return nil
}
