// Package profile builds validated planar geometry from chained drawing
// commands.
/*

A profile is a closed outer loop plus optional hole loops, drawn in the
2D coordinates of a sketch plane (package plane) and destined to become a
3D solid (package solid). A path is the open cousin of a profile: a space
curve a profile can be swept along.

Drawing follows MetaFont/MetaPost habits: a Builder is a small state
machine with a cursor. Move somewhere, append lines and arcs, close the
loop:

   pr, err := profile.New("bracket", plane.XY(werkbank.V(0, 0, 0))).
       MoveTo(werkbank.P(0, 0)).
       LineTo(werkbank.P(50, 0)).
       Arc(arc.NewSpec().Radius(8).EndAt(werkbank.P(50, 30)).Dir(arc.CCW)).
       LineTo(werkbank.P(0, 30)).
       Close().
       Build()

Every command validates its geometry; the first failure sticks and makes
Build return it, so chains need no per-call error plumbing. Arcs are
completed by package arc from partial constraint sets, including tangent
continuation from the previous segment.

SplineTo interpolates smooth cubic runs through knot sequences using John
Hobby's spline algorithm:

   Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
   Computer Science Dept. Stanford University
   Report No. STAN-CS-85-1047, Jan 1985

with unit tensions and curl 1 at free ends; when a previous segment
exists, its end tangent pins the spline's departure direction.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package profile

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'werkbank.profile'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.profile")
}

// CloseTol is the distance below which two points count as coincident
// when closing loops and chaining segments.
const CloseTol = 1e-6

// ErrState flags illegal command sequencing, e.g. appending a line before
// moveTo or after close.
var ErrState = errors.New("illegal profile command sequence")
