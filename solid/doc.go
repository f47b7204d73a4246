// Package solid turns closed profiles into analytic 3D solids.
/*

Solids are produced by three constructions:

   Pad      linear extrusion of a profile along its plane normal
   Revolve  rotation of a profile about a world axis lying in its plane
   Sweep    extrusion of a profile along an open path

Both geometry backends implement the same Backend interface. Direct is
stateless and evaluates every call from scratch. Materialized first
upserts named sketch objects into a Document collaborator, so a design
session keeps inspectable drawing geometry around; rebuilding under the
same name clears and repopulates the sketch instead of creating a
duplicate, then construction is delegated to the Direct evaluation.

A Solid is not a boundary representation: it carries the measured
properties of the construction (volume, face and edge inventory, bounding
box, center of mass) computed analytically where the boundary allows it
and from bounded-error flattening elsewhere. Counts reflect the drawn
boundary segments one to one; they are not normalized the way a geometry
kernel would merge or split faces.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package solid

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'werkbank.solid'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.solid")
}

// FlattenTol is the chord deviation bound used whenever curved boundary
// geometry is flattened for integration.
const FlattenTol = 1e-4

// KinkWarnDeg bounds the turn between consecutive path tangents in frenet
// sweeps; sharper kinks are warned about through the tracer.
const KinkWarnDeg = 30.0

// ErrDegenerateRevolve flags revolutions the analytic evaluation cannot
// form: the axis crosses the profile interior, the profile collapses onto
// the axis, or the axis does not lie in the profile plane.
var ErrDegenerateRevolve = errors.New("degenerate revolve")

// ErrPathDiscontinuity flags sweep paths with pen-up gaps.
var ErrPathDiscontinuity = errors.New("sweep path has a gap")
