/*
Package plane places 2D drawing planes in 3D space. A Frame carries an
origin and the basis of a sketch plane; profiles are drawn in frame
coordinates and mapped to world space through it.

Keyword planes (XY, XZ, YZ) use drawing conventions: the frame normal
points along the conventional extrusion axis of the plane, which for XZ
is not XAxis cross YAxis. Offsets to keyword planes are world-space
translations; offsets to named datum planes are frame-local.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package plane

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/werkbank"
)

// tracer writes to trace with key 'werkbank.plane'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.plane")
}

// ErrInvalidPlane flags sketch planes that cannot be constructed: unknown
// datum references, zero normals, or x-axis hints parallel to the normal.
var ErrInvalidPlane = errors.New("invalid sketch plane")

// DatumResolver looks up named datum planes by identifier.
type DatumResolver interface {
	ResolveDatum(name string) (Frame, bool)
}

// Frame is a placed sketch plane: an origin, the in-plane basis vectors
// XAxis and YAxis, and the Normal along which pads extrude.
type Frame struct {
	Origin werkbank.Triple
	XAxis  werkbank.Triple
	YAxis  werkbank.Triple
	Normal werkbank.Triple
}

// XY returns the standard drawing plane. Drawing point (a,b) lands at
// world (a,b,0); pads extrude along +Z. The offset shifts the origin in
// world space.
func XY(off werkbank.Triple) Frame {
	return Frame{
		Origin: off,
		XAxis:  werkbank.V(1, 0, 0),
		YAxis:  werkbank.V(0, 1, 0),
		Normal: werkbank.V(0, 0, 1),
	}
}

// XZ returns the front drawing plane. Drawing point (a,b) lands at world
// (a,0,b); pads extrude along +Y. The offset shifts the origin in world
// space.
func XZ(off werkbank.Triple) Frame {
	return Frame{
		Origin: off,
		XAxis:  werkbank.V(1, 0, 0),
		YAxis:  werkbank.V(0, 0, 1),
		Normal: werkbank.V(0, 1, 0),
	}
}

// YZ returns the side drawing plane. Drawing point (a,b) lands at world
// (0,a,b); pads extrude along +X. The offset shifts the origin in world
// space.
func YZ(off werkbank.Triple) Frame {
	return Frame{
		Origin: off,
		XAxis:  werkbank.V(0, 1, 0),
		YAxis:  werkbank.V(0, 0, 1),
		Normal: werkbank.V(1, 0, 0),
	}
}

// Named resolves a datum plane by name and applies a frame-local offset:
// off is rotated by the datum basis before translating the origin.
func Named(name string, off werkbank.Triple, datums DatumResolver) (Frame, error) {
	if datums == nil {
		return Frame{}, fmt.Errorf("%w: no datum resolver for %q", ErrInvalidPlane, name)
	}
	f, ok := datums.ResolveDatum(name)
	if !ok {
		tracer().Errorf("datum %q not found", name)
		return Frame{}, fmt.Errorf("%w: unknown datum %q", ErrInvalidPlane, name)
	}
	return f.At(f.Map3(off)), nil
}

// FromAxes builds an arbitrary frame from an origin, a plane normal and
// an x-axis hint. The hint is re-orthogonalized against the normal; the
// y-axis completes a right-handed basis. A zero hint picks a stable
// default axis.
func FromAxes(origin, normal, xaxis werkbank.Triple) (Frame, error) {
	n := normal.Unit()
	if n.IsZero() {
		return Frame{}, fmt.Errorf("%w: zero normal", ErrInvalidPlane)
	}
	if xaxis.IsZero() {
		xaxis = werkbank.V(1, 0, 0)
		if werkbank.Is1(n.X) || werkbank.Is1(-n.X) {
			xaxis = werkbank.V(0, 1, 0)
		}
	}
	x := xaxis.Minus(n.Scaled(xaxis.Dot(n)))
	if werkbank.Is0(x.Abs()) {
		return Frame{}, fmt.Errorf("%w: x-axis parallel to normal", ErrInvalidPlane)
	}
	x = x.Unit()
	f := Frame{Origin: origin, XAxis: x, YAxis: n.Cross(x), Normal: n}
	tracer().Debugf("frame from axes: %v", f)
	return f, nil
}

// Map places a drawing point into world space.
func (f Frame) Map(p werkbank.Pair) werkbank.Triple {
	return f.Origin.Shifted(f.XAxis.Scaled(p.X())).Shifted(f.YAxis.Scaled(p.Y()))
}

// MapVec places a drawing direction into world space, ignoring the origin.
func (f Frame) MapVec(v werkbank.Pair) werkbank.Triple {
	return f.XAxis.Scaled(v.X()).Shifted(f.YAxis.Scaled(v.Y()))
}

// Map3 places a frame-local point (x along XAxis, y along YAxis, z along
// Normal) into world space.
func (f Frame) Map3(v werkbank.Triple) werkbank.Triple {
	return f.Origin.
		Shifted(f.XAxis.Scaled(v.X)).
		Shifted(f.YAxis.Scaled(v.Y)).
		Shifted(f.Normal.Scaled(v.Z))
}

// At returns a copy of the frame re-anchored at a new world origin.
func (f Frame) At(origin werkbank.Triple) Frame {
	f.Origin = origin
	return f
}

// Shifted returns a copy of the frame with the origin translated by d in
// world space.
func (f Frame) Shifted(d werkbank.Triple) Frame {
	f.Origin = f.Origin.Shifted(d)
	return f
}

// Rotatedaround returns a copy of the frame rigidly rotated by theta
// around a world axis through the world origin.
func (f Frame) Rotatedaround(axis werkbank.Triple, theta float64) Frame {
	return Frame{
		Origin: f.Origin.Rotatedaround(axis, theta),
		XAxis:  f.XAxis.Rotatedaround(axis, theta),
		YAxis:  f.YAxis.Rotatedaround(axis, theta),
		Normal: f.Normal.Rotatedaround(axis, theta),
	}
}

// Debug Stringer for frames.
func (f Frame) String() string {
	return fmt.Sprintf("plane{o=%v x=%v y=%v n=%v}", f.Origin, f.XAxis, f.YAxis, f.Normal)
}
