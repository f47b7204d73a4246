package solid

import (
	"fmt"
	"math"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/plane"
	"github.com/npillmayer/werkbank/profile"
)

// Frames computes world-space placement frames along a sweep path, one
// per flattened path sample. Auto rotates the profile frame once so its
// normal aligns with the path start tangent; Fixed keeps the caller's
// orientation; Frenet transports the frame from tangent to tangent along
// the path. Frenet kinks sharper than KinkWarnDeg are warned about
// through the tracer, never auto-corrected.
func Frames(pf plane.Frame, path *profile.Path, mode Orientation, tol float64) ([]plane.Frame, error) {
	pts := path.Polyline(tol)
	if len(pts) < 2 {
		return nil, fmt.Errorf("%w: sweep path has no extent", werkbank.ErrDegenerateGeometry)
	}
	world := make([]werkbank.Triple, len(pts))
	for i, p := range pts {
		world[i] = path.Frame.Map(p)
	}
	// discrete unit tangents; the first one is the exact curve tangent
	tangents := make([]werkbank.Triple, len(world))
	tangents[0] = path.StartTangent()
	for i := 1; i < len(world); i++ {
		t := werkbank.Triple{}
		if i < len(world)-1 {
			t = world[i+1].Minus(world[i]).Unit()
		}
		if t.IsZero() {
			t = tangents[i-1]
		}
		tangents[i] = t
	}
	start := pf
	if mode != Fixed {
		axis, angle := rotationTo(pf.Normal, tangents[0])
		start = rotateAxes(pf, axis, angle)
	}
	frames := make([]plane.Frame, len(world))
	frames[0] = start.At(world[0])
	if mode != Frenet {
		for i := 1; i < len(world); i++ {
			frames[i] = start.At(world[i])
		}
		return frames, nil
	}
	cur := start
	kinks, sharpest := 0, 0.0
	for i := 1; i < len(world); i++ {
		axis, angle := rotationTo(tangents[i-1], tangents[i])
		if angle > KinkWarnDeg*werkbank.Deg2Rad {
			kinks++
			sharpest = math.Max(sharpest, angle)
		}
		cur = rotateAxes(cur, axis, angle)
		frames[i] = cur.At(world[i])
	}
	if kinks > 0 {
		tracer().Infof("frenet sweep along %q twists over %d kinks, sharpest %.1f°",
			path.Name, kinks, sharpest/werkbank.Deg2Rad)
	}
	return frames, nil
}

// rotationTo returns the minimal rotation taking unit vector a onto unit
// vector b as an axis and angle. Antiparallel inputs rotate by π about a
// stable perpendicular.
func rotationTo(a, b werkbank.Triple) (werkbank.Triple, float64) {
	axis := a.Cross(b)
	sin := axis.Abs()
	cos := a.Dot(b)
	if sin <= werkbank.Epsilon {
		if cos >= 0 {
			return werkbank.Triple{}, 0
		}
		return stablePerp(a), math.Pi
	}
	return axis.Scaled(1 / sin), math.Atan2(sin, cos)
}

// stablePerp picks a deterministic unit vector perpendicular to a.
func stablePerp(a werkbank.Triple) werkbank.Triple {
	p := a.Cross(werkbank.V(1, 0, 0))
	if p.Abs() <= werkbank.Epsilon {
		p = a.Cross(werkbank.V(0, 1, 0))
	}
	return p.Unit()
}

// rotateAxes rigidly rotates the frame basis, leaving the origin alone.
func rotateAxes(f plane.Frame, axis werkbank.Triple, angle float64) plane.Frame {
	if axis.IsZero() || angle == 0 {
		return f
	}
	f.XAxis = f.XAxis.Rotatedaround(axis, angle)
	f.YAxis = f.YAxis.Rotatedaround(axis, angle)
	f.Normal = f.Normal.Rotatedaround(axis, angle)
	return f
}
