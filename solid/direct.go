package solid

import (
	"fmt"
	"math"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/profile"
)

// Direct is the stateless backend: every call evaluates transient
// geometry from the numeric profile and discards it.
type Direct struct{}

// Pad extrudes the profile by dist along its plane normal (dir Minus
// extrudes against it). Volume is exact: face area times distance.
func (Direct) Pad(p *profile.Profile, dist float64, dir Dir) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if !werkbank.IsFinite(dist) || dist <= 0 {
		return nil, fmt.Errorf("%w: pad distance must be finite and > 0, is %g",
			werkbank.ErrDegenerateGeometry, dist)
	}
	rings, err := resolveRegion(p, FlattenTol)
	if err != nil {
		return nil, err
	}
	area := p.Area()
	n := p.Frame.Normal.Scaled(dir.sign())
	s := &Solid{Op: "pad", Volume: area * dist}
	k := 0
	for _, loop := range p.Loops() {
		for _, seg := range loop.Segments {
			k++
			s.Faces = append(s.Faces, Face{Kind: padFaceKind(seg.Kind), Area: seg.Length(FlattenTol) * dist})
			s.Edges = append(s.Edges, segmentEdge(seg), segmentEdge(seg),
				Edge{Kind: EdgeLine, Length: dist})
		}
	}
	s.Faces = append(s.Faces, Face{Kind: FacePlanar, Area: area}, Face{Kind: FacePlanar, Area: area})
	s.Vertices = 2 * k
	c := regionCentroid(rings)
	s.CenterOfMass = p.Frame.Map(c).Shifted(n.Scaled(dist / 2))
	s.Min, s.Max = worldBounds(rings, func(pt werkbank.Pair) (werkbank.Triple, werkbank.Triple) {
		base := p.Frame.Map(pt)
		return base, base.Shifted(n.Scaled(dist))
	})
	tracer().Infof("pad %q by %v%g: %v", p.Name, dir, dist, s)
	return s, nil
}

// Revolve rotates the profile by angleDeg (degrees, clamped to (0,360])
// about a world axis that must lie in the profile plane, on one side of
// the profile. Volume follows Pappus: sweep angle times the region's
// first moment about the axis.
func (Direct) Revolve(p *profile.Profile, angleDeg float64, axis Axis) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if !werkbank.IsFinite(angleDeg) || angleDeg <= 0 {
		return nil, fmt.Errorf("%w: revolve angle must be in (0, 360], is %g",
			werkbank.ErrDegenerateGeometry, angleDeg)
	}
	if angleDeg > 360 {
		tracer().Debugf("revolve angle %g clamped to 360", angleDeg)
		angleDeg = 360
	}
	f := p.Frame
	u := axis.dir()
	if !werkbank.Is0(u.Dot(f.Normal)) || !werkbank.Is0(f.Origin.Dot(f.Normal)) {
		return nil, fmt.Errorf("%w: axis %v does not lie in the profile plane",
			ErrDegenerateRevolve, axis)
	}
	rings, err := resolveRegion(p, FlattenTol)
	if err != nil {
		return nil, err
	}
	// the axis in drawing coordinates: direction and the world origin
	adir := werkbank.P(u.Dot(f.XAxis), u.Dot(f.YAxis)).Unit()
	a0 := werkbank.P(-f.Origin.Dot(f.XAxis), -f.Origin.Dot(f.YAxis))
	qv, qvv, quv, vmin, vmax := axisMoments(rings, a0, adir)
	if vmin < -werkbank.Epsilon && vmax > werkbank.Epsilon {
		return nil, fmt.Errorf("%w: axis %v crosses the profile interior",
			ErrDegenerateRevolve, axis)
	}
	// normalize the material onto the positive side of the axis
	vdir := adir.Perp()
	if qv < 0 {
		qv, quv = -qv, -quv
		vdir = vdir.Scaled(-1)
	}
	if qv <= werkbank.Epsilon {
		return nil, fmt.Errorf("%w: profile collapses onto the axis", ErrDegenerateRevolve)
	}
	theta := angleDeg * werkbank.Deg2Rad
	full := angleDeg == 360
	vW := f.MapVec(vdir)
	wW := u.Cross(vW)
	s := &Solid{Op: "revolve", Volume: theta * qv}
	k := 0
	for _, loop := range p.Loops() {
		for _, seg := range loop.Segments {
			k++
			// lateral face by Pappus over the flattened curve
			pts := seg.Flatten(FlattenTol)
			var la float64
			for i := 1; i < len(pts); i++ {
				v1 := dot2(pts[i-1]-a0, vdir)
				v2 := dot2(pts[i]-a0, vdir)
				la += math.Abs(v1+v2) / 2 * pts[i-1].Dist(pts[i])
			}
			s.Faces = append(s.Faces, Face{Kind: revolveFaceKind(seg, adir, vdir), Area: theta * la})
			ringLen := theta * math.Abs(dot2(seg.Start-a0, vdir))
			if full {
				s.Edges = append(s.Edges, segmentEdge(seg), Edge{Kind: EdgeCircle, Length: ringLen})
			} else {
				s.Edges = append(s.Edges, segmentEdge(seg), segmentEdge(seg),
					Edge{Kind: EdgeCircle, Length: ringLen})
			}
		}
	}
	area := p.Area()
	if full {
		s.Vertices = k
	} else {
		s.Faces = append(s.Faces, Face{Kind: FacePlanar, Area: area}, Face{Kind: FacePlanar, Area: area})
		s.Vertices = 2 * k
	}
	if full {
		s.CenterOfMass = u.Scaled(quv / qv)
	} else {
		s.CenterOfMass = u.Scaled(quv / qv).
			Shifted(vW.Scaled(qvv * math.Sin(theta) / (theta * qv))).
			Shifted(wW.Scaled(qvv * (1 - math.Cos(theta)) / (theta * qv)))
	}
	angles := revolveBBoxAngles(theta, vW, wW)
	s.Min, s.Max = worldBounds(rings, func(pt werkbank.Pair) (werkbank.Triple, werkbank.Triple) {
		d := pt - a0
		uu, vv := dot2(d, adir), dot2(d, vdir)
		lo := werkbank.V(math.Inf(1), math.Inf(1), math.Inf(1))
		hi := lo.Scaled(-1)
		for _, phi := range angles {
			w := u.Scaled(uu).
				Shifted(vW.Scaled(vv * math.Cos(phi))).
				Shifted(wW.Scaled(vv * math.Sin(phi)))
			lo = lo.Min(w)
			hi = hi.Max(w)
		}
		return lo, hi
	})
	tracer().Infof("revolve %q by %g° about %v: %v", p.Name, angleDeg, axis, s)
	return s, nil
}

// Sweep extrudes the profile along the path, oriented per mode. Volume is
// area times path length, exact for straight paths and a documented
// approximation over curvature (corner material is neither added nor
// removed).
func (Direct) Sweep(p *profile.Profile, path *profile.Path, mode Orientation) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if path == nil || len(path.Segments) == 0 {
		return nil, fmt.Errorf("%w: sweep path is empty", werkbank.ErrDegenerateGeometry)
	}
	if gaps := path.Gaps(); len(gaps) > 0 {
		g := gaps[0]
		return nil, fmt.Errorf("%w: gap of %g before segment %d", ErrPathDiscontinuity, g.Width(), g.Index)
	}
	rings, err := resolveRegion(p, FlattenTol)
	if err != nil {
		return nil, err
	}
	frames, err := Frames(p.Frame, path, mode, FlattenTol)
	if err != nil {
		return nil, err
	}
	length := path.Length(FlattenTol)
	if length <= 0 {
		return nil, fmt.Errorf("%w: sweep path has no length", werkbank.ErrDegenerateGeometry)
	}
	area := p.Area()
	s := &Solid{Op: "sweep", Volume: area * length}
	latKind := EdgeOther
	if len(path.Segments) == 1 && path.Segments[0].Kind == profile.KindLine {
		latKind = EdgeLine
	}
	k := 0
	for _, loop := range p.Loops() {
		for _, seg := range loop.Segments {
			k++
			s.Faces = append(s.Faces, Face{Kind: FaceSwept, Area: seg.Length(FlattenTol) * length})
			s.Edges = append(s.Edges, segmentEdge(seg), segmentEdge(seg),
				Edge{Kind: latKind, Length: length})
		}
	}
	s.Faces = append(s.Faces, Face{Kind: FacePlanar, Area: area}, Face{Kind: FacePlanar, Area: area})
	s.Vertices = 2 * k
	// ride the section centroid along the frames
	c := regionCentroid(rings)
	var com werkbank.Triple
	var wsum float64
	prev := frames[0].Map(c)
	prevO := frames[0].Origin
	for i := 1; i < len(frames); i++ {
		cur := frames[i].Map(c)
		ds := frames[i].Origin.Dist(prevO)
		mid := prev.Shifted(cur.Minus(prev).Scaled(0.5))
		com = com.Shifted(mid.Scaled(ds))
		wsum += ds
		prev, prevO = cur, frames[i].Origin
	}
	if wsum > 0 {
		s.CenterOfMass = com.Scaled(1 / wsum)
	}
	lo := werkbank.V(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := lo.Scaled(-1)
	for _, fr := range frames {
		for _, r := range rings {
			for _, pt := range r.pts {
				w := fr.Map(pt)
				lo = lo.Min(w)
				hi = hi.Max(w)
			}
		}
	}
	s.Min, s.Max = lo, hi
	tracer().Infof("sweep %q along %q (%v): %v", p.Name, path.Name, mode, s)
	return s, nil
}

func padFaceKind(k profile.Kind) FaceKind {
	switch k {
	case profile.KindArc, profile.KindCircle:
		return FaceCylindrical
	case profile.KindCubic:
		return FaceSwept
	}
	return FacePlanar
}

// revolveFaceKind classifies the surface a segment sweeps: lines parallel
// to the axis make cylinders, perpendicular ones flat annuli, everything
// else a general surface of revolution.
func revolveFaceKind(seg profile.Segment, adir, vdir werkbank.Pair) FaceKind {
	if seg.Kind != profile.KindLine {
		return FaceSwept
	}
	d := seg.End - seg.Start
	tol := werkbank.Epsilon * d.Abs()
	switch {
	case math.Abs(dot2(d, vdir)) <= tol:
		return FaceCylindrical
	case math.Abs(dot2(d, adir)) <= tol:
		return FacePlanar
	}
	return FaceSwept
}

// segmentEdge is the boundary edge a drawn segment contributes to a cap.
func segmentEdge(s profile.Segment) Edge {
	switch s.Kind {
	case profile.KindArc, profile.KindCircle:
		return Edge{Kind: EdgeCircle, Length: s.Length(FlattenTol)}
	case profile.KindCubic:
		return Edge{Kind: EdgeOther, Length: s.Length(FlattenTol)}
	}
	return Edge{Kind: EdgeLine, Length: s.Length(FlattenTol)}
}

// worldBounds folds every ring boundary point through expand, which maps
// a drawing point to its extreme world positions.
func worldBounds(rings []ring, expand func(werkbank.Pair) (werkbank.Triple, werkbank.Triple)) (werkbank.Triple, werkbank.Triple) {
	lo := werkbank.V(math.Inf(1), math.Inf(1), math.Inf(1))
	hi := lo.Scaled(-1)
	for _, r := range rings {
		for _, p := range r.pts {
			a, b := expand(p)
			lo = lo.Min(a).Min(b)
			hi = hi.Max(a).Max(b)
		}
	}
	return lo, hi
}

// revolveBBoxAngles collects the sweep angles where a revolved point can
// reach a world-coordinate extreme: both sweep ends plus the angles where
// a coordinate's derivative vanishes.
func revolveBBoxAngles(theta float64, vW, wW werkbank.Triple) []float64 {
	angles := []float64{0, theta}
	vc := [3]float64{vW.X, vW.Y, vW.Z}
	wc := [3]float64{wW.X, wW.Y, wW.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(vc[i]) <= werkbank.Epsilon && math.Abs(wc[i]) <= werkbank.Epsilon {
			continue
		}
		base := math.Atan2(wc[i], vc[i])
		for _, phi := range [2]float64{base, base + math.Pi} {
			for phi < 0 {
				phi += 2 * math.Pi
			}
			for phi >= 2*math.Pi {
				phi -= 2 * math.Pi
			}
			if phi <= theta {
				angles = append(angles, phi)
			}
		}
	}
	return angles
}
