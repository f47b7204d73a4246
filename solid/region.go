package solid

import (
	"fmt"
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/profile"
)

// ring is one boundary ring of a resolved plane region, sign +1 where it
// bounds material, -1 where it bounds a hole.
type ring struct {
	pts  []werkbank.Pair
	sign float64
}

// resolveRegion flattens the profile loops and resolves outer minus holes
// with polyclip. Contour orientation after clipping is not trusted;
// material vs hole is decided by nesting depth instead.
func resolveRegion(p *profile.Profile, tol float64) ([]ring, error) {
	outer := contourOf(p.Outer.Flatten(tol))
	if len(outer) < 3 {
		return nil, fmt.Errorf("%w: outer loop flattens to %d points",
			werkbank.ErrDegenerateGeometry, len(outer))
	}
	region := polyclip.Polygon{outer}
	if len(p.Holes) > 0 {
		var holes polyclip.Polygon
		for _, h := range p.Holes {
			if c := contourOf(h.Flatten(tol)); len(c) >= 3 {
				holes = append(holes, c)
			}
		}
		region = region.Construct(polyclip.DIFFERENCE, holes)
	}
	rings := make([]ring, 0, len(region))
	for i, c := range region {
		if len(c) < 3 {
			continue
		}
		depth := 0
		for j, other := range region {
			if j != i && other.Contains(c[0]) {
				depth++
			}
		}
		r := ring{pts: make([]werkbank.Pair, len(c)), sign: 1}
		if depth%2 == 1 {
			r.sign = -1
		}
		for k, pt := range c {
			r.pts[k] = werkbank.P(pt.X, pt.Y)
		}
		rings = append(rings, r)
	}
	if len(rings) == 0 {
		return nil, fmt.Errorf("%w: region is empty", werkbank.ErrDegenerateGeometry)
	}
	tracer().Debugf("profile %q resolves to %d region rings", p.Name, len(rings))
	return rings, nil
}

func contourOf(pts []werkbank.Pair) polyclip.Contour {
	c := make(polyclip.Contour, len(pts))
	for i, p := range pts {
		c[i] = polyclip.Point{X: p.X(), Y: p.Y()}
	}
	return c
}

// regionArea is the flattened material area, holes subtracted.
func regionArea(rings []ring) float64 {
	var a float64
	for _, r := range rings {
		raw := 0.0
		for i := range r.pts {
			j := (i + 1) % len(r.pts)
			raw += cross2(r.pts[i], r.pts[j])
		}
		a += r.sign * math.Abs(raw/2)
	}
	return a
}

// regionCentroid is the area centroid in drawing coordinates.
func regionCentroid(rings []ring) werkbank.Pair {
	var a, mx, my float64
	for _, r := range rings {
		var ra, rmx, rmy float64
		for i := range r.pts {
			j := (i + 1) % len(r.pts)
			x1, y1 := r.pts[i].F()
			x2, y2 := r.pts[j].F()
			cr := x1*y2 - x2*y1
			ra += cr
			rmx += (x1 + x2) * cr
			rmy += (y1 + y2) * cr
		}
		f := r.sign
		if ra < 0 {
			f = -f
		}
		a += f * ra / 2
		mx += f * rmx / 6
		my += f * rmy / 6
	}
	if a == 0 {
		return werkbank.Origin
	}
	return werkbank.P(mx/a, my/a)
}

// regionBBox bounds the region in drawing coordinates.
func regionBBox(rings []ring) (min, max werkbank.Pair) {
	lo := werkbank.P(math.Inf(1), math.Inf(1))
	hi := werkbank.P(math.Inf(-1), math.Inf(-1))
	for _, r := range rings {
		for _, p := range r.pts {
			lo = werkbank.P(math.Min(lo.X(), p.X()), math.Min(lo.Y(), p.Y()))
			hi = werkbank.P(math.Max(hi.X(), p.X()), math.Max(hi.Y(), p.Y()))
		}
	}
	return lo, hi
}

// axisMoments integrates the region in axis coordinates: u along dir
// through the drawing point a0, v perpendicular to it (left of dir is
// positive). It returns Qv = ∫v dA, Qvv = ∫v² dA, Quv = ∫uv dA and the
// extreme v values of the boundary.
func axisMoments(rings []ring, a0, dir werkbank.Pair) (qv, qvv, quv, vmin, vmax float64) {
	perp := dir.Perp()
	vmin, vmax = math.Inf(1), math.Inf(-1)
	for _, r := range rings {
		var ra, rv, rvv, ruv float64
		n := len(r.pts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			d1 := r.pts[i] - a0
			d2 := r.pts[j] - a0
			u1, v1 := dot2(d1, dir), dot2(d1, perp)
			u2, v2 := dot2(d2, dir), dot2(d2, perp)
			cr := u1*v2 - u2*v1
			ra += cr
			rv += (v1 + v2) * cr
			rvv += (v1*v1 + v1*v2 + v2*v2) * cr
			ruv += (u1*v2 + 2*u1*v1 + 2*u2*v2 + u2*v1) * cr
			vmin = math.Min(vmin, v1)
			vmax = math.Max(vmax, v1)
		}
		f := r.sign
		if ra < 0 {
			f = -f
		}
		qv += f * rv / 6
		qvv += f * rvv / 12
		quv += f * ruv / 24
	}
	return qv, qvv, quv, vmin, vmax
}

func cross2(p, q werkbank.Pair) float64 {
	return p.X()*q.Y() - p.Y()*q.X()
}

func dot2(p, q werkbank.Pair) float64 {
	return p.X()*q.X() + p.Y()*q.Y()
}
