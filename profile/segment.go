package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/werkbank"
)

// Kind tags the segment variants.
type Kind uint8

const (
	KindLine Kind = iota + 1
	KindArc
	KindCircle
	KindCubic
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindCircle:
		return "circle"
	case KindCubic:
		return "cubic"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Role distinguishes the outer boundary of a profile from its holes.
type Role uint8

const (
	Outer Role = iota
	Hole
)

func (r Role) String() string {
	if r == Hole {
		return "hole"
	}
	return "outer"
}

// Segment is one edge of a loop or path. Every segment knows its own
// start point; chained segments share endpoints. Arcs carry center,
// radius and signed sweep (counterclockwise positive); circles are
// standalone closed rings with Start == End at angle 0; cubics carry
// their two control points.
type Segment struct {
	Kind   Kind
	Start  werkbank.Pair
	End    werkbank.Pair
	Center werkbank.Pair
	Radius float64
	Sweep  float64
	Ctrl1  werkbank.Pair
	Ctrl2  werkbank.Pair
}

// flattening bounds
const (
	flattenMaxChords    = 512
	flattenCircleChords = 8
	cubicAreaTol        = 1e-4
)

// StartTangent is the unit travel direction at the segment start, or
// origin for circles, which have none.
func (s Segment) StartTangent() werkbank.Pair {
	switch s.Kind {
	case KindLine:
		return (s.End - s.Start).Unit()
	case KindArc:
		radial := (s.Start - s.Center).Unit()
		if s.Sweep >= 0 {
			return radial.Perp()
		}
		return radial.Perp().Scaled(-1)
	case KindCubic:
		if t := (s.Ctrl1 - s.Start).Unit(); !t.IsOrigin() {
			return t
		}
		return (s.End - s.Start).Unit()
	}
	return werkbank.Origin
}

// EndTangent is the unit travel direction at the segment end, or origin
// for circles.
func (s Segment) EndTangent() werkbank.Pair {
	switch s.Kind {
	case KindLine:
		return (s.End - s.Start).Unit()
	case KindArc:
		radial := (s.End - s.Center).Unit()
		if s.Sweep >= 0 {
			return radial.Perp()
		}
		return radial.Perp().Scaled(-1)
	case KindCubic:
		if t := (s.End - s.Ctrl2).Unit(); !t.IsOrigin() {
			return t
		}
		return (s.End - s.Start).Unit()
	}
	return werkbank.Origin
}

// Length is the arc length of the segment. Lines, arcs and circles are
// exact; cubics are measured along their flattening at tolerance tol.
func (s Segment) Length(tol float64) float64 {
	switch s.Kind {
	case KindLine:
		return s.Start.Dist(s.End)
	case KindArc:
		return math.Abs(s.Sweep) * s.Radius
	case KindCircle:
		return 2 * math.Pi * s.Radius
	case KindCubic:
		pts := s.Flatten(tol)
		var l float64
		for i := 1; i < len(pts); i++ {
			l += pts[i-1].Dist(pts[i])
		}
		return l
	}
	return 0
}

// Flatten approximates the segment by a polyline from Start to End
// inclusive, with chord deviation bounded by tol. Circles trace the full
// ring, first point equal to the last.
func (s Segment) Flatten(tol float64) []werkbank.Pair {
	switch s.Kind {
	case KindArc:
		n := chordCount(math.Abs(s.Sweep), s.Radius, tol, 1)
		pts := make([]werkbank.Pair, n+1)
		pts[0] = s.Start
		for i := 1; i < n; i++ {
			pts[i] = s.Start.Rotatedaround(s.Center, s.Sweep*float64(i)/float64(n))
		}
		pts[n] = s.End
		return pts
	case KindCircle:
		n := chordCount(2*math.Pi, s.Radius, tol, flattenCircleChords)
		pts := make([]werkbank.Pair, n+1)
		for i := 0; i < n; i++ {
			pts[i] = s.Center.Shifted(werkbank.P(s.Radius, 0).Rotated(2 * math.Pi * float64(i) / float64(n)))
		}
		pts[n] = pts[0]
		return pts
	case KindCubic:
		n := cubicChordCount(s, tol)
		pts := make([]werkbank.Pair, n+1)
		pts[0] = s.Start
		for i := 1; i < n; i++ {
			pts[i] = s.at(float64(i) / float64(n))
		}
		pts[n] = s.End
		return pts
	}
	return []werkbank.Pair{s.Start, s.End}
}

// at evaluates a cubic segment at parameter t.
func (s Segment) at(t float64) werkbank.Pair {
	u := 1 - t
	b := s.Start.Scaled(u * u * u)
	b = b + s.Ctrl1.Scaled(3*u*u*t)
	b = b + s.Ctrl2.Scaled(3*u*t*t)
	b = b + s.End.Scaled(t*t*t)
	return b
}

// chordCount bounds the sagitta of each chord of a radius-r arc of the
// given angle by tol.
func chordCount(sweep, r, tol float64, min int) int {
	phi := math.Pi / 2
	if r > 0 && tol < r {
		phi = 2 * math.Acos(1-tol/r)
	}
	n := min
	if phi > 0 {
		if k := int(math.Ceil(sweep / phi)); k > n {
			n = k
		}
	}
	if n > flattenMaxChords {
		n = flattenMaxChords
	}
	if n < 1 {
		n = 1
	}
	return n
}

// cubicChordCount derives the subdivision count from the second
// derivative bound of the Bézier polygon (Wang's formula).
func cubicChordCount(s Segment, tol float64) int {
	m1 := (s.Start - s.Ctrl1.Scaled(2) + s.Ctrl2).Abs()
	m2 := (s.Ctrl1 - s.Ctrl2.Scaled(2) + s.End).Abs()
	m := math.Max(m1, m2)
	if tol <= 0 || m == 0 {
		return 1
	}
	n := int(math.Ceil(math.Sqrt(3 * m / (4 * tol))))
	if n < 1 {
		n = 1
	}
	if n > flattenMaxChords {
		n = flattenMaxChords
	}
	return n
}

// Loop is an ordered sequence of segments forming a closed boundary.
type Loop struct {
	Role     Role
	Segments []Segment
}

// Len is the number of segments in the loop.
func (l Loop) Len() int {
	return len(l.Segments)
}

// First is the first point of the loop.
func (l Loop) First() werkbank.Pair {
	if len(l.Segments) == 0 {
		return werkbank.Origin
	}
	return l.Segments[0].Start
}

// Last is the end point of the last segment.
func (l Loop) Last() werkbank.Pair {
	if len(l.Segments) == 0 {
		return werkbank.Origin
	}
	return l.Segments[len(l.Segments)-1].End
}

// Length is the perimeter of the loop.
func (l Loop) Length(tol float64) float64 {
	var p float64
	for _, s := range l.Segments {
		p += s.Length(tol)
	}
	return p
}

// Area is the signed area enclosed by the loop, positive for
// counterclockwise traversal. Lines, arcs and circles contribute exactly
// (shoelace plus circular segment corrections); cubic pieces contribute
// via their flattening at a fixed tolerance.
func (l Loop) Area() float64 {
	var a float64
	for _, s := range l.Segments {
		switch s.Kind {
		case KindCircle:
			a += math.Pi * s.Radius * s.Radius
		case KindArc:
			a += cross2(s.Start, s.End) / 2
			a += s.Radius * s.Radius / 2 * (s.Sweep - math.Sin(s.Sweep))
		case KindCubic:
			pts := s.Flatten(cubicAreaTol)
			for i := 1; i < len(pts); i++ {
				a += cross2(pts[i-1], pts[i]) / 2
			}
		default:
			a += cross2(s.Start, s.End) / 2
		}
	}
	return a
}

// Flatten approximates the loop by a closed polygon ring; the closing
// duplicate point is dropped.
func (l Loop) Flatten(tol float64) []werkbank.Pair {
	var pts []werkbank.Pair
	for i, s := range l.Segments {
		p := s.Flatten(tol)
		if i > 0 && len(pts) > 0 && len(p) > 0 && pts[len(pts)-1].Equal(p[0]) {
			p = p[1:]
		}
		pts = append(pts, p...)
	}
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// Pretty Stringer in MetaPost flavor: lines join with --, curved
// segments with ..; the trailing cycle marks closure.
//
// Example, a rounded rectangle corner:
//
//	(0,0) -- (50,0) .. (50,30) -- (0,30) -- cycle
func (l Loop) String() string {
	if len(l.Segments) == 0 {
		return "<empty loop>"
	}
	if len(l.Segments) == 1 && l.Segments[0].Kind == KindCircle {
		s := l.Segments[0]
		return fmt.Sprintf("circle[c=%v r=%g]", s.Center, s.Radius)
	}
	var b strings.Builder
	b.WriteString(l.First().String())
	for i, s := range l.Segments {
		last := i == len(l.Segments)-1
		switch s.Kind {
		case KindCubic:
			fmt.Fprintf(&b, " .. controls %v and %v", s.Ctrl1, s.Ctrl2)
			b.WriteString(" .. ")
		case KindArc:
			b.WriteString(" .. ")
		default:
			b.WriteString(" -- ")
		}
		if last {
			b.WriteString("cycle")
		} else {
			b.WriteString(s.End.String())
		}
	}
	return b.String()
}

func cross2(p, q werkbank.Pair) float64 {
	return p.X()*q.Y() - p.Y()*q.X()
}
