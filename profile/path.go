package profile

import (
	"fmt"
	"strings"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/arc"
	"github.com/npillmayer/werkbank/plane"
)

// Path is an open run of segments drawn on a sketch plane, used as a
// sweep trajectory. Unlike profile loops, paths never close, and they
// may contain gaps where the pen was lifted. Gapped paths are legal to
// build but most consumers reject them.
type Path struct {
	Name     string
	Frame    plane.Frame
	Segments []Segment
	gaps     []Gap
}

// Gap is a pen-up jump inside a path: the segment at Index starts at To
// although its predecessor ended at From.
type Gap struct {
	Index    int
	From, To werkbank.Pair
}

// Width is the jump distance of the gap.
func (g Gap) Width() float64 {
	return g.From.Dist(g.To)
}

func (g Gap) String() string {
	return fmt.Sprintf("gap[%d] %v>%v", g.Index, g.From, g.To)
}

// Gaps lists the pen-up jumps of the path in segment order.
func (p *Path) Gaps() []Gap {
	return p.gaps
}

// Continuous is true if the path has no gaps.
func (p *Path) Continuous() bool {
	return len(p.gaps) == 0
}

// Start is the drawing-plane start point of the path.
func (p *Path) Start() werkbank.Pair {
	if len(p.Segments) == 0 {
		return werkbank.Origin
	}
	return p.Segments[0].Start
}

// StartTangent is the world-space unit direction the path departs in.
// Degenerate paths fall back to the plane normal.
func (p *Path) StartTangent() werkbank.Triple {
	if len(p.Segments) > 0 {
		if t := p.Segments[0].StartTangent(); !t.IsOrigin() {
			return p.Frame.MapVec(t).Unit()
		}
	}
	return p.Frame.Normal
}

// Length is the drawn length of the path, gaps not included.
func (p *Path) Length(tol float64) float64 {
	var l float64
	for _, s := range p.Segments {
		l += s.Length(tol)
	}
	return l
}

// Polyline flattens the path into drawing-plane samples with chord
// deviation bounded by tol. Consecutive segments share their joint
// point; at a gap the polyline simply jumps.
func (p *Path) Polyline(tol float64) []werkbank.Pair {
	var pts []werkbank.Pair
	for i, s := range p.Segments {
		q := s.Flatten(tol)
		if i > 0 && len(pts) > 0 && len(q) > 0 && pts[len(pts)-1].Equal(q[0]) {
			q = q[1:]
		}
		pts = append(pts, q...)
	}
	return pts
}

// Pretty Stringer in MetaPost flavor, ampersand marking gaps:
//
//	(0,0) -- (40,0) .. (50,10) & (60,10) -- (80,10)
func (p *Path) String() string {
	if len(p.Segments) == 0 {
		return "<empty path>"
	}
	gapAt := make(map[int]bool, len(p.gaps))
	for _, g := range p.gaps {
		gapAt[g.Index] = true
	}
	var b strings.Builder
	b.WriteString(p.Segments[0].Start.String())
	for i, s := range p.Segments {
		if i > 0 && gapAt[i] {
			fmt.Fprintf(&b, " & %v", s.Start)
		}
		switch s.Kind {
		case KindCubic:
			fmt.Fprintf(&b, " .. controls %v and %v .. ", s.Ctrl1, s.Ctrl2)
		case KindArc:
			b.WriteString(" .. ")
		default:
			b.WriteString(" -- ")
		}
		b.WriteString(s.End.String())
	}
	return b.String()
}

// PathBuilder accumulates drawing commands into an open path. It shares
// the command set of Builder, except that paths are never closed and
// MoveTo may be used mid-path to lift the pen. The first error sticks.
type PathBuilder struct {
	run
	name    string
	frame   plane.Frame
	gaps    []Gap
	started bool
	err     error
}

// NewPath starts an empty path named name on the given sketch plane.
func NewPath(name string, frame plane.Frame) *PathBuilder {
	return &PathBuilder{name: name, frame: frame}
}

func (b *PathBuilder) fail(err error) *PathBuilder {
	if b.err == nil {
		b.err = err
		tracer().Errorf("path %q: %v", b.name, err)
	}
	return b
}

// Err returns the first error a command produced, if any.
func (b *PathBuilder) Err() error {
	return b.err
}

// MoveTo positions the pen at p. Before the first drawing command it
// sets the path start; afterwards it records a gap.
func (b *PathBuilder) MoveTo(p werkbank.Pair) *PathBuilder {
	if b.err != nil {
		return b
	}
	if !p.IsFinite() {
		return b.fail(fmt.Errorf("%w: non-finite move target", werkbank.ErrDegenerateGeometry))
	}
	if b.started && len(b.segs) > 0 {
		if n := len(b.gaps); n > 0 && b.gaps[n-1].Index == len(b.segs) {
			// consecutive moves merge into one gap
			b.gaps[n-1].To = p
			if b.gaps[n-1].Width() <= CloseTol {
				b.gaps = b.gaps[:n-1]
			}
		} else if b.cursor.Dist(p) > CloseTol {
			b.gaps = append(b.gaps, Gap{Index: len(b.segs), From: b.cursor, To: p})
		}
	}
	b.cursor = p
	b.started = true
	return b
}

// MoveBy positions the pen relative to the cursor.
func (b *PathBuilder) MoveBy(d werkbank.Pair) *PathBuilder {
	if b.err != nil {
		return b
	}
	return b.MoveTo(b.cursor.Shifted(d))
}

func (b *PathBuilder) appendable() error {
	if !b.started {
		return fmt.Errorf("%w: path not started (moveTo first)", ErrState)
	}
	return nil
}

// LineTo appends a straight segment to the absolute point p.
func (b *PathBuilder) LineTo(p werkbank.Pair) *PathBuilder {
	if b.err != nil {
		return b
	}
	if err := b.appendable(); err != nil {
		return b.fail(err)
	}
	if err := b.lineTo(p); err != nil {
		return b.fail(err)
	}
	return b
}

// LineToX appends a horizontal move to x, keeping the cursor's y.
func (b *PathBuilder) LineToX(x float64) *PathBuilder {
	return b.LineTo(werkbank.P(x, b.cursor.Y()))
}

// LineToY appends a vertical move to y, keeping the cursor's x.
func (b *PathBuilder) LineToY(y float64) *PathBuilder {
	return b.LineTo(werkbank.P(b.cursor.X(), y))
}

// LineBy appends a straight segment displaced by d from the cursor.
func (b *PathBuilder) LineBy(d werkbank.Pair) *PathBuilder {
	return b.LineTo(b.cursor.Shifted(d))
}

// LineByPolar appends a straight segment of length r at angle angleDeg.
func (b *PathBuilder) LineByPolar(r, angleDeg float64) *PathBuilder {
	return b.LineBy(werkbank.P(r, 0).Rotated(angleDeg * werkbank.Deg2Rad))
}

// Arc resolves spec from the cursor and appends the result.
func (b *PathBuilder) Arc(spec arc.Spec) *PathBuilder {
	if b.err != nil {
		return b
	}
	if err := b.appendable(); err != nil {
		return b.fail(err)
	}
	if err := b.arcTo(spec); err != nil {
		return b.fail(err)
	}
	return b
}

// SplineTo appends a smooth cubic run through the given knots.
func (b *PathBuilder) SplineTo(knots ...werkbank.Pair) *PathBuilder {
	if b.err != nil {
		return b
	}
	if err := b.appendable(); err != nil {
		return b.fail(err)
	}
	if err := b.splineTo(knots); err != nil {
		return b.fail(err)
	}
	return b
}

// Build returns the finished path, or the first error any command
// produced. At least one segment must have been drawn.
func (b *PathBuilder) Build() (*Path, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.segs) == 0 {
		return nil, fmt.Errorf("%w: path has no segments", ErrState)
	}
	p := &Path{Name: b.name, Frame: b.frame, Segments: b.segs, gaps: b.gaps}
	tracer().Infof("built path %q: %d segments, %d gaps", p.Name, len(p.Segments), len(p.gaps))
	return p, nil
}
