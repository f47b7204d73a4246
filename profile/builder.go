package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/arc"
	"github.com/npillmayer/werkbank/plane"
)

// Profile is a finished planar boundary: one outer loop plus holes, drawn
// on a sketch plane. Holes are expected to lie inside the outer loop;
// this is a caller responsibility and not enforced numerically.
type Profile struct {
	Name  string
	Frame plane.Frame
	Outer Loop
	Holes []Loop
}

// Loops returns the outer loop followed by the holes.
func (p *Profile) Loops() []Loop {
	loops := make([]Loop, 0, 1+len(p.Holes))
	loops = append(loops, p.Outer)
	return append(loops, p.Holes...)
}

// Area is the unsigned area of the outer loop minus the hole areas.
func (p *Profile) Area() float64 {
	a := math.Abs(p.Outer.Area())
	for _, h := range p.Holes {
		a -= math.Abs(h.Area())
	}
	return a
}

// Pretty Stringer for profiles.
func (p *Profile) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "profile %q: %v", p.Name, p.Outer)
	for _, h := range p.Holes {
		fmt.Fprintf(&b, " / hole %v", h)
	}
	return b.String()
}

// run accumulates connected segments behind a moving cursor. Builder and
// PathBuilder share it.
type run struct {
	segs   []Segment
	cursor werkbank.Pair
}

func (r *run) lineTo(to werkbank.Pair) error {
	if !to.IsFinite() {
		return fmt.Errorf("%w: non-finite line target", werkbank.ErrDegenerateGeometry)
	}
	if r.cursor.Dist(to) <= CloseTol {
		return fmt.Errorf("%w: zero-length line at %v", werkbank.ErrDegenerateGeometry, to)
	}
	r.segs = append(r.segs, Segment{Kind: KindLine, Start: r.cursor, End: to})
	r.cursor = to
	return nil
}

func (r *run) lastTangent() (werkbank.Pair, bool) {
	if len(r.segs) == 0 {
		return werkbank.Origin, false
	}
	t := r.segs[len(r.segs)-1].EndTangent()
	return t, !t.IsOrigin()
}

func (r *run) arcTo(spec arc.Spec) error {
	if spec.TangentRequested() {
		if t, ok := r.lastTangent(); ok {
			spec = spec.TangentDir(t)
		}
	}
	res, err := arc.Resolve(r.cursor, spec)
	if err != nil {
		return err
	}
	r.segs = append(r.segs, Segment{
		Kind:   KindArc,
		Start:  res.Start,
		End:    res.End,
		Center: res.Center,
		Radius: res.Radius,
		Sweep:  res.Sweep,
	})
	r.cursor = res.End
	return nil
}

func (r *run) splineTo(knots []werkbank.Pair) error {
	if len(knots) == 0 {
		return fmt.Errorf("%w: spline needs at least one knot", ErrState)
	}
	pts := make([]werkbank.Pair, 0, len(knots)+1)
	pts = append(pts, r.cursor)
	pts = append(pts, knots...)
	dir, hasDir := r.lastTangent()
	ctrls, err := hobbyControls(pts, dir, hasDir)
	if err != nil {
		return err
	}
	for i, c := range ctrls {
		r.segs = append(r.segs, Segment{
			Kind:  KindCubic,
			Start: pts[i],
			End:   pts[i+1],
			Ctrl1: c.c1,
			Ctrl2: c.c2,
		})
	}
	r.cursor = pts[len(pts)-1]
	return nil
}

// Builder accumulates drawing commands into a profile. Loops move through
// the states empty → open → closed; commands that violate the sequence
// fail with ErrState. The first error sticks: subsequent commands are
// ignored and Build reports it.
type Builder struct {
	run
	name     string
	frame    plane.Frame
	outer    Loop
	holes    []Loop
	role     Role
	first    werkbank.Pair
	open     bool
	hasOuter bool
	err      error
}

// New starts an empty profile named name on the given sketch plane.
func New(name string, frame plane.Frame) *Builder {
	return &Builder{name: name, frame: frame}
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
		tracer().Errorf("profile %q: %v", b.name, err)
	}
	return b
}

// Err returns the first error a command produced, if any.
func (b *Builder) Err() error {
	return b.err
}

// MoveTo begins the outer loop at p.
func (b *Builder) MoveTo(p werkbank.Pair) *Builder {
	if b.err != nil {
		return b
	}
	if b.open {
		return b.fail(fmt.Errorf("%w: loop already open", ErrState))
	}
	if b.hasOuter {
		return b.fail(fmt.Errorf("%w: only one outer loop per profile", ErrState))
	}
	if !p.IsFinite() {
		return b.fail(fmt.Errorf("%w: non-finite first point", werkbank.ErrDegenerateGeometry))
	}
	b.role = Outer
	b.first, b.cursor = p, p
	b.segs = nil
	b.open = true
	return b
}

// MoveBy begins the outer loop relative to the cursor, which starts out
// at origin.
func (b *Builder) MoveBy(d werkbank.Pair) *Builder {
	if b.err != nil {
		return b
	}
	return b.MoveTo(b.cursor.Shifted(d))
}

// HoleAt begins a hole loop at p. The outer loop must be closed first.
func (b *Builder) HoleAt(p werkbank.Pair) *Builder {
	if b.err != nil {
		return b
	}
	if b.open {
		return b.fail(fmt.Errorf("%w: loop already open", ErrState))
	}
	if !b.hasOuter {
		return b.fail(fmt.Errorf("%w: hole before outer loop", ErrState))
	}
	if !p.IsFinite() {
		return b.fail(fmt.Errorf("%w: non-finite first point", werkbank.ErrDegenerateGeometry))
	}
	b.role = Hole
	b.first, b.cursor = p, p
	b.segs = nil
	b.open = true
	return b
}

func (b *Builder) appendable() error {
	if !b.open {
		return fmt.Errorf("%w: no open loop (moveTo first)", ErrState)
	}
	return nil
}

// LineTo appends a straight segment to the absolute point p.
func (b *Builder) LineTo(p werkbank.Pair) *Builder {
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
func (b *Builder) LineToX(x float64) *Builder {
	return b.LineTo(werkbank.P(x, b.cursor.Y()))
}

// LineToY appends a vertical move to y, keeping the cursor's x.
func (b *Builder) LineToY(y float64) *Builder {
	return b.LineTo(werkbank.P(b.cursor.X(), y))
}

// LineBy appends a straight segment displaced by d from the cursor.
func (b *Builder) LineBy(d werkbank.Pair) *Builder {
	return b.LineTo(b.cursor.Shifted(d))
}

// LineByPolar appends a straight segment of length r at angle angleDeg
// (degrees, counterclockwise from the x-axis).
func (b *Builder) LineByPolar(r, angleDeg float64) *Builder {
	return b.LineBy(werkbank.P(r, 0).Rotated(angleDeg * werkbank.Deg2Rad))
}

// Arc resolves spec from the cursor and appends the result. A tangent
// continuation spec picks up the previous segment's end tangent.
func (b *Builder) Arc(spec arc.Spec) *Builder {
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

// SplineTo appends a smooth cubic run through the given knots, departing
// along the previous segment's end tangent when there is one.
func (b *Builder) SplineTo(knots ...werkbank.Pair) *Builder {
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

// Close closes the open loop, appending a straight segment back to the
// loop's first point unless the cursor already sits there.
func (b *Builder) Close() *Builder {
	if b.err != nil {
		return b
	}
	if !b.open {
		return b.fail(fmt.Errorf("%w: close without an open loop", ErrState))
	}
	if len(b.segs) == 0 {
		return b.fail(fmt.Errorf("%w: loop has no segments", werkbank.ErrDegenerateGeometry))
	}
	if b.cursor.Dist(b.first) > CloseTol {
		if err := b.lineTo(b.first); err != nil {
			return b.fail(err)
		}
	}
	loop := Loop{Role: b.role, Segments: b.segs}
	b.adopt(loop)
	b.segs = nil
	b.cursor = b.first
	b.open = false
	tracer().Debugf("profile %q: closed %v loop, %d segments", b.name, loop.Role, loop.Len())
	return b
}

func (b *Builder) adopt(l Loop) {
	if l.Role == Outer {
		b.outer, b.hasOuter = l, true
	} else {
		b.holes = append(b.holes, l)
	}
}

// standalone checks the state for loop primitives (circle, rect, polygon).
func (b *Builder) standalone(role Role) error {
	if b.open {
		return fmt.Errorf("%w: loop already open", ErrState)
	}
	if role == Outer && b.hasOuter {
		return fmt.Errorf("%w: only one outer loop per profile", ErrState)
	}
	if role == Hole && !b.hasOuter {
		return fmt.Errorf("%w: hole before outer loop", ErrState)
	}
	return nil
}

// Circle adds a standalone circle of radius r around at as the outer loop.
func (b *Builder) Circle(at werkbank.Pair, r float64) *Builder {
	return b.circleLoop(at, r, Outer)
}

// CircleDiameter adds a standalone circle of diameter d as the outer loop.
func (b *Builder) CircleDiameter(at werkbank.Pair, d float64) *Builder {
	return b.circleLoop(at, d/2, Outer)
}

// CircleHole adds a circular hole of radius r around at.
func (b *Builder) CircleHole(at werkbank.Pair, r float64) *Builder {
	return b.circleLoop(at, r, Hole)
}

func (b *Builder) circleLoop(at werkbank.Pair, r float64, role Role) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.standalone(role); err != nil {
		return b.fail(err)
	}
	if !at.IsFinite() || !werkbank.IsFinite(r) {
		return b.fail(fmt.Errorf("%w: non-finite circle", werkbank.ErrDegenerateGeometry))
	}
	if r <= 0 {
		return b.fail(fmt.Errorf("%w: circle radius must be > 0, is %g", werkbank.ErrDegenerateGeometry, r))
	}
	p0 := at.Shifted(werkbank.P(r, 0))
	b.adopt(Loop{Role: role, Segments: []Segment{
		{Kind: KindCircle, Start: p0, End: p0, Center: at, Radius: r},
	}})
	return b
}

// Rect adds an axis-aligned w×h rectangle centered at at as a standalone
// loop.
func (b *Builder) Rect(at werkbank.Pair, w, h float64) *Builder {
	return b.rectLoop(at, w, h, Outer)
}

// RectHole adds an axis-aligned rectangular hole centered at at.
func (b *Builder) RectHole(at werkbank.Pair, w, h float64) *Builder {
	return b.rectLoop(at, w, h, Hole)
}

func (b *Builder) rectLoop(at werkbank.Pair, w, h float64, role Role) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.standalone(role); err != nil {
		return b.fail(err)
	}
	if !at.IsFinite() || !werkbank.IsFinite(w) || !werkbank.IsFinite(h) {
		return b.fail(fmt.Errorf("%w: non-finite rectangle", werkbank.ErrDegenerateGeometry))
	}
	if w <= 0 || h <= 0 {
		return b.fail(fmt.Errorf("%w: rectangle sides must be > 0, are %g×%g", werkbank.ErrDegenerateGeometry, w, h))
	}
	x, y := at.F()
	corners := []werkbank.Pair{
		werkbank.P(x-w/2, y-h/2),
		werkbank.P(x+w/2, y-h/2),
		werkbank.P(x+w/2, y+h/2),
		werkbank.P(x-w/2, y+h/2),
	}
	b.adopt(polygonFrom(corners, role))
	return b
}

// Polygon adds a regular n-gon with the given side length, centered at
// at, first vertex on the positive x-axis.
func (b *Builder) Polygon(at werkbank.Pair, n int, side float64) *Builder {
	if n < 3 {
		return b.polygonLoop(at, n, 0, Outer)
	}
	return b.polygonLoop(at, n, side/(2*math.Sin(math.Pi/float64(n))), Outer)
}

// PolygonDiameter adds a regular n-gon with across-corners diameter d.
func (b *Builder) PolygonDiameter(at werkbank.Pair, n int, d float64) *Builder {
	return b.polygonLoop(at, n, d/2, Outer)
}

// PolygonHole adds a regular n-gon hole with the given side length.
func (b *Builder) PolygonHole(at werkbank.Pair, n int, side float64) *Builder {
	if n < 3 {
		return b.polygonLoop(at, n, 0, Hole)
	}
	return b.polygonLoop(at, n, side/(2*math.Sin(math.Pi/float64(n))), Hole)
}

func (b *Builder) polygonLoop(at werkbank.Pair, n int, r float64, role Role) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.standalone(role); err != nil {
		return b.fail(err)
	}
	if n < 3 {
		return b.fail(fmt.Errorf("%w: polygon needs at least 3 vertices, has %d", werkbank.ErrDegenerateGeometry, n))
	}
	if !at.IsFinite() || !werkbank.IsFinite(r) || r <= 0 {
		return b.fail(fmt.Errorf("%w: polygon radius must be finite and > 0", werkbank.ErrDegenerateGeometry))
	}
	verts := make([]werkbank.Pair, n)
	for i := range verts {
		verts[i] = at.Shifted(werkbank.P(r, 0).Rotated(2 * math.Pi * float64(i) / float64(n)))
	}
	b.adopt(polygonFrom(verts, role))
	return b
}

func polygonFrom(verts []werkbank.Pair, role Role) Loop {
	segs := make([]Segment, len(verts))
	for i := range verts {
		segs[i] = Segment{Kind: KindLine, Start: verts[i], End: verts[(i+1)%len(verts)]}
	}
	return Loop{Role: role, Segments: segs}
}

// Build returns the finished profile, or the first error any command
// produced. The outer loop must exist and all loops must be closed.
func (b *Builder) Build() (*Profile, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.open {
		return nil, fmt.Errorf("%w: loop still open (close first)", ErrState)
	}
	if !b.hasOuter {
		return nil, fmt.Errorf("%w: profile has no outer loop", ErrState)
	}
	p := &Profile{Name: b.name, Frame: b.frame, Outer: b.outer, Holes: b.holes}
	tracer().Infof("built %v", p)
	return p, nil
}
