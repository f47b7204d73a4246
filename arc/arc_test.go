package arc

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/werkbank"
	"github.com/stretchr/testify/assert"
)

func TestResolveCenterEnd(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	spec := NewSpec().Radius(5).CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(-5, 0)).Dir(CCW)
	r, err := Resolve(werkbank.P(5, 0), spec)
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	if !r.Center.IsOrigin() {
		t.Errorf("Expected center (0,0), is %v", r.Center)
	}
	assert.InDelta(t, 5.0, r.Radius, 1e-9)
	assert.InDelta(t, math.Pi, r.Sweep, 1e-9)
	if !r.End.Equal(werkbank.P(-5, 0)) {
		t.Errorf("Expected end (-5,0), is %v", r.End)
	}
}

func TestResolveCenterEndMinorDefault(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r, err := Resolve(werkbank.P(1, 0), NewSpec().CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(0, 1)))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, math.Pi/2, r.Sweep, 1e-9)
	assert.InDelta(t, 1.0, r.Radius, 1e-9)

	// the short way to (0,-1) is clockwise
	r, err = Resolve(werkbank.P(1, 0), NewSpec().CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(0, -1)))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, -math.Pi/2, r.Sweep, 1e-9)
}

func TestResolveCenterEndExplicitDir(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// clockwise to (0,1) is the major arc
	spec := NewSpec().CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(0, 1)).Dir(CW)
	r, err := Resolve(werkbank.P(1, 0), spec)
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, -3*math.Pi/2, r.Sweep, 1e-9)
}

func TestResolveCenterSweep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r, err := Resolve(werkbank.P(1, 0), NewSpec().CenterBy(werkbank.P(-1, 0)).Sweep(90))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	if !r.Center.IsOrigin() {
		t.Errorf("Expected relative center at origin, is %v", r.Center)
	}
	if !r.End.Equal(werkbank.P(0, 1)) {
		t.Errorf("Expected end (0,1), is %v", r.End)
	}

	// a positive sweep with an explicit cw direction turns the other way
	r, err = Resolve(werkbank.P(1, 0), NewSpec().CenterAt(werkbank.P(0, 0)).Sweep(90).Dir(CW))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, -math.Pi/2, r.Sweep, 1e-6)
	if !r.End.Equal(werkbank.P(0, -1)) {
		t.Errorf("Expected end (0,-1), is %v", r.End)
	}
}

func TestResolveMembership(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// start slightly off the circle, but within tolerance
	_, err := Resolve(werkbank.P(5.0004, 0), NewSpec().Radius(5).CenterAt(werkbank.P(0, 0)).Sweep(90))
	if err != nil {
		t.Errorf("Expected in-tolerance start to resolve, got %v", err)
	}
	// start clearly off the circle
	_, err = Resolve(werkbank.P(5.1, 0), NewSpec().Radius(5).CenterAt(werkbank.P(0, 0)).Sweep(90))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for start off circle, got %v", err)
	}
	// end clearly off the circle
	spec := NewSpec().Radius(5).CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(4.8, 0.5))
	_, err = Resolve(werkbank.P(5, 0), spec)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for end off circle, got %v", err)
	}
}

func TestResolveChordCandidates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, e := werkbank.P(0, 0), werkbank.P(10, 0)
	radius := math.Sqrt(50)
	ccw, err := Resolve(s, NewSpec().Radius(radius).EndAt(e).Dir(CCW))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	cw, err := Resolve(s, NewSpec().Radius(radius).EndAt(e).Dir(CW))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	// both directions draw the minor arc, on mirrored centers
	assert.InDelta(t, math.Pi/2, ccw.Sweep, 1e-9)
	assert.InDelta(t, -math.Pi/2, cw.Sweep, 1e-9)
	assert.InDelta(t, 5.0, ccw.Center.X(), 1e-9)
	assert.InDelta(t, 5.0, ccw.Center.Y(), 1e-9)
	assert.InDelta(t, 5.0, cw.Center.X(), 1e-9)
	assert.InDelta(t, -5.0, cw.Center.Y(), 1e-9)
	if !ccw.End.Equal(e) || !cw.End.Equal(e) {
		t.Errorf("Expected both arcs to end at %v", e)
	}
}

func TestResolveChordMajor(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s, e := werkbank.P(0, 0), werkbank.P(10, 0)
	radius := math.Sqrt(50)
	// |sweep| > 180° asks for the major arc: the center flips sides and
	// the resolved sweep comes from the chosen geometry
	r, err := Resolve(s, NewSpec().Radius(radius).EndAt(e).Sweep(270))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, 3*math.Pi/2, r.Sweep, 1e-9)
	assert.InDelta(t, -5.0, r.Center.Y(), 1e-9)

	r, err = Resolve(s, NewSpec().Radius(radius).EndAt(e).Sweep(-270))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	assert.InDelta(t, -3*math.Pi/2, r.Sweep, 1e-9)
	assert.InDelta(t, 5.0, r.Center.Y(), 1e-9)
}

func TestResolveChordRadiusTooSmall(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	_, err := Resolve(werkbank.P(0, 0), NewSpec().Radius(4).EndAt(werkbank.P(10, 0)))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation for radius below half chord, got %v", err)
	}
	// radius exactly half the chord is the semicircle limit
	r, err := Resolve(werkbank.P(0, 0), NewSpec().Radius(5).EndAt(werkbank.P(10, 0)))
	if err != nil {
		t.Fatalf("Expected semicircle, got error %v", err)
	}
	assert.InDelta(t, math.Pi, r.Sweep, 1e-6)
	assert.InDelta(t, 5.0, r.Center.X(), 1e-6)
}

func TestResolveTangentContinuation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// travelling +y, then bending 45° clockwise with radius 2
	spec := NewSpec().Radius(2).Sweep(45).Dir(CW).TangentDir(werkbank.P(0, 1))
	r, err := Resolve(werkbank.P(0, 10), spec)
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	if !r.Center.Equal(werkbank.P(2, 10)) {
		t.Errorf("Expected center right of travel at (2,10), is %v", r.Center)
	}
	assert.InDelta(t, -math.Pi/4, r.Sweep, 1e-6)
	assert.InDelta(t, 2-math.Sqrt(2), r.End.X(), 1e-6)
	assert.InDelta(t, 10+math.Sqrt(2), r.End.Y(), 1e-6)
	tan := r.EndTangent()
	assert.InDelta(t, math.Sqrt2/2, tan.X(), 1e-6)
	assert.InDelta(t, math.Sqrt2/2, tan.Y(), 1e-6)
}

func TestResolveTangentCounterclockwise(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// travelling +x, bending 90° counterclockwise: a quarter turn up
	spec := NewSpec().Radius(1).Sweep(90).TangentDir(werkbank.P(1, 0))
	r, err := Resolve(werkbank.P(0, 0), spec)
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	if !r.Center.Equal(werkbank.P(0, 1)) {
		t.Errorf("Expected center left of travel at (0,1), is %v", r.Center)
	}
	if !r.End.Equal(werkbank.P(1, 1)) {
		t.Errorf("Expected end (1,1), is %v", r.End)
	}
}

func TestResolveRejects(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	start := werkbank.P(1, 0)
	underconstrained := []Spec{
		NewSpec(),
		NewSpec().Radius(5),
		NewSpec().Sweep(90),
		NewSpec().Dir(CW),
		NewSpec().Radius(5).Sweep(90),                      // no end, no tangent
		NewSpec().Radius(5).CenterAt(werkbank.P(0, 0)),     // no extent
		NewSpec().Radius(5).Tangent(),                      // tangent without sweep
		NewSpec().EndAt(werkbank.P(3, 0)),                  // no radius
		NewSpec().Sweep(45).TangentDir(werkbank.P(1, 0)),   // no radius
		NewSpec().Radius(-2).EndAt(werkbank.P(3, 0)),       // negative radius
		NewSpec().Radius(5).EndAt(werkbank.P(3, 0)).Dir(7), // bogus direction
	}
	for i, spec := range underconstrained {
		_, err := Resolve(start, spec)
		if !errors.Is(err, ErrValidation) {
			t.Errorf("case %d (%v): expected ErrValidation, got %v", i, spec, err)
		}
	}
}

func TestResolveDegenerate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	start := werkbank.P(1, 0)
	degenerate := []Spec{
		NewSpec().CenterAt(werkbank.P(0, 0)).Sweep(360),              // full circle
		NewSpec().CenterAt(werkbank.P(0, 0)).Sweep(1e-5),             // collapses
		NewSpec().CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(1, 0)), // start == end
		NewSpec().Radius(5).EndAt(werkbank.P(math.NaN(), 0)),         // non-finite
	}
	for i, spec := range degenerate {
		_, err := Resolve(start, spec)
		if !errors.Is(err, werkbank.ErrDegenerateGeometry) {
			t.Errorf("case %d (%v): expected ErrDegenerateGeometry, got %v", i, spec, err)
		}
	}
}

func TestResolvedSampling(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	r, err := Resolve(werkbank.P(1, 0), NewSpec().CenterAt(werkbank.P(0, 0)).EndAt(werkbank.P(0, 1)))
	if err != nil {
		t.Fatalf("Expected resolved arc, got error %v", err)
	}
	mid := r.Mid()
	assert.InDelta(t, math.Sqrt2/2, mid.X(), 1e-9)
	assert.InDelta(t, math.Sqrt2/2, mid.Y(), 1e-9)
	if !r.At(0).Equal(r.Start) || !r.At(1).Equal(r.End) {
		t.Errorf("Expected arc sampling to hit the endpoints")
	}
	tan := r.EndTangent()
	if !tan.Equal(werkbank.P(-1, 0)) {
		t.Errorf("Expected end tangent (-1,0), is %v", tan)
	}
	assert.InDelta(t, math.Pi/2, r.EndAngle(), 1e-9)
}
