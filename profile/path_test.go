package profile

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/arc"
	"github.com/npillmayer/werkbank/plane"
	"github.com/stretchr/testify/assert"
)

func TestPathContinuous(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := NewPath("rail", plane.XZ(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineTo(werkbank.P(50, 0)).
		Arc(arc.NewSpec().Radius(20).Sweep(90).Tangent()).
		Build()
	if err != nil {
		t.Fatalf("building a rail path failed: %v", err)
	}
	assert.True(t, p.Continuous())
	assert.Equal(t, 2, len(p.Segments))
	// departs along the drawing x-axis, which the front plane maps to world x
	assert.True(t, p.StartTangent().Equal(werkbank.Triple{X: 1}))
	assert.InDelta(t, 50+20*math.Pi/2, p.Length(1e-4), 1e-6)
	t.Logf("path = %v", p)
}

func TestPathGaps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := NewPath("slot", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineTo(werkbank.P(40, 0)).
		MoveTo(werkbank.P(60, 10)).
		LineTo(werkbank.P(80, 10)).
		Build()
	if err != nil {
		t.Fatalf("building a gapped path failed: %v", err)
	}
	assert.False(t, p.Continuous())
	gaps := p.Gaps()
	if assert.Equal(t, 1, len(gaps)) {
		assert.Equal(t, 1, gaps[0].Index)
		assert.InDelta(t, math.Hypot(20, 10), gaps[0].Width(), 1e-9)
	}
	assert.Contains(t, p.String(), "&")
	// drawn length ignores the jump
	assert.InDelta(t, 60.0, p.Length(1e-4), 1e-9)
}

func TestPathMoveMerge(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := NewPath("t", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineTo(werkbank.P(10, 0)).
		MoveTo(werkbank.P(20, 0)).
		MoveTo(werkbank.P(10, 0)). // pen returns, the gap vanishes
		LineTo(werkbank.P(10, 5)).
		Build()
	if err != nil {
		t.Fatalf("building after merged moves failed: %v", err)
	}
	assert.True(t, p.Continuous())
	assert.Equal(t, 2, len(p.Segments))
}

func TestPathPolyline(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p, err := NewPath("bow", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineTo(werkbank.P(10, 0)).
		Arc(arc.NewSpec().Radius(5).Sweep(180).Tangent()).
		Build()
	if err != nil {
		t.Fatalf("building a bow path failed: %v", err)
	}
	pts := p.Polyline(0.01)
	assert.Greater(t, len(pts), 10)
	assert.True(t, pts[0].Equal(werkbank.P(0, 0)))
	last := pts[len(pts)-1]
	assert.InDelta(t, 10.0, last.X(), 1e-6)
	assert.InDelta(t, 10.0, last.Y(), 1e-6)
}

func TestPathErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	frame := plane.XY(werkbank.Triple{})
	if _, err := NewPath("t", frame).LineTo(werkbank.P(1, 1)).Build(); !errors.Is(err, ErrState) {
		t.Errorf("draw before move: expected a state error, got %v", err)
	}
	if _, err := NewPath("t", frame).Build(); !errors.Is(err, ErrState) {
		t.Errorf("empty build: expected a state error, got %v", err)
	}
	if _, err := NewPath("t", frame).MoveTo(werkbank.Origin).Build(); !errors.Is(err, ErrState) {
		t.Errorf("move-only build: expected a state error, got %v", err)
	}
	if _, err := NewPath("t", frame).MoveTo(werkbank.Origin).LineTo(werkbank.Origin).Build(); !errors.Is(err, werkbank.ErrDegenerateGeometry) {
		t.Errorf("zero line: expected degenerate geometry, got %v", err)
	}
}
