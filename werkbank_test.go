package werkbank

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) {
		t.Errorf("Expected NaN and Inf to be non-finite")
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.IsOrigin() {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
}

func TestTranslation(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if !P(1, 1).Shifted(P(-1, -1)).IsOrigin() {
		t.Errorf("Expected (1,1) shifted (-1,-1) to be origin, is not")
	}
	if !P(1, 0).Rotated(180 * Deg2Rad).Shifted(P(1, 0)).IsOrigin() {
		t.Errorf("Expected result to be origin, is not")
	}
}

func TestPairPolar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 4)
	if !Is0(p.Abs() - 5) {
		t.Errorf("Expected |(3,4)| = 5, is %g", p.Abs())
	}
	if !Is0(p.Dist(P(3, 0)) - 4) {
		t.Errorf("Expected dist to (3,0) = 4, is %g", p.Dist(P(3, 0)))
	}
	if !P(0, 2).Unit().Equal(P(0, 1)) {
		t.Errorf("Expected unit of (0,2) to be (0,1), is %v", P(0, 2).Unit())
	}
	if !P(1, 0).Perp().Equal(P(0, 1)) {
		t.Errorf("Expected perp of (1,0) to be (0,1), is %v", P(1, 0).Perp())
	}
	if !Is0(P(0, 1).Angle() - math.Pi/2) {
		t.Errorf("Expected angle of (0,1) to be π/2, is %g", P(0, 1).Angle())
	}
}
