package solid

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/plane"
	"github.com/npillmayer/werkbank/profile"
	"github.com/stretchr/testify/assert"
)

func mustPath(t *testing.T, b *profile.PathBuilder) *profile.Path {
	t.Helper()
	path, err := b.Build()
	if err != nil {
		t.Fatalf("path construction failed: %v", err)
	}
	return path
}

func assertOrthonormal(t *testing.T, f plane.Frame) {
	t.Helper()
	assert.InDelta(t, 1.0, f.XAxis.Abs(), 1e-9)
	assert.InDelta(t, 1.0, f.YAxis.Abs(), 1e-9)
	assert.InDelta(t, 1.0, f.Normal.Abs(), 1e-9)
	assert.InDelta(t, 0.0, f.XAxis.Dot(f.YAxis), 1e-9)
	assert.InDelta(t, 0.0, f.XAxis.Dot(f.Normal), 1e-9)
	assert.InDelta(t, 0.0, f.YAxis.Dot(f.Normal), 1e-9)
}

func TestFramesAuto(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := mustPath(t, profile.NewPath("run", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineToX(10))
	frames, err := Frames(plane.XY(werkbank.Triple{}), path, Auto, FlattenTol)
	if err != nil {
		t.Fatalf("frames failed: %v", err)
	}
	assert.Equal(t, 2, len(frames))
	assertTriple(t, werkbank.V(0, 0, 0), frames[0].Origin, 1e-9)
	assertTriple(t, werkbank.V(10, 0, 0), frames[1].Origin, 1e-9)
	// normal turned from +Z onto the +X tangent, no in-plane spin
	assertTriple(t, werkbank.V(1, 0, 0), frames[0].Normal, 1e-9)
	assertTriple(t, werkbank.V(0, 1, 0), frames[0].YAxis, 1e-9)
	for _, f := range frames {
		assertOrthonormal(t, f)
	}
}

func TestFramesFixed(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := mustPath(t, profile.NewPath("run", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineToX(10))
	frames, err := Frames(plane.XY(werkbank.Triple{}), path, Fixed, FlattenTol)
	if err != nil {
		t.Fatalf("frames failed: %v", err)
	}
	for _, f := range frames {
		assertTriple(t, werkbank.V(0, 0, 1), f.Normal, 1e-9)
	}
	assertTriple(t, werkbank.V(10, 0, 0), frames[1].Origin, 1e-9)
}

func TestFramesFrenetTransport(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := mustPath(t, profile.NewPath("elbow", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineToX(10).
		LineToY(10))
	frames, err := Frames(plane.XY(werkbank.Triple{}), path, Frenet, FlattenTol)
	if err != nil {
		t.Fatalf("frames failed: %v", err)
	}
	assert.Equal(t, 3, len(frames))
	assertTriple(t, werkbank.V(1, 0, 0), frames[0].Normal, 1e-9)
	assertTriple(t, werkbank.V(0, 1, 0), frames[1].Normal, 1e-9) // turned over the corner
	assertTriple(t, werkbank.V(0, 1, 0), frames[2].Normal, 1e-9)
	for _, f := range frames {
		assertOrthonormal(t, f)
	}
}

func TestFramesAntiparallelStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	// path straight down the -Z axis, exactly against the profile normal
	path := mustPath(t, profile.NewPath("drop", plane.XZ(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineToY(-10))
	frames, err := Frames(plane.XY(werkbank.Triple{}), path, Auto, FlattenTol)
	if err != nil {
		t.Fatalf("frames failed: %v", err)
	}
	assertTriple(t, werkbank.V(0, 0, -1), frames[0].Normal, 1e-9)
	assertOrthonormal(t, frames[0])
}
