package solid

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/plane"
	"github.com/npillmayer/werkbank/profile"
	"github.com/stretchr/testify/assert"
)

// memDoc is a minimal in-memory Document for backend tests.
type memDoc struct {
	sketches map[string]*Sketch
}

func newMemDoc() *memDoc {
	return &memDoc{sketches: map[string]*Sketch{}}
}

func (d *memDoc) UpsertSketch(name string) (*Sketch, error) {
	if sk, ok := d.sketches[name]; ok {
		sk.Clear()
		return sk, nil
	}
	sk := NewSketch(name)
	d.sketches[name] = sk
	return sk, nil
}

func TestSketchBasics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	sk := NewSketch("base")
	assert.Equal(t, "base", sk.Name())
	assert.Equal(t, 0, sk.Len())
	sk.SetFrame(plane.XZ(werkbank.Triple{}))
	assert.True(t, sk.Frame().Normal.Equal(werkbank.V(0, 1, 0)))
	sk.Append(profile.Segment{Kind: profile.KindLine, Start: werkbank.P(0, 0), End: werkbank.P(1, 0)})
	assert.Equal(t, 1, sk.Len())
	sk.Clear()
	assert.Equal(t, 0, sk.Len())
	assert.Equal(t, "base", sk.Name(), "clear keeps identity")
}

func TestMaterializedRebuildKeepsCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newMemDoc()
	backend := NewMaterialized(doc)
	p := mustProfile(t, profile.New("base", plane.XY(werkbank.Triple{})).
		Rect(werkbank.P(25, 15), 50, 30))
	s1, err := backend.Pad(p, 10, Plus)
	if err != nil {
		t.Fatalf("pad failed: %v", err)
	}
	assert.Equal(t, 1, len(doc.sketches))
	assert.Equal(t, 4, doc.sketches["base"].Len())
	// rebuilding under the same name must not grow the document
	s2, err := backend.Pad(p, 10, Plus)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	assert.Equal(t, 1, len(doc.sketches))
	assert.Equal(t, 4, doc.sketches["base"].Len())
	assert.InDelta(t, s1.Volume, s2.Volume, 1e-9)
	assert.Equal(t, s1.Summary().ShapeHash, s2.Summary().ShapeHash)
}

func TestMaterializedMatchesDirect(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := mustProfile(t, profile.New("flange", plane.XY(werkbank.Triple{})).
		Rect(werkbank.P(20, 10), 40, 20).
		CircleHole(werkbank.P(20, 10), 5))
	want, err := Direct{}.Pad(p, 10, Plus)
	if err != nil {
		t.Fatalf("direct pad failed: %v", err)
	}
	got, err := NewMaterialized(newMemDoc()).Pad(p, 10, Plus)
	if err != nil {
		t.Fatalf("materialized pad failed: %v", err)
	}
	assert.InDelta(t, want.Volume, got.Volume, 1e-9)
	assert.Equal(t, want.Summary().ShapeHash, got.Summary().ShapeHash)
}

func TestMaterializedFallbackNames(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newMemDoc()
	backend := NewMaterialized(doc)
	p := mustProfile(t, profile.New("", plane.XY(werkbank.Triple{})).
		Circle(werkbank.P(0, 0), 2))
	path, err := profile.NewPath("", plane.XZ(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineToY(10).
		Build()
	if err != nil {
		t.Fatalf("building the path failed: %v", err)
	}
	if _, err := backend.Sweep(p, path, Auto); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	assert.NotNil(t, doc.sketches["Sketch"], "unnamed profiles land under Sketch")
	assert.NotNil(t, doc.sketches["Path"], "unnamed paths land under Path")
	assert.Equal(t, 1, doc.sketches["Path"].Len())
}

func TestMaterializedFlattensCubics(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newMemDoc()
	backend := NewMaterialized(doc)
	p := mustProfile(t, profile.New("blob", plane.XY(werkbank.Triple{})).
		MoveTo(werkbank.P(0, 0)).
		LineTo(werkbank.P(40, 0)).
		SplineTo(werkbank.P(40, 20), werkbank.P(0, 20)).
		Close())
	if _, err := backend.Pad(p, 5, Plus); err != nil {
		t.Fatalf("pad failed: %v", err)
	}
	sk := doc.sketches["blob"]
	if sk == nil {
		t.Fatal("profile was not materialized")
	}
	assert.Greater(t, sk.Len(), p.Outer.Len(), "cubics expand into line runs")
	for _, seg := range sk.Items() {
		assert.NotEqual(t, profile.KindCubic, seg.Kind)
	}
}

func TestMaterializedRevolve(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	doc := newMemDoc()
	backend := NewMaterialized(doc)
	p := mustProfile(t, profile.New("hub", plane.XY(werkbank.Triple{})).
		Rect(werkbank.P(7, 7.5), 10, 5))
	s, err := backend.Revolve(p, 360, AxisX)
	if err != nil {
		t.Fatalf("revolve failed: %v", err)
	}
	assert.Equal(t, "revolve", s.Op)
	assert.Equal(t, 1, len(doc.sketches))
}

func TestMaterializedWithoutDocument(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := mustProfile(t, profile.New("base", plane.XY(werkbank.Triple{})).
		Rect(werkbank.P(0, 0), 10, 10))
	_, err := NewMaterialized(nil).Pad(p, 5, Plus)
	assert.Error(t, err)
}
