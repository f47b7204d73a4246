package solid

import (
	"fmt"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/plane"
	"github.com/npillmayer/werkbank/profile"
)

// A Sketch is named, constraint-free drawing geometry held by a document:
// the materialized form of a profile or path. Segments are stored as
// drawn, except for cubics, which are flattened to line runs (sketch
// geometry knows lines, arcs and circles only).
type Sketch struct {
	name  string
	frame plane.Frame
	items []profile.Segment
}

// NewSketch creates an empty sketch on the standard drawing plane.
func NewSketch(name string) *Sketch {
	return &Sketch{name: name, frame: plane.XY(werkbank.V(0, 0, 0))}
}

// Name of the sketch, fixed at creation.
func (s *Sketch) Name() string {
	return s.name
}

// Frame is the plane the sketch geometry lives on.
func (s *Sketch) Frame() plane.Frame {
	return s.frame
}

// SetFrame re-plants the sketch on a plane.
func (s *Sketch) SetFrame(f plane.Frame) {
	s.frame = f
}

// Clear drops all geometry but keeps name and frame.
func (s *Sketch) Clear() {
	s.items = s.items[:0]
}

// Append adds segments to the sketch.
func (s *Sketch) Append(segs ...profile.Segment) {
	s.items = append(s.items, segs...)
}

// Len is the number of stored segments.
func (s *Sketch) Len() int {
	return len(s.items)
}

// Items returns the stored segments. The slice is shared, not copied.
func (s *Sketch) Items() []profile.Segment {
	return s.items
}

func (s *Sketch) String() string {
	return fmt.Sprintf("Sketch[%s|%d]", s.name, len(s.items))
}

// Document is the document/session collaborator a materialized backend
// records geometry in. UpsertSketch returns a cleared sketch under name,
// creating it on first use: rebuilding under the same name never grows
// the document.
type Document interface {
	UpsertSketch(name string) (*Sketch, error)
}

// Materialized is a backend that records every profile (and sweep path)
// as a named Sketch in a document before delegating solid construction
// to the Direct evaluator. Unnamed profiles land under "Sketch", unnamed
// paths under "Path".
type Materialized struct {
	doc  Document
	core Direct
}

// NewMaterialized wraps a document.
func NewMaterialized(doc Document) *Materialized {
	return &Materialized{doc: doc}
}

// Pad materializes the profile, then pads it.
func (m *Materialized) Pad(p *profile.Profile, dist float64, dir Dir) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if err := m.materialize(p.Name, "Sketch", p.Frame, profileSegments(p)); err != nil {
		return nil, err
	}
	return m.core.Pad(p, dist, dir)
}

// Revolve materializes the profile, then revolves it.
func (m *Materialized) Revolve(p *profile.Profile, angleDeg float64, axis Axis) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if err := m.materialize(p.Name, "Sketch", p.Frame, profileSegments(p)); err != nil {
		return nil, err
	}
	return m.core.Revolve(p, angleDeg, axis)
}

// Sweep materializes both the profile and the path, then sweeps.
func (m *Materialized) Sweep(p *profile.Profile, path *profile.Path, mode Orientation) (*Solid, error) {
	if err := checkProfile(p); err != nil {
		return nil, err
	}
	if path == nil || len(path.Segments) == 0 {
		return nil, fmt.Errorf("%w: sweep path is empty", werkbank.ErrDegenerateGeometry)
	}
	if err := m.materialize(p.Name, "Sketch", p.Frame, profileSegments(p)); err != nil {
		return nil, err
	}
	if err := m.materialize(path.Name, "Path", path.Frame, path.Segments); err != nil {
		return nil, err
	}
	return m.core.Sweep(p, path, mode)
}

func (m *Materialized) materialize(name, fallback string, frame plane.Frame, segs []profile.Segment) error {
	if m.doc == nil {
		return fmt.Errorf("materialized backend has no document")
	}
	if name == "" {
		name = fallback
	}
	sk, err := m.doc.UpsertSketch(name)
	if err != nil {
		return err
	}
	sk.SetFrame(frame)
	n := 0
	for _, seg := range segs {
		if seg.Kind == profile.KindCubic {
			pts := seg.Flatten(FlattenTol)
			for i := 1; i < len(pts); i++ {
				sk.Append(profile.Segment{Kind: profile.KindLine, Start: pts[i-1], End: pts[i]})
				n++
			}
			continue
		}
		sk.Append(seg)
		n++
	}
	tracer().Debugf("materialized %q with %d segments", name, n)
	return nil
}

func profileSegments(p *profile.Profile) []profile.Segment {
	var segs []profile.Segment
	for _, loop := range p.Loops() {
		segs = append(segs, loop.Segments...)
	}
	return segs
}
