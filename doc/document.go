/*
Package doc keeps an in-memory design document: named datum planes and
named sketches, the two collaborator roles that plane construction and
the materialized geometry backend resolve by name.

A Document guards its own registries, so concurrent rebuilds of distinct
sketches may run in parallel. Rebuilding the SAME sketch from several
goroutines is the caller's job to serialize; Lock/Unlock bracket such a
rebuild section.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package doc

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/werkbank/plane"
	"github.com/npillmayer/werkbank/solid"
)

// tracer writes to trace with key 'werkbank.doc'
func tracer() tracing.Trace {
	return tracing.Select("werkbank.doc")
}

// Document is a registry of named datum planes and sketches. It
// implements plane.DatumResolver and solid.Document.
type Document struct {
	rebuild  sync.Mutex // serializes rebuild sections, see Lock
	mu       sync.Mutex // guards the registries
	datums   *treemap.Map
	sketches *treemap.Map
}

// New creates an empty document.
func New() *Document {
	return &Document{
		datums:   treemap.NewWithStringComparator(),
		sketches: treemap.NewWithStringComparator(),
	}
}

// AddDatum registers a named datum plane, replacing any previous one
// under the same name.
func (d *Document) AddDatum(name string, f plane.Frame) error {
	if name == "" {
		return fmt.Errorf("datum name must not be empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.datums.Put(name, f)
	tracer().Debugf("datum %q = %v", name, f)
	return nil
}

// ResolveDatum looks up a datum plane. It implements plane.DatumResolver.
func (d *Document) ResolveDatum(name string) (plane.Frame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.datums.Get(name)
	if !ok {
		return plane.Frame{}, false
	}
	return f.(plane.Frame), true
}

// UpsertSketch returns the sketch stored under name, cleared, creating it
// on first use. Rebuilding under the same name never grows the document.
func (d *Document) UpsertSketch(name string) (*solid.Sketch, error) {
	if name == "" {
		return nil, fmt.Errorf("sketch name must not be empty")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if sk, ok := d.sketches.Get(name); ok {
		s := sk.(*solid.Sketch)
		s.Clear()
		tracer().Debugf("sketch %q cleared for rebuild", name)
		return s, nil
	}
	s := solid.NewSketch(name)
	d.sketches.Put(name, s)
	tracer().Debugf("sketch %q created", name)
	return s, nil
}

// Sketch looks up a sketch without clearing it.
func (d *Document) Sketch(name string) (*solid.Sketch, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	sk, ok := d.sketches.Get(name)
	if !ok {
		return nil, false
	}
	return sk.(*solid.Sketch), true
}

// Len is the number of sketches in the document.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.sketches.Size()
}

// SketchNames lists the sketch names in sorted order.
func (d *Document) SketchNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return stringKeys(d.sketches)
}

// DatumNames lists the datum names in sorted order.
func (d *Document) DatumNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return stringKeys(d.datums)
}

func stringKeys(m *treemap.Map) []string {
	keys := m.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Lock enters the rebuild section. Callers that rebuild the same sketch
// name from several goroutines bracket each rebuild with Lock/Unlock.
func (d *Document) Lock() {
	d.rebuild.Lock()
}

// Unlock leaves the rebuild section.
func (d *Document) Unlock() {
	d.rebuild.Unlock()
}

// Debug Stringer for documents.
func (d *Document) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return fmt.Sprintf("doc[%d sketches, %d datums]", d.sketches.Size(), d.datums.Size())
}
