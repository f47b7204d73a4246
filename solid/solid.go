package solid

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/npillmayer/werkbank"
)

// FaceKind classifies the analytic faces of a solid.
type FaceKind uint8

const (
	FacePlanar FaceKind = iota + 1
	FaceCylindrical
	FaceSwept
)

func (k FaceKind) String() string {
	switch k {
	case FacePlanar:
		return "planar"
	case FaceCylindrical:
		return "cylindrical"
	case FaceSwept:
		return "swept"
	}
	return fmt.Sprintf("facekind(%d)", uint8(k))
}

// Face is one boundary face with its surface area.
type Face struct {
	Kind FaceKind
	Area float64
}

// EdgeKind classifies boundary edges the way the summary reports them.
type EdgeKind uint8

const (
	EdgeLine EdgeKind = iota + 1
	EdgeCircle
	EdgeOther
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeLine:
		return "line"
	case EdgeCircle:
		return "circle"
	case EdgeOther:
		return "other"
	}
	return fmt.Sprintf("edgekind(%d)", uint8(k))
}

// Edge is one boundary edge with its length.
type Edge struct {
	Kind   EdgeKind
	Length float64
}

// Solid is the measured result of a pad, revolve or sweep: an analytic
// property record, not a boundary representation.
type Solid struct {
	Op           string // "pad", "revolve" or "sweep"
	Volume       float64
	Faces        []Face
	Edges        []Edge
	Vertices     int
	Min, Max     werkbank.Triple // world-space bounding box
	CenterOfMass werkbank.Triple
}

// Area is the total surface area.
func (s *Solid) Area() float64 {
	var a float64
	for _, f := range s.Faces {
		a += f.Area
	}
	return a
}

// Extent measures the bounding box along a world direction.
func (s *Solid) Extent(dir werkbank.Triple) float64 {
	u := dir.Unit()
	if u.IsZero() {
		return 0
	}
	// project the eight corners
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range s.corners() {
		d := c.Dot(u)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return hi - lo
}

func (s *Solid) corners() [8]werkbank.Triple {
	return [8]werkbank.Triple{
		werkbank.V(s.Min.X, s.Min.Y, s.Min.Z),
		werkbank.V(s.Max.X, s.Min.Y, s.Min.Z),
		werkbank.V(s.Min.X, s.Max.Y, s.Min.Z),
		werkbank.V(s.Max.X, s.Max.Y, s.Min.Z),
		werkbank.V(s.Min.X, s.Min.Y, s.Max.Z),
		werkbank.V(s.Max.X, s.Min.Y, s.Max.Z),
		werkbank.V(s.Min.X, s.Max.Y, s.Max.Z),
		werkbank.V(s.Max.X, s.Max.Y, s.Max.Z),
	}
}

// Translated returns a copy of the solid displaced by d.
func (s *Solid) Translated(d werkbank.Triple) *Solid {
	t := *s
	t.Min = s.Min.Shifted(d)
	t.Max = s.Max.Shifted(d)
	t.CenterOfMass = s.CenterOfMass.Shifted(d)
	return &t
}

// Rotatedaround returns a copy of the solid rigidly rotated by theta
// around a world axis through the world origin. The bounding box becomes
// the box of the rotated corners, which may overestimate.
func (s *Solid) Rotatedaround(axis werkbank.Triple, theta float64) *Solid {
	t := *s
	t.CenterOfMass = s.CenterOfMass.Rotatedaround(axis, theta)
	first := true
	for _, c := range s.corners() {
		r := c.Rotatedaround(axis, theta)
		if first {
			t.Min, t.Max = r, r
			first = false
		} else {
			t.Min = t.Min.Min(r)
			t.Max = t.Max.Max(r)
		}
	}
	return &t
}

// Debug Stringer for solids.
func (s *Solid) String() string {
	return fmt.Sprintf("%s[V=%g A=%g faces=%d]", s.Op, s.Volume, s.Area(), len(s.Faces))
}

// Summary is a compact, deterministic description of a solid, meant for
// golden tests and change detection.
type Summary struct {
	ShapeHash    uint64         `json:"shape_hash"`
	BBox         [6]float64     `json:"bbox"`
	Volume       float64        `json:"volume"`
	Area         float64        `json:"area"`
	CenterOfMass [3]float64     `json:"center_of_mass"`
	Counts       SummaryCounts  `json:"counts"`
	EdgeMetrics  SummaryMetrics `json:"edge_metrics"`
	Version      int            `json:"version"`
}

type SummaryCounts struct {
	Faces     int              `json:"faces"`
	Edges     int              `json:"edges"`
	Vertices  int              `json:"vertices"`
	EdgeKinds SummaryEdgeKinds `json:"edge_kinds"`
}

type SummaryEdgeKinds struct {
	Circle int `json:"circle"`
	Line   int `json:"line"`
	Other  int `json:"other"`
}

type SummaryMetrics struct {
	CircleLengths []float64 `json:"circle_lengths"`
}

// Summary computes the property record of the solid.
func (s *Solid) Summary() Summary {
	sum := Summary{
		BBox:         [6]float64{s.Min.X, s.Min.Y, s.Min.Z, s.Max.X, s.Max.Y, s.Max.Z},
		Volume:       s.Volume,
		Area:         s.Area(),
		CenterOfMass: [3]float64{s.CenterOfMass.X, s.CenterOfMass.Y, s.CenterOfMass.Z},
		Version:      1,
	}
	sum.Counts.Faces = len(s.Faces)
	sum.Counts.Edges = len(s.Edges)
	sum.Counts.Vertices = s.Vertices
	sum.EdgeMetrics.CircleLengths = []float64{}
	for _, e := range s.Edges {
		switch e.Kind {
		case EdgeCircle:
			sum.Counts.EdgeKinds.Circle++
			sum.EdgeMetrics.CircleLengths = append(sum.EdgeMetrics.CircleLengths, e.Length)
		case EdgeLine:
			sum.Counts.EdgeKinds.Line++
		default:
			sum.Counts.EdgeKinds.Other++
		}
	}
	sum.ShapeHash = sum.hash()
	return sum
}

// JSON renders the summary deterministically.
func (s Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// hash folds the quantized summary values so that geometrically equal
// solids hash equal despite last-digit noise.
func (s Summary) hash() uint64 {
	h := fnv.New64a()
	put := func(v float64) {
		q := int64(math.Round(v / 1e-6))
		var b [8]byte
		for i := 0; i < 8; i++ {
			b[i] = byte(q >> (8 * i))
		}
		h.Write(b[:])
	}
	for _, v := range s.BBox {
		put(v)
	}
	put(s.Volume)
	put(s.Area)
	for _, v := range s.CenterOfMass {
		put(v)
	}
	put(float64(s.Counts.Faces))
	put(float64(s.Counts.Edges))
	put(float64(s.Counts.Vertices))
	for _, v := range s.EdgeMetrics.CircleLengths {
		put(v)
	}
	return h.Sum64()
}
