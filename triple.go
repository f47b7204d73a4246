package werkbank

import (
	"fmt"
	"math"
)

// === Triple Data Type ======================================================

// Triple is a point or vector in 3D space.
type Triple struct {
	X float64
	Y float64
	Z float64
}

// V is a quick notation for constructing a triple from floats.
func V(x, y, z float64) Triple {
	return Triple{X: x, Y: y, Z: z}
}

// Pretty Stringer for triples.
func (v Triple) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// F is a quick notation for getting float values from a triple.
func (v Triple) F() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

// Zap rounds all parts of v to Epsilon.
func (v Triple) Zap() Triple {
	return V(Zap(v.X), Zap(v.Y), Zap(v.Z))
}

// IsZero is a predicate: is this triple the zero vector?
func (v Triple) IsZero() bool {
	return Is0(v.X) && Is0(v.Y) && Is0(v.Z)
}

// IsFinite is a predicate: are all parts of this triple usable numbers?
func (v Triple) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Equal compares two triples.
func (v Triple) Equal(w Triple) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// Abs is the length of a triple.
func (v Triple) Abs() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Dist is the Euclidean distance between two triples.
func (v Triple) Dist(w Triple) float64 {
	return v.Minus(w).Abs()
}

// Scaled returns a new triple scaled by factor a.
func (v Triple) Scaled(a float64) Triple {
	return V(v.X*a, v.Y*a, v.Z*a)
}

// Shifted returns a new triple translated by w.
func (v Triple) Shifted(w Triple) Triple {
	return V(v.X+w.X, v.Y+w.Y, v.Z+w.Z)
}

// Minus returns the difference v - w.
func (v Triple) Minus(w Triple) Triple {
	return V(v.X-w.X, v.Y-w.Y, v.Z-w.Z)
}

// Dot is the dot product of two triples.
func (v Triple) Dot(w Triple) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross is the cross product of two triples.
func (v Triple) Cross(w Triple) Triple {
	return V(
		v.Y*w.Z-v.Z*w.Y,
		v.Z*w.X-v.X*w.Z,
		v.X*w.Y-v.Y*w.X,
	)
}

// Unit returns a triple of length 1 pointing in the direction of v.
// The zero vector has no direction and is returned unchanged.
func (v Triple) Unit() Triple {
	a := v.Abs()
	if Is0(a) {
		return v
	}
	return v.Scaled(1 / a)
}

// Min returns the componentwise minimum of two triples.
func (v Triple) Min(w Triple) Triple {
	return V(math.Min(v.X, w.X), math.Min(v.Y, w.Y), math.Min(v.Z, w.Z))
}

// Max returns the componentwise maximum of two triples.
func (v Triple) Max(w Triple) Triple {
	return V(math.Max(v.X, w.X), math.Max(v.Y, w.Y), math.Max(v.Z, w.Z))
}

// Rotatedaround returns a new triple rotated around axis by theta
// (counterclockwise when looking against the axis direction). Uses the
// Rodrigues rotation formula. A zero axis leaves v unchanged.
func (v Triple) Rotatedaround(axis Triple, theta float64) Triple {
	k := axis.Unit()
	if k.IsZero() {
		tracer().Errorf("rotation around zero axis")
		return v
	}
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	r := v.Scaled(cos)
	r = r.Shifted(k.Cross(v).Scaled(sin))
	r = r.Shifted(k.Scaled(k.Dot(v) * (1 - cos)))
	return r.Zap()
}
