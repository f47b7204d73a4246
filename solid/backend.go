package solid

import (
	"fmt"

	"github.com/npillmayer/werkbank"
	"github.com/npillmayer/werkbank/profile"
)

// Dir selects the extrusion side of a pad: along the plane normal or
// against it.
type Dir int8

const (
	Plus Dir = iota
	Minus
)

func (d Dir) String() string {
	if d == Minus {
		return "-"
	}
	return "+"
}

func (d Dir) sign() float64 {
	if d == Minus {
		return -1
	}
	return 1
}

// Axis names a world coordinate axis through the world origin, used as
// the rotation axis of a revolve.
type Axis int8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "x"
}

func (a Axis) dir() werkbank.Triple {
	switch a {
	case AxisY:
		return werkbank.V(0, 1, 0)
	case AxisZ:
		return werkbank.V(0, 0, 1)
	}
	return werkbank.V(1, 0, 0)
}

// Orientation selects how a sweep places the profile along the path.
type Orientation int8

const (
	// Auto rotates the profile so its plane normal aligns with the path
	// start tangent, in-plane spin 0. The orientation stays constant
	// along the path.
	Auto Orientation = iota
	// Fixed keeps the profile orientation as the caller built it.
	Fixed
	// Frenet re-orients continuously along the path by transporting the
	// frame from tangent to tangent. Kinks are warned about, not fixed.
	Frenet
)

func (o Orientation) String() string {
	switch o {
	case Fixed:
		return "fixed"
	case Frenet:
		return "frenet"
	}
	return "auto"
}

// Backend builds solids from profiles. Direct evaluates transiently;
// Materialized persists named sketches in a Document first and then
// delegates. Implementations are safe for concurrent use as long as no
// two goroutines target the same persisted sketch name.
type Backend interface {
	Pad(p *profile.Profile, dist float64, dir Dir) (*Solid, error)
	Revolve(p *profile.Profile, angleDeg float64, axis Axis) (*Solid, error)
	Sweep(p *profile.Profile, path *profile.Path, mode Orientation) (*Solid, error)
}

// checkProfile validates the parts all constructions rely on.
func checkProfile(p *profile.Profile) error {
	if p == nil || p.Outer.Len() == 0 {
		return fmt.Errorf("%w: profile has no outer loop", werkbank.ErrDegenerateGeometry)
	}
	return nil
}
