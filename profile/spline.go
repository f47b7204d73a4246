package profile

import (
	"fmt"
	"math"

	"github.com/npillmayer/werkbank"
)

// splineCtrl holds the two Bézier control points of one spline piece.
type splineCtrl struct {
	c1, c2 werkbank.Pair
}

// hobbyControls computes control points for a smooth open cubic run
// through the given knots, following John Hobby's mock-curvature scheme
// with unit tensions and curl 1 at both ends. When hasDir is set the run
// leaves the first knot along startDir instead of relaxing the start.
//
// Reference: John D. Hobby: Smooth, Easy to Compute Interpolating
// Splines. Discrete and Computational Geometry 1, 1986.
func hobbyControls(knots []werkbank.Pair, startDir werkbank.Pair, hasDir bool) ([]splineCtrl, error) {
	n := len(knots) - 1 // number of curve pieces
	if n < 1 {
		return nil, fmt.Errorf("%w: spline needs at least 2 knots, has %d",
			werkbank.ErrDegenerateGeometry, len(knots))
	}
	delta := make([]werkbank.Pair, n) // chord vectors between knots
	d := make([]float64, n)           // chord lengths
	for i := 0; i < n; i++ {
		if !knots[i].IsFinite() || !knots[i+1].IsFinite() {
			return nil, fmt.Errorf("%w: non-finite spline knot", werkbank.ErrDegenerateGeometry)
		}
		delta[i] = knots[i+1] - knots[i]
		d[i] = delta[i].Abs()
		if d[i] <= CloseTol {
			return nil, fmt.Errorf("%w: coincident spline knots at %v",
				werkbank.ErrDegenerateGeometry, knots[i])
		}
	}
	psi := make([]float64, n+1) // turning angles at interior knots
	for i := 1; i < n; i++ {
		psi[i] = reduceAngle(delta[i].Angle() - delta[i-1].Angle())
	}
	// Forward elimination of the tridiagonal mock-curvature system.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	theta := make([]float64, n+1)
	if hasDir {
		u[0] = 0
		v[0] = reduceAngle(startDir.Angle() - delta[0].Angle())
	} else { // curl 1 at the start
		u[0] = 1
		v[0] = -psi[1]
	}
	for i := 1; i < n; i++ {
		a := 1 / d[i-1]
		b := 2 / d[i-1]
		c := 2 / d[i]
		dd := 1 / d[i]
		t := b - u[i-1]*a + c
		u[i] = dd / t
		v[i] = (-b*psi[i] - dd*psi[i+1] - a*v[i-1]) / t
	}
	if n == 1 && !hasDir {
		// Two relaxed knots make a straight line, controls at the thirds.
		theta[0], theta[1] = 0, 0
	} else {
		theta[n] = v[n-1] / (u[n-1] - 1) // curl 1 at the end
		for i := n - 1; i >= 0; i-- {
			theta[i] = v[i] - u[i]*theta[i+1]
		}
	}
	ctrls := make([]splineCtrl, n)
	for i := 0; i < n; i++ {
		phi := -psi[i+1] - theta[i+1]
		ctrls[i] = controlsFromAngles(knots[i], knots[i+1], delta[i], theta[i], phi)
	}
	return ctrls, nil
}

// controlsFromAngles places the control points of one piece, given the
// departure angle theta and arrival angle phi relative to the chord.
func controlsFromAngles(from, to, delta werkbank.Pair, theta, phi float64) splineCtrl {
	constA := 1.41421356     // sqrt(2) -- empiric constants, as explained by J.Hobby
	constB := 0.0625         // 1/16
	constC := 0.38196601125  // (3 - sqrt(5)) / 2
	constCC := 0.61803398875 // 1 - c
	st, ct := math.Sin(theta), math.Cos(theta)
	sf, cf := math.Sin(phi), math.Cos(phi)
	alpha := constA * (st - constB*sf) * (sf - constB*st) * (ct - cf)
	beta := 1 + constCC*ct + constC*cf
	rho := (2 + alpha) / beta
	sigma := (2 - alpha) / beta
	uv1 := delta.Rotated(theta)
	uv2 := delta.Rotated(-phi)
	return splineCtrl{
		c1: from.Shifted(uv1.Scaled(rho / 3)),
		c2: to.Shifted(uv2.Scaled(-sigma / 3)),
	}
}

// reduceAngle folds an angle difference into (-pi, pi].
func reduceAngle(a float64) float64 {
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
