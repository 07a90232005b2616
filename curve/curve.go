// Package curve evaluates the Maurer-rose style spirograph curve drawn each frame.
//
// For theta in 0..Steps the curve is
//
//	k = theta * (d + dDev)
//	r = side * scale * sin(n + nDev*k)
//	x = -r * cos(k), y = -r * sin(k)
//
// nDev multiplies k before it reaches n. That coupling lets the n channel's
// small leash swing the petal phase wildly along the sweep; it is kept as-is
// because the look of the animation depends on it.
package curve

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/spirograph/vmath"
)

// Steps is the number of angular increments in one sweep; Evaluate returns Steps+1 points
const Steps = 360

// DefaultScale is the nominal amplitude factor relative to the canvas side
const DefaultScale = 0.4

// AngleUnit states how theta and k are fed to the trig functions
type AngleUnit uint8

const (
	// Radians passes theta and k straight to radian trig (the classic look)
	Radians AngleUnit = iota
	// Degrees converts theta and k from degrees before trig
	Degrees
)

var ErrUnknownUnit = errors.New("unknown angle unit")

// ParseAngleUnit maps a configuration string to an AngleUnit
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch s {
	case "radians", "rad", "":
		return Radians, nil
	case "degrees", "deg":
		return Degrees, nil
	default:
		return Radians, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
}

func (u AngleUnit) String() string {
	switch u {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	default:
		return fmt.Sprintf("AngleUnit(%d)", uint8(u))
	}
}

// toRadians converts an angle expressed in u to radians
func (u AngleUnit) toRadians(a float64) float64 {
	if u == Degrees {
		return a * math.Pi / 180
	}
	return a
}

// Params holds one frame's curve inputs
type Params struct {
	D          int
	N          int
	DDeviation float64
	NDeviation float64
	SideLength float64
	Scale      float64
	Unit       AngleUnit
}

// Evaluate returns the Steps+1 curve points for p, centered on the origin
// The returned slice is freshly allocated; callers may keep or mutate it
func Evaluate(p Params) []vmath.Point {
	points := make([]vmath.Point, 0, Steps+1)
	d := float64(p.D) + p.DDeviation
	n := float64(p.N)
	amplitude := p.SideLength * p.Scale

	for theta := 0; theta <= Steps; theta++ {
		raw := float64(theta) * d
		k := p.Unit.toRadians(raw)
		r := amplitude * math.Sin(p.Unit.toRadians(n+p.NDeviation*raw))
		points = append(points, vmath.Point{
			X: -r * math.Cos(k),
			Y: -r * math.Sin(k),
		})
	}
	return points
}
