package noise

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/spirograph/vmath"
)

// Loop samples a Field along a closed circle so that Value(p) == Value(p+1)
// Immutable after construction; safe to share between goroutines
type Loop struct {
	field  Field
	radius float64
	min    float64
	max    float64
	cx     float64
	cy     float64
}

// NewLoop draws the circle center from rng: cx in [0,1), cy in [1,2)
// The y offset only decorrelates sibling loops sharing one field
func NewLoop(field Field, rng *rand.Rand, radius, min, max float64) *Loop {
	cx := rng.Float64()
	cy := 1 + rng.Float64()
	return NewLoopAt(field, cx, cy, radius, min, max)
}

// NewLoopAt builds a loop around a caller-chosen center
func NewLoopAt(field Field, cx, cy, radius, min, max float64) *Loop {
	return &Loop{
		field:  field,
		radius: radius,
		min:    min,
		max:    max,
		cx:     cx,
		cy:     cy,
	}
}

// Value returns the sampled parameter at progress p, designed for p in [0,1)
// Non-finite progress yields NaN output; the field is never queried with NaN
func (l *Loop) Value(progress float64) float64 {
	angle := 2 * math.Pi * progress
	xOff := vmath.Remap(math.Cos(angle), -1, 1, l.cx, l.cx+l.radius)
	yOff := vmath.Remap(math.Sin(angle), -1, 1, l.cy, l.cy+l.radius)
	if math.IsNaN(xOff) || math.IsNaN(yOff) {
		return math.NaN()
	}
	n := l.field.Eval(xOff, yOff)
	return vmath.Remap(n, 0, 1, l.min, l.max)
}

// Center returns the circle center in noise space
func (l *Loop) Center() (cx, cy float64) {
	return l.cx, l.cy
}

// Range returns the output bounds
func (l *Loop) Range() (min, max float64) {
	return l.min, l.max
}

// Radius returns the sampling circle extent in noise space
func (l *Loop) Radius() float64 {
	return l.radius
}
