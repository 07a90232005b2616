// Package noise provides seeded coherent noise fields and the looping sampler
// that turns a field into a seamlessly periodic parameter stream
package noise

import (
	"errors"
	"fmt"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lixenwraith/spirograph/vmath"
)

// Kind selects the noise implementation backing a Field
type Kind string

const (
	KindSimplex Kind = "simplex"
	KindPerlin  Kind = "perlin"
)

// Perlin octave parameters, close to the classic 4-octave 0.5 falloff look
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = int32(4)
)

var ErrUnknownKind = errors.New("unknown noise kind")

// Field is a deterministic coherent noise source over the plane
// Eval must return values in [0,1] and be a pure function of (x, y)
type Field interface {
	Eval(x, y float64) float64
}

// NewField creates a field of the given kind seeded for reproducibility
func NewField(kind Kind, seed int64) (Field, error) {
	switch kind {
	case KindSimplex, "":
		return &simplexField{noise: opensimplex.NewNormalized(seed)}, nil
	case KindPerlin:
		return &perlinField{noise: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// ParseKind validates a kind name from configuration
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindSimplex, KindPerlin:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

type simplexField struct {
	noise opensimplex.Noise
}

func (f *simplexField) Eval(x, y float64) float64 {
	return vmath.Clamp(f.noise.Eval2(x, y), 0, 1)
}

// perlinField remaps go-perlin output from roughly [-1,1] into [0,1]
// Octave sums can overshoot the nominal range, hence the clamp
type perlinField struct {
	noise *perlin.Perlin
}

func (f *perlinField) Eval(x, y float64) float64 {
	return vmath.Clamp((f.noise.Noise2D(x, y)+1)/2, 0, 1)
}

// FieldFunc adapts a plain function to Field
type FieldFunc func(x, y float64) float64

func (fn FieldFunc) Eval(x, y float64) float64 {
	return fn(x, y)
}
