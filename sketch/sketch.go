package sketch

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/curve"
	"github.com/lixenwraith/spirograph/noise"
	"github.com/lixenwraith/spirograph/vmath"
)

// Parameters are the values drawn once per seed
type Parameters struct {
	Seed   int64
	D      int
	N      int
	DLeash float64
	NLeash float64
}

// Sketch samples both noise loops and evaluates the curve for a progress value
// Immutable after New; one instance per seed
type Sketch struct {
	settings Settings
	params   Parameters
	unit     curve.AngleUnit
	dLoop    *noise.Loop
	nLoop    *noise.Loop
}

// Frame is one evaluated animation frame
type Frame struct {
	Progress   float64
	DDeviation float64
	NDeviation float64
	Points     []vmath.Point
}

// RandomSeed picks a six digit seed from the process random source
func RandomSeed() int64 {
	return constants.SeedMin + rand.Int63n(constants.SeedMax-constants.SeedMin)
}

// New draws parameters and builds both loops from seed
// The same seed feeds the noise field and the uniform draws, so runs are reproducible
func New(s Settings, seed int64) (*Sketch, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	kind, _ := noise.ParseKind(s.Noise)
	unit, _ := curve.ParseAngleUnit(s.AngleUnit)

	field, err := noise.NewField(kind, seed)
	if err != nil {
		return nil, fmt.Errorf("create noise field: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	params := drawParameters(s, rng, seed)

	return &Sketch{
		settings: s,
		params:   params,
		unit:     unit,
		dLoop:    noise.NewLoop(field, rng, s.DNoiseRadius, -params.DLeash, params.DLeash),
		nLoop:    noise.NewLoop(field, rng, s.NNoiseRadius, -params.NLeash, params.NLeash),
	}, nil
}

// drawParameters consumes rng in a fixed order: d, n, d leash, n leash
func drawParameters(s Settings, rng *rand.Rand, seed int64) Parameters {
	uniform := func(lo, hi float64) float64 {
		return vmath.Uniform(rng.Float64(), lo, hi)
	}
	return Parameters{
		Seed:   seed,
		D:      int(math.Round(uniform(float64(s.DMin), float64(s.DMax)))),
		N:      int(math.Round(uniform(float64(s.NMin), float64(s.NMax)))),
		DLeash: vmath.RoundTo(uniform(s.DLeashMin, s.DLeashMax), constants.LeashPlaces),
		NLeash: vmath.RoundTo(uniform(s.NLeashMin, s.NLeashMax), constants.LeashPlaces),
	}
}

// Parameters returns the values drawn at construction
func (sk *Sketch) Parameters() Parameters {
	return sk.params
}

// Settings returns the settings the sketch was built with
func (sk *Sketch) Settings() Settings {
	return sk.settings
}

// CurveParams samples both loops at progress
func (sk *Sketch) CurveParams(progress float64) curve.Params {
	return curve.Params{
		D:          sk.params.D,
		N:          sk.params.N,
		DDeviation: sk.dLoop.Value(progress),
		NDeviation: sk.nLoop.Value(progress),
		SideLength: sk.settings.Side,
		Scale:      sk.settings.Scale,
		Unit:       sk.unit,
	}
}

// Frame evaluates the curve at progress
func (sk *Sketch) Frame(progress float64) Frame {
	p := sk.CurveParams(progress)
	return Frame{
		Progress:   progress,
		DDeviation: p.DDeviation,
		NDeviation: p.NDeviation,
		Points:     curve.Evaluate(p),
	}
}
