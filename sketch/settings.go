// Package sketch holds the spirograph's tunable settings, the seeded parameter
// draw, the per-frame curve sampling and the explicit animation state
package sketch

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/curve"
	"github.com/lixenwraith/spirograph/noise"
)

var ErrInvalidSettings = errors.New("invalid sketch settings")

// Settings are the knobs of the sketch; mess with values here
type Settings struct {
	// Starting point ranges for d/n
	DMin int `mapstructure:"d_min" json:"d_min" toml:"d_min" yaml:"d_min"`
	DMax int `mapstructure:"d_max" json:"d_max" toml:"d_max" yaml:"d_max"`
	NMin int `mapstructure:"n_min" json:"n_min" toml:"n_min" yaml:"n_min"`
	NMax int `mapstructure:"n_max" json:"n_max" toml:"n_max" yaml:"n_max"`

	// Deviation ranges from the starting d/n values
	DLeashMin float64 `mapstructure:"d_leash_min" json:"d_leash_min" toml:"d_leash_min" yaml:"d_leash_min"`
	DLeashMax float64 `mapstructure:"d_leash_max" json:"d_leash_max" toml:"d_leash_max" yaml:"d_leash_max"`
	NLeashMin float64 `mapstructure:"n_leash_min" json:"n_leash_min" toml:"n_leash_min" yaml:"n_leash_min"`
	NLeashMax float64 `mapstructure:"n_leash_max" json:"n_leash_max" toml:"n_leash_max" yaml:"n_leash_max"`

	// Noise sample circle extents
	DNoiseRadius float64 `mapstructure:"d_noise_radius" json:"d_noise_radius" toml:"d_noise_radius" yaml:"d_noise_radius"`
	NNoiseRadius float64 `mapstructure:"n_noise_radius" json:"n_noise_radius" toml:"n_noise_radius" yaml:"n_noise_radius"`

	Runtime   time.Duration `mapstructure:"runtime" json:"runtime" toml:"runtime" yaml:"runtime"`
	FrameRate int           `mapstructure:"frame_rate" json:"frame_rate" toml:"frame_rate" yaml:"frame_rate"`
	Side      float64       `mapstructure:"side" json:"side" toml:"side" yaml:"side"`
	Scale     float64       `mapstructure:"scale" json:"scale" toml:"scale" yaml:"scale"`

	// Seed drives the parameter draw and the noise field, 0 picks one at random
	Seed      int64  `mapstructure:"seed" json:"seed" toml:"seed" yaml:"seed"`
	Noise     string `mapstructure:"noise" json:"noise" toml:"noise" yaml:"noise"`
	AngleUnit string `mapstructure:"angle_unit" json:"angle_unit" toml:"angle_unit" yaml:"angle_unit"`
}

// DefaultSettings returns the classic look
func DefaultSettings() Settings {
	return Settings{
		DMin:         constants.DefaultDMin,
		DMax:         constants.DefaultDMax,
		NMin:         constants.DefaultNMin,
		NMax:         constants.DefaultNMax,
		DLeashMin:    constants.DefaultDLeashMin,
		DLeashMax:    constants.DefaultDLeashMax,
		NLeashMin:    constants.DefaultNLeashMin,
		NLeashMax:    constants.DefaultNLeashMax,
		DNoiseRadius: constants.DefaultDNoiseRadius,
		NNoiseRadius: constants.DefaultNNoiseRadius,
		Runtime:      constants.DefaultRuntime,
		FrameRate:    constants.FrameRate,
		Side:         constants.CanvasSide,
		Scale:        constants.CurveScale,
		Noise:        string(noise.KindSimplex),
		AngleUnit:    curve.Radians.String(),
	}
}

// TotalFrames is the number of frames in one loop
func (s Settings) TotalFrames() int {
	return int(math.Round(float64(s.FrameRate) * s.Runtime.Seconds()))
}

// Validate reports the first inconsistent setting
func (s Settings) Validate() error {
	switch {
	case s.DMin > s.DMax:
		return fmt.Errorf("%w: d_min %d > d_max %d", ErrInvalidSettings, s.DMin, s.DMax)
	case s.NMin > s.NMax:
		return fmt.Errorf("%w: n_min %d > n_max %d", ErrInvalidSettings, s.NMin, s.NMax)
	case s.DLeashMin < 0 || s.DLeashMin > s.DLeashMax:
		return fmt.Errorf("%w: d leash range [%v, %v]", ErrInvalidSettings, s.DLeashMin, s.DLeashMax)
	case s.NLeashMin < 0 || s.NLeashMin > s.NLeashMax:
		return fmt.Errorf("%w: n leash range [%v, %v]", ErrInvalidSettings, s.NLeashMin, s.NLeashMax)
	case s.DNoiseRadius <= 0 || s.NNoiseRadius <= 0:
		return fmt.Errorf("%w: noise radius must be positive", ErrInvalidSettings)
	case s.FrameRate <= 0:
		return fmt.Errorf("%w: frame_rate %d", ErrInvalidSettings, s.FrameRate)
	case s.Runtime <= 0 || s.TotalFrames() < 1:
		return fmt.Errorf("%w: runtime %v yields no frames", ErrInvalidSettings, s.Runtime)
	case s.Side <= 0 || s.Scale <= 0:
		return fmt.Errorf("%w: side and scale must be positive", ErrInvalidSettings)
	}
	if _, err := noise.ParseKind(s.Noise); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if _, err := curve.ParseAngleUnit(s.AngleUnit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}
