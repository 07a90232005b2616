package constants

import "time"

// Animation Loop Constants
const (
	// FrameRate is the default frames per second of the animation loop
	FrameRate = 60

	// DefaultRuntime is the default length of one seamless loop
	DefaultRuntime = 10 * time.Second

	// CanvasSide is the logical square dimension the curve is computed in
	CanvasSide = 1024

	// CurveScale is the amplitude factor applied to CanvasSide
	CurveScale = 0.4
)

// Seed Constants
const (
	// SeedMin is the inclusive lower bound of generated seeds
	SeedMin = 100000

	// SeedMax is the exclusive upper bound of generated seeds
	SeedMax = 999999
)

// Parameter Draw Constants
const (
	// LeashPlaces is the number of decimal places leashes are rounded to
	LeashPlaces = 2

	DefaultDMin = 2
	DefaultDMax = 20
	DefaultNMin = 10
	DefaultNMax = 80

	DefaultDLeashMin = 5.0
	DefaultDLeashMax = 8.0
	DefaultNLeashMin = 0.6
	DefaultNLeashMax = 1.0

	// DefaultDNoiseRadius is the sampling circle extent for the d channel
	DefaultDNoiseRadius = 0.002

	// DefaultNNoiseRadius is the sampling circle extent for the n channel
	DefaultNNoiseRadius = 0.001
)

// FrameInterval returns the ticker period for a frame rate
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = FrameRate
	}
	return time.Second / time.Duration(fps)
}
