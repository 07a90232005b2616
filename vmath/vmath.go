package vmath

import "math"

// Remap linearly maps v from [inMin, inMax] onto [outMin, outMax]
// No clamping: values outside the input range extrapolate
func Remap(v, inMin, inMax, outMin, outMax float64) float64 {
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundTo rounds v to the given number of decimal places, half away from zero
func RoundTo(v float64, places int) float64 {
	mult := math.Pow(10, float64(places))
	return math.Round(v*mult) / mult
}

// Uniform maps a unit sample u in [0,1) onto [lo, hi)
func Uniform(u, lo, hi float64) float64 {
	return lo + u*(hi-lo)
}
