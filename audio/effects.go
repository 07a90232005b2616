package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/spirograph/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration with linear attack and release ramps
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := max(e.totalSamples-e.releaseSamples, e.attackSamples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		} else if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// decay multiplies a stream by exp(-rate * t)
type decay struct {
	streamer beep.Streamer
	rate     beep.SampleRate
	k        float64
	position int
}

// NewDecay applies an exponential fade with the given per-second constant
func NewDecay(s beep.Streamer, k float64, rate beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, rate: rate, k: k}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := math.Exp(-d.k * float64(d.position) / float64(d.rate))
		samples[i][0] *= vol
		samples[i][1] *= vol
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// newVolume wraps s in a linear gain; math.Log2(0) is -Inf so zero is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateArmedCue is a short square blip
func CreateArmedCue(rate beep.SampleRate, vol float64) beep.Streamer {
	osc := NewOscillator(constants.ArmedCueFreq, constants.ArmedCueDuration, WaveSquare, rate)
	shaped := NewEnvelope(osc, constants.ArmedCueDuration, constants.CueAttack, constants.CueRelease, rate)
	return newVolume(shaped, vol*0.5)
}

// CreateStartCue is a rising two-note figure
func CreateStartCue(rate beep.SampleRate, vol float64) beep.Streamer {
	d := constants.StartCueNoteDuration

	low := NewOscillator(constants.StartCueLowFreq, d, WaveTriangle, rate)
	lowShaped := NewEnvelope(low, d, constants.CueAttack, constants.CueRelease, rate)

	high := NewOscillator(constants.StartCueHighFreq, d, WaveTriangle, rate)
	highShaped := NewEnvelope(high, d, constants.CueAttack, constants.CueRelease, rate)

	return newVolume(beep.Seq(lowShaped, highShaped), vol)
}

// CreateCompleteCue is a decaying bell with an octave overtone
func CreateCompleteCue(rate beep.SampleRate, vol float64) beep.Streamer {
	d := constants.CompleteCueDuration

	fund := NewOscillator(constants.CompleteCueFreq, d, WaveSine, rate)
	over := NewOscillator(constants.CompleteCueFreq*2, d, WaveSine, rate)

	mixed := beep.Mix(
		newVolume(fund, 1-constants.CompleteCueMix),
		newVolume(over, constants.CompleteCueMix),
	)
	shaped := NewEnvelope(NewDecay(mixed, constants.CompleteCueDecay, rate), d, constants.CueAttack, constants.CueRelease, rate)
	return newVolume(shaped, vol)
}

// GetCue returns the streamer for a cue type, nil for unknown types
func GetCue(cue CueType, rate beep.SampleRate, vol float64) beep.Streamer {
	switch cue {
	case CueArmed:
		return CreateArmedCue(rate, vol)
	case CueStart:
		return CreateStartCue(rate, vol)
	case CueComplete:
		return CreateCompleteCue(rate, vol)
	default:
		return nil
	}
}
