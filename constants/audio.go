package constants

import "time"

// Audio Engine Constants
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond
)

// Armed Cue Timing
const (
	ArmedCueDuration = 90 * time.Millisecond
	ArmedCueFreq     = 660.0
)

// Start Cue Timing
const (
	StartCueNoteDuration = 110 * time.Millisecond
	StartCueLowFreq      = 523.25
	StartCueHighFreq     = 783.99
)

// Complete Cue Timing
const (
	CompleteCueDuration = 600 * time.Millisecond
	CompleteCueFreq     = 880.0
	CompleteCueDecay    = 6.0
)

// Cue Shaping
const (
	CueAttack      = 5 * time.Millisecond
	CueRelease     = 40 * time.Millisecond
	CueVolume      = 0.35
	CompleteCueMix = 0.3 // overtone share in the completion bell
)
