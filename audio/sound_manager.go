package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/spirograph/constants"
)

const (
	sampleRate = beep.SampleRate(constants.AudioSampleRate)
)

// SoundManager plays recording cues through a single mixer on the speaker
// Every method is a no-op until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	played      [cueTypeCount]int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: constants.CueVolume,
	}
}

// Initialize opens the speaker; failure leaves the manager silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Initialized reports whether cues reach the speaker
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SetVolume sets linear cue gain, clamped to [0,1]
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.volume = min(max(v, 0), 1)
}

// Cleanup silences pending cues
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// The speaker lock guards the mixer while it is streaming
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Play queues a cue on the mixer
func (sm *SoundManager) Play(cue CueType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := GetCue(cue, sampleRate, sm.volume)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
	sm.played[cue]++
}

// PlayArmed signals a recording waiting for the loop start
func (sm *SoundManager) PlayArmed() { sm.Play(CueArmed) }

// PlayRecordStart signals the first captured frame
func (sm *SoundManager) PlayRecordStart() { sm.Play(CueStart) }

// PlayRecordComplete signals a finished export
func (sm *SoundManager) PlayRecordComplete() { sm.Play(CueComplete) }

// Played returns how many times a cue reached the mixer
func (sm *SoundManager) Played(cue CueType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if cue < 0 || cue >= cueTypeCount {
		return 0
	}
	return sm.played[cue]
}
