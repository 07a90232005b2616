package audio

import (
	"testing"
)

// TestSoundManagerGracefulDegradation verifies cues don't panic when not initialized
func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	sm.PlayArmed()
	sm.PlayRecordStart()
	sm.PlayRecordComplete()
	sm.Play(CueType(99))
	sm.Cleanup()

	if sm.Played(CueArmed) != 0 {
		t.Errorf("Expected no cues to reach an uninitialized mixer, got %d", sm.Played(CueArmed))
	}
}

// TestSoundManagerInitialization verifies sound manager can be initialized and cleaned up
func TestSoundManagerInitialization(t *testing.T) {
	sm := NewSoundManager()

	// Speaker initialization fails without an audio device; audio is optional
	err := sm.Initialize()
	if err != nil {
		t.Logf("Sound initialization failed (expected in test environment): %v", err)
		if sm.Initialized() {
			t.Error("Manager must stay uninitialized after a failed Initialize")
		}
		return
	}

	sm.PlayArmed()
	if sm.Played(CueArmed) != 1 {
		t.Errorf("Expected armed cue to be queued once, got %d", sm.Played(CueArmed))
	}
	sm.Cleanup()
}

// TestSoundManagerDoubleInitialization verifies double initialization is safe
func TestSoundManagerDoubleInitialization(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("First initialization failed (expected in test environment): %v", err)
		return
	}

	if err := sm.Initialize(); err != nil {
		t.Errorf("Second initialization should succeed as no-op, got error: %v", err)
	}

	sm.Cleanup()
}

// TestSoundManagerOperationsAfterCleanup verifies operations after cleanup are safe
func TestSoundManagerOperationsAfterCleanup(t *testing.T) {
	sm := NewSoundManager()

	if err := sm.Initialize(); err != nil {
		t.Logf("Initialization failed (expected in test environment): %v", err)
	}

	sm.Cleanup()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked after cleanup: %v", r)
		}
	}()

	sm.PlayArmed()
	sm.PlayRecordStart()
	sm.PlayRecordComplete()

	if sm.Initialized() {
		t.Error("Expected manager to be uninitialized after cleanup")
	}
}

// TestSetVolumeClamps verifies gain stays in [0,1]
func TestSetVolumeClamps(t *testing.T) {
	sm := NewSoundManager()

	sm.SetVolume(3)
	if sm.volume != 1 {
		t.Errorf("Expected volume clamped to 1, got %f", sm.volume)
	}
	sm.SetVolume(-1)
	if sm.volume != 0 {
		t.Errorf("Expected volume clamped to 0, got %f", sm.volume)
	}
}

// TestCueTypeString verifies log names
func TestCueTypeString(t *testing.T) {
	tests := []struct {
		cue  CueType
		want string
	}{
		{CueArmed, "armed"},
		{CueStart, "start"},
		{CueComplete, "complete"},
		{CueType(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cue.String(); got != tt.want {
			t.Errorf("CueType(%d).String() = %q, want %q", tt.cue, got, tt.want)
		}
	}
}
