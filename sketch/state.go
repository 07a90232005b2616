package sketch

import "github.com/lixenwraith/spirograph/constants"

// RecordPhase is the recording lifecycle: Idle -> Armed -> Recording -> Idle
type RecordPhase uint8

const (
	PhaseIdle RecordPhase = iota
	PhaseArmed
	PhaseRecording
)

func (p RecordPhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseArmed:
		return "armed"
	case PhaseRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// Step tells the frame loop what to do with the frame being rendered
type Step struct {
	// Start opens a new recording before this frame is captured
	Start bool
	// Capture appends this frame to the open recording
	Capture bool
	// Finish closes the recording; this frame is not captured
	Finish bool
}

// State is the animation state owned by the frame loop
// FrameNumber runs 0..TotalFrames inclusive and wraps to 0
type State struct {
	FrameNumber int
	TotalFrames int
	Phase       RecordPhase
	Message     string
	// Recordings counts completed recordings
	Recordings int
}

// NewState creates the state for a loop of totalFrames frames
func NewState(totalFrames int) *State {
	if totalFrames < 1 {
		totalFrames = 1
	}
	return &State{
		TotalFrames: totalFrames,
		Phase:       PhaseIdle,
		Message:     constants.MessageIdle,
	}
}

// Progress is the loop position in [0,1)
// Frame TotalFrames maps back to 0, the same position as frame 0
func (s *State) Progress() float64 {
	return float64(s.FrameNumber%s.TotalFrames) / float64(s.TotalFrames)
}

// Arm schedules a recording for the next frame 0, no-op unless idle
func (s *State) Arm() bool {
	if s.Phase != PhaseIdle {
		return false
	}
	s.Phase = PhaseArmed
	s.Message = constants.MessageArmed
	return true
}

// Begin resolves the recording transition for the current frame
// Recording starts on frame 0 and covers frames 0..TotalFrames-1
func (s *State) Begin() Step {
	var step Step
	if s.Phase == PhaseArmed && s.FrameNumber == 0 {
		s.Phase = PhaseRecording
		s.Message = constants.MessageRecording
		step.Start = true
	}
	if s.Phase == PhaseRecording {
		if s.FrameNumber == s.TotalFrames {
			s.Phase = PhaseIdle
			s.Message = constants.MessageComplete
			s.Recordings++
			step.Finish = true
		} else {
			step.Capture = true
		}
	}
	return step
}

// Abort drops an armed or open recording
func (s *State) Abort(message string) {
	s.Phase = PhaseIdle
	s.Message = message
}

// Advance moves to the next frame
func (s *State) Advance() {
	s.FrameNumber++
	if s.FrameNumber > s.TotalFrames {
		s.FrameNumber = 0
	}
}

// Fraction is FrameNumber / TotalFrames in [0,1], for progress bars
func (s *State) Fraction() float64 {
	return float64(s.FrameNumber) / float64(s.TotalFrames)
}
