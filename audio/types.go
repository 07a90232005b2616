package audio

// CueType identifies a recording lifecycle cue
type CueType int

const (
	CueArmed    CueType = iota // Recording armed, waiting for loop start
	CueStart                   // First captured frame
	CueComplete                // Loop written to disk
	cueTypeCount
)

// String returns the cue name used in logs
func (c CueType) String() string {
	switch c {
	case CueArmed:
		return "armed"
	case CueStart:
		return "start"
	case CueComplete:
		return "complete"
	default:
		return "unknown"
	}
}
