package constants

// HUD Messages
const (
	MessageIdle      = "Click to record"
	MessageArmed     = "Recording will start at beginning of loop..."
	MessageRecording = "Recording..."
	MessageSaving    = "Saving recording..."
	MessageComplete  = "Recording complete"
	MessageFailed    = "Recording failed"
)

// HUD Layout Constants (terminal cells)
const (
	// ProgressBarRow is the row the progress bar occupies
	ProgressBarRow = 0

	// FrameCounterRow is the row of the "frame / total" text
	FrameCounterRow = 1

	// HUDTextInset is the left margin of HUD text
	HUDTextInset = 1

	// HUDReservedRows are rows kept free of the preview when the HUD is on
	HUDReservedRows = 3
)

// Style Constants
const (
	// BackgroundGray is the canvas background gray level
	BackgroundGray = 20

	// StrokeAlpha is the curve stroke opacity
	StrokeAlpha = 0.65

	// StrokeWidth is the curve line width in logical canvas units
	StrokeWidth = 1.0

	DefaultBackground = "#141414"
	DefaultStroke     = "#ffffff"
)

// HUD Color Constants (RGB triplets)
var (
	HUDIdleColor      = [3]uint8{100, 100, 100}
	HUDArmedColor     = [3]uint8{40, 80, 255}
	HUDRecordingColor = [3]uint8{255, 0, 0}
	HUDIndicatorColor = [3]uint8{255, 255, 255}
)
