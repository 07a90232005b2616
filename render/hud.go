package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/sketch"
)

// HUD is the overlay model for one frame, in terminal cells
// It is never drawn into recorded frames
type HUD struct {
	Counter        string
	Message        string
	Color          RGB
	BarWidth       int
	IndicatorX     int
	IndicatorWidth int
}

// NewHUD lays out the overlay for a screen width
func NewHUD(s *sketch.State, width int) HUD {
	color := RGBFrom(constants.HUDIdleColor)
	switch s.Phase {
	case sketch.PhaseRecording:
		color = RGBFrom(constants.HUDRecordingColor)
	case sketch.PhaseArmed:
		color = RGBFrom(constants.HUDArmedColor)
	}

	pos := int(math.Floor(s.Fraction() * float64(width)))
	indicator := int(math.Ceil(float64(width) / float64(s.TotalFrames)))
	if indicator < 1 {
		indicator = 1
	}
	if pos > width-indicator {
		pos = max(width-indicator, 0)
	}

	return HUD{
		Counter:        fmt.Sprintf("%d / %d", s.FrameNumber, s.TotalFrames),
		Message:        s.Message,
		Color:          color,
		BarWidth:       min(int(math.Floor(s.Fraction()*float64(width))), width),
		IndicatorX:     pos,
		IndicatorWidth: indicator,
	}
}
