package render

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/spirograph/constants"
)

var ErrInvalidStyle = errors.New("invalid style")

// Style is the configurable look of the curve
type Style struct {
	Background  string  `mapstructure:"background" json:"background" toml:"background" yaml:"background"`
	Stroke      string  `mapstructure:"stroke" json:"stroke" toml:"stroke" yaml:"stroke"`
	StrokeAlpha float64 `mapstructure:"stroke_alpha" json:"stroke_alpha" toml:"stroke_alpha" yaml:"stroke_alpha"`
	LineWidth   float64 `mapstructure:"line_width" json:"line_width" toml:"line_width" yaml:"line_width"`
}

// DefaultStyle is a translucent white line on near-black
func DefaultStyle() Style {
	return Style{
		Background:  constants.DefaultBackground,
		Stroke:      constants.DefaultStroke,
		StrokeAlpha: constants.StrokeAlpha,
		LineWidth:   constants.StrokeWidth,
	}
}

// Palette is a Style with parsed colors
type Palette struct {
	Background  RGB
	Stroke      RGB
	StrokeAlpha float64
	LineWidth   float64
}

// Palette parses the style colors
func (s Style) Palette() (Palette, error) {
	bg, err := ParseColor(s.Background)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: background: %w", ErrInvalidStyle, err)
	}
	stroke, err := ParseColor(s.Stroke)
	if err != nil {
		return Palette{}, fmt.Errorf("%w: stroke: %w", ErrInvalidStyle, err)
	}
	if s.StrokeAlpha < 0 || s.StrokeAlpha > 1 {
		return Palette{}, fmt.Errorf("%w: stroke_alpha %v outside [0,1]", ErrInvalidStyle, s.StrokeAlpha)
	}
	if s.LineWidth <= 0 {
		return Palette{}, fmt.Errorf("%w: line_width %v", ErrInvalidStyle, s.LineWidth)
	}
	return Palette{
		Background:  bg,
		Stroke:      stroke,
		StrokeAlpha: s.StrokeAlpha,
		LineWidth:   s.LineWidth,
	}, nil
}
