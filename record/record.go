// Package record exports one animation loop to a file
package record

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lixenwraith/spirograph/constants"
)

// Format names a container for recorded frames
type Format string

const (
	FormatGIF  Format = "gif"
	FormatAPNG Format = "apng"
	FormatPNG  Format = "png"
)

var (
	ErrUnknownFormat    = errors.New("unknown recording format")
	ErrNotRecording     = errors.New("no recording in progress")
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrInvalidOptions   = errors.New("invalid recording options")
)

// Options configure recording output
type Options struct {
	Format string `mapstructure:"format" json:"format" toml:"format" yaml:"format"`
	Dir    string `mapstructure:"dir" json:"dir" toml:"dir" yaml:"dir"`
	// Size is the pixel dimension of recorded frames
	Size   int    `mapstructure:"size" json:"size" toml:"size" yaml:"size"`
	Prefix string `mapstructure:"prefix" json:"prefix" toml:"prefix" yaml:"prefix"`
}

// DefaultOptions records a looping GIF at half the logical canvas size
func DefaultOptions() Options {
	return Options{
		Format: string(FormatGIF),
		Dir:    ".",
		Size:   constants.CanvasSide / 2,
		Prefix: "spirograph",
	}
}

// Validate checks format and size
func (o Options) Validate() error {
	if _, err := ParseFormat(o.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if o.Size < 2 {
		return fmt.Errorf("%w: size %d", ErrInvalidOptions, o.Size)
	}
	if o.Prefix == "" {
		return fmt.Errorf("%w: empty prefix", ErrInvalidOptions)
	}
	return nil
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatGIF, FormatAPNG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Result describes a finished recording
type Result struct {
	Path   string
	Frames int
	Bytes  int64
}

// Encoder receives the frames of one loop in order
// Add must not retain img; callers reuse the backing image between frames
type Encoder interface {
	Add(img image.Image) error
	Close() (Result, error)
}

// BaseName is "<prefix>-<unix millis>"
func BaseName(prefix string, now time.Time) string {
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10)
}

// NewEncoder opens an encoder writing under dir with the given base name
// pal quantizes frames for the indexed formats; nil falls back to a web-safe palette
func NewEncoder(format Format, dir, name string, frameRate int, pal color.Palette) (Encoder, error) {
	if len(pal) == 0 {
		pal = fallbackPalette()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	switch format {
	case FormatGIF:
		return newGIFEncoder(filepath.Join(dir, name+".gif"), frameRate, pal), nil
	case FormatAPNG:
		return newAPNGEncoder(filepath.Join(dir, name+".png"), frameRate), nil
	case FormatPNG:
		return newPNGSequence(filepath.Join(dir, name))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// frameDelay converts a frame rate to centiseconds for GIF and APNG; viewers treat delays below 2 as slow
func frameDelay(frameRate int) int {
	if frameRate <= 0 {
		frameRate = constants.FrameRate
	}
	return max(int(math.Round(100/float64(frameRate))), 2)
}

// quantize copies img into a paletted image, nearest color per pixel
func quantize(img image.Image, pal color.Palette) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), pal)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
