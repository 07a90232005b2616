package record

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/setanarut/apng"
)

// APNGEncoder buffers truecolor frames and writes a looping animated PNG on Close
type APNGEncoder struct {
	path   string
	delay  uint16
	frames []image.Image
}

func newAPNGEncoder(path string, frameRate int) *APNGEncoder {
	return &APNGEncoder{path: path, delay: uint16(frameDelay(frameRate))}
}

// Add stores an RGBA copy; the encoder rejects paletted frames
func (e *APNGEncoder) Add(img image.Image) error {
	e.frames = append(e.frames, copyRGBA(img))
	return nil
}

func (e *APNGEncoder) Close() (Result, error) {
	if len(e.frames) == 0 {
		return Result{}, fmt.Errorf("apng %s: no frames", e.path)
	}

	anim := &apng.APNG{
		Images:    e.frames,
		Delays:    make([]uint16, len(e.frames)),
		LoopCount: 0,
	}
	for i := range anim.Delays {
		anim.Delays[i] = e.delay
	}

	f, err := os.Create(e.path)
	if err != nil {
		return Result{}, fmt.Errorf("create apng: %w", err)
	}
	if err := apng.EncodeAll(f, anim); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("encode apng: %w", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close apng: %w", err)
	}

	size, err := fileSize(e.path)
	if err != nil {
		return Result{}, err
	}
	frames := len(e.frames)
	e.frames = nil
	return Result{Path: e.path, Frames: frames, Bytes: size}, nil
}

// copyRGBA copies img into a fresh zero-origin RGBA
func copyRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
