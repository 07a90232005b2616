package record

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
)

// GIFEncoder buffers paletted frames and writes a looping GIF on Close
type GIFEncoder struct {
	path   string
	delay  int
	pal    color.Palette
	frames []*image.Paletted
}

func newGIFEncoder(path string, frameRate int, pal color.Palette) *GIFEncoder {
	return &GIFEncoder{path: path, delay: frameDelay(frameRate), pal: pal}
}

func (e *GIFEncoder) Add(img image.Image) error {
	e.frames = append(e.frames, quantize(img, e.pal))
	return nil
}

func (e *GIFEncoder) Close() (Result, error) {
	if len(e.frames) == 0 {
		return Result{}, fmt.Errorf("gif %s: no frames", e.path)
	}

	anim := &gif.GIF{
		Image:     e.frames,
		Delay:     make([]int, len(e.frames)),
		LoopCount: 0,
	}
	for i := range anim.Delay {
		anim.Delay[i] = e.delay
	}

	f, err := os.Create(e.path)
	if err != nil {
		return Result{}, fmt.Errorf("create gif: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return Result{}, fmt.Errorf("encode gif: %w", err)
	}
	if err := f.Close(); err != nil {
		return Result{}, fmt.Errorf("close gif: %w", err)
	}

	size, err := fileSize(e.path)
	if err != nil {
		return Result{}, err
	}
	frames := len(e.frames)
	e.frames = nil
	return Result{Path: e.path, Frames: frames, Bytes: size}, nil
}
