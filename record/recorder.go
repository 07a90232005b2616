package record

import (
	"fmt"
	"image"
	"image/color"
	"time"
)

// Recorder runs one encoder at a time through start, capture and detach
type Recorder struct {
	opts      Options
	format    Format
	frameRate int
	pal       color.Palette
	enc       Encoder
	name      string
}

// NewRecorder validates opts; pal quantizes indexed formats
func NewRecorder(opts Options, frameRate int, pal color.Palette) (*Recorder, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	format, _ := ParseFormat(opts.Format)
	return &Recorder{opts: opts, format: format, frameRate: frameRate, pal: pal}, nil
}

// Active reports whether a recording is open
func (r *Recorder) Active() bool {
	return r.enc != nil
}

// Name is the base name of the open recording
func (r *Recorder) Name() string {
	return r.name
}

// Start opens a recording named after now
func (r *Recorder) Start(now time.Time) error {
	if r.enc != nil {
		return ErrAlreadyRecording
	}
	name := BaseName(r.opts.Prefix, now)
	enc, err := NewEncoder(r.format, r.opts.Dir, name, r.frameRate, r.pal)
	if err != nil {
		return fmt.Errorf("start recording: %w", err)
	}
	r.enc = enc
	r.name = name
	return nil
}

// Capture appends a frame to the open recording
func (r *Recorder) Capture(img image.Image) error {
	if r.enc == nil {
		return ErrNotRecording
	}
	return r.enc.Add(img)
}

// Detach ends the open recording and hands its encoder to the caller,
// who writes it out with Close. The recorder is free to Start again at once
func (r *Recorder) Detach() (Encoder, error) {
	if r.enc == nil {
		return nil, ErrNotRecording
	}
	enc := r.enc
	r.enc = nil
	r.name = ""
	return enc, nil
}

// Abort drops the open recording without writing buffered frames
func (r *Recorder) Abort() {
	r.enc = nil
	r.name = ""
}
