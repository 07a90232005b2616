package record

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// PNGSequence streams each frame to <dir>/frame-NNNNN.png as it arrives
type PNGSequence struct {
	dir    string
	frames int
	bytes  int64
	enc    png.Encoder
}

func newPNGSequence(dir string) (*PNGSequence, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frame directory: %w", err)
	}
	return &PNGSequence{dir: dir, enc: png.Encoder{CompressionLevel: png.BestSpeed}}, nil
}

// FramePath returns the file a frame index is written to
func (s *PNGSequence) FramePath(i int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frame-%05d.png", i))
}

func (s *PNGSequence) Add(img image.Image) error {
	path := s.FramePath(s.frames)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame: %w", err)
	}
	if err := s.enc.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode frame %d: %w", s.frames, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close frame %d: %w", s.frames, err)
	}
	if size, err := fileSize(path); err == nil {
		s.bytes += size
	}
	s.frames++
	return nil
}

func (s *PNGSequence) Close() (Result, error) {
	if s.frames == 0 {
		return Result{}, fmt.Errorf("png sequence %s: no frames", s.dir)
	}
	return Result{Path: s.dir, Frames: s.frames, Bytes: s.bytes}, nil
}
