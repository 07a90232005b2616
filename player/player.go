// Package player drives the sketch frame by frame: it samples the curve,
// rasterizes the preview, runs the recording lifecycle and fires cues
package player

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/record"
	"github.com/lixenwraith/spirograph/render"
	"github.com/lixenwraith/spirograph/sketch"
)

var (
	ErrBusy        = errors.New("recording in progress")
	ErrNoRecorder  = errors.New("recording disabled")
	ErrInvalidSize = errors.New("invalid recording size")
)

// Cues are played on recording transitions; audio.SoundManager satisfies it
type Cues interface {
	PlayArmed()
	PlayRecordStart()
	PlayRecordComplete()
}

// Display shows composed frames; render.Presenter satisfies it
type Display interface {
	Present(img image.Image, hud render.HUD)
	PreviewSize() int
	Width() int
}

// Recorder encodes one loop at a time; record.Recorder satisfies it
type Recorder interface {
	Start(now time.Time) error
	Capture(img image.Image) error
	Detach() (record.Encoder, error)
	Abort()
	Active() bool
}

type silentCues struct{}

func (silentCues) PlayArmed()          {}
func (silentCues) PlayRecordStart()    {}
func (silentCues) PlayRecordComplete() {}

// Options wire a Player; nil Display runs headless, nil Cues is silent,
// nil Recorder disables recording. AsyncSave writes finished recordings on a
// background goroutine so Tick keeps its frame budget; Wait collects them
type Options struct {
	Settings   sketch.Settings
	Palette    render.Palette
	Seed       int64
	Recorder   Recorder
	RecordSize int
	Cues       Cues
	Display    Display
	Clock      Clock
	AsyncSave  bool
}

// saveResult carries a background encoder Close back to the frame goroutine
type saveResult struct {
	res record.Result
	err error
}

// Player owns all per-frame state; methods must be called from one goroutine
type Player struct {
	settings sketch.Settings
	palette  render.Palette
	sketch   *sketch.Sketch
	state    *sketch.State
	preview  *render.Canvas
	capture  *render.Canvas
	recorder Recorder
	cues     Cues
	display  Display
	clock    Clock
	session  string
	logger   zerolog.Logger
	results  []record.Result

	async   bool
	saves   chan saveResult
	pending int
}

// New draws the sketch for opts.Seed, picking a random seed when it is 0
func New(opts Options) (*Player, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = sketch.RandomSeed()
	}
	sk, err := sketch.New(opts.Settings, seed)
	if err != nil {
		return nil, err
	}

	p := &Player{
		settings: opts.Settings,
		palette:  opts.Palette,
		sketch:   sk,
		state:    sketch.NewState(opts.Settings.TotalFrames()),
		recorder: opts.Recorder,
		cues:     opts.Cues,
		display:  opts.Display,
		clock:    opts.Clock,
		session:  uuid.NewString(),
		async:    opts.AsyncSave,
		saves:    make(chan saveResult, 1),
	}
	if p.cues == nil {
		p.cues = silentCues{}
	}
	if p.clock == nil {
		p.clock = NewTimeProvider()
	}
	if p.recorder != nil {
		if opts.RecordSize < 2 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidSize, opts.RecordSize)
		}
		p.capture = render.NewCanvas(opts.RecordSize, opts.Settings.Side, opts.Palette)
	}

	p.logger = log.With().Str("session", p.session).Logger()
	p.logSketch()
	return p, nil
}

func (p *Player) logSketch() {
	params := p.sketch.Parameters()
	p.logger.Info().
		Int64("seed", params.Seed).
		Int("d", params.D).
		Int("n", params.N).
		Float64("d_leash", params.DLeash).
		Float64("n_leash", params.NLeash).
		Int("total_frames", p.state.TotalFrames).
		Msg("sketch ready")
}

// State exposes the animation state for inspection
func (p *Player) State() *sketch.State {
	return p.state
}

// Parameters returns the drawn parameters of the current sketch
func (p *Player) Parameters() sketch.Parameters {
	return p.sketch.Parameters()
}

// Session identifies this player in logs
func (p *Player) Session() string {
	return p.session
}

// Results lists completed recordings in order
func (p *Player) Results() []record.Result {
	return p.results
}

// Arm schedules a recording at the next loop start
func (p *Player) Arm() bool {
	if p.recorder == nil {
		return false
	}
	if !p.state.Arm() {
		return false
	}
	p.cues.PlayArmed()
	p.logger.Debug().Int("frame", p.state.FrameNumber).Msg("recording armed")
	return true
}

// Reseed replaces the sketch and restarts the loop; only while idle
func (p *Player) Reseed(seed int64) error {
	if p.state.Phase != sketch.PhaseIdle {
		return ErrBusy
	}
	if seed == 0 {
		seed = sketch.RandomSeed()
	}
	sk, err := sketch.New(p.settings, seed)
	if err != nil {
		return err
	}
	p.sketch = sk
	p.state = sketch.NewState(p.settings.TotalFrames())
	p.logSketch()
	return nil
}

// Tick renders the current frame, runs the recording step and advances
// A recording error aborts the recording and is returned; the animation goes on
func (p *Player) Tick() error {
	saveErr := p.collect()
	step := p.state.Begin()
	var recErr error

	if step.Start {
		if err := p.recorder.Start(p.clock.Now()); err != nil {
			recErr = p.fail(err)
		} else {
			p.cues.PlayRecordStart()
			p.logger.Info().Msg("recording started")
		}
	}

	frame := p.sketch.Frame(p.state.Progress())

	if step.Capture && recErr == nil {
		p.capture.Draw(frame.Points)
		if err := p.recorder.Capture(p.capture.Image()); err != nil {
			recErr = p.fail(err)
		}
	}

	if step.Finish {
		if enc, err := p.recorder.Detach(); err != nil {
			recErr = p.fail(err)
		} else {
			recErr = p.save(enc)
		}
	}

	if p.display != nil {
		p.present(frame)
	}

	p.state.Advance()
	return errors.Join(saveErr, recErr)
}

// save writes a detached recording, in the background when async
func (p *Player) save(enc record.Encoder) error {
	if !p.async {
		res, err := enc.Close()
		return p.complete(res, err)
	}
	p.pending++
	p.state.Message = constants.MessageSaving
	p.logger.Debug().Int("pending", p.pending).Msg("saving recording")
	go func() {
		res, err := enc.Close()
		p.saves <- saveResult{res: res, err: err}
	}()
	return nil
}

// collect completes any background saves that have finished, without blocking
func (p *Player) collect() error {
	var errs []error
	for p.pending > 0 {
		select {
		case r := <-p.saves:
			p.pending--
			errs = append(errs, p.complete(r.res, r.err))
		default:
			return errors.Join(errs...)
		}
	}
	return errors.Join(errs...)
}

// Wait blocks until every background save has been written
func (p *Player) Wait() error {
	var errs []error
	for p.pending > 0 {
		r := <-p.saves
		p.pending--
		errs = append(errs, p.complete(r.res, r.err))
	}
	return errors.Join(errs...)
}

// Saving reports whether background saves are still being written
func (p *Player) Saving() bool {
	return p.pending > 0
}

// complete records the outcome of an encoder Close
// The recorder may already be on its next loop, so a failure only touches the HUD
func (p *Player) complete(res record.Result, err error) error {
	idle := p.state.Phase == sketch.PhaseIdle
	if err != nil {
		if idle {
			p.state.Message = constants.MessageFailed
		}
		p.logger.Error().Err(err).Msg("recording failed")
		return fmt.Errorf("recording: %w", err)
	}

	p.results = append(p.results, res)
	if idle && p.state.Message == constants.MessageSaving {
		p.state.Message = constants.MessageComplete
	}
	p.cues.PlayRecordComplete()
	p.logger.Info().
		Str("path", res.Path).
		Int("frames", res.Frames).
		Str("size", humanize.Bytes(uint64(max(res.Bytes, 0)))).
		Msg("recording complete")
	return nil
}

func (p *Player) present(frame sketch.Frame) {
	size := p.display.PreviewSize()
	if p.preview == nil || p.preview.Size() != size {
		p.preview = render.NewCanvas(size, p.settings.Side, p.palette)
	}
	p.preview.Draw(frame.Points)
	p.display.Present(p.preview.Image(), render.NewHUD(p.state, p.display.Width()))
}

// fail drops the open recording and surfaces the error in the HUD
func (p *Player) fail(err error) error {
	if p.recorder.Active() {
		p.recorder.Abort()
	}
	p.state.Abort(constants.MessageFailed)
	p.logger.Error().Err(err).Int("frame", p.state.FrameNumber).Msg("recording failed")
	return fmt.Errorf("recording: %w", err)
}

// RenderLoop records exactly one loop from frame 0 without waiting on a clock
// The loop is aborted when ctx is cancelled
func (p *Player) RenderLoop(ctx context.Context) (record.Result, error) {
	if p.recorder == nil {
		return record.Result{}, ErrNoRecorder
	}
	if p.state.Phase != sketch.PhaseIdle {
		return record.Result{}, ErrBusy
	}

	p.state.FrameNumber = 0
	p.Arm()
	done := p.state.Recordings + 1

	for p.state.Recordings < done {
		if err := ctx.Err(); err != nil {
			if p.recorder.Active() {
				p.recorder.Abort()
			}
			p.state.Abort(constants.MessageIdle)
			return record.Result{}, err
		}
		if err := p.Tick(); err != nil {
			return record.Result{}, err
		}
		if p.state.FrameNumber%p.settings.FrameRate == 0 {
			p.logger.Debug().Int("frame", p.state.FrameNumber).Int("total", p.state.TotalFrames).Msg("rendering")
		}
	}
	if err := p.Wait(); err != nil {
		return record.Result{}, err
	}
	if len(p.results) == 0 {
		return record.Result{}, errors.New("recording produced no result")
	}
	return p.results[len(p.results)-1], nil
}
