package player

import (
	"context"
	"errors"
	"image"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/record"
	"github.com/lixenwraith/spirograph/render"
	"github.com/lixenwraith/spirograph/sketch"
)

type fakeRecorder struct {
	player     *Player
	enc        *fakeEncoder
	active     bool
	starts     []time.Time
	startFrame []int
	captures   []int
	sizes      []image.Rectangle
	finished   int
	aborted    int
	failAt     int
}

func (r *fakeRecorder) Start(now time.Time) error {
	r.active = true
	r.starts = append(r.starts, now)
	r.startFrame = append(r.startFrame, r.player.State().FrameNumber)
	return nil
}

func (r *fakeRecorder) Capture(img image.Image) error {
	if r.failAt > 0 && len(r.captures)+1 == r.failAt {
		return errors.New("disk full")
	}
	r.captures = append(r.captures, r.player.State().FrameNumber)
	r.sizes = append(r.sizes, img.Bounds())
	return nil
}

func (r *fakeRecorder) Detach() (record.Encoder, error) {
	r.active = false
	r.finished++
	enc := r.enc
	if enc == nil {
		enc = &fakeEncoder{}
	}
	enc.frames = len(r.captures)
	return enc, nil
}

// fakeEncoder blocks Close on gate when set
type fakeEncoder struct {
	frames int
	gate   chan struct{}
	err    error
}

func (e *fakeEncoder) Add(image.Image) error { return nil }

func (e *fakeEncoder) Close() (record.Result, error) {
	if e.gate != nil {
		<-e.gate
	}
	if e.err != nil {
		return record.Result{}, e.err
	}
	return record.Result{Path: "loop.gif", Frames: e.frames, Bytes: 2048}, nil
}

func (r *fakeRecorder) Abort()       { r.active = false; r.aborted++ }
func (r *fakeRecorder) Active() bool { return r.active }

type fakeCues struct {
	armed, start, complete int
}

func (c *fakeCues) PlayArmed()          { c.armed++ }
func (c *fakeCues) PlayRecordStart()    { c.start++ }
func (c *fakeCues) PlayRecordComplete() { c.complete++ }

type fakeDisplay struct {
	size  int
	width int
	huds  []render.HUD
	last  image.Image
}

func (d *fakeDisplay) Present(img image.Image, hud render.HUD) {
	d.last = img
	d.huds = append(d.huds, hud)
}
func (d *fakeDisplay) PreviewSize() int { return d.size }
func (d *fakeDisplay) Width() int       { return d.width }

func testSettings() sketch.Settings {
	s := sketch.DefaultSettings()
	s.FrameRate = 10
	s.Runtime = time.Second
	return s
}

func testPalette(t *testing.T) render.Palette {
	t.Helper()
	pal, err := render.DefaultStyle().Palette()
	require.NoError(t, err)
	return pal
}

func newTestPlayer(t *testing.T, rec *fakeRecorder, cues *fakeCues, display *fakeDisplay) *Player {
	t.Helper()
	return newTestPlayerWith(t, rec, cues, display, false)
}

func newTestPlayerWith(t *testing.T, rec *fakeRecorder, cues *fakeCues, display *fakeDisplay, async bool) *Player {
	t.Helper()
	opts := Options{
		AsyncSave:  async,
		Settings:   testSettings(),
		Palette:    testPalette(t),
		Seed:       123456,
		RecordSize: 32,
		Clock:      NewMockTimeProvider(time.UnixMilli(1700000000000)),
	}
	if rec != nil {
		opts.Recorder = rec
	}
	if cues != nil {
		opts.Cues = cues
	}
	if display != nil {
		opts.Display = display
	}
	p, err := New(opts)
	require.NoError(t, err)
	if rec != nil {
		rec.player = p
	}
	return p
}

func TestRecordingCapturesOneLoopFromFrameZero(t *testing.T) {
	rec := &fakeRecorder{}
	cues := &fakeCues{}
	p := newTestPlayer(t, rec, cues, nil)

	for i := 0; i < 3; i++ {
		require.NoError(t, p.Tick())
	}
	require.True(t, p.Arm())
	assert.Equal(t, 1, cues.armed)
	assert.False(t, p.Arm(), "second arm is a no-op")

	for i := 0; i < 40 && p.State().Recordings == 0; i++ {
		require.NoError(t, p.Tick())
	}

	total := p.State().TotalFrames
	require.Equal(t, 10, total)
	require.Equal(t, []int{0}, rec.startFrame)
	require.Len(t, rec.captures, total)
	for i, frame := range rec.captures {
		assert.Equal(t, i, frame)
	}
	for _, b := range rec.sizes {
		assert.Equal(t, image.Rect(0, 0, 32, 32), b)
	}
	assert.Equal(t, 1, rec.finished)
	assert.Equal(t, 1, cues.start)
	assert.Equal(t, 1, cues.complete)
	assert.Equal(t, sketch.PhaseIdle, p.State().Phase)
	assert.Equal(t, constants.MessageComplete, p.State().Message)
	require.Len(t, p.Results(), 1)
	assert.Equal(t, total, p.Results()[0].Frames)
	assert.Equal(t, time.UnixMilli(1700000000000), rec.starts[0])
}

func TestAsyncSaveDoesNotBlockTick(t *testing.T) {
	gate := make(chan struct{})
	rec := &fakeRecorder{enc: &fakeEncoder{gate: gate}}
	cues := &fakeCues{}
	p := newTestPlayerWith(t, rec, cues, nil, true)

	require.True(t, p.Arm())
	for i := 0; i < 40 && p.State().Recordings == 0; i++ {
		require.NoError(t, p.Tick())
	}
	require.Equal(t, 1, rec.finished)

	// Close is still parked on the gate; frames keep coming
	assert.True(t, p.Saving())
	assert.Equal(t, constants.MessageSaving, p.State().Message)
	for i := 0; i < 3; i++ {
		require.NoError(t, p.Tick())
	}
	assert.Empty(t, p.Results())
	assert.Equal(t, 0, cues.complete)

	close(gate)
	require.NoError(t, p.Wait())
	assert.False(t, p.Saving())
	require.Len(t, p.Results(), 1)
	assert.Equal(t, p.State().TotalFrames, p.Results()[0].Frames)
	assert.Equal(t, 1, cues.complete)
	assert.Equal(t, constants.MessageComplete, p.State().Message)
}

func TestAsyncSaveCollectedByTick(t *testing.T) {
	rec := &fakeRecorder{}
	p := newTestPlayerWith(t, rec, nil, nil, true)

	require.True(t, p.Arm())
	for i := 0; i < 40 && p.State().Recordings == 0; i++ {
		require.NoError(t, p.Tick())
	}
	// The next ticks pick the result up without Wait
	for i := 0; i < 1000 && len(p.Results()) == 0; i++ {
		time.Sleep(time.Millisecond)
		require.NoError(t, p.Tick())
	}
	require.Len(t, p.Results(), 1)
	assert.False(t, p.Saving())
}

func TestAsyncSaveFailureReported(t *testing.T) {
	rec := &fakeRecorder{enc: &fakeEncoder{err: errors.New("disk full")}}
	p := newTestPlayerWith(t, rec, nil, nil, true)

	require.True(t, p.Arm())
	for i := 0; i < 40 && p.State().Recordings == 0; i++ {
		require.NoError(t, p.Tick())
	}
	err := p.Wait()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, p.Results())
	assert.Equal(t, constants.MessageFailed, p.State().Message)
}

func TestSyncSaveFailureReturnedFromTick(t *testing.T) {
	rec := &fakeRecorder{enc: &fakeEncoder{err: errors.New("disk full")}}
	p := newTestPlayer(t, rec, nil, nil)

	require.True(t, p.Arm())
	var err error
	for i := 0; i < 40 && err == nil; i++ {
		err = p.Tick()
	}
	require.Error(t, err)
	assert.Equal(t, constants.MessageFailed, p.State().Message)
	assert.Equal(t, sketch.PhaseIdle, p.State().Phase)
}

func TestArmWithoutRecorder(t *testing.T) {
	p := newTestPlayer(t, nil, nil, nil)
	assert.False(t, p.Arm())
	assert.Equal(t, sketch.PhaseIdle, p.State().Phase)

	_, err := p.RenderLoop(context.Background())
	require.ErrorIs(t, err, ErrNoRecorder)
}

func TestCaptureFailureAbortsRecording(t *testing.T) {
	rec := &fakeRecorder{failAt: 3}
	p := newTestPlayer(t, rec, nil, nil)
	require.True(t, p.Arm())

	var err error
	for i := 0; i < 5 && err == nil; i++ {
		err = p.Tick()
	}
	require.Error(t, err)
	assert.Equal(t, 1, rec.aborted)
	assert.Equal(t, sketch.PhaseIdle, p.State().Phase)
	assert.Equal(t, constants.MessageFailed, p.State().Message)
	assert.Len(t, rec.captures, 2)

	// Animation keeps running
	require.NoError(t, p.Tick())
}

func TestReseed(t *testing.T) {
	rec := &fakeRecorder{}
	p := newTestPlayer(t, rec, nil, nil)
	assert.Equal(t, int64(123456), p.Parameters().Seed)

	require.NoError(t, p.Tick())
	require.NoError(t, p.Reseed(654321))
	assert.Equal(t, int64(654321), p.Parameters().Seed)
	assert.Equal(t, 0, p.State().FrameNumber)

	require.True(t, p.Arm())
	require.ErrorIs(t, p.Reseed(111111), ErrBusy)
	assert.Equal(t, int64(654321), p.Parameters().Seed)
}

func TestReseedZeroPicksRandomSeed(t *testing.T) {
	p := newTestPlayer(t, nil, nil, nil)
	require.NoError(t, p.Reseed(0))
	seed := p.Parameters().Seed
	assert.GreaterOrEqual(t, seed, int64(constants.SeedMin))
	assert.Less(t, seed, int64(constants.SeedMax))
}

func TestSameSeedSameParameters(t *testing.T) {
	a := newTestPlayer(t, nil, nil, nil)
	b := newTestPlayer(t, nil, nil, nil)
	assert.Equal(t, a.Parameters(), b.Parameters())
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestDisplayReceivesFramesAndHUD(t *testing.T) {
	display := &fakeDisplay{size: 20, width: 40}
	p := newTestPlayer(t, nil, nil, display)

	require.NoError(t, p.Tick())
	require.NoError(t, p.Tick())

	require.Len(t, display.huds, 2)
	assert.Equal(t, "0 / 10", display.huds[0].Counter)
	assert.Equal(t, "1 / 10", display.huds[1].Counter)
	assert.Equal(t, constants.MessageIdle, display.huds[0].Message)
	require.NotNil(t, display.last)
	assert.Equal(t, image.Rect(0, 0, 20, 20), display.last.Bounds())

	display.size = 10
	require.NoError(t, p.Tick())
	assert.Equal(t, image.Rect(0, 0, 10, 10), display.last.Bounds())
}

func TestFrameWraps(t *testing.T) {
	p := newTestPlayer(t, nil, nil, nil)
	for i := 0; i <= p.State().TotalFrames; i++ {
		require.NoError(t, p.Tick())
	}
	assert.Equal(t, 0, p.State().FrameNumber)
}

func TestNewRejectsBadRecordSize(t *testing.T) {
	_, err := New(Options{
		Settings: testSettings(),
		Palette:  testPalette(t),
		Seed:     1,
		Recorder: &fakeRecorder{},
	})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestNewRejectsBadSettings(t *testing.T) {
	s := testSettings()
	s.FrameRate = 0
	_, err := New(Options{Settings: s, Palette: testPalette(t), Seed: 1})
	require.ErrorIs(t, err, sketch.ErrInvalidSettings)
}

func TestRenderLoopWritesPNGSequence(t *testing.T) {
	opts := record.DefaultOptions()
	opts.Format = string(record.FormatPNG)
	opts.Dir = t.TempDir()
	opts.Size = 16

	settings := testSettings()
	settings.FrameRate = 5
	pal := testPalette(t)

	rec, err := record.NewRecorder(opts, settings.FrameRate, nil)
	require.NoError(t, err)

	p, err := New(Options{
		Settings:   settings,
		Palette:    pal,
		Seed:       424242,
		Recorder:   rec,
		RecordSize: opts.Size,
		Clock:      NewMockTimeProvider(time.UnixMilli(99)),
	})
	require.NoError(t, err)

	// Start mid-loop; the recording still begins at frame 0
	require.NoError(t, p.Tick())
	require.NoError(t, p.Tick())

	res, err := p.RenderLoop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, res.Frames)
	assert.Positive(t, res.Bytes)

	entries, err := os.ReadDir(res.Path)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
	assert.False(t, rec.Active())
}

func TestRenderLoopCancelled(t *testing.T) {
	rec := &fakeRecorder{}
	p := newTestPlayer(t, rec, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.RenderLoop(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, sketch.PhaseIdle, p.State().Phase)
	assert.Empty(t, rec.captures)
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)
	assert.True(t, mock.Now().Equal(start))

	mock.Advance(time.Hour)
	assert.True(t, mock.Now().Equal(start.Add(time.Hour)))

	next := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.SetTime(next)
	assert.True(t, mock.Now().Equal(next))
}
