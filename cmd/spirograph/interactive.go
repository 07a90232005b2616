package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/spirograph/audio"
	"github.com/lixenwraith/spirograph/config"
	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/logging"
	"github.com/lixenwraith/spirograph/player"
	"github.com/lixenwraith/spirograph/render"
	"github.com/lixenwraith/spirograph/sketch"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionArm
	actionToggleHUD
	actionReseed
)

// keyAction maps a key press to an action
func keyAction(key tcell.Key, r rune) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actionQuit
		case 'r', 'R', ' ':
			return actionArm
		case 'h', 'H':
			return actionToggleHUD
		case 'n', 'N':
			return actionReseed
		}
	}
	return actionNone
}

type app struct {
	screen    tcell.Screen
	presenter *render.Presenter
	player    *player.Player
	mouseDown bool
}

func runInteractive(cmd *cobra.Command) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logFile := logging.SetupFile(conf.Log.Debug, conf.Log.Dir)
	if logFile != nil {
		defer logFile.Close()
	}

	palette, err := conf.Style.Palette()
	if err != nil {
		return err
	}
	recorder, err := newRecorder(conf, palette)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	// Panic recovery: ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSPIROGRAPH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	defer screen.Fini()

	opts := player.Options{
		Settings:   conf.Sketch,
		Palette:    palette,
		Seed:       conf.Sketch.Seed,
		Recorder:   recorder,
		RecordSize: conf.Record.Size,
		AsyncSave:  true,
	}

	if conf.Audio.Enabled {
		sound := audio.NewSoundManager()
		sound.SetVolume(conf.Audio.Volume)
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without cues")
		}
		defer sound.Cleanup()
		opts.Cues = sound
	}

	presenter := render.NewPresenter(screen, palette.Background, conf.HUD.Enabled)
	opts.Display = presenter

	p, err := player.New(opts)
	if err != nil {
		return err
	}

	a := &app{screen: screen, presenter: presenter, player: p}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := a.run(ctx, conf)

	// Quitting mid-save still writes the file
	if p.Saving() {
		log.Info().Msg("waiting for recording to be written")
	}
	if err := p.Wait(); err != nil {
		log.Error().Err(err).Msg("save on exit")
	}
	log.Info().Str("session", p.Session()).Int("recordings", len(p.Results())).Msg("session closed")
	return runErr
}

func (a *app) run(ctx context.Context, conf config.Config) error {
	ticker := time.NewTicker(constants.FrameInterval(conf.Sketch.FrameRate))
	defer ticker.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eventChan := pollEvents(ctx, a.screen.PollEvent)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventChan:
			if !ok || !a.handleInput(ev) {
				return nil
			}
		case <-ticker.C:
			if err := a.player.Tick(); err != nil {
				log.Error().Err(err).Msg("frame")
			}
		}
	}
}

// pollEvents forwards events from poll until it returns nil or ctx is done
// The channel is closed when the reader exits
func pollEvents(ctx context.Context, poll func() tcell.Event) <-chan tcell.Event {
	eventChan := make(chan tcell.Event, 100)
	go func() {
		defer close(eventChan)
		for {
			ev := poll()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return eventChan
}

// handleInput applies one terminal event, false quits
func (a *app) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(keyAction(ev.Key(), ev.Rune()))

	case *tcell.EventMouse:
		// Arm on press, not on every motion report while held
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !a.mouseDown {
			a.apply(actionArm)
		}
		a.mouseDown = pressed

	case *tcell.EventResize:
		w, h := a.screen.Size()
		a.presenter.Resize(w, h)
		a.screen.Sync()
	}
	return true
}

func (a *app) apply(act action) bool {
	switch act {
	case actionQuit:
		return false
	case actionArm:
		a.player.Arm()
	case actionToggleHUD:
		a.presenter.HUDEnabled = !a.presenter.HUDEnabled
	case actionReseed:
		if a.player.State().Phase != sketch.PhaseIdle {
			return true
		}
		if err := a.player.Reseed(0); err != nil {
			log.Error().Err(err).Msg("reseed")
		}
	}
	return true
}
