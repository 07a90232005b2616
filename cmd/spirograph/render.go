package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/spirograph/logging"
	"github.com/lixenwraith/spirograph/player"
)

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render exactly one loop to a file and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRender(ctx, cmd)
		},
	}
}

func runRender(ctx context.Context, cmd *cobra.Command) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logging.SetupConsole(cmd.ErrOrStderr(), conf.Log.Level)

	palette, err := conf.Style.Palette()
	if err != nil {
		return err
	}
	recorder, err := newRecorder(conf, palette)
	if err != nil {
		return err
	}

	p, err := player.New(player.Options{
		Settings:   conf.Sketch,
		Palette:    palette,
		Seed:       conf.Sketch.Seed,
		Recorder:   recorder,
		RecordSize: conf.Record.Size,
	})
	if err != nil {
		return err
	}

	started := time.Now()
	res, err := p.RenderLoop(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("path", res.Path).
		Int("frames", res.Frames).
		Str("size", humanize.Bytes(uint64(max(res.Bytes, 0)))).
		Dur("elapsed", time.Since(started)).
		Msg("render finished")
	fmt.Fprintln(cmd.OutOrStdout(), res.Path)
	return nil
}
