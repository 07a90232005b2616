package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/spirograph/config"
	"github.com/lixenwraith/spirograph/record"
	"github.com/lixenwraith/spirograph/render"
)

var version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spirograph",
		Short: "Noise-driven spirograph animation with seamless loop recording",
		Long: "Animates a Maurer-rose style curve whose parameters drift along looping noise.\n" +
			"Click or press r to record the next full loop, h toggles the overlay,\n" +
			"n draws a new seed while idle, q or Esc quits.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd)
		},
	}
	config.DefineFlags(rootCmd)
	rootCmd.AddCommand(newRenderCommand(), newVersionCommand())
	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spirograph %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		},
	}
}

// loadConfig resolves flags, environment and the config file into a validated Config
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	conf, meta, err := config.GetConfig(cmd, file)
	if err != nil {
		return config.Config{}, err
	}
	if meta.FileNotFound && cmd.Flags().Changed("config") {
		return config.Config{}, fmt.Errorf("config file %s not found", file)
	}
	for _, key := range meta.UnknownKeys {
		log.Warn().Str("key", key).Msg("unknown key in config")
	}
	if err := conf.Validate(); err != nil {
		return config.Config{}, err
	}
	return conf, nil
}

// newRecorder builds a recorder quantizing to the style's background-to-stroke ramp
func newRecorder(conf config.Config, palette render.Palette) (*record.Recorder, error) {
	ramp := record.Ramp(palette.Background.NRGBA(1), palette.Stroke.NRGBA(1), 256)
	return record.NewRecorder(conf.Record, conf.Sketch.FrameRate, ramp)
}
