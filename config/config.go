// Package config contains the spirograph Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lixenwraith/spirograph/constants"
	"github.com/lixenwraith/spirograph/record"
	"github.com/lixenwraith/spirograph/render"
	"github.com/lixenwraith/spirograph/sketch"
)

// EnvPrefix namespaces environment overrides, e.g. SPIROGRAPH_SKETCH_SEED
const EnvPrefix = "SPIROGRAPH"

type Config struct {
	// Sketch holds the curve ranges, loop timing and seed.
	Sketch sketch.Settings `mapstructure:"sketch" json:"sketch" toml:"sketch" yaml:"sketch"`
	// Style is the look of the rendered curve.
	Style render.Style `mapstructure:"style" json:"style" toml:"style" yaml:"style"`
	// Record configures loop export.
	Record record.Options `mapstructure:"record" json:"record" toml:"record" yaml:"record"`
	// HUD toggles the terminal overlay. Never part of recorded frames.
	HUD HUD `mapstructure:"hud" json:"hud" toml:"hud" yaml:"hud"`
	// Audio toggles recording cues.
	Audio Audio `mapstructure:"audio" json:"audio" toml:"audio" yaml:"audio"`
	// Log is a configuration for logging.
	Log Log `mapstructure:"log" json:"log" toml:"log" yaml:"log"`
}

type HUD struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" toml:"enabled" yaml:"enabled"`
}

type Audio struct {
	Enabled bool    `mapstructure:"enabled" json:"enabled" toml:"enabled" yaml:"enabled"`
	Volume  float64 `mapstructure:"volume" json:"volume" toml:"volume" yaml:"volume"`
}

type Log struct {
	// Level for console logging: trace, debug, info, warn, error or disabled.
	Level string `mapstructure:"level" json:"level" toml:"level" yaml:"level"`
	// Debug enables the rotating file log in interactive mode.
	Debug bool `mapstructure:"debug" json:"debug" toml:"debug" yaml:"debug"`
	// Dir is where the debug log file lives.
	Dir string `mapstructure:"dir" json:"dir" toml:"dir" yaml:"dir"`
}

type Meta struct {
	FileNotFound bool
	UnknownKeys  []string
}

// Validate checks every section that can be checked before use
func (c Config) Validate() error {
	if err := c.Sketch.Validate(); err != nil {
		return err
	}
	if _, err := c.Style.Palette(); err != nil {
		return err
	}
	if err := c.Record.Validate(); err != nil {
		return err
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("audio volume %v outside [0,1]", c.Audio.Volume)
	}
	return nil
}

// flagKeys maps command line flags to config keys
var flagKeys = map[string]string{
	"seed":          "sketch.seed",
	"runtime":       "sketch.runtime",
	"noise":         "sketch.noise",
	"angle_unit":    "sketch.angle_unit",
	"record.format": "record.format",
	"record.dir":    "record.dir",
	"record.size":   "record.size",
	"hud.enabled":   "hud.enabled",
	"audio.enabled": "audio.enabled",
	"log.level":     "log.level",
	"log.debug":     "log.debug",
	"log.dir":       "log.dir",
}

// DefineFlags registers persistent flags shared by every subcommand
func DefineFlags(rootCmd *cobra.Command) {
	def := Default()
	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "config.toml", "path to config file")
	f.Int64P("seed", "", 0, "parameter and noise seed, 0 picks one at random")
	f.DurationP("runtime", "", def.Sketch.Runtime, "length of one animation loop")
	f.StringP("noise", "", def.Sketch.Noise, "noise field: simplex or perlin")
	f.StringP("angle_unit", "", def.Sketch.AngleUnit, "curve trig unit: radians or degrees")
	f.StringP("record.format", "", def.Record.Format, "recording format: gif, apng or png")
	f.StringP("record.dir", "", def.Record.Dir, "directory recordings are written to")
	f.IntP("record.size", "", def.Record.Size, "recorded frame size in pixels")
	f.BoolP("hud.enabled", "", def.HUD.Enabled, "show the progress overlay")
	f.BoolP("audio.enabled", "", def.Audio.Enabled, "play recording cues")
	f.StringP("log.level", "", def.Log.Level, "console log level for headless rendering")
	f.BoolP("log.debug", "", def.Log.Debug, "write a debug log file in interactive mode")
	f.StringP("log.dir", "", def.Log.Dir, "directory for the debug log file")
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Sketch: sketch.DefaultSettings(),
		Style:  render.DefaultStyle(),
		Record: record.DefaultOptions(),
		HUD:    HUD{Enabled: true},
		Audio:  Audio{Enabled: true, Volume: constants.CueVolume},
		Log:    Log{Level: "info", Dir: "logs"},
	}
}

// setDefaults registers every leaf of Default so environment overrides resolve
func setDefaults(v *viper.Viper) error {
	var m map[string]any
	if err := mapstructure.Decode(Default(), &m); err != nil {
		return err
	}
	for key, value := range flatten("", m) {
		v.SetDefault(key, value)
	}
	return nil
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, val := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := val.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = val
	}
	return out
}

func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))

	if err := setDefaults(v); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error setting defaults: %w", err)
	}

	if cmd != nil {
		for flag, key := range flagKeys {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	meta := Meta{}

	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var configFileNotFoundError *os.PathError
			if errors.As(err, &configFileNotFoundError) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := &Config{}

	err := v.Unmarshal(conf)
	if err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}

	meta.UnknownKeys = findUnknownKeys(v.AllSettings(), reflect.TypeOf(*conf), "")
	sort.Strings(meta.UnknownKeys)

	return *conf, meta, nil
}

// findUnknownKeys reports keys in data with no matching mapstructure tag
func findUnknownKeys(data map[string]any, typ reflect.Type, parentKey string) []string {
	validKeys := make(map[string]reflect.StructField)
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if tag := field.Tag.Get("mapstructure"); tag != "" {
			validKeys[tag] = field
		}
	}

	var unknownKeys []string
	for key, value := range data {
		fullKey := key
		if parentKey != "" {
			fullKey = parentKey + "." + key
		}
		field, exists := validKeys[key]
		if !exists {
			unknownKeys = append(unknownKeys, fullKey)
			continue
		}
		if field.Type.Kind() != reflect.Struct {
			continue
		}
		if nested, ok := value.(map[string]any); ok {
			unknownKeys = append(unknownKeys, findUnknownKeys(nested, field.Type, fullKey)...)
		}
	}
	return unknownKeys
}
