// Package logging wires zerolog for the two run modes: a rotating debug file
// while the terminal belongs to the preview, console output when headless
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	logFileName = "spirograph.log"
	maxLogSize  = 10 * 1024 * 1024 // 10 MiB
)

var logLevelMatches = map[string]zerolog.Level{
	"TRACE":    zerolog.TraceLevel,
	"DEBUG":    zerolog.DebugLevel,
	"INFO":     zerolog.InfoLevel,
	"WARN":     zerolog.WarnLevel,
	"ERROR":    zerolog.ErrorLevel,
	"FATAL":    zerolog.FatalLevel,
	"DISABLED": zerolog.Disabled,
	"NONE":     zerolog.Disabled,
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(level)]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// SetupFile routes all logging to dir/spirograph.log when debug is set and
// discards it otherwise. Never writes to stdout or stderr; a nil file means
// logging is off
func SetupFile(debug bool, dir string) *os.File {
	if !debug {
		disable()
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		disable()
		return nil
	}

	path := filepath.Join(dir, logFileName)
	rotate(path, time.Now())

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		disable()
		return nil
	}

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	stdlog.SetOutput(f)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime | stdlog.Lmicroseconds)
	return f
}

// rotate moves an oversized log aside as spirograph_<timestamp>.log
func rotate(path string, now time.Time) {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= maxLogSize {
		return
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rotated := filepath.Join(filepath.Dir(path), fmt.Sprintf("%s_%s.log", base, now.Format("20060102_150405")))
	_ = os.Rename(path, rotated)
}

func disable() {
	log.Logger = zerolog.Nop()
	stdlog.SetOutput(io.Discard)
}

// SetupConsole logs to w, human readable on a terminal and JSON otherwise
// Headless runs pass stderr so stdout stays free for command output
func SetupConsole(w io.Writer, level string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	if isTerminal(w) {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "2006-01-02 15:04:05",
		})
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// isTerminal reports whether w is a file backed by a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok || runtime.GOOS == "windows" {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
