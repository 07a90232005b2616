package logging

import (
	"bytes"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreGlobals(t *testing.T) {
	t.Helper()
	logger := log.Logger
	level := zerolog.GlobalLevel()
	out := stdlog.Writer()
	t.Cleanup(func() {
		log.Logger = logger
		zerolog.SetGlobalLevel(level)
		stdlog.SetOutput(out)
	})
}

func TestSetupFile_DisabledByDefault(t *testing.T) {
	restoreGlobals(t)
	dir := filepath.Join(t.TempDir(), "logs")

	f := SetupFile(false, dir)
	if f != nil {
		f.Close()
		t.Fatal("Expected nil log file when debug=false")
	}

	assert.Equal(t, io.Discard, stdlog.Writer())
	assert.Equal(t, zerolog.Disabled, log.Logger.GetLevel())

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err), "disabled logging must not create the directory")
}

func TestSetupFile_EnabledWithDebug(t *testing.T) {
	restoreGlobals(t)
	dir := filepath.Join(t.TempDir(), "logs")

	f := SetupFile(true, dir)
	require.NotNil(t, f)
	defer f.Close()

	log.Info().Int64("seed", 123456).Msg("test message")
	stdlog.Println("stdlib message")

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"seed":123456`)
	assert.Contains(t, string(data), "stdlib message")
}

func TestSetupFile_Rotation(t *testing.T) {
	restoreGlobals(t)
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)

	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0644))

	f := SetupFile(true, dir)
	require.NotNil(t, f)
	defer f.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	assert.True(t, rotatedFound, "expected a rotated log file")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.LessOrEqual(t, info.Size(), int64(maxLogSize))
}

func TestRotateKeepsSmallFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	require.NoError(t, os.WriteFile(path, []byte("small"), 0644))

	rotate(path, time.Now())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, logFileName, entries[0].Name())
}

func TestRotateName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, logFileName)
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0644))

	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	rotate(path, now)

	_, err := os.Stat(filepath.Join(dir, "spirograph_20240309_140506.log"))
	assert.NoError(t, err)
}

func TestSetupFile_NoStdoutStderr(t *testing.T) {
	restoreGlobals(t)

	f := SetupFile(true, t.TempDir())
	require.NotNil(t, f)
	defer f.Close()

	output := stdlog.Writer()
	assert.NotEqual(t, os.Stdout, output)
	assert.NotEqual(t, os.Stderr, output)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"none", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetupConsoleWritesToWriter(t *testing.T) {
	restoreGlobals(t)
	var buf bytes.Buffer

	SetupConsole(&buf, "warn")
	log.Info().Msg("quiet")
	log.Warn().Str("path", "out.gif").Msg("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, `"path":"out.gif"`)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))

	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
