package bell103

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_OutputFileName(t *testing.T) {
	var now = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	var cases = map[string]string{
		"encoded_message.wav": "encoded_message.wav",
		"out":                 "out.wav",
		"OUT.WAV":             "OUT.WAV",
		"msg_%Y%m%d_%H%M%S":   "msg_20240309_140506.wav",
		"dir/x.txt":           "dir/x.txt.wav",
	}

	for pattern, want := range cases {
		var got, err = outputFileName(pattern, now)
		require.NoError(t, err, pattern)
		assert.Equal(t, want, got, pattern)
	}
}

func Test_DecodedTextFileName(t *testing.T) {
	assert.Equal(t, "a/b/hello_decoded.txt", decodedTextFileName("a/b/hello.wav"))
	assert.Equal(t, "noext_decoded.txt", decodedTextFileName("noext"))
}

func Test_TextDiffs(t *testing.T) {
	assert.Empty(t, textDiffs("same", "same", 5))

	assert.Equal(t, []string{"position 1: expected 'р', got 'x'"}, textDiffs("Привет", "Пxивет", 5))

	var diffs = textDiffs("abcdefgh", "ABCDEFGH", 5)
	assert.Len(t, diffs, 5)

	assert.Equal(t, []string{
		"length: expected 3 characters, got 1",
		"position 1: expected 'b', got (none)",
		"position 2: expected 'c', got (none)",
	}, textDiffs("abc", "a", 5))
}

func Test_GenFSKMessage(t *testing.T) {
	var file = filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(file, []byte("from file\r\n"), 0o600))

	var text, err = genFSKMessage(file, []string{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	text, err = genFSKMessage("", []string{"two", "words"})
	require.NoError(t, err)
	assert.Equal(t, "two words", text)

	_, err = genFSKMessage("", nil)
	assert.Error(t, err)

	_, err = genFSKMessage(filepath.Join(t.TempDir(), "missing"), nil)
	assert.Error(t, err)
}

func Test_LoadToolSettings(t *testing.T) {
	var logger = NewLogger(io.Discard, false)

	var settings, err = loadToolSettings("", logger)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	_, err = loadToolSettings(filepath.Join(t.TempDir(), "missing.yaml"), logger)
	assert.Error(t, err, "a file asked for by name has to exist")
}

func Test_NewLogger(t *testing.T) {
	var buf bytes.Buffer

	var logger = NewLogger(&buf, false)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("shown", "bits", 64)

	SetDebug(logger, true)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
	logger.Debug("now shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "bell103")
	assert.Contains(t, buf.String(), "bits=64")
	assert.Contains(t, buf.String(), "now shown")
}

func Test_LoadToolSettingsDebug(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "debug.yaml")

	var settings = DefaultSettings()
	settings.Debug = true
	require.NoError(t, SaveSettings(path, settings))

	var logger = NewLogger(io.Discard, false)

	var loaded, err = loadToolSettings(path, logger)
	require.NoError(t, err)
	assert.True(t, loaded.Debug)
	assert.Equal(t, log.DebugLevel, logger.GetLevel())
}
