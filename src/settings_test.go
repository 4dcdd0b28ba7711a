package bell103

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SettingsRoundTrip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "s.yaml")

	var settings = Settings{Config: Bell202Config(), Debug: true}
	require.NoError(t, SaveSettings(path, settings))

	var loaded, err = LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, settings, loaded)

	var data, _ = os.ReadFile(path)
	assert.Contains(t, string(data), "sample_rate: 44100")
	assert.Contains(t, string(data), "debug: true")
}

func Test_SettingsPartialFile(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte("baud_rate: 150\n"), 0o600))

	var loaded, err = LoadSettings(path)
	require.NoError(t, err)

	var want = DefaultSettings()
	want.BaudRate = 150

	assert.Equal(t, want, loaded)
}

func Test_SettingsErrors(t *testing.T) {
	var dir = t.TempDir()

	var settings, missingErr = LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, missingErr, fs.ErrNotExist)
	assert.Equal(t, DefaultSettings(), settings)

	var bad = filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sample_rate: [1, 2"), 0o600))

	var _, parseErr = LoadSettings(bad)
	assert.Error(t, parseErr)

	var invalid = filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("mark_freq: 1070\n"), 0o600))

	var _, invalidErr = LoadSettings(invalid)
	assert.ErrorIs(t, invalidErr, ErrInvalidConfig)

	assert.ErrorIs(t, SaveSettings(filepath.Join(dir, "x.yaml"), Settings{}), ErrInvalidConfig)
}
