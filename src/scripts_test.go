package bell103

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pflag (not unreasonably) assumes it only ever gets called once. But the
// tools are meant to be used as "generate this, then decode that". Running
// them in Go tests means doing some slight bodges.
func setupPflag(args []string) {
	os.Args = args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
}

func Test_GenerateThenDecode(t *testing.T) {
	var tmpdir = t.TempDir()
	var file = filepath.Join(tmpdir, "hello.wav")
	var metrics = filepath.Join(tmpdir, "decode.prom")

	setupPflag([]string{"fskgen", "-o", file, "Hello", "World!"})
	AssertOutputContains(t, GenFSKMain, "Wrote 12 bytes of text")

	setupPflag([]string{"fskdecode", "-S", "--metrics-file", metrics, file})
	AssertOutputContains(t, DecodeFSKMain, file+": Hello World!")

	var saved, readErr = os.ReadFile(filepath.Join(tmpdir, "hello_decoded.txt"))
	require.NoError(t, readErr)
	assert.Equal(t, "Hello World!", string(saved))

	var prom, promErr = os.ReadFile(metrics)
	require.NoError(t, promErr)
	assert.Contains(t, string(prom), `bell103_frames_decoded_total{status="decoded"} 1`)
}

func Test_GenerateFromFileBell202(t *testing.T) {
	var tmpdir = t.TempDir()
	var input = filepath.Join(tmpdir, "message.txt")
	var text = filepath.Join(tmpdir, "out.txt")

	require.NoError(t, os.WriteFile(input, []byte("Привет мир!\n"), 0o600))

	// No .wav on the end, it gets added.
	setupPflag([]string{"fskgen", "-r", "44100", "-b", "1200", "-m", "1200", "-s", "2200", "-f", input, "-o", filepath.Join(tmpdir, "b202")})
	GenFSKMain()

	var w, readErr = ReadWAVFile(filepath.Join(tmpdir, "b202.wav"))
	require.NoError(t, readErr)
	assert.Equal(t, 44100, w.SampleRate)

	setupPflag([]string{"fskdecode", "-b", "1200", "-m", "1200", "-s", "2200", "--survey", "-O", text, filepath.Join(tmpdir, "b202.wav")})

	var output = CaptureOutput(t, DecodeFSKMain)
	assert.Contains(t, output, "strongest tones")
	assert.Contains(t, output, ": Привет мир!")

	var saved, textErr = os.ReadFile(text)
	require.NoError(t, textErr)
	assert.Equal(t, "Привет мир!", string(saved))
}

func Test_GenerateWithNoise(t *testing.T) {
	var tmpdir = t.TempDir()
	var clean = filepath.Join(tmpdir, "clean.wav")
	var noisy = filepath.Join(tmpdir, "noisy.wav")

	setupPflag([]string{"fskgen", "-o", clean, "noise"})
	GenFSKMain()

	setupPflag([]string{"fskgen", "-n", "0.1", "--noise-seed", "3", "-o", noisy, "noise"})
	GenFSKMain()

	var a, aErr = ReadWAVFile(clean)
	require.NoError(t, aErr)

	var b, bErr = ReadWAVFile(noisy)
	require.NoError(t, bErr)

	require.Equal(t, a.Len(), b.Len())
	assert.NotEqual(t, a.Samples, b.Samples)
}

func Test_SelfTest(t *testing.T) {
	var keep = t.TempDir()

	setupPflag([]string{"fsktest", "--keep", keep})

	var output = CaptureOutput(t, SelfTestMain)
	assert.Contains(t, output, "PASS: \"Привет мир!\"")
	assert.Contains(t, output, "6 of 6 passed")

	var files, globErr = filepath.Glob(filepath.Join(keep, "selftest_*.wav"))
	require.NoError(t, globErr)
	assert.Len(t, files, 6)

	setupPflag([]string{"fsktest", "-r", "44100", "-b", "1200", "-m", "1200", "-s", "2200", "-t", "one", "-t", "two"})
	AssertOutputContains(t, SelfTestMain, "2 of 2 passed")
}

func Test_SelfTestCleansUp(t *testing.T) {
	var tmp = t.TempDir()
	t.Setenv("TMPDIR", tmp)

	var settingsFile = filepath.Join(tmp, "debug.yaml")
	var settings = DefaultSettings()
	settings.Debug = true
	require.NoError(t, SaveSettings(settingsFile, settings))

	setupPflag([]string{"fsktest", "-c", settingsFile, "-t", "tidy"})
	AssertOutputContains(t, SelfTestMain, "1 of 1 passed")

	var entries, readErr = os.ReadDir(tmp)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "debug.yaml", entries[0].Name())
}

func Test_ConfigTool(t *testing.T) {
	var tmpdir = t.TempDir()
	var settingsFile = filepath.Join(tmpdir, "modem.yaml")
	var wav = filepath.Join(tmpdir, "configured.wav")

	setupPflag([]string{"fskconfig", "-c", settingsFile})
	AssertOutputContains(t, ConfigMain, "Sample rate:      8000 Hz")

	setupPflag([]string{"fskconfig", "-c", settingsFile, "-r", "44100", "-b", "1200", "-m", "1200", "-s", "2200", "--debug"})
	AssertOutputContains(t, ConfigMain, "Samples per bit:  37")

	var settings, loadErr = LoadSettings(settingsFile)
	require.NoError(t, loadErr)
	assert.Equal(t, Bell202Config(), settings.Config)
	assert.True(t, settings.Debug)

	// The other tools pick it up.
	setupPflag([]string{"fskgen", "-c", settingsFile, "-o", wav, "configured"})
	GenFSKMain()

	setupPflag([]string{"fskdecode", "-c", settingsFile, wav})
	AssertOutputContains(t, DecodeFSKMain, ": configured")

	setupPflag([]string{"fskconfig", "-c", settingsFile, "--reset"})
	AssertOutputContains(t, ConfigMain, "Debug:            false")

	settings, loadErr = LoadSettings(settingsFile)
	require.NoError(t, loadErr)
	assert.Equal(t, DefaultSettings(), settings)
}

func Test_ConfigToolResetsBadFile(t *testing.T) {
	var settingsFile = filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(settingsFile, []byte("sample_rate: 8000\nbaud_rate: 0\n"), 0o600))

	var _, badErr = LoadSettings(settingsFile)
	require.ErrorIs(t, badErr, ErrInvalidConfig)

	setupPflag([]string{"fskconfig", "-c", settingsFile, "--reset"})
	AssertOutputContains(t, ConfigMain, "Baud rate:        300")

	var settings, loadErr = LoadSettings(settingsFile)
	require.NoError(t, loadErr)
	assert.Equal(t, DefaultSettings(), settings)
}

func Test_GenerateWithNoiseDecodes(t *testing.T) {
	var file = filepath.Join(t.TempDir(), "noisy.wav")

	setupPflag([]string{"fskgen", "-n", "0.05", "--noise-seed", "7", "-o", file, "noisy"})
	GenFSKMain()

	setupPflag([]string{"fskdecode", file})
	AssertOutputContains(t, DecodeFSKMain, file+": noisy")
}

func Test_Version(t *testing.T) {
	setupPflag([]string{"fskgen", "--version"})
	AssertOutputContains(t, GenFSKMain, "bell103 - Version")
}
