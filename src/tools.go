package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Bits shared by the command line tools.
 *
 * Description:	Every tool starts from the settings file and lets
 *		command line options override it.  An option only
 *		overrides when it was actually given, so the pflag
 *		defaults shown in the help are the built-in defaults,
 *		not the effective values.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

type configFlags struct {
	sampleRate *int
	baud       *int
	mark       *float64
	space      *float64
}

// registerConfigFlags adds -b, -m, -s and, if withSampleRate, -r.
// Decoding takes the sample rate from the file so it has no -r.
func registerConfigFlags(withSampleRate bool) *configFlags {
	var f = &configFlags{}

	if withSampleRate {
		f.sampleRate = pflag.IntP("rate", "r", DEFAULT_SAMPLE_RATE, "Audio sample rate, Hz.")
	}

	f.baud = pflag.IntP("baud", "b", DEFAULT_BAUD, "Bits per second.")
	f.mark = pflag.Float64P("mark", "m", DEFAULT_MARK_FREQ, "Mark (1) frequency, Hz.")
	f.space = pflag.Float64P("space", "s", DEFAULT_SPACE_FREQ, "Space (0) frequency, Hz.")

	return f
}

func (f *configFlags) apply(cfg Config) Config {
	if f.sampleRate != nil && pflag.CommandLine.Changed("rate") {
		cfg.SampleRate = *f.sampleRate
	}

	if pflag.CommandLine.Changed("baud") {
		cfg.BaudRate = *f.baud
	}

	if pflag.CommandLine.Changed("mark") {
		cfg.MarkFreq = *f.mark
	}

	if pflag.CommandLine.Changed("space") {
		cfg.SpaceFreq = *f.space
	}

	return cfg
}

/*------------------------------------------------------------------
 *
 * Name:	loadToolSettings
 *
 * Purpose:	Get the settings a tool starts from.
 *
 * Inputs:	path	- From -c.  Empty means DEFAULT_SETTINGS_FILE
 *			  if there is one, and built-in defaults if not.
 *
 * Returns:	Settings, or an error for a file that was asked for
 *		explicitly but can't be used.
 *
 * Description:	debug: true in the file turns on debug output for
 *		logger, same as -d.
 *
 *----------------------------------------------------------------*/

func loadToolSettings(path string, logger *log.Logger) (Settings, error) {
	var explicit = path != ""
	if !explicit {
		path = DEFAULT_SETTINGS_FILE
	}

	var settings, loadErr = LoadSettings(path)

	switch {
	case loadErr == nil:
		if settings.Debug {
			SetDebug(logger, true)
		}

		logger.Debug("Loaded settings", "file", path)
	case !explicit && errors.Is(loadErr, fs.ErrNotExist):
		logger.Debug("No settings file, using defaults", "file", path)
		loadErr = nil
	}

	return settings, loadErr
}

// outputFileName expands strftime patterns and makes sure of a .wav suffix.
func outputFileName(pattern string, now time.Time) (string, error) {
	var name, formatErr = strftime.Format(pattern, now)
	if formatErr != nil {
		return "", formatErr
	}

	if !strings.EqualFold(filepath.Ext(name), ".wav") {
		name += ".wav"
	}

	return name, nil
}

// decodedTextFileName is where -S puts the text from name.wav.
func decodedTextFileName(wavPath string) string {
	return strings.TrimSuffix(wavPath, filepath.Ext(wavPath)) + "_decoded.txt"
}

func toolLogger(debug bool) *log.Logger {
	return NewLogger(os.Stderr, debug)
}
