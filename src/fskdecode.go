package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Test fixture for the FSK demodulator.
 *
 * Description:	Decode text from one or more .WAV files and print it.
 *		This provides an easy way to check that a recording
 *		made by fskgen, or by anything else, survives the trip.
 *
 *		The exit status is 1 if any file gave no text.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const SURVEY_PEAKS = 4

func DecodeFSKMain() {
	var configFile = pflag.StringP("config", "c", "", "Settings file.  Default "+DEFAULT_SETTINGS_FILE+" if it exists.")
	var flags = registerConfigFlags(false)
	var save = pflag.BoolP("save", "S", false, "Save decoded text next to each input as <name>_decoded.txt.")
	var textOutput = pflag.StringP("text-output", "O", "", "Save decoded text to this file.  Only with a single input file.")
	var survey = pflag.Bool("survey", false, "List the strongest tones found in each file.")
	var debug = pflag.BoolP("debug", "d", false, "Debug output.")
	var metricsFile = pflag.String("metrics-file", "", "Write Prometheus counters to this file when done.")
	var version = pflag.Bool("version", false, "Print version and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s decodes text from FSK audio recordings.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTION]... <WAV FILE>...\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "$ fskgen -o test1.wav Hello\n")
		fmt.Fprintf(os.Stderr, "$ %s test1.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "$ fskgen -r 44100 -b 1200 -m 1200 -s 2200 -o test2.wav Hello\n")
		fmt.Fprintf(os.Stderr, "$ %s -b 1200 -m 1200 -s 2200 test2.wav\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "The sample rate always comes from the file.\n")
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	if *version {
		printVersion(*debug)
		return
	}

	if pflag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Specify .WAV file name on command line.\n")
		pflag.Usage()
		os.Exit(1)
	}

	if *textOutput != "" && pflag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "-O can only be used with a single input file.\n")
		os.Exit(1)
	}

	var logger = toolLogger(*debug)

	var settings, settingsErr = loadToolSettings(*configFile, logger)
	if settingsErr != nil {
		logger.Fatal("Can't use settings file", "err", settingsErr)
	}

	var cfg = flags.apply(settings.Config)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Bad modem settings", "err", err)
	}

	var reg = prometheus.NewRegistry()

	var m = NewModem(
		WithLogger(logger),
		WithConfig(cfg),
		WithMetrics(NewMetrics(reg)),
	)

	var failed = 0

	for _, path := range pflag.Args() {
		var outPath = *textOutput
		if outPath == "" && *save {
			outPath = decodedTextFileName(path)
		}

		if !decodeFSKFile(m, path, outPath, *survey, logger) {
			failed++
		}
	}

	var metricsErr = WriteMetricsFile(*metricsFile, reg)
	if metricsErr != nil {
		logger.Error("Can't write metrics file", "file", *metricsFile, "err", metricsErr)
	}

	if failed > 0 {
		logger.Error("Some files did not decode", "failed", failed, "total", pflag.NArg())
		os.Exit(1)
	}
}

/*------------------------------------------------------------------
 *
 * Name:	decodeFSKFile
 *
 * Purpose:	Decode one file, print the text and optionally save it.
 *
 * Returns:	True if there was any text.
 *
 *----------------------------------------------------------------*/

func decodeFSKFile(m *Modem, path string, outPath string, survey bool, logger *log.Logger) bool {
	var w, readErr = ReadWAVFile(path)
	if readErr != nil {
		logger.Error("Can't read audio", "err", readErr)
		return false
	}

	logger.Debug("Read audio", "file", path, "samples", w.Len(), "sample_rate", w.SampleRate, "duration", w.Duration())

	if survey {
		var cfg = m.Config()

		fmt.Printf("%s: strongest tones (listening for mark %g Hz, space %g Hz):\n", path, cfg.MarkFreq, cfg.SpaceFreq)

		for _, peak := range SurveyTones(w, SURVEY_PEAKS) {
			fmt.Printf("    %7.1f Hz\n", peak.Freq)
		}
	}

	var result = m.DecodeDetailed(w)

	if result.Text == "" {
		logger.Error("No text decoded", "file", path, "status", result.Status.String(), "bits", result.Bits)
		return false
	}

	if result.Status == StatusTruncated {
		fmt.Printf("%s (truncated): %s\n", path, result.Text)
	} else {
		fmt.Printf("%s: %s\n", path, result.Text)
	}

	if outPath != "" {
		var writeErr = os.WriteFile(outPath, []byte(result.Text), 0o644) //nolint:gosec
		if writeErr != nil {
			logger.Error("Can't save decoded text", "file", outPath, "err", writeErr)
			return false
		}

		logger.Info("Saved decoded text", "file", outPath)
	}

	return true
}
