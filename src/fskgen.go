package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Test program for generating FSK audio files.
 *
 * Description:	Given text on the command line, from a file or from
 *		stdin, produce a .WAV file that fskdecode (or anything
 *		else listening for the same tones) can read back.
 *
 *		With artificial noise added:
 *
 *			fskgen -n 0.05 -o noisy.wav "Hello"
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
)

const DEFAULT_OUTPUT_FILE = "encoded_message.wav"

func GenFSKMain() {
	var configFile = pflag.StringP("config", "c", "", "Settings file.  Default "+DEFAULT_SETTINGS_FILE+" if it exists.")
	var flags = registerConfigFlags(true)
	var outputFile = pflag.StringP("output-file", "o", DEFAULT_OUTPUT_FILE, "Write audio to this .wav file.  strftime patterns such as %Y%m%d are expanded.")
	var inputFile = pflag.StringP("file", "f", "", "Read the message from this file.")
	var noiseLevel = pflag.Float64P("noise", "n", 0, "Add Gaussian noise with this standard deviation, as a fraction of full scale.  The leading silence is left clean.")
	var noiseSeed = pflag.Uint64("noise-seed", 1, "Seed for the noise generator.")
	var debug = pflag.BoolP("debug", "d", false, "Debug output.")
	var metricsFile = pflag.String("metrics-file", "", "Write Prometheus counters to this file when done.")
	var version = pflag.Bool("version", false, "Print version and exit.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate FSK audio file for text.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [text ...]\n", os.Args[0])
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Words on the command line are joined with spaces.\n")
		fmt.Fprintf(os.Stderr, "A single - reads the message from stdin.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  %s -o hello.wav Hello World!\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "    Bell 103 originate tones, 300 baud, 8000 samples per second.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  echo -n \"Hello\" | %s -r 44100 -b 1200 -m 1200 -s 2200 -\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "    Bell 202 tones at 1200 baud, message from stdin.\n")
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

	var logger = toolLogger(*debug)

	var settings, settingsErr = loadToolSettings(*configFile, logger)
	if settingsErr != nil {
		logger.Fatal("Can't use settings file", "err", settingsErr)
	}

	var cfg = flags.apply(settings.Config)
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Bad modem settings", "err", err)
	}

	var text, textErr = genFSKMessage(*inputFile, pflag.Args())
	if textErr != nil {
		logger.Fatal("Can't get message", "err", textErr)
	}

	if *noiseLevel < 0 || *noiseLevel > 1 {
		logger.Fatal("Noise level must be in range of 0 to 1", "noise", *noiseLevel)
	}

	var outName, outNameErr = outputFileName(*outputFile, time.Now())
	if outNameErr != nil {
		logger.Fatal("Bad output file name", "pattern", *outputFile, "err", outNameErr)
	}

	var reg = prometheus.NewRegistry()

	var m = NewModem(
		WithLogger(logger),
		WithConfig(cfg),
		WithMetrics(NewMetrics(reg)),
	)

	logger.Debug("Modem", "config", cfg.String())

	var w, encodeErr = m.Encode(text)
	if encodeErr != nil {
		logger.Fatal("Can't encode message", "err", encodeErr)
	}

	if *noiseLevel > 0 {
		w = AddSignalNoise(w, *noiseLevel, *noiseSeed)
		logger.Debug("Added noise", "level", *noiseLevel, "seed", *noiseSeed)
	}

	var writeErr = WriteWAVFile(outName, w)
	if writeErr != nil {
		logger.Fatal("Can't write output file", "file", outName, "err", writeErr)
	}

	fmt.Printf("Wrote %d bytes of text as %d samples (%.2f seconds) to %s\n",
		len(text), w.Len(), w.Duration().Seconds(), outName)

	var metricsErr = WriteMetricsFile(*metricsFile, reg)
	if metricsErr != nil {
		logger.Error("Can't write metrics file", "file", *metricsFile, "err", metricsErr)
	}
}

/*------------------------------------------------------------------
 *
 * Name:	genFSKMessage
 *
 * Purpose:	Work out what text to send.
 *
 * Inputs:	inputFile	- From -f, may be empty.
 *		args		- Remaining command line words.
 *
 * Description:	-f wins over words on the command line.  A single "-"
 *		word means stdin.  One trailing newline is removed from
 *		file or stdin input since editors and echo add one.
 *
 *----------------------------------------------------------------*/

func genFSKMessage(inputFile string, args []string) (string, error) {
	switch {
	case inputFile != "":
		var data, readErr = os.ReadFile(inputFile) //nolint:gosec
		if readErr != nil {
			return "", readErr
		}

		return trimOneNewline(string(data)), nil

	case len(args) == 1 && args[0] == "-":
		var data, readErr = io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", fmt.Errorf("reading stdin: %w", readErr)
		}

		return trimOneNewline(string(data)), nil

	case len(args) > 0:
		return strings.Join(args, " "), nil

	default:
		return "", errors.New("no message: give text, -f file, or - for stdin")
	}
}

func trimOneNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}

	return strings.TrimSuffix(s, "\n")
}
