package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Built-in codec test.
 *
 * Description:	Encode some messages, write each one to a .WAV file,
 *		read it back, decode and compare.  This goes through the
 *		16 bit quantization of the file, which the in-memory
 *		tests do not.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

var SelfTestMessages = []string{
	"Hello World!",
	"Привет мир!",
	"123456789",
	"Test message",
	"Тест сообщение",
	"English + Русский = OK!",
}

// Most differences shown for one failed message.
const MAX_DIFFS_SHOWN = 5

func SelfTestMain() {
	var configFile = pflag.StringP("config", "c", "", "Settings file.  Default "+DEFAULT_SETTINGS_FILE+" if it exists.")
	var flags = registerConfigFlags(true)
	var texts = pflag.StringArrayP("text", "t", nil, "Test with this message instead of the built-in ones.  May be repeated.")
	var keepDir = pflag.String("keep", "", "Keep the .WAV files in this directory.")
	var debug = pflag.BoolP("debug", "d", false, "Debug output.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Encode, write, read and decode test messages.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
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

	var messages = SelfTestMessages
	if len(*texts) > 0 {
		messages = *texts
	}

	var dir = *keepDir
	if dir == "" {
		var tempDir, tempErr = os.MkdirTemp("", "fsktest")
		if tempErr != nil {
			logger.Fatal("Can't make temporary directory", "err", tempErr)
		}
		defer os.RemoveAll(tempDir)

		dir = tempDir
	}

	var m = NewModem(WithLogger(logger), WithConfig(cfg))

	fmt.Printf("Testing with %s\n", cfg)

	var passed = 0
	var now = time.Now()

	for i, message := range messages {
		var ok bool
		var diffs []string

		var name, nameErr = outputFileName("selftest_%Y%m%d_%H%M%S_"+strconv.Itoa(i+1), now)
		if nameErr != nil {
			diffs = []string{"file name: " + nameErr.Error()}
		} else {
			ok, diffs = selfTestOne(m, message, filepath.Join(dir, name))
		}

		if ok {
			passed++

			fmt.Printf("PASS: %q\n", message)

			continue
		}

		fmt.Printf("FAIL: %q\n", message)

		for _, d := range diffs {
			fmt.Printf("    %s\n", d)
		}
	}

	fmt.Printf("%d of %d passed\n", passed, len(messages))

	if passed != len(messages) {
		if *keepDir == "" {
			os.RemoveAll(dir) //nolint:gosec
		}

		os.Exit(1)
	}
}

// selfTestOne returns whether message came back intact and if not,
// a description of the first few differences.
func selfTestOne(m *Modem, message string, path string) (bool, []string) {
	var w, encodeErr = m.Encode(message)
	if encodeErr != nil {
		return false, []string{encodeErr.Error()}
	}

	var writeErr = WriteWAVFile(path, w)
	if writeErr != nil {
		return false, []string{writeErr.Error()}
	}

	var readBack, readErr = ReadWAVFile(path)
	if readErr != nil {
		return false, []string{readErr.Error()}
	}

	var decoded = m.Decode(readBack)
	if decoded == message {
		return true, nil
	}

	return false, textDiffs(message, decoded, MAX_DIFFS_SHOWN)
}

// textDiffs compares by character, not by byte.
func textDiffs(expected string, got string, limit int) []string {
	var e = []rune(expected)
	var g = []rune(got)

	var diffs []string

	if len(e) != len(g) {
		diffs = append(diffs, fmt.Sprintf("length: expected %d characters, got %d", len(e), len(g)))
	}

	for i := 0; i < max(len(e), len(g)) && len(diffs) < limit; i++ {
		var ec, gc = "(none)", "(none)"

		if i < len(e) {
			ec = strconv.QuoteRune(e[i])
		}

		if i < len(g) {
			gc = strconv.QuoteRune(g[i])
		}

		if ec != gc {
			diffs = append(diffs, fmt.Sprintf("position %d: expected %s, got %s", i, ec, gc))
		}
	}

	return diffs
}
