package bell103

/*------------------------------------------------------------------
 *
 * Purpose:	Show or change the settings file.
 *
 * Description:	With no options, print the settings.  Any of the
 *		change options writes the file back first.
 *
 *			fskconfig -r 44100 -b 1200 -m 1200 -s 2200
 *			fskconfig --reset
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

func ConfigMain() {
	var configFile = pflag.StringP("config", "c", DEFAULT_SETTINGS_FILE, "Settings file.")
	var flags = registerConfigFlags(true)
	var debugOn = pflag.Bool("debug", false, "Turn debug output on for all tools.")
	var debugOff = pflag.Bool("no-debug", false, "Turn debug output off.")
	var reset = pflag.Bool("reset", false, "Go back to the built-in defaults.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Show or change modem settings.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(1)
	}

	var logger = toolLogger(false)

	if *debugOn && *debugOff {
		logger.Fatal("Cannot choose both --debug and --no-debug")
	}

	var settings = DefaultSettings()
	var changed = false

	// --reset never reads the file, so it works on one that will not load.
	if *reset {
		changed = true
	} else {
		var loaded, loadErr = LoadSettings(*configFile)
		if loadErr != nil && !errors.Is(loadErr, fs.ErrNotExist) {
			logger.Fatal("Can't use settings file, try --reset", "err", loadErr)
		}

		settings = loaded
	}

	var cfg = flags.apply(settings.Config)
	if cfg != settings.Config {
		settings.Config = cfg
		changed = true
	}

	if *debugOn || *debugOff {
		settings.Debug = *debugOn
		changed = true
	}

	if changed {
		var saveErr = SaveSettings(*configFile, settings)
		if saveErr != nil {
			logger.Fatal("Can't save settings", "err", saveErr)
		}

		logger.Info("Saved settings", "file", *configFile)
	}

	printSettings(*configFile, settings)
}

func printSettings(path string, settings Settings) {
	fmt.Printf("Settings from %s:\n", path)
	fmt.Printf("    Sample rate:      %d Hz\n", settings.SampleRate)
	fmt.Printf("    Baud rate:        %d\n", settings.BaudRate)
	fmt.Printf("    Mark frequency:   %g Hz\n", settings.MarkFreq)
	fmt.Printf("    Space frequency:  %g Hz\n", settings.SpaceFreq)
	fmt.Printf("    Samples per bit:  %d\n", settings.SamplesPerBit())
	fmt.Printf("    Debug:            %t\n", settings.Debug)
}
