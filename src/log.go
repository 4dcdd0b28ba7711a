package bell103

import (
	"io"

	"github.com/charmbracelet/log"
)

const LOG_PREFIX = "bell103"

// NewLogger returns the logger every tool and Modem uses.
// Debug level is the "debug mode" of the command line tools.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	var logger = log.NewWithOptions(w, log.Options{
		Prefix:          LOG_PREFIX,
		ReportTimestamp: false,
	})

	SetDebug(logger, debug)

	return logger
}

func SetDebug(logger *log.Logger, debug bool) {
	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}
