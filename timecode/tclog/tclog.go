// Package tclog provides the structured logger shared by the
// decoder's command-line tools, built on
// github.com/charmbracelet/log with a small fixed palette of levels:
// debug, info, warn, error.
package tclog

import (
	"os"

	"github.com/charmbracelet/log"
)

// New builds a logger writing to stderr with the given level name
// ("debug", "info", "warn", "error"). An unrecognized level name falls
// back to "info".
func New(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
