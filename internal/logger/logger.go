// Package logger configures structured logging. The TUI owns the terminal,
// so logs go to a file when debugging is enabled and are discarded
// otherwise.
package logger

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// New returns a file-backed logger when debug is set, or a no-op logger.
// The returned closer is never nil. A failure to open the log file is not
// fatal; the console still runs, just without a log.
func New(path string, debug bool) (zerolog.Logger, func() error) {
	noop := func() error { return nil }
	if !debug {
		return zerolog.Nop(), noop
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), noop
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noop
	}

	zerolog.TimeFieldFormat = time.RFC3339
	log := zerolog.New(f).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	return log, f.Close
}
