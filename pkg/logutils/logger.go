// Package logutils constructs the application's zerolog root logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// New returns a new logger at the given level.
//
// With a file path, logs are written there as JSON. With an empty path,
// logs go to stderr: pretty-printed when stderr is a terminal, JSON
// otherwise (so piped output stays machine-readable).
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	var writer io.Writer = os.Stderr
	switch {
	case file != "":
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		osFile, err := os.Create(file)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }
		writer = osFile
	case term.IsTerminal(int(os.Stderr.Fd())):
		writer = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
