// Package iojson holds utilities for reading and writing JSON from a
// command line interface perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// WriteWith marshals obj as indented JSON to w, reporting marshal failures
// on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintf(ew, "marshal error: %v\n", err)
		return werr
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write calls WriteWith with [os.Stdout] and [os.Stderr].
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// FileReader reads a JSON value of type T from a --file flag or stdin.
type FileReader[T any] struct {
	fileFlagValue string
}

// Flag returns the --file flag to register on the command.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to JSON file (reads from stdin if not provided)",
		Destination: &fr.fileFlagValue,
	}
}

// Read decodes the input into T. Refuses to read from an interactive
// terminal so a bare invocation fails fast instead of hanging.
func (fr *FileReader[T]) Read() (T, error) {
	var reader io.Reader
	var input T

	if fr.fileFlagValue != "" {
		f, err := os.Open(fr.fileFlagValue)
		if err != nil {
			return input, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	} else {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return input, fmt.Errorf("no input provided (stdin is a terminal); use -f flag or pipe JSON input")
		}
		reader = os.Stdin
	}

	if err := json.NewDecoder(reader).Decode(&input); err != nil {
		return input, fmt.Errorf("decode JSON: %w", err)
	}

	return input, nil
}
