// Package commands implements the fintrack CLI subcommands. Each Run* function takes its
// collaborators explicitly so tests can drive it without a container.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// formatJSON selects machine-readable output for commands that accept --format.
const formatJSON = "json"

// IOTuple is the terminal a command talks to.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO is the process terminal.
func DefaultIO() IOTuple {
	return IOTuple{Reader: os.Stdin, Writer: os.Stdout}
}

// writeResult prints v as indented JSON when format is "json", else the text lines.
func writeResult(w io.Writer, format string, v any, lines ...string) error {
	if format == formatJSON {
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
