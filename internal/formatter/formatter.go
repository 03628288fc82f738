// Package formatter renders raw API response bodies for the terminal.
// Every formatter consumes the JSON bytes the dispatcher returns, so
// output is identical no matter which transport produced the response.
package formatter

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatTable = "table"
	FormatAgent = "agent"
)

type Formatter interface {
	Format(body []byte) error
}

// New picks a formatter for the requested format. Agent mode wins over
// any explicit format. "auto" renders a table on a TTY and plain JSON
// otherwise, so piped output stays machine-readable.
func New(format string, agentMode bool) (Formatter, error) {
	return newTo(os.Stdout, format, agentMode, stdoutIsTerminal)
}

func newTo(w io.Writer, format string, agentMode bool, isTerminal func() bool) (Formatter, error) {
	if agentMode {
		return NewAgentFormatter(w), nil
	}

	switch format {
	case FormatJSON:
		return NewJSONFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatAuto, "":
		if isTerminal() {
			return NewTableFormatter(w), nil
		}
		return NewJSONFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (expected json, table, agent or auto)", format)
	}
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
