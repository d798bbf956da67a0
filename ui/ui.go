package ui

import (
	"encoding/json"
	"io"
)

// Severity classifies the visual weight of a piece of inline text.
type Severity uint8

const (
	SeverityInfo     Severity = iota // plain
	SeveritySuccess                  // green
	SeverityWarn                     // yellow
	SeverityError                    // red
	SeverityCritical                 // bold
)

// StyledText pairs a plain string with a Severity annotation. It marshals
// as the bare string so JSON output never carries ANSI codes.
type StyledText struct {
	Text     string
	Severity Severity
}

func (s StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Text)
}

// UI is all the terminal output claimview produces.
//
// Production code uses TerminalUI, tests use RecordingUI. claimview never
// reads from the user: the card is read-only.
type UI interface {
	// Style returns t coloured according to its Severity, or the plain text
	// when colours are disabled.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)
	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)
	Critical(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned 2-column block.
	KeyValue(rows [][2]string)

	// Table renders a bordered table. With no headers it is a bordered
	// key-value card.
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner and returns its stop function.
	// Outside a terminal the message is printed once and stop is a no-op.
	Spinner(msg string) func()

	// Indent returns a child UI one level deeper sharing the same writer.
	Indent() UI

	// Writer returns an io.Writer that indents every line.
	Writer() io.Writer
}
