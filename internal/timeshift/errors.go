package timeshift

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ParseError describes one row of tool output that could not be mapped to a
// record.
type ParseError struct {
	// Kind is the listing the row came from
	Kind Kind
	// Line is the 1-based line number within the raw output
	Line int
	// Text is the trimmed row
	Text string
	// Field names the mapping step that failed (field count, ordinal, tag)
	Field string
	// Underlying error
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s row at line %d (%s): %v: %q",
		e.Kind, e.Line, e.Field, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LogFields returns the structured fields used when logging a skipped row.
func (e *ParseError) LogFields() []zap.Field {
	return []zap.Field{
		zap.Stringer("kind", e.Kind),
		zap.Int("line", e.Line),
		zap.String("field", e.Field),
		zap.String("text", e.Text),
		zap.Error(e.Err),
	}
}

// CommandError means timeshift ran to completion and reported failure.
// This is a domain error: the diagnostic is meant for the user.
type CommandError struct {
	// Args are the arguments passed to timeshift
	Args []string
	// ExitCode is the process exit status
	ExitCode int
	// Stdout and Stderr are the captured streams
	Stdout string
	Stderr string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("timeshift %s failed (exit code %d): %s",
		strings.Join(e.Args, " "), e.ExitCode, e.Diagnostic())
}

// Diagnostic returns the text the tool printed about the failure. timeshift
// reports some errors on stdout, so stdout is used when stderr is empty.
func (e *CommandError) Diagnostic() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(e.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("exit code %d", e.ExitCode)
}

// LaunchError means timeshift could not be started, or it terminated without
// an exit status (for example when killed by a signal).
type LaunchError struct {
	// Command is the full command line that was attempted
	Command []string
	// Underlying error
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to run %s: %v", strings.Join(e.Command, " "), e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}
