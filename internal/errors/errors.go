package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/chronoforge/internal/logger"
)

// HintError decorates an error with a suggestion for the user
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }
func (e *HintError) Unwrap() error { return e.Err }

// WithHint attaches a user-facing suggestion to err
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &HintError{Err: err, Hint: hint}
}

// Format formats an error message with a consistent "Error: " prefix,
// followed by the hint when one is attached
func Format(err error) string {
	if err == nil {
		return ""
	}
	var hinted *HintError
	if errors.As(err, &hinted) && hinted.Hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hinted.Hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
