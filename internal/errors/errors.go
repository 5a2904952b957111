package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/focusflow/internal/logger"
)

// Stderr is where user-facing error and warning lines are written.
var Stderr io.Writer = os.Stderr

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// FormatWarning formats a non-fatal problem with a "Warning: " prefix
func FormatWarning(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Warning: %v", err)
}

// Warn logs err and prints a one-line warning without interrupting the caller.
func Warn(msg string, err error) {
	if err == nil {
		return
	}
	logger.Warn(msg, "error", err)
	fmt.Fprintf(Stderr, "%s\n", FormatWarning(fmt.Errorf("%s: %w", msg, err)))
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
