// Package errors turns command failures into the one-line stderr message the
// CLI prints before exiting. Anything richer than that line goes through the
// logger instead, where it cannot disturb the terminal.
package errors

import (
	"fmt"
	"os"

	"github.com/auroracare/aurora-cli/internal/logger"
)

// Format renders an error the way the CLI reports it to the terminal.
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs the error, prints it to stderr, and exits with code 1. A nil
// error is a no-op so callers can pass command results through unchecked.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
