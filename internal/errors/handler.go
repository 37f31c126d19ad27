package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies ANSI color sequences for error reporting. It decouples
// the error handler from any particular UI package so that CLI and TUI frontends
// can inject their own color schemes (or none at all).
type ColorProvider interface {
	// Red returns the ANSI sequence for error highlighting.
	Red() string
	// Yellow returns the ANSI sequence for warning highlighting.
	Yellow() string
	// Reset returns the ANSI sequence that restores the default style.
	Reset() string
}

// NoColorProvider is a ColorProvider that emits no ANSI sequences. It is used
// by frontends that render into their own styled surface (e.g., the TUI).
type NoColorProvider struct{}

// Red returns an empty string.
func (NoColorProvider) Red() string { return "" }

// Yellow returns an empty string.
func (NoColorProvider) Yellow() string { return "" }

// Reset returns an empty string.
func (NoColorProvider) Reset() string { return "" }

// HandleCalculationError inspects a computation error, writes a human-readable
// diagnostic to out, and returns the process exit code corresponding to the
// error class.
//
// The classification order matters: cancellation is checked before timeout
// because a canceled context often also reports a deadline, and the more
// specific structured types (TimeoutError, MismatchError, ConfigError) are
// checked before the generic fallback.
//
// Parameters:
//   - err: The error to classify. A nil error yields ExitSuccess.
//   - duration: How long the computation ran before failing.
//   - out: Destination for the diagnostic message. May be nil.
//   - colors: Provider for ANSI color sequences.
//
// Returns:
//   - int: The exit code for the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if out == nil {
		out = io.Discard
	}
	if colors == nil {
		colors = NoColorProvider{}
	}

	var timeoutErr TimeoutError
	var mismatchErr MismatchError
	var configErr ConfigError

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "\n%sComputation canceled after %s.%s\n",
			colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorCanceled

	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "\n%sComputation timed out after %s.%s\n",
			colors.Red(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorTimeout

	case errors.As(err, &timeoutErr):
		fmt.Fprintf(out, "\n%s%v (ran for %s).%s\n",
			colors.Red(), timeoutErr, duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorTimeout

	case errors.As(err, &mismatchErr):
		fmt.Fprintf(out, "\n%s%v%s\n", colors.Red(), mismatchErr, colors.Reset())
		return ExitErrorMismatch

	case errors.As(err, &configErr):
		fmt.Fprintf(out, "\n%sConfiguration error: %v%s\n", colors.Red(), configErr, colors.Reset())
		return ExitErrorConfig

	default:
		fmt.Fprintf(out, "\n%sComputation failed after %s: %v%s\n",
			colors.Red(), duration.Round(time.Millisecond), err, colors.Reset())
		return ExitErrorGeneric
	}
}
