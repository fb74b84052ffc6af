package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when reporting errors.
// It keeps this package free of any dependency on the presentation layer.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// ExitCodeFor maps an error to the application exit code that best
// describes it.
func ExitCodeFor(err error) int {
	var (
		cfgErr  ConfigError
		memErr  MemoryError
		timeout TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case errors.As(err, &memErr):
		return ExitErrorMemory
	default:
		return ExitErrorEvaluation
	}
}

// HandleEvaluationError prints a human-readable description of err and
// returns the matching exit code. A nil error yields ExitSuccess and
// prints nothing.
//
// Parameters:
//   - err: The error to report.
//   - duration: How long the evaluation ran before failing (0 if unknown).
//   - out: The writer for the report.
//   - colors: The color provider.
//
// Returns:
//   - int: The exit code.
func HandleEvaluationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	code := ExitCodeFor(err)
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration)
	}
	switch code {
	case ExitErrorTimeout:
		var timeout TimeoutError
		if errors.As(err, &timeout) {
			suffix += fmt.Sprintf(" (limit %s)", timeout.Limit)
		}
		fmt.Fprintf(out, "%sEvaluation timed out%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sEvaluation canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError%s: %v%s\n", colors.Red(), suffix, err, colors.Reset())
	}
	return code
}
