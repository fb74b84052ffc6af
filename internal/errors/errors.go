package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess         = 0   // Indicates successful execution.
	ExitErrorGeneric    = 1   // Indicates a generic error.
	ExitErrorTimeout    = 2   // Indicates the operation timed out.
	ExitErrorEvaluation = 3   // Indicates a program could not be evaluated.
	ExitErrorConfig     = 4   // Indicates a configuration error.
	ExitErrorMemory     = 5   // Indicates the allocator ran out of capacity.
	ExitErrorCanceled   = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvaluationError encapsulates a failure to evaluate a program while
// preserving the original cause and the source text that produced it.
type EvaluationError struct {
	// Expr is the program text that failed.
	Expr string
	// Cause is the underlying error that triggered this evaluation error.
	Cause error
}

// Error returns the error message from the underlying cause, prefixed with
// the offending program when it is known.
//
// Returns:
//   - string: The error message string.
func (e EvaluationError) Error() string {
	if e.Expr == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("evaluating %q: %v", e.Expr, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the EvaluationError.
func (e EvaluationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation timeout. It captures the operation
// name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
//
// Returns:
//   - string: The error message string.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents an allocator capacity failure. It captures the
// requested, available, and limit sizes in 32-bit words for diagnostic
// purposes.
type MemoryError struct {
	// Requested is the number of words the operation needed.
	Requested uint64
	// Available is the number of words still available under the limit.
	Available uint64
	// Limit is the configured allocator limit in words.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
//
// Returns:
//   - string: The error message string.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d words, available %d words (limit: %d)", e.Requested, e.Available, e.Limit)
}

// PreconditionError describes a violated precondition: a programming error
// such as division by zero, a subtraction that would go negative, or use of
// a released allocation. It is raised with panic, never returned.
type PreconditionError struct {
	// Op is the operation whose precondition failed.
	Op string
	// Message describes the violated condition.
	Message string
}

// Error returns a formatted message describing the violation.
func (e PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition violated: %s", e.Op, e.Message)
}

// Require panics with a PreconditionError when cond is false.
func Require(cond bool, op, format string, a ...any) {
	if !cond {
		panic(PreconditionError{Op: op, Message: fmt.Sprintf(format, a...)})
	}
}

// RecoverPrecondition converts a recovered PreconditionError panic into an
// error stored in *errp. Any other panic value is re-raised. It must be
// called directly by a deferred function:
//
//	defer apperrors.RecoverPrecondition(&err)
func RecoverPrecondition(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if pe, ok := r.(PreconditionError); ok {
		*errp = pe
		return
	}
	panic(r)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
