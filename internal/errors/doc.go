// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// evaluation, allocator capacity, fatal preconditions) and for carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// All error types implement the Unwrap() method where they wrap a cause, to
// support errors.Is() and errors.As().
package apperrors
