package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"config", NewConfigError("--jobs cannot be negative, got %d", -1), "--jobs cannot be negative, got -1"},
		{"evaluation without program", EvaluationError{Cause: errors.New("stack underflow")}, "stack underflow"},
		{"evaluation of a program",
			EvaluationError{Expr: "1 0 /", Cause: ValidationError{Field: "/", Message: "division by zero"}},
			`evaluating "1 0 /": validation error for "/": division by zero`},
		{"batch timeout",
			EvaluationError{Expr: "2 3 *", Cause: TimeoutError{Operation: "batch", Limit: 250 * time.Millisecond}},
			`evaluating "2 3 *": operation "batch" timed out after 250ms`},
		{"memory in words", MemoryError{Requested: 130, Available: 2, Limit: 16},
			"memory error: requested 130 words, available 2 words (limit: 16)"},
		{"precondition", PreconditionError{Op: "Sub", Message: "negative result"}, "Sub: precondition violated: negative result"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// The exit code mapping finds typed causes through every wrapper the
// engine and the orchestration layer add.
func TestErrorChains(t *testing.T) {
	t.Parallel()
	memory := MemoryError{Requested: 64, Limit: 16}
	err := WrapError(EvaluationError{Expr: "1 4096 <<", Cause: memory}, "batch")

	var memErr MemoryError
	if !errors.As(err, &memErr) || memErr != memory {
		t.Errorf("MemoryError not found through the chain: %v", err)
	}
	var evalErr EvaluationError
	if !errors.As(err, &evalErr) || evalErr.Expr != "1 4096 <<" {
		t.Errorf("EvaluationError not found through the chain: %v", err)
	}
	if !errors.Is(EvaluationError{Cause: context.Canceled}, context.Canceled) {
		t.Error("EvaluationError must unwrap to its cause")
	}
	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) must be nil")
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline inside an evaluation", EvaluationError{Expr: "1", Cause: context.DeadlineExceeded}, true},
		{"timeout type", TimeoutError{Operation: "batch", Limit: time.Second}, false},
		{"engine failure", ValidationError{Field: "-", Message: "subtraction underflow"}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		got, want int
	}{
		{"success", ExitSuccess, 0},
		{"generic", ExitErrorGeneric, 1},
		{"timeout", ExitErrorTimeout, 2},
		{"evaluation", ExitErrorEvaluation, 3},
		{"config", ExitErrorConfig, 4},
		{"memory", ExitErrorMemory, 5},
		{"canceled", ExitErrorCanceled, 130},
	}
	seen := make(map[int]string)
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s exit code = %d, want %d", tt.name, tt.got, tt.want)
		}
		if other, ok := seen[tt.got]; ok {
			t.Errorf("%s and %s share exit code %d", other, tt.name, tt.got)
		}
		seen[tt.got] = tt.name
	}
}

func TestRequire(t *testing.T) {
	t.Parallel()
	Require(true, "Sub", "unreachable")

	defer func() {
		pe, ok := recover().(PreconditionError)
		if !ok {
			t.Fatal("expected a PreconditionError panic")
		}
		if pe.Op != "Div" || pe.Message != "division by zero (len 0)" {
			t.Errorf("unexpected precondition %+v", pe)
		}
	}()
	Require(false, "Div", "division by zero (len %d)", 0)
}

func TestRecoverPrecondition(t *testing.T) {
	t.Parallel()
	run := func(f func()) (err error) {
		defer RecoverPrecondition(&err)
		f()
		return nil
	}

	var pe PreconditionError
	if err := run(func() { Require(false, "Sub", "a < b") }); !errors.As(err, &pe) || pe.Op != "Sub" {
		t.Errorf("precondition panic not converted: %v", err)
	}
	if err := run(func() {}); err != nil {
		t.Errorf("no panic should leave err nil, got %v", err)
	}

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("other panics must propagate, got %#v", r)
		}
	}()
	_ = run(func() { panic("boom") })
}
