package orchestration

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/agbru/bigcalc/internal/biguint"
)

// Evaluator turns a program into a value. *rpn.Evaluator implements it.
type Evaluator interface {
	Evaluate(ctx context.Context, program string) (*biguint.BigUint, error)
}

// EvaluationResult is the outcome of one program.
type EvaluationResult struct {
	// Index is the program's position in the batch.
	Index int
	// Expr is the program text.
	Expr string
	// Value is nil when Err is set. It stays owned by the result until
	// ReleaseResults is called.
	Value *biguint.BigUint
	// Duration is the evaluation time.
	Duration time.Duration
	// Err is an apperrors.EvaluationError wrapping the failure, if any.
	Err error
}

// ProgressUpdate reports that program Index finished.
type ProgressUpdate struct {
	Index int
	Err   error
}

// PresentationOptions configures result display.
type PresentationOptions struct {
	Hex     bool
	Verbose bool
	Quiet   bool
}

// ProgressReporter displays progress while a batch runs. DisplayProgress
// runs in its own goroutine, must drain progressChan until it is closed and
// then call wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numPrograms int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numPrograms int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numPrograms int, out io.Writer) {
	f(wg, progressChan, numPrograms, out)
}

// NullProgressReporter discards progress. Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders a finished batch.
type ResultPresenter interface {
	PresentResults(results []EvaluationResult, opts PresentationOptions, out io.Writer)
	HandleError(err error, duration time.Duration, out io.Writer) int
}

// EvaluationObserver records per-program outcomes, e.g. in metrics.
type EvaluationObserver interface {
	ObserveEvaluation(status string, d time.Duration)
}
