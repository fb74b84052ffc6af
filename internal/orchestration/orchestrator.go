package orchestration

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const tracerName = "github.com/agbru/bigcalc/internal/orchestration"

// Options tune ExecuteEvaluations.
type Options struct {
	// Jobs bounds the number of programs evaluated at once; values below
	// one mean no bound.
	Jobs int
	// Observer, if set, receives every program's outcome.
	Observer EvaluationObserver
}

// ExecuteEvaluations evaluates programs concurrently. A failing program
// does not stop the others; its error is recorded in its result. Results
// are returned in program order and their values must be released with
// ReleaseResults.
func ExecuteEvaluations(ctx context.Context, ev Evaluator, programs []string, opts Options, reporter ProgressReporter, out io.Writer) []EvaluationResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "orchestration.ExecuteEvaluations")
	defer span.End()
	span.SetAttributes(attribute.Int("batch.programs", len(programs)), attribute.Int("batch.jobs", opts.Jobs))

	results := make([]EvaluationResult, len(programs))
	progressChan := make(chan ProgressUpdate, len(programs))

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(programs), out)

	g, ctx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		g.SetLimit(opts.Jobs)
	}
	for i, program := range programs {
		g.Go(func() error {
			start := time.Now()
			v, err := ev.Evaluate(ctx, program)
			d := time.Since(start)
			if err != nil {
				err = apperrors.EvaluationError{Expr: program, Cause: err}
			}
			results[i] = EvaluationResult{Index: i, Expr: program, Value: v, Duration: d, Err: err}
			if opts.Observer != nil {
				opts.Observer.ObserveEvaluation(statusOf(err), d)
			}
			progressChan <- ProgressUpdate{Index: i, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("batch.failed", failed))
	return results
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case apperrors.IsContextError(err):
		return "canceled"
	}
	return "error"
}

// AnalyzeResults presents the batch and returns the process exit code:
// success when every program succeeded, otherwise the code of the first
// failure in program order.
func AnalyzeResults(results []EvaluationResult, opts PresentationOptions, presenter ResultPresenter, out io.Writer) int {
	presenter.PresentResults(results, opts, out)
	for _, r := range results {
		if r.Err != nil {
			return presenter.HandleError(r.Err, r.Duration, out)
		}
	}
	return apperrors.ExitSuccess
}

// MarkTimeouts replaces the deadline failures of results with a
// TimeoutError naming op and limit, keeping the program text.
func MarkTimeouts(results []EvaluationResult, op string, limit time.Duration) {
	for i := range results {
		if errors.Is(results[i].Err, context.DeadlineExceeded) {
			results[i].Err = apperrors.EvaluationError{
				Expr:  results[i].Expr,
				Cause: apperrors.TimeoutError{Operation: op, Limit: limit},
			}
		}
	}
}

// ReleaseResults destroys every value held by results.
func ReleaseResults(results []EvaluationResult) {
	for i := range results {
		results[i].Value.Destroy()
		results[i].Value = nil
	}
}
