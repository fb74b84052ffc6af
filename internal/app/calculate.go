package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/rpn"
)

// runEvaluate evaluates every configured program and prints the results.
func (a *Application) runEvaluate(ctx context.Context, ev *rpn.Evaluator, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := a.ErrWriter
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	opts := orchestration.Options{Jobs: a.Config.Jobs, Observer: a.Metrics}
	results := orchestration.ExecuteEvaluations(ctx, ev, a.Config.Exprs, opts, reporter, progressOut)
	defer orchestration.ReleaseResults(results)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		orchestration.MarkTimeouts(results, "batch", a.Config.Timeout)
	}

	for _, r := range results {
		if r.Err != nil {
			a.Logger.Debug("program failed", logging.Int("index", r.Index), logging.Err(r.Err))
		} else {
			a.Logger.Debug("program evaluated", logging.Int("index", r.Index), logging.Int("bits", r.Value.BitLen()))
		}
	}

	presOpts := orchestration.PresentationOptions{
		Hex:     a.Config.HexOutput,
		Verbose: a.Config.Verbose,
		Quiet:   a.Config.Quiet,
	}
	return orchestration.AnalyzeResults(results, presOpts, cli.CLIResultPresenter{}, out)
}
