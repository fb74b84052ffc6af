package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/rpn"
	"github.com/agbru/bigcalc/internal/tui"
)

// runDashboard evaluates the configured programs in the live dashboard.
// The timeout applies to each batch, not to the session.
func (a *Application) runDashboard(ctx context.Context, ev *rpn.Evaluator, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	return tui.Run(ctx, tui.Session{
		Evaluator: ev,
		Collector: metrics.NewMemoryCollector(ev.Allocator()),
		Observer:  a.Metrics,
		Config:    a.Config,
		Version:   resolvedVersion(),
	}, out)
}
