package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/rpn"
	"github.com/agbru/bigcalc/internal/ui"
)

// prewarmSizes are the pool size classes filled before a batch; most
// intermediates of short programs fit in them.
var prewarmSizes = []int{16, 64}

// Application represents the bigcalc application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.AllocatorMetrics

	// In feeds the interactive session; nil means standard input.
	In io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets the logger used by the application and its allocator.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader consumed by the interactive session.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// New creates an Application by parsing command-line arguments. args[0]
// is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "bigcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = config.ApplyAdaptiveDefaults(cfg)

	if app.Logger == nil {
		app.Logger = logging.NewZerologAdapter(zerolog.New(zerolog.ConsoleWriter{Out: errWriter, NoColor: cfg.NoColor}).
			With().Timestamp().Str("component", "bigcalc").Logger())
	}
	app.Metrics = metrics.NewAllocatorMetrics()
	return app, nil
}

// Run executes the application in batch or interactive mode and returns
// the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	level := zerolog.WarnLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	alloc, err := a.newAllocator()
	if err != nil {
		return apperrors.HandleEvaluationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("allocator ready",
		logging.String("backend", alloc.Name()),
		logging.String("required", alloc.Defaults().String()),
		logging.Uint64("limit_words", a.Config.LimitWords),
		logging.Int("jobs", a.Config.Jobs))

	if a.Config.MetricsAddr != "" {
		_, stop, err := a.serveMetrics(a.Config.MetricsAddr)
		if err != nil {
			_ = alloc.Close()
			return apperrors.HandleEvaluationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
		}
		defer stop()
	}

	ev := rpn.NewEvaluator(alloc)
	var code int
	switch {
	case a.Config.REPL:
		code = a.runREPL(ctx, ev, out)
	case a.Config.TUI:
		code = a.runDashboard(ctx, ev, out)
	default:
		code = a.runEvaluate(ctx, ev, out)
	}

	if a.Config.Metrics {
		if err := a.Metrics.WriteText(out, a.Config.Verbose); err != nil {
			a.Logger.Error("writing metrics", err)
		}
	}
	if err := alloc.Close(); err != nil && code == apperrors.ExitSuccess {
		return apperrors.HandleEvaluationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return code
}

// newAllocator builds the configured backend and wraps it in an allocator
// reporting to the application's metrics.
func (a *Application) newAllocator() (*allocator.Allocator, error) {
	backend, err := allocator.NewBackend(a.Config.Alloc, a.Config.ArenaWords)
	if err != nil {
		return nil, apperrors.WrapError(err, "creating allocator")
	}
	if pool, ok := backend.(*allocator.PoolBackend); ok && a.Config.Prewarm > 0 {
		for _, words := range prewarmSizes {
			pool.Prewarm(words, a.Config.Prewarm)
		}
	}

	opts := []allocator.Option{
		allocator.WithLogger(a.Logger),
		allocator.WithObserver(a.Metrics),
	}
	if a.Config.LimitWords > 0 {
		opts = append(opts, allocator.WithLimit(a.Config.LimitWords))
	}
	if a.Config.LeakCheck {
		opts = append(opts, allocator.WithRequired(allocator.Caps(allocator.LeakCheck)))
	}
	return allocator.New(backend, opts...), nil
}

// runREPL starts the interactive session. Ctrl+C ends it.
func (a *Application) runREPL(ctx context.Context, ev *rpn.Evaluator, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	repl := cli.NewREPL(ev, cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		HexOutput: a.Config.HexOutput,
		Verbose:   a.Config.Verbose,
	})
	repl.SetOutput(out)
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
