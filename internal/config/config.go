package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/allocator"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BIGCALC_"

// Static defaults.
const (
	DefaultAlloc      = allocator.KindPool
	DefaultArenaWords = 1 << 16
	DefaultTimeout    = time.Minute
)

// AppConfig holds the resolved configuration of one bigcalc run.
type AppConfig struct {
	// Exprs are the RPN programs to evaluate, in command-line order.
	Exprs []string
	// Alloc names the allocator backend: heap, pool or arena.
	Alloc string
	// ArenaWords is the arena size when Alloc is arena.
	ArenaWords int
	// LimitWords caps live storage; 0 means unlimited.
	LimitWords uint64
	// Prewarm is the number of pool buffers pre-allocated per size class.
	// Zero lets ApplyAdaptiveDefaults choose.
	Prewarm int
	// Jobs bounds concurrent evaluations. Zero means one per CPU.
	Jobs int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// MetricsAddr, when set, serves /metrics on this address while the
	// run lasts.
	MetricsAddr string

	HexOutput bool
	REPL      bool
	TUI       bool
	Metrics   bool
	LeakCheck bool
	Verbose   bool
	Quiet     bool
	NoColor   bool
	Version   bool
}

// exprList collects repeated -e/--expr flags.
type exprList struct{ exprs *[]string }

func (l exprList) String() string {
	if l.exprs == nil {
		return ""
	}
	return strings.Join(*l.exprs, "; ")
}

func (l exprList) Set(v string) error {
	*l.exprs = append(*l.exprs, v)
	return nil
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Positional arguments are treated as additional programs. Usage and
// parse errors are written to errWriter; -h/--help yields flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	exprs := exprList{exprs: &cfg.Exprs}
	fs.Var(exprs, "e", "RPN program to evaluate (repeatable).")
	fs.Var(exprs, "expr", "RPN program to evaluate (repeatable).")
	fs.StringVar(&cfg.Alloc, "alloc", DefaultAlloc, fmt.Sprintf("Allocator backend (%s).", strings.Join(allocator.Kinds(), ", ")))
	fs.IntVar(&cfg.ArenaWords, "arena-words", DefaultArenaWords, "Arena size in 32-bit words.")
	fs.Uint64Var(&cfg.LimitWords, "limit-words", 0, "Maximum live words across all values (0 = unlimited).")
	fs.IntVar(&cfg.Prewarm, "prewarm", 0, "Pool buffers to pre-allocate per size class (0 = adaptive).")
	fs.IntVar(&cfg.Jobs, "jobs", 0, "Maximum concurrent evaluations (0 = number of CPUs).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Timeout for the whole run (e.g. 30s, 5m).")
	fs.BoolVar(&cfg.HexOutput, "hex", false, "Print results in hexadecimal.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start an interactive session.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Show a live dashboard while the batch runs.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "Print allocator metrics after the run.")
	fs.BoolVar(&cfg.LeakCheck, "leak-check", false, "Fail if any value is left unreleased.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output with debug logs.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output with debug logs.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print results only.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Version, "version", false, "Print the version and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	cfg.Exprs = append(cfg.Exprs, fs.Args()...)

	applyEnvOverrides(&cfg, fs)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for inconsistencies and returns a
// ConfigError describing the first one found.
func (c AppConfig) Validate() error {
	if _, err := allocator.NewBackend(c.Alloc, 1); err != nil {
		return apperrors.NewConfigError("unknown allocator %q (expected one of %s)", c.Alloc, strings.Join(allocator.Kinds(), ", "))
	}
	if c.Alloc == allocator.KindArena && c.ArenaWords <= 0 {
		return apperrors.NewConfigError("--arena-words must be positive, got %d", c.ArenaWords)
	}
	if c.Prewarm < 0 {
		return apperrors.NewConfigError("--prewarm cannot be negative, got %d", c.Prewarm)
	}
	if c.Jobs < 0 {
		return apperrors.NewConfigError("--jobs cannot be negative, got %d", c.Jobs)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("--timeout must be positive, got %s", c.Timeout)
	}
	if c.Verbose && c.Quiet {
		return apperrors.NewConfigError("--verbose and --quiet are mutually exclusive")
	}
	if c.TUI && (c.REPL || c.Quiet) {
		return apperrors.NewConfigError("--tui cannot be combined with --repl or --quiet")
	}
	if len(c.Exprs) == 0 && !c.REPL && !c.Version {
		return apperrors.NewConfigError("nothing to evaluate: pass -e PROGRAM or --repl")
	}
	return nil
}
