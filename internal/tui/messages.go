package tui

import (
	"time"

	"github.com/agbru/bigcalc/internal/metrics"
)

// Messages carry the batch generation they belong to; the model drops
// those from a batch that was restarted.

// ProgressMsg reports that one program finished.
type ProgressMsg struct {
	Generation uint64
	Index      int
	Err        error
	Fraction   float64
	Failures   int
}

// ResultsMsg carries the formatted results of a finished batch.
type ResultsMsg struct {
	Generation uint64
	Rows       []ResultRow
}

// ResultRow is one program's result, already rendered to text so that the
// underlying value can be released before the dashboard draws it.
type ResultRow struct {
	Index    int
	Expr     string
	Value    string
	Bits     int
	Duration time.Duration
	Err      error
}

// ErrorMsg reports the failure that decides the exit code.
type ErrorMsg struct {
	Generation uint64
	Err        error
	Duration   time.Duration
}

// BatchCompleteMsg is sent once every value of a batch has been released.
type BatchCompleteMsg struct {
	Generation uint64
	ExitCode   int
}

// ContextCanceledMsg is sent when the batch context ends.
type ContextCanceledMsg struct {
	Generation uint64
	Err        error
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// StatsMsg carries a memory snapshot.
type StatsMsg struct {
	Snapshot metrics.MemorySnapshot
}
