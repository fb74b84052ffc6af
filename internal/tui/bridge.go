package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

// valueEdges is how many leading and trailing digits the dashboard keeps
// of long values.
const valueEdges = 12

// programRef is a shared reference to the tea.Program. Bubbletea copies the
// model on every Update, so the bridges need a pointer that survives.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is attached.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter forwards batch progress to the dashboard.
type TUIProgressReporter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains progressChan, sending a ProgressMsg per update.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numPrograms int, _ io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numPrograms)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}
	for u := range progressChan {
		f := agg.Update(u)
		t.ref.Send(ProgressMsg{Generation: t.gen, Index: u.Index, Err: u.Err, Fraction: f, Failures: agg.Failures()})
	}
}

// TUIResultPresenter renders results into dashboard messages.
type TUIResultPresenter struct {
	ref *programRef
	gen uint64
}

var _ orchestration.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentResults formats every value and sends them as one ResultsMsg.
func (t *TUIResultPresenter) PresentResults(results []orchestration.EvaluationResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(ResultsMsg{Generation: t.gen, Rows: resultRows(results, opts)})
}

// HandleError sends the failure to the dashboard and returns its exit code.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Generation: t.gen, Err: err, Duration: duration})
	return apperrors.ExitCodeFor(err)
}

func resultRows(results []orchestration.EvaluationResult, opts orchestration.PresentationOptions) []ResultRow {
	rows := make([]ResultRow, len(results))
	for i, r := range results {
		row := ResultRow{Index: r.Index, Expr: r.Expr, Duration: r.Duration, Err: r.Err}
		if r.Err == nil {
			row.Bits = r.Value.BitLen()
			if opts.Hex {
				row.Value = format.Hex(r.Value)
			} else if s, err := format.Decimal(r.Value); err != nil {
				row.Err = err
			} else {
				row.Value = s
			}
			if !opts.Verbose {
				row.Value = format.Truncate(row.Value, valueEdges)
			}
		}
		rows[i] = row
	}
	return rows
}
