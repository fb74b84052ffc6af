package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numPrograms int, out io.Writer) {
	DisplayProgress(wg, progressChan, numPrograms, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentResults prints the batch with DisplayResults.
func (CLIResultPresenter) PresentResults(results []orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResults(results, opts, out)
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleEvaluationError(err, duration, out, CLIColorProvider{})
}

// CLIColorProvider feeds the active theme to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.GetCurrentTheme().Error }
func (CLIColorProvider) Yellow() string { return ui.GetCurrentTheme().Warning }
func (CLIColorProvider) Reset() string  { return ui.GetCurrentTheme().Reset }

// DisplayMemoryStats prints allocator accounting next to the Go runtime's
// heap figures.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	st := ui.CurrentStyles()
	fmt.Fprintln(out, st.Header.Render("Memory"))
	fmt.Fprintf(out, "%s%s\n", st.Label.Render("Backend"), snap.Backend)
	fmt.Fprintf(out, "%s%d handles, %d words (%d bytes)\n", st.Label.Render("Live"),
		snap.Allocator.LiveHandles, snap.Allocator.LiveWords, snap.LiveBytes())
	fmt.Fprintf(out, "%s%d words\n", st.Label.Render("Peak"), snap.Allocator.PeakWords)
	fmt.Fprintf(out, "%s%d alloc, %d realloc, %d free\n", st.Label.Render("Calls"),
		snap.Allocator.Allocations, snap.Allocator.Reallocations, snap.Allocator.Deallocations)
	fmt.Fprintf(out, "%s%d bytes, %d GC cycles\n", st.Label.Render("Go heap"), snap.HeapAlloc, snap.NumGC)
	if h := snap.Host; h.HostTotal > 0 {
		fmt.Fprintf(out, "%s%.1f%% CPU, %.1f%% of %d bytes, peak RSS %d bytes\n", st.Label.Render("Host"),
			h.CPUPercent, h.MemPercent, h.HostTotal, h.MaxRSS)
	}
}
