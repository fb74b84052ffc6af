//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
)

const (
	// TruncationLimit is the digit count from which a value is shortened
	// unless verbose output is requested.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when
	// a value is shortened.
	DisplayEdges = 25
	// ProgressRefreshRate is how often the spinner suffix is redrawn.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in cells of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the animation.
	Start()
	// Stop halts the animation and clears the line.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

// newSpinner is replaced in tests.
var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressSuffix renders the text shown after the spinner.
func progressSuffix(agg *orchestration.ProgressAggregator, fraction float64) string {
	suffix := fmt.Sprintf(" Evaluating %s %s %6.2f%%", format.ProgressBar(fraction, ProgressBarWidth), agg, fraction*100)
	if n := agg.Failures(); n > 0 {
		suffix += fmt.Sprintf(" (%d failed)", n)
	}
	return suffix
}

// DisplayProgress shows a spinner with a progress bar until progressChan is
// closed. It must run in its own goroutine and calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, numPrograms int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numPrograms)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(progressSuffix(agg, 0))
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	fraction := 0.0
	dirty := false
	for {
		select {
		case u, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(progressSuffix(agg, fraction))
				return
			}
			fraction = agg.Update(u)
			dirty = true
		case <-ticker.C:
			if dirty {
				s.UpdateSuffix(progressSuffix(agg, fraction))
				dirty = false
			}
		}
	}
}
