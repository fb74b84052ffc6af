package orchestration

import "github.com/agbru/bigcalc/internal/format"

// ProgressAggregator folds progress updates into batch completion state for
// reporters.
type ProgressAggregator struct {
	state    *format.ProgressState
	failures int
}

// NewProgressAggregator tracks numPrograms programs. It returns nil when
// there is nothing to track.
func NewProgressAggregator(numPrograms int) *ProgressAggregator {
	if numPrograms <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressState(numPrograms)}
}

// Update records one finished program and returns the completed fraction.
func (a *ProgressAggregator) Update(u ProgressUpdate) float64 {
	a.state.MarkDone(u.Index)
	if u.Err != nil {
		a.failures++
	}
	return a.state.Fraction()
}

// Failures returns the number of failed programs seen so far.
func (a *ProgressAggregator) Failures() int { return a.failures }

// String renders "done/total".
func (a *ProgressAggregator) String() string { return a.state.String() }

// DrainChannel discards updates until the channel is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
