package format

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressState aggregates the completion of a batch of programs. It is
// safe for concurrent use.
type ProgressState struct {
	mu          sync.Mutex
	done        []bool
	numPrograms int
}

// NewProgressState tracks numPrograms programs.
func NewProgressState(numPrograms int) *ProgressState {
	return &ProgressState{done: make([]bool, numPrograms), numPrograms: numPrograms}
}

// MarkDone records program index as finished. Out-of-range indexes are
// ignored.
func (ps *ProgressState) MarkDone(index int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	if index >= 0 && index < ps.numPrograms {
		ps.done[index] = true
	}
}

// Completed returns how many programs finished.
func (ps *ProgressState) Completed() int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	n := 0
	for _, d := range ps.done {
		if d {
			n++
		}
	}
	return n
}

// Fraction returns the completed share in [0, 1].
func (ps *ProgressState) Fraction() float64 {
	if ps.numPrograms == 0 {
		return 0
	}
	return float64(ps.Completed()) / float64(ps.numPrograms)
}

// String renders "done/total".
func (ps *ProgressState) String() string {
	return fmt.Sprintf("%d/%d", ps.Completed(), ps.numPrograms)
}

// ProgressBar renders progress in [0, 1] as a bar of width cells.
func ProgressBar(progress float64, width int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
