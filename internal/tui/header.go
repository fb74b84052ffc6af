package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
)

// HeaderModel renders the top bar: title, version, backend and elapsed
// time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	backend   string
	width     int
}

// NewHeaderModel creates a header whose timer starts now.
func NewHeaderModel(version, backend string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version, backend: backend}
}

// SetDone freezes the elapsed timer.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// Elapsed returns the time since the batch started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	title := "bigcalc"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}
	row := titleStyle.Render(title) +
		dimStyle.Render(" | ") + dimStyle.Render("alloc: "+h.backend) +
		dimStyle.Render(" | ") + valueStyle.Render(fmt.Sprintf("elapsed %s", format.FormatExecutionDuration(h.Elapsed())))
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Render(row)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
