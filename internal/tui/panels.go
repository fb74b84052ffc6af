package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/metrics"
)

// sampleHistory is the number of samples kept for the sparklines.
const sampleHistory = 60

type rowState int

const (
	rowPending rowState = iota
	rowDone
	rowFailed
)

// programRow is one line of the programs panel.
type programRow struct {
	expr  string
	state rowState
	ResultRow
}

// ProgramsModel lists the programs of the batch with their state.
type ProgramsModel struct {
	rows     []programRow
	fraction float64
	failures int
	width    int
	height   int
}

// NewProgramsModel creates the panel for programs, all pending.
func NewProgramsModel(programs []string) ProgramsModel {
	rows := make([]programRow, len(programs))
	for i, p := range programs {
		rows[i] = programRow{expr: p}
	}
	return ProgramsModel{rows: rows}
}

// SetSize updates the panel dimensions.
func (p *ProgramsModel) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// Reset marks every program pending again.
func (p *ProgramsModel) Reset() {
	for i := range p.rows {
		p.rows[i] = programRow{expr: p.rows[i].expr}
	}
	p.fraction = 0
	p.failures = 0
}

// Progress records that one program finished.
func (p *ProgramsModel) Progress(msg ProgressMsg) {
	if msg.Index >= 0 && msg.Index < len(p.rows) {
		p.rows[msg.Index].state = rowDone
		if msg.Err != nil {
			p.rows[msg.Index].state = rowFailed
			p.rows[msg.Index].Err = msg.Err
		}
	}
	p.fraction = msg.Fraction
	p.failures = msg.Failures
}

// SetResults fills in the rendered values.
func (p *ProgramsModel) SetResults(rows []ResultRow) {
	for _, r := range rows {
		if r.Index < 0 || r.Index >= len(p.rows) {
			continue
		}
		p.rows[r.Index].ResultRow = r
		p.rows[r.Index].state = rowDone
		if r.Err != nil {
			p.rows[r.Index].state = rowFailed
		}
	}
}

// Completed returns the number of finished programs.
func (p ProgramsModel) Completed() int {
	n := 0
	for _, r := range p.rows {
		if r.state != rowPending {
			n++
		}
	}
	return n
}

// View renders the panel. pending is drawn in front of unfinished
// programs.
func (p ProgramsModel) View(pending string) string {
	inner := max(p.width-4, 20)
	visible := len(p.rows)
	if p.height > 4 {
		visible = min(visible, p.height-4)
	}

	var b strings.Builder
	bar := format.ProgressBar(p.fraction, max(inner-20, 10))
	fmt.Fprintf(&b, "%s %d/%d", valueStyle.Render(bar), p.Completed(), len(p.rows))
	if p.failures > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" (%d failed)", p.failures)))
	}
	for _, r := range p.rows[:visible] {
		b.WriteString("\n")
		b.WriteString(r.view(pending, inner))
	}
	if hidden := len(p.rows) - visible; hidden > 0 {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("... and %d more", hidden)))
	}
	return panelStyle.Width(p.width - 2).Render(b.String())
}

func (r programRow) view(pending string, width int) string {
	var icon, detail string
	switch r.state {
	case rowPending:
		icon, detail = pending, dimStyle.Render("running")
	case rowFailed:
		icon, detail = errorStyle.Render("✗"), errorStyle.Render(fmt.Sprint(r.Err))
	default:
		icon = successStyle.Render("✓")
		if r.Value != "" {
			detail = valueStyle.Render(r.Value) + dimStyle.Render(fmt.Sprintf("  %d bits, %s", r.Bits, format.FormatExecutionDuration(r.Duration)))
		}
	}
	line := fmt.Sprintf("%s %s = %s", icon, r.expr, detail)
	if lipgloss.Width(line) > width {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}

// MemoryModel shows allocator and host usage with short histories.
type MemoryModel struct {
	snapshot metrics.MemorySnapshot
	live     *RingBuffer
	cpu      *RingBuffer
	width    int
}

// NewMemoryModel creates an empty memory panel.
func NewMemoryModel() MemoryModel {
	return MemoryModel{live: NewRingBuffer(sampleHistory), cpu: NewRingBuffer(sampleHistory)}
}

// SetWidth updates the panel width.
func (m *MemoryModel) SetWidth(w int) { m.width = w }

// Update records a snapshot.
func (m *MemoryModel) Update(snap metrics.MemorySnapshot) {
	m.snapshot = snap
	m.live.Push(float64(snap.Allocator.LiveWords))
	m.cpu.Push(snap.Host.CPUPercent)
}

// View renders the panel.
func (m MemoryModel) View() string {
	s := m.snapshot
	lines := []string{
		labelStyle.Render("live") + valueStyle.Render(fmt.Sprintf("%d words in %d values", s.Allocator.LiveWords, s.Allocator.LiveHandles)),
		labelStyle.Render("peak") + valueStyle.Render(fmt.Sprintf("%d words", s.Allocator.PeakWords)),
		labelStyle.Render("calls") + fmt.Sprintf("%d alloc, %d realloc, %d free", s.Allocator.Allocations, s.Allocator.Reallocations, s.Allocator.Deallocations),
		labelStyle.Render("words") + liveSparkStyle.Render(RenderSparkline(m.live.Slice(), m.live.Max())),
		labelStyle.Render("cpu") + cpuSparkStyle.Render(RenderSparkline(m.cpu.Slice(), 100)) + dimStyle.Render(fmt.Sprintf(" %.0f%%", m.cpu.Last())),
		labelStyle.Render("go heap") + fmt.Sprintf("%d KB, %d GC", s.HeapAlloc/1024, s.NumGC),
	}
	if s.Host.MaxRSS > 0 {
		lines = append(lines, labelStyle.Render("peak rss")+fmt.Sprintf("%d KB", s.Host.MaxRSS/1024))
	}
	return panelStyle.Width(max(m.width-2, 20)).Render(strings.Join(lines, "\n"))
}
