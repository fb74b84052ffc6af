// Package tui implements the live dashboard shown with --tui: one line per
// program, batch progress and allocator memory, driven by bubbletea.
package tui

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
)

const (
	tickInterval    = 500 * time.Millisecond
	memoryPanelPart = 40 // percent of the width
)

// Session is what the dashboard drives.
type Session struct {
	Evaluator orchestration.Evaluator
	Collector *metrics.MemoryCollector
	Observer  orchestration.EvaluationObserver
	Config    config.AppConfig
	Version   string
}

// ExecutionState holds the state of the current batch.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	failed     bool
	exitCode   int
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header   HeaderModel
	programs ProgramsModel
	memory   MemoryModel
	spinner  spinner.Model
	help     help.Model
	keymap   KeyMap

	ExecutionState

	parentCtx context.Context
	session   Session
	ref       *programRef
	paused    bool
	width     int
	height    int
}

// NewModel creates the dashboard for s.
func NewModel(parentCtx context.Context, s Session) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	backend := ""
	if s.Collector != nil {
		backend = s.Collector.Snapshot().Backend
	}
	return Model{
		header:   NewHeaderModel(s.Version, backend),
		programs: NewProgramsModel(s.Config.Exprs),
		memory:   NewMemoryModel(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		help:     help.New(),
		keymap:   DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		session:   s,
		ref:       &programRef{},
	}
}

// ExitCode returns the exit code of the last batch.
func (m Model) ExitCode() int { return m.exitCode }

// Init starts the batch, the sampler and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		m.spinner.Tick,
		sampleStatsCmd(m.session.Collector),
		startBatchCmd(m.ref, m.ctx, m.session, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.programs.Progress(msg)
		}
		return m, nil

	case ResultsMsg:
		if msg.Generation == m.generation {
			m.programs.SetResults(msg.Rows)
		}
		return m, nil

	case ErrorMsg:
		if msg.Generation == m.generation {
			m.failed = true
		}
		return m, nil

	case BatchCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		return m, sampleStatsCmd(m.session.Collector)

	case ContextCanceledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.exitCode = apperrors.ExitCodeFor(msg.Err)
		}
		m.done = true
		m.header.SetDone()
		return m, tea.Quit

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleStatsCmd(m.session.Collector), tickCmd())

	case StatsMsg:
		m.memory.Update(msg.Snapshot)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.header.Reset()
		m.programs.Reset()
		m.done = false
		m.failed = false
		m.paused = false
		m.exitCode = apperrors.ExitSuccess
		return m, tea.Batch(
			startBatchCmd(m.ref, m.ctx, m.session, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	memWidth := m.width * memoryPanelPart / 100
	m.memory.SetWidth(memWidth)
	m.programs.SetSize(m.width-memWidth, m.height-3)
	m.help.Width = m.width
}

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.programs.View(m.spinner.View()),
		m.memory.View())
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footerView())
}

func (m Model) footerView() string {
	var status string
	switch {
	case m.done && m.failed:
		status = errorStyle.Render("DONE WITH ERRORS")
	case m.done:
		status = runningStyle.Render("DONE")
	case m.paused:
		status = pausedStyle.Render("PAUSED")
	default:
		status = runningStyle.Render("RUNNING")
	}
	return " " + status + "  " + m.help.View(m.keymap)
}

// Run shows the dashboard on out until the user quits and returns the
// exit code of the last batch.
func Run(ctx context.Context, s Session, out io.Writer) int {
	initTUIStyles()

	model := NewModel(ctx, s)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(out), tea.WithAltScreen())
	model.ref.SetProgram(p)

	final, err := p.Run()
	m, ok := final.(Model)
	if ok {
		m.cancel()
	}
	switch {
	case ok && (err == nil || m.done):
		return m.exitCode
	case ctx.Err() != nil:
		return apperrors.ExitCodeFor(ctx.Err())
	case err != nil:
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// startBatchCmd evaluates the session's programs. Results are released
// before BatchCompleteMsg is returned.
func startBatchCmd(ref *programRef, ctx context.Context, s Session, gen uint64) tea.Cmd {
	return func() tea.Msg {
		if s.Config.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.Config.Timeout)
			defer cancel()
		}
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		presenter := &TUIResultPresenter{ref: ref, gen: gen}

		opts := orchestration.Options{Jobs: s.Config.Jobs, Observer: s.Observer}
		results := orchestration.ExecuteEvaluations(ctx, s.Evaluator, s.Config.Exprs, opts, reporter, io.Discard)
		defer orchestration.ReleaseResults(results)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			orchestration.MarkTimeouts(results, "batch", s.Config.Timeout)
		}

		presOpts := orchestration.PresentationOptions{Hex: s.Config.HexOutput, Verbose: s.Config.Verbose}
		code := orchestration.AnalyzeResults(results, presOpts, presenter, io.Discard)
		return BatchCompleteMsg{Generation: gen, ExitCode: code}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// sampleStatsCmd reads a memory snapshot off the UI goroutine.
func sampleStatsCmd(c *metrics.MemoryCollector) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg { return StatsMsg{Snapshot: c.Snapshot()} }
}

// watchContextCmd reports the end of the batch context.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCanceledMsg{Generation: gen, Err: ctx.Err()}
	}
}
