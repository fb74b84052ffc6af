package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/rpn"
	"github.com/agbru/bigcalc/internal/ui"
)

func newSession(t *testing.T, programs ...string) Session {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	initTUIStyles()
	t.Cleanup(func() {
		ui.SetCurrentTheme(prev)
		initTUIStyles()
	})

	alloc := allocator.New(allocator.NewHeapBackend(),
		allocator.WithRequired(allocator.Caps(allocator.LeakCheck)))
	t.Cleanup(func() {
		if err := alloc.Close(); err != nil {
			t.Errorf("leaked values: %v", err)
		}
	})
	return Session{
		Evaluator: rpn.NewEvaluator(alloc),
		Collector: metrics.NewMemoryCollector(alloc),
		Config:    config.AppConfig{Exprs: programs, Jobs: 2},
		Version:   "v1.0.0",
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestStartBatchCmd(t *testing.T) {
	s := newSession(t, "2 3 *", "1 0 /")
	m := NewModel(context.Background(), s)
	defer m.cancel()

	msg := startBatchCmd(m.ref, m.ctx, s, 0)()
	done, ok := msg.(BatchCompleteMsg)
	if !ok {
		t.Fatalf("expected BatchCompleteMsg, got %T", msg)
	}
	if done.ExitCode != apperrors.ExitErrorEvaluation {
		t.Errorf("exit code = %d, want %d", done.ExitCode, apperrors.ExitErrorEvaluation)
	}
}

func TestModel_BatchLifecycle(t *testing.T) {
	s := newSession(t, "2 3 *", "1 0 /", "7")
	m := NewModel(context.Background(), s)
	defer m.cancel()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})
	if !strings.Contains(m.View(), "running") {
		t.Errorf("pending programs should be shown as running:\n%s", m.View())
	}

	m, _ = update(t, m, ProgressMsg{Index: 1, Err: errors.New("division by zero"), Fraction: 1.0 / 3, Failures: 1})
	m, _ = update(t, m, ResultsMsg{Rows: []ResultRow{
		{Index: 0, Expr: "2 3 *", Value: "6", Bits: 3},
		{Index: 1, Expr: "1 0 /", Err: errors.New("division by zero")},
		{Index: 2, Expr: "7", Value: "7", Bits: 3},
	}})
	m, _ = update(t, m, ErrorMsg{Err: errors.New("division by zero")})
	m, cmd := update(t, m, BatchCompleteMsg{ExitCode: apperrors.ExitErrorEvaluation})
	if cmd == nil {
		t.Error("completion should trigger a final memory sample")
	}
	if !m.done || m.ExitCode() != apperrors.ExitErrorEvaluation {
		t.Errorf("done=%v exit=%d", m.done, m.ExitCode())
	}

	view := m.View()
	for _, want := range []string{"v1.0.0", "alloc: heap", "2 3 * = 6", "✗ 1 0 /", "division by zero", "(1 failed)", "DONE WITH ERRORS"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_StaleMessagesIgnored(t *testing.T) {
	s := newSession(t, "1")
	m := NewModel(context.Background(), s)
	defer func() { m.cancel() }()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil || m.generation != 1 {
		t.Fatalf("reset should start generation 1, got %d", m.generation)
	}
	m, _ = update(t, m, BatchCompleteMsg{Generation: 0, ExitCode: apperrors.ExitErrorEvaluation})
	m, _ = update(t, m, ContextCanceledMsg{Generation: 0, Err: context.Canceled})
	if m.done || m.ExitCode() != apperrors.ExitSuccess {
		t.Error("messages of a replaced batch must be ignored")
	}
}

func TestModel_Keys(t *testing.T) {
	s := newSession(t, "1")
	m := NewModel(context.Background(), s)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if !m.paused {
		t.Error("p should pause sampling")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
	if m.ctx.Err() == nil {
		t.Error("quitting should cancel the batch")
	}
	if m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("quitting a running batch should report cancellation, got %d", m.ExitCode())
	}
}

func TestModel_ContextCanceled(t *testing.T) {
	s := newSession(t, "1")
	ctx, cancel := context.WithCancel(context.Background())
	m := NewModel(ctx, s)
	cancel()

	msg := watchContextCmd(m.ctx, m.generation)()
	m, cmd := update(t, m, msg)
	if cmd == nil || m.ExitCode() != apperrors.ExitErrorCanceled {
		t.Errorf("cancellation should quit with the canceled code, got %d", m.ExitCode())
	}
}

func TestModel_Stats(t *testing.T) {
	s := newSession(t, "1")
	m := NewModel(context.Background(), s)
	defer m.cancel()

	msg := sampleStatsCmd(s.Collector)()
	m, _ = update(t, m, msg)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 20})
	if m.memory.live.Len() != 1 {
		t.Error("stats should be recorded")
	}
	if !strings.Contains(m.View(), "words in") {
		t.Errorf("memory panel missing:\n%s", m.View())
	}
	if sampleStatsCmd(nil) != nil {
		t.Error("no collector means no sampling")
	}
}
