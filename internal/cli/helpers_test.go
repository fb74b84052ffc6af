package cli

import (
	"context"
	"testing"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/biguint"
	"github.com/agbru/bigcalc/internal/rpn"
	"github.com/agbru/bigcalc/internal/ui"
)

// plainOutput disables colors for the duration of the test.
func plainOutput(t *testing.T) {
	t.Helper()
	prev := ui.GetCurrentTheme()
	ui.SetCurrentTheme(ui.NoColorTheme)
	t.Cleanup(func() { ui.SetCurrentTheme(prev) })
}

func newTestEvaluator(t *testing.T) *rpn.Evaluator {
	t.Helper()
	alloc := allocator.New(allocator.NewHeapBackend(),
		allocator.WithRequired(allocator.Caps(allocator.LeakCheck)))
	t.Cleanup(func() {
		if err := alloc.Close(); err != nil {
			t.Errorf("leaked values: %v", err)
		}
	})
	return rpn.NewEvaluator(alloc)
}

func eval(t *testing.T, ev *rpn.Evaluator, program string) *biguint.BigUint {
	t.Helper()
	v, err := ev.Evaluate(context.Background(), program)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", program, err)
	}
	t.Cleanup(v.Destroy)
	return v
}
