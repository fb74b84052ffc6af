package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/bigcalc/internal/cli/mocks"
	"github.com/agbru/bigcalc/internal/orchestration"
)

func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	prev := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = prev })
}

func TestDisplayProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)
	withSpinner(t, s)

	var mu sync.Mutex
	var last string
	s.EXPECT().UpdateSuffix(gomock.Any()).Do(func(suffix string) {
		mu.Lock()
		last = suffix
		mu.Unlock()
	}).MinTimes(2)
	gomock.InOrder(
		s.EXPECT().Start(),
		s.EXPECT().Stop(),
	)

	ch := make(chan orchestration.ProgressUpdate, 2)
	ch <- orchestration.ProgressUpdate{Index: 0}
	ch <- orchestration.ProgressUpdate{Index: 1, Err: errTest}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, ch, 2, &bytes.Buffer{})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	for _, want := range []string{"2/2", "100.00%", "(1 failed)"} {
		if !strings.Contains(last, want) {
			t.Errorf("final suffix %q missing %q", last, want)
		}
	}
}

func TestDisplayProgress_NoPrograms(t *testing.T) {
	ctrl := gomock.NewController(t)
	withSpinner(t, mocks.NewMockSpinner(ctrl)) // no calls expected

	ch := make(chan orchestration.ProgressUpdate)
	close(ch)
	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgress(&wg, ch, 0, &bytes.Buffer{})
	wg.Wait()
}

func TestCLIProgressReporter_WithExecuteEvaluations(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)
	withSpinner(t, s)
	s.EXPECT().Start()
	s.EXPECT().Stop()
	s.EXPECT().UpdateSuffix(gomock.Any()).AnyTimes()

	ev := newTestEvaluator(t)
	results := orchestration.ExecuteEvaluations(t.Context(), ev, []string{"1 1 +", "2 2 *"}, orchestration.Options{Jobs: 1}, CLIProgressReporter{}, &bytes.Buffer{})
	defer orchestration.ReleaseResults(results)
	for _, r := range results {
		if r.Err != nil || r.Value.Uint64() != 2 && r.Value.Uint64() != 4 {
			t.Errorf("unexpected result %+v", r)
		}
	}
}
