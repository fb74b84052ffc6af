package allocator_test

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/allocator/mocks"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

// expectPrecondition runs f and fails unless it panics with a
// PreconditionError whose message contains want.
func expectPrecondition(t *testing.T, want string, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		pe, ok := r.(apperrors.PreconditionError)
		if !ok {
			t.Fatalf("expected PreconditionError panic, got %#v", r)
		}
		if !strings.Contains(pe.Message, want) {
			t.Errorf("panic message %q should contain %q", pe.Message, want)
		}
	}()
	f()
}

func TestAllocator_Negotiation(t *testing.T) {
	t.Parallel()

	t.Run("unsupported capability is fatal", func(t *testing.T) {
		t.Parallel()
		a := allocator.New(allocator.NewArenaBackend(8))
		expectPrecondition(t, "unsupported capability", func() {
			_, _ = a.Allocate(4, allocator.Caps(allocator.Zeroed))
		})
	})

	t.Run("omitting a required capability is fatal", func(t *testing.T) {
		t.Parallel()
		a := allocator.New(allocator.NewHeapBackend(), allocator.WithRequired(allocator.Caps(allocator.LeakCheck)))
		expectPrecondition(t, "required capability", func() {
			_, _ = a.Allocate(4, allocator.Caps(allocator.Reallocate))
		})
	})

	t.Run("requiring an unsupported capability is fatal", func(t *testing.T) {
		t.Parallel()
		expectPrecondition(t, "cannot require", func() {
			allocator.New(allocator.NewArenaBackend(8), allocator.WithRequired(allocator.Caps(allocator.Zeroed)))
		})
	})

	t.Run("reallocation needs the capability on the handle", func(t *testing.T) {
		t.Parallel()
		a := allocator.New(allocator.NewHeapBackend())
		h, err := a.Allocate(2, 0)
		if err != nil {
			t.Fatal(err)
		}
		expectPrecondition(t, "does not support reallocation", func() {
			_, _ = a.Reallocate(h, 8)
		})
	})
}

func TestAllocator_Lifecycle(t *testing.T) {
	t.Parallel()
	for _, kind := range allocator.Kinds() {
		kind := kind
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			b, _ := allocator.NewBackend(kind, 64)
			a := allocator.New(b, allocator.WithRequired(allocator.Caps(allocator.LeakCheck)))
			caps := a.Defaults().With(allocator.Reallocate)

			h, err := a.Allocate(4, caps)
			if err != nil {
				t.Fatal(err)
			}
			if d := h.Query(); d.Len != 4 || d.Caps != caps {
				t.Errorf("Query() = %+v", d)
			}
			h.Words()[3] = 42

			h, err = a.Reallocate(h, 40)
			if err != nil {
				t.Fatal(err)
			}
			if len(h.Words()) != 40 || h.Words()[3] != 42 {
				t.Errorf("reallocation lost contents")
			}

			s := a.Stats()
			if s.Allocations != 1 || s.Reallocations != 1 || s.LiveHandles != 1 || s.LiveWords != 40 || s.PeakWords != 40 {
				t.Errorf("unexpected stats %+v", s)
			}
			if err := a.Close(); err == nil {
				t.Error("Close should report the live handle")
			}

			a.Deallocate(&h)
			if h.Valid() {
				t.Error("Deallocate should invalidate the handle")
			}
			if err := a.Close(); err != nil {
				t.Errorf("Close after release: %v", err)
			}
			if s := a.Stats(); s.LiveWords != 0 || s.Deallocations != 1 {
				t.Errorf("unexpected stats after release %+v", s)
			}
		})
	}
}

func TestAllocator_InvalidHandles(t *testing.T) {
	t.Parallel()
	a := allocator.New(allocator.NewHeapBackend())
	other := allocator.New(allocator.NewHeapBackend())

	h, _ := a.Allocate(1, allocator.Caps(allocator.Reallocate))
	stale := h
	a.Deallocate(&h)

	expectPrecondition(t, "not valid", func() { _ = h.Words() })
	expectPrecondition(t, "not valid", func() { _ = h.Query() })
	expectPrecondition(t, "already released", func() { a.Deallocate(&stale) })

	h2, _ := a.Allocate(1, 0)
	expectPrecondition(t, "another allocator", func() { other.Deallocate(&h2) })
	expectPrecondition(t, "nil", func() { a.Deallocate(nil) })
}

func TestAllocator_Limit(t *testing.T) {
	t.Parallel()
	a := allocator.New(allocator.NewHeapBackend(), allocator.WithLimit(10))

	h, err := a.Allocate(8, allocator.Caps(allocator.Reallocate))
	if err != nil {
		t.Fatal(err)
	}

	_, err = a.Allocate(3, 0)
	var memErr apperrors.MemoryError
	if !errors.As(err, &memErr) {
		t.Fatalf("expected MemoryError, got %v", err)
	}
	if memErr.Requested != 3 || memErr.Available != 2 || memErr.Limit != 10 {
		t.Errorf("unexpected MemoryError %+v", memErr)
	}

	same, err := a.Reallocate(h, 11)
	if !errors.As(err, &memErr) {
		t.Fatalf("expected MemoryError on growth, got %v", err)
	}
	if !same.Valid() || len(same.Words()) != 8 {
		t.Error("failed reallocation must leave the handle intact")
	}

	h, err = a.Reallocate(h, 2)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(8, 0); err != nil {
		t.Errorf("shrinking should release budget: %v", err)
	}
}

func TestAllocator_BackendErrors(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	backend.EXPECT().Name().Return("mock").AnyTimes()
	backend.EXPECT().Supported().Return(allocator.Caps(allocator.Reallocate)).AnyTimes()

	boom := errors.New("out of memory")
	backend.EXPECT().Alloc(4).Return(nil, boom)
	backend.EXPECT().Alloc(1).Return([]uint32{0}, nil)
	backend.EXPECT().Realloc([]uint32{0}, 9).Return(nil, boom)
	backend.EXPECT().Free([]uint32{0})

	a := allocator.New(backend)
	if _, err := a.Allocate(4, 0); !errors.Is(err, boom) {
		t.Fatalf("expected backend error to propagate, got %v", err)
	}
	if a.Stats().LiveWords != 0 {
		t.Error("failed allocation must not be accounted")
	}

	h, err := a.Allocate(1, allocator.Caps(allocator.Reallocate))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Reallocate(h, 9); !errors.Is(err, boom) {
		t.Fatalf("expected backend error to propagate, got %v", err)
	}
	if a.Stats().LiveWords != 1 {
		t.Errorf("failed reallocation must not change accounting, live=%d", a.Stats().LiveWords)
	}
	a.Deallocate(&h)
}

func TestAllocator_ObserverAndLogger(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	obs := mocks.NewMockObserver(ctrl)
	gomock.InOrder(
		obs.EXPECT().Allocated("heap", 2),
		obs.EXPECT().Reallocated("heap", 2, 5),
		obs.EXPECT().Deallocated("heap", 5),
	)

	var buf bytes.Buffer
	a := allocator.New(allocator.NewHeapBackend(),
		allocator.WithObserver(obs),
		allocator.WithLogger(logging.NewStdLoggerAdapter(newStdLogger(&buf))))

	h, _ := a.Allocate(2, allocator.Caps(allocator.Reallocate))
	h, _ = a.Reallocate(h, 5)
	a.Deallocate(&h)

	for _, want := range []string{"allocated", "reallocated", "deallocated", "backend=heap"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output should contain %q, got: %s", want, buf.String())
		}
	}
}

func TestAllocator_Concurrent(t *testing.T) {
	t.Parallel()
	a := allocator.New(allocator.NewPoolBackend())

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 1; i <= 50; i++ {
				h, err := a.Allocate(i, allocator.Caps(allocator.Reallocate))
				if err != nil {
					t.Error(err)
					return
				}
				h, _ = a.Reallocate(h, 2*i)
				a.Deallocate(&h)
			}
		}()
	}
	wg.Wait()

	if s := a.Stats(); s.LiveHandles != 0 || s.LiveWords != 0 || s.Allocations != 400 {
		t.Errorf("unexpected stats after concurrent use %+v", s)
	}
}
