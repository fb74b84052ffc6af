package allocator

import (
	"fmt"
	"sort"
	"sync"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/logging"
)

// Stats is a point-in-time snapshot of an allocator's accounting.
type Stats struct {
	Allocations   uint64 // handles handed out
	Reallocations uint64 // successful resizes
	Deallocations uint64 // handles released
	LiveHandles   int    // handles not yet released
	LiveWords     uint64 // words held by live handles
	PeakWords     uint64 // high-water mark of LiveWords
}

// Allocator negotiates capabilities and tracks handles on top of a Backend.
// It is safe for concurrent use.
type Allocator struct {
	backend  Backend
	required Capabilities
	limit    uint64
	logger   logging.Logger
	observer Observer

	mu     sync.Mutex
	live   map[uint64]int
	nextID uint64
	stats  Stats
}

// Option configures an Allocator during construction.
type Option func(*Allocator)

// WithRequired sets the capabilities every request must ask for.
func WithRequired(caps Capabilities) Option {
	return func(a *Allocator) { a.required = caps }
}

// WithLimit caps the number of words held by live handles. Zero means
// unlimited.
func WithLimit(words uint64) Option {
	return func(a *Allocator) { a.limit = words }
}

// WithLogger routes allocation events to l at debug level.
func WithLogger(l logging.Logger) Option {
	return func(a *Allocator) { a.logger = l }
}

// WithObserver reports allocation events to o.
func WithObserver(o Observer) Option {
	return func(a *Allocator) { a.observer = o }
}

// New creates an Allocator on top of b. Requiring a capability the backend
// does not support is a precondition violation.
func New(b Backend, opts ...Option) *Allocator {
	a := &Allocator{
		backend: b,
		logger:  logging.NewNopLogger(),
		live:    make(map[uint64]int),
	}
	for _, opt := range opts {
		opt(a)
	}
	apperrors.Require(b.Supported().Contains(a.required), "allocator.New",
		"backend %s supports %s, cannot require %s", b.Name(), b.Supported(), a.required)
	return a
}

// Name returns the backend name.
func (a *Allocator) Name() string { return a.backend.Name() }

// Supported returns the capabilities that may be requested.
func (a *Allocator) Supported() Capabilities { return a.backend.Supported() }

// Defaults returns the capabilities every request must include.
func (a *Allocator) Defaults() Capabilities { return a.required }

// Allocate reserves length words with the requested capabilities.
//
// Requesting an unsupported capability, or omitting one of Defaults(), is a
// precondition violation. Exceeding the configured limit returns an
// apperrors.MemoryError.
func (a *Allocator) Allocate(length int, caps Capabilities) (Handle, error) {
	apperrors.Require(length >= 0, "Allocate", "negative length %d", length)
	apperrors.Require(a.Supported().Contains(caps), "Allocate",
		"used unsupported capability: requested %s, supported %s", caps, a.Supported())
	apperrors.Require(caps.Contains(a.required), "Allocate",
		"failed to ask for a required capability: requested %s, required %s", caps, a.required)

	if err := a.reserve(uint64(length)); err != nil {
		return Handle{}, err
	}
	buf, err := a.backend.Alloc(length)
	if err != nil {
		a.unreserve(uint64(length))
		return Handle{}, apperrors.WrapError(err, "%s: allocate %d words", a.Name(), length)
	}

	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.live[id] = length
	a.stats.Allocations++
	a.mu.Unlock()

	a.logger.Debug("allocated", logging.String("backend", a.Name()), logging.Int("words", length),
		logging.String("caps", caps.String()))
	if a.observer != nil {
		a.observer.Allocated(a.Name(), length)
	}
	return Handle{owner: a, buf: buf, caps: caps, id: id, valid: true}, nil
}

// Reallocate resizes the allocation behind h to length words and returns
// the handle that replaces h. The handle must carry the Reallocate
// capability. On error h remains valid and unchanged.
func (a *Allocator) Reallocate(h Handle, length int) (Handle, error) {
	a.checkLive(h, "Reallocate")
	apperrors.Require(length >= 0, "Reallocate", "negative length %d", length)
	apperrors.Require(a.Supported().Has(Reallocate) && h.caps.Has(Reallocate), "Reallocate",
		"this allocation does not support reallocation (caps %s)", h.caps)

	old := len(h.buf)
	if length > old {
		if err := a.reserve(uint64(length - old)); err != nil {
			return h, err
		}
	}
	buf, err := a.backend.Realloc(h.buf, length)
	if err != nil {
		if length > old {
			a.unreserve(uint64(length - old))
		}
		return h, apperrors.WrapError(err, "%s: reallocate %d -> %d words", a.Name(), old, length)
	}
	if length < old {
		a.unreserve(uint64(old - length))
	}

	a.mu.Lock()
	a.live[h.id] = length
	a.stats.Reallocations++
	a.mu.Unlock()

	a.logger.Debug("reallocated", logging.String("backend", a.Name()),
		logging.Int("from", old), logging.Int("to", length))
	if a.observer != nil {
		a.observer.Reallocated(a.Name(), old, length)
	}
	h.buf = buf
	return h, nil
}

// Deallocate releases the allocation and invalidates h.
func (a *Allocator) Deallocate(h *Handle) {
	apperrors.Require(h != nil, "Deallocate", "handle is nil")
	a.checkLive(*h, "Deallocate")

	words := len(h.buf)
	a.mu.Lock()
	delete(a.live, h.id)
	a.stats.Deallocations++
	a.mu.Unlock()
	a.unreserve(uint64(words))

	a.backend.Free(h.buf)
	a.logger.Debug("deallocated", logging.String("backend", a.Name()), logging.Int("words", words))
	if a.observer != nil {
		a.observer.Deallocated(a.Name(), words)
	}
	*h = Handle{}
}

// Stats returns a snapshot of the allocator's accounting.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.stats
	s.LiveHandles = len(a.live)
	return s
}

// Close reports handles that were never released. When the allocator does
// not require LeakCheck, Close only logs them.
func (a *Allocator) Close() error {
	a.mu.Lock()
	ids := make([]uint64, 0, len(a.live))
	var words int
	for id, n := range a.live {
		ids = append(ids, id)
		words += n
	}
	a.mu.Unlock()

	if len(ids) == 0 {
		return nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	err := fmt.Errorf("%s: %d handle(s) leaked holding %d words (first id %d)", a.Name(), len(ids), words, ids[0])
	if !a.required.Has(LeakCheck) {
		a.logger.Debug("unreleased handles at close", logging.Int("handles", len(ids)), logging.Int("words", words))
		return nil
	}
	a.logger.Error("leak detected", err, logging.Int("handles", len(ids)))
	return err
}

func (a *Allocator) checkLive(h Handle, op string) {
	apperrors.Require(h.Valid(), op, "handle is not valid")
	apperrors.Require(h.owner == a, op, "handle belongs to another allocator")
	a.mu.Lock()
	_, ok := a.live[h.id]
	a.mu.Unlock()
	apperrors.Require(ok, op, "handle %d was already released", h.id)
}

// reserve accounts for n more live words, failing if the limit would be
// exceeded.
func (a *Allocator) reserve(n uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.limit > 0 && a.stats.LiveWords+n > a.limit {
		return apperrors.MemoryError{
			Requested: n,
			Available: a.limit - a.stats.LiveWords,
			Limit:     a.limit,
		}
	}
	a.stats.LiveWords += n
	if a.stats.LiveWords > a.stats.PeakWords {
		a.stats.PeakWords = a.stats.LiveWords
	}
	return nil
}

func (a *Allocator) unreserve(n uint64) {
	a.mu.Lock()
	a.stats.LiveWords -= n
	a.mu.Unlock()
}
