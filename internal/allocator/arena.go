package allocator

import "sync"

// ArenaBackend pre-allocates a contiguous block of words and serves requests
// with a bump pointer. Free is a no-op; Reset releases everything at once.
// When the block is exhausted it falls back to heap allocation.
//
// Arena words are reused across Reset without clearing, so the backend does
// not offer the Zeroed capability.
type ArenaBackend struct {
	mu     sync.Mutex
	buf    []uint32
	offset int
	last   []uint32
}

// NewArenaBackend creates an arena holding words words.
func NewArenaBackend(words int) *ArenaBackend {
	if words < 0 {
		words = 0
	}
	return &ArenaBackend{buf: make([]uint32, words)}
}

// Name implements Backend.
func (*ArenaBackend) Name() string { return "arena" }

// Supported implements Backend.
func (*ArenaBackend) Supported() Capabilities { return Caps(Reallocate, LeakCheck) }

// Alloc implements Backend.
func (a *ArenaBackend) Alloc(n int) ([]uint32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bump(n), nil
}

func (a *ArenaBackend) bump(n int) []uint32 {
	if n == 0 {
		return []uint32{}
	}
	if a.offset+n > len(a.buf) {
		// Fallback: allocate from heap
		return make([]uint32, n)
	}
	slice := a.buf[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	a.last = slice
	return slice
}

// Realloc implements Backend. The most recent arena allocation grows in
// place when the block has room; anything else is copied to a fresh slice.
func (a *ArenaBackend) Realloc(buf []uint32, n int) ([]uint32, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if n <= len(buf) {
		return buf[:n], nil
	}
	if a.isLast(buf) {
		start := a.offset - len(buf)
		if start+n <= len(a.buf) {
			a.offset = start + n
			a.last = a.buf[start : start+n : start+n]
			return a.last, nil
		}
	}
	grown := a.bump(n)
	copy(grown, buf)
	return grown, nil
}

func (a *ArenaBackend) isLast(buf []uint32) bool {
	return len(buf) > 0 && len(a.last) == len(buf) && &a.last[0] == &buf[0]
}

// Free implements Backend.
func (*ArenaBackend) Free([]uint32) {}

// Reset makes the whole block available again. Slices handed out before the
// reset must no longer be used.
func (a *ArenaBackend) Reset() {
	a.mu.Lock()
	a.offset = 0
	a.last = nil
	a.mu.Unlock()
}

// UsedWords returns the number of words currently allocated from the arena.
func (a *ArenaBackend) UsedWords() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.offset
}

// CapacityWords returns the total capacity of the arena in words.
func (a *ArenaBackend) CapacityWords() int {
	return len(a.buf)
}
