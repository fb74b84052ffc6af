// This file provides a size-class pooled backend to reduce GC pressure when
// many short-lived values (multiplication and division scratch) are created.

package allocator

import (
	"math/bits"
	"sync"
)

// ─────────────────────────────────────────────────────────────────────────────
// Word Slice Pools
// ─────────────────────────────────────────────────────────────────────────────

// wordSliceSizes defines the size classes, powers of 4 from 4^2 = 16 words
// up to 4^11 = 4M words (16MB).
var wordSliceSizes = [...]int{16, 64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304}

// getWordSlicePoolIndex returns the pool index for a given size, or -1 if
// the size is too large for pooling.
//
// Index i holds slices of 4^(i+2) words, so bits.Len(size-1) maps directly
// to the index.
func getWordSlicePoolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > wordSliceSizes[len(wordSliceSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 3) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// getWordSlicePoolIndexLinear is the reference linear search used to test
// getWordSlicePoolIndex.
func getWordSlicePoolIndexLinear(size int) int {
	for i, s := range wordSliceSizes {
		if size <= s {
			return i
		}
	}
	return -1
}

// PoolBackend hands out word slices from sync.Pool size classes. Requests
// larger than the biggest class are allocated directly and left to the GC.
type PoolBackend struct {
	pools [len(wordSliceSizes)]sync.Pool
}

// NewPoolBackend returns a pooled backend.
func NewPoolBackend() *PoolBackend {
	p := &PoolBackend{}
	for i := range p.pools {
		size := wordSliceSizes[i]
		p.pools[i].New = func() any { return make([]uint32, size) }
	}
	return p
}

// Name implements Backend.
func (*PoolBackend) Name() string { return "pool" }

// Supported implements Backend.
func (*PoolBackend) Supported() Capabilities { return Caps(Reallocate, Zeroed, LeakCheck) }

// Alloc implements Backend. The returned slice is zeroed.
//
// The slice should be released with Free, preferably with defer.
func (p *PoolBackend) Alloc(n int) ([]uint32, error) {
	idx := getWordSlicePoolIndex(n)
	if idx < 0 {
		return make([]uint32, n), nil
	}
	slice := p.pools[idx].Get().([]uint32)
	clear(slice)
	return slice[:n], nil
}

// Realloc implements Backend. Growth within the size class reslices;
// otherwise the contents move to a slice from a larger class.
func (p *PoolBackend) Realloc(buf []uint32, n int) ([]uint32, error) {
	if n <= cap(buf) {
		old := len(buf)
		buf = buf[:n]
		if n > old {
			clear(buf[old:])
		}
		return buf, nil
	}
	grown, _ := p.Alloc(n)
	copy(grown, buf)
	p.Free(buf)
	return grown, nil
}

// Free implements Backend. Slices whose capacity does not match a size
// class were allocated directly and are left to the GC.
func (p *PoolBackend) Free(buf []uint32) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := getWordSlicePoolIndex(c)
	if idx >= 0 && wordSliceSizes[idx] == c {
		p.pools[idx].Put(buf[:c])
	}
}

// Prewarm pre-allocates count slices in the size class serving words, so
// the first allocations of a batch do not hit the allocator.
func (p *PoolBackend) Prewarm(words, count int) {
	idx := getWordSlicePoolIndex(words)
	if idx < 0 {
		return
	}
	for i := 0; i < count; i++ {
		p.pools[idx].Put(make([]uint32, wordSliceSizes[idx]))
	}
}

// PrewarmCount picks how many slices to pre-allocate for a batch of the
// given number of programs:
//   - up to 4 programs: 2 slices
//   - up to 16 programs: 4 slices
//   - more: 6 slices
func PrewarmCount(programs int) int {
	switch {
	case programs > 16:
		return 6
	case programs > 4:
		return 4
	default:
		return 2
	}
}
