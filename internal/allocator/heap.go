package allocator

// HeapBackend serves every request from the Go heap. Released words are left
// to the garbage collector.
type HeapBackend struct{}

// NewHeapBackend returns a heap backend.
func NewHeapBackend() *HeapBackend { return &HeapBackend{} }

// Name implements Backend.
func (*HeapBackend) Name() string { return "heap" }

// Supported implements Backend.
func (*HeapBackend) Supported() Capabilities { return Caps(Reallocate, Zeroed, LeakCheck) }

// Alloc implements Backend.
func (*HeapBackend) Alloc(n int) ([]uint32, error) { return make([]uint32, n), nil }

// Realloc implements Backend. Growth within the existing capacity reuses
// the backing array.
func (*HeapBackend) Realloc(buf []uint32, n int) ([]uint32, error) {
	if n <= cap(buf) {
		old := len(buf)
		buf = buf[:n]
		if n > old {
			clear(buf[old:])
		}
		return buf, nil
	}
	grown := make([]uint32, n)
	copy(grown, buf)
	return grown, nil
}

// Free implements Backend.
func (*HeapBackend) Free([]uint32) {}
