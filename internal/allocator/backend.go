//go:generate mockgen -source=backend.go -destination=mocks/mock_backend.go -package=mocks

package allocator

// Backend supplies raw word storage to an Allocator. Implementations must be
// safe for concurrent use; the Allocator performs all capability and
// validity checks before delegating.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Supported returns the capabilities this backend can honour.
	Supported() Capabilities
	// Alloc returns a slice of exactly n words.
	Alloc(n int) ([]uint32, error)
	// Realloc resizes buf to n words, preserving the first min(len(buf), n)
	// words. The returned slice replaces buf.
	Realloc(buf []uint32, n int) ([]uint32, error)
	// Free returns buf to the backend.
	Free(buf []uint32)
}

// Observer receives allocation events, typically to export metrics.
type Observer interface {
	Allocated(backend string, words int)
	Reallocated(backend string, from, to int)
	Deallocated(backend string, words int)
}
