package allocator

import apperrors "github.com/agbru/bigcalc/internal/errors"

// Handle refers to a single live allocation. Handles are small values and
// may be copied, but only the most recent handle returned for an allocation
// is valid; Deallocate invalidates the handle it is given.
type Handle struct {
	owner *Allocator
	buf   []uint32
	caps  Capabilities
	id    uint64
	valid bool
}

// HandleData describes an allocation.
type HandleData struct {
	// Len is the allocation length in words.
	Len int
	// Caps is the set of capabilities negotiated for the allocation.
	Caps Capabilities
}

// Valid reports whether the handle refers to a live allocation.
func (h Handle) Valid() bool { return h.valid && h.owner != nil }

// Words gives mutable access to the allocation.
func (h Handle) Words() []uint32 {
	apperrors.Require(h.Valid(), "Handle.Words", "handle is not valid")
	return h.buf
}

// Query returns the allocation metadata.
func (h Handle) Query() HandleData {
	apperrors.Require(h.Valid(), "Handle.Query", "handle is not valid")
	return HandleData{Len: len(h.buf), Caps: h.caps}
}

// Allocator returns the allocator that produced the handle.
func (h Handle) Allocator() *Allocator { return h.owner }
