package allocator

import (
	"fmt"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Backend kinds selectable from configuration.
const (
	KindHeap  = "heap"
	KindPool  = "pool"
	KindArena = "arena"
)

// Kinds lists the selectable backend kinds.
func Kinds() []string { return []string{KindHeap, KindPool, KindArena} }

// NewBackend builds the backend named by kind. arenaWords sizes the arena
// backend and is ignored otherwise.
func NewBackend(kind string, arenaWords int) (Backend, error) {
	switch strings.ToLower(kind) {
	case KindHeap:
		return NewHeapBackend(), nil
	case KindPool:
		return NewPoolBackend(), nil
	case KindArena:
		return NewArenaBackend(arenaWords), nil
	default:
		return nil, apperrors.ValidationError{
			Field:   "alloc",
			Message: fmt.Sprintf("unknown allocator %q (valid: %s)", kind, strings.Join(Kinds(), ", ")),
		}
	}
}
