// Package allocator implements the memory port consumed by the biguint
// engine. An Allocator wraps a Backend (heap, pool or arena), negotiates
// capabilities on every request, enforces an optional word limit, and keeps
// per-handle accounting so released or foreign handles are rejected.
//
// Capability negotiation failures and invalid handles are programming errors
// and panic with apperrors.PreconditionError. Running out of capacity is an
// environmental failure and is returned as apperrors.MemoryError.
package allocator
