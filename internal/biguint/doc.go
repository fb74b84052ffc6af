// Package biguint implements arbitrary-precision unsigned integers on top of
// the allocator port.
//
// A BigUint stores its magnitude as 32-bit words, least significant first,
// and never keeps a most-significant zero word: zero is the empty sequence.
// Every operation writes into its receiver and accepts operands that alias
// the receiver.
//
// Storage comes from an *allocator.Allocator. Operations return an error
// only when the allocator cannot satisfy a request (for example when its
// word limit is exceeded). Programmer errors such as division by zero, a
// subtraction that would go negative, or use of a destroyed value panic
// with an apperrors.PreconditionError.
//
// Basic usage:
//
//	alloc := allocator.New(allocator.NewHeapBackend())
//	x, _ := biguint.New(alloc)
//	defer x.Destroy()
//	_ = x.SetUint64(1)
//	_ = x.Lsh(x, 100)
package biguint
