package biguint

import (
	"math/big"
	"strings"
	"testing"

	"github.com/agbru/bigcalc/internal/allocator"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// newTestAllocator returns a leak-checked heap allocator that fails the test
// if any value is still alive at cleanup.
func newTestAllocator(tb testing.TB) *allocator.Allocator {
	tb.Helper()
	return newTestAllocatorFor(tb, allocator.NewHeapBackend())
}

func newTestAllocatorFor(tb testing.TB, b allocator.Backend, opts ...allocator.Option) *allocator.Allocator {
	tb.Helper()
	opts = append([]allocator.Option{allocator.WithRequired(allocator.Caps(allocator.LeakCheck))}, opts...)
	a := allocator.New(b, opts...)
	tb.Cleanup(func() {
		if err := a.Close(); err != nil {
			tb.Errorf("leaked values: %v", err)
		}
	})
	return a
}

// forEachBackend runs f once per allocator backend.
func forEachBackend(t *testing.T, f func(t *testing.T, alloc *allocator.Allocator)) {
	t.Helper()
	for _, kind := range allocator.Kinds() {
		t.Run(kind, func(t *testing.T) {
			t.Parallel()
			b, err := allocator.NewBackend(kind, 1<<12)
			if err != nil {
				t.Fatal(err)
			}
			f(t, newTestAllocatorFor(t, b))
		})
	}
}

// mustNew creates a value destroyed at test cleanup.
func mustNew(tb testing.TB, alloc *allocator.Allocator) *BigUint {
	tb.Helper()
	x, err := New(alloc)
	if err != nil {
		tb.Fatalf("New: %v", err)
	}
	tb.Cleanup(x.Destroy)
	return x
}

// fromUint64 creates a value holding v.
func fromUint64(tb testing.TB, alloc *allocator.Allocator, v uint64) *BigUint {
	tb.Helper()
	x := mustNew(tb, alloc)
	if err := x.SetUint64(v); err != nil {
		tb.Fatalf("SetUint64: %v", err)
	}
	return x
}

// fromBig creates a value holding v, which must not be negative.
func fromBig(tb testing.TB, alloc *allocator.Allocator, v *big.Int) *BigUint {
	tb.Helper()
	x := mustNew(tb, alloc)
	if err := x.SetWords(bigWords(v)); err != nil {
		tb.Fatalf("SetWords: %v", err)
	}
	return x
}

// fromHex parses a hexadecimal literal through math/big.
func fromHex(tb testing.TB, alloc *allocator.Allocator, s string) *BigUint {
	tb.Helper()
	return fromBig(tb, alloc, mustBig(tb, s))
}

func mustBig(tb testing.TB, hex string) *big.Int {
	tb.Helper()
	v, ok := new(big.Int).SetString(strings.TrimPrefix(hex, "0x"), 16)
	if !ok {
		tb.Fatalf("bad hex literal %q", hex)
	}
	return v
}

// bigWords splits v into 32-bit words, least significant first.
func bigWords(v *big.Int) []uint32 {
	var ws []uint32
	t := new(big.Int).Set(v)
	for t.Sign() > 0 {
		ws = append(ws, uint32(t.Uint64()))
		t.Rsh(t, 32)
	}
	return ws
}

// toBig converts x to a big.Int.
func toBig(x *BigUint) *big.Int {
	r := new(big.Int)
	for i := x.Len() - 1; i >= 0; i-- {
		r.Lsh(r, 32)
		r.Or(r, new(big.Int).SetUint64(uint64(x.Word(i))))
	}
	return r
}

// wordsFromBytes builds a normalized word slice from fuzz or property input.
func wordsFromBytes(data []byte) []uint32 {
	ws := make([]uint32, 0, (len(data)+3)/4)
	for i := 0; i < len(data); i += 4 {
		var w uint32
		for j := 0; j < 4 && i+j < len(data); j++ {
			w |= uint32(data[i+j]) << (8 * j)
		}
		ws = append(ws, w)
	}
	for len(ws) > 0 && ws[len(ws)-1] == 0 {
		ws = ws[:len(ws)-1]
	}
	return ws
}

// assertNormalized fails if x keeps a most-significant zero word.
func assertNormalized(tb testing.TB, x *BigUint) {
	tb.Helper()
	if x.n > 0 && x.word(x.n-1) == 0 {
		tb.Errorf("value has a most-significant zero word: %v", x.view(x.n))
	}
}

// assertEqualBig fails unless x holds want.
func assertEqualBig(tb testing.TB, x *BigUint, want *big.Int) {
	tb.Helper()
	assertNormalized(tb, x)
	if got := toBig(x); got.Cmp(want) != 0 {
		tb.Errorf("got %#x, want %#x", got, want)
	}
}

// expectPrecondition fails unless f panics with a PreconditionError for op.
func expectPrecondition(tb testing.TB, op string, f func()) {
	tb.Helper()
	defer func() {
		tb.Helper()
		r := recover()
		pe, ok := r.(apperrors.PreconditionError)
		if !ok {
			tb.Fatalf("expected PreconditionError panic, got %#v", r)
		}
		if pe.Op != op {
			tb.Errorf("panic from %q, want %q (%v)", pe.Op, op, pe)
		}
	}()
	f()
}

// truncatedXor is the reference for Xor: both operands are cut to the
// word length of the shorter one before the XOR.
func truncatedXor(x, y *big.Int) *big.Int {
	words := min((x.BitLen()+31)/32, (y.BitLen()+31)/32)
	mask := new(big.Int).Lsh(big.NewInt(1), uint(32*words))
	mask.Sub(mask, big.NewInt(1))
	xm := new(big.Int).And(x, mask)
	ym := new(big.Int).And(y, mask)
	return xm.Xor(xm, ym)
}
