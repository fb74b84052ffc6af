package biguint

import (
	"math"
	"math/bits"
	"slices"

	"github.com/agbru/bigcalc/internal/allocator"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// initialWords is the capacity of a new value, enough for any uint64.
const initialWords = 2

// BigUint is an arbitrary-precision unsigned integer. The zero value is not
// usable; create values with New and release them with Destroy.
//
// A BigUint must not be used from several goroutines at once.
type BigUint struct {
	alloc *allocator.Allocator
	h     allocator.Handle
	n     int
}

// New returns a BigUint with value 0 whose storage comes from alloc.
func New(alloc *allocator.Allocator) (*BigUint, error) {
	apperrors.Require(alloc != nil, "New", "nil allocator")
	return newWithCaps(alloc, initialWords, alloc.Defaults().With(allocator.Reallocate))
}

// newFixed returns a zero value holding capacity words of storage, requested
// with only the allocator's required capabilities. Unless Reallocate is
// required, growing it past capacity panics.
func newFixed(alloc *allocator.Allocator, capacity int) (*BigUint, error) {
	return newWithCaps(alloc, capacity, alloc.Defaults())
}

func newWithCaps(alloc *allocator.Allocator, capacity int, caps allocator.Capabilities) (*BigUint, error) {
	h, err := alloc.Allocate(capacity, caps)
	if err != nil {
		return nil, err
	}
	return &BigUint{alloc: alloc, h: h}, nil
}

// Destroy releases the storage of z. Destroying a nil BigUint is a no-op;
// any other use of z afterwards panics.
func (z *BigUint) Destroy() {
	if z == nil {
		return
	}
	z.check("Destroy")
	z.alloc.Deallocate(&z.h)
	z.n = 0
}

// Allocator returns the allocator z draws its storage from.
func (z *BigUint) Allocator() *allocator.Allocator { return z.alloc }

// Set sets z to the value of x.
func (z *BigUint) Set(x *BigUint) error {
	z.check("Set")
	x.check("Set")
	if z == x {
		return nil
	}
	n := x.n
	if err := z.setLen(n); err != nil {
		return err
	}
	copy(z.words(), x.view(n))
	return nil
}

// Clone returns a new BigUint on the same allocator holding the value of z.
func (z *BigUint) Clone() (*BigUint, error) {
	z.check("Clone")
	c, err := New(z.alloc)
	if err != nil {
		return nil, err
	}
	if err := c.Set(z); err != nil {
		c.Destroy()
		return nil, err
	}
	return c, nil
}

// SetUint64 sets z to v.
func (z *BigUint) SetUint64(v uint64) error {
	z.check("SetUint64")
	if err := z.setLen(2); err != nil {
		return err
	}
	z.setWord(0, uint32(v))
	z.setWord(1, uint32(v>>32))
	z.normalize()
	return nil
}

// Uint64 returns the value of z, or math.MaxUint64 if it does not fit.
func (z *BigUint) Uint64() uint64 {
	z.check("Uint64")
	switch {
	case z.n == 0:
		return 0
	case z.n == 1:
		return uint64(z.word(0))
	case z.n == 2:
		return uint64(z.word(1))<<32 | uint64(z.word(0))
	}
	return math.MaxUint64
}

// FitsUint64 reports whether Uint64 returns the exact value of z.
func (z *BigUint) FitsUint64() bool {
	z.check("FitsUint64")
	return z.n <= 2
}

// Float64 returns a lossy float64 approximation of z, accumulated word by
// word from the most significant end. Each step rounds, so the result may
// differ from the nearest float64 in the last place. Values beyond the
// float64 range yield +Inf.
func (z *BigUint) Float64() float64 {
	z.check("Float64")
	var f float64
	for i := z.n - 1; i >= 0; i-- {
		f = f*(1<<32) + float64(z.word(i))
	}
	return f
}

// IsZero reports whether z == 0.
func (z *BigUint) IsZero() bool {
	z.check("IsZero")
	return z.n == 0
}

// Len returns the number of words in z.
func (z *BigUint) Len() int {
	z.check("Len")
	return z.n
}

// Word returns word i of z, least significant first.
func (z *BigUint) Word(i int) uint32 {
	z.check("Word")
	apperrors.Require(i >= 0 && i < z.n, "Word", "index %d out of range for %d words", i, z.n)
	return z.word(i)
}

// Words returns a copy of the words of z, least significant first.
func (z *BigUint) Words() []uint32 {
	z.check("Words")
	return slices.Clone(z.words())
}

// SetWords sets z from ws, least significant first. Most-significant zero
// words in ws are dropped.
func (z *BigUint) SetWords(ws []uint32) error {
	z.check("SetWords")
	if err := z.setLen(len(ws)); err != nil {
		return err
	}
	copy(z.words(), ws)
	z.normalize()
	return nil
}

// BitLen returns the length of z in bits. The bit length of 0 is 0.
func (z *BigUint) BitLen() int {
	z.check("BitLen")
	if z.n == 0 {
		return 0
	}
	return 32*(z.n-1) + bits.Len32(z.word(z.n-1))
}
