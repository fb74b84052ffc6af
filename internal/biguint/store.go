package biguint

import (
	"errors"

	"github.com/agbru/bigcalc/internal/allocator"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// The digit store: z.h holds the capacity, z.n the number of words in use.

// check panics unless z refers to live storage.
func (z *BigUint) check(op string) {
	apperrors.Require(z != nil, op, "nil BigUint")
	apperrors.Require(z.h.Valid(), op, "BigUint used after Destroy")
}

// words returns the words in use.
func (z *BigUint) words() []uint32 { return z.h.Words()[:z.n] }

// view returns the first n words of z's storage. Shrinking or growing z
// keeps those words in place, so a view taken with z's length from before
// a resize still reads the old value.
func (z *BigUint) view(n int) []uint32 { return z.h.Words()[:n] }

func (z *BigUint) capacity() int { return len(z.h.Words()) }

// setLen resizes z to n words. Words exposed by growth are zeroed.
func (z *BigUint) setLen(n int) error {
	if n > z.capacity() {
		if err := z.grow(n); err != nil {
			return err
		}
	}
	if n > z.n {
		clear(z.h.Words()[z.n:n])
	}
	z.n = n
	return nil
}

// grow reallocates storage to hold at least n words, doubling the capacity
// when the allocator's budget allows it.
func (z *BigUint) grow(n int) error {
	c := z.capacity()
	apperrors.Require(z.h.Query().Caps.Has(allocator.Reallocate), "setLen",
		"cannot grow a fixed-capacity value from %d to %d words", c, n)

	target := max(n, 2*c)
	h, err := z.alloc.Reallocate(z.h, target)
	var memErr apperrors.MemoryError
	if err != nil && target > n && errors.As(err, &memErr) {
		h, err = z.alloc.Reallocate(z.h, n)
	}
	if err != nil {
		return err
	}
	z.h = h
	return nil
}

func (z *BigUint) word(i int) uint32 { return z.h.Words()[i] }

func (z *BigUint) setWord(i int, w uint32) { z.h.Words()[i] = w }

// append adds w as the new most-significant word.
func (z *BigUint) append(w uint32) error {
	n := z.n
	if err := z.setLen(n + 1); err != nil {
		return err
	}
	z.setWord(n, w)
	return nil
}

// insertZeros opens count zero words at index at, moving higher words up.
func (z *BigUint) insertZeros(at, count int) error {
	apperrors.Require(at >= 0 && at <= z.n && count >= 0, "insertZeros",
		"index %d count %d out of range for %d words", at, count, z.n)
	n := z.n
	if err := z.setLen(n + count); err != nil {
		return err
	}
	w := z.words()
	copy(w[at+count:], w[at:n])
	clear(w[at : at+count])
	return nil
}

// normalize drops most-significant zero words.
func (z *BigUint) normalize() {
	w := z.h.Words()
	for z.n > 0 && w[z.n-1] == 0 {
		z.n--
	}
}
