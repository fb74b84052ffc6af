package biguint

import "math/bits"

// Word vector kernels. Each one tolerates z aliasing x or y exactly, since
// element i is written only after elements i of the inputs were read.

// addVV computes z = x + y for len(z) words and returns the carry.
func addVV(z, x, y []uint32) (c uint32) {
	for i := range z {
		z[i], c = bits.Add32(x[i], y[i], c)
	}
	return c
}

// subVV computes z = x - y for len(z) words and returns the borrow.
func subVV(z, x, y []uint32) (b uint32) {
	for i := range z {
		z[i], b = bits.Sub32(x[i], y[i], b)
	}
	return b
}

// addVW computes z = x + c where c is a single word, and returns the carry.
func addVW(z, x []uint32, c uint32) uint32 {
	for i := range z {
		z[i], c = bits.Add32(x[i], c, 0)
	}
	return c
}

// subVW computes z = x - b where b is a single word, and returns the borrow.
func subVW(z, x []uint32, b uint32) uint32 {
	for i := range z {
		z[i], b = bits.Sub32(x[i], b, 0)
	}
	return b
}

// mulAddVWW computes z = x*y + r and returns the carry word.
func mulAddVWW(z, x []uint32, y, r uint32) (c uint32) {
	c = r
	for i := range z {
		hi, lo := bits.Mul32(x[i], y)
		var cc uint32
		lo, cc = bits.Add32(lo, c, 0)
		z[i], c = lo, hi+cc
	}
	return c
}
