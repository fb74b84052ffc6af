package biguint

// And sets z = x & y.
func (z *BigUint) And(x, y *BigUint) error {
	z.check("And")
	x.check("And")
	y.check("And")
	n := min(x.n, y.n)
	if err := z.setLen(n); err != nil {
		return err
	}
	zw, xw, yw := z.words(), x.view(n), y.view(n)
	for i := range zw {
		zw[i] = xw[i] & yw[i]
	}
	z.normalize()
	return nil
}

// Or sets z = x | y.
func (z *BigUint) Or(x, y *BigUint) error {
	z.check("Or")
	x.check("Or")
	y.check("Or")
	xn, yn := x.n, y.n
	if err := z.setLen(max(xn, yn)); err != nil {
		return err
	}
	xw, yw := x.view(xn), y.view(yn)
	if xn < yn {
		xw, yw = yw, xw
	}
	zw := z.words()
	for i := range yw {
		zw[i] = xw[i] | yw[i]
	}
	copy(zw[len(yw):], xw[len(yw):])
	return nil
}

// Xor sets z to the word-wise XOR of x and y over the shorter operand's
// length. Words of the longer operand beyond that length are dropped, as
// in And.
func (z *BigUint) Xor(x, y *BigUint) error {
	z.check("Xor")
	x.check("Xor")
	y.check("Xor")
	n := min(x.n, y.n)
	if err := z.setLen(n); err != nil {
		return err
	}
	zw, xw, yw := z.words(), x.view(n), y.view(n)
	for i := range zw {
		zw[i] = xw[i] ^ yw[i]
	}
	z.normalize()
	return nil
}

// Lsh sets z = x << s.
func (z *BigUint) Lsh(x *BigUint, s uint) error {
	z.check("Lsh")
	x.check("Lsh")
	xn := x.n
	if xn == 0 {
		return z.setLen(0)
	}
	words, r := int(s/32), s%32
	if err := z.setLen(xn + words + 1); err != nil {
		return err
	}
	zw, xw := z.words(), x.view(xn)

	// High to low: output word i+words is written only after every input
	// word at or above i was read.
	if r == 0 {
		zw[xn+words] = 0
		for i := xn - 1; i >= 0; i-- {
			zw[i+words] = xw[i]
		}
	} else {
		zw[xn+words] = xw[xn-1] >> (32 - r)
		for i := xn - 1; i > 0; i-- {
			zw[i+words] = xw[i]<<r | xw[i-1]>>(32-r)
		}
		zw[words] = xw[0] << r
	}
	clear(zw[:words])
	z.normalize()
	return nil
}

// Rsh sets z = x >> s.
func (z *BigUint) Rsh(x *BigUint, s uint) error {
	z.check("Rsh")
	x.check("Rsh")
	xn := x.n
	words, r := int(min(s/32, uint(xn))), s%32
	if words >= xn {
		return z.setLen(0)
	}
	n := xn - words
	if err := z.setLen(n); err != nil {
		return err
	}
	zw, xw := z.words(), x.view(xn)

	// Low to high: output word i is written after input words i+words and
	// i+words+1 were read.
	if r == 0 {
		for i := 0; i < n; i++ {
			zw[i] = xw[i+words]
		}
	} else {
		for i := 0; i < n-1; i++ {
			zw[i] = xw[i+words]>>r | xw[i+words+1]<<(32-r)
		}
		zw[n-1] = xw[xn-1] >> r
	}
	z.normalize()
	return nil
}
