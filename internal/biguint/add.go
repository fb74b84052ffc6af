package biguint

import apperrors "github.com/agbru/bigcalc/internal/errors"

// Add sets z = x + y.
func (z *BigUint) Add(x, y *BigUint) error {
	z.check("Add")
	x.check("Add")
	y.check("Add")
	xn, yn := x.n, y.n
	if err := z.setLen(max(xn, yn) + 1); err != nil {
		return err
	}
	z.addWords(x.view(xn), y.view(yn))
	return nil
}

// AddWord sets z = x + w.
func (z *BigUint) AddWord(x *BigUint, w uint32) error {
	z.check("AddWord")
	x.check("AddWord")
	xn := x.n
	if err := z.setLen(max(xn, 1) + 1); err != nil {
		return err
	}
	z.addWords(x.view(xn), wordSlice(w))
	return nil
}

// addWords stores x + y in z, which must already be one word longer than
// the longer operand.
func (z *BigUint) addWords(x, y []uint32) {
	if len(x) < len(y) {
		x, y = y, x
	}
	zw := z.words()
	c := addVV(zw[:len(y)], x[:len(y)], y)
	c = addVW(zw[len(y):len(x)], x[len(y):], c)
	zw[len(x)] = c
	clear(zw[len(x)+1:])
	z.normalize()
}

// Sub sets z = x - y. It panics if y > x.
func (z *BigUint) Sub(x, y *BigUint) error {
	z.check("Sub")
	x.check("Sub")
	y.check("Sub")
	apperrors.Require(CompareRelativeTo(x, y) != Greater, "Sub", "subtraction would be negative")
	xn, yn := x.n, y.n
	if err := z.setLen(xn); err != nil {
		return err
	}
	z.subWords(x.view(xn), y.view(yn))
	return nil
}

// SubWord sets z = x - w. It panics if w > x.
func (z *BigUint) SubWord(x *BigUint, w uint32) error {
	z.check("SubWord")
	x.check("SubWord")
	apperrors.Require(w == 0 || x.n > 0, "SubWord", "cannot subtract %d from zero", w)
	apperrors.Require(CompareUint64(x, uint64(w)) != Greater, "SubWord", "subtraction would be negative")
	xn := x.n
	if err := z.setLen(xn); err != nil {
		return err
	}
	z.subWords(x.view(xn), wordSlice(w))
	return nil
}

// subWords stores x - y in z, which must already have len(x) words.
func (z *BigUint) subWords(x, y []uint32) {
	zw := z.words()
	b := subVV(zw[:len(y)], x[:len(y)], y)
	b = subVW(zw[len(y):], x[len(y):], b)
	apperrors.Require(b == 0, "Sub", "borrow out of the most significant word")
	z.normalize()
}

// wordSlice returns w as a normalized one-operand word slice.
func wordSlice(w uint32) []uint32 {
	if w == 0 {
		return nil
	}
	return []uint32{w}
}
