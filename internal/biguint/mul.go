package biguint

// MulWord sets z = x * w.
func (z *BigUint) MulWord(x *BigUint, w uint32) error {
	z.check("MulWord")
	x.check("MulWord")
	xn := x.n
	if err := z.setLen(xn + 1); err != nil {
		return err
	}
	zw := z.words()
	zw[xn] = mulAddVWW(zw[:xn], x.view(xn), w, 0)
	z.normalize()
	return nil
}

// Mul sets z = x * y using schoolbook multiplication.
func (z *BigUint) Mul(x, y *BigUint) error {
	z.check("Mul")
	x.check("Mul")
	y.check("Mul")
	if z == x || z == y {
		t, err := New(z.alloc)
		if err != nil {
			return err
		}
		defer t.Destroy()
		if err := t.Mul(x, y); err != nil {
			return err
		}
		return z.Set(t)
	}

	if err := z.setLen(0); err != nil {
		return err
	}
	if x.n == 0 || y.n == 0 {
		return nil
	}

	// One row buffer is reused for every word of y; a row never exceeds
	// len(x)+1 words plus its shift.
	row, err := newFixed(z.alloc, x.n+y.n+1)
	if err != nil {
		return err
	}
	defer row.Destroy()

	for i := 0; i < y.n; i++ {
		yi := y.word(i)
		if yi == 0 {
			continue
		}
		if err := row.MulWord(x, yi); err != nil {
			return err
		}
		if err := row.insertZeros(0, i); err != nil {
			return err
		}
		if err := z.Add(z, row); err != nil {
			return err
		}
	}
	return nil
}
