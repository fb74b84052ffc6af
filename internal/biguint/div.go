package biguint

import apperrors "github.com/agbru/bigcalc/internal/errors"

// Div sets z = x / y, truncated. It panics if y == 0.
func (z *BigUint) Div(x, y *BigUint) error {
	z.check("Div")
	return z.divRem(nil, x, y)
}

// DivRem sets z = x / y and r = x - z*y. z and r must be distinct. It
// panics if y == 0.
func (z *BigUint) DivRem(x, y, r *BigUint) error {
	z.check("DivRem")
	r.check("DivRem")
	apperrors.Require(z != r, "DivRem", "quotient and remainder must be distinct values")
	return z.divRem(r, x, y)
}

// Rem sets z = x mod y. It panics if y == 0.
func (z *BigUint) Rem(x, y *BigUint) error {
	z.check("Rem")
	q, err := New(z.alloc)
	if err != nil {
		return err
	}
	defer q.Destroy()
	return q.DivRem(x, y, z)
}

// DivWord sets z = x / w and returns x mod w. It panics if w == 0.
func (z *BigUint) DivWord(x *BigUint, w uint32) (uint32, error) {
	z.check("DivWord")
	apperrors.Require(w != 0, "DivWord", "division by zero")
	d, err := newFixed(z.alloc, 1)
	if err != nil {
		return 0, err
	}
	defer d.Destroy()
	r, err := New(z.alloc)
	if err != nil {
		return 0, err
	}
	defer r.Destroy()

	if err := d.SetWords([]uint32{w}); err != nil {
		return 0, err
	}
	if err := z.DivRem(x, d, r); err != nil {
		return 0, err
	}
	return uint32(r.Uint64()), nil
}

// divRem runs binary long division. The quotient goes to z and, when r is
// not nil, the remainder to r. Operands are copied before z or r is
// written, so either may alias x or y.
func (z *BigUint) divRem(r, x, y *BigUint) error {
	x.check("Div")
	y.check("Div")
	apperrors.Require(y.n != 0, "Div", "division by zero")

	var scratch [4]*BigUint
	defer func() {
		for _, s := range scratch {
			s.Destroy()
		}
	}()
	for i := range scratch {
		s, err := New(z.alloc)
		if err != nil {
			return err
		}
		scratch[i] = s
	}
	rem, denom, current, quot := scratch[0], scratch[1], scratch[2], scratch[3]

	if err := rem.Set(x); err != nil {
		return err
	}
	if err := denom.Set(y); err != nil {
		return err
	}
	if err := current.SetUint64(1); err != nil {
		return err
	}

	// Scale denom and current up by the same power of two until denom
	// exceeds the dividend, then step back once.
	if shift := rem.BitLen() - denom.BitLen() + 1; shift > 0 {
		if err := denom.Lsh(denom, uint(shift)); err != nil {
			return err
		}
		if err := current.Lsh(current, uint(shift)); err != nil {
			return err
		}
	}
	for CompareRelativeTo(rem, denom) != Greater {
		if err := denom.Lsh(denom, 1); err != nil {
			return err
		}
		if err := current.Lsh(current, 1); err != nil {
			return err
		}
	}
	if err := denom.Rsh(denom, 1); err != nil {
		return err
	}
	if err := current.Rsh(current, 1); err != nil {
		return err
	}

	for !current.IsZero() {
		if CompareRelativeTo(rem, denom) != Greater {
			if err := rem.Sub(rem, denom); err != nil {
				return err
			}
			if err := quot.Or(quot, current); err != nil {
				return err
			}
		}
		if err := denom.Rsh(denom, 1); err != nil {
			return err
		}
		if err := current.Rsh(current, 1); err != nil {
			return err
		}
	}

	if err := z.Set(quot); err != nil {
		return err
	}
	if r != nil {
		return r.Set(rem)
	}
	return nil
}
