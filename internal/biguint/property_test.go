package biguint

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/agbru/bigcalc/internal/allocator"
)

// genWords generates normalized word slices; their length is bounded by the
// test parameters' MaxSize.
func genWords() gopter.Gen {
	return gen.SliceOf(gen.UInt32()).Map(func(ws []uint32) []uint32 {
		for len(ws) > 0 && ws[len(ws)-1] == 0 {
			ws = ws[:len(ws)-1]
		}
		return ws
	})
}

func wordsToBig(ws []uint32) *big.Int {
	r := new(big.Int)
	for i := len(ws) - 1; i >= 0; i-- {
		r.Lsh(r, 32)
		r.Or(r, new(big.Int).SetUint64(uint64(ws[i])))
	}
	return r
}

// propertyEnv provides scratch values for one property run.
type propertyEnv struct {
	t     *testing.T
	alloc *allocator.Allocator
	vals  []*BigUint
}

func (e *propertyEnv) value(ws []uint32) *BigUint {
	x, err := New(e.alloc)
	if err != nil {
		e.t.Fatal(err)
	}
	if err := x.SetWords(ws); err != nil {
		e.t.Fatal(err)
	}
	e.vals = append(e.vals, x)
	return x
}

func (e *propertyEnv) release() {
	for _, v := range e.vals {
		v.Destroy()
	}
	e.vals = e.vals[:0]
}

func normalized(x *BigUint) bool { return x.n == 0 || x.word(x.n-1) != 0 }

func TestArithmeticProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.MaxSize = 16
	properties := gopter.NewProperties(parameters)

	env := &propertyEnv{t: t, alloc: newTestAllocator(t)}
	t.Cleanup(env.release)

	properties.Property("operations agree with math/big and stay normalized", prop.ForAll(
		func(a, b []uint32) bool {
			defer env.release()
			x, y, z := env.value(a), env.value(b), env.value(nil)
			xb, yb := wordsToBig(a), wordsToBig(b)

			check := func(err error, want *big.Int) bool {
				return err == nil && normalized(z) && toBig(z).Cmp(want) == 0
			}
			ok := check(z.Add(x, y), new(big.Int).Add(xb, yb)) &&
				check(z.Mul(x, y), new(big.Int).Mul(xb, yb)) &&
				check(z.And(x, y), new(big.Int).And(xb, yb)) &&
				check(z.Or(x, y), new(big.Int).Or(xb, yb)) &&
				check(z.Xor(x, y), truncatedXor(xb, yb))
			if yb.Sign() != 0 {
				ok = ok && check(z.Div(x, y), new(big.Int).Quo(xb, yb)) &&
					check(z.Rem(x, y), new(big.Int).Rem(xb, yb))
			}
			return ok
		},
		genWords(), genWords(),
	))

	properties.Property("comparison is reflexive and antisymmetric", prop.ForAll(
		func(a, b []uint32) bool {
			defer env.release()
			x, y := env.value(a), env.value(b)
			if CompareRelativeTo(x, x) != Equal {
				return false
			}
			want := Ordering(wordsToBig(b).Cmp(wordsToBig(a)))
			return CompareRelativeTo(x, y) == want && CompareRelativeTo(y, x) == -want
		},
		genWords(), genWords(),
	))

	properties.Property("(a - b) + b == a", prop.ForAll(
		func(a, b []uint32) bool {
			defer env.release()
			x, y, z := env.value(a), env.value(b), env.value(nil)
			if CompareRelativeTo(x, y) == Greater {
				x, y = y, x
			}
			if z.Sub(x, y) != nil || z.Add(z, y) != nil {
				return false
			}
			return CompareRelativeTo(x, z) == Equal
		},
		genWords(), genWords(),
	))

	properties.Property("a*0 == 0 and a*1 == a", prop.ForAll(
		func(a []uint32) bool {
			defer env.release()
			x, zero, one, z := env.value(a), env.value(nil), env.value([]uint32{1}), env.value(nil)
			if z.Mul(x, zero) != nil || !z.IsZero() {
				return false
			}
			return z.Mul(x, one) == nil && CompareRelativeTo(x, z) == Equal
		},
		genWords(),
	))

	properties.Property("q*b + r == a and r < b", prop.ForAll(
		func(a, b []uint32) bool {
			if len(b) == 0 {
				b = []uint32{1}
			}
			defer env.release()
			x, y, q, r, back := env.value(a), env.value(b), env.value(nil), env.value(nil), env.value(nil)
			if q.DivRem(x, y, r) != nil || !normalized(q) || !normalized(r) {
				return false
			}
			if CompareRelativeTo(y, r) != Less {
				return false
			}
			if back.Mul(q, y) != nil || back.Add(back, r) != nil {
				return false
			}
			return CompareRelativeTo(x, back) == Equal
		},
		genWords(), genWords(),
	))

	properties.Property("(a << n) >> n == a", prop.ForAll(
		func(a []uint32, n uint) bool {
			defer env.release()
			x, z := env.value(a), env.value(nil)
			if z.Lsh(x, n) != nil || !normalized(z) {
				return false
			}
			if z.Rsh(z, n) != nil || !normalized(z) {
				return false
			}
			return CompareRelativeTo(x, z) == Equal
		},
		genWords(), gen.UIntRange(0, 300),
	))

	properties.TestingRun(t)
}
