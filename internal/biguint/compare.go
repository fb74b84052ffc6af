package biguint

import "fmt"

// Ordering is the result of a magnitude comparison.
type Ordering int

// Orderings returned by CompareRelativeTo and CompareUint64.
const (
	Less Ordering = iota - 1
	Equal
	Greater
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	}
	return fmt.Sprintf("Ordering(%d)", int(o))
}

// CompareRelativeTo reports how b relates to a: Greater if b > a, Less if
// b < a and Equal otherwise. Note the argument order; CompareRelativeTo(a, b)
// answers "what is b, seen from a".
func CompareRelativeTo(a, b *BigUint) Ordering {
	a.check("CompareRelativeTo")
	b.check("CompareRelativeTo")
	return compareWords(a.words(), b.words())
}

// CompareUint64 reports how v relates to a, in the same direction as
// CompareRelativeTo.
func CompareUint64(a *BigUint, v uint64) Ordering {
	a.check("CompareUint64")
	if v == 0 {
		return compareWords(a.words(), nil)
	}
	if v>>32 == 0 {
		return compareWords(a.words(), []uint32{uint32(v)})
	}
	return compareWords(a.words(), []uint32{uint32(v), uint32(v >> 32)})
}

// compareWords compares two normalized word slices, reporting b relative
// to a.
func compareWords(a, b []uint32) Ordering {
	switch {
	case len(b) > len(a):
		return Greater
	case len(b) < len(a):
		return Less
	}
	for i := len(a) - 1; i >= 0; i-- {
		switch {
		case b[i] > a[i]:
			return Greater
		case b[i] < a[i]:
			return Less
		}
	}
	return Equal
}
