package format

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agbru/bigcalc/internal/biguint"
)

// decimalChunk is the largest power of ten that fits in a word.
const (
	decimalChunk       = 1_000_000_000
	decimalChunkDigits = 9
)

// Hex returns x in hexadecimal with a 0x prefix.
func Hex(x *biguint.BigUint) string {
	n := x.Len()
	if n == 0 {
		return "0x0"
	}
	var b strings.Builder
	b.Grow(2 + 8*n)
	fmt.Fprintf(&b, "0x%x", x.Word(n-1))
	for i := n - 2; i >= 0; i-- {
		fmt.Fprintf(&b, "%08x", x.Word(i))
	}
	return b.String()
}

// Decimal returns x in base 10. It works on a clone, peeling off nine
// digits per DivWord.
func Decimal(x *biguint.BigUint) (string, error) {
	if x.FitsUint64() {
		return strconv.FormatUint(x.Uint64(), 10), nil
	}
	t, err := x.Clone()
	if err != nil {
		return "", err
	}
	defer t.Destroy()

	var chunks []uint32
	for !t.IsZero() {
		r, err := t.DivWord(t, decimalChunk)
		if err != nil {
			return "", err
		}
		chunks = append(chunks, r)
	}
	slices.Reverse(chunks)

	var b strings.Builder
	b.Grow(len(chunks) * decimalChunkDigits)
	b.WriteString(strconv.FormatUint(uint64(chunks[0]), 10))
	for _, c := range chunks[1:] {
		fmt.Fprintf(&b, "%09d", c)
	}
	return b.String(), nil
}
