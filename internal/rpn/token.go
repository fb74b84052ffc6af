package rpn

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Kind classifies a token.
type Kind int

const (
	// Literal is a native unsigned integer.
	Literal Kind = iota
	// Operator is one of the words listed in the package documentation.
	Operator
)

// Token is one element of a program.
type Token struct {
	Kind  Kind
	Text  string
	Value uint64 // set for literals
	Index int    // position in the program, starting at 1
}

func (t Token) String() string {
	return fmt.Sprintf("token %d (%q)", t.Index, t.Text)
}

// arity is the number of stack values each operator consumes.
var arity = map[string]int{
	"+": 2, "-": 2, "*": 2, "/": 2, "%": 2,
	"&": 2, "|": 2, "^": 2, "<<": 2, ">>": 2,
	"divrem": 2, "swap": 2, "cmp": 2,
	"dup": 1, "drop": 1,
}

// Operators returns the supported operator words.
func Operators() []string {
	return []string{"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>", "divrem", "dup", "swap", "drop", "cmp"}
}

// Tokenize splits program into tokens. Unknown words and literals that do
// not fit in a uint64 are reported as a ValidationError.
func Tokenize(program string) ([]Token, error) {
	fields := strings.Fields(program)
	if len(fields) == 0 {
		return nil, apperrors.ValidationError{Field: "program", Message: "empty program"}
	}
	tokens := make([]Token, 0, len(fields))
	for i, f := range fields {
		tok := Token{Text: f, Index: i + 1}
		if _, ok := arity[f]; ok {
			tok.Kind = Operator
			tokens = append(tokens, tok)
			continue
		}
		v, err := strconv.ParseUint(f, 0, 64)
		if err != nil {
			msg := "unknown operator or malformed literal"
			if errors.Is(err, strconv.ErrRange) {
				msg = "literal does not fit in 64 bits"
			}
			return nil, apperrors.ValidationError{Field: tok.String(), Message: msg}
		}
		tok.Kind = Literal
		tok.Value = v
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
