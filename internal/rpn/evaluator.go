package rpn

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/biguint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

const tracerName = "github.com/agbru/bigcalc/internal/rpn"

// DefaultMaxShift bounds the shift count of << and >>.
const DefaultMaxShift = 1 << 20

// Evaluator runs programs against one allocator. It holds no per-program
// state and may be shared between goroutines.
type Evaluator struct {
	alloc    *allocator.Allocator
	tracer   trace.Tracer
	maxShift uint64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithTracer sets the tracer used for evaluation spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Evaluator) { e.tracer = t }
}

// WithMaxShift sets the largest accepted shift count.
func WithMaxShift(bits uint64) Option {
	return func(e *Evaluator) { e.maxShift = bits }
}

// NewEvaluator creates an Evaluator whose values live in alloc.
func NewEvaluator(alloc *allocator.Allocator, opts ...Option) *Evaluator {
	e := &Evaluator{
		alloc:    alloc,
		tracer:   otel.Tracer(tracerName),
		maxShift: DefaultMaxShift,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Allocator returns the allocator results are bound to.
func (e *Evaluator) Allocator() *allocator.Allocator { return e.alloc }

// Evaluate runs program and returns the single value it leaves on the
// stack. The caller owns the result and must Destroy it. On error every
// intermediate value has already been released.
func (e *Evaluator) Evaluate(ctx context.Context, program string) (result *biguint.BigUint, err error) {
	ctx, span := e.tracer.Start(ctx, "rpn.Evaluate")
	defer span.End()

	tokens, err := Tokenize(program)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tokenize")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rpn.tokens", len(tokens)))

	m := &machine{e: e}
	defer func() {
		if err != nil {
			m.release()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	defer apperrors.RecoverPrecondition(&err)

	for _, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.step(tok); err != nil {
			return nil, err
		}
	}
	if len(m.stack) != 1 {
		return nil, apperrors.ValidationError{
			Field:   "program",
			Message: fmt.Sprintf("program must leave exactly one value, left %d", len(m.stack)),
		}
	}
	result = m.stack[0]
	m.stack = nil
	span.SetAttributes(attribute.Int("rpn.result_bits", result.BitLen()))
	return result, nil
}

// machine is the evaluation stack of one program.
type machine struct {
	e     *Evaluator
	stack []*biguint.BigUint
}

func (m *machine) release() {
	for _, v := range m.stack {
		v.Destroy()
	}
	m.stack = nil
}

func (m *machine) push(v *biguint.BigUint) { m.stack = append(m.stack, v) }

func (m *machine) pop() *biguint.BigUint {
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v
}

func (m *machine) top() *biguint.BigUint { return m.stack[len(m.stack)-1] }

func (m *machine) literal(v uint64) error {
	x, err := biguint.New(m.e.alloc)
	if err != nil {
		return err
	}
	if err := x.SetUint64(v); err != nil {
		x.Destroy()
		return err
	}
	m.push(x)
	return nil
}

func invalid(tok Token, format string, a ...any) error {
	return apperrors.ValidationError{Field: tok.String(), Message: fmt.Sprintf(format, a...)}
}

func (m *machine) step(tok Token) error {
	if tok.Kind == Literal {
		return m.literal(tok.Value)
	}
	if need := arity[tok.Text]; len(m.stack) < need {
		return invalid(tok, "stack underflow: needs %d values, have %d", need, len(m.stack))
	}

	switch tok.Text {
	case "dup":
		c, err := m.top().Clone()
		if err != nil {
			return err
		}
		m.push(c)
		return nil
	case "drop":
		m.pop().Destroy()
		return nil
	case "swap":
		n := len(m.stack)
		m.stack[n-1], m.stack[n-2] = m.stack[n-2], m.stack[n-1]
		return nil
	}

	// Binary operators: a is below b; the result replaces a.
	b := m.pop()
	defer b.Destroy()
	a := m.top()

	switch tok.Text {
	case "+":
		return a.Add(a, b)
	case "-":
		if biguint.CompareRelativeTo(a, b) == biguint.Greater {
			return invalid(tok, "subtraction underflow")
		}
		return a.Sub(a, b)
	case "*":
		return a.Mul(a, b)
	case "/", "%", "divrem":
		if b.IsZero() {
			return invalid(tok, "division by zero")
		}
		switch tok.Text {
		case "/":
			return a.Div(a, b)
		case "%":
			return a.Rem(a, b)
		}
		r, err := biguint.New(m.e.alloc)
		if err != nil {
			return err
		}
		if err := a.DivRem(a, b, r); err != nil {
			r.Destroy()
			return err
		}
		m.push(r)
		return nil
	case "&":
		return a.And(a, b)
	case "|":
		return a.Or(a, b)
	case "^":
		return a.Xor(a, b)
	case "<<", ">>":
		if !b.FitsUint64() || b.Uint64() > m.e.maxShift {
			return invalid(tok, "shift count exceeds %d bits", m.e.maxShift)
		}
		if tok.Text == "<<" {
			return a.Lsh(a, uint(b.Uint64()))
		}
		return a.Rsh(a, uint(b.Uint64()))
	case "cmp":
		rel := biguint.CompareRelativeTo(a, b)
		return a.SetUint64(uint64(rel - biguint.Less))
	}
	return invalid(tok, "unsupported operator")
}
