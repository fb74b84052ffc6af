// Package rpn folds reverse-Polish programs over native integer literals
// into a single BigUint.
//
// A program is a whitespace-separated list of tokens. Literals are uint64
// values in any base strconv accepts with a prefix (42, 0x2a, 0b101010,
// 0o52). Operators pop their operands from the stack and push results:
//
//	+ - * / %          arithmetic
//	& | ^              bitwise
//	<< >>              shifts; the shift count is the top value
//	divrem             pushes the quotient, then the remainder
//	dup swap drop      stack manipulation
//	cmp                pushes 0, 1 or 2 when the top value is less than,
//	                   equal to or greater than the value below it
//
// Operands are checked before any engine call, so malformed programs yield
// a ValidationError rather than a panic.
package rpn
