// Package format renders BigUint values and run statistics as text.
//
// The engine owns no textual representation; Hex and Decimal build one
// from the public word accessors and DivWord.
package format
