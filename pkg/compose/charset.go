/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: charset.go
Description: Input symbol classes for grammar assembly. Sets range over the
full 257-symbol alphabet (all byte values plus the end-of-input marker) so
that dispatch fans can match end-of-input like any other symbol, while
consuming loops use the byte-only variants and never walk off the tape.
*/

package compose

import "github.com/kleascm/akaylee-oracle/pkg/automaton"

// CharSet is a set of input symbols. The zero value is empty.
type CharSet struct {
	bits [automaton.AlphabetSize]bool
}

// Bytes returns the set of the bytes in s.
func Bytes(s string) CharSet {
	var c CharSet
	for i := 0; i < len(s); i++ {
		c.bits[s[i]] = true
	}
	return c
}

// Only returns a set holding exactly the given symbols.
func Only(syms ...automaton.Symbol) CharSet {
	var c CharSet
	for _, s := range syms {
		c.bits[s] = true
	}
	return c
}

// Union returns the symbols in either set.
func (c CharSet) Union(o CharSet) CharSet {
	for i, b := range o.bits {
		if b {
			c.bits[i] = true
		}
	}
	return c
}

// Without returns the symbols in c that are not in o.
func (c CharSet) Without(o CharSet) CharSet {
	for i, b := range o.bits {
		if b {
			c.bits[i] = false
		}
	}
	return c
}

// WithoutBytes returns c minus the bytes in s.
func (c CharSet) WithoutBytes(s string) CharSet {
	return c.Without(Bytes(s))
}

// WithEnd returns c plus the end-of-input marker.
func (c CharSet) WithEnd() CharSet {
	c.bits[automaton.SymbolEnd] = true
	return c
}

// Contains reports whether sym is in the set.
func (c CharSet) Contains(sym automaton.Symbol) bool {
	return c.bits[sym]
}

// Len returns the number of symbols in the set.
func (c CharSet) Len() int {
	n := 0
	for _, b := range c.bits {
		if b {
			n++
		}
	}
	return n
}

// Symbols lists the set's members in ascending order.
func (c CharSet) Symbols() []automaton.Symbol {
	out := make([]automaton.Symbol, 0, c.Len())
	for i, b := range c.bits {
		if b {
			out = append(out, automaton.Symbol(i))
		}
	}
	return out
}

// Not returns the complement of c over the full alphabet, end marker
// included. Complements back exit and dispatch fans, which must fire at
// end-of-input so enclosing subsystems can finish unwinding.
func Not(c CharSet) CharSet {
	var out CharSet
	for i := range out.bits {
		out.bits[i] = !c.bits[i]
	}
	return out
}

// NotBytes returns the complement of the bytes in s, end marker included.
func NotBytes(s string) CharSet {
	return Not(Bytes(s))
}

// Any is every symbol in the alphabet, end marker included.
var Any = Not(CharSet{})

// AnyByte is every byte value, without the end marker. Consuming loops use
// AnyByte so an unterminated construct rejects at end-of-input instead of
// eating the end marker.
var AnyByte = Any.Without(Only(automaton.SymbolEnd))

// End is the set holding only the end-of-input marker.
var End = Only(automaton.SymbolEnd)

// Character classes of the recognized language. Letters are hardcoded ASCII;
// the underscore counts as a letter.
var (
	Space    = Bytes(" \t\n\v\f\r")
	Digit    = Bytes("0123456789")
	HexAlpha = Bytes("abcdefABCDEF")
	Hex      = Digit.Union(HexAlpha)
	Alpha    = Bytes("_abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	Alnum    = Alpha.Union(Digit)
)

// NotSpace, NotAlnum and NotDigit are the end-inclusive complements used by
// subsystem exits.
var (
	NotSpace = Not(Space)
	NotAlnum = Not(Alnum)
	NotDigit = Not(Digit)
)
