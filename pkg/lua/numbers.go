/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: numbers.go
Description: Numeric literals inside expressions. The radix is remembered on
the stack ("number_dec" or "number_hex") so the digit set, the exponent
marker (e/E vs p/P) and the fraction all key off it.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func (g *gram) numerals() {
	const (
		dec stackSym = "number_dec"
		hex stackSym = "number_hex"
	)

	// A digit at expression start settles the only-name question.
	g.put("expression", compose.Digit, wild,
		compose.Swap("expression_starting_with_digit", stay, symNotOnlyName))

	g.put("expression_starting_with_digit", compose.Digit, wild,
		compose.Push("expression_numeric", adv, dec))
	g.one("expression_starting_with_digit", '0', wild,
		compose.Push("expression_0", adv, dec))
	g.one("expression_0", 'x', wild, compose.Swap("expression_0x", adv, hex))
	g.one("expression_0", 'X', wild, compose.Swap("expression_0x", adv, hex))
	g.put("expression_0x", compose.Hex, wild, compose.To("expression_numeric", adv))
	g.put("expression_0", compose.Digit, wild, compose.To("expression_numeric", adv))

	g.put("expression_numeric", compose.Digit, wild, compose.To("expression_numeric", adv))
	g.put("expression_numeric", compose.HexAlpha, hex, compose.To("expression_numeric", adv))

	// Fraction.
	for _, from := range []state{"expression_0", "expression_0x", "expression_numeric"} {
		g.one(from, '.', wild, compose.To("expression_numeric_after_.", adv))
	}
	g.put("expression_numeric_after_.", compose.Digit, wild,
		compose.To("expression_numeric_after_.", adv))
	g.put("expression_numeric_after_.", compose.HexAlpha, hex,
		compose.To("expression_numeric_after_.", adv))

	// Exponent marker depends on the radix: e/E for decimal, p/P for hex.
	for _, from := range []state{"expression_0", "expression_numeric", "expression_numeric_after_."} {
		g.one(from, 'e', dec, compose.To("expression_numeric_exp", adv))
		g.one(from, 'E', dec, compose.To("expression_numeric_exp", adv))
		g.one(from, 'p', hex, compose.To("expression_numeric_exp", adv))
		g.one(from, 'P', hex, compose.To("expression_numeric_exp", adv))
	}
	g.one("expression_numeric_exp", '+', wild, compose.To("expression_numeric_exp_+-", adv))
	g.one("expression_numeric_exp", '-', wild, compose.To("expression_numeric_exp_+-", adv))
	g.put("expression_numeric_exp", compose.Digit, wild,
		compose.To("expression_numeric_exp_value", adv))
	g.put("expression_numeric_exp_+-", compose.Digit, wild,
		compose.To("expression_numeric_exp_value", adv))
	g.put("expression_numeric_exp_value", compose.Digit, wild,
		compose.To("expression_numeric_exp_value", adv))

	// A literal ends at the first byte that cannot extend it; the radix
	// symbol pops on the way out.
	exitSet := compose.NotAlnum.WithoutBytes(".")
	for _, from := range []state{
		"expression_0", "expression_numeric",
		"expression_numeric_after_.", "expression_numeric_exp_value",
	} {
		g.put(from, exitSet, wild, compose.Pop("expression_binop-or-end", stay))
	}
}
