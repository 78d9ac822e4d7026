/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: expressions.go
Description: Expression recognition. Expressions are read by a shared state
cluster entered through a per-site return symbol; alongside the value, one
fact travels on the stack: whether the expression consisted of exactly one
bare name. Callers that need to tell "name = ..." (a table key) or a
trailing name (the start of the next statement) from an ordinary expression
receive dedicated exits.
*/

package lua

import (
	"strings"

	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// exprOpts selects the optional exits of readExpression. A zero Action means
// the exit rejects. RequiredTop, when set, gates the entry on the current
// stack top.
type exprOpts struct {
	End          compose.Action
	Elseif       compose.Action
	Else         compose.Action
	Until        compose.Action
	Semicolon    compose.Action
	RParen       compose.Action
	Equals       compose.Action
	TrailingName compose.Action
	Colon        compose.Action

	RequiredTop   stackSym
	CheckOnlyName bool
}

func orFail(a compose.Action) compose.Action {
	if a == (compose.Action{}) {
		return failTo
	}
	return a
}

func (o exprOpts) top() stackSym {
	if o.RequiredTop == "" {
		return wild
	}
	return o.RequiredTop
}

// readExpression lets start read one full expression. main fires on an
// ordinary end; the opts exits fire when the expression stops on a block
// terminator keyword, a ';' or ')' where an expression should have begun, an
// '=', a trailing name, or a trailing ':'.
func (g *gram) readExpression(start state, main compose.Action, o exprOpts) {
	sym := stackSym("expression__" + string(start))

	g.put(start, compose.Any, o.top(), compose.Push("expression_start", stay, sym))
	g.put("expression_start", compose.Any, wild, compose.Push("expression", stay, symBeginning))
	g.readWhitespace("expression_start", to("expression_start"), wild)

	// Ordinary exits carry the only-name fact above the return symbol.
	type exitKind struct {
		suffix string
		act    compose.Action
	}
	for _, k := range []exitKind{
		{"", main},
		{"_=", orFail(o.Equals)},
		{"_trailing_name", orFail(o.TrailingName)},
		{"_:", orFail(o.Colon)},
	} {
		exit := state("expression_exit" + k.suffix)
		inter2 := state("expression_exit" + k.suffix + "_from__" + string(start))
		for _, fact := range []stackSym{symBeginning, symOnlyName, symNotOnlyName} {
			inter1 := state("expression_exit" + k.suffix + "_with__" + string(fact))
			g.put(exit, compose.Any, fact, compose.Pop(inter1, stay))
			if o.CheckOnlyName {
				g.put(inter1, compose.Any, sym, compose.Swap(inter2, stay, fact))
			} else {
				g.put(inter1, compose.Any, sym, compose.Pop(inter2, stay))
			}
		}
		g.put(inter2, compose.Any, wild, k.act)
	}

	// Terminator exits drop the fact: the caller only cares which
	// terminator stopped the expression.
	for _, k := range []exitKind{
		{"end", orFail(o.End)},
		{"elseif", orFail(o.Elseif)},
		{"else", orFail(o.Else)},
		{"until", orFail(o.Until)},
		{";", orFail(o.Semicolon)},
		{")", orFail(o.RParen)},
	} {
		exit := state("expression_exit_" + k.suffix)
		exit1 := state("expression_exit_" + k.suffix + "_1")
		inter := state("expression_exit_" + k.suffix + "_from__" + string(start))
		g.put(exit, compose.Any, wild, compose.Pop(exit1, stay))
		g.put(exit1, compose.Any, sym, compose.Pop(inter, stay))
		g.put(inter, compose.Any, wild, k.act)
	}
}

// expressionsCore wires the shared expression states: the binary-operator
// loop, name-initial expressions through the value-chain scanner, keyword
// operands, and the grouping parenthesis.
func (g *gram) expressionsCore() {
	// Normalizer used by operand readers that already know the expression
	// is more than a bare name.
	g.put("expression_binop-or-end_with_not_only_name", compose.Any, wild,
		compose.Swap("expression_binop-or-end", stay, symNotOnlyName))

	// Re-enter operand position after a binary operator.
	g.put("expression_restart", compose.Any, wild, to("expression"))
	g.readWhitespace("expression_restart", to("expression_restart"), wild)

	// After an operand: either a binary operator continues the expression,
	// or the expression is over and control returns to the call site.
	g.put("expression_binop-or-end", compose.Any, wild, to("expression_exit"))

	oneChar := "+-*/^%&~|<>"
	for i := 0; i < len(oneChar); i++ {
		g.one("expression_binop-or-end", oneChar[i], wild,
			compose.Swap("expression_restart", adv, symNotOnlyName))
	}
	twoChar := []string{"//", ">>", "<<", "..", "<=", ">=", "==", "~="}
	for _, op := range twoChar {
		second := state("expression_binop_" + string(op[0]))
		g.one("expression_binop-or-end", op[0], wild, compose.To(second, adv))
		g.one(second, op[1], wild, compose.Swap("expression_restart", adv, symNotOnlyName))
		if strings.IndexByte(oneChar, op[0]) >= 0 {
			// The first byte is also a one-char operator; anything that
			// does not complete a two-char operator restarts after it.
			var seconds []byte
			for _, other := range twoChar {
				if other[0] == op[0] {
					seconds = append(seconds, other[1])
				}
			}
			g.put(second, compose.Not(compose.Bytes(string(seconds))), wild,
				compose.Swap("expression_restart", stay, symNotOnlyName))
		}
	}
	// '=' alone is not an operator: a lone '=' after an operand is the
	// equals exit (table keys, assignment detection).
	g.one("expression_binop-or-end", '=', wild, compose.To("expression_binop_=", adv))
	g.put("expression_binop_=", compose.Not(compose.Bytes("=")), wild, to("expression_exit_="))

	// "and" / "or" are word operators; any other word here is a trailing
	// name, which some call sites accept as the start of the next statement.
	g.one("expression_binop-or-end", 'a', wild, to("expression_binop_andoror"))
	g.one("expression_binop-or-end", 'o', wild, to("expression_binop_andoror"))
	g.readNameOrKeyword("expression_binop_andoror",
		to("expression_exit_trailing_name"), to("expression_binop_andoror_keyword"), wild)
	g.put("expression_binop_andoror_keyword", compose.Any, "and",
		compose.Pop("expression_binop_and", stay))
	g.put("expression_binop_and", compose.Any, wild,
		compose.Swap("expression_restart", stay, symNotOnlyName))
	g.put("expression_binop_andoror_keyword", compose.Any, "or",
		compose.Pop("expression_binop_or", stay))
	g.put("expression_binop_or", compose.Any, wild,
		compose.Swap("expression_restart", stay, symNotOnlyName))

	// Whitespace between operand and operator. This deliberately overrides
	// the '-' operator entry: a '-' here may open a comment, and the probe
	// decides.
	g.readWhitespace("expression_binop-or-end",
		compose.Swap("expression_restart", stay, symNotOnlyName), wild)

	// Name-initial operand: names continue as a value chain, keywords are
	// literal operands or terminators.
	g.readNameOrKeyword("expression",
		to("expression_starting_with_name"), to("expression_starting_with_keyword"), wild)
	g.readValueChain("expression_starting_with_name", true, valueChainExits{
		Main:   to("expression_after_lrvalue"),
		Minus:  to("expression_after_lrvalue_-"),
		Period: to("expression_after_lrvalue_."),
		Colon:  to("expression_after_lrvalue_:"),
	}, true, false)

	// Fold the chain's only-name fact into the expression's fact.
	for _, colon := range []bool{false, true} {
		e := state("expression_after_lrvalue")
		target := state("expression_binop-or-end")
		if colon {
			e = "expression_after_lrvalue_:"
			target = "expression_exit_:"
		}
		g.put(e, compose.Any, wild, compose.Pop(e+"_2", stay))
		g.put(e+"_2", compose.Any, symOnlyName, compose.Pop(e+"__only_name", stay))
		g.put(e+"_2", compose.Any, symNotOnlyName, compose.Pop(e+"__not_only_name", stay))
		g.put(e+"__only_name", compose.Any, symBeginning, compose.Swap(target, stay, symOnlyName))
		g.put(e+"__only_name", compose.Any, wild, compose.Swap(target, stay, symNotOnlyName))
		g.put(e+"__not_only_name", compose.Any, wild, compose.Swap(target, stay, symNotOnlyName))
	}

	// A chain that stopped on a bare '-' restarts after the operator; one
	// that stopped on '..' is a concatenation.
	for _, mod := range []string{"_-", "_."} {
		e := state("expression_after_lrvalue" + mod)
		g.put(e, compose.Any, wild, compose.Pop(e+"_2", stay))
		g.put(e+"_2", compose.Any, wild, compose.Pop(e+"_3", stay))
	}
	g.put("expression_after_lrvalue_-_3", compose.Any, wild,
		compose.Swap("expression_restart", stay, symNotOnlyName))
	g.one("expression_after_lrvalue_._3", '.', wild,
		compose.Swap("expression_restart", adv, symNotOnlyName))

	// Keyword operands and terminators.
	for _, lit := range []string{"nil", "false", "true"} {
		g.put("expression_starting_with_keyword", compose.NotAlnum, stackSym(lit),
			compose.Pop("expression_binop-or-end_with_not_only_name", stay))
	}
	for _, term := range []string{"end", "elseif", "else", "until"} {
		g.put("expression_starting_with_keyword", compose.NotAlnum, stackSym(term),
			compose.Pop(state("expression_exit_"+term), stay))
	}
	g.put("expression_starting_with_keyword", compose.NotAlnum, "function",
		compose.Swap("func_body_start", stay, "expression_function"))
	g.put("expression_starting_with_keyword", compose.NotAlnum, "not",
		compose.Pop("expression_not", stay))
	g.put("expression_not", compose.NotAlnum, wild,
		compose.Swap("expression_restart", stay, symNotOnlyName))

	// ';' or ')' where an expression should begin: empty-expression exits
	// used by return statements and call argument lists.
	g.one("expression", ';', symBeginning, compose.To("expression_exit_;", adv))
	g.one("expression", ')', symBeginning, compose.To("expression_exit_)", adv))
	// End of input where an expression should begin unwinds like an empty
	// expression; only call sites that tolerate it (a bare "return" at the
	// end of the chunk) survive the unwinding.
	g.put("expression", compose.End, symBeginning, to("expression_exit_;"))

	// '...' vararg; a lone '.' or '..' is not an expression.
	g.one("expression", '.', wild, compose.Swap("expression_.", adv, symNotOnlyName))
	g.one("expression_.", '.', wild, compose.To("expression_..", adv))
	g.one("expression_..", '.', wild, compose.To("expression_binop-or-end", adv))
	g.put("expression_.", compose.Digit, wild,
		compose.Push("expression_numeric_after_.", adv, "number_dec"))

	// Grouping parenthesis enters the value chain: "(f)(x)" and
	// "(t)[k]" continue the chain after the closing parenthesis.
	g.one("expression", '(', wild, to("expression_("))
	g.readValueChain("expression_(", false, valueChainExits{
		Main:   to("expression_after_lrvalue"),
		Minus:  to("expression_after_lrvalue_-"),
		Period: to("expression_after_lrvalue_."),
		Colon:  to("expression_after_lrvalue_:"),
	}, true, false)

	// Unary operators.
	for _, b := range []byte{'-', '#', '~'} {
		g.one("expression", b, wild, compose.Swap("expression_restart", adv, symNotOnlyName))
	}
}
