/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: values.go
Description: Value chains: a name or parenthesized expression followed by
any run of field accesses, index brackets, method colons and call argument
lists. The chain reports up to three facts through stack symbols folded into
one: assignable or not, a single bare name or not, and ended-by-a-call or
not. Statement analysis hangs off those facts, since "f()" is a statement
while "f" and "t.x" are not.
*/

package lua

import (
	"strconv"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// chainFacts is one concrete outcome of a value chain.
type chainFacts struct {
	lvalue   bool
	onlyName bool
	funcCall bool
}

func (f chainFacts) class() stackSym {
	if f.lvalue {
		return "lvalue_or_rvalue"
	}
	return "rvalue"
}

func (f chainFacts) name() stackSym {
	if f.onlyName {
		return symOnlyName
	}
	return symNotOnlyName
}

func (f chainFacts) call() stackSym {
	if f.funcCall {
		return "function_call"
	}
	return "not_function_call"
}

// symbol is the single in-flight encoding of all three facts.
func (f chainFacts) symbol() stackSym {
	return f.class() + "__" + f.name() + "__" + f.call()
}

func allChainFacts() []chainFacts {
	var out []chainFacts
	for _, lv := range []bool{false, true} {
		for _, on := range []bool{false, true} {
			for _, fc := range []bool{false, true} {
				out = append(out, chainFacts{lvalue: lv, onlyName: on, funcCall: fc})
			}
		}
	}
	return out
}

// valueChainExits selects the exits of readValueChain. Main fires when the
// chain ends on an ordinary byte; Minus, Period and Colon fire when it ends
// on a bare '-', '..' or a ':' not followed by call arguments.
type valueChainExits struct {
	Main    compose.Action
	Minus   compose.Action
	Period  compose.Action
	Colon   compose.Action
	Keyword compose.Action
}

func (e valueChainExits) keyword() compose.Action { return orFail(e.Keyword) }

// readValueChain lets start read one value chain. When alreadyName is true
// the initial name has been consumed by the caller and the chain starts at
// its continuation. The requested facts are unfolded onto the stack at the
// exit, deepest first, so the caller pops them in a fixed order: the
// function-call fact (if checkFnCall), then the only-name fact (if
// checkOnlyName), then the chain class on top.
func (g *gram) readValueChain(start state, alreadyName bool, exits valueChainExits, checkOnlyName, checkFnCall bool) {
	sym := stackSym("lrvalue__" + string(start))
	entry := state("lrvalue_start_1")
	if alreadyName {
		entry = "lrvalue_start_2"
	}
	g.put(start, compose.Any, wild, compose.Push(entry, stay, sym))

	mods := []struct {
		mod string
		act compose.Action
	}{
		{"", exits.Main},
		{"_-", orFail(exits.Minus)},
		{"_.", orFail(exits.Period)},
		{"_:", orFail(exits.Colon)},
	}
	for _, m := range mods {
		exit := state("lrvalue" + m.mod + "_exit")
		for _, f := range allChainFacts() {
			fsym := f.symbol()
			var unfold []stackSym
			if checkFnCall {
				unfold = append(unfold, f.call())
			}
			if checkOnlyName {
				unfold = append(unfold, f.name())
			}
			unfold = append(unfold, f.class())

			cur := state("lrvalue_exit" + m.mod + "_with__" + string(fsym))
			g.put(exit, compose.Any, fsym, compose.Pop(cur, stay))
			base := "lrvalue_exit" + m.mod + "_from__" + string(sym) + "__with__" + string(fsym)
			for i, us := range unfold {
				next := state(base + "__" + strconv.Itoa(i+1))
				if i == 0 {
					g.put(cur, compose.Any, sym, compose.Swap(next, stay, us))
				} else {
					g.put(cur, compose.Any, wild, compose.Push(next, stay, us))
				}
				cur = next
			}
			g.put(cur, compose.Any, wild, m.act)
		}
	}

	// A chain that turned out to be a reserved word leaves the word on the
	// stack for the caller.
	for _, kw := range keywords {
		i1 := state("lrvalue_exit_keyword_with__" + kw)
		i2 := state("lrvalue_exit_keyword_from__" + string(start) + "__with__" + kw)
		g.put("lrvalue_exit", compose.Any, stackSym(kw), compose.Pop(i1, stay))
		g.put(i1, compose.Any, sym, compose.Swap(i2, stay, stackSym(kw)))
		g.put(i2, compose.Any, wild, exits.keyword())
	}
}

// chainAppend replaces the current facts symbol and loops back to the
// continuation position, after ':' expecting call arguments when colon is
// set.
func (g *gram) chainAppend(from state, on compose.CharSet, move automaton.Movement, f chainFacts, colon bool) {
	target := state("lrvalue_read_next_part")
	if colon {
		target = "lrvalue_read_next_part_:"
	}
	g.put(from, on, wild, compose.Swap(target, move, f.symbol()))
}

// valueChains wires the shared chain states.
func (g *gram) valueChains() {
	startFacts := chainFacts{lvalue: true, onlyName: true, funcCall: false}

	// Entry without a consumed name: a letter starts a name, '(' a
	// parenthesized prefix expression.
	g.put("lrvalue_start_1", compose.Alpha, wild, to("lrvalue_start_1_name_or_keyword"))
	g.one("lrvalue_start_1", '(', wild, compose.To("lrvalue_start_1_expression", adv))
	g.readExpression("lrvalue_start_1_expression", to("lrvalue_start_1_expression_end"), exprOpts{})
	g.put("lrvalue_start_1_expression_end", compose.Bytes(")"), wild,
		compose.Push("lrvalue_read_next_part", adv,
			chainFacts{lvalue: false, onlyName: false, funcCall: false}.symbol()))
	g.readNameOrKeyword("lrvalue_start_1_name_or_keyword",
		to("lrvalue_start_1_name"), failTo, wild)

	g.put("lrvalue_start_1_name", compose.Any, wild,
		compose.Push("lrvalue_read_next_part", stay, startFacts.symbol()))
	g.put("lrvalue_start_2", compose.Any, wild,
		compose.Push("lrvalue_read_next_part", stay, startFacts.symbol()))

	// Continuation position: anything unrecognized ends the chain.
	g.put("lrvalue_read_next_part", compose.Any, wild, to("lrvalue_exit"))
	g.readWhitespace("lrvalue_read_next_part", to("lrvalue_-_exit"), wild)
	g.readWhitespace("lrvalue_read_next_part_:", failTo, wild)

	for _, st := range []state{"lrvalue_read_next_part", "lrvalue_read_next_part_:"} {
		g.one(st, '(', wild, compose.To("lrvalue_read_func_args_(", adv))
		g.one(st, '{', wild, to("lrvalue_read_func_args_{"))
		g.one(st, '\'', wild, to("lrvalue_read_func_args_\""))
		g.one(st, '"', wild, to("lrvalue_read_func_args_\""))
	}
	g.one("lrvalue_read_next_part", '[', wild, compose.To("lrvalue_read_[", adv))
	g.one("lrvalue_read_next_part_:", '[', wild, compose.To("lrvalue_read_[_after_:", adv))
	g.one("lrvalue_read_next_part", '.', wild, compose.To("lrvalue_read_.", adv))
	g.one("lrvalue_read_next_part", ':', wild, compose.To("lrvalue_read_:", adv))

	callFacts := chainFacts{lvalue: false, onlyName: false, funcCall: true}

	// Parenthesized argument list. The list's main exit stops on the ')'
	// itself, so it is consumed here; the rparen exit fires for an empty
	// list and has already consumed it.
	g.readExpressionList("lrvalue_read_func_args_(", compose.To("lrvalue_read_func_args_(_)", adv), exprListOpts{
		RParen: to("lrvalue_read_func_args_(_)"),
	})
	g.chainAppend("lrvalue_read_func_args_(_)", compose.Any, stay, callFacts, false)

	// Table constructor argument.
	g.one("lrvalue_read_func_args_{", '{', wild,
		compose.Push("table_constructor_start", stay, "lrvalue_read_func_args_{}"))
	g.put("table_constructor_end", compose.Any, "lrvalue_read_func_args_{}",
		compose.Pop("lrvalue_read_func_args_{_}", stay))
	g.chainAppend("lrvalue_read_func_args_{_}", compose.Any, stay, callFacts, false)

	// Short string argument.
	g.put("lrvalue_read_func_args_\"", compose.Bytes("'\""), wild,
		compose.Push("short_string_start", stay, "lrvalue_short_string"))
	g.put("short_string_end", compose.Any, "lrvalue_short_string",
		compose.Pop("lrvalue_read_func_args_\"_\"", stay))
	g.chainAppend("lrvalue_read_func_args_\"_\"", compose.Any, stay, callFacts, false)

	// Long string argument, or index brackets.
	for _, st := range []state{"lrvalue_read_[", "lrvalue_read_[_after_:"} {
		g.one(st, '[', wild, to("lrvalue_read_[[_func_args"))
		g.one(st, '=', wild, to("lrvalue_read_[[_func_args"))
	}
	for _, b := range []byte{'[', '='} {
		g.one("lrvalue_read_[[_func_args", b, wild,
			compose.Push("multiline_comment_or_long_string_start_2", stay, "lrvalue_long_string_func_args"))
	}
	g.put("multiline_comment_or_long_string_end", compose.Bytes("]"), "lrvalue_long_string_func_args",
		compose.Pop("lrvalue_read_[[_func_args_]]", stay))
	g.chainAppend("lrvalue_read_[[_func_args_]]", compose.Bytes("]"), adv, callFacts, false)

	// Index brackets: t[exp].
	g.put("lrvalue_read_[", byteNot("[="), wild,
		compose.Swap("lrvalue_read_[_membership", stay, "lvalue_or_rvalue"))
	g.readExpression("lrvalue_read_[_membership", to("lrvalue_read_[_membership_exp"), exprOpts{})
	g.chainAppend("lrvalue_read_[_membership_exp", compose.Bytes("]"), adv,
		chainFacts{lvalue: true, onlyName: false, funcCall: false}, false)

	// Field access and method colon.
	g.put("lrvalue_read_.", compose.Any, wild, to("lrvalue_read_._after_whitespace"))
	g.one("lrvalue_read_.", '.', wild, to("lrvalue_._exit"))
	g.readWhitespace("lrvalue_read_.", failTo, wild)
	g.readNameOrKeyword("lrvalue_read_._after_whitespace", to("lrvalue_read_._name"), failTo, wild)
	g.chainAppend("lrvalue_read_._name", compose.Any, stay,
		chainFacts{lvalue: true, onlyName: false, funcCall: false}, false)

	g.put("lrvalue_read_:", compose.Any, wild, to("lrvalue_read_:_after_whitespace"))
	g.one("lrvalue_read_:", ':', wild, to("lrvalue_:_exit"))
	g.readWhitespace("lrvalue_read_:", failTo, wild)
	g.readNameOrKeyword("lrvalue_read_:_after_whitespace", to("lrvalue_read_:_name"), failTo, wild)
	g.chainAppend("lrvalue_read_:_name", compose.Any, stay,
		chainFacts{lvalue: false, onlyName: false, funcCall: true}, true)
}
