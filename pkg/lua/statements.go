/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: statements.go
Description: Statement recognition. Block structure lives on the stack: each
block-opening keyword pushes a marker ("statement_do", "statement_if", ...)
that exactly one "end" (or the matching "until"/"else"/"elseif") pops, so
balance falls out of the acceptance condition. Telling an assignment from a
function call needs the value-chain facts, since both start with the same
prefix.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// endPoppers maps the block marker on the stack to the state reached after
// the "end" keyword that pops it.
var endPoppers = []struct {
	sym  stackSym
	dest state
}{
	{"statement_do", "statement"},
	{"statement_while", "statement"},
	{"statement_if", "statement"},
	{"statement_for", "statement"},
	{"func_body", "func_body_end"},
}

func (g *gram) statements() {
	// No valid statement starts with a '-', so a lone minus here rejects.
	g.readWhitespace("statement", failTo, wild)

	// Empty statement.
	g.one("statement", ';', wild, compose.To("statement", adv))

	// Label: ::Name::. The first colon may also arrive pre-consumed from a
	// function call that ran into a label.
	g.one("statement", ':', wild, compose.To("statement_dbcolon_:", adv))
	g.one("statement_dbcolon_:", ':', wild, compose.To("statement_dbcolon_::", adv))
	g.readWhitespace("statement_dbcolon_::", failTo, wild)
	g.readNameOrKeyword("statement_dbcolon_::", to("statement_dbcolon_::NAME"), failTo, wild)
	g.readWhitespace("statement_dbcolon_::NAME", failTo, wild)
	g.one("statement_dbcolon_::NAME", ':', wild, compose.To("statement_dbcolon_::NAME:", adv))
	g.one("statement_dbcolon_::NAME:", ':', wild, compose.To("statement", adv))

	// A statement starting with '(' can only be an assignment or a call.
	g.one("statement", '(', wild, to("statement_("))
	g.readValueChain("statement_(", false, valueChainExits{
		Main: to("statement_read_lvalue_hopefully"),
	}, false, true)

	// Name-initial statements: assignment or function call.
	g.readNameOrKeyword("statement",
		to("statement_starting_with_name"), to("statement_starting_with_keyword"), wild)
	g.readWhitespace("statement_starting_with_name", failTo, wild)
	g.one("statement_starting_with_name", ',', wild, compose.To("statement_assign_varlist", adv))
	g.one("statement_starting_with_name", '=', wild, compose.To("statement_assign_rightside", adv))
	g.readValueChain("statement_starting_with_name", true, valueChainExits{
		Main:  to("statement_read_lvalue_hopefully"),
		Colon: to("statement_read_lvalue_hopefully_:"),
	}, false, true)

	// An assignable chain followed by ',' or '=' is an assignment.
	g.one("statement_read_lvalue_hopefully", ',', "lvalue_or_rvalue",
		compose.Pop("statement_read_lvalue", stay))
	g.one("statement_read_lvalue_hopefully", '=', "lvalue_or_rvalue",
		compose.Pop("statement_read_lvalue", stay))
	g.one("statement_read_lvalue", ',', wild, compose.Pop("statement_assign_varlist", adv))
	g.one("statement_read_lvalue", '=', wild, compose.Pop("statement_assign_rightside", adv))

	// Otherwise the chain must have been a call, checked against the
	// function-call fact.
	g.put("statement_read_lvalue_hopefully", compose.Any, "rvalue",
		compose.Pop("statement_function_call_maybe", stay))
	g.put("statement_function_call_maybe", compose.Any, "function_call",
		compose.Pop("statement", stay))

	// A chain ending in "::" is a call followed by a label whose first
	// colon was already consumed.
	g.one("statement_read_lvalue_hopefully_:", ':', "rvalue",
		compose.Pop("statement_function_call_maybe_:", stay))
	g.one("statement_function_call_maybe_:", ':', "function_call",
		compose.Pop("statement_dbcolon_:", stay))

	// Further assignment targets, then the right-hand expression list.
	g.put("statement_assign_varlist", compose.Any, wild, to("statement_assign_varlist_2"))
	g.readWhitespace("statement_assign_varlist", failTo, wild)
	g.readValueChain("statement_assign_varlist_2", false, valueChainExits{
		Main: to("statement_assign_read_another_lvalue_hopefully"),
	}, false, false)
	g.one("statement_assign_read_another_lvalue_hopefully", ',', "lvalue_or_rvalue",
		compose.Pop("statement_assign_varlist", adv))
	g.one("statement_assign_read_another_lvalue_hopefully", '=', "lvalue_or_rvalue",
		compose.Pop("statement_assign_rightside", adv))
	g.readExpressionList("statement_assign_rightside", to("statement"), exprListOpts{
		TrailingName: to("statement_starting_with_name"),
		Colon:        to("statement_dbcolon_:"),
	})

	// Keyword statement dispatch. Block openers replace their keyword with
	// the block marker; the others pop it.
	g.put("statement_starting_with_keyword", compose.NotAlnum, "if",
		compose.Swap("statement_if", stay, "statement_if"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "elseif",
		compose.Pop("statement_elseif", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "else",
		compose.Pop("statement_else", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "while",
		compose.Swap("statement_while", stay, "statement_while"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "do",
		compose.Swap("statement", stay, "statement_do"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "for",
		compose.Swap("statement_for", stay, "statement_for"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "repeat",
		compose.Swap("statement", stay, "statement_repeat"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "until",
		compose.Pop("statement_until", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "function",
		compose.Swap("statement_function", stay, "statement_function"))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "local",
		compose.Pop("statement_local", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "return",
		compose.Pop("statement_return", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "break",
		compose.Pop("statement", stay))
	g.put("statement_starting_with_keyword", compose.NotAlnum, "goto",
		compose.Pop("statement_goto", stay))

	// if exp then ... / elseif exp then ...
	g.readExpression("statement_if", to("statement_if_after_expression"), exprOpts{})
	g.one("statement_if_after_expression", 't', wild, compose.To("statement_if_after_expression_t", adv))
	g.one("statement_if_after_expression_t", 'h', wild, compose.To("statement_if_after_expression_th", adv))
	g.one("statement_if_after_expression_th", 'e', wild, compose.To("statement_if_after_expression_the", adv))
	g.one("statement_if_after_expression_the", 'n', wild, compose.To("statement", adv))
	g.readExpression("statement_elseif", to("statement_if_after_expression"),
		exprOpts{RequiredTop: "statement_if"})
	g.put("statement_else", compose.Any, "statement_if", to("statement"))

	// while exp do ...
	g.readExpression("statement_while", to("statement_while_after_expression"), exprOpts{})
	g.one("statement_while_after_expression", 'd', wild,
		compose.To("statement_while_after_expression_d", adv))
	g.one("statement_while_after_expression_d", 'o', wild, compose.To("statement", adv))

	// for Name = exp, exp [, exp] do ...
	g.readWhitespace("statement_for", failTo, wild)
	g.readNameOrKeyword("statement_for", to("statement_for_name"), failTo, wild)
	g.readWhitespace("statement_for_name", failTo, wild)
	g.one("statement_for_name", '=', wild, compose.To("statement_numfor_=", adv))
	g.readExpression("statement_numfor_=", to("statement_numfor_=_exp"), exprOpts{})
	g.one("statement_numfor_=_exp", ',', wild, compose.To("statement_numfor_=_exp_,", adv))
	g.readExpression("statement_numfor_=_exp_,", to("statement_numfor_=_exp_,_exp"), exprOpts{})
	g.one("statement_numfor_=_exp_,_exp", 'd', wild,
		compose.To("statement_numfor_=_exp_,_exp_,_exp_d", adv))
	g.one("statement_numfor_=_exp_,_exp", ',', wild,
		compose.To("statement_numfor_=_exp_,_exp_,", adv))
	g.readExpression("statement_numfor_=_exp_,_exp_,",
		to("statement_numfor_=_exp_,_exp_,_exp"), exprOpts{})
	g.one("statement_numfor_=_exp_,_exp_,_exp", 'd', wild,
		compose.To("statement_numfor_=_exp_,_exp_,_exp_d", adv))
	g.one("statement_numfor_=_exp_,_exp_,_exp_d", 'o', wild, compose.To("statement", adv))

	// for namelist in explist do ...
	g.one("statement_for_name", ',', wild, compose.To("statement_genfor_namelist_,", adv))
	g.one("statement_for_name", 'i', wild, compose.To("statement_genfor_namelist_i", adv))
	g.put("statement_genfor_namelist_,", compose.Any, wild, to("statement_genfor_namelist_,_whitespace"))
	g.readWhitespace("statement_genfor_namelist_,", failTo, wild)
	g.readNameList("statement_genfor_namelist_,_whitespace", to("statement_genfor_namelist"), failTo, wild)
	g.one("statement_genfor_namelist", 'i', wild, compose.To("statement_genfor_namelist_i", adv))
	g.one("statement_genfor_namelist_i", 'n', wild, compose.To("statement_genfor_namelist_in", adv))
	g.readExpressionList("statement_genfor_namelist_in",
		to("statement_genfor_namelist_in_explist"), exprListOpts{})
	g.one("statement_genfor_namelist_in_explist", 'd', wild,
		compose.To("statement_genfor_namelist_in_explist_d", adv))
	g.one("statement_genfor_namelist_in_explist_d", 'o', wild, compose.To("statement", adv))

	// repeat ... until exp: the expression pops the repeat marker on exit.
	g.readExpression("statement_until", compose.Pop("statement", stay), exprOpts{
		TrailingName: compose.Pop("statement_starting_with_name", stay),
		Colon:        compose.Pop("statement_dbcolon_:", stay),
		RequiredTop:  "statement_repeat",
	})

	// function funcname funcbody, with funcname ::= Name {'.' Name} [':' Name].
	g.readWhitespace("statement_function", failTo, wild)
	g.put("statement_function", compose.Alnum, wild, to("func_name_."))
	g.readWhitespace("func_name_.", failTo, wild)
	g.readNameOrKeyword("func_name_.", to("func_name"), failTo, wild)
	g.readWhitespace("func_name", failTo, wild)
	g.one("func_name", '.', wild, compose.To("func_name_.", adv))
	g.one("func_name", ':', wild, compose.To("func_name_:", adv))
	g.readWhitespace("func_name_:", failTo, wild)
	g.readNameOrKeyword("func_name_:", to("func_name_:name"), failTo, wild)
	g.readWhitespace("func_name_:name", failTo, wild)
	g.one("func_name", '(', wild, to("func_body_start"))
	g.one("func_name_:name", '(', wild, to("func_body_start"))
	g.put("func_body_end", compose.Any, "statement_function", compose.Pop("statement", stay))

	// local namelist [= explist] / local function Name funcbody.
	g.put("statement_local", compose.Any, wild, to("statement_local_after_whitespace"))
	g.readWhitespace("statement_local", failTo, wild)
	g.readNameList("statement_local_after_whitespace",
		to("statement_local_after_name_list"), to("statement_local_read_keyword"), wild)
	g.one("statement_local_after_name_list", '=', wild,
		compose.To("statement_assign_rightside", adv))
	g.put("statement_local_after_name_list", compose.Not(compose.Bytes("=")), wild, to("statement"))
	g.put("statement_local_read_keyword", compose.Any, "function",
		compose.Pop("statement_local_function", stay))
	g.readWhitespace("statement_local_function", failTo, wild)
	g.readNameOrKeyword("statement_local_function",
		to("statement_local_function_read_name"), failTo, wild)
	g.readWhitespace("statement_local_function_read_name", failTo, wild)
	g.one("statement_local_function_read_name", '(', wild,
		compose.Push("func_body_start", stay, "statement_local_function"))
	g.put("func_body_end", compose.Any, "statement_local_function", compose.Pop("statement", stay))

	// return [explist] [';'], only valid at the end of a block.
	g.readExpressionList("statement_return", to("statement_return_after_expression"), exprListOpts{
		End:       to("statement_return_end"),
		Elseif:    to("statement_return_elseif"),
		Else:      to("statement_return_else"),
		Until:     to("statement_return_until"),
		Semicolon: to("statement_return_after_expression_;"),
	})
	g.readWhitespace("statement_return_after_expression", failTo, wild)
	g.one("statement_return_after_expression", ';', wild,
		compose.To("statement_return_after_expression_;", adv))
	g.readWhitespace("statement_return_after_expression_;", failTo, wild)

	// The block terminator after the return, spelled out byte by byte
	// since both plain and ';' forms may stop right in front of it.
	spell := func(from state, word string, dest state) {
		cur := from
		for i := 0; i < len(word); i++ {
			next := state("statement_return_after_expression_;" + word[:i+1])
			g.one(cur, word[i], wild, compose.To(next, adv))
			cur = next
		}
		g.put(cur, compose.NotAlnum, wild, to(dest))
	}
	spell("statement_return_after_expression", "end", "statement_return_end")
	spell("statement_return_after_expression_;", "end", "statement_return_end")
	spell("statement_return_after_expression", "else", "statement_return_else")
	spell("statement_return_after_expression_;", "else", "statement_return_else")
	spell("statement_return_after_expression", "elseif", "statement_return_elseif")
	spell("statement_return_after_expression_;", "elseif", "statement_return_elseif")
	spell("statement_return_after_expression", "until", "statement_return_until")
	spell("statement_return_after_expression_;", "until", "statement_return_until")

	g.put("statement_return_else", compose.NotAlnum, "statement_if", to("statement_else"))
	g.put("statement_return_elseif", compose.NotAlnum, "statement_if", to("statement_elseif"))
	g.put("statement_return_until", compose.NotAlnum, "statement_repeat", to("statement_until"))
	for _, p := range endPoppers {
		g.put("statement_return_end", compose.NotAlnum, p.sym, compose.Pop(p.dest, stay))
	}

	// End of input directly after the return (":= return [explist] [';']"
	// closing the chunk itself).
	g.put("statement_return_after_expression", compose.End, wild, to(stateAccepted))
	g.put("statement_return_after_expression_;", compose.End, wild, to(stateAccepted))

	// goto Name.
	g.readWhitespace("statement_goto", failTo, wild)
	g.readNameOrKeyword("statement_goto", to("statement"), failTo, wild)

	// The "end" keyword pops the block marker underneath it.
	g.put("statement_starting_with_keyword", compose.NotAlnum, "end",
		compose.Pop("statement_end", stay))
	for _, p := range endPoppers {
		g.put("statement_end", compose.NotAlnum, p.sym, compose.Pop(p.dest, stay))
	}
}
