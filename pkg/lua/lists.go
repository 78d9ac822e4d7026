/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: lists.go
Description: Comma-separated expression lists, used by multiple assignment,
return statements, generic for and call argument lists. The list shares the
expression subsystem's terminator exits so a caller can see which keyword or
punctuation ended the list.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// exprListOpts mirrors exprOpts for lists. Only the first element of a list
// may report a trailing name or trailing ':'.
type exprListOpts struct {
	End          compose.Action
	Elseif       compose.Action
	Else         compose.Action
	Until        compose.Action
	Semicolon    compose.Action
	RParen       compose.Action
	TrailingName compose.Action
	Colon        compose.Action

	RequiredTop stackSym
}

func (o exprListOpts) top() stackSym {
	if o.RequiredTop == "" {
		return wild
	}
	return o.RequiredTop
}

// readExpressionList lets start read one or more comma-separated
// expressions. main fires after the last expression; terminator exits are
// forwarded from the underlying expressions.
func (g *gram) readExpressionList(start state, main compose.Action, o exprListOpts) {
	sym := stackSym("expression_list__" + string(start))
	g.put(start, compose.Any, o.top(), compose.Push("expression_list_start", stay, sym))

	inter := state("expression_list_exit_from__" + string(start))
	g.put("expression_list_exit", compose.Any, sym, compose.Pop(inter, stay))
	g.put(inter, compose.Any, wild, main)

	for _, k := range []struct {
		suffix string
		act    compose.Action
	}{
		{"end", orFail(o.End)},
		{"elseif", orFail(o.Elseif)},
		{"else", orFail(o.Else)},
		{"until", orFail(o.Until)},
		{";", orFail(o.Semicolon)},
		{")", orFail(o.RParen)},
		{"trailing_name", orFail(o.TrailingName)},
		{":", orFail(o.Colon)},
	} {
		exit := state("expression_list_exit_" + k.suffix)
		i := state("expression_list_exit_" + k.suffix + "_from__" + string(start))
		g.put(exit, compose.Any, sym, compose.Pop(i, stay))
		g.put(i, compose.Any, wild, k.act)
	}
}

// expressionLists wires the shared list states.
func (g *gram) expressionLists() {
	g.readExpression("expression_list_start", to("expression_list_entry_end"), exprOpts{
		End:          to("expression_list_exit_end"),
		Elseif:       to("expression_list_exit_elseif"),
		Else:         to("expression_list_exit_else"),
		Until:        to("expression_list_exit_until"),
		Semicolon:    to("expression_list_exit_;"),
		RParen:       to("expression_list_exit_)"),
		TrailingName: to("expression_list_exit_trailing_name"),
		Colon:        to("expression_list_exit_:"),
	})
	g.put("expression_list_entry_end", compose.Any, wild, to("expression_list_exit"))
	g.one("expression_list_entry_end", ',', wild, compose.To("expression_list_start_2", adv))
	g.readExpression("expression_list_start_2", to("expression_list_entry_end"), exprOpts{
		TrailingName: to("expression_list_exit_trailing_name"),
	})
}
