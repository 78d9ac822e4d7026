/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: brackets.go
Description: Long-bracket scanner shared by long strings and long comments.
A level-n opener "[===[" must be closed by a level-n "]===]"; the open level
is counted in unary on the stack so the closer can be compared symbol by
symbol. Levels are bounded: an opener deeper than bracketLevels has no
transition and rejects.
*/

package lua

import (
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// bracketLevels is the maximum supported long-bracket level. One stack
// symbol and a handful of states exist per level, so the bound keeps the
// table finite.
const bracketLevels = 10

const mcols = "multiline_comment_or_long_string"

func lvl(i int) stackSym {
	return stackSym("long_bracket_level_" + strconv.Itoa(i))
}

func (g *gram) longBrackets() {
	start := state(mcols + "_start")
	start2 := state(mcols + "_start_2")
	opened := state(mcols + "_start_[")
	body := state(mcols)
	openFail := state(mcols + "_end_opening_fail")
	end := state(mcols + "_end")
	pe := state(mcols + "_possible_end")
	pe2 := state(mcols + "_possible_end_2")

	// Entry before the first '['. Callers push their return symbol first;
	// an opener that does not complete unwinds through openFail with that
	// symbol on top.
	g.put(start, compose.Any, wild, to(openFail))
	g.one(start, '[', wild, compose.Push(opened, adv, lvl(0)))

	// Entry with the first '[' already consumed by the caller's dispatch.
	g.put(start2, compose.Any, wild, to(openFail))
	g.one(start2, '[', wild, compose.Push(opened, stay, lvl(0)))
	g.one(start2, '=', wild, compose.Push(opened, stay, lvl(0)))

	// Count opener '='s in unary. At the bound the chain simply stops, so a
	// deeper opener finds no transition and rejects.
	g.put(opened, byteNot("=["), wild, compose.Pop(openFail, stay))
	for i := 1; i <= bracketLevels; i++ {
		g.one(opened, '=', lvl(i-1), compose.Swap(opened, adv, lvl(i)))
	}
	g.one(opened, '[', wild, compose.To(body, adv))

	// Body content is opaque bytes; end-of-input inside the body rejects.
	g.put(body, compose.AnyByte, wild, compose.To(body, adv))
	g.one(body, ']', wild, compose.Push(pe, adv, lvl(0)))

	// Count a closer candidate the same way. Any non-'=' non-']' byte means
	// the candidate was content after all.
	g.put(pe, byteNot("=]"), wild, compose.Pop(body, adv))
	for i := 1; i <= bracketLevels; i++ {
		g.one(pe, '=', lvl(i-1), compose.Swap(pe, adv, lvl(i)))
	}
	// A candidate deeper than the bound can never match a live opener;
	// back to content.
	g.one(pe, '=', lvl(bracketLevels), compose.Pop(body, adv))
	g.one(pe, ']', wild, to(pe2))

	// Compare closer level against the opener level underneath it. On a
	// match the final ']' is left for the caller's exit transition.
	for i := 0; i <= bracketLevels; i++ {
		cmp := state(mcols + "_possible_end_" + strings.Repeat("=", i))
		g.one(pe2, ']', lvl(i), compose.Pop(cmp, stay))
		g.one(cmp, ']', lvl(i), compose.Pop(end, stay))
		g.one(cmp, ']', wild, compose.Push(pe, adv, lvl(0)))
	}
}
