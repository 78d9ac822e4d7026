/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: names.go
Description: Identifier and reserved-word recognition. The reserved words
form a trie spelled out in stack symbols: every matched prefix is a symbol,
extended in place as the next letter arrives. Falling off the trie turns the
token into a plain name; completing a word with a non-word byte next turns
it into that keyword, and the caller learns which one from the symbol left
on the stack.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// namesCore wires the shared name/keyword scanner entered through
// readNameOrKeyword.
func (g *gram) namesCore() {
	// A plain name consumes word bytes until the first non-word byte.
	g.put("name", compose.Alnum, wild, compose.To("name", adv))

	// Keyword-prefix fallbacks first: any divergence from the trie drops
	// the prefix symbol and continues as a name.
	g.put("name_or_keyword", compose.Alnum, wild, to("name"))
	for _, kw := range keywords {
		for i := 1; i <= len(kw); i++ {
			g.put("name_or_keyword", compose.Any, stackSym(kw[:i]), compose.Pop("name", stay))
		}
	}

	// Trie edges refine the fallbacks: extend the matched prefix in place,
	// and resolve a complete word followed by a non-word byte.
	for _, kw := range keywords {
		g.put("name_or_keyword", compose.NotAlnum, stackSym(kw),
			compose.Pop(state("keyword_"+kw), stay))
		g.one("name_or_keyword", kw[0], wild,
			compose.Push("name_or_keyword", adv, stackSym(kw[:1])))
		for i := 1; i < len(kw); i++ {
			g.one("name_or_keyword", kw[i], stackSym(kw[:i]),
				compose.Swap("name_or_keyword", adv, stackSym(kw[:i+1])))
		}
	}
}

// readNameOrKeyword lets start read one identifier. name fires after a plain
// name; keyword fires after a reserved word with that word left on the stack
// top for the caller to dispatch on.
func (g *gram) readNameOrKeyword(start state, name, keyword compose.Action, top stackSym) {
	sym := stackSym("name_or_keyword__" + string(start))
	g.put(start, compose.Alpha, top, compose.Push("name_or_keyword", stay, sym))

	inter := state("name_from__" + string(start))
	g.put("name", compose.NotAlnum, sym, compose.Pop(inter, stay))
	g.put(inter, compose.NotAlnum, wild, name)

	for _, kw := range keywords {
		interK := state("keyword_" + kw + "_from__" + string(start))
		g.put(state("keyword_"+kw), compose.NotAlnum, sym, compose.Swap(interK, stay, stackSym(kw)))
		g.put(interK, compose.NotAlnum, wild, keyword)
	}
}

// readNameList lets start read a comma-separated list of names. A reserved
// word in place of the first name exits through keyword with the word on the
// stack, which "local function" relies on.
func (g *gram) readNameList(start state, name, keyword compose.Action, top stackSym) {
	sym := stackSym("name_list__" + string(start))
	g.put(start, compose.Any, top, compose.Push("name_list_start", stay, sym))

	inter := state("name_list_exit_name_from__" + string(start))
	g.put("name_list_exit_name", compose.Any, sym, compose.Pop(inter, stay))
	g.put(inter, compose.Any, wild, name)

	for _, kw := range keywords {
		i1 := state("name_list_exit_keyword__" + kw)
		i2 := state("name_list_exit_keyword__" + kw + "__from__" + string(start))
		i3 := state("name_list_exit_keyword_from__" + string(start))
		g.put("name_list_exit_keyword", compose.Any, stackSym(kw), compose.Pop(i1, stay))
		g.put(i1, compose.Any, sym, compose.Pop(i2, stay))
		g.put(i2, compose.Any, wild, compose.Push(i3, stay, stackSym(kw)))
		g.put(i3, compose.Any, wild, keyword)
	}
}

// nameLists wires the shared name-list scanner states.
func (g *gram) nameLists() {
	g.readNameOrKeyword("name_list_start", to("name_list_entry_end"), to("name_list_exit_keyword"), wild)

	g.put("name_list_entry_end", compose.Any, wild, to("name_list_exit_name"))
	g.readWhitespace("name_list_entry_end", failTo, wild)
	g.one("name_list_entry_end", ',', wild, compose.To("name_list_start_2", adv))

	g.readWhitespace("name_list_start_2", failTo, wild)
	g.readNameOrKeyword("name_list_start_2", to("name_list_entry_end"), failTo, wild)
}
