/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: whitespace.go
Description: Whitespace and comment handling. Comments are the tricky part:
a lone '-' is a binary operator while '--' opens a comment, so the shared
comment scanner is entered through a reified return symbol and the caller
decides what a single '-' means at its site.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

// readWhitespace lets start skip spaces and comments in place. A '-' pushes
// a per-site return symbol and probes for a second '-': if none follows, the
// probe unwinds and minus fires with the stack exactly as it was, one '-'
// consumed. Comments return to start when they close.
func (g *gram) readWhitespace(start state, minus compose.Action, top stackSym) {
	csym := stackSym("comment__" + string(start))

	g.put(start, compose.Space, top, compose.To(start, adv))
	g.one(start, '-', top, compose.Push("possible_comment_-", adv, csym))

	inter := state("possible_comment_-__" + string(start))
	g.put("possible_comment_-", compose.NotBytes("-"), csym, compose.Pop(inter, stay))
	g.put(inter, compose.NotBytes("-"), wild, minus)

	// Comment exits back to this site.
	g.put("comment_single_line", compose.Bytes("\r\n"), csym, compose.Pop(start, adv))
	g.put("comment_single_line", compose.End, csym, compose.Pop(start, stay))
	g.one("comment_multiline_end", ']', csym, compose.Pop(start, adv))
}

// comments wires the shared comment scanner: single-line comments run to the
// end of the line, and '--[' probes for a long-bracket comment, falling back
// to single-line when the opener does not complete.
func (g *gram) comments() {
	g.one("possible_comment_-", '-', wild, compose.To("comment_start", adv))

	g.put("comment_start", compose.Any, wild, to("comment_single_line"))
	g.one("comment_start", '[', wild,
		compose.Push("multiline_comment_or_long_string_start", stay, "multiline_comment"))

	g.put("comment_single_line", byteNot("\r\n"), wild, compose.To("comment_single_line", adv))

	g.put("multiline_comment_or_long_string_end", compose.Bytes("]"), "multiline_comment",
		compose.Pop("comment_multiline_end", stay))
	g.put("multiline_comment_or_long_string_end_opening_fail", compose.Any, "multiline_comment",
		compose.Pop("comment_single_line", stay))
}
