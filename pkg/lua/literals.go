/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: literals.go
Description: Literal operands inside expressions: short strings, long
strings, table constructors and anonymous functions, each entered through
the shared scanner for that construct with an expression return symbol.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func (g *gram) expressionLiterals() {
	// Short strings.
	for _, q := range []byte{'\'', '"'} {
		g.one("expression", q, wild,
			compose.Swap("expression_starting_with_quote", stay, symNotOnlyName))
		g.one("expression_starting_with_quote", q, wild,
			compose.Push("short_string_start", stay, "expression_short_string"))
	}
	g.put("short_string_end", compose.Any, "expression_short_string",
		compose.Pop("expression_binop-or-end", stay))

	// Long strings.
	g.one("expression", '[', wild,
		compose.Swap("expression_starting_with_[", stay, symNotOnlyName))
	g.one("expression_starting_with_[", '[', wild,
		compose.Push("multiline_comment_or_long_string_start", stay, "long_string"))
	g.put("multiline_comment_or_long_string_end", compose.Bytes("]"), "long_string",
		compose.Pop("expression_binop-or-end", adv))

	// Table constructors.
	g.one("expression", '{', wild,
		compose.Push("table_constructor_start", stay, "expression_table_constructor"))
	g.put("table_constructor_end", compose.Any, "expression_table_constructor",
		compose.Pop("expression_table_constructor_end", stay))
	g.put("expression_table_constructor_end", compose.Any, wild,
		compose.Swap("expression_binop-or-end", stay, symNotOnlyName))

	// Anonymous functions: the "function" keyword swapped in
	// expression_function as the return symbol; the body ends at its "end".
	g.put("func_body_end", compose.Any, "expression_function",
		compose.Pop("expression_after_func_body", stay))
	g.put("expression_after_func_body", compose.Any, wild,
		compose.Swap("expression_binop-or-end", stay, symNotOnlyName))
}
