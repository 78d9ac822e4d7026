/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: tables.go
Description: Table constructors. Fields come in three shapes: "[exp] = exp",
"name = exp" and plain "exp". The middle one is only distinguishable
from the last after the expression has been read, using the only-name fact
plus whether a '-' preceded the field (the fact survives on the stack as
had_minus / did_not_have_minus).
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func (g *gram) tableConstructors() {
	g.one("table_constructor_start", '{', wild,
		compose.To("table_constructor_whitespace_before_field", adv))

	g.put("table_constructor_whitespace_before_field", compose.Any, wild,
		to("table_constructor_before_field"))
	g.readWhitespace("table_constructor_whitespace_before_field",
		to("table_constructor_before_field_-"), wild)

	// "[exp] = exp" fields. A '[' may instead open a long-string field
	// value, disambiguated one byte later.
	g.one("table_constructor_before_field", '[', wild,
		compose.To("table_constructor_field_[", adv))
	g.put("table_constructor_field_[", byteNot("[="), wild,
		to("table_constructor_field_[_before_exp"))
	g.one("table_constructor_field_[", '[', wild, to("table_constructor_field_[[_or_[="))
	g.one("table_constructor_field_[", '=', wild, to("table_constructor_field_[[_or_[="))

	for _, b := range []byte{'[', '='} {
		g.one("table_constructor_field_[[_or_[=", b, wild,
			compose.Push("multiline_comment_or_long_string_start_2", stay,
				"table_constructor_long_string_field_exp"))
	}
	g.put("multiline_comment_or_long_string_end", compose.Bytes("]"),
		"table_constructor_long_string_field_exp",
		compose.Push("table_constructor_field_after_name_or_exp_before_whitespace", adv,
			symNotOnlyName))

	g.readExpression("table_constructor_field_[_before_exp",
		to("table_constructor_field_[_exp"), exprOpts{})
	g.one("table_constructor_field_[_exp", ']', wild,
		compose.To("table_constructor_field_[_exp_]", adv))
	g.readWhitespace("table_constructor_field_[_exp_]", failTo, wild)
	g.one("table_constructor_field_[_exp_]", '=', wild,
		compose.To("table_constructor_field_[_exp_]_=", adv))
	g.readExpression("table_constructor_field_[_exp_]_=",
		to("table_constructor_field_[_exp_]_=_exp"), exprOpts{})
	g.one("table_constructor_field_[_exp_]_=_exp", ',', wild,
		compose.To("table_constructor_whitespace_before_field", adv))
	g.one("table_constructor_field_[_exp_]_=_exp", ';', wild,
		compose.To("table_constructor_whitespace_before_field", adv))

	// "name = exp" or plain "exp" fields: read an expression first, and
	// remember whether whitespace scanning consumed a '-' in front of it.
	g.put("table_constructor_before_field", byteNot("["), wild,
		compose.Push("table_constructor_field_name_or_exp", stay, "did_not_have_minus"))
	g.put("table_constructor_before_field_-", byteNot("["), wild,
		compose.Push("table_constructor_field_name_or_exp", stay, "had_minus"))
	g.readExpression("table_constructor_field_name_or_exp",
		to("table_constructor_field_after_name_or_exp_before_whitespace"), exprOpts{
			Equals:        to("table_constructor_field_name_=_(1)"),
			CheckOnlyName: true,
		})

	g.put("table_constructor_field_after_name_or_exp_before_whitespace", compose.Any, wild,
		to("table_constructor_field_after_name_or_exp"))
	g.readWhitespace("table_constructor_field_after_name_or_exp_before_whitespace",
		failTo, wild)

	// "name = exp": only valid when the left side was exactly a bare name
	// with no leading '-'.
	g.put("table_constructor_field_name_=_(1)", compose.Any, symOnlyName,
		compose.Pop("table_constructor_field_name_=_(2)", stay))
	g.put("table_constructor_field_name_=_(2)", compose.Any, "did_not_have_minus",
		compose.Pop("table_constructor_field_name_=_(3)", stay))
	g.readExpression("table_constructor_field_name_=_(3)",
		to("table_constructor_field_name_=_exp"), exprOpts{})
	g.one("table_constructor_field_name_=_exp", ',', wild,
		compose.To("table_constructor_whitespace_before_field", adv))
	g.one("table_constructor_field_name_=_exp", ';', wild,
		compose.To("table_constructor_whitespace_before_field", adv))

	// Plain "exp" field: drop the fact and the minus marker on the way out.
	g.one("table_constructor_field_after_name_or_exp", ',', wild,
		compose.Pop("table_constructor_field_after_exp", stay))
	g.one("table_constructor_field_after_name_or_exp", ';', wild,
		compose.Pop("table_constructor_field_after_exp", stay))
	g.one("table_constructor_field_after_exp", ',', wild,
		compose.Pop("table_constructor_whitespace_before_field", adv))
	g.one("table_constructor_field_after_exp", ';', wild,
		compose.Pop("table_constructor_whitespace_before_field", adv))

	// Constructor end, from any of the field shapes.
	g.one("table_constructor_whitespace_before_field", '}', wild,
		compose.To("table_constructor_end", adv))
	g.one("table_constructor_field_[_exp_]_=_exp", '}', wild,
		compose.To("table_constructor_end", adv))
	g.one("table_constructor_field_name_=_exp", '}', wild,
		compose.To("table_constructor_end", adv))
	g.one("table_constructor_field_after_name_or_exp", '}', wild,
		compose.Pop("table_constructor_field_after_exp_}", stay))
	g.one("table_constructor_field_after_exp_}", '}', wild,
		compose.Pop("table_constructor_end", adv))
}
