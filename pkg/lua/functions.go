/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: functions.go
Description: Function bodies: the parameter list from its '(' through ')',
then the body as ordinary statements with a func_body marker on the stack so
the matching "end" (or a "return" unwinding to it) closes the function and
not an enclosing block.
*/

package lua

import (
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func (g *gram) functionBodies() {
	g.readWhitespace("func_body_start", failTo, wild)
	g.one("func_body_start", '(', wild, compose.To("parlist_start", adv))

	g.readWhitespace("parlist_start", failTo, wild)
	g.readNameOrKeyword("parlist_start", to("parlist_after_name"), failTo, wild)
	g.readWhitespace("parlist_after_name", failTo, wild)
	g.one("parlist_after_name", ',', wild, compose.To("parlist_after_comma", adv))
	g.readWhitespace("parlist_after_comma", failTo, wild)
	g.readNameOrKeyword("parlist_after_comma", to("parlist_after_name"), failTo, wild)

	// "..." may close the list, as the only parameter or after a comma.
	g.one("parlist_start", '.', wild, compose.To("parlist_.", adv))
	g.one("parlist_after_comma", '.', wild, compose.To("parlist_.", adv))
	g.one("parlist_.", '.', wild, compose.To("parlist_..", adv))
	g.one("parlist_..", '.', wild, compose.To("parlist_...", adv))
	g.readWhitespace("parlist_...", failTo, wild)

	for _, from := range []state{"parlist_start", "parlist_after_name", "parlist_..."} {
		g.one(from, ')', wild, compose.Push("statement", adv, "func_body"))
	}
}
