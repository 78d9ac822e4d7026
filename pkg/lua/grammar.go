/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grammar.go
Description: Entry point for the Lua 5.3 recognition table. Assembles every
subsystem into one flat transition table, wires the top-level entry rule
(first line skipped when it starts with '#'), and exposes an alternate
expression-only entry state for probing and diagnostics.
*/

package lua

import (
	"sync"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

type state = automaton.State
type stackSym = automaton.StackSymbol

const (
	stateStart    state = "start"
	stateAccepted state = "accepted"
	stateFail     state = "FAIL"

	// Alternate entry: recognize a single expression instead of a chunk.
	stateExprProgram state = "expression_program"

	stay = automaton.Stay
	adv  = automaton.Advance
)

const wild = automaton.WildcardTop

// Reserved words of the language, matched exact-case.
var keywords = []string{
	"and", "break", "do", "else", "elseif", "end",
	"false", "for", "function", "goto", "if", "in",
	"local", "nil", "not", "or", "repeat", "return",
	"then", "true", "until", "while",
}

// Auxiliary result symbols shared by the expression and value-chain
// subsystems.
const (
	symBeginning   stackSym = "beginning"
	symOnlyName    stackSym = "only_name"
	symNotOnlyName stackSym = "not_only_name"
)

// failTo forces rejection on the next step: the fail state has no outgoing
// transitions by construction.
var failTo = compose.To(stateFail, stay)

// to is shorthand for a stack-neutral, non-consuming continuation, the most
// common caller-supplied exit action.
func to(next state) compose.Action {
	return compose.To(next, stay)
}

// byteNot is the byte-only complement: consuming loops use it so an
// unterminated construct rejects at end-of-input instead of eating the end
// marker.
func byteNot(s string) compose.CharSet {
	return compose.AnyByte.Without(compose.Bytes(s))
}

// gram carries the assembler through the subsystem builders. Grammar
// assembly is layered: broad symbol fans are written first and specific
// symbols refine them afterwards, so every write goes through Over.
type gram struct {
	a *compose.Assembler
}

func (g *gram) put(from state, on compose.CharSet, top stackSym, act compose.Action) {
	g.a.Over(from, on, top, act)
}

func (g *gram) one(from state, b byte, top stackSym, act compose.Action) {
	g.a.Over(from, compose.Bytes(string(b)), top, act)
}

var (
	buildOnce sync.Once
	built     *automaton.Table
	buildErr  error
)

// Grammar returns the Lua 5.3 recognition table. The table is assembled once
// and reused; it is immutable and safe for concurrent runs.
func Grammar() (*automaton.Table, error) {
	buildOnce.Do(func() {
		built, buildErr = build()
	})
	return built, buildErr
}

// ExpressionEntry is the entry state that recognizes a single expression
// followed by end-of-input, instead of a whole chunk.
func ExpressionEntry() state {
	return stateExprProgram
}

func build() (*automaton.Table, error) {
	b := automaton.NewBuilder("lua-5.3", stateStart, stateAccepted, stateFail)
	g := &gram{a: compose.NewAssembler(b)}

	g.longBrackets()
	g.comments()
	g.namesCore()
	g.nameLists()
	g.functionBodies()
	g.shortStrings()
	g.tableConstructors()
	g.valueChains()
	g.expressionsCore()
	g.numerals()
	g.expressionLiterals()
	g.expressionLists()
	g.statements()
	g.entryRules()

	return b.Build()
}

// entryRules wires the chunk entry point and the expression-only entry.
func (g *gram) entryRules() {
	// A chunk is a sequence of statements. The first line is skipped
	// unconditionally when it starts with '#'.
	g.put(stateStart, compose.Any, wild, to("statement"))
	g.one(stateStart, '#', wild, compose.To("start_#", adv))
	g.put("start_#", compose.AnyByte, wild, compose.To("start_#", adv))
	g.put("start_#", compose.Bytes("\r\n"), wild, compose.To("statement", adv))
	g.put("start_#", compose.End, wild, to(stateAccepted))

	// End of input between statements is the accepting condition; the engine
	// additionally requires the stack to be back at its initial marker, so a
	// dangling block (an unclosed "do", "if", ...) still rejects here.
	g.put("statement", compose.End, wild, to(stateAccepted))

	// Expression-only entry.
	g.readExpression(stateExprProgram, to("expression_program_done"), exprOpts{})
	g.put("expression_program_done", compose.End, wild, to(stateAccepted))
}
