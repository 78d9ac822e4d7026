/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core data model for the recognizer automaton. Defines states, stack
symbols, the input symbol alphabet (bytes plus an explicit end-of-input marker),
transition keys and actions, and run verdicts shared across the oracle.
*/

package automaton

import "fmt"

// State identifies one control state of the automaton. States form a closed
// set fixed when the table is built; the builder rejects transitions whose
// targets never receive outgoing transitions of their own.
type State string

// StackSymbol identifies one symbol of the closed stack alphabet. Grammars
// use dedicated subranges of this alphabet for return continuations and for
// auxiliary result values reported back to a calling subsystem.
type StackSymbol string

// WildcardTop is the stack component of a transition key that matches any
// stack top (including an empty stack). An exact-symbol entry for the same
// (state, symbol) pair always takes precedence.
const WildcardTop StackSymbol = "\x00*"

// Symbol is one input symbol: a byte value 0x00-0xFF, or SymbolEnd.
type Symbol int16

// SymbolEnd is the end-of-input marker. It is an ordinary matchable symbol in
// the alphabet: acceptance is driven by table entries on SymbolEnd, not by a
// special case inside the engine.
const SymbolEnd Symbol = 0x100

// AlphabetSize is the number of distinct input symbols (256 bytes + end).
const AlphabetSize = 257

// String renders a symbol for diagnostics.
func (s Symbol) String() string {
	if s == SymbolEnd {
		return "<end>"
	}
	if s >= 0x20 && s < 0x7f {
		return fmt.Sprintf("%q", byte(s))
	}
	return fmt.Sprintf("0x%02x", int(s))
}

// Movement describes how the input position changes when a transition is
// applied. The position never moves backward.
type Movement int

const (
	// Stay keeps the automaton on the current input symbol.
	Stay Movement = iota
	// Advance moves one symbol to the right.
	Advance
)

// String returns a readable movement name.
func (m Movement) String() string {
	if m == Advance {
		return "advance"
	}
	return "stay"
}

// StackOp describes the stack effect of a transition.
type StackOp int

const (
	// OpNone leaves the stack untouched.
	OpNone StackOp = iota
	// OpPush pushes the action's Push symbol.
	OpPush
	// OpPop removes the top symbol. The table only pairs pops with keys that
	// matched the popped symbol, so a pop on an empty stack is unreachable by
	// disciplined construction; the engine still treats it as a rejection.
	OpPop
)

// String returns a readable op name.
func (o StackOp) String() string {
	switch o {
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	default:
		return "none"
	}
}

// TransitionKey selects a transition: current state, current input symbol
// (or SymbolEnd), and the required stack top (or WildcardTop).
type TransitionKey struct {
	State  State
	Symbol Symbol
	Top    StackSymbol
}

// Action is the effect of a transition: the next state, the input movement,
// and the stack operation. Push is only meaningful when Op is OpPush.
type Action struct {
	Next State
	Move Movement
	Op   StackOp
	Push StackSymbol
}

// Result is the verdict of one run. Accepted runs consumed the whole input
// and returned the stack to its initial marker; rejected runs carry the
// position and state at which no transition matched.
type Result struct {
	Accepted bool
	Position int
	State    State
	Steps    int
}

// String renders the verdict for logs and CLI output.
func (r Result) String() string {
	if r.Accepted {
		return "accept"
	}
	return fmt.Sprintf("reject at %d (state %s)", r.Position, r.State)
}
