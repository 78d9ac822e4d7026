/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: assembler.go
Description: Subsystem composition protocol for the recognizer. Provides the
machinery that encodes nested grammar rules as flat transitions: reified
return continuations pushed on entry and dispatched on exit, stack-symbol
rewrites lowered to pop+push through generated transient states, and the
fold operation that multiplexes popped auxiliary values into state identity.
*/

package compose

import (
	"fmt"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
)

// Action is a reified transition: the exact final move a subsystem performs
// on behalf of its caller when it exits. It is richer than a destination
// state name because several call sites can share a destination yet need
// different final stack effects. The Swap op is a composition-layer
// convenience; the assembler lowers it to pop+push through a transient
// state, so the underlying table only ever carries push, pop and none.
type Action struct {
	Next automaton.State
	Move automaton.Movement
	Op   Op
	Sym  automaton.StackSymbol
}

// Op is the stack effect of a composed Action.
type Op int

const (
	// Read leaves the stack untouched.
	Read Op = iota
	// PushOp pushes Sym.
	PushOp
	// PopOp pops the matched top.
	PopOp
	// SwapOp pops the matched top and pushes Sym in its place.
	SwapOp
)

// To builds a stack-neutral action.
func To(next automaton.State, move automaton.Movement) Action {
	return Action{Next: next, Move: move, Op: Read}
}

// Push builds an action that pushes sym.
func Push(next automaton.State, move automaton.Movement, sym automaton.StackSymbol) Action {
	return Action{Next: next, Move: move, Op: PushOp, Sym: sym}
}

// Pop builds an action that pops the matched top.
func Pop(next automaton.State, move automaton.Movement) Action {
	return Action{Next: next, Move: move, Op: PopOp}
}

// Swap builds an action that replaces the matched top with sym.
func Swap(next automaton.State, move automaton.Movement, sym automaton.StackSymbol) Action {
	return Action{Next: next, Move: move, Op: SwapOp, Sym: sym}
}

// Assembler writes grammar transitions into a table builder, fanning each
// entry over a symbol class and lowering composed actions to the engine's
// three stack operations.
type Assembler struct {
	b *automaton.Builder
}

// NewAssembler wraps a builder.
func NewAssembler(b *automaton.Builder) *Assembler {
	return &Assembler{b: b}
}

// Builder exposes the underlying table builder.
func (a *Assembler) Builder() *automaton.Builder { return a.b }

// Set fans act over every symbol in on, keyed on top (WildcardTop for the
// fallback entry). Conflicting duplicates are construction errors.
func (a *Assembler) Set(from automaton.State, on CharSet, top automaton.StackSymbol, act Action) {
	a.write(from, on, top, act, false)
}

// Over fans act over every symbol in on, replacing existing entries.
// Used where assembly deliberately layers a broad fan first and then
// narrows specific symbols.
func (a *Assembler) Over(from automaton.State, on CharSet, top automaton.StackSymbol, act Action) {
	a.write(from, on, top, act, true)
}

func (a *Assembler) write(from automaton.State, on CharSet, top automaton.StackSymbol, act Action, over bool) {
	lowered, mid := lower(from, top, act)
	for _, sym := range on.Symbols() {
		if over {
			a.b.Override(from, sym, top, lowered)
		} else {
			a.b.Set(from, sym, top, lowered)
		}
		if act.Op == SwapOp {
			// Second half of the rewrite: push the replacement and take the
			// original movement. Always strict; the transient state is ours.
			a.b.Set(mid, sym, automaton.WildcardTop,
				automaton.Action{Next: act.Next, Move: act.Move, Op: automaton.OpPush, Push: act.Sym})
		}
	}
}

// lower converts a composed action to an engine action. Swaps become a pop
// into a generated transient state whose sole job is the matching push.
func lower(from automaton.State, top automaton.StackSymbol, act Action) (automaton.Action, automaton.State) {
	switch act.Op {
	case PushOp:
		return automaton.Action{Next: act.Next, Move: act.Move, Op: automaton.OpPush, Push: act.Sym}, ""
	case PopOp:
		return automaton.Action{Next: act.Next, Move: act.Move, Op: automaton.OpPop}, ""
	case SwapOp:
		mid := swapState(from, top, act)
		return automaton.Action{Next: mid, Move: automaton.Stay, Op: automaton.OpPop}, mid
	default:
		return automaton.Action{Next: act.Next, Move: act.Move, Op: automaton.OpNone}, ""
	}
}

func swapState(from automaton.State, top automaton.StackSymbol, act Action) automaton.State {
	t := string(top)
	if top == automaton.WildcardTop {
		t = "*"
	}
	return automaton.State(fmt.Sprintf("swap__%s__%s__%s__%s__%d", from, t, act.Sym, act.Next, act.Move))
}

// Enter writes a subsystem entry: from every symbol in on, push the
// subsystem's return-continuation symbol and move to its start state without
// consuming input. The continuation symbol reifies which caller entered; the
// subsystem's exits dispatch on it.
func (a *Assembler) Enter(from automaton.State, on CharSet, top automaton.StackSymbol, start automaton.State, cont automaton.StackSymbol) {
	a.Over(from, on, top, Push(start, automaton.Stay, cont))
}

// Exit writes a subsystem exit: when the subsystem's exit state sees the
// given continuation symbol on top, it pops it through the intermediate
// state and performs the caller's reified final action.
func (a *Assembler) Exit(exit automaton.State, on CharSet, cont automaton.StackSymbol, inter automaton.State, final Action) {
	a.Set(exit, on, cont, Pop(inter, automaton.Stay))
	a.Set(inter, on, automaton.WildcardTop, final)
}

// Fold writes one multiplexing step of a multi-value return: pop the
// auxiliary symbol and refine the current state into one that encodes the
// popped value. Chaining folds encodes several simultaneous facts in state
// identity even though the engine inspects only the single top symbol.
func (a *Assembler) Fold(from automaton.State, on CharSet, value automaton.StackSymbol, into automaton.State) {
	a.Set(from, on, value, Pop(into, automaton.Stay))
}
