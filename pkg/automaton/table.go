/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: table.go
Description: Transition table and builder for the recognizer automaton. The
builder assembles transitions with duplicate-key checking and validates the
finished table once (terminal fail state, no dangling targets); the table is
immutable afterwards and offers hashed exact-key lookup with a separate
wildcard index consulted only on exact-key miss.
*/

package automaton

import (
	"errors"
	"fmt"
	"sort"
)

// pairKey indexes wildcard entries by (state, symbol) only.
type pairKey struct {
	State  State
	Symbol Symbol
}

// Builder assembles a transition table. Set rejects conflicting rewrites of
// an existing key; deliberate layering (a broad fan first, then narrower
// overrides) goes through Override. Errors are collected and reported once
// by Build, so table assembly code can stay linear.
type Builder struct {
	name    string
	initial State
	accept  State
	fail    State

	exact     map[TransitionKey]Action
	wildcard  map[pairKey]Action
	errs      []error
	conflicts int
}

// NewBuilder creates a builder for a table with the given designated states.
// The accept and fail states are terminals: they are exempt from the
// dangling-target check and the fail state must have zero outgoing entries.
func NewBuilder(name string, initial, accept, fail State) *Builder {
	return &Builder{
		name:     name,
		initial:  initial,
		accept:   accept,
		fail:     fail,
		exact:    make(map[TransitionKey]Action),
		wildcard: make(map[pairKey]Action),
	}
}

// Set registers one transition. Registering the same key twice with an
// identical action is a no-op; registering it with a different action is a
// construction error reported by Build.
func (b *Builder) Set(state State, sym Symbol, top StackSymbol, act Action) {
	if prev, ok := b.lookupRaw(state, sym, top); ok {
		if prev == act {
			return
		}
		b.conflicts++
		if len(b.errs) < 32 {
			b.errs = append(b.errs, fmt.Errorf(
				"duplicate transition (%s, %s, %s): %+v conflicts with %+v",
				state, sym, topName(top), act, prev))
		}
		return
	}
	b.store(state, sym, top, act)
}

// Override registers one transition, replacing any existing entry for the
// key. Grammar assembly layers broad symbol fans first and then narrows
// specific symbols through Override.
func (b *Builder) Override(state State, sym Symbol, top StackSymbol, act Action) {
	b.store(state, sym, top, act)
}

func (b *Builder) store(state State, sym Symbol, top StackSymbol, act Action) {
	if state == b.fail {
		b.errs = append(b.errs, fmt.Errorf("transition out of terminal fail state %s", state))
		return
	}
	if top == WildcardTop {
		b.wildcard[pairKey{state, sym}] = act
		return
	}
	b.exact[TransitionKey{state, sym, top}] = act
}

func (b *Builder) lookupRaw(state State, sym Symbol, top StackSymbol) (Action, bool) {
	if top == WildcardTop {
		a, ok := b.wildcard[pairKey{state, sym}]
		return a, ok
	}
	a, ok := b.exact[TransitionKey{state, sym, top}]
	return a, ok
}

// Build validates the assembled transitions and freezes them into a Table.
// Validation errors are construction-time failures; they never surface
// during a run.
func (b *Builder) Build() (*Table, error) {
	errs := append([]error(nil), b.errs...)
	if b.conflicts > len(b.errs) {
		errs = append(errs, fmt.Errorf("%d further duplicate-key conflicts suppressed", b.conflicts-len(b.errs)))
	}

	outgoing := make(map[State]int)
	targets := make(map[State]struct{})
	record := func(state State, act Action) {
		outgoing[state]++
		targets[act.Next] = struct{}{}
		if act.Op == OpPush && act.Push == WildcardTop {
			errs = append(errs, fmt.Errorf("state %s pushes the wildcard sentinel", state))
		}
	}
	for k, a := range b.exact {
		record(k.State, a)
	}
	for k, a := range b.wildcard {
		record(k.State, a)
	}

	if n := outgoing[b.fail]; n != 0 {
		errs = append(errs, fmt.Errorf("fail state %s has %d outgoing transitions", b.fail, n))
	}
	var dangling []string
	for t := range targets {
		if t == b.accept || t == b.fail {
			continue
		}
		if outgoing[t] == 0 {
			dangling = append(dangling, string(t))
		}
	}
	if len(dangling) > 0 {
		sort.Strings(dangling)
		errs = append(errs, fmt.Errorf("dangling target states with no outgoing transitions: %v", dangling))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("table %q failed validation: %w", b.name, errors.Join(errs...))
	}

	t := &Table{
		name:     b.name,
		initial:  b.initial,
		accept:   b.accept,
		fail:     b.fail,
		exact:    make(map[TransitionKey]Action, len(b.exact)),
		wildcard: make(map[pairKey]Action, len(b.wildcard)),
	}
	for k, a := range b.exact {
		t.exact[k] = a
	}
	for k, a := range b.wildcard {
		t.wildcard[k] = a
	}
	return t, nil
}

// Table is a validated, read-only transition table. It carries the entire
// grammar; the engine holds no grammar knowledge of its own. Tables are safe
// for concurrent use by any number of runs.
type Table struct {
	name     string
	initial  State
	accept   State
	fail     State
	exact    map[TransitionKey]Action
	wildcard map[pairKey]Action
}

// Name returns the table's display name.
func (t *Table) Name() string { return t.name }

// InitialState returns the designated top-level entry state.
func (t *Table) InitialState() State { return t.initial }

// AcceptState returns the designated accepting state.
func (t *Table) AcceptState() State { return t.accept }

// FailState returns the designated terminal rejection state.
func (t *Table) FailState() State { return t.fail }

// Lookup selects the transition for a configuration. The exact key is
// consulted first when the stack is non-empty; the wildcard index is the
// fallback path.
func (t *Table) Lookup(state State, sym Symbol, top StackSymbol, hasTop bool) (Action, bool) {
	if hasTop {
		if a, ok := t.exact[TransitionKey{state, sym, top}]; ok {
			return a, true
		}
	}
	a, ok := t.wildcard[pairKey{state, sym}]
	return a, ok
}

// Each visits every transition in the table, wildcard entries included
// (reported with WildcardTop as the key's stack component). Used by property
// tests and the stats command; order is unspecified.
func (t *Table) Each(fn func(TransitionKey, Action)) {
	for k, a := range t.exact {
		fn(k, a)
	}
	for k, a := range t.wildcard {
		fn(TransitionKey{k.State, k.Symbol, WildcardTop}, a)
	}
}

// Stats summarizes the table size.
type Stats struct {
	Name         string `json:"name"`
	States       int    `json:"states"`
	StackSymbols int    `json:"stack_symbols"`
	Transitions  int    `json:"transitions"`
	Wildcards    int    `json:"wildcards"`
}

// Stats counts states, stack symbols and transitions in the table.
func (t *Table) Stats() Stats {
	states := make(map[State]struct{})
	symbols := make(map[StackSymbol]struct{})
	t.Each(func(k TransitionKey, a Action) {
		states[k.State] = struct{}{}
		states[a.Next] = struct{}{}
		if k.Top != WildcardTop {
			symbols[k.Top] = struct{}{}
		}
		if a.Op == OpPush {
			symbols[a.Push] = struct{}{}
		}
	})
	return Stats{
		Name:         t.name,
		States:       len(states),
		StackSymbols: len(symbols),
		Transitions:  len(t.exact) + len(t.wildcard),
		Wildcards:    len(t.wildcard),
	}
}

func topName(top StackSymbol) string {
	if top == WildcardTop {
		return "*"
	}
	return string(top)
}
