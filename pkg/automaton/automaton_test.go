/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: automaton_test.go
Description: Unit tests for the table builder and the run engine. Covers
construction-time validation (duplicate keys, dangling targets, terminal fail
state), exact-over-wildcard lookup priority, and the acceptance conditions.
*/

package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
)

const (
	sStart  automaton.State = "start"
	sMid    automaton.State = "mid"
	sAccept automaton.State = "accepted"
	sFail   automaton.State = "FAIL"
)

func newTestBuilder() *automaton.Builder {
	return automaton.NewBuilder("test", sStart, sAccept, sFail)
}

func advanceTo(next automaton.State) automaton.Action {
	return automaton.Action{Next: next, Move: automaton.Advance}
}

// balancedTable recognizes a^n b^n for n >= 1, using one stack symbol per 'a'.
func balancedTable(t *testing.T) *automaton.Table {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop,
		automaton.Action{Next: sStart, Move: automaton.Advance, Op: automaton.OpPush, Push: "a"})
	b.Set(sStart, automaton.Symbol('b'), "a",
		automaton.Action{Next: sMid, Move: automaton.Advance, Op: automaton.OpPop})
	b.Set(sMid, automaton.Symbol('b'), "a",
		automaton.Action{Next: sMid, Move: automaton.Advance, Op: automaton.OpPop})
	b.Set(sMid, automaton.SymbolEnd, automaton.WildcardTop,
		automaton.Action{Next: sAccept})
	table, err := b.Build()
	require.NoError(t, err)
	return table
}

func TestBuilderRejectsConflictingDuplicate(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sMid))
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sStart))
	b.Set(sMid, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate transition")
}

func TestBuilderToleratesIdenticalDuplicate(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sMid))
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sMid))
	b.Set(sMid, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})

	_, err := b.Build()
	assert.NoError(t, err)
}

func TestBuilderOverrideReplacesEntry(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sStart))
	b.Override(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sMid))
	b.Set(sMid, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})

	table, err := b.Build()
	require.NoError(t, err)

	act, ok := table.Lookup(sStart, automaton.Symbol('a'), "", false)
	require.True(t, ok)
	assert.Equal(t, sMid, act.Next)
}

func TestBuilderRejectsDanglingTarget(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo("nowhere"))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangling target states")
}

func TestBuilderRejectsTransitionOutOfFail(t *testing.T) {
	b := newTestBuilder()
	b.Set(sFail, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sAccept))

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal fail state")
}

func TestBuilderRejectsWildcardPush(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop,
		automaton.Action{Next: sAccept, Move: automaton.Advance, Op: automaton.OpPush, Push: automaton.WildcardTop})

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wildcard sentinel")
}

func TestLookupPrefersExactTopOverWildcard(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, advanceTo(sStart))
	b.Set(sStart, automaton.Symbol('a'), "marker", advanceTo(sMid))
	b.Set(sMid, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})

	table, err := b.Build()
	require.NoError(t, err)

	act, ok := table.Lookup(sStart, automaton.Symbol('a'), "marker", true)
	require.True(t, ok)
	assert.Equal(t, sMid, act.Next)

	act, ok = table.Lookup(sStart, automaton.Symbol('a'), "other", true)
	require.True(t, ok)
	assert.Equal(t, sStart, act.Next)

	// Wildcard also matches an empty stack.
	act, ok = table.Lookup(sStart, automaton.Symbol('a'), "", false)
	require.True(t, ok)
	assert.Equal(t, sStart, act.Next)
}

func TestMachineAcceptsBalancedInput(t *testing.T) {
	table := balancedTable(t)
	machine := automaton.NewMachine()

	for _, input := range []string{"ab", "aabb", "aaaabbbb"} {
		result := machine.Run(table, []byte(input))
		assert.True(t, result.Accepted, "input %q", input)
		assert.Equal(t, len(input), result.Position)
	}
}

func TestMachineRejectsUnbalancedInput(t *testing.T) {
	table := balancedTable(t)
	machine := automaton.NewMachine()

	cases := []struct {
		input    string
		position int
	}{
		{"a", 1},     // end of input with 'a' still on the stack
		{"abb", 2},   // extra 'b' with an empty stack
		{"ba", 0},    // no 'b' entry on an empty stack
		{"aab", 3},   // stack not emptied
		{"abab", 2},  // 'a' after the pop phase began
		{"", 0},      // empty input never reaches mid
	}
	for _, c := range cases {
		result := machine.Run(table, []byte(c.input))
		assert.False(t, result.Accepted, "input %q", c.input)
		assert.Equal(t, c.position, result.Position, "input %q", c.input)
	}
}

func TestMachineAcceptRequiresEmptyStack(t *testing.T) {
	// Reaching the accept state with input left or symbols still stacked is
	// a rejection, not an acceptance.
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop,
		automaton.Action{Next: sAccept, Move: automaton.Advance, Op: automaton.OpPush, Push: "left"})
	table, err := b.Build()
	require.NoError(t, err)

	result := automaton.NewMachine().Run(table, []byte("a"))
	assert.False(t, result.Accepted)
	assert.Equal(t, sAccept, result.State)
}

func TestMachineFailStateIsTerminal(t *testing.T) {
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, automaton.Action{Next: sFail})
	b.Set(sStart, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})
	table, err := b.Build()
	require.NoError(t, err)

	result := automaton.NewMachine().Run(table, []byte("aaa"))
	assert.False(t, result.Accepted)
	assert.Equal(t, sFail, result.State)
	assert.Equal(t, 0, result.Position)
}

func TestMachineMaxStepsBoundsRun(t *testing.T) {
	// A stay-loop on the same symbol never terminates without the cap.
	b := newTestBuilder()
	b.Set(sStart, automaton.Symbol('a'), automaton.WildcardTop, automaton.Action{Next: sStart})
	b.Set(sStart, automaton.SymbolEnd, automaton.WildcardTop, automaton.Action{Next: sAccept})
	table, err := b.Build()
	require.NoError(t, err)

	machine := automaton.NewMachine(automaton.WithMaxSteps(100))
	result := machine.Run(table, []byte("a"))
	assert.False(t, result.Accepted)
	assert.Equal(t, 100, result.Steps)
}

func TestTableStats(t *testing.T) {
	table := balancedTable(t)
	stats := table.Stats()

	assert.Equal(t, "test", stats.Name)
	assert.Equal(t, 3, stats.States) // start, mid, accepted
	assert.Equal(t, 1, stats.StackSymbols)
	assert.Equal(t, 4, stats.Transitions)
	assert.Equal(t, 2, stats.Wildcards)
}
