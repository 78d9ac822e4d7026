/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compose_test.go
Description: Unit tests for the composition layer. Covers symbol class
algebra, swap lowering through transient states, and the entry/exit/fold
subsystem protocol primitives.
*/

package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/compose"
)

func TestCharSetBytesAndContains(t *testing.T) {
	c := compose.Bytes("abc")
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.Contains(automaton.Symbol('a')))
	assert.False(t, c.Contains(automaton.Symbol('d')))
	assert.False(t, c.Contains(automaton.SymbolEnd))

	// Duplicate bytes collapse.
	assert.Equal(t, 1, compose.Bytes("aaa").Len())
}

func TestCharSetAlgebra(t *testing.T) {
	u := compose.Bytes("ab").Union(compose.Bytes("bc"))
	assert.Equal(t, 3, u.Len())

	w := u.Without(compose.Bytes("b"))
	assert.Equal(t, 2, w.Len())
	assert.False(t, w.Contains(automaton.Symbol('b')))

	we := compose.Bytes("a").WithEnd()
	assert.True(t, we.Contains(automaton.SymbolEnd))
	assert.Equal(t, 2, we.Len())
}

func TestComplementsIncludeEndMarker(t *testing.T) {
	// Full-alphabet complements carry the end marker so exit fans fire at
	// end-of-input; byte-only sets never do.
	n := compose.NotBytes("x")
	assert.True(t, n.Contains(automaton.SymbolEnd))
	assert.False(t, n.Contains(automaton.Symbol('x')))
	assert.Equal(t, automaton.AlphabetSize-1, n.Len())

	assert.Equal(t, automaton.AlphabetSize, compose.Any.Len())
	assert.Equal(t, 256, compose.AnyByte.Len())
	assert.False(t, compose.AnyByte.Contains(automaton.SymbolEnd))
	assert.Equal(t, 1, compose.End.Len())
}

func TestCharacterClasses(t *testing.T) {
	assert.True(t, compose.Alpha.Contains(automaton.Symbol('_')))
	assert.False(t, compose.Alpha.Contains(automaton.Symbol('0')))
	assert.True(t, compose.Alnum.Contains(automaton.Symbol('0')))
	assert.True(t, compose.Hex.Contains(automaton.Symbol('F')))
	assert.False(t, compose.Hex.Contains(automaton.Symbol('g')))
	assert.True(t, compose.NotAlnum.Contains(automaton.SymbolEnd))
}

func TestSymbolsAscending(t *testing.T) {
	syms := compose.Bytes("cba").Symbols()
	require.Len(t, syms, 3)
	assert.Equal(t, automaton.Symbol('a'), syms[0])
	assert.Equal(t, automaton.Symbol('c'), syms[2])
}

// runTable assembles a table via fn and runs input through it.
func runTable(t *testing.T, fn func(a *compose.Assembler), input string) automaton.Result {
	b := automaton.NewBuilder("compose-test", "start", "accepted", "FAIL")
	fn(compose.NewAssembler(b))
	table, err := b.Build()
	require.NoError(t, err)
	return automaton.NewMachine().Run(table, []byte(input))
}

func TestSwapLowering(t *testing.T) {
	// Push "one" on 'a', swap it to "two" on 'b', pop "two" on 'c', accept at
	// end. The swap must consume exactly one input symbol and leave a
	// single-symbol stack.
	result := runTable(t, func(a *compose.Assembler) {
		a.Set("start", compose.Bytes("a"), automaton.WildcardTop,
			compose.Push("start", automaton.Advance, "one"))
		a.Set("start", compose.Bytes("b"), "one",
			compose.Swap("start", automaton.Advance, "two"))
		a.Set("start", compose.Bytes("c"), "two",
			compose.Pop("start", automaton.Advance))
		a.Set("start", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
	}, "abc")
	assert.True(t, result.Accepted)

	// The swap is keyed on the matched top: with "one" replaced, a second
	// 'b' finds no transition.
	result = runTable(t, func(a *compose.Assembler) {
		a.Set("start", compose.Bytes("a"), automaton.WildcardTop,
			compose.Push("start", automaton.Advance, "one"))
		a.Set("start", compose.Bytes("b"), "one",
			compose.Swap("start", automaton.Advance, "two"))
		a.Set("start", compose.Bytes("c"), "two",
			compose.Pop("start", automaton.Advance))
		a.Set("start", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
	}, "abbc")
	assert.False(t, result.Accepted)
	assert.Equal(t, 2, result.Position)
}

func TestOverReplacesFanEntries(t *testing.T) {
	// A broad fan first, then a narrowed override for one symbol.
	result := runTable(t, func(a *compose.Assembler) {
		a.Over("start", compose.AnyByte, automaton.WildcardTop,
			compose.To("FAIL", automaton.Stay))
		a.Over("start", compose.Bytes("x"), automaton.WildcardTop,
			compose.To("start", automaton.Advance))
		a.Over("start", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
	}, "xxx")
	assert.True(t, result.Accepted)

	result = runTable(t, func(a *compose.Assembler) {
		a.Over("start", compose.AnyByte, automaton.WildcardTop,
			compose.To("FAIL", automaton.Stay))
		a.Over("start", compose.Bytes("x"), automaton.WildcardTop,
			compose.To("start", automaton.Advance))
		a.Over("start", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
	}, "xyx")
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.Position)
}

func TestEnterExitProtocol(t *testing.T) {
	// A subsystem that consumes one 'z' and exits by dispatching on the
	// pushed continuation symbol.
	wire := func(a *compose.Assembler) {
		a.Enter("start", compose.Bytes("z"), automaton.WildcardTop, "sub", "ret__start")
		a.Set("sub", compose.Bytes("z"), automaton.WildcardTop,
			compose.To("sub_exit", automaton.Advance))
		a.Exit("sub_exit", compose.Any, "ret__start", "sub_exit__start",
			compose.To("after", automaton.Stay))
		a.Set("after", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
	}

	result := runTable(t, wire, "z")
	assert.True(t, result.Accepted)

	// The exit popped the continuation, so the stack balances.
	result = runTable(t, wire, "zz")
	assert.False(t, result.Accepted)
	assert.Equal(t, 1, result.Position)
}

func TestFoldPopsValueIntoState(t *testing.T) {
	// The subsystem pushes an auxiliary value; the caller folds it into
	// state identity and accepts only the "yes" refinement.
	result := runTable(t, func(a *compose.Assembler) {
		a.Set("start", compose.Bytes("y"), automaton.WildcardTop,
			compose.Push("joined", automaton.Advance, "yes"))
		a.Set("start", compose.Bytes("n"), automaton.WildcardTop,
			compose.Push("joined", automaton.Advance, "no"))
		a.Fold("joined", compose.Any, "yes", "joined_yes")
		a.Fold("joined", compose.Any, "no", "joined_no")
		a.Set("joined_yes", compose.End, automaton.WildcardTop,
			compose.To("accepted", automaton.Stay))
		a.Set("joined_no", compose.Any, automaton.WildcardTop,
			compose.To("FAIL", automaton.Stay))
	}, "y")
	assert.True(t, result.Accepted)
}
