/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: grammar_test.go
Description: Recognition tests for the Lua grammar table. Covers chunk and
expression entry points: statements, literals, comments, the bounded long
brackets, keyword/name boundaries, and the rejection positions that make the
oracle usable for triage.
*/

package lua_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/lua"
	"github.com/kleascm/akaylee-oracle/pkg/utils"
)

// --- Juicy metrics registry ---

type TestResult struct {
	Name       string  `json:"name"`
	Passed     bool    `json:"passed"`
	Error      string  `json:"error,omitempty"`
	DurationMs float64 `json:"duration_ms"`
}

var (
	testResults []TestResult
	suiteStart  time.Time
	suiteEnd    time.Time
)

func recordTestResult(name string, passed bool, errMsg string, duration time.Duration) {
	testResults = append(testResults, TestResult{
		Name:       name,
		Passed:     passed,
		Error:      errMsg,
		DurationMs: float64(duration.Microseconds()) / 1000.0,
	})
}

func runTest(t *testing.T, name string, testFunc func(t *testing.T)) {
	start := time.Now()
	var errMsg string
	passed := true
	defer func() {
		if r := recover(); r != nil {
			errMsg = fmt.Sprintf("panic: %v", r)
			passed = false
		}
		dur := time.Since(start)
		recordTestResult(name, passed && !t.Failed(), errMsg, dur)
	}()
	testFunc(t)
	if t.Failed() {
		passed = false
	}
}

// --- Recognition helpers ---

func chunkTable(t *testing.T) *automaton.Table {
	table, err := lua.Grammar()
	require.NoError(t, err)
	return table
}

func accepts(t *testing.T, src string) {
	t.Helper()
	table := chunkTable(t)
	result := automaton.NewMachine().Run(table, []byte(src))
	assert.True(t, result.Accepted,
		"expected accept for %q, rejected at %d (state %s)", src, result.Position, result.State)
}

func rejects(t *testing.T, src string) {
	t.Helper()
	table := chunkTable(t)
	result := automaton.NewMachine().Run(table, []byte(src))
	assert.False(t, result.Accepted, "expected reject for %q", src)
}

func rejectsAt(t *testing.T, src string, position int) {
	t.Helper()
	table := chunkTable(t)
	result := automaton.NewMachine().Run(table, []byte(src))
	require.False(t, result.Accepted, "expected reject for %q", src)
	assert.Equal(t, position, result.Position, "rejection position for %q (state %s)", src, result.State)
}

func exprAccepts(t *testing.T, src string) {
	t.Helper()
	table := chunkTable(t)
	result := automaton.NewMachine().RunFrom(table, lua.ExpressionEntry(), []byte(src))
	assert.True(t, result.Accepted,
		"expected expression accept for %q, rejected at %d (state %s)", src, result.Position, result.State)
}

func exprRejects(t *testing.T, src string) {
	t.Helper()
	table := chunkTable(t)
	result := automaton.NewMachine().RunFrom(table, lua.ExpressionEntry(), []byte(src))
	assert.False(t, result.Accepted, "expected expression reject for %q", src)
}

// --- Tests ---

func TestGrammarBuilds(t *testing.T) {
	runTest(t, "TestGrammarBuilds", func(t *testing.T) {
		table, err := lua.Grammar()
		require.NoError(t, err)
		require.NotNil(t, table)

		stats := table.Stats()
		assert.Greater(t, stats.States, 100)
		assert.Greater(t, stats.Transitions, 1000)
	})
}

func TestEmptyChunk(t *testing.T) {
	runTest(t, "TestEmptyChunk", func(t *testing.T) {
		accepts(t, "")
		accepts(t, "   \n\t  ")
		accepts(t, ";")
		accepts(t, ";;")
	})
}

func TestShebangLine(t *testing.T) {
	runTest(t, "TestShebangLine", func(t *testing.T) {
		accepts(t, "#!/usr/bin/lua\nreturn")
		accepts(t, "#!/usr/bin/env lua\nx = 1")
		// The shebang only counts on the very first byte.
		rejects(t, " #!/usr/bin/lua\nreturn")
	})
}

func TestReturnStatement(t *testing.T) {
	runTest(t, "TestReturnStatement", func(t *testing.T) {
		accepts(t, "return")
		accepts(t, "return;")
		accepts(t, "return 1")
		accepts(t, "return a, b")
		accepts(t, "return f()")
		accepts(t, "return a, b;")
		// return must be the last statement of its block.
		rejects(t, "return x = 1")
	})
}

func TestAssignments(t *testing.T) {
	runTest(t, "TestAssignments", func(t *testing.T) {
		accepts(t, "x = 1")
		accepts(t, "x, y = 1, 2")
		accepts(t, "t.x = 1")
		accepts(t, "t[1] = v")
		accepts(t, "a.b.c = f(x)")
		rejects(t, "x = ")
		rejects(t, "x =")
		rejects(t, "= 1")
	})
}

func TestLocalStatements(t *testing.T) {
	runTest(t, "TestLocalStatements", func(t *testing.T) {
		accepts(t, "local x")
		accepts(t, "local x = 1")
		accepts(t, "local x, y = 1, 2")
		accepts(t, "local function f() end")
		rejects(t, "local = 1")
		rejects(t, "local")
	})
}

func TestKeywordNameBoundary(t *testing.T) {
	runTest(t, "TestKeywordNameBoundary", func(t *testing.T) {
		// A reserved word with a word byte appended is a plain name.
		rejects(t, "and = 1")
		accepts(t, "and1 = 1")
		rejects(t, "while = 1")
		accepts(t, "while1 = 1")
		accepts(t, "iff = 1")
		accepts(t, "ending = 2")
	})
}

func TestFunctionCalls(t *testing.T) {
	runTest(t, "TestFunctionCalls", func(t *testing.T) {
		accepts(t, "f()")
		accepts(t, "f(1)")
		accepts(t, "f(1, 2)")
		accepts(t, "f(g(x))")
		accepts(t, "o:m()")
		accepts(t, "a.b.c()")
		accepts(t, "t[1]()")
		accepts(t, `f "str"`)
		accepts(t, "f 'str'")
		accepts(t, "f {1, 2}")
		accepts(t, "f [[chunk]]")
		accepts(t, "(f)()")
		rejects(t, "f(")
		// A bare value chain that is not a call is not a statement.
		rejects(t, "f")
		rejects(t, "t.x")
	})
}

func TestBlocks(t *testing.T) {
	runTest(t, "TestBlocks", func(t *testing.T) {
		accepts(t, "do end")
		accepts(t, "do x = 1 end")
		accepts(t, "do do end end")
		rejects(t, "do")
		rejects(t, "end")
		rejects(t, "do end end")
	})
}

func TestIfStatement(t *testing.T) {
	runTest(t, "TestIfStatement", func(t *testing.T) {
		accepts(t, "if a then end")
		accepts(t, "if a then b() end")
		accepts(t, "if a then else end")
		accepts(t, "if a then elseif b then end")
		accepts(t, "if a then elseif b then else end")
		accepts(t, "if a then return end")
		rejects(t, "if a end")
		rejects(t, "if then end")
		// else outside an if has no marker to pop.
		rejects(t, "else end")
	})
}

func TestLoops(t *testing.T) {
	runTest(t, "TestLoops", func(t *testing.T) {
		accepts(t, "while true do end")
		accepts(t, "while a do b() end")
		accepts(t, "while true do break end")
		accepts(t, "repeat until a")
		accepts(t, "repeat x = 1 until x")
		accepts(t, "for i = 1, 10 do end")
		accepts(t, "for i = 1, 10, 2 do end")
		accepts(t, "for k, v in pairs(t) do end")
		accepts(t, "for k in next, t do end")
		rejects(t, "while do end")
		rejects(t, "for i do end")
		rejects(t, "until a")
	})
}

func TestGotoAndLabels(t *testing.T) {
	runTest(t, "TestGotoAndLabels", func(t *testing.T) {
		accepts(t, "::done::")
		accepts(t, "goto done")
		accepts(t, "::top:: goto top")
		rejects(t, "::done:")
		rejects(t, "goto")
	})
}

func TestFunctionDefinitions(t *testing.T) {
	runTest(t, "TestFunctionDefinitions", func(t *testing.T) {
		accepts(t, "function f() end")
		accepts(t, "function f(a, b) end")
		accepts(t, "function f(...) end")
		accepts(t, "function f(a, ...) end")
		accepts(t, "function f.g() end")
		accepts(t, "function f.g:h() end")
		accepts(t, "function f() return end")
		accepts(t, "function f() return 1 end")
		accepts(t, "x = function() return end")
		accepts(t, "f = function(...) return ... end")
		accepts(t, "function f() if x then return 1 end end")
		rejects(t, "function () end")
		rejects(t, "function f(a,) end")
		rejects(t, "function f() ")
	})
}

func TestComments(t *testing.T) {
	runTest(t, "TestComments", func(t *testing.T) {
		accepts(t, "-- nothing but a comment")
		accepts(t, "a = 1 -- note\nreturn a")
		accepts(t, "--[[ multi\nline ]] return")
		accepts(t, "--[==[ nested ]=] still inside ]==] x = 1")
		accepts(t, "--[[comment]] --[[another]]")
		// An unclosed long comment opener degrades to a single-line comment.
		accepts(t, "--[== not an opener\nx = 1")
	})
}

func TestOperatorCommentDisambiguation(t *testing.T) {
	runTest(t, "TestOperatorCommentDisambiguation", func(t *testing.T) {
		// "- -" is a binary minus followed by a unary minus; "--" opens a
		// comment that swallows the rest of the line.
		accepts(t, "x = a- -b")
		accepts(t, "x = a - -b")
		accepts(t, "x = a--b")
		accepts(t, "x = a--b\nreturn x")
		// The dangling minus never finds its operand: the next word is a
		// reserved word.
		rejects(t, "a = 1 - \nreturn a")
	})
}

func TestShortStrings(t *testing.T) {
	runTest(t, "TestShortStrings", func(t *testing.T) {
		accepts(t, `s = "hello"`)
		accepts(t, `s = 'hello'`)
		accepts(t, `s = ""`)
		accepts(t, `s = "a\tb\n"`)
		accepts(t, `s = 'it\'s'`)
		accepts(t, `s = "quote \" inside"`)
		accepts(t, `s = "\65\66\67"`)
		accepts(t, `s = "\x41\xff"`)
		accepts(t, `s = "\u{41}"`)
		accepts(t, `s = "\u{1F600}"`)
		// Zero code point, with any number of leading zeros.
		accepts(t, `s = "\u{0}"`)
		accepts(t, `s = "\u{00}"`)
		accepts(t, `s = "\u{000041}"`)
		rejects(t, `s = "\u{}"`)
		accepts(t, "s = \"a\\z  \n  b\"")
		rejects(t, `s = "unterminated`)
		rejects(t, "s = \"raw\nnewline\"")
		rejects(t, `s = "\q"`)
	})
}

func TestDecimalEscapeBoundary(t *testing.T) {
	runTest(t, "TestDecimalEscapeBoundary", func(t *testing.T) {
		// Decimal escapes cap at 255.
		accepts(t, `s = "\255"`)
		accepts(t, `s = "\249"`)
		accepts(t, `s = "\25x"`)
		rejects(t, `s = "\256"`)
		rejects(t, `s = "\300"`)
	})
}

func TestLongBracketRoundTrip(t *testing.T) {
	runTest(t, "TestLongBracketRoundTrip", func(t *testing.T) {
		for n := 0; n <= 10; n++ {
			eq := ""
			for i := 0; i < n; i++ {
				eq += "="
			}
			src := "s = [" + eq + "[ body ]" + eq + "]"
			accepts(t, src)
		}
	})
}

func TestLongBracketMismatch(t *testing.T) {
	runTest(t, "TestLongBracketMismatch", func(t *testing.T) {
		// A shallower closer is content, so the string never terminates.
		rejects(t, "s = [==[ body ]=]")
		// A deeper closer candidate is also content.
		rejects(t, "s = [=[ body ]==]")
		// But the matching closer later still works.
		accepts(t, "s = [=[ body ]==] ]=]")
		// Openers beyond ten levels are rejected outright.
		rejects(t, "s = [===========[ body ]===========]")
		// An eleventh '=' in a closer candidate at the bound is content.
		rejects(t, "s = [==========[ body ]===========]")
	})
}

func TestLongStringContent(t *testing.T) {
	runTest(t, "TestLongStringContent", func(t *testing.T) {
		accepts(t, "s = [[]]")
		accepts(t, "s = [[with \n newline and \" quote]]")
		accepts(t, "s = [[nested ]= not a closer]]")
		accepts(t, "x = [[a]] .. [[b]]")
	})
}

func TestNumerals(t *testing.T) {
	runTest(t, "TestNumerals", func(t *testing.T) {
		accepts(t, "x = 0")
		accepts(t, "x = 42")
		accepts(t, "x = 0x1F")
		accepts(t, "x = 0XAB")
		accepts(t, "x = 3.14")
		accepts(t, "x = .5")
		accepts(t, "x = 1e10")
		accepts(t, "x = 1.5e-3")
		accepts(t, "x = 1E+2")
		accepts(t, "x = 0x1p4")
		accepts(t, "x = 0xA.8p-2")
		rejects(t, "x = 1f")
		rejects(t, "x = 0x")
		rejects(t, "x = 1e")
		rejects(t, "x = 1..2")
	})
}

func TestTableConstructors(t *testing.T) {
	runTest(t, "TestTableConstructors", func(t *testing.T) {
		accepts(t, "t = {}")
		accepts(t, "t = {1, 2, 3}")
		accepts(t, "t = {1, 2; 3}")
		accepts(t, "t = {1, 2,}")
		accepts(t, "t = {a = 1}")
		accepts(t, "t = {a = 1, b = 2}")
		accepts(t, "t = {[k] = v}")
		accepts(t, `t = {["key"] = 1}`)
		accepts(t, "t = {f(x)}")
		accepts(t, "t = {nested = {1, {2}}}")
		accepts(t, "t = {[ [[k]] ] = 1}")
		rejects(t, "t = {")
		rejects(t, "t = {a = }")
		rejects(t, "t = {,}")
	})
}

func TestExpressions(t *testing.T) {
	runTest(t, "TestExpressions", func(t *testing.T) {
		accepts(t, "x = a + b * c")
		accepts(t, "x = (a + b) * c")
		accepts(t, "x = a .. b")
		accepts(t, "x = a // b")
		accepts(t, "x = a >> 2")
		accepts(t, "x = a << 2")
		accepts(t, "x = a ~= b")
		accepts(t, "x = a == b")
		accepts(t, "x = a <= b and b >= c")
		accepts(t, "x = a or b")
		accepts(t, "x = not a")
		accepts(t, "x = -a")
		accepts(t, "x = #t")
		accepts(t, "x = ~a")
		accepts(t, "x = nil")
		accepts(t, "x = true")
		accepts(t, "x = false")
		accepts(t, "x = a.b[c].d:m(1)")
		rejects(t, "x = a +")
		rejects(t, "x = a * * b")
		rejects(t, "x = ..")
	})
}

func TestExpressionEntryPoint(t *testing.T) {
	runTest(t, "TestExpressionEntryPoint", func(t *testing.T) {
		exprAccepts(t, "a")
		exprAccepts(t, "a + b")
		exprAccepts(t, "f(x) + 1")
		exprAccepts(t, "a- -b")
		exprAccepts(t, "a--b")
		exprAccepts(t, "a--b\n")
		exprAccepts(t, `"literal"`)
		exprAccepts(t, "{1, 2}")
		exprAccepts(t, "function() end")
		exprRejects(t, "a +")
		exprRejects(t, "x = 1")
		exprRejects(t, "return")
	})
}

func TestMultipleStatements(t *testing.T) {
	runTest(t, "TestMultipleStatements", func(t *testing.T) {
		accepts(t, "a = 1 -- note\nreturn a")
		accepts(t, "local x = 1\nlocal y = 2\nreturn x + y")
		accepts(t, "x = 1 y = 2")
		accepts(t, "f() g() h()")
		accepts(t, `
local function fib(n)
	if n < 2 then return n end
	return fib(n - 1) + fib(n - 2)
end
return fib(10)
`)
	})
}

func TestRejectionPositions(t *testing.T) {
	runTest(t, "TestRejectionPositions", func(t *testing.T) {
		// The position pins the first byte that could not extend any parse.
		rejectsAt(t, "x = @", 4)
		rejectsAt(t, "@", 0)
	})
}

func TestDeterministicVerdicts(t *testing.T) {
	runTest(t, "TestDeterministicVerdicts", func(t *testing.T) {
		table := chunkTable(t)
		machine := automaton.NewMachine()
		input := []byte("local x = 1 -- note\nreturn x")

		first := machine.Run(table, input)
		for i := 0; i < 5; i++ {
			again := machine.Run(table, input)
			assert.Equal(t, first, again)
		}
	})
}

// TestMain collects per-test metrics and writes them through the shared
// report writer.
func TestMain(m *testing.M) {
	suiteStart = time.Now()
	code := m.Run()
	suiteEnd = time.Now()

	total := len(testResults)
	passed := 0
	failed := 0
	for _, r := range testResults {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	summary := map[string]interface{}{
		"timestamp":        suiteStart.Format("2006-01-02 15:04:05"),
		"version":          "1.0.0",
		"total_tests":      total,
		"passed":           passed,
		"failed":           failed,
		"start_time":       suiteStart.Format(time.RFC3339),
		"end_time":         suiteEnd.Format(time.RFC3339),
		"duration_seconds": suiteEnd.Sub(suiteStart).Seconds(),
		"tests":            testResults,
	}

	path, err := utils.WriteReport("lua_grammar", "1.0.0", summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write metrics: %v\n", err)
	} else {
		fmt.Printf("[DEBUG] Metrics written to: %s\n", path)
	}

	os.Exit(code)
}
