/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: harness_test.go
Description: Tests for the conformance harness and corpus sources. Uses a
stub recognizer for sweep mechanics, a temporary directory for the local
source, and an httptest server with a real HTML index page for the scraper.
*/

package harness_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-oracle/pkg/harness"
	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/lua"
)

// prefixRecognizer accepts any input starting with "ok". It stands in for
// the engine so harness mechanics are tested in isolation.
type prefixRecognizer struct{}

func (prefixRecognizer) Recognize(ctx context.Context, input []byte) (interfaces.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.RunRecord{}, err
	}
	record := interfaces.RunRecord{
		ID:        fmt.Sprintf("run-%x", input),
		InputSize: len(input),
		Verdict:   interfaces.VerdictReject,
		StartedAt: time.Now(),
	}
	if strings.HasPrefix(string(input), "ok") {
		record.Verdict = interfaces.VerdictAccept
	}
	return record, nil
}

func TestHarnessRunCases(t *testing.T) {
	h := harness.NewHarness(prefixRecognizer{}, nil, harness.WithWorkers(4))

	cases := []interfaces.ConformanceCase{
		{Name: "a", Input: []byte("ok one"), Expected: true},
		{Name: "b", Input: []byte("nope"), Expected: false},
		{Name: "c", Input: []byte("nope"), Expected: true},    // mismatch
		{Name: "d", Input: []byte("ok two"), Expected: false}, // mismatch
	}

	report, err := h.RunCases(context.Background(), cases)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Passed)
	assert.Equal(t, 2, report.Failed)
	require.Len(t, report.Mismatches, 2)
	// Mismatches come back sorted by case name regardless of scheduling.
	assert.Equal(t, "c", report.Mismatches[0].Case.Name)
	assert.Equal(t, "d", report.Mismatches[1].Case.Name)
}

func TestHarnessRespectsCancellation(t *testing.T) {
	h := harness.NewHarness(prefixRecognizer{}, nil, harness.WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cases := []interfaces.ConformanceCase{{Name: "a", Input: []byte("ok"), Expected: true}}
	_, err := h.RunCases(ctx, cases)
	assert.Error(t, err)
}

func TestDirSourceFetchesAndDeduplicates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.lua"), []byte("return 1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.lua"), []byte("return 2"), 0644))
	// Same content as a.lua, deduplicated by hash.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "copy.lua"), []byte("return 1"), 0644))
	// Wrong extension, filtered by the pattern.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	src := harness.NewDirSource(dir, "*.lua", nil)
	inputs, err := src.Fetch(context.Background())
	require.NoError(t, err)

	assert.Len(t, inputs, 2)
	for _, in := range inputs {
		assert.NotEmpty(t, in.Hash)
		assert.NotEmpty(t, in.Data)
	}
}

func TestIndexSourceScrapesLinks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/files/first.lua">first</a>
			<a href="/files/readme.html">readme</a>
			<a href="/files/second.lua">second</a>
		</body></html>`)
	})
	mux.HandleFunc("/files/first.lua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "return 1")
	})
	mux.HandleFunc("/files/second.lua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "return 2")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	src := harness.NewIndexSource(server.URL, ".lua", 5*time.Second, nil)
	inputs, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, inputs, 2)
	assert.True(t, strings.HasSuffix(inputs[0].Name, "first.lua"))
	assert.Equal(t, "return 1", string(inputs[0].Data))
	assert.True(t, strings.HasSuffix(inputs[1].Name, "second.lua"))

	// A second fetch yields nothing new: everything deduplicates.
	again, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestOracleRecognizesThroughTable(t *testing.T) {
	table, err := lua.Grammar()
	require.NoError(t, err)
	oracle := harness.NewOracle(table, nil)

	record, err := oracle.Recognize(context.Background(), []byte("return 1"))
	require.NoError(t, err)
	assert.Equal(t, interfaces.VerdictAccept, record.Verdict)
	assert.NotEmpty(t, record.ID)
	assert.Len(t, record.InputHash, 64)
	assert.Equal(t, 8, record.InputSize)

	record, err = oracle.Recognize(context.Background(), []byte("return ="))
	require.NoError(t, err)
	assert.Equal(t, interfaces.VerdictReject, record.Verdict)
	assert.Equal(t, 7, record.Position)
	assert.NotEmpty(t, record.State)
}

func TestOracleExpressionEntry(t *testing.T) {
	table, err := lua.Grammar()
	require.NoError(t, err)
	oracle := harness.NewOracle(table, nil, harness.WithEntryState(lua.ExpressionEntry()))

	record, err := oracle.Recognize(context.Background(), []byte("a + b"))
	require.NoError(t, err)
	assert.Equal(t, interfaces.VerdictAccept, record.Verdict)

	record, err = oracle.Recognize(context.Background(), []byte("return 1"))
	require.NoError(t, err)
	assert.Equal(t, interfaces.VerdictReject, record.Verdict)
}

func TestSweepCorpusExpectsAcceptance(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.lua"), []byte("return 1"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("return ="), 0644))

	table, err := lua.Grammar()
	require.NoError(t, err)
	oracle := harness.NewOracle(table, nil)
	h := harness.NewHarness(oracle, nil, harness.WithWorkers(2))

	report, err := h.SweepCorpus(context.Background(),
		[]interfaces.CorpusSource{harness.NewDirSource(dir, "*.lua", nil)})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Mismatches, 1)
	assert.True(t, strings.HasSuffix(report.Mismatches[0].Case.Name, "bad.lua"))
}
