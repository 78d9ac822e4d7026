/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: harness.go
Description: Conformance harness. Runs case sets and corpus sweeps through a
Recognizer on a bounded worker pool, compares verdicts against expectations,
and produces a report with every mismatch for triage.
*/

package harness

import (
	"context"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/logging"
)

// Harness sweeps conformance cases through a recognizer in parallel. The
// recognizer must be safe for concurrent use.
type Harness struct {
	recognizer interfaces.Recognizer
	logger     *logging.Logger
	workers    int
}

// HarnessOption configures a Harness.
type HarnessOption func(*Harness)

// WithWorkers sets the pool size; zero or negative selects NumCPU.
func WithWorkers(n int) HarnessOption {
	return func(h *Harness) { h.workers = n }
}

// NewHarness creates a conformance harness.
func NewHarness(recognizer interfaces.Recognizer, logger *logging.Logger, opts ...HarnessOption) *Harness {
	h := &Harness{
		recognizer: recognizer,
		logger:     logger,
		workers:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.workers <= 0 {
		h.workers = runtime.NumCPU()
	}
	return h
}

// RunCases sweeps the case set and reports every verdict mismatch. Order of
// mismatches in the report is by case name, independent of scheduling.
func (h *Harness) RunCases(ctx context.Context, cases []interfaces.ConformanceCase) (*interfaces.ConformanceReport, error) {
	start := time.Now()

	results := make([]interfaces.CaseResult, len(cases))
	work := make(chan int)

	var wg sync.WaitGroup
	var firstErr error
	var errMu sync.Mutex

	for i := 0; i < h.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				c := cases[idx]
				run, err := h.recognizer.Recognize(ctx, c.Input)
				if err != nil {
					errMu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					errMu.Unlock()
					run.Verdict = interfaces.VerdictError
				}
				got := run.Verdict == interfaces.VerdictAccept
				results[idx] = interfaces.CaseResult{
					Case:   c,
					Run:    run,
					Passed: err == nil && got == c.Expected,
				}
			}
		}()
	}

feed:
	for idx := range cases {
		select {
		case work <- idx:
		case <-ctx.Done():
			break feed
		}
	}
	close(work)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if firstErr != nil {
		return nil, firstErr
	}

	report := &interfaces.ConformanceReport{
		Total:      len(cases),
		Duration:   time.Since(start),
		FinishedAt: time.Now(),
	}
	for _, r := range results {
		if r.Passed {
			report.Passed++
			continue
		}
		report.Failed++
		report.Mismatches = append(report.Mismatches, r)
		if h.logger != nil {
			got := r.Run.Verdict == interfaces.VerdictAccept
			h.logger.LogVerdictMismatch(r.Case.Name, r.Case.Expected, got, r.Run.Position)
		}
	}
	sort.Slice(report.Mismatches, func(i, j int) bool {
		return report.Mismatches[i].Case.Name < report.Mismatches[j].Case.Name
	})

	if h.logger != nil {
		h.logger.LogConformance(report.Total, report.Passed, report.Failed, report.Duration)
	}
	return report, nil
}

// SweepCorpus fetches every source and runs each input, expecting acceptance.
// Corpus files come from real Lua code, so a rejection is a finding.
func (h *Harness) SweepCorpus(ctx context.Context, sources []interfaces.CorpusSource) (*interfaces.ConformanceReport, error) {
	var cases []interfaces.ConformanceCase
	for _, src := range sources {
		inputs, err := src.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		for _, in := range inputs {
			cases = append(cases, interfaces.ConformanceCase{
				Name:     src.Name() + "/" + in.Name,
				Input:    in.Data,
				Expected: true,
			})
		}
	}
	return h.RunCases(ctx, cases)
}
