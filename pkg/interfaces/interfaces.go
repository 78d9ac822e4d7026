/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared types and interfaces for the Akaylee Oracle. Defines the
records exchanged between the recognition engine, the conformance harness and
the CLI, so the packages stay decoupled.
*/

package interfaces

import (
	"context"
	"time"
)

// Verdict is the outcome of running one input through the oracle.
type Verdict string

const (
	VerdictAccept Verdict = "accept"
	VerdictReject Verdict = "reject"
	VerdictError  Verdict = "error" // the run itself failed (step limit, bad table)
)

// RunRecord captures one recognition run end to end.
type RunRecord struct {
	ID        string        `json:"id"`
	Source    string        `json:"source"`
	InputHash string        `json:"input_hash"`
	InputSize int           `json:"input_size"`
	Verdict   Verdict       `json:"verdict"`
	Position  int           `json:"position"`
	State     string        `json:"state"`
	Steps     int           `json:"steps"`
	Duration  time.Duration `json:"duration"`
	StartedAt time.Time     `json:"started_at"`
}

// ConformanceCase is one input with a known expected verdict.
type ConformanceCase struct {
	Name     string `json:"name"`
	Input    []byte `json:"-"`
	Expected bool   `json:"expected"` // true = must accept
}

// CaseResult pairs a conformance case with its actual run.
type CaseResult struct {
	Case   ConformanceCase `json:"case"`
	Run    RunRecord       `json:"run"`
	Passed bool            `json:"passed"`
}

// ConformanceReport summarizes a sweep over a case set.
type ConformanceReport struct {
	Total      int           `json:"total"`
	Passed     int           `json:"passed"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration"`
	Mismatches []CaseResult  `json:"mismatches,omitempty"`
	FinishedAt time.Time     `json:"finished_at"`
}

// CorpusSource provides inputs to sweep. Implementations fetch from a local
// directory, an HTTP index, or anything else that yields source texts.
type CorpusSource interface {
	// Name identifies the source in logs and records.
	Name() string
	// Fetch returns the source inputs, deduplicated by the implementation.
	Fetch(ctx context.Context) ([]CorpusInput, error)
}

// CorpusInput is one fetched input with its provenance.
type CorpusInput struct {
	Name string
	Data []byte
	Hash string
}

// Recognizer runs one input and reports the verdict. The harness depends on
// this instead of the engine so tests can substitute outcomes.
type Recognizer interface {
	Recognize(ctx context.Context, input []byte) (RunRecord, error)
}
