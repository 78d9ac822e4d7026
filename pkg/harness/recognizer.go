/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: recognizer.go
Description: Oracle implementation of the Recognizer interface. Wraps the
generic automaton stepper with the Lua recognition table, assigns run IDs,
hashes inputs for provenance, and logs every run through the oracle logger.
*/

package harness

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kleascm/akaylee-oracle/pkg/automaton"
	"github.com/kleascm/akaylee-oracle/pkg/interfaces"
	"github.com/kleascm/akaylee-oracle/pkg/logging"
)

// Oracle recognizes inputs against a fixed transition table. It holds no
// per-run state, so a single Oracle serves concurrent callers.
type Oracle struct {
	table   *automaton.Table
	machine *automaton.Machine
	entry   automaton.State
	logger  *logging.Logger
}

// OracleOption configures an Oracle.
type OracleOption func(*Oracle)

// WithEntryState overrides the table's initial state, selecting an alternate
// entry point such as the expression-only grammar.
func WithEntryState(entry automaton.State) OracleOption {
	return func(o *Oracle) { o.entry = entry }
}

// WithMaxSteps caps the number of automaton steps per run.
func WithMaxSteps(n int) OracleOption {
	return func(o *Oracle) { o.machine = automaton.NewMachine(automaton.WithMaxSteps(n)) }
}

// NewOracle creates a recognizer over the given table.
func NewOracle(table *automaton.Table, logger *logging.Logger, opts ...OracleOption) *Oracle {
	o := &Oracle{
		table:   table,
		machine: automaton.NewMachine(),
		entry:   table.InitialState(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Recognize runs one input through the table and returns the full run record.
// The context is checked before the run starts; individual runs are bounded
// by the machine's step cap rather than cancellation.
func (o *Oracle) Recognize(ctx context.Context, input []byte) (interfaces.RunRecord, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.RunRecord{}, err
	}

	record := interfaces.RunRecord{
		ID:        uuid.New().String(),
		InputHash: fmt.Sprintf("%x", sha256.Sum256(input)),
		InputSize: len(input),
		StartedAt: time.Now(),
	}

	result := o.machine.RunFrom(o.table, o.entry, input)

	record.Duration = time.Since(record.StartedAt)
	record.Position = result.Position
	record.State = string(result.State)
	record.Steps = result.Steps
	if result.Accepted {
		record.Verdict = interfaces.VerdictAccept
	} else {
		record.Verdict = interfaces.VerdictReject
	}

	if o.logger != nil {
		o.logger.LogRun(record.ID, result.Accepted, record.Position, record.Steps, record.Duration)
		if !result.Accepted {
			o.logger.LogReject(record.ID, record.State, record.Position, map[string]interface{}{
				"input_hash": record.InputHash,
				"input_size": record.InputSize,
			})
		}
	}

	return record, nil
}
