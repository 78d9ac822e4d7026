/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: machine.go
Description: Generic stepper for the recognizer automaton. Applies exactly one
matching transition per step to a run-local configuration until the input is
accepted or rejected. Carries no grammar knowledge; everything it does is
driven by the read-only transition table.
*/

package automaton

import (
	"github.com/sirupsen/logrus"
)

// Machine executes runs against a table. A Machine holds no per-run state, so
// one instance may serve any number of concurrent runs; each run's
// configuration lives entirely on its own stack frame.
type Machine struct {
	logger   *logrus.Logger
	maxSteps int
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithLogger enables per-step trace logging at debug level.
func WithLogger(logger *logrus.Logger) MachineOption {
	return func(m *Machine) { m.logger = logger }
}

// WithMaxSteps caps the number of steps per run; zero means unlimited.
// Callers that feed untrusted tables can use this as a watchdog.
func WithMaxSteps(n int) MachineOption {
	return func(m *Machine) { m.maxSteps = n }
}

// NewMachine creates a stepper.
func NewMachine(opts ...MachineOption) *Machine {
	m := &Machine{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run executes one recognition run from the table's initial state.
func (m *Machine) Run(table *Table, input []byte) Result {
	return m.RunFrom(table, table.InitialState(), input)
}

// RunFrom executes one recognition run from an explicit entry state. The run
// starts with an empty stack (the initial marker) at position zero and ends
// in Accept or Reject; no partial state survives the call.
//
// One step: read the current symbol (SymbolEnd once the input is exhausted),
// look up the transition for (state, symbol, stack top) with exact-key
// priority over the wildcard entry, and apply it. A missing transition is the
// single rejection mechanism. Acceptance holds when the designated accept
// state is reached with the input consumed and the stack back at its initial
// marker.
func (m *Machine) RunFrom(table *Table, initial State, input []byte) Result {
	state := initial
	pos := 0
	steps := 0
	stack := make([]StackSymbol, 0, 32)

	trace := m.logger != nil && m.logger.IsLevelEnabled(logrus.DebugLevel)

	for {
		if state == table.AcceptState() {
			if pos >= len(input) && len(stack) == 0 {
				return Result{Accepted: true, Position: pos, State: state, Steps: steps}
			}
			return Result{Position: pos, State: state, Steps: steps}
		}
		if state == table.FailState() || pos > len(input) {
			return Result{Position: min(pos, len(input)), State: state, Steps: steps}
		}
		if m.maxSteps > 0 && steps >= m.maxSteps {
			return Result{Position: pos, State: state, Steps: steps}
		}

		sym := SymbolEnd
		if pos < len(input) {
			sym = Symbol(input[pos])
		}

		var top StackSymbol
		hasTop := len(stack) > 0
		if hasTop {
			top = stack[len(stack)-1]
		}

		act, ok := table.Lookup(state, sym, top, hasTop)
		if !ok {
			if trace {
				m.logger.WithFields(logrus.Fields{
					"state":    state,
					"symbol":   sym.String(),
					"position": pos,
					"depth":    len(stack),
				}).Debug("No transition matched")
			}
			return Result{Position: pos, State: state, Steps: steps}
		}

		switch act.Op {
		case OpPush:
			stack = append(stack, act.Push)
		case OpPop:
			if len(stack) == 0 {
				// Unreachable for tables built by the composition layer.
				return Result{Position: pos, State: state, Steps: steps}
			}
			stack = stack[:len(stack)-1]
		}
		if act.Move == Advance {
			pos++
		}
		state = act.Next
		steps++

		if trace {
			m.logger.WithFields(logrus.Fields{
				"state":    state,
				"symbol":   sym.String(),
				"position": pos,
				"depth":    len(stack),
			}).Debug("Step")
		}
	}
}
