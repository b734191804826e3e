package provision

import (
	"github.com/arthur-debert/codeplex/pkg/errors"
)

// State is the position of a run in the provisioning state machine
type State int

const (
	StateIdle State = iota
	StateResolving
	StateCopying
	StateRewriting
	StateCommitted
	StateRolledBack
)

// String returns the name of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateCopying:
		return "copying"
	case StateRewriting:
		return "rewriting"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

var transitions = map[State][]State{
	StateIdle:      {StateResolving},
	StateResolving: {StateCopying},
	StateCopying:   {StateRewriting, StateRolledBack},
	StateRewriting: {StateCommitted, StateRolledBack},
}

// CanTransition reports whether the state machine allows from -> to
func CanTransition(from, to State) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return errors.Newf(errors.ErrInternal, "invalid state transition %s -> %s", from, to).
			WithDetail("from", from.String()).
			WithDetail("to", to.String())
	}
	return nil
}

// Outcome is how a run ended
type Outcome int

const (
	// OutcomeUnknown is the outcome of a run that has not finished
	OutcomeUnknown Outcome = iota
	// OutcomeCommitted means both trees were copied and the duplicate's
	// profile now points at its own data directory
	OutcomeCommitted
	// OutcomeAborted means the run failed before anything was created
	OutcomeAborted
	// OutcomeRolledBack means the run failed after creating something and
	// the created trees were removed
	OutcomeRolledBack
)

// String returns the name of the outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCommitted:
		return "committed"
	case OutcomeAborted:
		return "aborted"
	case OutcomeRolledBack:
		return "rolled-back"
	default:
		return "unknown"
	}
}
