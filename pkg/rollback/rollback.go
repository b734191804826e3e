// Package rollback implements a LIFO stack of reversible actions.
//
// Each completed side effect pushes the action that reverses it. On failure
// the owner unwinds the stack, reversing exactly the side effects that
// happened, newest first. On success the stack is discarded unused.
package rollback

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/codeplex/pkg/logging"
	"github.com/rs/zerolog"
)

// Action reverses one completed step
type Action struct {
	Description string
	Undo        func() error
}

// Stack holds pending rollback actions. It is not safe for concurrent use;
// it belongs to a single running transaction.
type Stack struct {
	actions []Action
	logger  zerolog.Logger
}

// NewStack creates an empty Stack
func NewStack() *Stack {
	return &Stack{logger: logging.GetLogger("rollback")}
}

// Push records an action to run on Unwind
func (s *Stack) Push(action Action) {
	s.actions = append(s.actions, action)
	s.logger.Debug().
		Str("action", action.Description).
		Int("depth", len(s.actions)).
		Msg("Rollback action recorded")
}

// Len returns the number of pending actions
func (s *Stack) Len() int {
	return len(s.actions)
}

// Descriptions returns the pending actions in unwind order
func (s *Stack) Descriptions() []string {
	out := make([]string, 0, len(s.actions))
	for i := len(s.actions) - 1; i >= 0; i-- {
		out = append(out, s.actions[i].Description)
	}
	return out
}

// Unwind runs every pending action, last pushed first, and empties the
// stack. A failing action does not stop the others; all failures are
// returned joined.
func (s *Stack) Unwind() error {
	var errs []error
	for len(s.actions) > 0 {
		last := len(s.actions) - 1
		action := s.actions[last]
		s.actions = s.actions[:last]

		s.logger.Info().Str("action", action.Description).Msg("Rolling back")
		if action.Undo == nil {
			continue
		}
		if err := action.Undo(); err != nil {
			s.logger.Error().Err(err).Str("action", action.Description).Msg("Rollback action failed")
			errs = append(errs, fmt.Errorf("%s: %w", action.Description, err))
		}
	}
	return errors.Join(errs...)
}

// Discard drops all pending actions without running them
func (s *Stack) Discard() {
	if len(s.actions) > 0 {
		s.logger.Debug().Int("actions", len(s.actions)).Msg("Rollback stack discarded")
	}
	s.actions = nil
}
