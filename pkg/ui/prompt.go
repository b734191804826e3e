package ui

import (
	"github.com/arthur-debert/codeplex/pkg/errors"
	"github.com/pterm/pterm"
)

// Prompter asks the user for input
type Prompter interface {
	Select(msg string, options []string) (string, error)
	Input(msg string) (string, error)
	Confirm(msg string) (bool, error)
}

// PtermPrompter prompts interactively on the terminal
type PtermPrompter struct{}

// NewPterm creates an interactive terminal prompter
func NewPterm() *PtermPrompter {
	return &PtermPrompter{}
}

// Select shows an interactive menu of options
func (PtermPrompter) Select(msg string, options []string) (string, error) {
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show(msg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "selection failed")
	}
	return choice, nil
}

// Input reads a line of text
func (PtermPrompter) Input(msg string) (string, error) {
	text, err := pterm.DefaultInteractiveTextInput.Show(msg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrIO, "input failed")
	}
	return text, nil
}

// Confirm asks a yes/no question defaulting to no
func (PtermPrompter) Confirm(msg string) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.WithDefaultValue(false).Show(msg)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrIO, "confirmation failed")
	}
	return ok, nil
}

// ScriptedPrompter answers prompts from fixed lists, in order. It records
// every message it was asked.
type ScriptedPrompter struct {
	Selections []string
	Inputs     []string
	Confirms   []bool
	Asked      []string
}

// Select returns the next scripted selection
func (s *ScriptedPrompter) Select(msg string, options []string) (string, error) {
	s.Asked = append(s.Asked, msg)
	if len(s.Selections) == 0 {
		return "", errors.New(errors.ErrInternal, "no scripted selection left")
	}
	choice := s.Selections[0]
	s.Selections = s.Selections[1:]
	for _, o := range options {
		if o == choice {
			return choice, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "%q is not an option", choice)
}

// Input returns the next scripted input
func (s *ScriptedPrompter) Input(msg string) (string, error) {
	s.Asked = append(s.Asked, msg)
	if len(s.Inputs) == 0 {
		return "", errors.New(errors.ErrInternal, "no scripted input left")
	}
	text := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return text, nil
}

// Confirm returns the next scripted answer
func (s *ScriptedPrompter) Confirm(msg string) (bool, error) {
	s.Asked = append(s.Asked, msg)
	if len(s.Confirms) == 0 {
		return false, errors.New(errors.ErrInternal, "no scripted confirmation left")
	}
	ok := s.Confirms[0]
	s.Confirms = s.Confirms[1:]
	return ok, nil
}

// SelectInstallRoot picks one of roots: none is an error, one is taken
// without asking, several are offered to the user
func SelectInstallRoot(p Prompter, roots []string) (string, error) {
	switch len(roots) {
	case 0:
		return "", errors.New(errors.ErrNotFound, "no installations found")
	case 1:
		return roots[0], nil
	default:
		return p.Select("Select the installation to duplicate", roots)
	}
}
