package tablefsm

import "strconv"

// StateID is the small integer identity declared for a state.
type StateID int

// Signal is what a behavior returns: a table index, or negative to stay.
type Signal = int

// NoTransition is the signal a behavior returns to stay in the current state.
// Any negative signal has the same meaning.
const NoTransition = -1

// Behavior runs while its state is active and returns the table index of the
// next state, or a negative signal for no forced transition.
type Behavior func() Signal

// State is an immutable table entry: identity, diagnostic name and behavior.
// Build states before the FSM that references them and keep them alive for
// as long as that FSM is used.
type State struct {
	id       StateID
	name     string
	behavior Behavior
}

// NewState creates a state. behavior may be nil.
func NewState(id StateID, name string, behavior Behavior) *State {
	return &State{id: id, name: name, behavior: behavior}
}

// ID returns the declared identity. The FSM never reads it; transitions
// address table positions.
func (s *State) ID() StateID {
	return s.id
}

// Name returns the diagnostic name.
func (s *State) Name() string {
	return s.name
}

func (s *State) String() string {
	if s == nil {
		return "<nil>"
	}
	if s.name == "" {
		return "state(" + strconv.Itoa(int(s.id)) + ")"
	}
	return s.name
}

// Execute runs the behavior and returns its signal. A state without a
// behavior returns NoTransition.
func (s *State) Execute() int {
	if s == nil || s.behavior == nil {
		return NoTransition
	}
	return s.behavior()
}
