package tablefsm

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTable     = errors.New("empty state table")
	ErrHole           = errors.New("nil state in table")
	ErrIDMismatch     = errors.New("state id does not match table position")
	ErrDuplicateName  = errors.New("duplicate state name")
	ErrUndefinedState = errors.New("state declared but never defined")
)

// TableBuilder assembles a state table by name, assigning each state an id
// equal to its table position so that behaviors can return ids directly.
type TableBuilder struct {
	nameToID  map[string]StateID
	names     []string
	behaviors []Behavior
	defined   []bool
}

// NewTableBuilder creates an empty builder.
func NewTableBuilder() *TableBuilder {
	return &TableBuilder{nameToID: make(map[string]StateID)}
}

// Declare reserves a slot for name and returns its id. Use it to capture the
// id of a state that is defined later.
func (b *TableBuilder) Declare(name string) StateID {
	if id, ok := b.nameToID[name]; ok {
		return id
	}
	id := StateID(len(b.names))
	b.nameToID[name] = id
	b.names = append(b.names, name)
	b.behaviors = append(b.behaviors, nil)
	b.defined = append(b.defined, false)
	return id
}

// State defines name with the given behavior and returns its id. Defining a
// name twice replaces the behavior in place.
func (b *TableBuilder) State(name string, behavior Behavior) StateID {
	id := b.Declare(name)
	b.behaviors[id] = behavior
	b.defined[id] = true
	return id
}

// ID returns the id assigned to name.
func (b *TableBuilder) ID(name string) (StateID, bool) {
	id, ok := b.nameToID[name]
	return id, ok
}

// Name returns the name for id, or "" if id was never assigned.
func (b *TableBuilder) Name(id StateID) string {
	if id < 0 || int(id) >= len(b.names) {
		return ""
	}
	return b.names[id]
}

// Len returns the number of slots assigned so far.
func (b *TableBuilder) Len() int {
	return len(b.names)
}

// Build returns a new table in declaration order.
func (b *TableBuilder) Build() ([]*State, error) {
	var errs []error
	for i, ok := range b.defined {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUndefinedState, b.names[i]))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	states := make([]*State, len(b.names))
	for i, name := range b.names {
		states[i] = NewState(StateID(i), name, b.behaviors[i])
	}
	return states, nil
}

// Validate checks that a table follows the conventions the FSM relies on:
// no nil entries, and every state's id equal to its position. Names must be
// unique when set. The FSM itself never validates; call this from setup code
// or tests.
func Validate(states []*State) error {
	if len(states) == 0 {
		return ErrEmptyTable
	}

	var errs []error
	seen := make(map[string]int, len(states))
	for i, s := range states {
		if s == nil {
			errs = append(errs, fmt.Errorf("%w: index %d", ErrHole, i))
			continue
		}
		if int(s.ID()) != i {
			errs = append(errs, fmt.Errorf("%w: %s has id %d at index %d", ErrIDMismatch, s, s.ID(), i))
		}
		if s.Name() == "" {
			continue
		}
		if prev, ok := seen[s.Name()]; ok {
			errs = append(errs, fmt.Errorf("%w: %q at index %d and %d", ErrDuplicateName, s.Name(), prev, i))
			continue
		}
		seen[s.Name()] = i
	}
	return errors.Join(errs...)
}
