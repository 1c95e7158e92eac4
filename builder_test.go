package tablefsm_test

import (
	"errors"
	"testing"

	. "github.com/comalice/tablefsm"
)

func TestBuilderTrafficLight(t *testing.T) {
	b := NewTableBuilder()

	yellow := b.Declare("yellow")
	red := b.Declare("red")
	green := b.State("green", func() int { return int(yellow) })
	b.State("yellow", func() int { return int(red) })
	b.State("red", func() int { return int(green) })

	states, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(states); err != nil {
		t.Fatalf("built table should validate: %v", err)
	}

	// Declaration order decides positions.
	if states[0].Name() != "yellow" || states[1].Name() != "red" || states[2].Name() != "green" {
		t.Fatalf("unexpected order: %v %v %v", states[0], states[1], states[2])
	}

	m := New(states)
	m.Tick() // starts at yellow
	if m.Current().Name() != "red" {
		t.Errorf("expected red, got %v", m.Current())
	}
	m.Tick()
	if m.Current().Name() != "green" {
		t.Errorf("expected green, got %v", m.Current())
	}
	m.Tick()
	if m.Current().Name() != "yellow" {
		t.Errorf("expected yellow, got %v", m.Current())
	}
}

func TestBuilderLookups(t *testing.T) {
	b := NewTableBuilder()
	a := b.State("a", nil)
	c := b.State("c", nil)

	if id, ok := b.ID("c"); !ok || id != c {
		t.Errorf("expected c=%d, got %d (%v)", c, id, ok)
	}
	if _, ok := b.ID("missing"); ok {
		t.Error("missing name should not resolve")
	}
	if b.Name(a) != "a" {
		t.Errorf("expected a, got %q", b.Name(a))
	}
	if b.Name(42) != "" || b.Name(-1) != "" {
		t.Error("unknown ids should have no name")
	}
	if b.Len() != 2 {
		t.Errorf("expected 2 slots, got %d", b.Len())
	}
}

func TestBuilderRedefineReplacesBehavior(t *testing.T) {
	b := NewTableBuilder()
	first := b.State("s", func() int { return 1 })
	second := b.State("s", func() int { return 2 })

	if first != second {
		t.Fatalf("redefinition moved the state: %d != %d", first, second)
	}
	states, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}
	if got := states[0].Execute(); got != 2 {
		t.Errorf("expected replaced behavior, got signal %d", got)
	}
}

func TestBuilderUndefinedState(t *testing.T) {
	b := NewTableBuilder()
	b.State("a", nil)
	b.Declare("ghost")

	_, err := b.Build()
	if !errors.Is(err, ErrUndefinedState) {
		t.Fatalf("expected ErrUndefinedState, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	ok := []*State{NewState(0, "a", nil), NewState(1, "b", nil)}
	if err := Validate(ok); err != nil {
		t.Errorf("expected valid table, got %v", err)
	}

	if err := Validate(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}

	hole := []*State{NewState(0, "a", nil), nil}
	if err := Validate(hole); !errors.Is(err, ErrHole) {
		t.Errorf("expected ErrHole, got %v", err)
	}

	swapped := []*State{NewState(1, "a", nil), NewState(0, "b", nil)}
	if err := Validate(swapped); !errors.Is(err, ErrIDMismatch) {
		t.Errorf("expected ErrIDMismatch, got %v", err)
	}

	dup := []*State{NewState(0, "a", nil), NewState(1, "a", nil)}
	if err := Validate(dup); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}

	unnamed := []*State{NewState(0, "", nil), NewState(1, "", nil)}
	if err := Validate(unnamed); err != nil {
		t.Errorf("unnamed states should not collide: %v", err)
	}

	// Several problems are reported together.
	bad := []*State{NewState(3, "a", nil), nil, NewState(2, "a", nil)}
	err := Validate(bad)
	for _, want := range []error{ErrIDMismatch, ErrHole, ErrDuplicateName} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}
