package fsmtest

import (
	"testing"

	"github.com/comalice/tablefsm"
)

func TestScriptRepeatsLastSignal(t *testing.T) {
	r := Script(2, 0, 1)
	b := r.Behavior()

	want := []int{2, 0, 1, 1, 1}
	for i, w := range want {
		if got := b(); got != w {
			t.Errorf("call %d: expected %d, got %d", i, w, got)
		}
	}
	if r.Calls() != len(want) {
		t.Errorf("expected %d calls, got %d", len(want), r.Calls())
	}
}

func TestEmptyScriptReturnsNoTransition(t *testing.T) {
	r := Script()
	if got := r.Behavior()(); got != tablefsm.NoTransition {
		t.Errorf("expected NoTransition, got %d", got)
	}
}

func TestTableAssignsPositions(t *testing.T) {
	states := Table(Constant(1), nil, Constant(0))
	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %d", len(states))
	}
	for i, s := range states {
		if s == nil {
			t.Fatalf("state %d is nil", i)
		}
		if int(s.ID()) != i {
			t.Errorf("state %d: expected id %d, got %d", i, i, s.ID())
		}
	}
	if states[1].Name() != "s1" {
		t.Errorf("expected name s1, got %q", states[1].Name())
	}
	if got := states[1].Execute(); got != tablefsm.NoTransition {
		t.Errorf("nil behavior: expected NoTransition, got %d", got)
	}
	if err := tablefsm.Validate(states); err != nil {
		t.Errorf("expected valid table, got %v", err)
	}
}
