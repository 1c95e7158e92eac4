// Package fsmtest provides scripted behaviors and tables for testing code
// built on tablefsm.
package fsmtest

import (
	"strconv"
	"sync"

	"github.com/comalice/tablefsm"
)

// Constant returns a behavior that always returns signal.
func Constant(signal int) tablefsm.Behavior {
	return func() int { return signal }
}

// Recorder is a behavior that replays a fixed list of signals and counts
// how often it ran. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	signals []int
	calls   int
}

// Script creates a Recorder returning signals in order. Once the list is
// exhausted the last signal repeats; an empty script returns NoTransition.
func Script(signals ...int) *Recorder {
	return &Recorder{signals: signals}
}

// Behavior returns the recorder as a tablefsm.Behavior.
func (r *Recorder) Behavior() tablefsm.Behavior {
	return r.next
}

func (r *Recorder) next() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if len(r.signals) == 0 {
		return tablefsm.NoTransition
	}
	i := r.calls - 1
	if i >= len(r.signals) {
		i = len(r.signals) - 1
	}
	return r.signals[i]
}

// Calls returns how many times the behavior ran.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Table builds states named s0..sN with ids equal to their positions. A nil
// behavior yields a state without behavior, not a nil entry.
func Table(behaviors ...tablefsm.Behavior) []*tablefsm.State {
	states := make([]*tablefsm.State, len(behaviors))
	for i, b := range behaviors {
		states[i] = tablefsm.NewState(tablefsm.StateID(i), "s"+strconv.Itoa(i), b)
	}
	return states
}
