// Package tablefsm provides an execute-driven finite state machine over a
// fixed, caller-owned table of states.
//
// Each call to Tick runs the active state's behavior. The integer the
// behavior returns is read as a table index: the FSM moves there when the
// index is in range, differs from the current index and names a non-nil
// entry. Every other signal leaves the FSM where it is.
//
// Transitions address table positions, not the ids declared on states. Keep
// each state's id equal to its position (TableBuilder does this) or a
// behavior returning an id will land on the wrong state. Validate reports
// tables that break this convention.
//
// The package has no dependencies, performs no I/O and does not allocate
// after New. An FSM is not safe for concurrent use; see the realtime package
// for a synchronized, ticker-driven runner.
package tablefsm

// Outcome names the branch one Step took.
type Outcome int

const (
	// Idle: no current state and an empty table; nothing ran.
	Idle Outcome = iota
	// Transitioned: the signal selected a new current state.
	Transitioned
	// RejectedNegative: the behavior returned a negative signal.
	RejectedNegative
	// RejectedOutOfRange: the signal is at or past the end of the table.
	RejectedOutOfRange
	// RejectedSelf: the signal is the current index.
	RejectedSelf
	// RejectedHole: the signal names a nil table entry.
	RejectedHole
)

var outcomeNames = [...]string{
	Idle:               "idle",
	Transitioned:       "transitioned",
	RejectedNegative:   "rejected_negative",
	RejectedOutOfRange: "rejected_out_of_range",
	RejectedSelf:       "rejected_self",
	RejectedHole:       "rejected_hole",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// FSM drives a table of states. Create one with New.
type FSM struct {
	states  []*State
	current *State
	index   int
}

// New binds an FSM to states for its whole lifetime. The slice is borrowed,
// not copied: do not reassign its entries while the FSM is in use. A
// non-empty table starts at index 0; an empty or nil one starts with no
// current state and index -1.
func New(states []*State) *FSM {
	m := &FSM{states: states, index: -1}
	if len(states) > 0 {
		m.current = states[0]
		m.index = 0
	}
	return m
}

// Tick runs the current state's behavior once and applies the transition it
// requests, if any.
func (m *FSM) Tick() {
	m.Step()
}

// Step is Tick, reporting which branch was taken.
func (m *FSM) Step() Outcome {
	if m.current == nil {
		if len(m.states) == 0 {
			return Idle
		}
		// Unreachable after New unless SetCurrent(nil) was used.
		m.current = m.states[0]
		m.index = 0
	}

	signal := m.current.Execute()

	switch {
	case signal < 0:
		return RejectedNegative
	case uint(signal) >= uint(len(m.states)):
		return RejectedOutOfRange
	case signal == m.index:
		return RejectedSelf
	}

	target := m.states[signal]
	if target == nil {
		return RejectedHole
	}
	m.current = target
	m.index = signal
	return Transitioned
}

// Current returns the active state, or nil if there is none.
func (m *FSM) Current() *State {
	return m.current
}

// CurrentIndex returns the active table index, or -1 if there is none.
func (m *FSM) CurrentIndex() int {
	return m.index
}

// SetCurrent overrides the active state without touching the index.
func (m *FSM) SetCurrent(s *State) {
	m.current = s
}

// SetCurrentIndex overrides the active index without touching the state.
func (m *FSM) SetCurrentIndex(index int) {
	m.index = index
}

// Count returns the table length bound at construction.
func (m *FSM) Count() int {
	return len(m.states)
}
