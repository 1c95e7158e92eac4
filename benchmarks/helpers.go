// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"

	"github.com/comalice/tablefsm"
)

// GenRingTable creates n states where each one hands over to the next,
// wrapping at the end. Every tick transitions.
func GenRingTable(n int) []*tablefsm.State {
	if n < 1 {
		n = 1
	}
	states := make([]*tablefsm.State, n)
	for i := 0; i < n; i++ {
		next := (i + 1) % n
		states[i] = tablefsm.NewState(tablefsm.StateID(i), fmt.Sprintf("s%d", i), func() int { return next })
	}
	return states
}

// GenHoldTable creates n states whose behaviors never request a transition.
func GenHoldTable(n int) []*tablefsm.State {
	if n < 1 {
		n = 1
	}
	states := make([]*tablefsm.State, n)
	for i := 0; i < n; i++ {
		states[i] = tablefsm.NewState(tablefsm.StateID(i), fmt.Sprintf("s%d", i), func() int { return tablefsm.NoTransition })
	}
	return states
}
