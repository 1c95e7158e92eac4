package realtime

import (
	"time"

	"github.com/comalice/tablefsm"
)

// TickInfo describes one completed tick.
type TickInfo struct {
	MachineID string
	Tick      uint64
	From      int // index before the tick
	To        int // index after the tick
	FromName  string
	ToName    string
	Outcome   tablefsm.Outcome
	Panicked  bool // behavior panicked; Outcome is Idle
	Duration  time.Duration
}

// Observer receives every tick.
type Observer interface {
	ObserveTick(info TickInfo)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(info TickInfo)

func (f ObserverFunc) ObserveTick(info TickInfo) {
	f(info)
}
