// Package realtime runs a tablefsm.FSM from a fixed-rate ticker.
//
// A tablefsm.FSM is not safe for concurrent use. Runtime owns one FSM, ticks
// it on its own goroutine and serializes every tick and query behind a
// mutex, so other goroutines may inspect or reset the machine while it runs.
//
// # Example Usage
//
//	states, _ := builder.Build()
//	rt := realtime.NewRuntime(tablefsm.New(states), realtime.Config{
//		TickRate: 10 * time.Millisecond,
//	}, realtime.WithLogger(logger))
//	if err := rt.Start(ctx); err != nil {
//		return err
//	}
//	defer rt.Stop()
//
// # Tick Semantics
//
// Each tick runs exactly one tablefsm.FSM.Step. Ticks are numbered from 1.
// Observers see every tick after the lock is released, in registration
// order, on the ticking goroutine (or the caller's, for TickOnce).
//
// A behavior that panics does not stop the runtime. The panic is logged,
// the tick is reported with Panicked set, and the FSM stays where it was.
//
// # Superloop Use
//
// Callers with their own loop can skip Start and call TickOnce directly;
// logging and observers behave the same.
package realtime
