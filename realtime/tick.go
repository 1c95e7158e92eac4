package realtime

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comalice/tablefsm"
)

// tickLoop is the main tick execution loop
func (rt *Runtime) tickLoop(ctx context.Context, ticker *time.Ticker) {
	defer close(rt.stopped)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rt.logger.Info("runtime stopped", zap.Uint64("ticks", rt.TickNumber()))
			return
		case <-ticker.C:
			rt.TickOnce()
			if rt.maxTicks > 0 && rt.TickNumber() >= rt.maxTicks {
				rt.logger.Info("runtime reached max ticks", zap.Uint64("ticks", rt.maxTicks))
				return
			}
		}
	}
}

// TickOnce runs one step synchronously on the caller's goroutine and
// notifies observers.
// A runtime without an FSM reports Idle and notifies nobody.
func (rt *Runtime) TickOnce() tablefsm.Outcome {
	if rt.fsm == nil {
		return tablefsm.Idle
	}

	rt.mu.Lock()
	info := rt.processTick()
	rt.mu.Unlock()

	if info.Outcome == tablefsm.Transitioned {
		rt.logger.Debug("state transition",
			zap.Uint64("tick", info.Tick),
			zap.Int("from", info.From),
			zap.String("from_name", info.FromName),
			zap.Int("to", info.To),
			zap.String("to_name", info.ToName),
		)
	}

	for _, o := range rt.observers {
		o.ObserveTick(info)
	}
	return info.Outcome
}

// processTick steps the FSM once. Caller holds rt.mu. If the behavior
// panics, the FSM is put back the way it was before the tick.
func (rt *Runtime) processTick() (info TickInfo) {
	start := time.Now()
	rt.tickNum++

	prevIndex, prev := rt.fsm.CurrentIndex(), rt.fsm.Current()
	info.MachineID = rt.id
	info.Tick = rt.tickNum
	info.From = prevIndex
	info.FromName = stateName(prev)

	defer func() {
		if r := recover(); r != nil {
			rt.fsm.SetCurrentIndex(prevIndex)
			rt.fsm.SetCurrent(prev)
			rt.logger.Error("state behavior panicked",
				zap.Uint64("tick", info.Tick),
				zap.Int("state", info.From),
				zap.String("state_name", info.FromName),
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			info.Panicked = true
			info.Outcome = tablefsm.Idle
		}
		info.To = rt.fsm.CurrentIndex()
		info.ToName = stateName(rt.fsm.Current())
		info.Duration = time.Since(start)
	}()

	info.Outcome = rt.fsm.Step()
	return info
}

func stateName(s *tablefsm.State) string {
	if s == nil {
		return ""
	}
	return s.String()
}
