package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/comalice/tablefsm"
)

var (
	ErrNilMachine     = errors.New("nil state machine")
	ErrAlreadyStarted = errors.New("runtime already started")
)

// Config configures the runtime.
type Config struct {
	TickRate time.Duration // Interval between ticks (default: 10ms)
	MaxTicks uint64        // Stop after this many ticks; 0 runs until stopped
	ID       string        // Machine ID for logs and metrics (default: random UUID)
}

// Runtime ticks a tablefsm.FSM at a fixed rate.
type Runtime struct {
	fsm       *tablefsm.FSM
	id        string
	tickRate  time.Duration
	maxTicks  uint64
	logger    *zap.Logger
	observers []Observer

	// mu guards fsm and tickNum.
	mu      sync.Mutex
	tickNum uint64

	lifeMu  sync.Mutex
	started bool
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewRuntime creates a runtime for fsm. The runtime takes over
// synchronization: once started, touch the FSM only through the runtime.
func NewRuntime(fsm *tablefsm.FSM, cfg Config, opts ...Option) *Runtime {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 10 * time.Millisecond
	}
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}

	rt := &Runtime{
		fsm:      fsm,
		id:       cfg.ID,
		tickRate: cfg.TickRate,
		maxTicks: cfg.MaxTicks,
		logger:   zap.NewNop(),
		stopped:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(rt)
	}
	rt.logger = rt.logger.With(zap.String("machine_id", rt.id))
	return rt
}

// ID returns the machine ID.
func (rt *Runtime) ID() string {
	return rt.id
}

// Start begins ticking on a new goroutine. The loop ends when ctx is
// cancelled, Stop is called or MaxTicks is reached.
func (rt *Runtime) Start(ctx context.Context) error {
	if rt.fsm == nil {
		return ErrNilMachine
	}

	rt.lifeMu.Lock()
	defer rt.lifeMu.Unlock()
	if rt.started {
		return ErrAlreadyStarted
	}
	rt.started = true

	tickCtx, cancel := context.WithCancel(ctx)
	rt.cancel = cancel
	ticker := time.NewTicker(rt.tickRate)

	rt.logger.Info("runtime started",
		zap.Duration("tick_rate", rt.tickRate),
		zap.Uint64("max_ticks", rt.maxTicks),
		zap.Int("states", rt.fsm.Count()),
	)

	go rt.tickLoop(tickCtx, ticker)
	return nil
}

// Stop ends the tick loop and waits for it to exit. Calling Stop on a
// runtime that was never started, or more than once, is a no-op.
//
// Stop must not be called from a behavior or observer running on the tick
// goroutine: it would wait for itself. Cancel the context passed to Start
// instead.
func (rt *Runtime) Stop() error {
	rt.lifeMu.Lock()
	started, cancel := rt.started, rt.cancel
	rt.lifeMu.Unlock()

	if !started {
		return nil
	}
	cancel()
	<-rt.stopped
	return nil
}

// Done is closed when the tick loop exits.
func (rt *Runtime) Done() <-chan struct{} {
	return rt.stopped
}

// TickNumber returns the number of ticks run so far.
func (rt *Runtime) TickNumber() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.tickNum
}

// Current returns the active state.
func (rt *Runtime) Current() *tablefsm.State {
	if rt.fsm == nil {
		return nil
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.fsm.Current()
}

// CurrentIndex returns the active table index, or -1.
func (rt *Runtime) CurrentIndex() int {
	if rt.fsm == nil {
		return -1
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.fsm.CurrentIndex()
}

// Reset forces the FSM to state s at index, bypassing the transition rules.
// Both values are applied together under the runtime lock. Reset does
// nothing on a runtime without an FSM.
func (rt *Runtime) Reset(index int, s *tablefsm.State) {
	if rt.fsm == nil {
		return
	}
	rt.mu.Lock()
	rt.fsm.SetCurrentIndex(index)
	rt.fsm.SetCurrent(s)
	rt.mu.Unlock()

	rt.logger.Info("state reset", zap.Int("to", index), zap.String("to_name", stateName(s)))
}
