// Package metrics exports tick and transition metrics for a realtime.Runtime
// to Prometheus.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/comalice/tablefsm/realtime"
)

const (
	namespace = "tablefsm"
	subsystem = "driver"
)

// Collector records every tick it observes. The vectors carry a machine
// label but are registered by each Collector, so use one Collector per
// registry.
type Collector struct {
	machine string

	ticks        *prometheus.CounterVec
	outcomes     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	panics       *prometheus.CounterVec
	currentIndex *prometheus.GaugeVec
	tickDuration *prometheus.HistogramVec
}

var _ realtime.Observer = (*Collector)(nil)

// NewCollector creates the metric vectors and registers them with reg.
func NewCollector(reg prometheus.Registerer, machine string) (*Collector, error) {
	c := &Collector{
		machine: machine,
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ticks_total",
				Help:      "Total number of ticks run",
			},
			[]string{"machine"},
		),
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "outcomes_total",
				Help:      "Total number of ticks by outcome",
			},
			[]string{"machine", "outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transitions_total",
				Help:      "Total number of state transitions by source and target index",
			},
			[]string{"machine", "from", "to"},
		),
		panics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "behavior_panics_total",
				Help:      "Total number of recovered behavior panics",
			},
			[]string{"machine"},
		),
		currentIndex: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "current_index",
				Help:      "Table index of the active state (-1 when none)",
			},
			[]string{"machine"},
		),
		tickDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "tick_duration_seconds",
				Help:      "Duration of one tick including the state behavior",
				Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1},
			},
			[]string{"machine"},
		),
	}

	for _, col := range []prometheus.Collector{
		c.ticks, c.outcomes, c.transitions, c.panics, c.currentIndex, c.tickDuration,
	} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics for %q: %w", machine, err)
		}
	}
	return c, nil
}

// ObserveTick implements realtime.Observer.
func (c *Collector) ObserveTick(info realtime.TickInfo) {
	c.ticks.WithLabelValues(c.machine).Inc()
	c.outcomes.WithLabelValues(c.machine, info.Outcome.String()).Inc()
	if info.From != info.To {
		c.transitions.WithLabelValues(c.machine, strconv.Itoa(info.From), strconv.Itoa(info.To)).Inc()
	}
	if info.Panicked {
		c.panics.WithLabelValues(c.machine).Inc()
	}
	c.currentIndex.WithLabelValues(c.machine).Set(float64(info.To))
	c.tickDuration.WithLabelValues(c.machine).Observe(info.Duration.Seconds())
}
