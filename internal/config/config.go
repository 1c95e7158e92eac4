// Package config loads state tables described in YAML.
//
// A table file names each state and lists the states its behavior requests,
// one per tick, cycling:
//
//	name: traffic
//	tick: 500ms
//	max_ticks: 12
//	states:
//	  - name: red
//	    next: [red, red, green]
//	  - name: green
//	    next: [yellow]
//	  - name: yellow
//	    next: [red]
//
// "-" or an empty entry means no transition. A state without next entries
// holds forever.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comalice/tablefsm"
)

// Hold is the next entry that requests no transition.
const Hold = "-"

var ErrInvalidConfig = errors.New("invalid table config")

// Table is a state table file.
type Table struct {
	Name     string        `yaml:"name"`
	Tick     time.Duration `yaml:"tick,omitempty"`
	MaxTicks uint64        `yaml:"max_ticks,omitempty"`
	States   []StateSpec   `yaml:"states"`
}

// StateSpec describes one state.
type StateSpec struct {
	Name string   `yaml:"name"`
	Next []string `yaml:"next,omitempty"`
}

// Load reads and parses a table file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a table from YAML and checks it.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that state names are present and unique and that every
// next entry names a state.
func (t *Table) Validate() error {
	if len(t.States) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidConfig)
	}
	if t.Tick < 0 {
		return fmt.Errorf("%w: negative tick %v", ErrInvalidConfig, t.Tick)
	}

	known := make(map[string]bool, len(t.States))
	for i, s := range t.States {
		if s.Name == "" || s.Name == Hold {
			return fmt.Errorf("%w: state %d has invalid name %q", ErrInvalidConfig, i, s.Name)
		}
		if known[s.Name] {
			return fmt.Errorf("%w: duplicate state %q", ErrInvalidConfig, s.Name)
		}
		known[s.Name] = true
	}

	var errs []error
	for _, s := range t.States {
		for _, next := range s.Next {
			if next == "" || next == Hold {
				continue
			}
			if !known[next] {
				errs = append(errs, fmt.Errorf("%w: state %q refers to unknown state %q", ErrInvalidConfig, s.Name, next))
			}
		}
	}
	return errors.Join(errs...)
}

// Build creates the state table in file order. Each behavior walks its next
// list one entry per call and wraps around. Behaviors are not safe for
// concurrent use; run them from one goroutine or through realtime.Runtime.
func (t *Table) Build() ([]*tablefsm.State, error) {
	b := tablefsm.NewTableBuilder()
	for _, s := range t.States {
		b.Declare(s.Name)
	}

	for _, s := range t.States {
		signals := make([]int, len(s.Next))
		for i, next := range s.Next {
			if next == "" || next == Hold {
				signals[i] = tablefsm.NoTransition
				continue
			}
			id, ok := b.ID(next)
			if !ok {
				return nil, fmt.Errorf("%w: state %q refers to unknown state %q", ErrInvalidConfig, s.Name, next)
			}
			signals[i] = int(id)
		}
		b.State(s.Name, cycle(signals))
	}
	return b.Build()
}

func cycle(signals []int) tablefsm.Behavior {
	if len(signals) == 0 {
		return nil
	}
	i := 0
	return func() int {
		sig := signals[i]
		i = (i + 1) % len(signals)
		return sig
	}
}
