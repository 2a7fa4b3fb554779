// SPDX-License-Identifier: MPL-2.0

package termsignal

import (
	"io"
	"sync"

	"github.com/muesli/termenv"
)

const (
	// InProgress is shown while the workflow runs (white).
	InProgress State = iota + 1
	// Success is shown when the environment is ready (green).
	Success
	// Failure is shown when the workflow aborted (red).
	Failure
)

type (
	// State is one of the three signal states.
	State int

	// Signal is the output port for the colour signal.
	Signal interface {
		Set(State)
	}

	// ANSISignal writes colour changes to a terminal.
	ANSISignal struct {
		out *termenv.Output
	}

	// Recorder keeps every state it is given. It is safe for concurrent use.
	Recorder struct {
		mu     sync.Mutex
		states []State
	}
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// color maps the state to its ANSI foreground colour.
func (s State) color() termenv.Color {
	switch s {
	case Success:
		return termenv.ANSIGreen
	case Failure:
		return termenv.ANSIRed
	default:
		return termenv.ANSIWhite
	}
}

// NewANSISignal creates a signal writing to w. The colour profile is detected
// from w and the environment (NO_COLOR, TERM); when enabled is false nothing is
// ever written.
func NewANSISignal(w io.Writer, enabled bool) *ANSISignal {
	var opts []termenv.OutputOption
	if !enabled {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &ANSISignal{out: termenv.NewOutput(w, opts...)}
}

// Set switches the terminal foreground colour.
func (s *ANSISignal) Set(state State) {
	seq := s.out.Convert(state.color()).Sequence(false)
	if seq == "" {
		return
	}
	_, _ = s.out.WriteString(termenv.CSI + seq + "m")
}

// Set records the state.
func (r *Recorder) Set(state State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

// States returns a copy of the recorded states in order.
func (r *Recorder) States() []State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]State(nil), r.states...)
}

// Last returns the most recent state, or 0 when nothing was recorded.
func (r *Recorder) Last() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.states) == 0 {
		return 0
	}
	return r.states[len(r.states)-1]
}
