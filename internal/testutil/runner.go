// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"fmt"
	"os/exec"
	"sync"

	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/pkg/types"
)

type (
	// Handler answers a command recorded by Runner.
	Handler func(cmd runtime.Command) *runtime.Result

	// Runner is a runtime.Runner that records every command and answers it
	// from the handler registered for the command's path. Commands without a
	// handler fail as if the executable did not exist.
	Runner struct {
		mu       sync.Mutex
		handlers map[string]Handler
		calls    []runtime.Command
	}
)

// NewRunner creates an empty fake runner.
func NewRunner() *Runner {
	return &Runner{handlers: make(map[string]Handler)}
}

// On registers the handler for path.
func (r *Runner) On(path string, h Handler) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[path] = h
	return r
}

// OnOutput registers a handler that succeeds with the given captured output.
func (r *Runner) OnOutput(path, output string) *Runner {
	return r.On(path, func(runtime.Command) *runtime.Result {
		return &runtime.Result{Output: output}
	})
}

// OnExit registers a handler that exits with code.
func (r *Runner) OnExit(path string, code types.ExitCode) *Runner {
	return r.On(path, func(runtime.Command) *runtime.Result {
		return runtime.NewExitCodeResult(code)
	})
}

// Run implements runtime.Runner.
func (r *Runner) Run(_ context.Context, cmd runtime.Command) *runtime.Result {
	return r.dispatch(cmd)
}

// Capture implements runtime.Runner.
func (r *Runner) Capture(_ context.Context, cmd runtime.Command) *runtime.Result {
	return r.dispatch(cmd)
}

// Calls returns every recorded command in order.
func (r *Runner) Calls() []runtime.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]runtime.Command(nil), r.calls...)
}

// CallsTo returns the recorded commands whose path equals path.
func (r *Runner) CallsTo(path string) []runtime.Command {
	var matched []runtime.Command
	for _, c := range r.Calls() {
		if c.Path == path {
			matched = append(matched, c)
		}
	}
	return matched
}

func (r *Runner) dispatch(cmd runtime.Command) *runtime.Result {
	r.mu.Lock()
	r.calls = append(r.calls, cmd)
	h, ok := r.handlers[cmd.Path]
	r.mu.Unlock()

	if !ok {
		return runtime.NewErrorResult(types.ExitFailure, fmt.Errorf("failed to execute %s: %w", cmd.Path, exec.ErrNotFound))
	}
	return h(cmd)
}
