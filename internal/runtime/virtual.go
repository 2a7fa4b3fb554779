// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/venvkit/venvkit/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime interprets POSIX shell scripts in-process using mvdan/sh.
// Command.Path names the script file; Command.Args become $1, $2, ...
type VirtualRuntime struct{}

// NewVirtualRuntime creates a new virtual runtime
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Run interprets the script with output streamed to cmd.Stdout and cmd.Stderr.
// Variables exported by the script are returned in Result.Exported.
func (r *VirtualRuntime) Run(ctx context.Context, c Command) *Result {
	return r.run(ctx, c, orDiscard(c.Stdout), orDiscard(c.Stderr))
}

// Capture interprets the script and captures stdout and stderr together.
func (r *VirtualRuntime) Capture(ctx context.Context, c Command) *Result {
	var out bytes.Buffer
	result := r.run(ctx, c, &out, &out)
	result.Output = out.String()
	return result
}

func (r *VirtualRuntime) run(ctx context.Context, c Command, stdout, stderr io.Writer) *Result {
	f, err := os.Open(c.Path)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to open script: %w", err))
	}
	defer f.Close()

	prog, err := syntax.NewParser().Parse(f, c.Path)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to parse script: %w", err))
	}

	env := append(os.Environ(), c.Env...)
	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
		interp.ExecHandlers(r.execHandler),
	}
	if c.Dir != "" {
		opts = append(opts, interp.Dir(c.Dir))
	}
	// Prepend "--" so args that look like flags are not taken as shell options.
	if len(c.Args) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, c.Args...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err))
	}

	err = runner.Run(ctx, prog)
	result := &Result{Exported: exportedVars(runner)}
	if err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			result.ExitCode = types.ExitCode(exitStatus)
			return result
		}
		result.ExitCode = types.ExitFailure
		result.Error = fmt.Errorf("script execution failed: %w", err)
	}

	return result
}

// execHandler answers the shell builtins the interpreter lacks before
// falling back to external commands.
func (r *VirtualRuntime) execHandler(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(ctx context.Context, args []string) error {
		if len(args) > 0 && args[0] == "hash" {
			// Activation scripts run `hash -r` to drop the command cache; there is none here.
			return nil
		}
		return next(ctx, args)
	}
}

func exportedVars(runner *interp.Runner) map[string]string {
	vars := make(map[string]string)
	for name, v := range runner.Vars {
		if v.Exported {
			vars[name] = v.String()
		}
	}
	return vars
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}
