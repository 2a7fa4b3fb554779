// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/venvkit/venvkit/pkg/platform"
	"github.com/venvkit/venvkit/pkg/types"
)

// NativeRuntime executes commands as host processes.
type NativeRuntime struct {
	// Shell overrides the default shell used by ShellCommand.
	Shell string
	// Sandbox routes every process through the sandbox's host spawn helper
	// when set to anything other than platform.SandboxNone.
	Sandbox platform.SandboxType
}

// NewNativeRuntime creates a native runtime for the detected sandbox.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{Sandbox: platform.DetectSandbox()}
}

// Run executes the command with its output streamed to cmd.Stdout and cmd.Stderr.
func (r *NativeRuntime) Run(ctx context.Context, c Command) *Result {
	cmd := r.build(ctx, c)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return NewExitCodeResult(types.ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("failed to execute %s: %w", c.Path, err))
	}

	return NewSuccessResult()
}

// Capture executes the command and captures stdout and stderr together.
func (r *NativeRuntime) Capture(ctx context.Context, c Command) *Result {
	cmd := r.build(ctx, c)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	result := &Result{Output: out.String()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = types.ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = types.ExitFailure
			result.Error = fmt.Errorf("failed to execute %s: %w", c.Path, err)
		}
	}

	return result
}

// ShellCommand wraps a script path so that it runs through the host shell:
// `cmd /C <script>` for batch files, `<shell> -c '. "$1"' venvkit <script>` for
// POSIX scripts (the script is sourced, not executed).
func (r *NativeRuntime) ShellCommand(script string) (Command, error) {
	shell, err := r.getShell()
	if err != nil {
		return Command{}, err
	}

	switch shellBase(shell) {
	case "cmd":
		return Command{Path: shell, Args: []string{"/C", script}}, nil
	case "powershell", "pwsh":
		return Command{Path: shell, Args: []string{"-NoProfile", "-Command", ". '" + script + "'"}}, nil
	default:
		// The script becomes $1; "venvkit" fills $0.
		return Command{Path: shell, Args: []string{"-c", `. "$1"`, "venvkit", script}}, nil
	}
}

func (r *NativeRuntime) build(ctx context.Context, c Command) *exec.Cmd {
	path, args := c.Path, c.Args
	if spawn, spawnArgs := platform.HostSpawnFor(r.Sandbox); spawn != "" {
		args = append(append(spawnArgs, c.Path), c.Args...)
		path = spawn
	}

	cmd := exec.CommandContext(ctx, path, args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd
}

// getShell determines which shell to use
func (r *NativeRuntime) getShell() (string, error) {
	// Use configured shell if set
	if r.Shell != "" {
		return r.Shell, nil
	}

	// Platform-specific defaults
	switch goruntime.GOOS {
	case platform.Windows:
		// Batch activation scripts need cmd; PowerShell is not tried first here.
		return exec.LookPath("cmd")
	default:
		// Interactive shells like fish cannot source a POSIX activate script,
		// so SHELL is deliberately ignored.
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

func shellBase(shell string) string {
	base := filepath.Base(shell)
	// Also handle Windows paths on Unix systems
	if lastSlash := strings.LastIndex(base, "\\"); lastSlash >= 0 {
		base = base[lastSlash+1:]
	}
	return strings.TrimSuffix(strings.ToLower(base), ".exe")
}
