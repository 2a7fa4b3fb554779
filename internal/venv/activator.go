// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/venvkit/venvkit/internal/runtime"
)

// ErrNotActivated is returned when the activation script ran but did not
// export VIRTUAL_ENV for the environment.
var ErrNotActivated = errors.New("activation script did not export VIRTUAL_ENV")

type (
	// Activator runs an environment's activation entry point.
	Activator interface {
		Activate(ctx context.Context, layout Layout) error
	}

	// NativeActivator runs the activation entry point through the host shell.
	NativeActivator struct {
		Shell  *runtime.NativeRuntime
		Runner runtime.Runner
		Dir    string
		Stdout io.Writer
		Stderr io.Writer
	}

	// VirtualActivator sources the POSIX activation script with the
	// in-process shell interpreter and checks the exported environment.
	VirtualActivator struct {
		Runner runtime.Runner
		Dir    string
		Stderr io.Writer
	}
)

// NewActivator returns the activator for the given runtime type.
func NewActivator(rt runtime.RuntimeType, dir string, stdout, stderr io.Writer) (Activator, error) {
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	if rt == runtime.RuntimeTypeVirtual {
		return &VirtualActivator{Runner: runtime.NewVirtualRuntime(), Dir: dir, Stderr: stderr}, nil
	}
	native := runtime.NewNativeRuntime()
	return &NativeActivator{Shell: native, Runner: native, Dir: dir, Stdout: stdout, Stderr: stderr}, nil
}

// Activate implements Activator.
func (a *NativeActivator) Activate(ctx context.Context, layout Layout) error {
	cmd, err := a.Shell.ShellCommand(layout.ActivateScript())
	if err != nil {
		return err
	}
	cmd.Dir = a.Dir
	cmd.Stdout = a.Stdout
	cmd.Stderr = a.Stderr
	return a.Runner.Run(ctx, cmd).Err()
}

// Activate implements Activator.
func (a *VirtualActivator) Activate(ctx context.Context, layout Layout) error {
	result := a.Runner.Run(ctx, runtime.Command{
		Path:   layout.PosixActivateScript(),
		Dir:    a.Dir,
		Stderr: a.Stderr,
	})
	if err := result.Err(); err != nil {
		return err
	}

	got := result.Exported["VIRTUAL_ENV"]
	if got == "" || filepath.Clean(got) != filepath.Clean(layout.Dir()) {
		return fmt.Errorf("%w (got %q, want %q)", ErrNotActivated, got, layout.Dir())
	}
	return nil
}
