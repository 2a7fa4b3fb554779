// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/venvkit/venvkit/pkg/types"
)

// Runtime type constants for the activation runtimes.
const (
	RuntimeTypeNative  RuntimeType = "native"
	RuntimeTypeVirtual RuntimeType = "virtual"
)

var (
	// ErrNonZeroExit is wrapped by Result.Err when the process exited with a non-zero code.
	ErrNonZeroExit = errors.New("process exited with non-zero status")
	// ErrInvalidRuntimeType is the sentinel error wrapped by InvalidRuntimeTypeError.
	ErrInvalidRuntimeType = errors.New("invalid runtime type")
)

type (
	// RuntimeType identifies a runtime implementation.
	RuntimeType string

	// InvalidRuntimeTypeError is returned when a RuntimeType value is not recognized.
	InvalidRuntimeTypeError struct {
		Value RuntimeType
	}

	// Command describes a single process invocation.
	Command struct {
		// Path is the executable (native) or script file (virtual).
		Path string
		// Args are passed after Path.
		Args []string
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Env holds extra KEY=VALUE entries appended to the inherited environment.
		Env []string
		// Stdout receives standard output when not capturing.
		Stdout io.Writer
		// Stderr receives standard error when not capturing.
		Stderr io.Writer
	}

	// Result contains the result of a command execution
	Result struct {
		// ExitCode is the process exit status.
		ExitCode types.ExitCode
		// Error is set when the process could not be started or run at all.
		Error error
		// Output is the captured combined output (Capture only).
		Output string
		// Exported holds the variables exported by a virtual script run.
		Exported map[string]string
	}

	// Runner starts commands. Implementations must be safe to call sequentially;
	// venvkit never runs two commands at once.
	Runner interface {
		// Run executes the command, streaming output to cmd.Stdout/cmd.Stderr.
		Run(ctx context.Context, cmd Command) *Result
		// Capture executes the command and returns its combined output.
		Capture(ctx context.Context, cmd Command) *Result
	}
)

// String returns the string representation of the RuntimeType.
func (t RuntimeType) String() string { return string(t) }

// Validate returns an error if the RuntimeType is not one of the defined runtime types.
func (t RuntimeType) Validate() error {
	switch t {
	case RuntimeTypeNative, RuntimeTypeVirtual:
		return nil
	default:
		return &InvalidRuntimeTypeError{Value: t}
	}
}

// Error implements the error interface.
func (e *InvalidRuntimeTypeError) Error() string {
	return fmt.Sprintf("invalid runtime type %q (valid: native, virtual)", e.Value)
}

// Unwrap returns ErrInvalidRuntimeType for errors.Is() compatibility.
func (e *InvalidRuntimeTypeError) Unwrap() error { return ErrInvalidRuntimeType }

// String renders the command line for logs and error messages.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Path))
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
