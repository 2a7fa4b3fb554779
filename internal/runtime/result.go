// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"fmt"

	"github.com/venvkit/venvkit/pkg/types"
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Success reports whether the command started and exited with status 0.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Err collapses the result into a single error: the launch error if any,
// otherwise ErrNonZeroExit wrapped with the exit status. It returns nil on success.
func (r *Result) Err() error {
	switch {
	case r.Success():
		return nil
	case r.Error != nil:
		return r.Error
	default:
		return fmt.Errorf("%w (exit status %d)", ErrNonZeroExit, r.ExitCode)
	}
}
