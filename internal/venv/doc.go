// SPDX-License-Identifier: MPL-2.0

// Package venv deletes, recreates, and activates the project's Python virtual
// environment.
//
// Filesystem checks go through an afero.Fs and every subprocess goes through a
// runtime.Runner, so the whole package can be driven against an in-memory
// filesystem and a recorded runner in tests.
package venv
