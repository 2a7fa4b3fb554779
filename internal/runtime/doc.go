// SPDX-License-Identifier: MPL-2.0

// Package runtime runs the external programs venvkit depends on.
//
// Two runtime implementations are available:
//   - native: starts host processes through os/exec (interpreter probes,
//     `python -m venv`, pip, and shell-based activation)
//   - virtual: interprets a POSIX shell script in-process with mvdan/sh,
//     used to source a venv activation script without a host shell
//
// Both implement Runner. Capture collects stdout and stderr together, which is
// what interpreter version probes need (older interpreters print the version
// on stderr).
package runtime
