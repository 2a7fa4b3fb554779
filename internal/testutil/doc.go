// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers and fakes shared by venvkit tests.
//
// Helpers fail the test immediately on error (MustSetenv, MustWriteFile,
// WriteExecutable). Fakes stand in for the ports the bootstrap talks to:
// Runner records commands and answers them from scripted handlers, and
// Prompter replays a fixed list of answers.
package testutil
