// SPDX-License-Identifier: MPL-2.0

// Package console implements venvkit's user-facing console I/O: tagged status
// lines ("[info]", "[warning]", "[error]", "[success]") and line prompts.
//
// Status lines are written to stdout with the tag styled from the shared
// palette; diagnostics go through the charmbracelet logger instead and never
// pass through this package.
package console
