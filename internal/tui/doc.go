// SPDX-License-Identifier: MPL-2.0

// Package tui provides the full-screen line prompt used by `venvkit --tui`.
//
// The prompt is a Bubble Tea program around a Bubbles text input and
// satisfies console.Prompter, so the bootstrap workflow cannot tell it apart
// from the plain line prompter.
package tui
