// SPDX-License-Identifier: MPL-2.0

// Package bootstrap runs the interactive environment setup: it asks for an
// interpreter version and an install decision, recreates and activates the
// environment, and installs the requirements manifest.
//
// The workflow returns a single outcome or error. Exit codes and the terminal
// colour signal belong to the caller.
package bootstrap
