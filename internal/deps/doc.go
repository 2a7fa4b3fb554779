// SPDX-License-Identifier: MPL-2.0

// Package deps installs the requirements manifest into a fresh virtual
// environment and reports how much space the installed packages took.
package deps
