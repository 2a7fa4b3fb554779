// SPDX-License-Identifier: MPL-2.0

// Package platform holds host-OS constants and sandbox detection.
//
// venvkit probes interpreters installed on the host. When it runs inside a
// Flatpak or Snap sandbox those interpreters are not visible directly, so
// native processes are started through the sandbox's host spawn helper.
package platform
