// SPDX-License-Identifier: MPL-2.0

// Package interpreter discovers which of the configured Python interpreters
// are usable on this host.
//
// Each candidate is a version label ("3.11") and an install path. Discovery
// runs `<path> --version` for every candidate and records the detected version
// string, or nothing when the probe fails. Discovery is read-only and never
// returns an error; a failed probe only makes that candidate unavailable.
package interpreter
