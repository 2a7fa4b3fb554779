// SPDX-License-Identifier: MPL-2.0

// Package termsignal drives the terminal colour used as a progress signal.
//
// The bootstrap turns the console white while it works and leaves it green on
// success or red on failure. The colour is set with a persistent SGR
// foreground sequence (no reset), so it stays visible after the process exits.
package termsignal
