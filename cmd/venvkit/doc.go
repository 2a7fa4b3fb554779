// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the venvkit command line. The root command runs the
// environment bootstrap; subcommands inspect interpreters and configuration.
package cmd
