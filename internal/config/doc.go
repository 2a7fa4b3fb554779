// SPDX-License-Identifier: MPL-2.0

// Package config handles venvkit configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the first file found among an explicit --config
// path, the user config directory (~/.config/venvkit/config.cue or the XDG
// equivalent on Linux, ~/Library/Application Support/venvkit/config.cue on
// macOS, %APPDATA%\venvkit\config.cue on Windows), and ./venvkit.cue in the
// project directory. Every file is validated against the embedded CUE schema
// (config_schema.cue) before it is merged over the built-in defaults.
package config
