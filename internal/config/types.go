// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/pkg/platform"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidInterpreterEntry is the sentinel error wrapped by InvalidInterpreterEntryError.
	ErrInvalidInterpreterEntry = errors.New("invalid interpreter entry")
	// ErrInvalidMaxAttempts is returned for a negative selection.max_attempts.
	ErrInvalidMaxAttempts = errors.New("invalid max attempts")
	// ErrInvalidRelPath is returned when venv_dir or requirements is not a
	// path strictly inside the project directory.
	ErrInvalidRelPath = errors.New("invalid path")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme selects the Markdown style for issue guidance.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidInterpreterEntryError is returned when an InterpreterEntry has a
	// blank version or path, or repeats a version.
	InvalidInterpreterEntryError struct {
		Index  int
		Reason string
	}

	// InvalidMaxAttemptsError is returned when selection.max_attempts is negative.
	InvalidMaxAttemptsError struct {
		Value int
	}

	// InvalidRelPathError is returned when a path setting is blank, leaves the
	// project directory, names the project directory itself, or names a
	// reserved Windows device.
	InvalidRelPathError struct {
		Field  string
		Reason string
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InterpreterEntry maps a version label to an interpreter executable.
	InterpreterEntry struct {
		Version string `json:"version" mapstructure:"version"`
		Path    string `json:"path" mapstructure:"path"`
	}

	// Config holds the application configuration.
	Config struct {
		// Interpreters lists the candidate Python interpreters in probe order.
		Interpreters []InterpreterEntry `json:"interpreters" mapstructure:"interpreters"`
		// VenvDir is the environment directory, relative to the project directory.
		VenvDir string `json:"venv_dir" mapstructure:"venv_dir"`
		// Requirements is the manifest path, relative to the project directory.
		Requirements string `json:"requirements" mapstructure:"requirements"`
		// Activation selects how the activation script is run.
		Activation ActivationConfig `json:"activation" mapstructure:"activation"`
		// Selection bounds the version prompt.
		Selection SelectionConfig `json:"selection" mapstructure:"selection"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// ActivationConfig configures environment activation.
	ActivationConfig struct {
		Runtime runtime.RuntimeType `json:"runtime" mapstructure:"runtime"`
	}

	// SelectionConfig configures the version prompt.
	SelectionConfig struct {
		// MaxAttempts caps the number of prompts; 0 means unbounded.
		MaxAttempts int `json:"max_attempts" mapstructure:"max_attempts"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Color enables the terminal colour signal and styled tags.
		Color bool `json:"color" mapstructure:"color"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// TUI asks questions with the full-screen prompt.
		TUI bool `json:"tui" mapstructure:"tui"`
	}
)

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// Error implements the error interface.
func (e *InvalidInterpreterEntryError) Error() string {
	return fmt.Sprintf("interpreters[%d]: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidInterpreterEntry for errors.Is() compatibility.
func (e *InvalidInterpreterEntryError) Unwrap() error { return ErrInvalidInterpreterEntry }

// Error implements the error interface.
func (e *InvalidMaxAttemptsError) Error() string {
	return fmt.Sprintf("selection.max_attempts: %d must be >= 0", e.Value)
}

// Unwrap returns ErrInvalidMaxAttempts for errors.Is() compatibility.
func (e *InvalidMaxAttemptsError) Unwrap() error { return ErrInvalidMaxAttempts }

// Error implements the error interface.
func (e *InvalidRelPathError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidRelPath for errors.Is() compatibility.
func (e *InvalidRelPathError) Unwrap() error { return ErrInvalidRelPath }

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Table returns the interpreter entries as a version label to path map.
func (c Config) Table() map[string]string {
	table := make(map[string]string, len(c.Interpreters))
	for _, e := range c.Interpreters {
		table[e.Version] = e.Path
	}
	return table
}

// IsValid checks the rules the CUE schema cannot express and re-checks the
// ones it can, so configs built in code get the same treatment.
func (c Config) IsValid() (bool, []error) {
	var errs []error

	seen := make(map[string]int, len(c.Interpreters))
	for i, e := range c.Interpreters {
		switch {
		case strings.TrimSpace(e.Version) == "":
			errs = append(errs, &InvalidInterpreterEntryError{Index: i, Reason: "version must be non-empty"})
		case strings.TrimSpace(e.Path) == "":
			errs = append(errs, &InvalidInterpreterEntryError{Index: i, Reason: "path must be non-empty"})
		default:
			if first, dup := seen[e.Version]; dup {
				errs = append(errs, &InvalidInterpreterEntryError{
					Index:  i,
					Reason: fmt.Sprintf("version %q already defined by interpreters[%d]", e.Version, first),
				})
			} else {
				seen[e.Version] = i
			}
		}
	}

	errs = appendPathErrors(errs, "venv_dir", c.VenvDir)
	errs = appendPathErrors(errs, "requirements", c.Requirements)
	if err := c.Activation.Runtime.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Selection.MaxAttempts < 0 {
		errs = append(errs, &InvalidMaxAttemptsError{Value: c.Selection.MaxAttempts})
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}

	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

func appendPathErrors(errs []error, field, path string) []error {
	if strings.TrimSpace(path) == "" {
		return append(errs, &InvalidRelPathError{Field: field, Reason: "must be non-empty"})
	}
	if elem := platform.ReservedPathElement(path); elem != "" {
		return append(errs, &InvalidRelPathError{Field: field, Reason: fmt.Sprintf("%q is a reserved name on Windows", elem)})
	}
	if filepath.Clean(path) == "." {
		return append(errs, &InvalidRelPathError{Field: field, Reason: "must not be the project directory"})
	}
	// IsLocal rejects absolute and rooted paths and anything escaping through "..".
	if !filepath.IsLocal(path) {
		return append(errs, &InvalidRelPathError{Field: field, Reason: fmt.Sprintf("%q must be relative to the project directory", path)})
	}
	return errs
}
