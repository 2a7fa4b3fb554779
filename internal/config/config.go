// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"cuelang.org/go/cue/format"
	"github.com/spf13/viper"

	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/pkg/cueutil"
	"github.com/venvkit/venvkit/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "venvkit"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalFileName is the per-project config file looked up in the project directory.
	LocalFileName = AppName + "." + ConfigFileExt
)

//go:embed config_schema.cue
var configSchema string

// DefaultConfig returns the built-in configuration for the running OS.
func DefaultConfig() *Config {
	return defaultConfigFor(goruntime.GOOS)
}

func defaultConfigFor(goos string) *Config {
	interpreters := []InterpreterEntry{
		{Version: "3.11", Path: "/usr/bin/python3.11"},
		{Version: "3.12", Path: "/usr/bin/python3.12"},
	}
	if goos == platform.Windows {
		interpreters = []InterpreterEntry{
			{Version: "3.11", Path: `C:\Program Files\Python311\python.exe`},
			{Version: "3.12", Path: `C:\Program Files\Python312\python.exe`},
		}
	}

	return &Config{
		Interpreters: interpreters,
		VenvDir:      ".venv",
		Requirements: "requirements.txt",
		Activation:   ActivationConfig{Runtime: runtime.RuntimeTypeNative},
		Selection:    SelectionConfig{MaxAttempts: 0},
		UI: UIConfig{
			Color:       true,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// ConfigDir returns the venvkit configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch goruntime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// UserConfigPath returns the path of the user config file.
func UserConfigPath(opts LoadOptions) (string, error) {
	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// SearchPaths lists the config files considered by Load, in precedence order.
func SearchPaths(opts LoadOptions) ([]string, error) {
	if opts.ConfigFilePath != "" {
		return []string{opts.ConfigFilePath}, nil
	}

	userPath, err := UserConfigPath(opts)
	if err != nil {
		return nil, err
	}
	return []string{userPath, filepath.Join(opts.ProjectDir, LocalFileName)}, nil
}

// Resolve returns the config file Load would read, or "" when only the
// defaults apply.
func Resolve(opts LoadOptions) (string, error) {
	paths, err := SearchPaths(opts)
	if err != nil {
		return "", err
	}
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	if opts.ConfigFilePath != "" {
		return "", configError(opts.ConfigFilePath, fmt.Errorf("config file not found: %s", opts.ConfigFilePath),
			"Verify the file path is correct",
			"Use 'venvkit config show' to see the default configuration")
	}
	return "", nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("interpreters", defaults.Interpreters)
	v.SetDefault("venv_dir", defaults.VenvDir)
	v.SetDefault("requirements", defaults.Requirements)
	v.SetDefault("activation.runtime", defaults.Activation.Runtime)
	v.SetDefault("selection.max_attempts", defaults.Selection.MaxAttempts)
	v.SetDefault("ui.color", defaults.UI.Color)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.tui", defaults.UI.TUI)

	resolvedPath, err := Resolve(opts)
	if err != nil {
		return nil, "", err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, "", configError(resolvedPath, err,
				"Check that the file contains valid CUE syntax",
				"Verify the configuration values match the expected schema",
				"Run 'venvkit config init --force' to regenerate a valid file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func configError(path string, err error, suggestions ...string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestions(suggestions...).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var configMap map[string]any
	if err := cueutil.Decode(configSchema, "#Config", data, path, &configMap); err != nil {
		return err
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// WriteDefaultConfig writes the default config to path, creating parent
// directories. An existing file is kept unless force is set.
func WriteDefaultConfig(path string, force bool) (bool, error) {
	if !force && fileExists(path) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	content, err := GenerateCUE(DefaultConfig())
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) (string, error) {
	var sb strings.Builder

	sb.WriteString("// venvkit configuration file\n\n")

	sb.WriteString("interpreters: [\n")
	for _, e := range cfg.Interpreters {
		fmt.Fprintf(&sb, "\t{version: %q, path: %q},\n", e.Version, e.Path)
	}
	sb.WriteString("]\n\n")

	fmt.Fprintf(&sb, "venv_dir: %q\n", cfg.VenvDir)
	fmt.Fprintf(&sb, "requirements: %q\n", cfg.Requirements)

	sb.WriteString("\nactivation: {\n")
	fmt.Fprintf(&sb, "\truntime: %q\n", cfg.Activation.Runtime)
	sb.WriteString("}\n")

	sb.WriteString("\nselection: {\n")
	sb.WriteString("\t// 0 re-prompts until a valid version is entered\n")
	fmt.Fprintf(&sb, "\tmax_attempts: %d\n", cfg.Selection.MaxAttempts)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor: %v\n", cfg.UI.Color)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\ttui: %v\n", cfg.UI.TUI)
	sb.WriteString("}\n")

	formatted, err := format.Source([]byte(sb.String()))
	if err != nil {
		return "", fmt.Errorf("failed to format config: %w", err)
	}
	return string(formatted), nil
}
