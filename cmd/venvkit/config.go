// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/venvkit/venvkit/internal/config"
)

// newConfigCommand creates the `venvkit config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App, flags *rootFlags) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage venvkit configuration",
		Long: `Manage venvkit configuration.

Configuration is stored in:
  - Linux: ~/.config/venvkit/config.cue
  - macOS: ~/Library/Application Support/venvkit/config.cue
  - Windows: %APPDATA%\venvkit\config.cue

A venvkit.cue file in the project directory is used when no user
configuration exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, flags)
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, flags, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, flags)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, flags *rootFlags) error {
	cfg, projectDir, err := app.loadConfig(ctx, flags)
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(flags.loadOptions(projectDir))
	if err != nil {
		return err
	}

	w := app.stdout
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)
	if resolved != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), resolved)
	} else {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s:\n", keyStyle.Render("interpreters"))
	for _, e := range cfg.Interpreters {
		fmt.Fprintf(w, "  - %s: %s\n", valueStyle.Render(e.Version), valueStyle.Render(e.Path))
	}
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("venv_dir"), valueStyle.Render(cfg.VenvDir))
	fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("requirements"), valueStyle.Render(cfg.Requirements))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("activation"))
	fmt.Fprintf(w, "  runtime: %s\n", valueStyle.Render(cfg.Activation.Runtime.String()))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("selection"))
	attempts := fmt.Sprintf("%d", cfg.Selection.MaxAttempts)
	if cfg.Selection.MaxAttempts == 0 {
		attempts += SubtitleStyle.Render(" (unbounded)")
	}
	fmt.Fprintf(w, "  max_attempts: %s\n", valueStyle.Render(attempts))

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", keyStyle.Render("ui"))
	printBool(w, "color", cfg.UI.Color)
	fmt.Fprintf(w, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	printBool(w, "verbose", cfg.UI.Verbose)
	printBool(w, "tui", cfg.UI.TUI)

	return nil
}

func printBool(w io.Writer, key string, value bool) {
	fmt.Fprintf(w, "  %s: %s\n", key, SuccessStyle.Render(fmt.Sprintf("%v", value)))
}

func initConfig(app *App, flags *rootFlags, force bool) error {
	path := flags.configPath
	if path == "" {
		var err error
		if path, err = config.UserConfigPath(config.LoadOptions{}); err != nil {
			return err
		}
	}

	written, err := config.WriteDefaultConfig(path, force)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	if !written {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s (use --force to overwrite)\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func showConfigPath(app *App, flags *rootFlags) error {
	projectDir, err := app.projectDir(flags.dir)
	if err != nil {
		return err
	}
	opts := flags.loadOptions(projectDir)

	paths, err := config.SearchPaths(opts)
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, "Search order:")
	for _, p := range paths {
		fmt.Fprintf(app.stdout, "  %s\n", p)
	}
	if resolved == "" {
		fmt.Fprintln(app.stdout, "In use: (defaults)")
	} else {
		fmt.Fprintf(app.stdout, "In use: %s\n", resolved)
	}
	return nil
}
