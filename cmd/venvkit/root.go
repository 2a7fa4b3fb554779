// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/venvkit/venvkit/internal/config"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlags holds the global flags of one command tree.
type rootFlags struct {
	configPath string
	verbose    bool
	tui        bool
	dir        string
	noColor    bool
}

// loadOptions maps the flags to config loading inputs.
func (f *rootFlags) loadOptions(projectDir string) config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: f.configPath, ProjectDir: projectDir}
}

// NewRootCommand builds the venvkit command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "venvkit",
		Short: "Recreate a project's Python virtual environment",
		Long: TitleStyle.Render("venvkit") + SubtitleStyle.Render(" - Recreate a project's Python virtual environment") + `

venvkit probes the configured Python interpreters, asks which version to
use, deletes and recreates the environment directory, activates it, and
optionally installs the packages listed in requirements.txt. The terminal
colour turns green when the environment is ready and red on failure.

` + SubtitleStyle.Render("Examples:") + `
  venvkit                   Recreate .venv in the current directory
  venvkit -C ./service      Recreate the environment of another project
  venvkit --tui             Ask the questions with the interactive prompt
  venvkit interpreters      Show which interpreters were found
  venvkit config show       Show current configuration`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBootstrap(cmd.Context(), app, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $HOME/.config/venvkit/config.cue)")
	pf.StringVarP(&flags.dir, "dir", "C", "", "project directory (default is the current directory)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable the colour signal and styled status tags")
	root.Flags().BoolVar(&flags.tui, "tui", false, "ask questions with the interactive prompt")

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	root.AddCommand(newInterpretersCommand(app, flags))
	root.AddCommand(newConfigCommand(app, flags))
	root.AddCommand(newCompletionCommand())

	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(types.ExitFailure))
	}

	// fang overrides root.Version, so the version goes through fang.WithVersion.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(int(types.ExitFailure))
	}
}

// handleError renders errors that no command printed itself.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Reported {
		return
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fang.DefaultErrorHandler(w, styles, errors.New(formatErrorForDisplay(err, false)))
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
