// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/venvkit/venvkit/internal/bootstrap"
	"github.com/venvkit/venvkit/internal/config"
	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/deps"
	"github.com/venvkit/venvkit/internal/interpreter"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/termsignal"
	"github.com/venvkit/venvkit/internal/venv"
	"github.com/venvkit/venvkit/pkg/types"
)

// noTTYStyle is the glamour style used when colour is off.
const noTTYStyle = "notty"

// runBootstrap runs the whole workflow. The signal turns white once before any
// work and ends on exactly one of green or red, whatever the exit path.
func runBootstrap(ctx context.Context, app *App, flags *rootFlags) error {
	cfg, projectDir, cfgErr := app.loadConfig(ctx, flags)

	color := !flags.noColor && (cfg == nil || cfg.UI.Color)
	signal := app.NewSignal(app.stdout, color)
	reporter := app.reporter(color)

	signal.Set(termsignal.InProgress)

	verbose := flags.verbose || (cfg != nil && cfg.UI.Verbose)
	logger := app.logger(verbose)

	err := cfgErr
	if err == nil {
		var outcome *bootstrap.Outcome
		outcome, err = runWorkflow(ctx, app, flags, cfg, projectDir, reporter, logger, color)
		if err == nil {
			logger.Debug("environment ready", "version", outcome.Version, "interpreter", outcome.Interpreter, "decision", outcome.Decision)
		}
	}

	if err != nil {
		signal.Set(termsignal.Failure)
		reporter.Error("An unexpected error occurred: %s", err)
		if verbose {
			reportDetails(app, cfg, color, err)
		}
		return &ExitError{Code: types.ExitFailure, Err: err, Reported: true}
	}

	signal.Set(termsignal.Success)
	reporter.Success("Your virtual environment is ready! Exiting...")
	return nil
}

// runWorkflow assembles the workflow from the loaded configuration and runs it.
func runWorkflow(ctx context.Context, app *App, flags *rootFlags, cfg *config.Config, projectDir string,
	reporter *console.Reporter, logger *log.Logger, color bool,
) (*bootstrap.Outcome, error) {
	candidates, err := interpreter.FromTable(cfg.Table())
	if err != nil {
		return nil, fmt.Errorf("invalid interpreter table: %w", err)
	}

	venvDir, err := venvDirIn(projectDir, cfg.VenvDir)
	if err != nil {
		return nil, err
	}
	layout := venv.NewLayout(venvDir)
	activator, err := app.NewActivator(cfg.Activation.Runtime, projectDir, app.stdout, app.stderr)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select activation runtime").
			WithIssue(issue.InvalidActivationRuntimeId).
			Wrap(err).
			BuildError()
	}

	manager := venv.NewManager(venv.ManagerOptions{
		Fs:        app.Fs,
		Runner:    app.Runner,
		Activator: activator,
		Reporter:  reporter,
		Logger:    logger,
		Layout:    layout,
		WorkDir:   projectDir,
		Stdout:    app.stdout,
		Stderr:    app.stderr,
	})
	installer := deps.NewInstaller(deps.InstallerOptions{
		Fs:       app.Fs,
		Runner:   app.Runner,
		Reporter: reporter,
		Logger:   logger,
		Layout:   layout,
		Manifest: cfg.Requirements,
		WorkDir:  projectDir,
		Stdout:   app.stdout,
		Stderr:   app.stderr,
	})

	logger.Debug("bootstrapping", "project", projectDir, "venv", layout.Dir(), "runtime", cfg.Activation.Runtime)

	wf := &bootstrap.Workflow{
		Candidates:  candidates,
		Runner:      app.Runner,
		Prompter:    app.prompter(flags.tui || cfg.UI.TUI, color),
		Reporter:    reporter,
		Logger:      logger,
		Venv:        manager,
		Installer:   installer,
		MaxAttempts: cfg.Selection.MaxAttempts,
	}
	return wf.Run(ctx)
}

// venvDirIn joins rel onto projectDir. The environment directory is removed
// before every run, so it must lie strictly below the project directory.
func venvDirIn(projectDir, rel string) (string, error) {
	if filepath.Clean(rel) != "." && filepath.IsLocal(rel) {
		return filepath.Join(projectDir, rel), nil
	}
	return "", issue.NewErrorContext().
		WithOperation("resolve virtual environment directory").
		WithResource(rel).
		WithSuggestion(`Set venv_dir to a directory inside the project, such as ".venv"`).
		Wrap(&config.InvalidRelPathError{Field: "venv_dir", Reason: "must lie inside the project directory"}).
		BuildError()
}

// reportDetails prints the error chain and the matching catalog entry to stderr.
func reportDetails(app *App, cfg *config.Config, color bool, err error) {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		fmt.Fprintln(app.stderr, ae.Format(true))
	}

	style := noTTYStyle
	if color {
		style = string(config.ColorSchemeAuto)
		if cfg != nil {
			style = cfg.UI.ColorScheme.String()
		}
	}
	rendered, ok, rerr := issue.Describe(err, style)
	switch {
	case rerr != nil:
		fmt.Fprintln(app.stderr, VerboseStyle.Render("could not render issue details: "+rerr.Error()))
	case ok:
		fmt.Fprint(app.stderr, rendered)
	}
}
