// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/pkg/types"
)

type (
	// Manager recreates and activates one virtual environment.
	Manager struct {
		fs        afero.Fs
		runner    runtime.Runner
		activator Activator
		reporter  *console.Reporter
		logger    *log.Logger
		layout    Layout
		workDir   string
		stdout    io.Writer
		stderr    io.Writer
	}

	// ManagerOptions configures a Manager.
	ManagerOptions struct {
		Fs        afero.Fs
		Runner    runtime.Runner
		Activator Activator
		Reporter  *console.Reporter
		Logger    *log.Logger
		Layout    Layout
		// WorkDir is the project directory subprocesses run in.
		WorkDir string
		// Stdout and Stderr receive the interpreter's own output.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewManager creates a Manager. A nil Fs means the OS filesystem.
func NewManager(opts ManagerOptions) *Manager {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Manager{
		fs:        fs,
		runner:    opts.Runner,
		activator: opts.Activator,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
		layout:    opts.Layout,
		workDir:   opts.WorkDir,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
	}
}

// Recreate removes the environment directory if present and creates a fresh
// one with `<interpreter> -m venv <dir>`. Removal is best-effort; creation
// failure is returned.
func (m *Manager) Recreate(ctx context.Context, interpreter types.FilesystemPath) error {
	dir := m.layout.Dir()

	exists, err := afero.Exists(m.fs, dir)
	if err != nil {
		m.logger.Debug("could not stat environment directory", "dir", dir, "err", err)
	}
	if exists {
		m.reporter.Info("Deleting the current virtual environment...")
		if err := m.fs.RemoveAll(dir); err != nil {
			m.logger.Warn("could not fully remove the environment directory", "dir", dir, "err", err)
		}
	}

	m.reporter.Info("Creating a new virtual environment...")
	cmd := runtime.Command{
		Path:   interpreter.String(),
		Args:   []string{"-m", "venv", dir},
		Dir:    m.workDir,
		Stdout: m.stdout,
		Stderr: m.stderr,
	}
	m.logger.Debug("running", "cmd", cmd.String())

	if err := m.runner.Run(ctx, cmd).Err(); err != nil {
		return issue.NewErrorContext().
			WithOperation("create virtual environment").
			WithResource(dir).
			WithIssue(issue.VenvCreationFailedId).
			WithSuggestion("Check that the interpreter ships the venv module").
			Wrap(err).
			BuildError()
	}
	return nil
}

// Activate runs the environment's activation entry point.
func (m *Manager) Activate(ctx context.Context) error {
	m.reporter.Info("Activating the virtual environment...")
	if err := m.activator.Activate(ctx, m.layout); err != nil {
		return issue.NewErrorContext().
			WithOperation("activate virtual environment").
			WithResource(m.layout.ActivateScript()).
			WithIssue(issue.ActivationFailedId).
			WithSuggestion("Run venvkit again to recreate the environment").
			Wrap(err).
			BuildError()
	}
	return nil
}
