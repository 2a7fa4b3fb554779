// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/deps"
	"github.com/venvkit/venvkit/internal/interpreter"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/internal/venv"
	"github.com/venvkit/venvkit/pkg/types"
)

type (
	// Outcome summarises a successful run.
	Outcome struct {
		Version     string
		Interpreter types.FilesystemPath
		Decision    deps.Decision
		// Report is nil unless pip ran.
		Report *deps.Report
	}

	// Workflow wires the setup steps together.
	Workflow struct {
		Candidates  []interpreter.Candidate
		Runner      runtime.Runner
		Prompter    console.Prompter
		Reporter    *console.Reporter
		Logger      *log.Logger
		Venv        *venv.Manager
		Installer   *deps.Installer
		MaxAttempts int
	}
)

// Run probes the interpreters, asks both questions, recreates and activates
// the environment, and installs the manifest when asked to.
func (w *Workflow) Run(ctx context.Context) (*Outcome, error) {
	probe := interpreter.Discover(ctx, w.Runner, w.Candidates, w.Logger)

	version, err := SelectVersion(ctx, w.Prompter, w.Reporter, probe, w.MaxAttempts)
	if err != nil {
		return nil, selectionError(err)
	}

	decision, err := AskInstall(ctx, w.Prompter)
	if err != nil {
		return nil, selectionError(err)
	}

	candidate, ok := probe.Resolve(version)
	if !ok {
		// Available only lists resolvable versions.
		return nil, ErrNoInterpreters
	}
	w.Logger.Debug("selected interpreter", "version", version, "label", candidate.Label, "path", candidate.Path)

	outcome := &Outcome{Version: version, Interpreter: candidate.Path, Decision: decision}

	if err := w.Venv.Recreate(ctx, candidate.Path); err != nil {
		return nil, err
	}
	if err := w.Venv.Activate(ctx); err != nil {
		return nil, err
	}

	report, err := w.Installer.Run(ctx, decision)
	if err != nil {
		return nil, err
	}
	outcome.Report = report

	return outcome, nil
}

func selectionError(err error) error {
	ctx := issue.NewErrorContext().WithOperation("select Python version")
	switch {
	case errors.Is(err, ErrNoInterpreters):
		ctx.WithIssue(issue.NoInterpreterFoundId).
			WithSuggestion("Run 'venvkit interpreters' to see what was probed")
	case errors.Is(err, ErrTooManyAttempts):
		ctx.WithIssue(issue.InvalidSelectionId)
	case errors.Is(err, console.ErrPromptClosed):
		ctx.WithIssue(issue.PromptClosedId)
	}
	return ctx.Wrap(err).BuildError()
}
