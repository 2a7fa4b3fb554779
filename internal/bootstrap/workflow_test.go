// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/deps"
	"github.com/venvkit/venvkit/internal/interpreter"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/internal/testutil"
	"github.com/venvkit/venvkit/internal/venv"
	"github.com/venvkit/venvkit/pkg/platform"
	"github.com/venvkit/venvkit/pkg/types"
)

const (
	py311 = "/usr/bin/python3.11"
	py312 = "/usr/bin/python3.12"
)

type countingActivator struct {
	calls int
	err   error
}

func (a *countingActivator) Activate(context.Context, venv.Layout) error {
	a.calls++
	return a.err
}

type workflowFixture struct {
	fs        afero.Fs
	runner    *testutil.Runner
	prompter  *testutil.Prompter
	activator *countingActivator
	out       *bytes.Buffer
	layout    venv.Layout
	workflow  *Workflow
}

// fakePython answers --version with version and materialises the
// environment on `-m venv`, exiting with venvExit.
func fakePython(fs afero.Fs, version string, venvExit types.ExitCode) testutil.Handler {
	return func(cmd runtime.Command) *runtime.Result {
		if len(cmd.Args) == 1 && cmd.Args[0] == interpreter.VersionFlag {
			return &runtime.Result{Output: "Python " + version + "\n"}
		}
		if venvExit != types.ExitSuccess {
			return runtime.NewExitCodeResult(venvExit)
		}
		_ = afero.WriteFile(fs, filepath.Join(cmd.Args[2], "bin", "python"), make([]byte, 64), 0o755)
		return runtime.NewSuccessResult()
	}
}

func newWorkflowFixture(t *testing.T, answers ...string) *workflowFixture {
	t.Helper()

	f := &workflowFixture{
		fs:        afero.NewMemMapFs(),
		runner:    testutil.NewRunner(),
		prompter:  testutil.NewPrompter(answers...),
		activator: &countingActivator{},
		out:       &bytes.Buffer{},
		layout:    venv.NewLayoutFor("/proj/.venv", platform.Linux),
	}

	candidates, err := interpreter.FromTable(map[string]string{"3.11": py311, "3.12": py312})
	if err != nil {
		t.Fatal(err)
	}

	reporter := console.NewReporter(f.out)
	logger := log.New(io.Discard)
	f.workflow = &Workflow{
		Candidates: candidates,
		Runner:     f.runner,
		Prompter:   f.prompter,
		Reporter:   reporter,
		Logger:     logger,
		Venv: venv.NewManager(venv.ManagerOptions{
			Fs:        f.fs,
			Runner:    f.runner,
			Activator: f.activator,
			Reporter:  reporter,
			Logger:    logger,
			Layout:    f.layout,
			WorkDir:   "/proj",
		}),
		Installer: deps.NewInstaller(deps.InstallerOptions{
			Fs:        f.fs,
			Runner:    f.runner,
			Reporter:  reporter,
			Logger:    logger,
			Layout:    f.layout,
			Manifest:  "requirements.txt",
			WorkDir:   "/proj",
			FreeSpace: func(context.Context, string) (uint64, error) { return 0, nil },
		}),
	}
	return f
}

func TestWorkflow_SelectAndDecline(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3114", "n")
	f.runner.On(py311, fakePython(f.fs, "3.11.4", types.ExitSuccess))

	outcome, err := f.workflow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if outcome.Version != "3114" || outcome.Interpreter != py311 || outcome.Decision != deps.Skip || outcome.Report != nil {
		t.Errorf("outcome = %+v", outcome)
	}
	if f.activator.calls != 1 {
		t.Errorf("activator called %d times, want 1", f.activator.calls)
	}
	if n := len(f.runner.CallsTo(f.layout.Installer())); n != 0 {
		t.Errorf("pip called %d times, want 0", n)
	}

	want := "[info] Creating a new virtual environment...\n" +
		"[info] Activating the virtual environment...\n" +
		"[info] Skipping the installation of packages from requirements.txt file...\n"
	if f.out.String() != want {
		t.Errorf("output = %q, want %q", f.out.String(), want)
	}
}

func TestWorkflow_InstallsManifest(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3121", "")
	f.runner.On(py311, fakePython(f.fs, "3.11.4", types.ExitSuccess))
	f.runner.On(py312, fakePython(f.fs, "3.12.1", types.ExitSuccess))
	f.runner.OnOutput(f.layout.Installer(), "")
	if err := afero.WriteFile(f.fs, "/proj/requirements.txt", []byte("rich\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome, err := f.workflow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Interpreter != py312 || outcome.Decision != deps.Install {
		t.Errorf("outcome = %+v", outcome)
	}
	if outcome.Report == nil {
		t.Fatal("outcome should carry an install report")
	}
	if n := len(f.runner.CallsTo(f.layout.Installer())); n != 1 {
		t.Errorf("pip called %d times, want 1", n)
	}
}

func TestWorkflow_CreationFailureStopsEarly(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3114", "")
	f.runner.On(py311, fakePython(f.fs, "3.11.4", types.ExitFailure))

	_, err := f.workflow.Run(context.Background())
	if !errors.Is(err, runtime.ErrNonZeroExit) {
		t.Fatalf("Run() error = %v, want ErrNonZeroExit", err)
	}
	if f.activator.calls != 0 {
		t.Errorf("activator called %d times after a failed creation", f.activator.calls)
	}
	if n := len(f.runner.CallsTo(f.layout.Installer())); n != 0 {
		t.Errorf("pip called %d times after a failed creation", n)
	}
}

func TestWorkflow_ActivationFailureSkipsInstall(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3114", "")
	f.runner.On(py311, fakePython(f.fs, "3.11.4", types.ExitSuccess))
	f.activator.err = errors.New("no shell")

	_, err := f.workflow.Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail when activation fails")
	}
	if n := len(f.runner.CallsTo(f.layout.Installer())); n != 0 {
		t.Errorf("pip called %d times after a failed activation", n)
	}
}

func TestWorkflow_NoInterpreters(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3114", "")

	_, err := f.workflow.Run(context.Background())
	if !errors.Is(err, ErrNoInterpreters) {
		t.Fatalf("Run() error = %v, want ErrNoInterpreters", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.IssueID != issue.NoInterpreterFoundId {
		t.Errorf("error should carry NoInterpreterFoundId, got %v", err)
	}
	if n := len(f.prompter.Questions()); n != 0 {
		t.Errorf("prompted %d times, want 0", n)
	}
	if exists, _ := afero.Exists(f.fs, "/proj/.venv"); exists {
		t.Error("no environment should be created")
	}
}

func TestWorkflow_DuplicateVersionUsesFirstCandidate(t *testing.T) {
	t.Parallel()

	f := newWorkflowFixture(t, "3114", "n")
	f.runner.On(py311, fakePython(f.fs, "3.11.4", types.ExitSuccess))
	f.runner.On(py312, fakePython(f.fs, "3.11.4", types.ExitSuccess))

	outcome, err := f.workflow.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if outcome.Interpreter != py311 {
		t.Errorf("Interpreter = %q, want the first candidate %q", outcome.Interpreter, py311)
	}
	if n := len(f.runner.CallsTo(py312)); n != 1 {
		t.Errorf("second candidate called %d times, want only its probe", n)
	}
}
