// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"

	"github.com/venvkit/venvkit/internal/config"
	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/internal/termsignal"
	"github.com/venvkit/venvkit/internal/tui"
	"github.com/venvkit/venvkit/internal/venv"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer; every Cobra handler receives an App reference.
	App struct {
		Config       ConfigProvider
		Fs           afero.Fs
		Runner       runtime.Runner
		NewSignal    SignalFactory
		NewActivator ActivatorFactory
		Prompter     console.Prompter
		Getwd        func() (string, error)
		stdin        io.Reader
		stdout       io.Writer
		stderr       io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config       ConfigProvider
		Fs           afero.Fs
		Runner       runtime.Runner
		NewSignal    SignalFactory
		NewActivator ActivatorFactory
		// Prompter overrides the line or TUI prompter chosen from flags and config.
		Prompter console.Prompter
		Getwd    func() (string, error)
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// SignalFactory builds the colour signal for the bootstrap output.
	SignalFactory func(w io.Writer, enabled bool) termsignal.Signal

	// ActivatorFactory builds the activator for the configured runtime.
	ActivatorFactory func(rt runtime.RuntimeType, dir string, stdout, stderr io.Writer) (venv.Activator, error)
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Runner == nil {
		deps.Runner = runtime.NewNativeRuntime()
	}
	if deps.NewSignal == nil {
		deps.NewSignal = func(w io.Writer, enabled bool) termsignal.Signal {
			return termsignal.NewANSISignal(w, enabled)
		}
	}
	if deps.NewActivator == nil {
		deps.NewActivator = venv.NewActivator
	}
	if deps.Getwd == nil {
		deps.Getwd = os.Getwd
	}

	return &App{
		Config:       deps.Config,
		Fs:           deps.Fs,
		Runner:       deps.Runner,
		NewSignal:    deps.NewSignal,
		NewActivator: deps.NewActivator,
		Prompter:     deps.Prompter,
		Getwd:        deps.Getwd,
		stdin:        deps.Stdin,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
	}, nil
}

// projectDir resolves --dir against the working directory.
func (a *App) projectDir(dir string) (string, error) {
	if dir != "" && filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	wd, err := a.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return filepath.Join(wd, dir), nil
}

// loadConfig loads the configuration the flags point at.
func (a *App) loadConfig(ctx context.Context, flags *rootFlags) (*config.Config, string, error) {
	projectDir, err := a.projectDir(flags.dir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := a.Config.Load(ctx, flags.loadOptions(projectDir))
	if err != nil {
		return nil, projectDir, err
	}
	return cfg, projectDir, nil
}

// reporter builds a status reporter on stdout. Colour off forces plain tags.
func (a *App) reporter(color bool) *console.Reporter {
	return console.NewReporterWithStyles(a.stdout, a.styles(color))
}

func (a *App) styles(color bool) console.Styles {
	r := lipgloss.NewRenderer(a.stdout)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return console.NewStyles(r)
}

// prompter returns the injected prompter, or the TUI or line prompter.
func (a *App) prompter(useTUI, color bool) console.Prompter {
	switch {
	case a.Prompter != nil:
		return a.Prompter
	case useTUI:
		return tui.NewPrompter(a.stdin, a.stdout)
	default:
		return console.NewLinePrompterWithStyles(a.stdin, a.stdout, a.styles(color))
	}
}

// logger writes diagnostics to stderr.
func (a *App) logger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
