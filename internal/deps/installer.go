// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/spf13/afero"

	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/issue"
	"github.com/venvkit/venvkit/internal/runtime"
	"github.com/venvkit/venvkit/internal/venv"
)

const mebibyte = 1024 * 1024

type (
	// Report describes a completed install.
	Report struct {
		Before uint64
		After  uint64
	}

	// FreeSpaceFunc reports the bytes available on the volume holding path.
	FreeSpaceFunc func(ctx context.Context, path string) (uint64, error)

	// Installer installs a requirements manifest with the environment's pip.
	Installer struct {
		fs        afero.Fs
		runner    runtime.Runner
		reporter  *console.Reporter
		logger    *log.Logger
		layout    venv.Layout
		manifest  string
		workDir   string
		stdout    io.Writer
		stderr    io.Writer
		freeSpace FreeSpaceFunc
	}

	// InstallerOptions configures an Installer.
	InstallerOptions struct {
		Fs       afero.Fs
		Runner   runtime.Runner
		Reporter *console.Reporter
		Logger   *log.Logger
		Layout   venv.Layout
		// Manifest is the requirements file path, relative to WorkDir unless absolute.
		Manifest string
		WorkDir  string
		Stdout   io.Writer
		Stderr   io.Writer
		// FreeSpace defaults to a gopsutil disk usage probe.
		FreeSpace FreeSpaceFunc
	}
)

// Delta returns the bytes added by the install, clamped at zero.
func (r Report) Delta() uint64 {
	if r.After < r.Before {
		return 0
	}
	return r.After - r.Before
}

// DeltaMiB returns Delta in mebibytes.
func (r Report) DeltaMiB() float64 { return float64(r.Delta()) / mebibyte }

// TotalMiB returns the environment size after the install in mebibytes.
func (r Report) TotalMiB() float64 { return float64(r.After) / mebibyte }

// NewInstaller creates an Installer. A nil Fs means the OS filesystem.
func NewInstaller(opts InstallerOptions) *Installer {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	free := opts.FreeSpace
	if free == nil {
		free = diskFree
	}
	return &Installer{
		fs:        fs,
		runner:    opts.Runner,
		reporter:  opts.Reporter,
		logger:    opts.Logger,
		layout:    opts.Layout,
		manifest:  opts.Manifest,
		workDir:   opts.WorkDir,
		stdout:    opts.Stdout,
		stderr:    opts.Stderr,
		freeSpace: free,
	}
}

// ManifestPath returns the manifest path resolved against the work dir.
func (i *Installer) ManifestPath() string {
	if filepath.IsAbs(i.manifest) || i.workDir == "" {
		return i.manifest
	}
	return filepath.Join(i.workDir, i.manifest)
}

// Run applies decision. It returns a Report only when pip actually ran.
func (i *Installer) Run(ctx context.Context, decision Decision) (*Report, error) {
	if decision != Install {
		i.reporter.Info("Skipping the installation of packages from requirements.txt file...")
		return nil, nil
	}

	before, err := DirSize(i.fs, i.layout.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to measure environment: %w", err)
	}

	manifest := i.ManifestPath()
	exists, err := afero.Exists(i.fs, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to check %s: %w", manifest, err)
	}
	if !exists {
		i.reporter.Warning("The requirements file does not exist! Creating an empty requirements.txt file for you...")
		if err := afero.WriteFile(i.fs, manifest, nil, 0o644); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("create requirements file").
				WithResource(manifest).
				WithIssue(issue.PermissionDeniedId).
				Wrap(err).
				BuildError()
		}
		return nil, nil
	}

	content, err := afero.ReadFile(i.fs, manifest)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", manifest, err)
	}
	if strings.TrimSpace(string(content)) == "" {
		i.reporter.Warning("The requirements file is empty! No packages to install.")
		return nil, nil
	}

	i.reporter.Info("Installing packages from requirements.txt file...")
	cmd := runtime.Command{
		Path:   i.layout.Installer(),
		Args:   []string{"install", "-r", manifest},
		Dir:    i.workDir,
		Stdout: i.stdout,
		Stderr: i.stderr,
	}
	i.logger.Debug("running", "cmd", cmd.String())
	if err := i.runner.Run(ctx, cmd).Err(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("install packages").
			WithResource(manifest).
			WithIssue(issue.RequirementsInstallFailedId).
			WithSuggestion("Check the package names and version pins in the requirements file").
			Wrap(err).
			BuildError()
	}

	after, err := DirSize(i.fs, i.layout.Dir())
	if err != nil {
		return nil, fmt.Errorf("failed to measure environment: %w", err)
	}

	report := &Report{Before: before, After: after}
	i.reporter.Success("The packages were successfully installed and took up %.2f MB of space. (total: %.2f MB)",
		report.DeltaMiB(), report.TotalMiB())

	i.logger.Debug("environment size", "added", humanize.IBytes(report.Delta()), "total", humanize.IBytes(after))
	if free, err := i.freeSpace(ctx, i.layout.Dir()); err == nil {
		i.logger.Debug("free space left", "volume", humanize.IBytes(free))
	} else {
		i.logger.Debug("could not read free space", "err", err)
	}

	return report, nil
}

func diskFree(ctx context.Context, path string) (uint64, error) {
	usage, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}
