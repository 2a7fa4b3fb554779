// SPDX-License-Identifier: MPL-2.0

package venv

import (
	"path/filepath"
	goruntime "runtime"

	"github.com/venvkit/venvkit/pkg/platform"
)

// Layout resolves entry points inside a virtual environment directory.
type Layout struct {
	dir  string
	goos string
}

// NewLayout returns the layout of dir for the running OS.
func NewLayout(dir string) Layout {
	return NewLayoutFor(dir, goruntime.GOOS)
}

// NewLayoutFor returns the layout of dir as created on goos.
func NewLayoutFor(dir, goos string) Layout {
	return Layout{dir: dir, goos: goos}
}

// Dir returns the environment directory.
func (l Layout) Dir() string { return l.dir }

// BinDir returns the directory holding the environment's executables.
func (l Layout) BinDir() string {
	if l.goos == platform.Windows {
		return filepath.Join(l.dir, "Scripts")
	}
	return filepath.Join(l.dir, "bin")
}

// ActivateScript returns the activation entry point for the host shell.
func (l Layout) ActivateScript() string {
	if l.goos == platform.Windows {
		return filepath.Join(l.BinDir(), "activate.bat")
	}
	return filepath.Join(l.BinDir(), "activate")
}

// PosixActivateScript returns the POSIX shell activation script. The venv
// module writes it on every OS, Windows included.
func (l Layout) PosixActivateScript() string {
	return filepath.Join(l.BinDir(), "activate")
}

// Installer returns the package installer entry point.
func (l Layout) Installer() string {
	if l.goos == platform.Windows {
		return filepath.Join(l.BinDir(), "pip.exe")
	}
	return filepath.Join(l.BinDir(), "pip")
}
