// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
// detectSandboxFrom must not panic: sync.OnceValue re-panics on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the sandbox the current process runs in, cached after
// the first call. Flatpak is recognised by /.flatpak-info, Snap by SNAP_NAME.
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostSpawnFor returns the command and leading arguments that run a program
// on the host from inside the given sandbox. Both are empty for SandboxNone.
func HostSpawnFor(st SandboxType) (string, []string) {
	switch st {
	case SandboxFlatpak:
		return "flatpak-spawn", []string{"--host"}
	case SandboxSnap:
		return "snap", []string{"run", "--shell"}
	default:
		return "", nil
	}
}

func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// Flatpak takes precedence.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
