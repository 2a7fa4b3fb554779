// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"slices"
	"testing"
)

func TestDetectSandboxFrom(t *testing.T) {
	t.Parallel()

	errNotExist := errors.New("not found")

	tests := []struct {
		name     string
		env      map[string]string
		flatpak  bool
		expected SandboxType
	}{
		{"no sandbox", nil, false, SandboxNone},
		{"snap", map[string]string{"SNAP_NAME": "venvkit"}, false, SandboxSnap},
		{"flatpak", nil, true, SandboxFlatpak},
		{"flatpak wins over snap", map[string]string{"SNAP_NAME": "venvkit"}, true, SandboxFlatpak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lookupEnv := func(key string) string { return tt.env[key] }
			stat := func(string) error {
				if tt.flatpak {
					return nil
				}
				return errNotExist
			}

			if got := detectSandboxFrom(lookupEnv, stat); got != tt.expected {
				t.Errorf("detectSandboxFrom() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestHostSpawnFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		st       SandboxType
		wantCmd  string
		wantArgs []string
	}{
		{SandboxNone, "", nil},
		{SandboxFlatpak, "flatpak-spawn", []string{"--host"}},
		{SandboxSnap, "snap", []string{"run", "--shell"}},
		{SandboxType("unknown"), "", nil},
	}

	for _, tt := range tests {
		cmd, args := HostSpawnFor(tt.st)
		if cmd != tt.wantCmd {
			t.Errorf("HostSpawnFor(%q) cmd = %q, want %q", tt.st, cmd, tt.wantCmd)
		}
		if !slices.Equal(args, tt.wantArgs) {
			t.Errorf("HostSpawnFor(%q) args = %v, want %v", tt.st, args, tt.wantArgs)
		}
	}
}

func TestDetectSandboxCaching(t *testing.T) {
	t.Parallel()

	if first, second := DetectSandbox(), DetectSandbox(); first != second {
		t.Errorf("DetectSandbox() not stable: %q then %q", first, second)
	}
}
