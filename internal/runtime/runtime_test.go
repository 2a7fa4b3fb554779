// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"errors"
	"testing"
)

func TestRuntimeType_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value   RuntimeType
		wantErr bool
	}{
		{RuntimeTypeNative, false},
		{RuntimeTypeVirtual, false},
		{"container", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("RuntimeType(%q).Validate() error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRuntimeType) {
				t.Errorf("error should wrap ErrInvalidRuntimeType, got: %v", err)
			}
		})
	}
}

func TestCommand_String(t *testing.T) {
	t.Parallel()

	cmd := Command{Path: "/usr/bin/python3.11", Args: []string{"-m", "venv", "my env"}}
	want := `/usr/bin/python3.11 -m venv "my env"`
	if got := cmd.String(); got != want {
		t.Errorf("Command.String() = %q, want %q", got, want)
	}
}
