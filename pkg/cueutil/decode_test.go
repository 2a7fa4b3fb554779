// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"
)

const testSchema = `
#Config: close({
	name?:  string & !=""
	count?: int & >=0
	items?: [...{id: string}]
})
`

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		data        string
		wantErr     string
		wantEntries int
	}{
		{name: "empty file", data: ``},
		{name: "all fields", data: "name: \"x\"\ncount: 2\nitems: [{id: \"a\"}]\n", wantEntries: 3},
		{name: "negative count", data: `count: -1`, wantErr: "count"},
		{name: "unknown field", data: `colour: true`, wantErr: "colour"},
		{name: "wrong type in list", data: `items: [{id: 3}]`, wantErr: "items[0].id"},
		{name: "syntax error", data: `name: "unterminated`, wantErr: "test.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out map[string]any
			err := Decode(testSchema, "#Config", []byte(tt.data), "test.cue", &out)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Decode() should fail for %q", tt.data)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Decode() error = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(out) != tt.wantEntries {
				t.Errorf("decoded %d entries, want %d: %v", len(out), tt.wantEntries, out)
			}
		})
	}
}

func TestDecode_FileTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: \"" + strings.Repeat("x", int(DefaultMaxFileSize)) + "\"")
	var out map[string]any
	if err := Decode(testSchema, "#Config", data, "big.cue", &out); err == nil {
		t.Fatal("Decode() should reject oversized files")
	}
}
