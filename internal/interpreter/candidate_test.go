// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"testing"
)

func labels(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Label
	}
	return out
}

func TestNewCandidates_Order(t *testing.T) {
	t.Parallel()

	got, err := NewCandidates([]Candidate{
		{Label: "3.12", Path: "/usr/bin/python3.12"},
		{Label: "pypy", Path: "/usr/bin/pypy3"},
		{Label: "3.9", Path: "/usr/bin/python3.9"},
		{Label: "3.11", Path: "/usr/bin/python3.11"},
	})
	if err != nil {
		t.Fatalf("NewCandidates() error: %v", err)
	}

	want := []string{"3.9", "3.11", "3.12", "pypy"}
	for i, l := range labels(got) {
		if l != want[i] {
			t.Fatalf("order = %v, want %v", labels(got), want)
		}
	}
}

func TestNewCandidates_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Candidate
		wantErr error
	}{
		{"empty label", []Candidate{{Label: " ", Path: "/usr/bin/python3"}}, ErrInvalidCandidate},
		{"empty path", []Candidate{{Label: "3.11", Path: ""}}, ErrInvalidCandidate},
		{"duplicate label", []Candidate{
			{Label: "3.11", Path: "/a"},
			{Label: "3.11", Path: "/b"},
		}, ErrDuplicateLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCandidates(tt.entries)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewCandidates() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFromTable(t *testing.T) {
	t.Parallel()

	got, err := FromTable(map[string]string{
		"3.12": `C:\Program Files\Python312\python.exe`,
		"3.11": `C:\Program Files\Python311\python.exe`,
	})
	if err != nil {
		t.Fatalf("FromTable() error: %v", err)
	}
	if len(got) != 2 || got[0].Label != "3.11" || got[1].Label != "3.12" {
		t.Errorf("FromTable() = %v", got)
	}
}
