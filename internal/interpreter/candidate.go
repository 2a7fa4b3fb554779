// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/venvkit/venvkit/pkg/types"

	"golang.org/x/exp/slices"
	"golang.org/x/mod/semver"
)

var (
	// ErrInvalidCandidate is the sentinel error wrapped by InvalidCandidateError.
	ErrInvalidCandidate = errors.New("invalid interpreter candidate")
	// ErrDuplicateLabel is returned when two candidates share a version label.
	ErrDuplicateLabel = errors.New("duplicate interpreter version label")
)

type (
	// Candidate is an interpreter considered for use: a version label and the
	// path it is expected to be installed at.
	Candidate struct {
		Label string
		Path  types.FilesystemPath
	}

	// InvalidCandidateError is returned when a Candidate has an empty label or path.
	InvalidCandidateError struct {
		Candidate Candidate
		Reason    string
	}
)

// Validate returns an error if the label or the path is blank.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return &InvalidCandidateError{Candidate: c, Reason: "version label is empty"}
	}
	if err := c.Path.Validate(); err != nil {
		return &InvalidCandidateError{Candidate: c, Reason: err.Error()}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidCandidateError) Error() string {
	return fmt.Sprintf("invalid interpreter candidate %q: %s", e.Candidate.Label, e.Reason)
}

// Unwrap returns ErrInvalidCandidate for errors.Is() compatibility.
func (e *InvalidCandidateError) Unwrap() error { return ErrInvalidCandidate }

// NewCandidates validates the entries and returns them ordered by version
// label. Labels that are not version-like keep their relative order after the
// version-like ones.
func NewCandidates(entries []Candidate) ([]Candidate, error) {
	seen := make(map[string]struct{}, len(entries))
	for _, c := range entries {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[c.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, c.Label)
		}
		seen[c.Label] = struct{}{}
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, compareLabels)
	return sorted, nil
}

// FromTable builds ordered candidates from a label -> path table.
func FromTable(table map[string]string) ([]Candidate, error) {
	entries := make([]Candidate, 0, len(table))
	for label, path := range table {
		entries = append(entries, Candidate{Label: label, Path: types.FilesystemPath(path)})
	}
	// Map iteration order is random; fix it before the stable version sort.
	slices.SortFunc(entries, func(a, b Candidate) int { return strings.Compare(a.Label, b.Label) })
	return NewCandidates(entries)
}

func compareLabels(a, b Candidate) int {
	va, vb := "v"+a.Label, "v"+b.Label
	okA, okB := semver.IsValid(va), semver.IsValid(vb)
	switch {
	case okA && okB:
		return semver.Compare(va, vb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}
