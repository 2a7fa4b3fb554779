// SPDX-License-Identifier: MPL-2.0

package interpreter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/venvkit/venvkit/internal/runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

// VersionFlag is passed to each candidate to make it report its version.
const VersionFlag = "--version"

// ErrUnparseableVersion is returned by ParseVersion when the output carries no version token.
var ErrUnparseableVersion = errors.New("unparseable version output")

// ProbeResult maps each candidate label to its detected version string.
// A label with no entry is unavailable.
type ProbeResult struct {
	candidates []Candidate
	versions   map[string]string
}

// NewProbeResult builds a result from already-known versions. Labels missing
// from versions are unavailable.
func NewProbeResult(candidates []Candidate, versions map[string]string) *ProbeResult {
	p := &ProbeResult{
		candidates: slices.Clone(candidates),
		versions:   make(map[string]string, len(versions)),
	}
	for _, c := range candidates {
		if v, ok := versions[c.Label]; ok && v != "" {
			p.versions[c.Label] = v
		}
	}
	return p
}

// Discover probes every candidate with `<path> --version`. A probe that cannot
// start, exits non-zero, or prints no version token leaves its label
// unavailable; the failure is logged at debug level and never returned.
func Discover(ctx context.Context, runner runtime.Runner, candidates []Candidate, logger *log.Logger) *ProbeResult {
	versions := make(map[string]string, len(candidates))
	for _, c := range candidates {
		result := runner.Capture(ctx, runtime.Command{
			Path: c.Path.String(),
			Args: []string{VersionFlag},
		})
		if err := result.Err(); err != nil {
			logger.Debug("interpreter unavailable", "label", c.Label, "path", c.Path, "err", err)
			continue
		}

		version, err := ParseVersion(result.Output)
		if err != nil {
			logger.Debug("interpreter unavailable", "label", c.Label, "path", c.Path, "err", err)
			continue
		}

		logger.Debug("interpreter found", "label", c.Label, "path", c.Path, "version", version)
		versions[c.Label] = version
	}
	return NewProbeResult(candidates, versions)
}

// ParseVersion extracts the version token from `python --version` output and
// strips its separators: "Python 3.11.4" becomes "3114".
func ParseVersion(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) < 2 {
		return "", fmt.Errorf("%w: %q", ErrUnparseableVersion, strings.TrimSpace(output))
	}

	token := fields[1]
	if !unicode.IsDigit(rune(token[0])) {
		return "", fmt.Errorf("%w: %q", ErrUnparseableVersion, strings.TrimSpace(output))
	}
	return strings.ReplaceAll(token, ".", ""), nil
}

// Candidates returns the probed candidates in order.
func (p *ProbeResult) Candidates() []Candidate {
	return slices.Clone(p.candidates)
}

// Version returns the detected version for a label.
func (p *ProbeResult) Version(label string) (string, bool) {
	v, ok := p.versions[label]
	return v, ok
}

// Available lists the detected version strings in candidate order, without duplicates.
func (p *ProbeResult) Available() []string {
	available := make([]string, 0, len(p.versions))
	for _, c := range p.candidates {
		v, ok := p.versions[c.Label]
		if !ok || slices.Contains(available, v) {
			continue
		}
		available = append(available, v)
	}
	return available
}

// Resolve returns the first candidate whose detected version equals version.
func (p *ProbeResult) Resolve(version string) (Candidate, bool) {
	for _, c := range p.candidates {
		if v, ok := p.versions[c.Label]; ok && v == version {
			return c, true
		}
	}
	return Candidate{}, false
}
