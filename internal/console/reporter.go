// SPDX-License-Identifier: MPL-2.0

package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Status line tags.
const (
	TagInfo     = "[info]"
	TagWarning  = "[warning]"
	TagError    = "[error]"
	TagSuccess  = "[success]"
	TagQuestion = "[question]"
)

// Reporter writes tagged status lines.
type Reporter struct {
	out    io.Writer
	styles Styles
}

// NewReporter creates a reporter writing to w with styles detected for w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{out: w, styles: NewStyles(lipgloss.NewRenderer(w))}
}

// NewReporterWithStyles creates a reporter with explicit styles.
func NewReporterWithStyles(w io.Writer, styles Styles) *Reporter {
	return &Reporter{out: w, styles: styles}
}

// Info prints an "[info]" line.
func (r *Reporter) Info(format string, args ...any) {
	r.line(r.styles.Info, TagInfo, format, args...)
}

// Warning prints a "[warning]" line.
func (r *Reporter) Warning(format string, args ...any) {
	r.line(r.styles.Warning, TagWarning, format, args...)
}

// Error prints an "[error]" line.
func (r *Reporter) Error(format string, args ...any) {
	r.line(r.styles.Error, TagError, format, args...)
}

// Success prints a "[success]" line.
func (r *Reporter) Success(format string, args ...any) {
	r.line(r.styles.Success, TagSuccess, format, args...)
}

func (r *Reporter) line(style lipgloss.Style, tag, format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, "%s %s\n", style.Render(tag), fmt.Sprintf(format, args...))
}
