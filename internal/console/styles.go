// SPDX-License-Identifier: MPL-2.0

package console

import "github.com/charmbracelet/lipgloss"

// Color palette - shared hex colors for consistent theming across all CLI output.
// These colors are designed for dark terminal backgrounds with good contrast.
const (
	// ColorPrimary is purple - used for titles, headers, and questions.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray - used for subtitles and de-emphasized content.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorSuccess is green - used for success states.
	ColorSuccess = lipgloss.Color("#10B981")

	// ColorError is red - used for errors and failures.
	ColorError = lipgloss.Color("#EF4444")

	// ColorWarning is amber - used for warnings.
	ColorWarning = lipgloss.Color("#F59E0B")

	// ColorHighlight is blue - used for informational tags and interactive elements.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

// Styles holds the tag styles used by Reporter and LinePrompter.
type Styles struct {
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Question lipgloss.Style
}

// NewStyles builds the tag styles for a renderer. The renderer decides whether
// colour is emitted at all, so tests writing to a buffer get plain tags.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Info:     r.NewStyle().Foreground(ColorHighlight),
		Warning:  r.NewStyle().Foreground(ColorWarning),
		Error:    r.NewStyle().Bold(true).Foreground(ColorError),
		Success:  r.NewStyle().Foreground(ColorSuccess),
		Question: r.NewStyle().Bold(true).Foreground(ColorPrimary),
	}
}
