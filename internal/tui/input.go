// SPDX-License-Identifier: MPL-2.0

package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/venvkit/venvkit/internal/console"
)

const keyCtrlC = "ctrl+c"

// ErrCancelled is returned when the user leaves the prompt with esc or ctrl+c.
var ErrCancelled = errors.New("prompt cancelled")

type (
	// Prompter asks each question in its own Bubble Tea program.
	Prompter struct {
		in  io.Reader
		out io.Writer
	}

	inputModel struct {
		input     textinput.Model
		question  string
		result    string
		done      bool
		cancelled bool
		styles    inputStyles
	}

	inputStyles struct {
		tag  lipgloss.Style
		text lipgloss.Style
		help lipgloss.Style
	}
)

var _ console.Prompter = (*Prompter)(nil)

// NewPrompter creates a prompter reading keys from in and drawing on out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt implements console.Prompter.
func (p *Prompter) Prompt(ctx context.Context, question string) (string, error) {
	model := newInputModel(question)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("prompt canceled: %w", ctxErr)
		}
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := final.(*inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}
	return m.Result()
}

func newInputModel(question string) *inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	ti.Focus()

	return &inputModel{
		input:    ti,
		question: question,
		styles: inputStyles{
			tag:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
			text: lipgloss.NewStyle().Bold(true),
			help: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		},
	}
}

// Init implements tea.Model.
func (m *inputModel) Init() tea.Cmd {
	return m.input.Focus()
}

// Update implements tea.Model.
func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case keyCtrlC, "esc":
			m.done = true
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.result = m.input.Value()
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *inputModel) View() string {
	if m.done {
		return ""
	}

	lines := []string{
		m.styles.tag.Render(console.TagQuestion) + " " + m.styles.text.Render(m.question),
		m.input.View(),
		m.styles.help.Render("enter submit • esc cancel"),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Result returns the submitted answer, or ErrCancelled.
func (m *inputModel) Result() (string, error) {
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.result, nil
}
