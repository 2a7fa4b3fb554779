// SPDX-License-Identifier: MPL-2.0

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrPromptClosed is returned when the input ends before an answer was given.
var ErrPromptClosed = errors.New("input closed before an answer was given")

type (
	// Prompter asks a question and returns the raw answer.
	Prompter interface {
		Prompt(ctx context.Context, question string) (string, error)
	}

	// PromptFunc adapts a function to the Prompter interface.
	PromptFunc func(ctx context.Context, question string) (string, error)

	// LinePrompter reads one line per question from an input stream.
	// It is not safe for concurrent use. A Prompt cancelled through its
	// context leaves a read pending on the input, so every later Prompt on
	// the same LinePrompter fails with ErrPromptClosed.
	LinePrompter struct {
		in        *bufio.Reader
		out       io.Writer
		styles    Styles
		abandoned bool
	}

	lineResult struct {
		text string
		err  error
	}
)

// Prompt calls f(ctx, question).
func (f PromptFunc) Prompt(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// NewLinePrompter creates a prompter reading from in and writing questions to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return NewLinePrompterWithStyles(in, out, NewStyles(lipgloss.NewRenderer(out)))
}

// NewLinePrompterWithStyles creates a line prompter with explicit styles.
func NewLinePrompterWithStyles(in io.Reader, out io.Writer, styles Styles) *LinePrompter {
	return &LinePrompter{
		in:     bufio.NewReader(in),
		out:    out,
		styles: styles,
	}
}

// Prompt prints "[question] <question>: " on a fresh line and reads the answer
// up to the newline. The trailing line ending is removed; other whitespace is
// left for the caller to interpret.
func (p *LinePrompter) Prompt(ctx context.Context, question string) (string, error) {
	if p.abandoned {
		return "", fmt.Errorf("%w: an earlier prompt was cancelled mid-read", ErrPromptClosed)
	}
	if _, err := fmt.Fprintf(p.out, "\n%s %s: ", p.styles.Question.Render(TagQuestion), question); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	// ReadString cannot be interrupted, so the read runs on its own goroutine
	// and the prompt returns as soon as ctx is cancelled.
	ch := make(chan lineResult, 1)
	go func() {
		text, err := p.in.ReadString('\n')
		ch <- lineResult{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		p.abandoned = true
		return "", fmt.Errorf("prompt canceled: %w", ctx.Err())
	case res := <-ch:
		text := strings.TrimRight(res.text, "\r\n")
		if res.err != nil {
			if errors.Is(res.err, io.EOF) {
				if text == "" {
					return "", ErrPromptClosed
				}
				return text, nil
			}
			return "", fmt.Errorf("failed to read answer: %w", res.err)
		}
		return text, nil
	}
}
