// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"context"
	"sync"

	"github.com/venvkit/venvkit/internal/console"
)

// Prompter replays scripted answers in order and records every question.
// Once the answers run out it returns console.ErrPromptClosed.
type Prompter struct {
	mu        sync.Mutex
	answers   []string
	questions []string
}

// NewPrompter creates a prompter that will give the answers in order.
func NewPrompter(answers ...string) *Prompter {
	return &Prompter{answers: answers}
}

// Prompt implements console.Prompter.
func (p *Prompter) Prompt(_ context.Context, question string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.questions = append(p.questions, question)
	if len(p.answers) == 0 {
		return "", console.ErrPromptClosed
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// Questions returns every question asked so far.
func (p *Prompter) Questions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.questions...)
}
