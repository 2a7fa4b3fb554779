// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/venvkit/venvkit/internal/console"
	"github.com/venvkit/venvkit/internal/deps"
	"github.com/venvkit/venvkit/internal/interpreter"
)

const (
	versionQuestion = "Which Python version do you want to use? (available: %s)"
	installQuestion = `Do you want to install packages from the requirements.txt file? (press Enter to say "yes" or type anything else to say "no")`
	invalidVersion  = "Invalid Python version! Please choose from the available versions above."
)

var (
	// ErrNoInterpreters is returned when no configured interpreter answered.
	ErrNoInterpreters = errors.New("no Python interpreter is available")
	// ErrTooManyAttempts is returned when the selection attempt limit is hit.
	ErrTooManyAttempts = errors.New("too many invalid Python versions entered")
)

// SelectVersion prompts until the trimmed answer matches an available
// version exactly. maxAttempts bounds the number of prompts; zero means no
// limit.
func SelectVersion(ctx context.Context, prompter console.Prompter, reporter *console.Reporter, probe *interpreter.ProbeResult, maxAttempts int) (string, error) {
	available := probe.Available()
	if len(available) == 0 {
		return "", ErrNoInterpreters
	}

	question := fmt.Sprintf(versionQuestion, strings.Join(available, ", "))
	for attempt := 1; ; attempt++ {
		answer, err := prompter.Prompt(ctx, question)
		if err != nil {
			return "", err
		}

		answer = strings.TrimSpace(answer)
		for _, v := range available {
			if answer == v {
				return v, nil
			}
		}

		reporter.Error(invalidVersion)
		if maxAttempts > 0 && attempt >= maxAttempts {
			return "", fmt.Errorf("%w (%d attempts)", ErrTooManyAttempts, attempt)
		}
	}
}

// DecideInstall maps the install answer to a decision: a blank answer means
// install.
func DecideInstall(answer string) deps.Decision {
	if strings.TrimSpace(answer) == "" {
		return deps.Install
	}
	return deps.Skip
}

// AskInstall prompts for the install decision.
func AskInstall(ctx context.Context, prompter console.Prompter) (deps.Decision, error) {
	answer, err := prompter.Prompt(ctx, installQuestion)
	if err != nil {
		return 0, err
	}
	return DecideInstall(answer), nil
}
