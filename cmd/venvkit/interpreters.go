// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/venvkit/venvkit/internal/interpreter"
)

const unavailableLabel = "unavailable"

// newInterpretersCommand creates the `venvkit interpreters` command.
func newInterpretersCommand(app *App, flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "interpreters",
		Short: "Probe the configured Python interpreters",
		Long: `Run '<path> --version' for every configured interpreter and print what
was detected. Versions are shown the way the version prompt expects them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listInterpreters(cmd.Context(), app, flags)
		},
	}
}

func listInterpreters(ctx context.Context, app *App, flags *rootFlags) error {
	cfg, _, err := app.loadConfig(ctx, flags)
	if err != nil {
		return err
	}

	candidates, err := interpreter.FromTable(cfg.Table())
	if err != nil {
		return fmt.Errorf("invalid interpreter table: %w", err)
	}

	probe := interpreter.Discover(ctx, app.Runner, candidates, app.logger(flags.verbose || cfg.UI.Verbose))
	fmt.Fprintln(app.stdout, renderProbeTable(probe))

	if len(probe.Available()) == 0 {
		fmt.Fprintln(app.stdout, WarningStyle.Render("No interpreter answered --version."))
	}
	return nil
}

// renderProbeTable lays the probe out as label, path, and detected version.
func renderProbeTable(probe *interpreter.ProbeResult) string {
	rows := make([][]string, 0, len(probe.Candidates()))
	for _, c := range probe.Candidates() {
		version, ok := probe.Version(c.Label)
		if !ok {
			version = unavailableLabel
		}
		rows = append(rows, []string{c.Label, c.Path.String(), version})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtitleStyle).
		Headers("LABEL", "PATH", "VERSION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TitleStyle.Padding(0, 1)
			case col == 2 && row < len(rows) && rows[row][col] == unavailableLabel:
				return ErrorStyle.Padding(0, 1)
			case col == 2:
				return SuccessStyle.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		}).
		String()
}
