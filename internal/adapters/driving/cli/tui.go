package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/intellirag/intellirag-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and query documents interactively",
	Long: `Opens a terminal UI for querying the indexed documents. Results can
be browsed with the arrow keys; Esc or Ctrl-C exits.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	count, err := retrievalService.Count(context.Background())
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	summary := fmt.Sprintf("%d chunks indexed", count)
	model := tui.New(retrievalService, answerService, defaultTopK, summary)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
