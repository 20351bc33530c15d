package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show vector store statistics",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	count, err := retrievalService.Count(context.Background())
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}

	cmd.Printf("Indexed chunks: %d\n", count)
	return nil
}
