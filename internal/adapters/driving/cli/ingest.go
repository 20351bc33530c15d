package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path...]",
	Short: "Index documents into the vector store",
	Long: `Loads the given files or directories, splits them into chunks, embeds
each chunk and stores the result in the local vector store. Directories are
scanned recursively for supported formats (pdf, docx, txt, csv, xlsx).

Re-running ingest over unchanged files is cheap: chunks whose content has
not changed are skipped without re-embedding.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	ctx := context.Background()
	total := &domain.IngestReport{}

	for _, path := range args {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot access %s: %w", path, err)
		}

		var report *domain.IngestReport
		if info.IsDir() {
			report, err = ingestService.IngestDir(ctx, path)
		} else {
			report, err = ingestService.IngestPaths(ctx, []string{path})
		}
		if err != nil {
			return fmt.Errorf("ingest failed: %w", err)
		}
		total.Merge(report)
	}

	printReport(cmd, total)
	return nil
}

func printReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Ingested %d documents (%d chunks created, %d unchanged).\n",
		report.DocumentsLoaded, report.ChunksCreated, report.ChunksSkipped)

	if report.DocumentsFailed > 0 {
		cmd.Printf("%d documents failed:\n", report.DocumentsFailed)
		for _, f := range report.Failures {
			cmd.Printf("  %s: %s\n", f.SourceFile, f.Reason)
		}
	}
}
