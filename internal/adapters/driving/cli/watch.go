package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/intellirag/intellirag-cli/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Keep the index in sync with a directory",
	Long: `Performs an initial ingestion of the directory, then watches it for
changes. Created or modified documents are re-ingested; deleted documents
are removed from the index. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	ctx := context.Background()

	report, err := ingestService.IngestDir(ctx, dir)
	if err != nil {
		return fmt.Errorf("initial ingest failed: %w", err)
	}
	printReport(cmd, report)

	w, err := watcher.New(dir,
		func(path string) {
			if report, err := ingestService.IngestPaths(ctx, []string{path}); err != nil {
				cmd.Printf("Re-ingest of %s failed: %v\n", path, err)
			} else if report.ChunksCreated > 0 {
				cmd.Printf("Updated %s (%d chunks)\n", filepath.Base(path), report.ChunksCreated)
			}
		},
		func(path string) {
			if err := ingestService.RemoveSource(ctx, filepath.Base(path)); err != nil {
				cmd.Printf("Removal of %s failed: %v\n", path, err)
			} else {
				cmd.Printf("Removed %s from index\n", filepath.Base(path))
			}
		},
	)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	w.Start()
	defer w.Stop()

	cmd.Printf("Watching %s (Ctrl-C to stop)\n", dir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	cmd.Println("\nStopping.")
	return nil
}
