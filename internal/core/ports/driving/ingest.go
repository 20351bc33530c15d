package driving

import (
	"context"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// IngestService drives the load -> chunk -> embed -> index pipeline.
type IngestService interface {
	// IngestPaths ingests the given files. Per-document failures are
	// recorded in the report, never fatal to the batch; only pipeline-wide
	// failures (embedding provider down, index unreachable) return an error.
	IngestPaths(ctx context.Context, paths []string) (*domain.IngestReport, error)

	// IngestDir recursively ingests all supported files under dir.
	IngestDir(ctx context.Context, dir string) (*domain.IngestReport, error)

	// RemoveSource drops all indexed chunks that came from the given file,
	// identified by its base name.
	RemoveSource(ctx context.Context, sourceFile string) error

	// Reset removes all indexed entries.
	Reset(ctx context.Context) error
}
