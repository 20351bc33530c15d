package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/intellirag/intellirag-cli/internal/chunker"
	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driving"
	"github.com/intellirag/intellirag-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultBatchSize is the number of chunk texts sent to the embedding
// provider per call. A tuning knob, not a correctness constraint.
const DefaultBatchSize = 32

// IngestService drives documents through load -> chunk -> embed -> index.
//
// Failures are isolated per document: one corrupt file is recorded in the
// report and the rest of the batch proceeds. Embedding or index failures
// abort the run, since partial embedding with no index write serves no
// purpose.
type IngestService struct {
	registry  driven.LoaderRegistry
	splitter  *chunker.Chunker
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	batchSize int
}

// NewIngestService creates a new ingestion service.
// batchSize <= 0 selects DefaultBatchSize.
func NewIngestService(
	registry driven.LoaderRegistry,
	splitter *chunker.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	batchSize int,
) *IngestService {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &IngestService{
		registry:  registry,
		splitter:  splitter,
		embedder:  embedder,
		index:     index,
		batchSize: batchSize,
	}
}

// IngestPaths ingests the given files.
func (s *IngestService) IngestPaths(ctx context.Context, paths []string) (*domain.IngestReport, error) {
	logger.Section("Ingestion")
	logger.Info("Ingesting %d files (batch size %d)", len(paths), s.batchSize)
	defer logger.Elapsed("Ingestion")()

	// Fail before touching any file if the provider is down; a run that
	// loads everything and then cannot embed helps nobody.
	if err := s.embedder.Ping(ctx); err != nil {
		return nil, fmt.Errorf("embedding provider unavailable: %w", err)
	}

	report := &domain.IngestReport{}

	for _, path := range paths {
		// Cancellation is coarse-grained: between documents. Chunks
		// already upserted stay valid; a retried run converges because
		// upserts are idempotent.
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if err := s.ingestOne(ctx, path, report); err != nil {
			return report, err
		}
	}

	logger.Info("Ingestion done: %d loaded, %d failed, %d chunks created, %d skipped",
		report.DocumentsLoaded, report.DocumentsFailed, report.ChunksCreated, report.ChunksSkipped)
	return report, nil
}

// IngestDir recursively ingests all supported files under dir.
// Files with unsupported extensions are not considered part of the corpus
// and are silently skipped.
func (s *IngestService) IngestDir(ctx context.Context, dir string) (*domain.IngestReport, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := domain.FileTypeFromPath(path); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(paths)

	logger.Debug("Found %d supported files under %s", len(paths), dir)
	return s.IngestPaths(ctx, paths)
}

// RemoveSource drops all indexed chunks originating from sourceFile.
func (s *IngestService) RemoveSource(ctx context.Context, sourceFile string) error {
	logger.Debug("Removing indexed chunks for %s", sourceFile)
	return s.index.DeleteBySource(ctx, sourceFile)
}

// Reset removes all indexed entries.
func (s *IngestService) Reset(ctx context.Context) error {
	return s.index.Reset(ctx)
}

// ingestOne processes a single file. Extraction failures are recorded in
// the report; embedding and index failures are returned.
func (s *IngestService) ingestOne(ctx context.Context, path string, report *domain.IngestReport) error {
	loader, err := s.registry.Resolve(path)
	if err != nil {
		logger.Warn("Skipping %s: %v", path, err)
		recordFailure(report, filepath.Base(path), err)
		return nil
	}

	doc, err := loader.Load(ctx, path)
	if err != nil {
		logger.Warn("Failed to load %s: %v", path, err)
		recordFailure(report, filepath.Base(path), err)
		return nil
	}

	chunks := s.splitter.Split(doc)
	logger.Debug("%s: %d chunks", doc.SourceFile, len(chunks))

	// Re-ingestion dedup: a chunk whose ID exists with an unchanged
	// content hash needs no re-embedding. Changed content falls through
	// to upsert, which replaces in place.
	pending := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		hash := domain.ContentHash(chunk.Text)

		exists, err := s.index.Exists(ctx, chunk.ID)
		if err != nil {
			return fmt.Errorf("checking chunk %s: %w", chunk.ID, err)
		}
		if exists {
			stored, err := s.index.ContentHash(ctx, chunk.ID)
			if err == nil && stored == hash {
				report.ChunksSkipped++
				continue
			}
		}
		pending = append(pending, chunk)
	}

	if err := s.embedAndUpsert(ctx, pending, report); err != nil {
		return err
	}

	report.DocumentsLoaded++
	return nil
}

// embedAndUpsert embeds pending chunks in batches and writes them to the index.
func (s *IngestService) embedAndUpsert(ctx context.Context, pending []domain.Chunk, report *domain.IngestReport) error {
	for start := 0; start < len(pending); start += s.batchSize {
		end := start + s.batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Text
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch: %w", err)
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("%w: provider returned %d vectors for %d texts",
				domain.ErrEmbedding, len(embeddings), len(batch))
		}

		vectors := make([]domain.IndexedVector, len(batch))
		for i, chunk := range batch {
			vectors[i] = domain.IndexedVector{
				ID:          chunk.ID,
				Embedding:   embeddings[i],
				Text:        chunk.Text,
				Metadata:    chunk.Metadata,
				ContentHash: domain.ContentHash(chunk.Text),
			}
		}

		if err := s.index.Upsert(ctx, vectors); err != nil {
			return fmt.Errorf("upserting batch: %w", err)
		}
		report.ChunksCreated += len(batch)
	}
	return nil
}

func recordFailure(report *domain.IngestReport, sourceFile string, err error) {
	report.DocumentsFailed++
	report.Failures = append(report.Failures, domain.DocumentFailure{
		SourceFile: sourceFile,
		Reason:     err.Error(),
	})
}
