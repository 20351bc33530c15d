// Package chunker splits document text into fixed-size overlapping windows
// with stable, deterministic identity.
package chunker

import (
	"fmt"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Chunker splits document content into fixed-size chunks.
//
// Boundaries are character-based, not sentence or word aware. That trades
// semantic boundary quality for reproducibility: for a fixed (size, overlap)
// the chunk sequence is a pure function of the document text.
type Chunker struct {
	chunkSize int
	overlap   int
}

// New creates a chunker with the given window size and overlap.
// chunkSize must be positive and overlap must satisfy 0 <= overlap < chunkSize,
// otherwise the window would never advance. Invalid parameters fail with
// domain.ErrInvalidConfig.
func New(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be positive, got %d",
			domain.ErrInvalidConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size), got %d with chunk_size %d",
			domain.ErrInvalidConfig, overlap, chunkSize)
	}

	return &Chunker{
		chunkSize: chunkSize,
		overlap:   overlap,
	}, nil
}

// ChunkSize returns the configured window size in characters.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in characters.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split cuts the document text into ordered chunks.
//
// Each chunk is at most chunkSize characters and overlaps the previous chunk
// by exactly overlap characters; the final chunk may be shorter. Chunk IDs
// are derived from (source_file, chunk_index), so re-chunking an unchanged
// document yields identical IDs and text.
//
// An empty document produces no chunks. A document shorter than chunkSize
// produces a single chunk equal to the whole text.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	if doc == nil || doc.Text == "" {
		return nil
	}

	// Windows are counted in runes so multi-byte characters are never
	// split across chunk boundaries.
	text := []rune(doc.Text)
	textLen := len(text)
	step := c.chunkSize - c.overlap

	chunks := make([]domain.Chunk, 0, textLen/step+1)

	index := 0
	for start := 0; start < textLen; start += step {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.Chunk{
			ID:   domain.ChunkID(doc.SourceFile, index),
			Text: string(text[start:end]),
			Metadata: domain.ChunkMetadata{
				SourceFile: doc.SourceFile,
				FileType:   doc.FileType,
				ChunkIndex: index,
			},
		})
		index++

		// The last window reached the end of the text; a further step
		// would only re-emit a suffix of this chunk.
		if end == textLen {
			break
		}
	}

	return chunks
}
