package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"
)

// Document represents a loaded input file with its extracted text.
// Documents are ephemeral: produced by a Loader, consumed by the Chunker,
// never persisted as a whole.
type Document struct {
	// SourceFile is the base name of the originating file.
	SourceFile string

	// Path is the full filesystem path the document was loaded from.
	Path string

	// FileType is the detected format (pdf, docx, txt, csv, xlsx).
	FileType FileType

	// Text is the full extracted text content before chunking.
	Text string
}

// ChunkMetadata identifies where a chunk came from.
type ChunkMetadata struct {
	// SourceFile is the base name of the originating file.
	SourceFile string `json:"source_file"`

	// FileType is the format of the originating file.
	FileType FileType `json:"file_type"`

	// ChunkIndex is the 0-based position among chunks from the same file.
	ChunkIndex int `json:"chunk_index"`
}

// Chunk is the atomic retrievable unit: a bounded slice of a document's
// text with stable identity. Chunks are immutable once created.
type Chunk struct {
	// ID is a deterministic identifier derived from (source_file, chunk_index).
	// Re-ingesting an unchanged file yields identical IDs, which is what
	// makes upserts idempotent.
	ID string

	// Text is the chunk content, at most chunk_size characters.
	Text string

	// Metadata identifies the chunk's origin.
	Metadata ChunkMetadata
}

// IndexedVector is the (id, embedding, text, metadata) tuple persisted in
// the vector index. Ownership transfers to the index on upsert.
type IndexedVector struct {
	ID        string
	Embedding []float32
	Text      string
	Metadata  ChunkMetadata

	// ContentHash is a digest of Text, used to skip re-embedding
	// unchanged chunks on re-ingestion.
	ContentHash string
}

// chunkNamespace scopes chunk identity so IDs cannot collide with UUIDs
// minted for any other purpose.
const chunkNamespace = "intellirag:chunk:"

// ChunkID derives the stable chunk identifier from the source file name and
// the chunk's 0-based index. The derivation is a UUIDv5 over a fixed
// namespace, so repeated runs with the same inputs produce the same ID.
func ChunkID(sourceFile string, chunkIndex int) string {
	name := chunkNamespace + sourceFile + ":" + strconv.Itoa(chunkIndex)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// ContentHash returns the hex-encoded SHA-256 digest of the given text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
