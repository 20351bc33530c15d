// Package sqlite provides a persistent VectorIndex backed by SQLite.
//
// Vectors are stored L2-normalised as little-endian float32 BLOBs and
// queried by brute-force cosine similarity. All writes go through
// transactions in WAL mode, so a successful return means the data is
// durable. Ties on similarity score are broken by insertion order.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/intellirag/intellirag-cli/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// dimensionsKey is the index_meta key holding the embedding dimensionality.
const dimensionsKey = "dimensions"

// Index is a SQLite-backed vector index.
type Index struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewIndex opens (or creates) a vector index in the given data directory
// for vectors of the given dimensionality. Reopening an index created with
// a different dimensionality fails with domain.ErrDimensionMismatch.
func NewIndex(dataDir string, dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: dimensions must be positive, got %d",
			domain.ErrInvalidConfig, dimensions)
	}
	if dataDir == "" {
		return nil, fmt.Errorf("%w: vectorstore path is empty", domain.ErrInvalidConfig)
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w", domain.ErrIndexUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// WAL keeps readers unblocked during ingestion writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %w", domain.ErrIndexUnavailable, err)
	}

	idx := &Index{
		db:         db,
		path:       dbPath,
		dimensions: dimensions,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %w", domain.ErrIndexUnavailable, err)
	}

	if err := idx.checkDimensions(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// Dimensions returns the embedding dimensionality the index enforces.
func (x *Index) Dimensions() int {
	return x.dimensions
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// checkDimensions pins the dimensionality on first open and verifies it on
// every subsequent open.
func (x *Index) checkDimensions() error {
	var stored string
	row := x.db.QueryRow("SELECT value FROM index_meta WHERE key = ?", dimensionsKey)
	err := row.Scan(&stored)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = x.db.Exec(
			"INSERT INTO index_meta (key, value) VALUES (?, ?)",
			dimensionsKey, strconv.Itoa(x.dimensions))
		if err != nil {
			return fmt.Errorf("%w: recording dimensions: %w", domain.ErrIndexUnavailable, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("%w: reading dimensions: %w", domain.ErrIndexUnavailable, err)
	}

	dims, err := strconv.Atoi(stored)
	if err != nil {
		return fmt.Errorf("%w: corrupt dimensions value %q", domain.ErrIndexUnavailable, stored)
	}
	if dims != x.dimensions {
		return fmt.Errorf("%w: index has %d dimensions, configured for %d",
			domain.ErrDimensionMismatch, dims, x.dimensions)
	}
	return nil
}

// Upsert inserts or replaces vectors keyed by ID. Vectors are normalised
// before storage so queries reduce to dot products.
func (x *Index) Upsert(ctx context.Context, vectors []domain.IndexedVector) error {
	if len(vectors) == 0 {
		return nil
	}

	for _, v := range vectors {
		if len(v.Embedding) != x.dimensions {
			return fmt.Errorf("%w: vector %s has %d dimensions, index expects %d",
				domain.ErrDimensionMismatch, v.ID, len(v.Embedding), x.dimensions)
		}
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrIndexUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (id, embedding, content, content_hash, source_file, file_type, chunk_index)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			embedding = excluded.embedding,
			content = excluded.content,
			content_hash = excluded.content_hash,
			source_file = excluded.source_file,
			file_type = excluded.file_type,
			chunk_index = excluded.chunk_index
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %w", domain.ErrIndexUnavailable, err)
	}
	defer stmt.Close()

	for _, v := range vectors {
		blob := float32SliceToBytes(normalise(v.Embedding))
		if _, err := stmt.ExecContext(ctx, v.ID, blob, v.Text, v.ContentHash,
			v.Metadata.SourceFile, string(v.Metadata.FileType), v.Metadata.ChunkIndex); err != nil {
			return fmt.Errorf("%w: saving vector %s: %w", domain.ErrIndexUnavailable, v.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Exists reports whether an entry with the given ID is indexed.
func (x *Index) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	row := x.db.QueryRowContext(ctx, "SELECT 1 FROM vectors WHERE id = ?", id)
	if err := row.Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: checking existence: %w", domain.ErrIndexUnavailable, err)
	}
	return true, nil
}

// ContentHash returns the stored content hash for an ID.
func (x *Index) ContentHash(ctx context.Context, id string) (string, error) {
	var hash string
	row := x.db.QueryRowContext(ctx, "SELECT content_hash FROM vectors WHERE id = ?", id)
	if err := row.Scan(&hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("%w: reading content hash: %w", domain.ErrIndexUnavailable, err)
	}
	return hash, nil
}

// Query scans all stored vectors, scores them against the query embedding
// and returns the topK best hits in descending score order. Equal scores
// keep insertion order (rowid) because the sort is stable over a
// rowid-ordered scan.
func (x *Index) Query(ctx context.Context, embedding []float32, topK int) ([]driven.VectorHit, error) {
	if topK <= 0 {
		return nil, fmt.Errorf("%w: top_k must be positive, got %d", domain.ErrInvalidConfig, topK)
	}
	if len(embedding) != x.dimensions {
		return nil, fmt.Errorf("%w: query vector has %d dimensions, index expects %d",
			domain.ErrDimensionMismatch, len(embedding), x.dimensions)
	}

	query := normalise(embedding)

	rows, err := x.db.QueryContext(ctx, `
		SELECT id, embedding, content, source_file, file_type, chunk_index
		FROM vectors ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying vectors: %w", domain.ErrIndexUnavailable, err)
	}
	defer rows.Close()

	var hits []driven.VectorHit
	for rows.Next() {
		var (
			hit      driven.VectorHit
			blob     []byte
			fileType string
		)
		if err := rows.Scan(&hit.ID, &blob, &hit.Text,
			&hit.Metadata.SourceFile, &fileType, &hit.Metadata.ChunkIndex); err != nil {
			return nil, fmt.Errorf("%w: scanning vector: %w", domain.ErrIndexUnavailable, err)
		}
		hit.Metadata.FileType = domain.FileType(fileType)
		hit.Score = dot(bytesToFloat32Slice(blob), query)
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating vectors: %w", domain.ErrIndexUnavailable, err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if topK < len(hits) {
		hits = hits[:topK]
	}
	return hits, nil
}

// Count returns the number of indexed entries.
func (x *Index) Count(ctx context.Context) (int, error) {
	var count int
	row := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vectors")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting vectors: %w", domain.ErrIndexUnavailable, err)
	}
	return count, nil
}

// DeleteBySource removes all entries originating from a source file.
func (x *Index) DeleteBySource(ctx context.Context, sourceFile string) error {
	_, err := x.db.ExecContext(ctx, "DELETE FROM vectors WHERE source_file = ?", sourceFile)
	if err != nil {
		return fmt.Errorf("%w: deleting source %s: %w", domain.ErrIndexUnavailable, sourceFile, err)
	}
	return nil
}

// Reset removes all entries.
func (x *Index) Reset(ctx context.Context) error {
	_, err := x.db.ExecContext(ctx, "DELETE FROM vectors")
	if err != nil {
		return fmt.Errorf("%w: resetting index: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

// normalise returns the L2-normalised copy of v. Zero vectors are returned
// unchanged; they score 0 against everything.
func normalise(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)

	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

// dot computes the dot product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
