package domain

// DocumentFailure records a single document that could not be ingested.
type DocumentFailure struct {
	// SourceFile is the file that failed.
	SourceFile string

	// Reason is the error message.
	Reason string
}

// IngestReport aggregates the outcome of one ingestion run.
// Per-document failures are recorded here rather than aborting the batch.
type IngestReport struct {
	// DocumentsLoaded is the number of documents that were chunked and indexed.
	DocumentsLoaded int

	// DocumentsFailed is the number of documents that failed extraction.
	DocumentsFailed int

	// ChunksCreated is the number of chunks embedded and upserted.
	ChunksCreated int

	// ChunksSkipped is the number of chunks already present with an
	// identical content hash, skipped without re-embedding.
	ChunksSkipped int

	// Failures lists the failed source files with reasons.
	Failures []DocumentFailure
}

// Merge folds another report's counters and failures into this one.
func (r *IngestReport) Merge(other *IngestReport) {
	if other == nil {
		return
	}
	r.DocumentsLoaded += other.DocumentsLoaded
	r.DocumentsFailed += other.DocumentsFailed
	r.ChunksCreated += other.ChunksCreated
	r.ChunksSkipped += other.ChunksSkipped
	r.Failures = append(r.Failures, other.Failures...)
}
