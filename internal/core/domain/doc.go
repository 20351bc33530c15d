// Package domain contains the core business entities and errors for the
// retrieval pipeline: documents, chunks, indexed vectors and retrieval
// results. It has no dependencies on adapters or infrastructure.
package domain
