package driven

import (
	"context"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
)

// Loader extracts the text content of one document format.
// Each loader handles specific file types (e.g. PDF, DOCX).
type Loader interface {
	// FileTypes returns the file types this loader handles.
	FileTypes() []domain.FileType

	// Load reads the file at path and returns its extracted text as a
	// Document. Corrupt or unreadable files fail with domain.ErrExtraction.
	Load(ctx context.Context, path string) (*domain.Document, error)
}

// LoaderRegistry resolves a Loader for a given path.
type LoaderRegistry interface {
	// Resolve returns the loader for the path's file type.
	// Unknown extensions fail with domain.ErrUnsupportedFormat.
	Resolve(path string) (Loader, error)

	// SupportedTypes returns all file types with a registered loader.
	SupportedTypes() []domain.FileType
}
