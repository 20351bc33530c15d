// Package plaintext loads plain text files.
package plaintext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text documents.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeTXT}
}

// Load reads the file and returns its content unchanged.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrExtraction, path, err)
	}

	return &domain.Document{
		SourceFile: filepath.Base(path),
		Path:       path,
		FileType:   domain.FileTypeTXT,
		Text:       string(data),
	}, nil
}
