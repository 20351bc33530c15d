// Package csv loads CSV files as text, one "header: value" pair per line.
package csv

import (
	"context"
	stdcsv "encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles CSV documents.
type Loader struct{}

// New creates a new CSV loader.
func New() *Loader {
	return &Loader{}
}

// FileTypes returns the file types this loader handles.
func (l *Loader) FileTypes() []domain.FileType {
	return []domain.FileType{domain.FileTypeCSV}
}

// Load parses the CSV and renders each record as "header: value" pairs,
// records separated by blank lines. The first record is treated as the
// header row.
func (l *Loader) Load(_ context.Context, path string) (*domain.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", domain.ErrExtraction, path, err)
	}
	defer f.Close()

	reader := stdcsv.NewReader(f)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrExtraction, path, err)
	}

	var b strings.Builder
	if len(records) > 0 {
		header := records[0]
		for _, record := range records[1:] {
			for i, field := range record {
				name := fmt.Sprintf("column_%d", i+1)
				if i < len(header) {
					name = header[i]
				}
				b.WriteString(name)
				b.WriteString(": ")
				b.WriteString(field)
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	return &domain.Document{
		SourceFile: filepath.Base(path),
		Path:       path,
		FileType:   domain.FileTypeCSV,
		Text:       strings.TrimSuffix(b.String(), "\n"),
	}, nil
}
