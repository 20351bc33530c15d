package loaders

import (
	"fmt"
	"sort"

	"github.com/intellirag/intellirag-cli/internal/core/domain"
	"github.com/intellirag/intellirag-cli/internal/core/ports/driven"
	"github.com/intellirag/intellirag-cli/internal/loaders/csv"
	"github.com/intellirag/intellirag-cli/internal/loaders/docx"
	"github.com/intellirag/intellirag-cli/internal/loaders/pdf"
	"github.com/intellirag/intellirag-cli/internal/loaders/plaintext"
	"github.com/intellirag/intellirag-cli/internal/loaders/xlsx"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps file types to their loaders.
type Registry struct {
	byType map[domain.FileType]driven.Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[domain.FileType]driven.Loader),
	}
}

// NewDefaultRegistry creates a registry with all built-in loaders:
// pdf, docx, txt, csv and xlsx.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(plaintext.New())
	r.Register(csv.New())
	r.Register(docx.New())
	r.Register(xlsx.New())
	r.Register(pdf.New())
	return r
}

// Register adds a loader for each file type it reports.
// A later registration for the same type replaces the earlier one.
func (r *Registry) Register(loader driven.Loader) {
	for _, t := range loader.FileTypes() {
		r.byType[t] = loader
	}
}

// Resolve returns the loader for the path's file type.
func (r *Registry) Resolve(path string) (driven.Loader, error) {
	t, ok := domain.FileTypeFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}

	loader, ok := r.byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: no loader registered for %s", domain.ErrUnsupportedFormat, t)
	}
	return loader, nil
}

// SupportedTypes returns all file types with a registered loader.
func (r *Registry) SupportedTypes() []domain.FileType {
	types := make([]domain.FileType, 0, len(r.byType))
	for t := range r.byType {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
