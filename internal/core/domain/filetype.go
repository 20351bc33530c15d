package domain

import (
	"path/filepath"
	"strings"
)

// FileType identifies a supported document format.
type FileType string

// Supported document formats.
const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// IsValid returns true if the file type is recognised.
func (t FileType) IsValid() bool {
	switch t {
	case FileTypePDF, FileTypeDOCX, FileTypeTXT, FileTypeCSV, FileTypeXLSX:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t FileType) String() string {
	return string(t)
}

// Extension returns the file extension including the leading dot.
func (t FileType) Extension() string {
	return "." + string(t)
}

// FileTypeFromPath detects the file type from a path's extension.
// The second return value is false for unknown extensions.
func FileTypeFromPath(path string) (FileType, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	t := FileType(ext)
	return t, t.IsValid()
}
