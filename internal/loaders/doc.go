// Package loaders provides implementations of the Loader interface for the
// supported document formats. Each loader knows how to extract text content
// from a specific file type.
//
// Loaders are registered with the Registry at startup and resolved by file
// extension during ingestion.
package loaders
