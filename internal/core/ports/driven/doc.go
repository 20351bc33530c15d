// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): document loaders, embedding providers,
// the vector index and the LLM used for answer generation.
package driven
