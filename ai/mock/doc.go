// Package mock provides a deterministic in-memory ai.Embedder for tests.
// The same input text always produces the same vector, so similarity
// comparisons are stable across runs without a live embedding service.
package mock
