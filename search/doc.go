// Package search implements the hybrid ranking engine. A query is scored
// against every candidate with three signals: text-embedding cosine
// similarity, graph-embedding similarity derived from stored RDF2Vec-style
// vectors, and lexical keyword overlap. Adoption-type, category and
// geolocation filters narrow the candidate set before scoring, and
// adaptive weights pick the text/graph split per candidate.
package search
