// Package training rebuilds the graph-embedding model from the stored
// entity snapshot. A run builds the knowledge graph, samples random walks,
// trains a skip-gram model over the walk corpus, persists the resulting
// animal vectors and atomically publishes the model. A failed run never
// disturbs the previously published model or the stored vectors.
package training
