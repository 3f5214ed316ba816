package rdf2vec

import (
	"sort"

	"gonum.org/v1/gonum/blas/blas32"
)

// Model holds the trained node embeddings. It is immutable once returned
// from Train; concurrent readers never need synchronization. Out-of-
// vocabulary tokens simply have no vector, which downstream code treats as
// "no graph signal", not a fault.
type Model struct {
	dim     int
	tokens  []string
	index   map[string]int
	vectors []float32 // row-major, len(tokens) * dim
}

// Neighbor is a token with its cosine similarity to a query token.
type Neighbor struct {
	Token      string
	Similarity float32
}

// Dimension returns the embedding vector size.
func (m *Model) Dimension() int { return m.dim }

// VocabularySize returns the number of in-vocabulary tokens.
func (m *Model) VocabularySize() int { return len(m.tokens) }

// Tokens returns a copy of the vocabulary in training order.
func (m *Model) Tokens() []string {
	out := make([]string, len(m.tokens))
	copy(out, m.tokens)
	return out
}

// Vector returns a copy of the embedding for a token.
// The second return is false for out-of-vocabulary tokens.
func (m *Model) Vector(token string) ([]float32, bool) {
	i, ok := m.index[token]
	if !ok {
		return nil, false
	}
	out := make([]float32, m.dim)
	copy(out, m.row(i))
	return out, true
}

// Has reports whether the token is in the vocabulary.
func (m *Model) Has(token string) bool {
	_, ok := m.index[token]
	return ok
}

// Nearest returns up to k vocabulary tokens most similar to the given one,
// by cosine similarity, excluding the token itself. An out-of-vocabulary
// token yields an empty result.
func (m *Model) Nearest(token string, k int) []Neighbor {
	self, ok := m.index[token]
	if !ok || k < 1 {
		return nil
	}

	query := m.row(self)
	queryNorm := blas32.Nrm2(vec(query))
	if queryNorm == 0 {
		return nil
	}

	neighbors := make([]Neighbor, 0, len(m.tokens)-1)
	for i, other := range m.tokens {
		if i == self {
			continue
		}
		row := m.row(i)
		norm := blas32.Nrm2(vec(row))
		if norm == 0 {
			continue
		}
		sim := blas32.Dot(vec(query), vec(row)) / (queryNorm * norm)
		neighbors = append(neighbors, Neighbor{Token: other, Similarity: sim})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

func (m *Model) row(i int) []float32 {
	return m.vectors[i*m.dim : (i+1)*m.dim]
}

func vec(data []float32) blas32.Vector {
	return blas32.Vector{N: len(data), Inc: 1, Data: data}
}
