package search

import (
	"math"

	"gonum.org/v1/gonum/blas/blas32"
)

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// or a zero-norm operand yield exactly 0, never NaN.
func Cosine(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	va := blas32.Vector{N: len(a), Inc: 1, Data: a}
	vb := blas32.Vector{N: len(b), Inc: 1, Data: b}

	na := blas32.Nrm2(va)
	nb := blas32.Nrm2(vb)
	if na == 0 || nb == 0 {
		return 0
	}

	sim := blas32.Dot(va, vb) / (na * nb)
	if math.IsNaN(float64(sim)) {
		return 0
	}
	return sim
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
