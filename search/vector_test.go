package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosine(t *testing.T) {
	t.Run("identical vectors score 1", func(t *testing.T) {
		v := []float32{0.5, 0.2, 0.8}
		assert.InDelta(t, 1.0, Cosine(v, v), 1e-6)
	})

	t.Run("orthogonal vectors score 0", func(t *testing.T) {
		a := []float32{1, 0}
		b := []float32{0, 1}
		assert.InDelta(t, 0.0, Cosine(a, b), 1e-6)
	})

	t.Run("zero-norm operand scores exactly 0", func(t *testing.T) {
		a := []float32{0, 0, 0}
		b := []float32{1, 2, 3}
		assert.Equal(t, float32(0), Cosine(a, b))
		assert.Equal(t, float32(0), Cosine(b, a))
	})

	t.Run("mismatched lengths score 0", func(t *testing.T) {
		assert.Equal(t, float32(0), Cosine([]float32{1, 2}, []float32{1, 2, 3}))
	})

	t.Run("empty vectors score 0", func(t *testing.T) {
		assert.Equal(t, float32(0), Cosine(nil, nil))
		assert.Equal(t, float32(0), Cosine([]float32{}, []float32{}))
	})

	t.Run("opposite vectors score -1", func(t *testing.T) {
		a := []float32{1, 1}
		b := []float32{-1, -1}
		assert.InDelta(t, -1.0, Cosine(a, b), 1e-6)
	})
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), clamp01(-0.5))
	assert.Equal(t, float32(1), clamp01(1.5))
	assert.Equal(t, float32(0.42), clamp01(0.42))
}
