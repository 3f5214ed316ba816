package graph

import (
	"context"
	"strings"
	"testing"

	"github.com/shelterly/pawmatch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walkGraph() *Graph {
	users := []*core.User{
		{ID: "u1", Name: "Ana", Location: &core.GeoPoint{Lat: 44.4268, Lon: 26.1025, City: "bucuresti"}},
	}
	animals := []*core.Animal{
		{ID: "a1", OwnerID: "u1", Name: "Luna", Species: "Pisica", Description: "pisica blanda"},
		{ID: "a2", OwnerID: "u1", Name: "Rex", Species: "Caine", Description: "caine energic"},
	}
	return Build(animals, users)
}

func TestWalkerOptionValidation(t *testing.T) {
	_, err := NewWalker(WithWalkLength(0))
	assert.ErrorIs(t, err, ErrInvalidWalkLength)

	_, err = NewWalker(WithWalksPerNode(0))
	assert.ErrorIs(t, err, ErrInvalidWalksPerNode)
}

func TestWalks(t *testing.T) {
	g := walkGraph()
	walker, err := NewWalker(WithSeed(1), WithWalkLength(8), WithWalksPerNode(10))
	require.NoError(t, err)

	walks, err := walker.Walks(context.Background(), g)
	require.NoError(t, err)

	t.Run("walk count is walksPerNode times animal nodes", func(t *testing.T) {
		assert.Len(t, walks, 2*10)
	})

	t.Run("every walk starts at an animal node and respects the length bound", func(t *testing.T) {
		for _, walk := range walks {
			require.NotEmpty(t, walk)
			_, isAnimal := AnimalIDFromKey(walk[0])
			assert.True(t, isAnimal, "walk starts at %q", walk[0])
			assert.LessOrEqual(t, len(walk), 8)
		}
	})

	t.Run("literals terminate walks", func(t *testing.T) {
		literals := map[string]bool{
			"Luna": true, "Rex": true, "pisica": true, "caine": true,
			"pisica blanda": true, "caine energic": true,
			"Ana": true, "bucuresti": true,
		}
		for _, walk := range walks {
			for i, elem := range walk[:len(walk)-1] {
				assert.False(t, literals[elem],
					"literal %q at position %d should have ended the walk", elem, i)
			}
		}
	})
}

func TestWalksSeededDeterminism(t *testing.T) {
	g := walkGraph()

	sample := func(poolSize int) [][]string {
		walker, err := NewWalker(WithSeed(7), WithPoolSize(poolSize))
		require.NoError(t, err)
		walks, err := walker.Walks(context.Background(), g)
		require.NoError(t, err)
		return walks
	}

	first := sample(1)
	second := sample(4)
	assert.Equal(t, first, second, "seeded corpora must not depend on worker scheduling")
}

func TestWalksEmptyGraph(t *testing.T) {
	walker, err := NewWalker(WithSeed(1))
	require.NoError(t, err)

	walks, err := walker.Walks(context.Background(), NewGraph())
	require.NoError(t, err)
	assert.Empty(t, walks)
}

func TestWalksCancelledContext(t *testing.T) {
	g := walkGraph()
	walker, err := NewWalker(WithSeed(1))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = walker.Walks(ctx, g)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSentences(t *testing.T) {
	g := walkGraph()
	walker, err := NewWalker(WithSeed(3))
	require.NoError(t, err)

	sentences, err := walker.Sentences(context.Background(), g)
	require.NoError(t, err)
	require.NotEmpty(t, sentences)

	for _, sentence := range sentences {
		assert.True(t, strings.HasPrefix(sentence, "animal:"), "sentence %q", sentence)
	}
}
