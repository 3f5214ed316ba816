package search

import (
	"testing"

	"github.com/shelterly/pawmatch/core"
	"github.com/stretchr/testify/assert"
)

func TestKeywordMatchScore(t *testing.T) {
	animal := &core.Animal{
		ID:          "a1",
		Name:        "Rex",
		Species:     "Caine",
		Description: "Un caine prietenos si jucaus care iubeste copiii",
	}

	t.Run("exact name term scores high", func(t *testing.T) {
		score := keywordMatchScore(animal, "rex")
		assert.Greater(t, score, float32(0.5))
	})

	t.Run("species term contributes", func(t *testing.T) {
		score := keywordMatchScore(animal, "caine")
		assert.Greater(t, score, float32(0))
	})

	t.Run("description prefix matching tolerates inflection", func(t *testing.T) {
		// "jucausa" shares a long prefix with "jucaus" in the description.
		score := keywordMatchScore(animal, "jucausa")
		assert.Greater(t, score, float32(0))
	})

	t.Run("unrelated query scores zero", func(t *testing.T) {
		assert.Equal(t, float32(0), keywordMatchScore(animal, "xyz qqq"))
	})

	t.Run("short terms ignored", func(t *testing.T) {
		assert.Equal(t, float32(0), keywordMatchScore(animal, "a o u"))
	})

	t.Run("clamped to one", func(t *testing.T) {
		score := keywordMatchScore(animal, "rex")
		assert.LessOrEqual(t, score, float32(1))
	})
}

func TestAnimalQueryMatch(t *testing.T) {
	animal := &core.Animal{
		ID:          "a1",
		Name:        "Luna",
		Species:     "Pisica",
		Description: "O pisica blanda care sta in casa",
	}

	t.Run("species and description overlap", func(t *testing.T) {
		score := animalQueryMatch(animal, "pisica blanda")
		// 0.4 species + 0.1 description, plus name misses.
		assert.Greater(t, score, float32(0.4))
	})

	t.Run("name match contributes", func(t *testing.T) {
		score := animalQueryMatch(animal, "luna")
		assert.GreaterOrEqual(t, score, float32(0.3))
	})

	t.Run("no overlap", func(t *testing.T) {
		assert.Equal(t, float32(0), animalQueryMatch(animal, "papagal"))
	})

	t.Run("bounded by one", func(t *testing.T) {
		score := animalQueryMatch(animal, "pisica luna blanda casa sta")
		assert.LessOrEqual(t, score, float32(1))
	})
}

func TestCommonPrefixLength(t *testing.T) {
	assert.Equal(t, 6, commonPrefixLength("jucaus", "jucausa"))
	assert.Equal(t, 0, commonPrefixLength("abc", "xyz"))
	assert.Equal(t, 3, commonPrefixLength("abc", "abc"))
	assert.Equal(t, 0, commonPrefixLength("", "abc"))
}

func TestCountSharedTokens(t *testing.T) {
	assert.Equal(t, 2, countSharedTokens("caine prietenos", "un caine foarte prietenos"))
	assert.Equal(t, 0, countSharedTokens("pisica", "un caine"))
	assert.Equal(t, 1, countSharedTokens("Caine negru", "caine alb"))
}
