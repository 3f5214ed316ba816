package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimalMUSRoundTrip(t *testing.T) {
	animal := Animal{
		ID:            "a1",
		OwnerID:       "u1",
		Name:          "Luna",
		Species:       "Pisica",
		Description:   "pisică blândă, sterilizată",
		AdoptionTypes: []string{"foster", "adopție permanentă"},
		Vector:        []float32{0.1, -0.2, 0.3},
		UpdatedAt:     time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
	}

	bs := make([]byte, AnimalMUS.Size(animal))
	n := AnimalMUS.Marshal(animal, bs)
	require.Equal(t, len(bs), n)

	got, n, err := AnimalMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, animal, got)
}

func TestAnimalMUSZeroValue(t *testing.T) {
	// Records written before the embedder ran have no vector and no
	// adoption types; they must survive a round trip untouched.
	animal := Animal{ID: "a1", Name: "Luna", UpdatedAt: time.Unix(0, 0).UTC()}

	bs := make([]byte, AnimalMUS.Size(animal))
	AnimalMUS.Marshal(animal, bs)

	got, _, err := AnimalMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, animal.ID, got.ID)
	assert.Empty(t, got.AdoptionTypes)
	assert.Empty(t, got.Vector)
	assert.True(t, got.UpdatedAt.Equal(animal.UpdatedAt))
}

func TestAnimalMUSSkip(t *testing.T) {
	animal := Animal{ID: "a1", Name: "Luna", Vector: []float32{1, 2}, UpdatedAt: time.Unix(0, 0).UTC()}

	bs := make([]byte, AnimalMUS.Size(animal))
	AnimalMUS.Marshal(animal, bs)

	n, err := AnimalMUS.Skip(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
}

func TestUserMUSRoundTrip(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		user := User{
			ID:       "u1",
			Name:     "Ana",
			Location: &GeoPoint{Lat: 44.4268, Lon: 26.1025, City: "bucuresti"},
		}

		bs := make([]byte, UserMUS.Size(user))
		n := UserMUS.Marshal(user, bs)
		require.Equal(t, len(bs), n)

		got, _, err := UserMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("without location", func(t *testing.T) {
		user := User{ID: "u2", Name: "Dan"}

		bs := make([]byte, UserMUS.Size(user))
		UserMUS.Marshal(user, bs)

		got, _, err := UserMUS.Unmarshal(bs)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		assert.Nil(t, got.Location)
	})
}

func TestGraphEmbeddingMUSRoundTrip(t *testing.T) {
	embedding := GraphEmbedding{EntityID: "a1", Vector: []float32{0.5, -0.5, 1.25}}

	bs := make([]byte, GraphEmbeddingMUS.Size(embedding))
	n := GraphEmbeddingMUS.Marshal(embedding, bs)
	require.Equal(t, len(bs), n)

	got, _, err := GraphEmbeddingMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, embedding, got)
}

func TestStorageIDMUSRoundTrip(t *testing.T) {
	id := StorageIDFor("animal-1")

	bs := make([]byte, StorageIDMUS.Size(id))
	StorageIDMUS.Marshal(id, bs)

	got, n, err := StorageIDMUS.Unmarshal(bs)
	require.NoError(t, err)
	assert.Equal(t, len(bs), n)
	assert.Equal(t, id, got)
}

func TestMUSUnmarshalTruncated(t *testing.T) {
	animal := Animal{ID: "a1", Name: "Luna", UpdatedAt: time.Unix(0, 0).UTC()}

	bs := make([]byte, AnimalMUS.Size(animal))
	AnimalMUS.Marshal(animal, bs)

	_, _, err := AnimalMUS.Unmarshal(bs[:2])
	assert.Error(t, err)
}
