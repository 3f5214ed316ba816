package badger

import (
	"context"
	"testing"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepos(t *testing.T) (storage.AnimalRepository, storage.UserRepository, storage.EmbeddingRepository) {
	t.Helper()
	animals, users, embeddings, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		embeddings.Close()
		users.Close()
		animals.Close()
		backend.Close()
	})
	return animals, users, embeddings
}

func TestAnimalRepository(t *testing.T) {
	ctx := context.Background()
	animals, _, _ := newTestRepos(t)

	t.Run("add and get", func(t *testing.T) {
		animal := &core.Animal{
			ID:            "a1",
			OwnerID:       "u1",
			Name:          "Luna",
			Species:       "Pisica",
			Description:   "pisică blândă",
			AdoptionTypes: []string{"foster"},
			Vector:        []float32{0.1, 0.2},
		}
		require.NoError(t, animals.AddAnimals(ctx, animal))

		got, err := animals.GetAnimal(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "Luna", got.Name)
		assert.Equal(t, []string{"foster"}, got.AdoptionTypes)
		assert.Equal(t, []float32{0.1, 0.2}, got.Vector)
		assert.False(t, got.UpdatedAt.IsZero(), "AddAnimals stamps UpdatedAt")
	})

	t.Run("add replaces existing record", func(t *testing.T) {
		require.NoError(t, animals.AddAnimals(ctx, &core.Animal{ID: "a1", Name: "Luna", Description: "actualizat"}))

		got, err := animals.GetAnimal(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, "actualizat", got.Description)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := animals.GetAnimal(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid record rejected", func(t *testing.T) {
		err := animals.AddAnimals(ctx, &core.Animal{ID: "a2"})
		assert.ErrorIs(t, err, core.ErrInvalidAnimal)

		_, err = animals.GetAnimal(ctx, "a2")
		assert.ErrorIs(t, err, storage.ErrNotFound, "rejected batch leaves no partial writes")
	})

	t.Run("list", func(t *testing.T) {
		require.NoError(t, animals.AddAnimals(ctx,
			&core.Animal{ID: "a3", Name: "Rex"},
			&core.Animal{ID: "a4", Name: "Mitzi"},
		))

		all, err := animals.ListAnimals(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		ids := make(map[string]bool)
		for _, a := range all {
			ids[a.ID] = true
		}
		assert.True(t, ids["a1"] && ids["a3"] && ids["a4"])
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	_, users, _ := newTestRepos(t)

	t.Run("add and get with location", func(t *testing.T) {
		user := &core.User{
			ID:       "u1",
			Name:     "Ana",
			Location: &core.GeoPoint{Lat: 44.4268, Lon: 26.1025, City: "bucuresti"},
		}
		require.NoError(t, users.AddUsers(ctx, user))

		got, err := users.GetUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("location stays nil", func(t *testing.T) {
		require.NoError(t, users.AddUsers(ctx, &core.User{ID: "u2", Name: "Dan"}))

		got, err := users.GetUser(ctx, "u2")
		require.NoError(t, err)
		assert.Nil(t, got.Location)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := users.GetUser(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("invalid user rejected", func(t *testing.T) {
		err := users.AddUsers(ctx, &core.User{ID: "u3", Location: &core.GeoPoint{Lat: 200}})
		assert.ErrorIs(t, err, core.ErrInvalidUser)
	})

	t.Run("list", func(t *testing.T) {
		all, err := users.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestEmbeddingRepository(t *testing.T) {
	ctx := context.Background()
	_, _, embeddings := newTestRepos(t)

	t.Run("upsert and get", func(t *testing.T) {
		require.NoError(t, embeddings.UpsertGraphEmbedding(ctx, "a1", []float32{1, 0, 0}))

		vec, err := embeddings.GetGraphEmbedding(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, []float32{1, 0, 0}, vec)
	})

	t.Run("upsert replaces", func(t *testing.T) {
		require.NoError(t, embeddings.UpsertGraphEmbedding(ctx, "a1", []float32{0, 1, 0}))

		vec, err := embeddings.GetGraphEmbedding(ctx, "a1")
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 1, 0}, vec)

		count, err := embeddings.CountGraphEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("missing vector means no graph signal", func(t *testing.T) {
		_, err := embeddings.GetGraphEmbedding(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("all and count", func(t *testing.T) {
		require.NoError(t, embeddings.UpsertGraphEmbedding(ctx, "a2", []float32{0, 0, 1}))

		all, err := embeddings.AllGraphEmbeddings(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, []float32{0, 1, 0}, all["a1"])
		assert.Equal(t, []float32{0, 0, 1}, all["a2"])

		count, err := embeddings.CountGraphEmbeddings(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
