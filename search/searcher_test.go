package search

import (
	"context"
	"errors"
	"testing"

	"github.com/shelterly/pawmatch/ai/mock"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
	storagebadger "github.com/shelterly/pawmatch/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	searcher   *Searcher
	embedder   *mock.MockEmbedder
	animals    storage.AnimalRepository
	users      storage.UserRepository
	embeddings storage.EmbeddingRepository
}

func newSearchFixture(t *testing.T) *searchFixture {
	t.Helper()

	animalRepo, userRepo, embeddingRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() {
		embeddingRepo.Close()
		userRepo.Close()
		animalRepo.Close()
		backend.Close()
	})

	embedder := mock.NewMockEmbedder()
	searcher, err := NewSearcher(animalRepo, userRepo, embeddingRepo, embedder)
	require.NoError(t, err)

	return &searchFixture{
		searcher:   searcher,
		embedder:   embedder,
		animals:    animalRepo,
		users:      userRepo,
		embeddings: embeddingRepo,
	}
}

func (f *searchFixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	embed := func(text string) []float32 {
		v, err := f.embedder.EmbedText(ctx, text)
		require.NoError(t, err)
		return v
	}

	users := []*core.User{
		{ID: "u-buc", Name: "Ana", Location: &core.GeoPoint{Lat: 44.43, Lon: 26.10, City: "bucuresti"}},
		{ID: "u-cluj", Name: "Dan", Location: &core.GeoPoint{Lat: 46.77, Lon: 23.62, City: "cluj"}},
	}
	require.NoError(t, f.users.AddUsers(ctx, users...))

	animals := []*core.Animal{
		{
			ID:            "cat-buc",
			OwnerID:       "u-buc",
			Name:          "Luna",
			Species:       "Pisica",
			Description:   "O pisica blanda si jucausa care cauta o familie iubitoare",
			AdoptionTypes: []string{"adopție permanentă"},
		},
		{
			ID:            "dog-buc",
			OwnerID:       "u-buc",
			Name:          "Rex",
			Species:       "Caine",
			Description:   "Un caine energic care iubeste plimbarile lungi",
			AdoptionTypes: []string{"foster"},
		},
		{
			ID:            "cat-cluj",
			OwnerID:       "u-cluj",
			Name:          "Mitzi",
			Species:       "Pisica",
			Description:   "Pisica linistita potrivita pentru apartament",
			AdoptionTypes: []string{"adopție permanentă"},
		},
	}
	for _, animal := range animals {
		animal.Vector = embed(animal.Description)
	}
	require.NoError(t, f.animals.AddAnimals(ctx, animals...))

	f.embedder.Reset()
}

func TestNewSearcherValidation(t *testing.T) {
	f := newSearchFixture(t)

	_, err := NewSearcher(nil, f.users, f.embeddings, f.embedder)
	assert.ErrorIs(t, err, ErrAnimalRepositoryRequired)

	_, err = NewSearcher(f.animals, nil, f.embeddings, f.embedder)
	assert.ErrorIs(t, err, ErrUserRepositoryRequired)

	_, err = NewSearcher(f.animals, f.users, nil, f.embedder)
	assert.ErrorIs(t, err, ErrEmbeddingRepositoryRequired)

	_, err = NewSearcher(f.animals, f.users, f.embeddings, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestSearchInputValidation(t *testing.T) {
	f := newSearchFixture(t)
	ctx := context.Background()

	_, err := f.searcher.Search(ctx, "", 5, nil)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)

	_, err = f.searcher.Search(ctx, "pisica", 0, nil)
	assert.ErrorIs(t, err, ErrInvalidTopN)
}

func TestSearchCategoryAndLocation(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	results, err := f.searcher.Search(ctx, "pisica bucuresti", 10, nil)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "cat-buc", results[0].Animal.ID)
}

func TestSearchUnrecognizedPlaceSkipsGeofilter(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	results, err := f.searcher.Search(ctx, "pisica din timisoara", 10, nil)
	require.NoError(t, err)

	ids := resultIDs(results)
	assert.Contains(t, ids, "cat-buc")
	assert.Contains(t, ids, "cat-cluj")
}

func TestSearchAdoptionTypeFilter(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	t.Run("foster keeps only foster animals", func(t *testing.T) {
		results, err := f.searcher.Search(ctx, "caine", 10, []string{"foster"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "dog-buc", results[0].Animal.ID)
	})

	t.Run("substring match ignores diacritics", func(t *testing.T) {
		results, err := f.searcher.Search(ctx, "pisica", 10, []string{"permanenta"})
		require.NoError(t, err)
		ids := resultIDs(results)
		assert.ElementsMatch(t, []string{"cat-buc", "cat-cluj"}, ids)
	})

	t.Run("unmatched type empties the result", func(t *testing.T) {
		results, err := f.searcher.Search(ctx, "pisica", 10, []string{"weekend"})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchScoresBoundedAndDescending(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	results, err := f.searcher.Search(ctx, "animal prietenos pentru familie", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	for i, r := range results {
		assert.GreaterOrEqual(t, r.Score, float32(0))
		assert.LessOrEqual(t, r.Score, float32(1))
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].Score, r.Score)
		}
	}
}

func TestSearchDegradesWhenEmbedderFails(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	f.embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service unavailable")
	}

	results, err := f.searcher.Search(ctx, "pisica blanda", 10, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, results, "keyword and graph signals should still rank candidates")
}

func TestSearchTruncatesToTopN(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	results, err := f.searcher.Search(ctx, "animal prietenos pentru familie", 1, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}

func TestFindSimilar(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.embeddings.UpsertGraphEmbedding(ctx, "cat-buc", []float32{1, 0, 0}))
	require.NoError(t, f.embeddings.UpsertGraphEmbedding(ctx, "cat-cluj", []float32{0.9, 0.1, 0}))
	require.NoError(t, f.embeddings.UpsertGraphEmbedding(ctx, "dog-buc", []float32{0, 1, 0}))

	t.Run("unknown id returns empty result without error", func(t *testing.T) {
		results, err := f.searcher.FindSimilar(ctx, "no-such-animal", 5, Hybrid)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("excludes the target itself", func(t *testing.T) {
		results, err := f.searcher.FindSimilar(ctx, "cat-buc", 5, Hybrid)
		require.NoError(t, err)
		assert.NotContains(t, resultIDs(results), "cat-buc")
	})

	t.Run("graph-only ranks the closer graph neighbor first", func(t *testing.T) {
		results, err := f.searcher.FindSimilar(ctx, "cat-buc", 5, GraphOnly)
		require.NoError(t, err)
		require.NotEmpty(t, results)
		assert.Equal(t, "cat-cluj", results[0].Animal.ID)
	})

	t.Run("empty id is rejected", func(t *testing.T) {
		_, err := f.searcher.FindSimilar(ctx, "", 5, Hybrid)
		assert.ErrorIs(t, err, core.ErrEmptyID)
	})
}

func TestStats(t *testing.T) {
	f := newSearchFixture(t)
	f.seed(t)
	ctx := context.Background()

	require.NoError(t, f.embeddings.UpsertGraphEmbedding(ctx, "cat-buc", []float32{1, 0}))

	stats, err := f.searcher.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalAnimals)
	assert.Equal(t, 3, stats.AnimalsWithTextEmbeddings)
	assert.Equal(t, 1, stats.AnimalsWithGraphEmbeddings)
}

func resultIDs(results []*core.ScoredAnimal) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.Animal.ID
	}
	return ids
}
