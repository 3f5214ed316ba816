package pawmatch

import (
	"context"
	"testing"

	"github.com/shelterly/pawmatch/ai/mock"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/graph"
	"github.com/shelterly/pawmatch/rdf2vec"
	"github.com/shelterly/pawmatch/training"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	engine, err := NewEngine("",
		WithInMemoryStorage(),
		WithEmbedder(mock.NewMockEmbedder()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestEngineEndToEnd(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	embed := func(text string) []float32 {
		v, err := engine.Embedder().EmbedText(ctx, text)
		require.NoError(t, err)
		return v
	}

	require.NoError(t, engine.UserRepository().AddUsers(ctx,
		&core.User{ID: "u1", Name: "Ana", Location: &core.GeoPoint{Lat: 44.43, Lon: 26.10, City: "bucuresti"}},
	))
	require.NoError(t, engine.AnimalRepository().AddAnimals(ctx,
		&core.Animal{
			ID: "a1", OwnerID: "u1", Name: "Luna", Species: "Pisica",
			Description:   "O pisica blanda si jucausa",
			AdoptionTypes: []string{"adopție permanentă"},
			Vector:        embed("O pisica blanda si jucausa"),
		},
		&core.Animal{
			ID: "a2", OwnerID: "u1", Name: "Rex", Species: "Caine",
			Description:   "Un caine energic si loial",
			AdoptionTypes: []string{"foster"},
			Vector:        embed("Un caine energic si loial"),
		},
	))

	cfg := rdf2vec.DefaultConfig()
	cfg.Dimension = 16
	cfg.Epochs = 2
	cfg.Seed = 7

	trainer, err := engine.NewTrainingService(
		training.WithModelConfig(cfg),
		training.WithWalkerOptions(graph.WithSeed(7)),
	)
	require.NoError(t, err)

	report, err := trainer.TrainAndPublish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TrainedNodeCount)

	searcher, err := engine.NewSearcher()
	require.NoError(t, err)

	results, err := searcher.Search(ctx, "pisica bucuresti", 5, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "a1", results[0].Animal.ID)

	stats, err := searcher.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAnimals)
	assert.Equal(t, 2, stats.AnimalsWithGraphEmbeddings)
}

func TestEngineAccessors(t *testing.T) {
	engine := newTestEngine(t)

	assert.NotNil(t, engine.AnimalRepository())
	assert.NotNil(t, engine.UserRepository())
	assert.NotNil(t, engine.EmbeddingRepository())
	assert.NotNil(t, engine.Embedder())
}
