// Copyright 2025 Shelterly
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	pawmatch "github.com/shelterly/pawmatch"
	"github.com/shelterly/pawmatch/ai"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/graph"
	"github.com/shelterly/pawmatch/rdf2vec"
	"github.com/shelterly/pawmatch/search"
	"github.com/shelterly/pawmatch/training"
	"github.com/urfave/cli/v2"
)

func main() {
	commonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
	}

	app := &cli.App{
		Name:  "pawmatch",
		Usage: "Hybrid semantic matching for adoptable animals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "seed",
				Usage:     "Load animals and users from a JSON file",
				ArgsUsage: "<file>",
				Action:    seedCommand,
				Flags:     commonFlags,
			},
			{
				Name:   "train",
				Usage:  "Rebuild and publish the graph-embedding model",
				Action: trainCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "dimension",
						Usage: "Embedding dimension",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "epochs",
						Usage: "Training epochs over the walk corpus",
						Value: 10,
					},
					&cli.Uint64Flag{
						Name:  "seed",
						Usage: "Random seed for walks and training (0 = random)",
					},
					&cli.IntFlag{
						Name:  "walk-length",
						Usage: "Maximum random-walk length",
						Value: 8,
					},
					&cli.IntFlag{
						Name:  "walks-per-node",
						Usage: "Walks sampled per animal node",
						Value: 10,
					},
				}, commonFlags...),
			},
			{
				Name:      "search",
				Usage:     "Rank animals against a free-text query",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of results to return",
						Value: 10,
					},
					&cli.StringSliceFlag{
						Name:  "adoption-type",
						Usage: "Restrict results to these adoption types",
					},
				}, commonFlags...),
			},
			{
				Name:      "similar",
				Usage:     "Rank animals by similarity to a given one",
				ArgsUsage: "<animal-id>",
				Action:    similarCommand,
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  "top",
						Usage: "Number of results to return",
						Value: 10,
					},
					&cli.StringFlag{
						Name:  "mode",
						Usage: "Similarity mode (hybrid, text, graph)",
						Value: "hybrid",
					},
				}, commonFlags...),
			},
			{
				Name:   "status",
				Usage:  "Show model and corpus status",
				Action: statusCommand,
				Flags:  commonFlags,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// seedFile is the JSON shape the seed command consumes.
type seedFile struct {
	Users []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location *struct {
			Lat  float64 `json:"lat"`
			Lon  float64 `json:"lon"`
			City string  `json:"city"`
		} `json:"location"`
	} `json:"users"`
	Animals []struct {
		ID            string   `json:"id"`
		OwnerID       string   `json:"ownerId"`
		Name          string   `json:"name"`
		Species       string   `json:"species"`
		Description   string   `json:"description"`
		AdoptionTypes []string `json:"adoptionTypes"`
	} `json:"animals"`
}

func openEngine(c *cli.Context) (*pawmatch.Engine, error) {
	cfg := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	return pawmatch.NewEngine(c.String("db"), pawmatch.WithAIConfig(cfg))
}

func seedCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the seed file")
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()

	users := make([]*core.User, len(seed.Users))
	for i, u := range seed.Users {
		user := &core.User{ID: u.ID, Name: u.Name}
		if u.Location != nil {
			user.Location = &core.GeoPoint{Lat: u.Location.Lat, Lon: u.Location.Lon, City: u.Location.City}
		}
		users[i] = user
	}
	if len(users) > 0 {
		if err := engine.UserRepository().AddUsers(ctx, users...); err != nil {
			return fmt.Errorf("failed to store users: %w", err)
		}
	}

	animals := make([]*core.Animal, len(seed.Animals))
	descriptions := make([]string, len(seed.Animals))
	for i, a := range seed.Animals {
		animals[i] = &core.Animal{
			ID:            a.ID,
			OwnerID:       a.OwnerID,
			Name:          a.Name,
			Species:       a.Species,
			Description:   a.Description,
			AdoptionTypes: a.AdoptionTypes,
		}
		descriptions[i] = a.Description
	}
	if len(animals) > 0 {
		vectors, err := engine.Embedder().EmbedTexts(ctx, descriptions)
		if err != nil {
			return fmt.Errorf("failed to embed animal descriptions: %w", err)
		}
		for i := range animals {
			if i < len(vectors) {
				animals[i].Vector = vectors[i]
			}
		}
		if err := engine.AnimalRepository().AddAnimals(ctx, animals...); err != nil {
			return fmt.Errorf("failed to store animals: %w", err)
		}
	}

	fmt.Printf("Seeded %d users and %d animals\n", len(users), len(animals))
	return nil
}

func trainCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	cfg := rdf2vec.DefaultConfig()
	cfg.Dimension = c.Int("dimension")
	cfg.Epochs = c.Int("epochs")
	cfg.Seed = c.Uint64("seed")

	walkerOpts := []graph.WalkerOption{
		graph.WithWalkLength(c.Int("walk-length")),
		graph.WithWalksPerNode(c.Int("walks-per-node")),
	}
	if seed := c.Uint64("seed"); seed != 0 {
		walkerOpts = append(walkerOpts, graph.WithSeed(seed))
	}

	trainer, err := engine.NewTrainingService(
		training.WithModelConfig(cfg),
		training.WithWalkerOptions(walkerOpts...),
	)
	if err != nil {
		return err
	}

	report, err := trainer.TrainAndPublish(context.Background())
	if err != nil {
		return fmt.Errorf("training failed: %w", err)
	}

	fmt.Printf("Trained %d animal nodes (vocabulary %d, dimension %d)\n",
		report.TrainedNodeCount, report.VocabularySize, report.EmbeddingDimension)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the query")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(context.Background(), c.Args().First(), c.Int("top"), c.StringSlice("adoption-type"))
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func similarCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument: the animal id")
	}

	mode, err := parseMode(c.String("mode"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.FindSimilar(context.Background(), c.Args().First(), c.Int("top"), mode)
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func statusCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	searcher, err := engine.NewSearcher()
	if err != nil {
		return err
	}

	stats, err := searcher.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Animals:               %d\n", stats.TotalAnimals)
	fmt.Printf("With text embeddings:  %d\n", stats.AnimalsWithTextEmbeddings)
	fmt.Printf("With graph embeddings: %d\n", stats.AnimalsWithGraphEmbeddings)
	return nil
}

func printResults(results []*core.ScoredAnimal) {
	if len(results) == 0 {
		fmt.Println("No matches")
		return
	}
	for i, r := range results {
		fmt.Printf("%2d. %-20s %-10s score=%.3f  %s\n",
			i+1, r.Animal.Name, r.Animal.Species, r.Score, r.Animal.ID)
	}
}

func parseMode(s string) (search.Mode, error) {
	switch strings.ToLower(s) {
	case "hybrid":
		return search.Hybrid, nil
	case "text":
		return search.TextOnly, nil
	case "graph":
		return search.GraphOnly, nil
	default:
		return search.Hybrid, fmt.Errorf("invalid mode %q: must be one of hybrid, text, graph", s)
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
