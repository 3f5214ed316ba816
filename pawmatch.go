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


package pawmatch

import (
	"log/slog"

	"github.com/shelterly/pawmatch/ai"
	"github.com/shelterly/pawmatch/ai/openai"
	"github.com/shelterly/pawmatch/search"
	"github.com/shelterly/pawmatch/storage"
	"github.com/shelterly/pawmatch/storage/badger"
	"github.com/shelterly/pawmatch/training"
)

// Engine bundles storage, the embedding provider and the matching
// services behind one handle.
type Engine struct {
	backend       *badger.Backend
	animalRepo    storage.AnimalRepository
	userRepo      storage.UserRepository
	embeddingRepo storage.EmbeddingRepository
	embedder      ai.Embedder
	logger        *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	embedder ai.Embedder
	inMemory bool
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = cfg
	}
}

// WithEmbedder injects a ready-made embedder instead of constructing one
// from the AI configuration. Useful for tests.
func WithEmbedder(embedder ai.Embedder) EngineOption {
	return func(o *engineOptions) {
		o.embedder = embedder
	}
}

// WithInMemoryStorage keeps all data in memory instead of on disk.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// NewEngine opens the storage backend at filePath and wires up the
// repositories and the embedding provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	animalRepo, err := badger.NewAnimalRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	userRepo, err := badger.NewUserRepository(backend)
	if err != nil {
		animalRepo.Close()
		backend.Close()
		return nil, err
	}

	embeddingRepo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		userRepo.Close()
		animalRepo.Close()
		backend.Close()
		return nil, err
	}

	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			embeddingRepo.Close()
			userRepo.Close()
			animalRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:       backend,
		animalRepo:    animalRepo,
		userRepo:      userRepo,
		embeddingRepo: embeddingRepo,
		embedder:      embedder,
		logger:        slog.Default(),
	}, nil
}

// Close releases all storage resources.
func (e *Engine) Close() error {
	if err := e.embeddingRepo.Close(); err != nil {
		e.logger.Error("error closing embedding repository", "err", err)
		return err
	}
	if err := e.userRepo.Close(); err != nil {
		e.logger.Error("error closing user repository", "err", err)
		return err
	}
	if err := e.animalRepo.Close(); err != nil {
		e.logger.Error("error closing animal repository", "err", err)
		return err
	}
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// AnimalRepository returns the animal store.
func (e *Engine) AnimalRepository() storage.AnimalRepository {
	return e.animalRepo
}

// UserRepository returns the user store.
func (e *Engine) UserRepository() storage.UserRepository {
	return e.userRepo
}

// EmbeddingRepository returns the graph-embedding store.
func (e *Engine) EmbeddingRepository() storage.EmbeddingRepository {
	return e.embeddingRepo
}

// Embedder returns the text-embedding provider.
func (e *Engine) Embedder() ai.Embedder {
	return e.embedder
}

// NewSearcher creates a ranking engine over this engine's stores.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(e.animalRepo, e.userRepo, e.embeddingRepo, e.embedder, opts...)
}

// NewTrainingService creates a training service over this engine's stores.
func (e *Engine) NewTrainingService(opts ...training.Option) (*training.Service, error) {
	return training.NewService(e.animalRepo, e.userRepo, e.embeddingRepo, opts...)
}
