package training

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/graph"
	"github.com/shelterly/pawmatch/rdf2vec"
	"github.com/shelterly/pawmatch/storage"
)

// Service trains and publishes the graph-embedding model.
// Publishing is atomic: readers either see the previous model or the new
// one, never a partially trained state.
type Service struct {
	animals    storage.AnimalRepository
	users      storage.UserRepository
	embeddings storage.EmbeddingRepository
	walkerOpts []graph.WalkerOption
	modelCfg   rdf2vec.Config
	published  atomic.Pointer[rdf2vec.Model]
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithWalkerOptions forwards options to the walk sampler, such as walk
// length, walks per node, seed and pool size.
func WithWalkerOptions(opts ...graph.WalkerOption) Option {
	return func(s *Service) error {
		s.walkerOpts = append(s.walkerOpts, opts...)
		return nil
	}
}

// WithModelConfig replaces the skip-gram training configuration.
func WithModelConfig(cfg rdf2vec.Config) Option {
	return func(s *Service) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		s.modelCfg = cfg
		return nil
	}
}

// NewService creates a new training service.
func NewService(
	animalRepository storage.AnimalRepository,
	userRepository storage.UserRepository,
	embeddingRepository storage.EmbeddingRepository,
	opts ...Option,
) (*Service, error) {
	if animalRepository == nil {
		return nil, ErrAnimalRepositoryRequired
	}
	if userRepository == nil {
		return nil, ErrUserRepositoryRequired
	}
	if embeddingRepository == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}

	s := &Service{
		animals:    animalRepository,
		users:      userRepository,
		embeddings: embeddingRepository,
		modelCfg:   rdf2vec.DefaultConfig(),
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.logger = s.logger.With("component", "training")
	return s, nil
}

// TrainAndPublish rebuilds the model from the current entity snapshot.
//
// An empty snapshot is not an error: the run is logged as a no-op, the
// previously published model stays in service and the report carries
// zeros. A training failure is returned without touching the published
// model or the stored vectors.
func (s *Service) TrainAndPublish(ctx context.Context) (*core.TrainingReport, error) {
	animals, err := s.animals.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	g := graph.Build(animals, users)
	s.logger.Info("graph built", "nodes", g.Len(), "animals", len(animals), "users", len(users))

	walker, err := graph.NewWalker(s.walkerOpts...)
	if err != nil {
		return nil, err
	}
	sentences, err := walker.Sentences(ctx, g)
	if err != nil {
		return nil, err
	}

	model, err := rdf2vec.Train(ctx, sentences, s.modelCfg)
	if errors.Is(err, rdf2vec.ErrEmptyCorpus) {
		s.logger.Warn("walk corpus is empty, keeping previously published model")
		return &core.TrainingReport{}, nil
	}
	if err != nil {
		return nil, err
	}

	trained := 0
	for _, node := range g.AnimalNodes() {
		id, ok := graph.AnimalIDFromKey(node.Key)
		if !ok {
			continue
		}
		vector, ok := model.Vector(node.Key)
		if !ok {
			s.logger.Debug("animal node missing from vocabulary", "id", id)
			continue
		}
		if err := s.embeddings.UpsertGraphEmbedding(ctx, id, vector); err != nil {
			return nil, err
		}
		trained++
	}

	s.published.Store(model)
	s.logger.Info("model published",
		"trainedNodes", trained,
		"vocabulary", model.VocabularySize(),
		"dimension", model.Dimension())

	return &core.TrainingReport{
		TrainedNodeCount:   trained,
		VocabularySize:     model.VocabularySize(),
		EmbeddingDimension: model.Dimension(),
	}, nil
}

// Model returns the currently published model, or nil before the first
// successful training run.
func (s *Service) Model() *rdf2vec.Model {
	return s.published.Load()
}

// Status describes the published model and the stored embedding table.
func (s *Service) Status(ctx context.Context) (*core.ModelStatus, error) {
	stored, err := s.embeddings.CountGraphEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	status := &core.ModelStatus{StoredEmbeddingsCount: stored}
	if model := s.published.Load(); model != nil {
		status.Trained = true
		status.VocabularySize = model.VocabularySize()
		status.EmbeddingDimension = model.Dimension()
	}
	return status, nil
}
