package storage

import (
	"context"

	"github.com/shelterly/pawmatch/core"
)

// AnimalRepository provides the entity snapshot of adoptable animals.
// Implementations must be thread-safe and support concurrent access.
type AnimalRepository interface {
	// AddAnimals stores one or more animal records, replacing existing
	// records with the same id. Sets UpdatedAt on each stored record.
	AddAnimals(ctx context.Context, animals ...*core.Animal) error

	// GetAnimal retrieves a single animal by its entity id.
	// Returns ErrNotFound if the record doesn't exist.
	GetAnimal(ctx context.Context, id string) (*core.Animal, error)

	// ListAnimals returns every stored animal. Ordering is stable across
	// calls on an unchanged store.
	ListAnimals(ctx context.Context) ([]*core.Animal, error)

	// Close closes the repository and releases resources.
	Close() error
}

// UserRepository provides the entity snapshot of owners.
type UserRepository interface {
	// AddUsers stores one or more user records, replacing existing
	// records with the same id.
	AddUsers(ctx context.Context, users ...*core.User) error

	// GetUser retrieves a single user by its entity id.
	// Returns ErrNotFound if the record doesn't exist.
	GetUser(ctx context.Context, id string) (*core.User, error)

	// ListUsers returns every stored user.
	ListUsers(ctx context.Context) ([]*core.User, error)

	// Close closes the repository and releases resources.
	Close() error
}

// EmbeddingRepository persists graph-embedding vectors per entity.
// A missing vector is a normal condition ("no graph signal"), reported
// via ErrNotFound rather than treated as corruption.
type EmbeddingRepository interface {
	// UpsertGraphEmbedding stores or replaces the graph embedding for an
	// entity id.
	UpsertGraphEmbedding(ctx context.Context, entityID string, vector []float32) error

	// GetGraphEmbedding retrieves the graph embedding for an entity id.
	// Returns ErrNotFound when no vector is stored.
	GetGraphEmbedding(ctx context.Context, entityID string) ([]float32, error)

	// AllGraphEmbeddings returns every stored vector keyed by entity id.
	AllGraphEmbeddings(ctx context.Context) (map[string][]float32, error)

	// CountGraphEmbeddings returns the number of stored vectors.
	CountGraphEmbeddings(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
