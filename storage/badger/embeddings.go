package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
)

// EmbeddingRepository implements storage.EmbeddingRepository for BadgerDB.
type EmbeddingRepository struct {
	backend *Backend
}

var _ storage.EmbeddingRepository = (*EmbeddingRepository)(nil)

// NewEmbeddingRepository creates a new EmbeddingRepository.
func NewEmbeddingRepository(backend *Backend) (*EmbeddingRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &EmbeddingRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend stays open.
func (r *EmbeddingRepository) Close() error {
	return nil
}

// UpsertGraphEmbedding stores or replaces the vector for an entity id.
func (r *EmbeddingRepository) UpsertGraphEmbedding(ctx context.Context, entityID string, vector []float32) error {
	row := &core.GraphEmbedding{EntityID: entityID, Vector: vector}
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeGraphVectorKey(entityID), storage.MarshalGraphEmbedding(row)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetGraphEmbedding retrieves the vector stored for an entity id.
// Returns storage.ErrNotFound when no vector is stored, which consumers
// treat as "no graph signal".
func (r *EmbeddingRepository) GetGraphEmbedding(ctx context.Context, entityID string) ([]float32, error) {
	var vector []float32
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeGraphVectorKey(entityID))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			row, err := storage.UnmarshalGraphEmbedding(val)
			if err != nil {
				return err
			}
			vector = row.Vector
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// AllGraphEmbeddings returns every stored vector keyed by entity id.
func (r *EmbeddingRepository) AllGraphEmbeddings(ctx context.Context) (map[string][]float32, error) {
	out := make(map[string][]float32)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(graphVectorPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				row, err := storage.UnmarshalGraphEmbedding(val)
				if err != nil {
					return err
				}
				out[row.EntityID] = row.Vector
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CountGraphEmbeddings returns the number of stored vectors.
func (r *EmbeddingRepository) CountGraphEmbeddings(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(graphVectorPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}
	return count, nil
}
