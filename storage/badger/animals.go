package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
)

// AnimalRepository implements storage.AnimalRepository for BadgerDB.
type AnimalRepository struct {
	backend *Backend
}

var _ storage.AnimalRepository = (*AnimalRepository)(nil)

// NewAnimalRepository creates a new AnimalRepository.
func NewAnimalRepository(backend *Backend) (*AnimalRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &AnimalRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend stays open.
func (r *AnimalRepository) Close() error {
	return nil
}

// AddAnimals stores animal records, replacing records with the same id.
func (r *AnimalRepository) AddAnimals(ctx context.Context, animals ...*core.Animal) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, animal := range animals {
			if err := core.ValidateAnimal(animal); err != nil {
				return err
			}
			animal.UpdatedAt = time.Now().UTC()
			if err := tx.Set(makeAnimalKey(animal.ID), storage.MarshalAnimal(animal)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetAnimal retrieves a single animal by entity id.
func (r *AnimalRepository) GetAnimal(ctx context.Context, id string) (*core.Animal, error) {
	var animal *core.Animal
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeAnimalKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			animal, err = storage.UnmarshalAnimal(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return animal, nil
}

// ListAnimals returns every stored animal in key order.
func (r *AnimalRepository) ListAnimals(ctx context.Context) ([]*core.Animal, error) {
	var animals []*core.Animal
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(animalRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				animal, err := storage.UnmarshalAnimal(val)
				if err != nil {
					return err
				}
				animals = append(animals, animal)
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
	return animals, nil
}
