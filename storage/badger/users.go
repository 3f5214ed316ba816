package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
)

// UserRepository implements storage.UserRepository for BadgerDB.
type UserRepository struct {
	backend *Backend
}

var _ storage.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(backend *Backend) (*UserRepository, error) {
	if backend == nil {
		return nil, errors.New("backend required")
	}
	return &UserRepository{backend: backend}, nil
}

// Close releases repository resources. The shared backend stays open.
func (r *UserRepository) Close() error {
	return nil
}

// AddUsers stores user records, replacing records with the same id.
func (r *UserRepository) AddUsers(ctx context.Context, users ...*core.User) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, user := range users {
			if err := core.ValidateUser(user); err != nil {
				return err
			}
			if err := tx.Set(makeUserKey(user.ID), storage.MarshalUser(user)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetUser retrieves a single user by entity id.
func (r *UserRepository) GetUser(ctx context.Context, id string) (*core.User, error) {
	var user *core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeUserKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			user, err = storage.UnmarshalUser(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns every stored user in key order.
func (r *UserRepository) ListUsers(ctx context.Context) ([]*core.User, error) {
	var users []*core.User
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(userRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				user, err := storage.UnmarshalUser(val)
				if err != nil {
					return err
				}
				users = append(users, user)
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
	return users, nil
}
