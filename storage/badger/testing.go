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


package badger

import "github.com/shelterly/pawmatch/storage"

// NewMemoryRepositories creates in-memory animal, user and embedding
// repositories for testing. Returns animalRepo, userRepo, embeddingRepo,
// backend, and error. Caller must close the repos and backend when done.
func NewMemoryRepositories() (storage.AnimalRepository, storage.UserRepository, storage.EmbeddingRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	animalRepo, err := NewAnimalRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, nil, err
	}

	userRepo, err := NewUserRepository(backend)
	if err != nil {
		animalRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	embeddingRepo, err := NewEmbeddingRepository(backend)
	if err != nil {
		userRepo.Close()
		animalRepo.Close()
		backend.Close()
		return nil, nil, nil, nil, err
	}

	return animalRepo, userRepo, embeddingRepo, backend, nil
}
