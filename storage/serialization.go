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


package storage

import (
	"github.com/shelterly/pawmatch/core"
)

// MarshalStorageID serializes a StorageID to bytes.
func MarshalStorageID(id core.StorageID) []byte {
	buf := make([]byte, core.StorageIDMUS.Size(id))
	core.StorageIDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalStorageID deserializes a StorageID from bytes.
func UnmarshalStorageID(data []byte) (core.StorageID, error) {
	id, _, err := core.StorageIDMUS.Unmarshal(data)
	return id, err
}

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, core.VectorMUS.Size(vector))
	core.VectorMUS.Marshal(vector, buf)
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	vector, _, err := core.VectorMUS.Unmarshal(data)
	return vector, err
}

// MarshalGraphEmbedding serializes a stored graph-embedding row to bytes.
func MarshalGraphEmbedding(row *core.GraphEmbedding) []byte {
	buf := make([]byte, core.GraphEmbeddingMUS.Size(*row))
	core.GraphEmbeddingMUS.Marshal(*row, buf)
	return buf
}

// UnmarshalGraphEmbedding deserializes a stored graph-embedding row from bytes.
func UnmarshalGraphEmbedding(data []byte) (*core.GraphEmbedding, error) {
	row, _, err := core.GraphEmbeddingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// MarshalAnimal serializes an Animal to bytes.
func MarshalAnimal(animal *core.Animal) []byte {
	buf := make([]byte, core.AnimalMUS.Size(*animal))
	core.AnimalMUS.Marshal(*animal, buf)
	return buf
}

// UnmarshalAnimal deserializes an Animal from bytes.
func UnmarshalAnimal(data []byte) (*core.Animal, error) {
	animal, _, err := core.AnimalMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &animal, nil
}

// MarshalUser serializes a User to bytes.
func MarshalUser(user *core.User) []byte {
	buf := make([]byte, core.UserMUS.Size(*user))
	core.UserMUS.Marshal(*user, buf)
	return buf
}

// UnmarshalUser deserializes a User from bytes.
func UnmarshalUser(data []byte) (*core.User, error) {
	user, _, err := core.UserMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
