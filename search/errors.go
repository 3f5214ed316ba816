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


package search

import "errors"

var (
	// ErrAnimalRepositoryRequired is returned when no animal repository is provided.
	ErrAnimalRepositoryRequired = errors.New("animal repository is required")

	// ErrUserRepositoryRequired is returned when no user repository is provided.
	ErrUserRepositoryRequired = errors.New("user repository is required")

	// ErrEmbeddingRepositoryRequired is returned when no embedding repository is provided.
	ErrEmbeddingRepositoryRequired = errors.New("embedding repository is required")

	// ErrEmbedderRequired is returned when no embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrInvalidTopN is returned when a result limit is zero or negative.
	ErrInvalidTopN = errors.New("result limit must be positive")
)
