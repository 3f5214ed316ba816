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


// Package storage provides the storage abstraction layer for pawmatch.
//
// It defines repository interfaces that decouple storage implementation
// from the matching logic, so different backends (BadgerDB, in-memory,
// a remote platform API) can be used interchangeably.
//
// Three repositories cover the engine's needs:
//
//   - AnimalRepository: the adoptable-animal snapshot
//   - UserRepository: the owner snapshot
//   - EmbeddingRepository: trained graph-embedding vectors per entity
//
// The graph-embedding table is a derived, replaceable artifact: a training
// run never mutates stored vectors in place from a reader's point of view,
// it rewrites them wholesale and readers pick up complete rows only.
//
// All repository implementations must be thread-safe, and all methods
// accept a context.Context for cancellation.
package storage
