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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidAnimal indicates an Animal failed validation.
	ErrInvalidAnimal = errors.New("invalid animal")

	// ErrInvalidUser indicates a User failed validation.
	ErrInvalidUser = errors.New("invalid user")

	// ErrEmptyID indicates the entity identifier is empty.
	ErrEmptyID = errors.New("entity id cannot be empty")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidCoordinate indicates a latitude or longitude out of range.
	ErrInvalidCoordinate = errors.New("coordinate out of range")

	// ErrEmptyQuery indicates a search query with no usable content.
	ErrEmptyQuery = errors.New("query cannot be empty")
)
