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

import (
	"fmt"
	"strings"
)

// ValidateAnimal validates an Animal according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Name must not be empty
//
// NOT validated (populated by the training pipeline or upstream services):
//   - Species (the graph builder backfills it from the description)
//   - Vector (can be empty until the text embedder runs)
//   - OwnerID (ownerless strays are valid records)
func ValidateAnimal(animal *Animal) error {
	if animal == nil {
		return fmt.Errorf("%w: animal is nil", ErrInvalidAnimal)
	}

	if animal.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnimal, ErrEmptyID)
	}

	if animal.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidAnimal, ErrEmptyName)
	}

	return nil
}

// ValidateUser validates a User according to domain rules.
//
// Validation rules:
//   - ID must not be empty
//   - Location, when present, must hold coordinates in range
func ValidateUser(user *User) error {
	if user == nil {
		return fmt.Errorf("%w: user is nil", ErrInvalidUser)
	}

	if user.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidUser, ErrEmptyID)
	}

	if user.Location != nil {
		if err := ValidateGeoPoint(user.Location); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidUser, err)
		}
	}

	return nil
}

// ValidateGeoPoint checks that a coordinate lies on the globe.
func ValidateGeoPoint(point *GeoPoint) error {
	if point == nil {
		return fmt.Errorf("%w: point is nil", ErrInvalidCoordinate)
	}
	if point.Lat < -90 || point.Lat > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, point.Lat)
	}
	if point.Lon < -180 || point.Lon > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, point.Lon)
	}
	return nil
}

// ValidateQuery rejects queries that are empty after trimming.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return ErrEmptyQuery
	}
	return nil
}
