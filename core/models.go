package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// StorageID is the fixed-width storage key derived from an entity identifier.
// Entity identifiers arrive from the upstream platform as opaque strings;
// hashing them gives deterministic 8-byte database keys.
type StorageID uint64

// StorageIDFor derives the storage key for an entity identifier using BLAKE2b.
// Identical identifiers always produce identical keys.
func StorageIDFor(entityID string) StorageID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(entityID))
	sum := h.Sum(nil)
	return StorageID(binary.LittleEndian.Uint64(sum))
}

// GeoPoint is a WGS84 coordinate with an optional resolved city name.
type GeoPoint struct {
	Lat  float64
	Lon  float64
	City string // empty when reverse geocoding never ran
}

// Animal represents an adoptable-animal record.
// Species may be empty; the graph builder backfills it from the description.
type Animal struct {
	ID            string
	OwnerID       string
	Name          string
	Species       string
	Description   string
	AdoptionTypes []string  // e.g. "foster", "permanent"
	Vector        []float32 // text embedding of the description (populated out of band)
	UpdatedAt     time.Time
}

// User represents an animal owner. Location is nil for non-georeferenced users.
type User struct {
	ID       string
	Name     string
	Location *GeoPoint
}

// ScoredAnimal pairs a candidate with its combined relevance score in [0,1].
// It exists only within a single ranking call.
type ScoredAnimal struct {
	Animal *Animal
	Score  float32
}

// GraphEmbedding is a stored graph-embedding vector together with the
// entity id it belongs to. The id travels in the value because storage
// keys are hashed and cannot be reversed.
type GraphEmbedding struct {
	EntityID string
	Vector   []float32
}

// TrainingReport summarizes a completed training run.
type TrainingReport struct {
	TrainedNodeCount   int
	VocabularySize     int
	EmbeddingDimension int
}

// ModelStatus describes the currently published graph-embedding model.
type ModelStatus struct {
	Trained               bool
	VocabularySize        int
	EmbeddingDimension    int
	StoredEmbeddingsCount int
}

// Touch records the time the animal record was last modified.
func (a *Animal) Touch() {
	a.UpdatedAt = time.Now().UTC()
}
