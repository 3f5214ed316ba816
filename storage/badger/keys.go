package badger

import (
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/storage"
)

// Key prefixes for the different record types. Entity ids are hashed to
// fixed-width storage ids so keys stay small and uniform.
const (
	animalRecordPrefix = "anirec:"
	userRecordPrefix   = "usrrec:"
	graphVectorPrefix  = "grfvec:"
)

// makeAnimalKey generates the key for an animal record.
func makeAnimalKey(id string) []byte {
	return appendHashedKey(animalRecordPrefix, id)
}

// makeUserKey generates the key for a user record.
func makeUserKey(id string) []byte {
	return appendHashedKey(userRecordPrefix, id)
}

// makeGraphVectorKey generates the key for a stored graph embedding.
func makeGraphVectorKey(entityID string) []byte {
	return appendHashedKey(graphVectorPrefix, entityID)
}

func appendHashedKey(prefix, id string) []byte {
	hashed := storage.MarshalStorageID(core.StorageIDFor(id))
	buf := make([]byte, 0, len(prefix)+len(hashed))
	buf = append(buf, prefix...)
	return append(buf, hashed...)
}
