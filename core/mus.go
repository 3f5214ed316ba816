package core

// Hand-written MUS serializers for the storage layer. The formats are small
// enough that generated code would be overkill: a varint key, a float32
// vector, and two flat records.

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	// StorageIDMUS serializes StorageID values.
	StorageIDMUS mus.Serializer[StorageID] = storageIDSer{}

	// VectorMUS serializes embedding vectors.
	VectorMUS = ord.NewSliceSer[float32](raw.Float32)

	// stringSliceMUS serializes adoption-type lists.
	stringSliceMUS = ord.NewSliceSer[string](ord.String)

	// geoPointPtrMUS serializes optional user locations.
	geoPointPtrMUS = ord.NewPtrSer[GeoPoint](geoPointSer{})

	// GraphEmbeddingMUS serializes stored graph-embedding rows.
	GraphEmbeddingMUS mus.Serializer[GraphEmbedding] = graphEmbeddingSer{}

	// AnimalMUS serializes Animal records.
	AnimalMUS mus.Serializer[Animal] = animalSer{}

	// UserMUS serializes User records.
	UserMUS mus.Serializer[User] = userSer{}
)

type storageIDSer struct{}

func (storageIDSer) Marshal(id StorageID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (storageIDSer) Unmarshal(bs []byte) (StorageID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return StorageID(v), n, err
}

func (storageIDSer) Size(id StorageID) int {
	return varint.Uint64.Size(uint64(id))
}

func (storageIDSer) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type geoPointSer struct{}

func (geoPointSer) Marshal(p GeoPoint, bs []byte) (n int) {
	n = raw.Float64.Marshal(p.Lat, bs)
	n += raw.Float64.Marshal(p.Lon, bs[n:])
	n += ord.String.Marshal(p.City, bs[n:])
	return n
}

func (geoPointSer) Unmarshal(bs []byte) (p GeoPoint, n int, err error) {
	var n1 int
	p.Lat, n, err = raw.Float64.Unmarshal(bs)
	if err != nil {
		return p, n, err
	}
	p.Lon, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return p, n, err
	}
	p.City, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return p, n, err
}

func (geoPointSer) Size(p GeoPoint) (size int) {
	size = raw.Float64.Size(p.Lat)
	size += raw.Float64.Size(p.Lon)
	size += ord.String.Size(p.City)
	return size
}

func (geoPointSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = raw.Float64.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = raw.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return n, err
}

type graphEmbeddingSer struct{}

func (graphEmbeddingSer) Marshal(e GraphEmbedding, bs []byte) (n int) {
	n = ord.String.Marshal(e.EntityID, bs)
	n += VectorMUS.Marshal(e.Vector, bs[n:])
	return n
}

func (graphEmbeddingSer) Unmarshal(bs []byte) (e GraphEmbedding, n int, err error) {
	var n1 int
	e.EntityID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return e, n, err
	}
	e.Vector, n1, err = VectorMUS.Unmarshal(bs[n:])
	n += n1
	return e, n, err
}

func (graphEmbeddingSer) Size(e GraphEmbedding) int {
	return ord.String.Size(e.EntityID) + VectorMUS.Size(e.Vector)
}

func (graphEmbeddingSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = VectorMUS.Skip(bs[n:])
	n += n1
	return n, err
}

type animalSer struct{}

func (animalSer) Marshal(a Animal, bs []byte) (n int) {
	n = ord.String.Marshal(a.ID, bs)
	n += ord.String.Marshal(a.OwnerID, bs[n:])
	n += ord.String.Marshal(a.Name, bs[n:])
	n += ord.String.Marshal(a.Species, bs[n:])
	n += ord.String.Marshal(a.Description, bs[n:])
	n += stringSliceMUS.Marshal(a.AdoptionTypes, bs[n:])
	n += VectorMUS.Marshal(a.Vector, bs[n:])
	n += varint.Int64.Marshal(a.UpdatedAt.UnixNano(), bs[n:])
	return n
}

func (animalSer) Unmarshal(bs []byte) (a Animal, n int, err error) {
	var n1 int
	a.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return a, n, err
	}
	a.OwnerID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.Species, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.Description, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.AdoptionTypes, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.Vector, n1, err = VectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	var nanos int64
	nanos, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return a, n, err
	}
	a.UpdatedAt = time.Unix(0, nanos).UTC()
	return a, n, nil
}

func (animalSer) Size(a Animal) (size int) {
	size = ord.String.Size(a.ID)
	size += ord.String.Size(a.OwnerID)
	size += ord.String.Size(a.Name)
	size += ord.String.Size(a.Species)
	size += ord.String.Size(a.Description)
	size += stringSliceMUS.Size(a.AdoptionTypes)
	size += VectorMUS.Size(a.Vector)
	size += varint.Int64.Size(a.UpdatedAt.UnixNano())
	return size
}

func (animalSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 5; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return n, err
		}
	}
	n1, err = stringSliceMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = VectorMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return n, err
}

type userSer struct{}

func (userSer) Marshal(u User, bs []byte) (n int) {
	n = ord.String.Marshal(u.ID, bs)
	n += ord.String.Marshal(u.Name, bs[n:])
	n += geoPointPtrMUS.Marshal(u.Location, bs[n:])
	return n
}

func (userSer) Unmarshal(bs []byte) (u User, n int, err error) {
	var n1 int
	u.ID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return u, n, err
	}
	u.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return u, n, err
	}
	u.Location, n1, err = geoPointPtrMUS.Unmarshal(bs[n:])
	n += n1
	return u, n, err
}

func (userSer) Size(u User) (size int) {
	size = ord.String.Size(u.ID)
	size += ord.String.Size(u.Name)
	size += geoPointPtrMUS.Size(u.Location)
	return size
}

func (userSer) Skip(bs []byte) (n int, err error) {
	var n1 int
	n, err = ord.String.Skip(bs)
	if err != nil {
		return n, err
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return n, err
	}
	n1, err = geoPointPtrMUS.Skip(bs[n:])
	n += n1
	return n, err
}
