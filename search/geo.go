package search

import (
	"math"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/lexicon"
)

// GeoReference resolves a place name to coordinates. Implementations must
// accept names with or without diacritics and in any letter case.
type GeoReference interface {
	// Resolve returns the coordinates of a place, and whether the place
	// is known. Unknown places disable geofiltering rather than failing
	// the search.
	Resolve(place string) (core.GeoPoint, bool)
}

// StaticGeoReference resolves places against a fixed in-memory table.
// It is the default; a geocoding-backed implementation can replace it.
type StaticGeoReference struct {
	places map[string]core.GeoPoint
}

var _ GeoReference = (*StaticGeoReference)(nil)

// NewStaticGeoReference creates a geo reference over the built-in city table.
func NewStaticGeoReference() *StaticGeoReference {
	return &StaticGeoReference{
		places: map[string]core.GeoPoint{
			"bucuresti": {Lat: 44.4268, Lon: 26.1025, City: "bucuresti"},
			"cluj":      {Lat: 46.7712, Lon: 23.6236, City: "cluj"},
		},
	}
}

// Resolve looks up a place by its normalized name.
func (g *StaticGeoReference) Resolve(place string) (core.GeoPoint, bool) {
	point, ok := g.places[lexicon.Normalize(place)]
	return point, ok
}

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371

	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
