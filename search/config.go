package search

import "errors"

// Config holds the tunable scoring constants for the ranking engine.
// The defaults are the tuned production values; none of them is a
// correctness constant.
type Config struct {
	// BaseTextWeight and BaseGraphWeight are the default split between
	// text-embedding and graph-embedding similarity. They must sum to 1.
	BaseTextWeight  float32
	BaseGraphWeight float32

	// ShortQueryMaxWords bounds what counts as a short query. Short
	// queries that also name an animal category shift weight toward the
	// graph signal.
	ShortQueryMaxWords    int
	ShortQueryTextWeight  float32
	ShortQueryGraphWeight float32

	// DescriptionMatchMin is the number of query tokens that must appear
	// verbatim in a candidate's description before the text weight gets
	// boosted by DescriptionMatchBoost.
	DescriptionMatchMin   int
	DescriptionMatchBoost float32

	// LocationGraphBoost is added to the graph weight when the query
	// names a location, capped at LocationGraphCap.
	LocationGraphBoost float32
	LocationGraphCap   float32

	// KeywordBonusFactor scales the keyword score folded into the main
	// combination. SecondPassKeywordBonus and ExactNameBonus are the
	// smaller additive bonuses applied afterwards.
	KeywordBonusFactor     float32
	SecondPassKeywordBonus float32
	ExactNameBonus         float32

	// NeighborCount is how many graph-embedding neighbors are inspected
	// when scoring a candidate against the query. Neighbors whose lexical
	// match exceeds MatchThreshold contribute to the average; the count of
	// contributors adds a confidence bonus of n/10 capped at
	// ConfidenceBonusCap.
	NeighborCount      int
	MatchThreshold     float32
	ConfidenceBonusCap float32

	// Fallbacks used when no neighbor clears MatchThreshold, in order:
	// direct category equality, scaled keyword overlap, scaled maximum
	// cosine against query-representative candidates.
	CategoryFallbackScore    float32
	KeywordFallbackThreshold float32
	KeywordFallbackScale     float32
	RepresentativeThreshold  float32
	RepresentativeLimit      int
	CategoryFallbackLimit    int
	RepresentativeScale      float32

	// MaxDistanceKM is the geofilter radius around a resolved place.
	MaxDistanceKM float64
}

// DefaultConfig returns the tuned production configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseTextWeight:  0.8,
		BaseGraphWeight: 0.2,

		ShortQueryMaxWords:    3,
		ShortQueryTextWeight:  0.4,
		ShortQueryGraphWeight: 0.6,

		DescriptionMatchMin:   2,
		DescriptionMatchBoost: 0.15,

		LocationGraphBoost: 0.1,
		LocationGraphCap:   0.5,

		KeywordBonusFactor:     0.5,
		SecondPassKeywordBonus: 0.3,
		ExactNameBonus:         0.2,

		NeighborCount:      50,
		MatchThreshold:     0.3,
		ConfidenceBonusCap: 0.3,

		CategoryFallbackScore:    0.7,
		KeywordFallbackThreshold: 0.4,
		KeywordFallbackScale:     0.6,
		RepresentativeThreshold:  0.5,
		RepresentativeLimit:      5,
		CategoryFallbackLimit:    3,
		RepresentativeScale:      0.8,

		MaxDistanceKM: 20,
	}
}

// Validate checks the configuration for values that would break scoring.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseTextWeight < 0 || c.BaseGraphWeight < 0 {
		errs = append(errs, errors.New("search config: base weights must be non-negative"))
	}
	if c.NeighborCount <= 0 {
		errs = append(errs, errors.New("search config: NeighborCount must be positive"))
	}
	if c.MaxDistanceKM <= 0 {
		errs = append(errs, errors.New("search config: MaxDistanceKM must be positive"))
	}
	return errors.Join(errs...)
}
