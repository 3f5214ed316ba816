package search

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/shelterly/pawmatch/ai"
	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/lexicon"
	"github.com/shelterly/pawmatch/storage"
)

// Mode selects which similarity signals participate in a ranking.
type Mode int

const (
	// Hybrid combines text and graph similarity with adaptive weighting.
	Hybrid Mode = iota
	// TextOnly uses only text-embedding similarity.
	TextOnly
	// GraphOnly uses only graph-embedding similarity.
	GraphOnly
)

func (m Mode) String() string {
	switch m {
	case TextOnly:
		return "text"
	case GraphOnly:
		return "graph"
	default:
		return "hybrid"
	}
}

// Stats summarizes the searchable corpus.
type Stats struct {
	TotalAnimals               int
	AnimalsWithTextEmbeddings  int
	AnimalsWithGraphEmbeddings int
}

// Searcher ranks animal records against free-text queries by combining
// text-embedding similarity, graph-embedding similarity and keyword overlap.
type Searcher struct {
	animals    storage.AnimalRepository
	users      storage.UserRepository
	embeddings storage.EmbeddingRepository
	embedder   ai.Embedder
	geo        GeoReference
	config     *Config
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithGeoReference sets the place resolver used by the geofilter.
// Default is the built-in static city table.
func WithGeoReference(geo GeoReference) Option {
	return func(s *Searcher) error {
		if geo == nil {
			return errors.New("geo reference cannot be nil")
		}
		s.geo = geo
		return nil
	}
}

// WithConfig replaces the scoring configuration.
func WithConfig(config *Config) Option {
	return func(s *Searcher) error {
		if config == nil {
			return errors.New("config cannot be nil")
		}
		if err := config.Validate(); err != nil {
			return err
		}
		s.config = config
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	animalRepository storage.AnimalRepository,
	userRepository storage.UserRepository,
	embeddingRepository storage.EmbeddingRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	if animalRepository == nil {
		return nil, ErrAnimalRepositoryRequired
	}
	if userRepository == nil {
		return nil, ErrUserRepositoryRequired
	}
	if embeddingRepository == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		animals:    animalRepository,
		users:      userRepository,
		embeddings: embeddingRepository,
		embedder:   embedder,
		geo:        NewStaticGeoReference(),
		config:     DefaultConfig(),
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search ranks all stored animals against the query and returns the topN
// best matches. Adoption types, when given, narrow the candidate set
// before scoring.
func (s *Searcher) Search(ctx context.Context, query string, topN int, adoptionTypes []string) ([]*core.ScoredAnimal, error) {
	return s.SearchWithMonitor(ctx, query, topN, adoptionTypes, nil)
}

// SearchWithMonitor ranks animals against the query with monitoring.
// The monitor receives callbacks at each stage of the ranking process.
//
// When the embedder is unreachable the search degrades to graph and
// keyword signals instead of failing outright.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, topN int, adoptionTypes []string, monitor SearchMonitor) ([]*core.ScoredAnimal, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}
	if topN <= 0 {
		return nil, ErrInvalidTopN
	}

	monitor.Start(query)

	queryVec, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Warn("query embedding failed, degrading to graph and keyword ranking", "err", err)
		monitor.EmbedderDegraded(err)
		queryVec = nil
	} else {
		monitor.QueryEmbedded(len(queryVec))
	}

	hints := lexicon.Extract(query)
	monitor.HintsExtracted(hints.Category, hints.Location)

	animals, err := s.animals.ListAnimals(ctx)
	if err != nil {
		s.logger.Error("error listing animals", "err", err)
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		s.logger.Error("error listing users", "err", err)
		return nil, err
	}
	embeddings, err := s.embeddings.AllGraphEmbeddings(ctx)
	if err != nil {
		s.logger.Error("error loading graph embeddings", "err", err)
		return nil, err
	}

	userMap := make(map[string]*core.User, len(users))
	for _, user := range users {
		userMap[user.ID] = user
	}
	animalsByID := make(map[string]*core.Animal, len(animals))
	for _, animal := range animals {
		animalsByID[animal.ID] = animal
	}

	candidates := filterByAdoptionTypes(animals, adoptionTypes)
	candidates = filterByCategory(candidates, hints.Category)
	candidates = s.filterByLocation(candidates, hints.Location, userMap)
	monitor.AfterFiltering(len(candidates))

	normalizedQuery := lexicon.Normalize(query)

	scored := make([]*core.ScoredAnimal, 0, len(candidates))
	for _, animal := range candidates {
		var textSim float32
		if len(queryVec) > 0 && len(animal.Vector) > 0 {
			textSim = Cosine(queryVec, animal.Vector)
		}

		graphSim := s.graphQuerySimilarity(animal, query, hints, embeddings, animals, animalsByID)

		weights := s.config.adaptiveWeights(query, animal)
		keyword := keywordMatchScore(animal, query)

		combined := clamp01(weights.Text*textSim + weights.Graph*graphSim + keyword*s.config.KeywordBonusFactor)

		// Second additive pass: smaller keyword bonus plus an exact-name bonus.
		combined += keyword * s.config.SecondPassKeywordBonus
		if animal.Name != "" && strings.Contains(normalizedQuery, lexicon.Normalize(animal.Name)) {
			combined += s.config.ExactNameBonus
		}
		combined = clamp01(combined)

		if combined > 0 {
			monitor.CandidateScored(animal, textSim, graphSim, combined)
			scored = append(scored, &core.ScoredAnimal{Animal: animal, Score: combined})
		}
	}

	sortByScore(scored)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	monitor.Finish(scored)

	return scored, nil
}

// FindSimilar ranks other animals by similarity to the given one.
// An unknown id yields an empty result, not an error.
func (s *Searcher) FindSimilar(ctx context.Context, animalID string, topN int, mode Mode) ([]*core.ScoredAnimal, error) {
	if animalID == "" {
		return nil, core.ErrEmptyID
	}
	if topN <= 0 {
		return nil, ErrInvalidTopN
	}

	target, err := s.animals.GetAnimal(ctx, animalID)
	if errors.Is(err, storage.ErrNotFound) {
		return []*core.ScoredAnimal{}, nil
	}
	if err != nil {
		return nil, err
	}

	animals, err := s.animals.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	embeddings, err := s.embeddings.AllGraphEmbeddings(ctx)
	if err != nil {
		return nil, err
	}

	// The target's attributes stand in for a query when picking the
	// text/graph weight split per candidate.
	synthetic := syntheticQuery(target)

	scored := make([]*core.ScoredAnimal, 0, len(animals))
	for _, candidate := range animals {
		if candidate.ID == animalID {
			continue
		}

		var similarity float32
		switch mode {
		case TextOnly:
			similarity = Cosine(target.Vector, candidate.Vector)
		case GraphOnly:
			similarity = Cosine(embeddings[target.ID], embeddings[candidate.ID])
		default:
			textSim := Cosine(target.Vector, candidate.Vector)
			graphSim := Cosine(embeddings[target.ID], embeddings[candidate.ID])
			weights := s.config.adaptiveWeights(synthetic, candidate)
			similarity = weights.Text*textSim + weights.Graph*graphSim
		}

		if similarity > 0 {
			scored = append(scored, &core.ScoredAnimal{Animal: candidate, Score: similarity})
		}
	}

	sortByScore(scored)
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// Stats reports how much of the corpus carries each embedding signal.
func (s *Searcher) Stats(ctx context.Context) (*Stats, error) {
	animals, err := s.animals.ListAnimals(ctx)
	if err != nil {
		return nil, err
	}
	withText := 0
	for _, animal := range animals {
		if len(animal.Vector) > 0 {
			withText++
		}
	}
	withGraph, err := s.embeddings.CountGraphEmbeddings(ctx)
	if err != nil {
		return nil, err
	}
	return &Stats{
		TotalAnimals:               len(animals),
		AnimalsWithTextEmbeddings:  withText,
		AnimalsWithGraphEmbeddings: withGraph,
	}, nil
}

// graphQuerySimilarity scores a candidate against the query through the
// stored graph embeddings. Strategy 1 judges the candidate by how well its
// nearest graph neighbors match the query lexically. When no neighbor
// clears the match threshold it falls back to direct category equality,
// then scaled keyword overlap, then the maximum cosine against
// query-representative candidates.
func (s *Searcher) graphQuerySimilarity(
	animal *core.Animal,
	query string,
	hints lexicon.Hints,
	embeddings map[string][]float32,
	all []*core.Animal,
	byID map[string]*core.Animal,
) float32 {
	candidateVec, ok := embeddings[animal.ID]
	if !ok || len(candidateVec) == 0 {
		return 0
	}

	var matchSum float32
	matching := 0
	for _, id := range nearestByEmbedding(animal.ID, candidateVec, embeddings, s.config.NeighborCount) {
		neighbor, ok := byID[id]
		if !ok {
			continue
		}
		if match := animalQueryMatch(neighbor, query); match > s.config.MatchThreshold {
			matchSum += match
			matching++
		}
	}
	if matching > 0 {
		average := matchSum / float32(matching)
		confidence := min(s.config.ConfidenceBonusCap, float32(matching)/10)
		return min(float32(1), average+confidence)
	}

	if hints.Category != "" && speciesMatchesCategory(animal.Species, hints.Category) {
		return s.config.CategoryFallbackScore
	}
	if keyword := keywordMatchScore(animal, query); keyword > s.config.KeywordFallbackThreshold {
		return keyword * s.config.KeywordFallbackScale
	}

	var maxSim float32
	for _, representative := range s.queryRepresentatives(query, hints, all) {
		repVec, ok := embeddings[representative.ID]
		if !ok {
			continue
		}
		if sim := Cosine(candidateVec, repVec); sim > maxSim {
			maxSim = sim
		}
	}
	return maxSim * s.config.RepresentativeScale
}

// queryRepresentatives picks a few animals whose own attributes match the
// query well, falling back to plain category equality when nothing does.
func (s *Searcher) queryRepresentatives(query string, hints lexicon.Hints, all []*core.Animal) []*core.Animal {
	var representatives []*core.Animal
	for _, animal := range all {
		if animalQueryMatch(animal, query) > s.config.RepresentativeThreshold {
			representatives = append(representatives, animal)
			if len(representatives) == s.config.RepresentativeLimit {
				break
			}
		}
	}

	if len(representatives) == 0 && hints.Category != "" {
		for _, animal := range all {
			if speciesMatchesCategory(animal.Species, hints.Category) {
				representatives = append(representatives, animal)
				if len(representatives) == s.config.CategoryFallbackLimit {
					break
				}
			}
		}
	}

	return representatives
}

// nearestByEmbedding returns up to k entity ids ordered by descending
// cosine similarity against the given vector. Ties break on id so the
// ordering is deterministic.
func nearestByEmbedding(selfID string, vec []float32, embeddings map[string][]float32, k int) []string {
	type neighbor struct {
		id  string
		sim float32
	}

	neighbors := make([]neighbor, 0, len(embeddings))
	for id, other := range embeddings {
		if id == selfID {
			continue
		}
		neighbors = append(neighbors, neighbor{id: id, sim: Cosine(vec, other)})
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].sim != neighbors[j].sim {
			return neighbors[i].sim > neighbors[j].sim
		}
		return neighbors[i].id < neighbors[j].id
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	ids := make([]string, len(neighbors))
	for i, n := range neighbors {
		ids[i] = n.id
	}
	return ids
}

func filterByAdoptionTypes(animals []*core.Animal, requested []string) []*core.Animal {
	if len(requested) == 0 {
		return animals
	}

	filtered := make([]*core.Animal, 0, len(animals))
	for _, animal := range animals {
		if len(animal.AdoptionTypes) == 0 {
			continue
		}
		matches := false
		for _, want := range requested {
			for _, have := range animal.AdoptionTypes {
				if adoptionTypeMatches(want, have) {
					matches = true
					break
				}
			}
			if matches {
				break
			}
		}
		if matches {
			filtered = append(filtered, animal)
		}
	}
	return filtered
}

// adoptionTypeMatches compares two adoption-type labels ignoring case and
// diacritics, accepting substring containment in either direction.
func adoptionTypeMatches(requested, actual string) bool {
	nr := lexicon.Normalize(requested)
	na := lexicon.Normalize(actual)
	return na == nr || strings.Contains(na, nr) || strings.Contains(nr, na)
}

func filterByCategory(animals []*core.Animal, category string) []*core.Animal {
	if category == "" {
		return animals
	}
	filtered := make([]*core.Animal, 0, len(animals))
	for _, animal := range animals {
		if speciesMatchesCategory(animal.Species, category) {
			filtered = append(filtered, animal)
		}
	}
	return filtered
}

// speciesMatchesCategory compares a stored species label against an
// extracted category hint through the lexicon, so "Pisica", "pisică" and
// "cat" all land on the same canonical category.
func speciesMatchesCategory(species, category string) bool {
	return species != "" && lexicon.ExtractCategory(species) == category
}

// filterByLocation keeps animals whose owner is located within
// Config.MaxDistanceKM of the resolved place. An unrecognized place
// disables the filter instead of emptying the result.
func (s *Searcher) filterByLocation(animals []*core.Animal, location string, users map[string]*core.User) []*core.Animal {
	if location == "" {
		return animals
	}

	target, ok := s.geo.Resolve(location)
	if !ok {
		s.logger.Info("no coordinates for place, skipping geofilter", "place", location)
		return animals
	}

	filtered := make([]*core.Animal, 0, len(animals))
	for _, animal := range animals {
		owner := users[animal.OwnerID]
		if owner == nil || owner.Location == nil {
			continue
		}
		distance := Haversine(owner.Location.Lat, owner.Location.Lon, target.Lat, target.Lon)
		if distance <= s.config.MaxDistanceKM {
			filtered = append(filtered, animal)
		}
	}
	s.logger.Debug("geofilter applied", "place", location, "kept", len(filtered), "of", len(animals))
	return filtered
}

// syntheticQuery builds a query-like string from an animal's attributes
// for similarity weighting: species, name, and the first five description
// words when the description is long enough to be informative.
func syntheticQuery(animal *core.Animal) string {
	var parts []string
	if animal.Species != "" {
		parts = append(parts, animal.Species)
	}
	if animal.Name != "" {
		parts = append(parts, animal.Name)
	}
	if len(animal.Description) > 20 {
		words := strings.Fields(animal.Description)
		parts = append(parts, words[:min(5, len(words))]...)
	}
	return strings.Join(parts, " ")
}

func sortByScore(scored []*core.ScoredAnimal) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}
