package lexicon

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category word lists. Matching is whole-word over normalized text, and the
// order of this slice is the precedence order: a query containing terms from
// several categories resolves to the first category listed here. Cat is
// checked before dog; callers depend on that order staying put.
var categories = []category{
	{
		name: "pisica",
		words: []string{
			"pisica", "pisică", "pisicuta", "pisicuţa", "pisicuța",
			"pisoias", "pisoiaș", "pisoiasi", "pisoiași",
			"mâță", "mâta", "matza", "motan", "motanel", "motănel",
			"feline", "felina", "miaulă", "miaună", "cat",
		},
	},
	{
		name: "caine",
		words: []string{
			"catel", "căţel", "cătel", "caine", "căine",
			"catelus", "cățeluș", "catelusul", "cățelușul",
			"catelu", "cățelu", "canine", "canina", "latra", "latră", "dog",
		},
	},
}

type category struct {
	name  string
	words []string
}

// knownPlaces is the curated list of recognizable place names, already
// normalized. Containment matching lets multi-word names like "baia mare"
// match inside longer queries.
var knownPlaces = []string{
	"bucuresti", "arad", "cluj-napoca", "cluj", "iasi",
	"constanta", "timisoara", "brasov", "galati", "ploiesti",
	"craiova", "oradea", "pitesti", "sibiu", "baia mare",
	"buzau", "targu mures", "alba iulia",
}

// locationMarkers are preposition-like tokens that tend to precede a place
// name ("apartament in Cluj", "catel din Arad").
var locationMarkers = map[string]bool{
	"in":  true,
	"din": true,
	"la":  true,
}

// categoryTerms and locationTerms back the query-shape predicates used by
// adaptive weighting. Matching is substring over normalized text.
var categoryTerms = []string{"pisica", "caine", "catel", "maca", "motan", "feline", "canine"}

var locationTerms = []string{"bucuresti", "cluj", "zona", "sector", "cartier"}

// stripMarks removes Unicode combining marks after NFD decomposition,
// turning "pisică" into "pisica".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Hints carries what could be read out of a free-text query.
// Empty fields mean "no hint", never an error.
type Hints struct {
	Category string
	Location string
}

// Normalize decomposes accents, strips diacritic marks, lowercases and trims.
// It is the single normalization used across matching, so results are
// comparable wherever text meets text.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(strings.ToLower(out))
}

// Extract derives a category and a location hint from a free-text query.
// It is a pure function of the normalized input.
func Extract(query string) Hints {
	normalized := Normalize(query)
	return Hints{
		Category: matchCategory(normalized),
		Location: matchLocation(normalized),
	}
}

// ExtractCategory runs the category lists alone, in precedence order.
// Used both on queries and to backfill a missing species from a description.
func ExtractCategory(text string) string {
	return matchCategory(Normalize(text))
}

// HasCategoryTerms reports whether the query mentions a specific animal term.
func HasCategoryTerms(query string) bool {
	normalized := Normalize(query)
	for _, term := range categoryTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}

// HasLocationTerms reports whether the query mentions a location-flavored term.
func HasLocationTerms(query string) bool {
	normalized := Normalize(query)
	for _, term := range locationTerms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}

func matchCategory(normalized string) string {
	words := tokenSet(normalized)
	for _, cat := range categories {
		for _, w := range cat.words {
			if words[Normalize(w)] {
				return cat.name
			}
		}
	}
	return ""
}

func matchLocation(normalized string) string {
	// Priority path: curated place names by containment.
	for _, place := range knownPlaces {
		if strings.Contains(normalized, place) {
			return place
		}
	}

	// Fallback: token following a preposition-like marker.
	tokens := strings.Fields(normalized)
	for i := 0; i < len(tokens)-1; i++ {
		if !locationMarkers[tokens[i]] {
			continue
		}
		candidate := lettersOnly(tokens[i+1])
		if len(candidate) > 2 {
			return candidate
		}
	}
	return ""
}

// tokenSet splits normalized text on non-letter, non-digit runes.
func tokenSet(normalized string) map[string]bool {
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, s)
}
