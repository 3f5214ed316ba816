package search

import (
	"strings"
	"unicode"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/lexicon"
)

// keywordMatchScore measures lexical overlap between a query and a
// candidate's name, description and species. Name matches weigh most,
// description tokens match by shared prefix so inflected Romanian forms
// still count. The result is normalized by query length, scaled by term
// coverage and clamped to [0,1].
func keywordMatchScore(animal *core.Animal, query string) float32 {
	terms := strings.Fields(lexicon.Normalize(query))
	if len(terms) == 0 {
		return 0
	}

	name := lexicon.Normalize(animal.Name)
	desc := lexicon.Normalize(animal.Description)
	species := lexicon.Normalize(animal.Species)
	descWords := splitWords(desc)

	var totalScore float32
	matchedTerms := 0

	for _, term := range terms {
		if len(term) < 2 {
			continue
		}

		var termScore float32

		if name == term {
			termScore += 1.0
		} else if strings.Contains(name, term) {
			termScore += 0.8
		}

		for _, word := range descWords {
			if commonPrefixLength(word, term) >= 3 {
				lengthBonus := min(float32(0.3), float32(len(term))*0.05)
				termScore += 0.65 + lengthBonus
				break
			}
		}

		if strings.Contains(species, term) {
			termScore += 0.7
		}

		if termScore > 0 {
			totalScore += termScore
			matchedTerms++
		}
	}

	coverage := float32(matchedTerms) / float32(len(terms))
	totalScore = (totalScore / float32(len(terms))) * (0.7 + 0.3*coverage)

	return min(float32(1), totalScore)
}

// animalQueryMatch scores how well a candidate's attributes alone match
// the query, without embeddings. Used to judge graph-embedding neighbors
// and to pick query-representative candidates.
func animalQueryMatch(animal *core.Animal, query string) float32 {
	var score float32
	terms := strings.Fields(lexicon.Normalize(query))

	species := lexicon.Normalize(animal.Species)
	for _, term := range terms {
		if len(term) > 2 && strings.Contains(species, term) {
			score += 0.4
			break
		}
	}

	name := lexicon.Normalize(animal.Name)
	for _, term := range terms {
		if len(term) > 2 && strings.Contains(name, term) {
			score += 0.3
			break
		}
	}

	desc := lexicon.Normalize(animal.Description)
	descMatches := 0
	for _, term := range terms {
		if len(term) > 2 && strings.Contains(desc, term) {
			descMatches++
		}
	}
	if descMatches > 0 {
		score += min(float32(0.4), float32(descMatches)*0.1)
	}

	return min(float32(1), score)
}

// countSharedTokens counts query tokens that appear verbatim among the
// description's tokens.
func countSharedTokens(query, description string) int {
	descSet := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(description)) {
		descSet[word] = true
	}

	count := 0
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if descSet[word] {
			count++
		}
	}
	return count
}

func commonPrefixLength(a, b string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
