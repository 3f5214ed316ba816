package search

import (
	"strings"

	"github.com/shelterly/pawmatch/core"
	"github.com/shelterly/pawmatch/lexicon"
)

// signalWeights is the per-candidate split between text-embedding and
// graph-embedding similarity. The two always sum to 1.
type signalWeights struct {
	Text  float32
	Graph float32
}

// adaptiveWeights adjusts the base weight split to the character of the
// query and the candidate. Short category-bearing queries lean on the
// graph signal, queries that share several tokens with the candidate's
// description lean on the text signal, and location-bearing queries give
// the graph a small capped boost.
func (c *Config) adaptiveWeights(query string, animal *core.Animal) signalWeights {
	w := signalWeights{Text: c.BaseTextWeight, Graph: c.BaseGraphWeight}

	wordCount := len(strings.Fields(strings.TrimSpace(query)))
	if wordCount <= c.ShortQueryMaxWords && lexicon.HasCategoryTerms(query) {
		w.Text = c.ShortQueryTextWeight
		w.Graph = c.ShortQueryGraphWeight
	}

	if animal.Description != "" {
		if countSharedTokens(query, animal.Description) >= c.DescriptionMatchMin {
			w.Text = min(float32(1), w.Text+c.DescriptionMatchBoost)
			w.Graph = 1 - w.Text
		}
	}

	if lexicon.HasLocationTerms(query) {
		w.Graph = min(c.LocationGraphCap, w.Graph+c.LocationGraphBoost)
		w.Text = 1 - w.Graph
	}

	return w
}
