package search

import "github.com/shelterly/pawmatch/core"

// SearchMonitor provides hooks to observe the ranking process.
// Implement this interface to track intermediate steps during a search.
type SearchMonitor interface {
	Start(query string)
	QueryEmbedded(dimension int)
	EmbedderDegraded(err error)
	HintsExtracted(category, location string)
	AfterFiltering(candidateCount int)
	CandidateScored(animal *core.Animal, textSim, graphSim, score float32)
	Finish(results []*core.ScoredAnimal)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                        {}
func (n *noopMonitor) QueryEmbedded(_ int)                                   {}
func (n *noopMonitor) EmbedderDegraded(_ error)                              {}
func (n *noopMonitor) HintsExtracted(_, _ string)                            {}
func (n *noopMonitor) AfterFiltering(_ int)                                  {}
func (n *noopMonitor) CandidateScored(_ *core.Animal, _, _, _ float32)       {}
func (n *noopMonitor) Finish(_ []*core.ScoredAnimal)                         {}
