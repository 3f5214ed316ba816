package graph

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
)

const (
	defaultWalkLength   = 8
	defaultWalksPerNode = 10
)

var (
	// ErrInvalidWalkLength is returned for a walk length below 1.
	ErrInvalidWalkLength = errors.New("walk length must be at least 1")

	// ErrInvalidWalksPerNode is returned for a walks-per-node count below 1.
	ErrInvalidWalksPerNode = errors.New("walks per node must be at least 1")
)

// Walker samples random walks over a graph. Every node carrying a species
// edge is a start node; each start node gets an independent set of walks.
// Sampling is random by design; seed it for reproducible corpora.
type Walker struct {
	walkLength   int
	walksPerNode int
	seed         uint64
	poolSize     int
	logger       *slog.Logger
}

// WalkerOption configures a Walker.
type WalkerOption func(*Walker) error

// WithWalkLength sets the maximum number of elements per walk.
func WithWalkLength(length int) WalkerOption {
	return func(w *Walker) error {
		if length < 1 {
			return ErrInvalidWalkLength
		}
		w.walkLength = length
		return nil
	}
}

// WithWalksPerNode sets how many walks start from each animal node.
func WithWalksPerNode(count int) WalkerOption {
	return func(w *Walker) error {
		if count < 1 {
			return ErrInvalidWalksPerNode
		}
		w.walksPerNode = count
		return nil
	}
}

// WithSeed fixes the random source. A seeded walker produces the same
// corpus for the same graph regardless of worker scheduling, because each
// start node derives its own generator from the seed and its position.
func WithSeed(seed uint64) WalkerOption {
	return func(w *Walker) error {
		w.seed = seed
		return nil
	}
}

// WithPoolSize sets the sampling worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) WalkerOption {
	return func(w *Walker) error {
		if size < 1 {
			size = 1
		}
		w.poolSize = size
		return nil
	}
}

// WithWalkerLogger sets a custom logger.
// Default is slog.Default().
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *Walker) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewWalker creates a walker with the default walk shape (length 8,
// 10 walks per node) and a random seed.
func NewWalker(opts ...WalkerOption) (*Walker, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	w := &Walker{
		walkLength:   defaultWalkLength,
		walksPerNode: defaultWalksPerNode,
		seed:         rand.Uint64(),
		poolSize:     poolSize,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Walks samples walksPerNode walks from every animal node of g.
// A walk moves along uniformly chosen outgoing edges; reaching a literal
// appends its string form and ends the walk, as does a node without
// outgoing edges. Short walks at graph leaves are expected and valid.
func (w *Walker) Walks(ctx context.Context, g *Graph) ([][]string, error) {
	starts := g.AnimalNodes()
	if len(starts) == 0 {
		return nil, nil
	}

	pool, err := ants.NewPool(w.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	// One slot per start node keeps the output order independent of
	// worker scheduling.
	perStart := make([][][]string, len(starts))
	var wg sync.WaitGroup

	for i, start := range starts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		i, start := i, start
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(w.seed, uint64(i)))
			walks := make([][]string, 0, w.walksPerNode)
			for j := 0; j < w.walksPerNode; j++ {
				walks = append(walks, w.walk(start, rng))
			}
			perStart[i] = walks
		})
		if submitErr != nil {
			wg.Done()
			return nil, submitErr
		}
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var corpus [][]string
	for _, walks := range perStart {
		corpus = append(corpus, walks...)
	}
	w.logger.Debug("sampled random walks",
		"startNodes", len(starts), "walks", len(corpus))
	return corpus, nil
}

// Sentences samples walks and joins each into a whitespace-separated
// sentence, the form the embedding trainer consumes.
func (w *Walker) Sentences(ctx context.Context, g *Graph) ([]string, error) {
	walks, err := w.Walks(ctx, g)
	if err != nil {
		return nil, err
	}
	sentences := make([]string, len(walks))
	for i, walk := range walks {
		sentences[i] = strings.Join(walk, " ")
	}
	return sentences, nil
}

func (w *Walker) walk(start *Node, rng *rand.Rand) []string {
	walk := make([]string, 0, w.walkLength)
	walk = append(walk, start.Key)

	current := start
	for step := 1; step < w.walkLength; step++ {
		if len(current.Edges) == 0 {
			break
		}
		edge := current.Edges[rng.IntN(len(current.Edges))]
		if next, ok := edge.Target.Node(); ok {
			current = next
			walk = append(walk, next.Key)
			continue
		}
		// Literals are terminal.
		walk = append(walk, edge.Target.Literal())
		break
	}
	return walk
}
