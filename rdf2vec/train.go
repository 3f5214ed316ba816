package rdf2vec

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/blas/blas32"
)

const (
	// unigramPower flattens the negative-sampling distribution.
	unigramPower = 0.75

	// lrFloorFactor bounds the decayed learning rate.
	lrFloorFactor = 1e-4
)

// Train fits a skip-gram model with negative sampling over walk sentences.
// Tokens are opaque node keys and literal fragments split on whitespace;
// there is no stemming or stopword handling because they are not natural-
// language words. Returns ErrEmptyCorpus for an empty corpus and
// ErrEmptyVocabulary when the frequency threshold leaves nothing to train.
// The context is checked between epochs.
func Train(ctx context.Context, sentences []string, cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(sentences) == 0 {
		return nil, ErrEmptyCorpus
	}

	corpus := tokenize(sentences)
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	vocab := buildVocabulary(corpus, cfg.MinFrequency)
	if vocab.size() == 0 {
		return nil, ErrEmptyVocabulary
	}

	encoded, totalTokens := vocab.encode(corpus)

	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, 0x9e3779b97f4a7c15))

	t := newTrainer(vocab, cfg, rng)
	schedule := float64(totalTokens * cfg.Epochs)
	var processed int

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, seq := range encoded {
			for pos, center := range seq {
				lr := cfg.LearningRate * (1 - float64(processed)/schedule)
				if floor := cfg.LearningRate * lrFloorFactor; lr < floor {
					lr = floor
				}
				t.trainWindow(seq, pos, center, float32(lr))
				processed++
			}
		}
	}

	return &Model{
		dim:     cfg.Dimension,
		tokens:  vocab.tokens,
		index:   vocab.index,
		vectors: t.in,
	}, nil
}

func tokenize(sentences []string) [][]string {
	corpus := make([][]string, 0, len(sentences))
	for _, sentence := range sentences {
		fields := strings.Fields(sentence)
		if len(fields) > 0 {
			corpus = append(corpus, fields)
		}
	}
	return corpus
}

// vocabulary maps tokens to indices in first-appearance order, which keeps
// training deterministic for a fixed corpus and seed.
type vocabulary struct {
	tokens []string
	index  map[string]int
	counts []int
}

func (v *vocabulary) size() int { return len(v.tokens) }

func buildVocabulary(corpus [][]string, minFrequency int) *vocabulary {
	freq := make(map[string]int)
	var order []string
	for _, seq := range corpus {
		for _, token := range seq {
			if freq[token] == 0 {
				order = append(order, token)
			}
			freq[token]++
		}
	}

	v := &vocabulary{index: make(map[string]int)}
	for _, token := range order {
		if freq[token] < minFrequency {
			continue
		}
		v.index[token] = len(v.tokens)
		v.tokens = append(v.tokens, token)
		v.counts = append(v.counts, freq[token])
	}
	return v
}

// encode rewrites the corpus as vocabulary indices, dropping out-of-
// vocabulary tokens, and returns the total encoded token count.
func (v *vocabulary) encode(corpus [][]string) ([][]int, int) {
	encoded := make([][]int, 0, len(corpus))
	total := 0
	for _, seq := range corpus {
		ids := make([]int, 0, len(seq))
		for _, token := range seq {
			if id, ok := v.index[token]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			encoded = append(encoded, ids)
			total += len(ids)
		}
	}
	return encoded, total
}

type trainer struct {
	cfg   Config
	rng   *rand.Rand
	in    []float32 // input (center) vectors, the published embeddings
	out   []float32 // output (context) vectors, discarded after training
	cdf   []float64 // cumulative unigram^0.75 distribution
	scratch []float32
}

func newTrainer(vocab *vocabulary, cfg Config, rng *rand.Rand) *trainer {
	n := vocab.size()
	dim := cfg.Dimension

	in := make([]float32, n*dim)
	for i := range in {
		in[i] = (rng.Float32() - 0.5) / float32(dim)
	}

	cdf := make([]float64, n)
	var sum float64
	for i, count := range vocab.counts {
		sum += math.Pow(float64(count), unigramPower)
		cdf[i] = sum
	}

	return &trainer{
		cfg:     cfg,
		rng:     rng,
		in:      in,
		out:     make([]float32, n*dim),
		cdf:     cdf,
		scratch: make([]float32, dim),
	}
}

// trainWindow updates the model for every (center, context) pair produced
// by a randomly shrunk window around pos, word2vec-style.
func (t *trainer) trainWindow(seq []int, pos, center int, lr float32) {
	shrink := t.rng.IntN(t.cfg.WindowSize)
	for off := shrink - t.cfg.WindowSize; off <= t.cfg.WindowSize-shrink; off++ {
		if off == 0 {
			continue
		}
		ctxPos := pos + off
		if ctxPos < 0 || ctxPos >= len(seq) {
			continue
		}
		t.trainPair(center, seq[ctxPos], lr)
	}
}

func (t *trainer) trainPair(center, contextWord int, lr float32) {
	dim := t.cfg.Dimension
	l1 := vec(t.in[center*dim : (center+1)*dim])

	accum := t.scratch
	for i := range accum {
		accum[i] = 0
	}
	accumVec := vec(accum)

	for d := 0; d <= t.cfg.NegativeSamples; d++ {
		target := contextWord
		var label float32 = 1
		if d > 0 {
			target = t.sampleNegative()
			if target == contextWord {
				continue
			}
			label = 0
		}

		l2 := vec(t.out[target*dim : (target+1)*dim])
		g := (label - sigmoid(blas32.Dot(l1, l2))) * lr
		blas32.Axpy(g, l2, accumVec)
		blas32.Axpy(g, l1, l2)
	}

	blas32.Axpy(1, accumVec, l1)
}

func (t *trainer) sampleNegative() int {
	total := t.cdf[len(t.cdf)-1]
	x := t.rng.Float64() * total
	lo, hi := 0, len(t.cdf)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if t.cdf[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func sigmoid(x float32) float32 {
	// Clamp to keep exp well-behaved; gradients are negligible past ±6.
	if x > 6 {
		return 1
	}
	if x < -6 {
		return 0
	}
	return float32(1 / (1 + math.Exp(-float64(x))))
}
