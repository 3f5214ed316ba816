package rdf2vec

import "errors"

var (
	// ErrEmptyCorpus is returned when training is attempted on an empty
	// walk corpus. Callers treat it as a documented no-op: no model is
	// produced and any previously published model stays in service.
	ErrEmptyCorpus = errors.New("empty walk corpus")

	// ErrEmptyVocabulary is returned when no token meets the minimum
	// frequency, leaving nothing to train on.
	ErrEmptyVocabulary = errors.New("no token meets the minimum frequency")

	// ErrInvalidConfig is returned for out-of-range training parameters.
	ErrInvalidConfig = errors.New("invalid training config")
)

// Config holds the skip-gram training parameters.
// All values are tunable; the defaults mirror the walk corpus they were
// tuned on (small graphs, short walks).
type Config struct {
	// Dimension is the embedding vector size.
	Dimension int

	// WindowSize is the maximum distance between center and context token.
	WindowSize int

	// MinFrequency drops tokens occurring fewer times in the corpus.
	MinFrequency int

	// LearningRate is the starting SGD step size; it decays linearly to
	// 1e-4 of itself over the run.
	LearningRate float64

	// Epochs is the number of passes over the corpus.
	Epochs int

	// NegativeSamples is the number of noise tokens drawn per
	// (center, context) pair.
	NegativeSamples int

	// Seed fixes the random source; 0 draws a random seed.
	Seed uint64
}

// DefaultConfig returns the standard training parameters.
func DefaultConfig() Config {
	return Config{
		Dimension:       100,
		WindowSize:      5,
		MinFrequency:    1,
		LearningRate:    0.025,
		Epochs:          10,
		NegativeSamples: 5,
	}
}

// Validate checks the parameter ranges.
func (c Config) Validate() error {
	if c.Dimension < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("dimension must be at least 1"))
	}
	if c.WindowSize < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("window size must be at least 1"))
	}
	if c.MinFrequency < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("min frequency must be at least 1"))
	}
	if c.LearningRate <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("learning rate must be positive"))
	}
	if c.Epochs < 1 {
		return errors.Join(ErrInvalidConfig, errors.New("epochs must be at least 1"))
	}
	if c.NegativeSamples < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("negative samples cannot be negative"))
	}
	return nil
}
