package layout

import (
	"fmt"
	"math/rand"

	"github.com/tsawler/colonnade/model"
)

// OverlapConfig holds configuration for the pairwise y-overlap scorer.
type OverlapConfig struct {
	// PairBudget caps full pairwise enumeration. Word lists whose pair
	// count n*(n-1)/2 exceeds the budget are subsampled. Default: 10000.
	PairBudget int

	// SampleSize is the number of words kept when subsampling. Default: 200.
	SampleSize int
}

// DefaultOverlapConfig returns sensible default configuration.
func DefaultOverlapConfig() OverlapConfig {
	return OverlapConfig{
		PairBudget: 10000,
		SampleSize: 200,
	}
}

func (c OverlapConfig) validate() error {
	if c.PairBudget < 1 {
		return fmt.Errorf("layout: PairBudget must be at least 1, got %d", c.PairBudget)
	}
	if c.SampleSize < 2 {
		return fmt.Errorf("layout: SampleSize must be at least 2, got %d", c.SampleSize)
	}
	return nil
}

// OverlapScorer measures the mean vertical overlap between word pairs. High
// values mean many words share vertical position while differing in x, a
// multi-column signature. It is a fallback signal, consulted only when the
// gutter scan is inconclusive.
type OverlapScorer struct {
	config OverlapConfig
}

// NewOverlapScorer creates a scorer with default configuration.
func NewOverlapScorer() *OverlapScorer {
	s, _ := NewOverlapScorerWithConfig(DefaultOverlapConfig())
	return s
}

// NewOverlapScorerWithConfig creates a scorer with custom configuration.
func NewOverlapScorerWithConfig(config OverlapConfig) (*OverlapScorer, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &OverlapScorer{config: config}, nil
}

// Score returns the mean pairwise y-overlap in [0, 1]. Fewer than two words
// score 0.
//
// Subsampling uses a fixed-seed PRNG so repeated runs on identical input
// produce identical scores.
func (s *OverlapScorer) Score(words []model.Word) float64 {
	if len(words) < 2 {
		return 0
	}

	sample := words
	if len(words)*(len(words)-1)/2 > s.config.PairBudget && len(words) > s.config.SampleSize {
		sample = subsample(words, s.config.SampleSize)
	}

	total := 0.0
	pairs := 0
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			total += sample[i].YOverlap(sample[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

// subsample picks n words uniformly without replacement, deterministically.
func subsample(words []model.Word, n int) []model.Word {
	rng := rand.New(rand.NewSource(int64(len(words))))
	perm := rng.Perm(len(words))
	out := make([]model.Word, n)
	for i := 0; i < n; i++ {
		out[i] = words[perm[i]]
	}
	return out
}
