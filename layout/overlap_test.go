package layout

import (
	"math"
	"testing"

	"github.com/tsawler/colonnade/model"
)

func TestOverlapScorer_SideBySideWords(t *testing.T) {
	s := NewOverlapScorer()

	// Two words on the same line overlap fully
	words := []model.Word{
		makeWord(50, 100, 140, 112),
		makeWord(350, 100, 440, 112),
	}
	if got := s.Score(words); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected score 1.0, got %f", got)
	}
}

func TestOverlapScorer_StackedWords(t *testing.T) {
	s := NewOverlapScorer()

	// Vertically disjoint words never overlap
	words := []model.Word{
		makeWord(50, 100, 140, 112),
		makeWord(50, 130, 140, 142),
		makeWord(50, 160, 140, 172),
	}
	if got := s.Score(words); got != 0 {
		t.Errorf("expected score 0, got %f", got)
	}
}

func TestOverlapScorer_MixedPairs(t *testing.T) {
	s := NewOverlapScorer()

	// One aligned pair out of three pairs total
	words := []model.Word{
		makeWord(50, 100, 140, 112),
		makeWord(350, 100, 440, 112),
		makeWord(50, 200, 140, 212),
	}
	if got := s.Score(words); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("expected score 1/3, got %f", got)
	}
}

func TestOverlapScorer_FewWords(t *testing.T) {
	s := NewOverlapScorer()

	if got := s.Score(nil); got != 0 {
		t.Errorf("expected 0 for no words, got %f", got)
	}
	if got := s.Score([]model.Word{makeWord(0, 0, 10, 10)}); got != 0 {
		t.Errorf("expected 0 for a single word, got %f", got)
	}
}

func TestOverlapScorer_SamplingDeterministic(t *testing.T) {
	s := NewOverlapScorer()

	// 300 words exceed the 10,000-pair budget, forcing subsampling
	var words []model.Word
	for i := 0; i < 300; i++ {
		y := float64(i%50) * 20
		x := float64(i%10) * 60
		words = append(words, makeWord(x, y, x+40, y+12))
	}

	first := s.Score(words)
	second := s.Score(words)
	if first != second {
		t.Errorf("sampled score not deterministic: %f vs %f", first, second)
	}
	if first < 0 || first > 1 {
		t.Errorf("score %f outside [0,1]", first)
	}
}

func TestOverlapScorer_ConfigValidation(t *testing.T) {
	cfg := DefaultOverlapConfig()
	cfg.PairBudget = 0
	if _, err := NewOverlapScorerWithConfig(cfg); err == nil {
		t.Error("expected error for zero PairBudget")
	}

	cfg = DefaultOverlapConfig()
	cfg.SampleSize = 1
	if _, err := NewOverlapScorerWithConfig(cfg); err == nil {
		t.Error("expected error for SampleSize below 2")
	}
}
