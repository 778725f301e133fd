package layout

import (
	"math"
	"testing"

	"github.com/tsawler/colonnade/model"
)

// Helper to create a word from its bounding box
func makeWord(x0, y0, x1, y1 float64) model.Word {
	return model.Word{Text: "w", X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// makeRow creates one word per (x0, x1) interval, all on the same line.
func makeRow(y float64, intervals ...[2]float64) []model.Word {
	var words []model.Word
	for _, iv := range intervals {
		words = append(words, makeWord(iv[0], y, iv[1], y+12))
	}
	return words
}

func checkPartition(t *testing.T, bounds []model.ColumnBoundary, pageWidth float64) {
	t.Helper()
	if len(bounds) == 0 {
		t.Fatal("expected at least one boundary")
	}
	if bounds[0].Start != 0 {
		t.Errorf("first boundary starts at %f, want 0", bounds[0].Start)
	}
	if bounds[len(bounds)-1].End != pageWidth {
		t.Errorf("last boundary ends at %f, want %f", bounds[len(bounds)-1].End, pageWidth)
	}
	for i := 0; i < len(bounds)-1; i++ {
		if bounds[i].End != bounds[i+1].Start {
			t.Errorf("boundary %d ends at %f but boundary %d starts at %f",
				i, bounds[i].End, i+1, bounds[i+1].Start)
		}
	}
	for i, b := range bounds {
		if b.Width() <= 0 {
			t.Errorf("boundary %d has non-positive width %f", i, b.Width())
		}
	}
}

func TestSeparatorDetector_EmptyInput(t *testing.T) {
	d := NewSeparatorDetector()

	bounds := d.DetectBoundaries(nil, 0)
	if len(bounds) != 1 {
		t.Fatalf("expected 1 boundary, got %d", len(bounds))
	}
	if bounds[0].Start != 0 || bounds[0].End != 612 {
		t.Errorf("expected (0, 612), got (%f, %f)", bounds[0].Start, bounds[0].End)
	}

	// Explicit page width passes through
	bounds = d.DetectBoundaries(nil, 600)
	if bounds[0].End != 600 {
		t.Errorf("expected end 600, got %f", bounds[0].End)
	}
}

func TestSeparatorDetector_NoGaps(t *testing.T) {
	d := NewSeparatorDetector()

	// Overlapping words produce no gaps
	words := []model.Word{
		makeWord(50, 100, 200, 112),
		makeWord(180, 100, 350, 112),
	}
	bounds := d.DetectBoundaries(words, 600)
	if len(bounds) != 1 {
		t.Fatalf("expected 1 boundary, got %d", len(bounds))
	}
	checkPartition(t, bounds, 600)
}

func TestSeparatorDetector_DominantGutter(t *testing.T) {
	// One 205pt gap among uniform 5pt gaps must select the aggressive
	// threshold tier and split near the gap midpoint.
	d := NewSeparatorDetector()

	var words []model.Word
	for i := 0; i < 10; i++ {
		x := float64(i) * 20
		words = append(words, makeWord(x, 100, x+15, 112))
	}
	for i := 0; i < 10; i++ {
		x := 400 + float64(i)*20
		words = append(words, makeWord(x, 100, x+15, 112))
	}

	bounds := d.DetectBoundaries(words, 600)
	if len(bounds) != 2 {
		t.Fatalf("expected 2 boundaries, got %d", len(bounds))
	}
	checkPartition(t, bounds, 600)

	// Gap runs from 195 to 400; midpoint 297.5
	if math.Abs(bounds[0].End-297.5) > 5 {
		t.Errorf("expected split near 297.5, got %f", bounds[0].End)
	}
}

func TestSeparatorDetector_UniformSpacing(t *testing.T) {
	// Uniform 10pt gaps select the conservative tier and produce no split.
	d := NewSeparatorDetector()

	var words []model.Word
	for i := 0; i < 12; i++ {
		x := float64(i) * 50
		words = append(words, makeWord(x, 100, x+40, 112))
	}

	bounds := d.DetectBoundaries(words, 600)
	if len(bounds) != 1 {
		t.Fatalf("expected 1 boundary for uniform spacing, got %d", len(bounds))
	}
	checkPartition(t, bounds, 600)
}

func TestSeparatorDetector_FallbackTier(t *testing.T) {
	// A single 12pt gap is below every primary threshold but above half of
	// MinGapWidth, so the fallback tier must find it.
	d := NewSeparatorDetector()

	words := []model.Word{
		makeWord(0, 100, 100, 112),
		makeWord(95, 100, 200, 112),
		makeWord(212, 100, 300, 112),
		makeWord(295, 100, 400, 112),
	}

	bounds := d.DetectBoundaries(words, 400)
	if len(bounds) != 2 {
		t.Fatalf("expected fallback tier to split, got %d boundaries", len(bounds))
	}
	checkPartition(t, bounds, 400)
	if math.Abs(bounds[0].End-206) > 1 {
		t.Errorf("expected split at 206, got %f", bounds[0].End)
	}
}

func TestSeparatorDetector_NonAdaptive(t *testing.T) {
	cfg := DefaultSeparatorConfig()
	cfg.Adaptive = false
	d, err := NewSeparatorDetectorWithConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// A 30pt gap clears the fixed MinGapWidth threshold of 20
	words := []model.Word{
		makeWord(0, 100, 150, 112),
		makeWord(180, 100, 400, 112),
	}
	bounds := d.DetectBoundaries(words, 400)
	if len(bounds) != 2 {
		t.Fatalf("expected 2 boundaries, got %d", len(bounds))
	}
	if math.Abs(bounds[0].End-165) > 1 {
		t.Errorf("expected split at 165, got %f", bounds[0].End)
	}
}

func TestSeparatorDetector_MergesCloseSeparators(t *testing.T) {
	// Two qualifying gaps 40pt apart (closer than MinColumnWidth) must
	// collapse into one separator, keeping the first.
	d := NewSeparatorDetector()

	words := []model.Word{
		makeWord(0, 100, 100, 112),
		makeWord(130, 100, 140, 112),
		makeWord(170, 100, 300, 112),
	}

	bounds := d.DetectBoundaries(words, 300)
	if len(bounds) != 2 {
		t.Fatalf("expected 2 boundaries after merging, got %d", len(bounds))
	}
	checkPartition(t, bounds, 300)
	if math.Abs(bounds[0].End-115) > 1 {
		t.Errorf("expected first separator kept at 115, got %f", bounds[0].End)
	}
}

func TestSeparatorDetector_DropsNarrowColumn(t *testing.T) {
	// The separator at x=35 would leave a 35pt first column, below
	// MinColumnWidth, so it is dropped.
	d := NewSeparatorDetector()

	words := []model.Word{
		makeWord(0, 100, 10, 112),
		makeWord(60, 100, 400, 112),
	}

	bounds := d.DetectBoundaries(words, 400)
	if len(bounds) != 1 {
		t.Fatalf("expected narrow column to be dropped, got %d boundaries", len(bounds))
	}
	checkPartition(t, bounds, 400)
}

func TestSeparatorDetector_ExtendsFinalColumn(t *testing.T) {
	// Content ends at x=420 but the final boundary must still reach the
	// page edge.
	d := NewSeparatorDetector()

	words := []model.Word{
		makeWord(50, 100, 250, 112),
		makeWord(350, 100, 420, 112),
	}

	bounds := d.DetectBoundaries(words, 600)
	checkPartition(t, bounds, 600)
	if bounds[len(bounds)-1].End != 600 {
		t.Errorf("expected final column extended to 600, got %f", bounds[len(bounds)-1].End)
	}
}

func TestSeparatorDetector_ConfigValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SeparatorConfig)
	}{
		{"zero MinGapWidth", func(c *SeparatorConfig) { c.MinGapWidth = 0 }},
		{"negative MinColumnWidth", func(c *SeparatorConfig) { c.MinColumnWidth = -1 }},
		{"zero FallbackGapFactor", func(c *SeparatorConfig) { c.FallbackGapFactor = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSeparatorConfig()
			tc.mutate(&cfg)
			if _, err := NewSeparatorDetectorWithConfig(cfg); err == nil {
				t.Error("expected configuration error")
			}
		})
	}
}

func TestPercentile(t *testing.T) {
	values := []float64{10, 10, 100}
	if got := percentile(values, 0.5); got != 10 {
		t.Errorf("expected median 10, got %f", got)
	}
	if got := percentile(values, 1.0); got != 100 {
		t.Errorf("expected max 100, got %f", got)
	}
	if got := percentile(values, 0.6); math.Abs(got-28) > 1e-9 {
		t.Errorf("expected interpolated 28, got %f", got)
	}
	if got := percentile(nil, 0.5); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
}
