package layout

import (
	"fmt"

	"github.com/tsawler/colonnade/model"
)

// LayoutType is the terminal classification of a page.
type LayoutType int

const (
	// LayoutSingle is a single-column page (type 1).
	LayoutSingle LayoutType = iota + 1
	// LayoutMulti is a clean multi-column page (type 2).
	LayoutMulti
	// LayoutHybrid is a multi-column page interrupted by full-width
	// sections or non-clean gutters (type 3).
	LayoutHybrid
)

// String returns the type name.
func (t LayoutType) String() string {
	switch t {
	case LayoutSingle:
		return "single"
	case LayoutMulti:
		return "multi"
	case LayoutHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// Confidence levels assigned by the decision procedure. The values are
// empirical; see ClassifierConfig for the tunable thresholds they pair with.
const (
	confidenceSingle        = 0.90
	confidenceGutter        = 0.92
	confidenceFallbackBase  = 0.70
	confidenceFallbackRange = 0.25
	confidenceFallbackSlope = 0.40
)

// Metrics carries the diagnostic signal values behind a classification.
type Metrics struct {
	WordCount        int
	Coverage         float64
	HeaderFrac       float64
	GutterX          float64
	Balanced         bool
	ValleyDepthRatio float64
	YOverlap         float64
	FullWidthLines   int
	CompositeScore   float64
}

// Layout is the classification of one page. It is created once by
// Classifier.Classify and never mutated afterwards.
type Layout struct {
	// Type is the layout classification.
	Type LayoutType

	// Boundaries is the left-to-right, gap-free partition of
	// [0, pageWidth] into columns.
	Boundaries []model.ColumnBoundary

	// Confidence of the classification, in [0, 1].
	Confidence float64

	// Metrics are the diagnostic signal values.
	Metrics Metrics
}

// NumColumns returns the number of column boundaries.
func (l *Layout) NumColumns() int {
	return len(l.Boundaries)
}

// TypeName returns the layout type name ("single", "multi", "hybrid").
func (l *Layout) TypeName() string {
	return l.Type.String()
}

// ClassifierConfig holds the sub-detector configurations plus the fusion
// thresholds. The threshold defaults are of empirical origin; change them
// only with data.
type ClassifierConfig struct {
	Separator SeparatorConfig
	Density   DensityConfig
	Gutter    GutterConfig
	Overlap   OverlapConfig
	Line      LineConfig

	// CoverageMin is the gutter coverage at or above which a gutter is
	// considered to persist through the page. Default: 0.70.
	CoverageMin float64

	// HeaderFracMax: a header fraction above this value turns a
	// strong-gutter page from multi into hybrid. Default: 0.05.
	//
	// The default sits exactly at a commonly occurring value in sampled
	// documents and has not been validated as a deliberate cutoff; treat
	// it as a candidate for empirical review.
	HeaderFracMax float64

	// ValleyThreshold normalizes the valley depth ratio in the composite
	// score. Default: 0.5.
	ValleyThreshold float64

	// OverlapScale multiplies the y-overlap score before clamping in the
	// composite. Default: 5.
	OverlapScale float64

	// ValleyWeight, OverlapWeight, and HorizontalWeight are the composite
	// score weights. Defaults: 0.40, 0.35, 0.25.
	ValleyWeight     float64
	OverlapWeight    float64
	HorizontalWeight float64

	// CompositeCutoff: a composite score above this value classifies a
	// weak-gutter page as hybrid rather than multi. Default: 0.35.
	CompositeCutoff float64

	// MinSideLines is the number of lines confidently left (and right) of
	// the page midpoint required for the fallback boundary partition.
	// Default: 3.
	MinSideLines int
}

// DefaultClassifierConfig returns sensible default configuration.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Separator:        DefaultSeparatorConfig(),
		Density:          DefaultDensityConfig(),
		Gutter:           DefaultGutterConfig(),
		Overlap:          DefaultOverlapConfig(),
		Line:             DefaultLineConfig(),
		CoverageMin:      0.70,
		HeaderFracMax:    0.05,
		ValleyThreshold:  0.5,
		OverlapScale:     5.0,
		ValleyWeight:     0.40,
		OverlapWeight:    0.35,
		HorizontalWeight: 0.25,
		CompositeCutoff:  0.35,
		MinSideLines:     3,
	}
}

func (c ClassifierConfig) validate() error {
	if c.CoverageMin <= 0 || c.CoverageMin > 1 {
		return fmt.Errorf("layout: CoverageMin must be in (0, 1], got %g", c.CoverageMin)
	}
	if c.ValleyThreshold <= 0 {
		return fmt.Errorf("layout: ValleyThreshold must be positive, got %g", c.ValleyThreshold)
	}
	if c.MinSideLines < 1 {
		return fmt.Errorf("layout: MinSideLines must be at least 1, got %d", c.MinSideLines)
	}
	return nil
}

// Classifier fuses the gap, density, gutter, overlap, and line signals into
// a layout classification.
type Classifier struct {
	config ClassifierConfig

	separator *SeparatorDetector
	density   *DensityAnalyzer
	gutter    *GutterScanner
	overlap   *OverlapScorer
	lines     *LineGrouper
}

// NewClassifier creates a classifier with default configuration.
func NewClassifier() *Classifier {
	c, _ := NewClassifierWithConfig(DefaultClassifierConfig())
	return c
}

// NewClassifierWithConfig creates a classifier with custom configuration.
// Invalid sub-detector or fusion configuration is rejected here, since these
// parameters drive every downstream threshold.
func NewClassifierWithConfig(config ClassifierConfig) (*Classifier, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	separator, err := NewSeparatorDetectorWithConfig(config.Separator)
	if err != nil {
		return nil, err
	}
	density, err := NewDensityAnalyzerWithConfig(config.Density)
	if err != nil {
		return nil, err
	}
	gutter, err := NewGutterScannerWithConfig(config.Gutter)
	if err != nil {
		return nil, err
	}
	overlap, err := NewOverlapScorerWithConfig(config.Overlap)
	if err != nil {
		return nil, err
	}
	lines, err := NewLineGrouperWithConfig(config.Line)
	if err != nil {
		return nil, err
	}
	return &Classifier{
		config:    config,
		separator: separator,
		density:   density,
		gutter:    gutter,
		overlap:   overlap,
		lines:     lines,
	}, nil
}

// Classify determines the layout of one page. Empty input or a degenerate
// page width yields a single-column layout with confidence 0 rather than an
// error; the computation itself never fails.
func (c *Classifier) Classify(words []model.Word, pageWidth, pageHeight float64) *Layout {
	if len(words) == 0 || pageWidth <= 0 || pageHeight <= 0 {
		width := pageWidth
		if width <= 0 {
			width = c.config.Separator.DefaultPageWidth
		}
		return &Layout{
			Type:       LayoutSingle,
			Boundaries: []model.ColumnBoundary{{Start: 0, End: width}},
			Confidence: 0,
			Metrics:    Metrics{WordCount: len(words), ValleyDepthRatio: 1.0},
		}
	}

	bounds := c.separator.DetectBoundaries(words, pageWidth)
	gm := c.gutter.Scan(words, pageWidth, pageHeight)
	lines := c.lines.GroupLines(words)
	fullWidth := c.lines.CountFullWidth(lines, pageWidth)
	hasHorizontal := c.lines.HasHorizontal(lines, pageWidth)
	density := c.density.Analyze(words, pageWidth)
	yOverlap := c.overlap.Score(words)

	metrics := Metrics{
		WordCount:        len(words),
		Coverage:         gm.Coverage,
		HeaderFrac:       gm.HeaderFrac,
		GutterX:          gm.GutterX,
		Balanced:         gm.Balanced,
		ValleyDepthRatio: density.ValleyDepthRatio,
		YOverlap:         yOverlap,
		FullWidthLines:   fullWidth,
	}

	gutterPersists := gm.Coverage >= c.config.CoverageMin && gm.Balanced

	// Step 1: both detectors agree on one column, or the gutter signal is
	// weak with no gap evidence of a split.
	if len(bounds) <= 1 && !gutterPersists {
		return &Layout{
			Type:       LayoutSingle,
			Boundaries: []model.ColumnBoundary{{Start: 0, End: pageWidth}},
			Confidence: confidenceSingle,
			Metrics:    metrics,
		}
	}

	// Step 2: a gutter persists through most of the page. Horizontal
	// structure or a substantial header makes the page hybrid; otherwise it
	// is a clean multi-column page.
	if gutterPersists {
		layoutType := LayoutMulti
		if hasHorizontal || gm.HeaderFrac > c.config.HeaderFracMax {
			layoutType = LayoutHybrid
		}
		return &Layout{
			Type:       layoutType,
			Boundaries: c.strongBoundaries(bounds, gm, pageWidth),
			Confidence: confidenceGutter,
			Metrics:    metrics,
		}
	}

	// Step 3: gap evidence of a split without a continuous gutter. Fuse the
	// corroborating signals into a composite score.
	score := c.config.ValleyWeight*clamp01(density.ValleyDepthRatio/c.config.ValleyThreshold) +
		c.config.OverlapWeight*clamp01(yOverlap*c.config.OverlapScale) +
		c.config.HorizontalWeight*boolScore(hasHorizontal)
	metrics.CompositeScore = score

	layoutType := LayoutMulti
	if score > c.config.CompositeCutoff {
		layoutType = LayoutHybrid
	}
	confidence := confidenceFallbackBase +
		minFloat(confidenceFallbackRange, confidenceFallbackSlope*absFloat(score-0.5))

	boundaries, ok := c.linePartition(lines, pageWidth)
	if !ok {
		// Not enough confidently lateral lines to trust any split.
		layoutType = LayoutSingle
		boundaries = []model.ColumnBoundary{{Start: 0, End: pageWidth}}
	}

	return &Layout{
		Type:       layoutType,
		Boundaries: boundaries,
		Confidence: confidence,
		Metrics:    metrics,
	}
}

// strongBoundaries picks the reported boundaries when the gutter signal is
// strong: the gap detector's partition when it found a split, otherwise a
// two-column split at the gutter center.
func (c *Classifier) strongBoundaries(bounds []model.ColumnBoundary, gm GutterMetrics, pageWidth float64) []model.ColumnBoundary {
	if len(bounds) >= 2 {
		return bounds
	}
	gx := gm.GutterX
	minWidth := c.config.Separator.MinColumnWidth
	if gx < minWidth || gx > pageWidth-minWidth {
		// A split here would leave a degenerate column; keep the page whole.
		return []model.ColumnBoundary{{Start: 0, End: pageWidth}}
	}
	return []model.ColumnBoundary{
		{Start: 0, End: gx},
		{Start: gx, End: pageWidth},
	}
}

// linePartition builds the fallback two-column split at the page midpoint.
// It requires MinSideLines lines entirely left of the midpoint and as many
// entirely right of it.
func (c *Classifier) linePartition(lines []Line, pageWidth float64) ([]model.ColumnBoundary, bool) {
	mid := pageWidth / 2
	left, right := 0, 0
	for _, l := range lines {
		switch {
		case l.MaxX < mid:
			left++
		case l.MinX > mid:
			right++
		}
	}
	if left < c.config.MinSideLines || right < c.config.MinSideLines {
		return nil, false
	}
	return []model.ColumnBoundary{
		{Start: 0, End: mid},
		{Start: mid, End: pageWidth},
	}, true
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
