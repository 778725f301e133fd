package layout

import (
	"fmt"
	"sort"

	"github.com/tsawler/colonnade/model"
)

// SeparatorConfig holds configuration for gap-based separator detection.
type SeparatorConfig struct {
	// MinGapWidth is the minimum whitespace gap to consider as a column
	// separator, in points. Default: 20.
	MinGapWidth float64

	// MinColumnWidth is the minimum width for a span to survive as a
	// column, in points. Default: 50.
	MinColumnWidth float64

	// Adaptive enables gap-statistics-driven threshold selection. When
	// false the threshold is MinGapWidth exactly. Default: true.
	Adaptive bool

	// FallbackGapFactor scales MinGapWidth for the retry tier used when no
	// separator clears the primary threshold but a gap of at least
	// FallbackGapFactor*MinGapWidth exists. Default: 0.5.
	FallbackGapFactor float64

	// DefaultPageWidth is the boundary extent reported for an empty page
	// when no page width is available. Default: 612 (US Letter).
	DefaultPageWidth float64
}

// DefaultSeparatorConfig returns sensible default configuration.
func DefaultSeparatorConfig() SeparatorConfig {
	return SeparatorConfig{
		MinGapWidth:       20.0,
		MinColumnWidth:    50.0,
		Adaptive:          true,
		FallbackGapFactor: 0.5,
		DefaultPageWidth:  612.0,
	}
}

func (c SeparatorConfig) validate() error {
	if c.MinGapWidth <= 0 {
		return fmt.Errorf("layout: MinGapWidth must be positive, got %g", c.MinGapWidth)
	}
	if c.MinColumnWidth <= 0 {
		return fmt.Errorf("layout: MinColumnWidth must be positive, got %g", c.MinColumnWidth)
	}
	if c.FallbackGapFactor <= 0 || c.FallbackGapFactor > 1 {
		return fmt.Errorf("layout: FallbackGapFactor must be in (0, 1], got %g", c.FallbackGapFactor)
	}
	return nil
}

// SeparatorDetector derives candidate column boundaries from horizontal gaps
// between word intervals.
type SeparatorDetector struct {
	config SeparatorConfig
}

// NewSeparatorDetector creates a detector with default configuration.
func NewSeparatorDetector() *SeparatorDetector {
	d, _ := NewSeparatorDetectorWithConfig(DefaultSeparatorConfig())
	return d
}

// NewSeparatorDetectorWithConfig creates a detector with custom
// configuration, rejecting non-positive widths.
func NewSeparatorDetectorWithConfig(config SeparatorConfig) (*SeparatorDetector, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &SeparatorDetector{config: config}, nil
}

// gapStats summarizes the positive gaps between merged word intervals.
type gapStats struct {
	gaps   []gap
	widths []float64 // sorted ascending
	median float64
	max    float64
}

// gap is the whitespace between two consecutive merged word intervals.
type gap struct {
	left  float64
	right float64
}

func (g gap) width() float64  { return g.right - g.left }
func (g gap) center() float64 { return (g.left + g.right) / 2 }

// thresholdTier is one pure threshold-generation strategy. Tiers are
// evaluated in order until one yields a non-empty separator set.
type thresholdTier struct {
	name      string
	applies   func(cfg SeparatorConfig, st gapStats) bool
	threshold func(cfg SeparatorConfig, st gapStats) float64
}

// separatorTiers returns the ordered threshold strategies. The primary tier
// picks its threshold from the gap distribution: a dominant gutter
// (max > 3*median) lowers the bar to catch narrow columns, while uniform
// spacing (max < 2*median) raises it to guard against noise. The fallback
// tier retries once with a lowered threshold when the primary tier found
// nothing but the widest gap is at least half of MinGapWidth.
func separatorTiers(adaptive bool) []thresholdTier {
	primary := thresholdTier{
		name:    "fixed",
		applies: func(SeparatorConfig, gapStats) bool { return true },
		threshold: func(cfg SeparatorConfig, st gapStats) float64 {
			return cfg.MinGapWidth
		},
	}
	if adaptive {
		primary = thresholdTier{
			name:    "adaptive",
			applies: func(SeparatorConfig, gapStats) bool { return true },
			threshold: func(cfg SeparatorConfig, st gapStats) float64 {
				switch {
				case st.max > 3*st.median:
					return maxFloat(cfg.MinGapWidth*0.6, percentile(st.widths, 0.60))
				case st.max < 2*st.median:
					return maxFloat(cfg.MinGapWidth*1.5, percentile(st.widths, 0.90))
				default:
					return maxFloat(cfg.MinGapWidth, percentile(st.widths, 0.75))
				}
			},
		}
	}

	fallback := thresholdTier{
		name: "fallback",
		applies: func(cfg SeparatorConfig, st gapStats) bool {
			return st.max > cfg.MinGapWidth*cfg.FallbackGapFactor
		},
		threshold: func(cfg SeparatorConfig, st gapStats) float64 {
			return maxFloat(cfg.MinGapWidth*cfg.FallbackGapFactor, percentile(st.widths, 0.60))
		},
	}

	return []thresholdTier{primary, fallback}
}

// DetectBoundaries returns the column boundaries implied by the word gaps.
// The boundaries always form a gap-free partition of [0, pageWidth]. An
// empty word list yields a single boundary spanning DefaultPageWidth (or
// pageWidth when supplied).
func (d *SeparatorDetector) DetectBoundaries(words []model.Word, pageWidth float64) []model.ColumnBoundary {
	if pageWidth <= 0 {
		pageWidth = d.config.DefaultPageWidth
	}
	wholePage := []model.ColumnBoundary{{Start: 0, End: pageWidth}}

	if len(words) == 0 {
		return wholePage
	}

	st := computeGapStats(words)
	if len(st.gaps) == 0 {
		return wholePage
	}

	var separators []float64
	for _, tier := range separatorTiers(d.config.Adaptive) {
		if !tier.applies(d.config, st) {
			continue
		}
		threshold := tier.threshold(d.config, st)
		separators = collectSeparators(st.gaps, threshold)
		if len(separators) > 0 {
			break
		}
	}
	if len(separators) == 0 {
		return wholePage
	}

	separators = mergeSeparators(separators, d.config.MinColumnWidth)

	return buildBoundaries(separators, pageWidth, d.config.MinColumnWidth)
}

// computeGapStats merges word x-intervals and collects the positive gaps
// between them. Overlapping and adjacent intervals produce no gap.
func computeGapStats(words []model.Word) gapStats {
	intervals := make([]gap, 0, len(words))
	for _, w := range words {
		intervals = append(intervals, gap{left: w.X0, right: w.X1})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].left < intervals[j].left
	})

	var st gapStats
	reach := intervals[0].right
	for _, iv := range intervals[1:] {
		if iv.left > reach {
			g := gap{left: reach, right: iv.left}
			st.gaps = append(st.gaps, g)
			st.widths = append(st.widths, g.width())
		}
		if iv.right > reach {
			reach = iv.right
		}
	}
	if len(st.widths) == 0 {
		return st
	}

	sort.Float64s(st.widths)
	st.median = percentile(st.widths, 0.50)
	st.max = st.widths[len(st.widths)-1]
	return st
}

// collectSeparators returns the midpoints of all gaps at or above threshold.
func collectSeparators(gaps []gap, threshold float64) []float64 {
	var seps []float64
	for _, g := range gaps {
		if g.width() >= threshold {
			seps = append(seps, g.center())
		}
	}
	return seps
}

// mergeSeparators drops separators closer than minColumnWidth to the
// previously kept one, keeping the first of each cluster. Input is already
// in ascending x order since gaps are discovered left to right.
func mergeSeparators(separators []float64, minColumnWidth float64) []float64 {
	merged := separators[:1]
	for _, s := range separators[1:] {
		if s-merged[len(merged)-1] >= minColumnWidth {
			merged = append(merged, s)
		}
	}
	return merged
}

// buildBoundaries converts separator positions into a partition of
// [0, pageWidth], dropping any separator that would produce a column
// narrower than minColumnWidth and extending the final column to the page
// edge.
func buildBoundaries(separators []float64, pageWidth, minColumnWidth float64) []model.ColumnBoundary {
	var bounds []model.ColumnBoundary
	start := 0.0
	for _, s := range separators {
		if s-start < minColumnWidth || s >= pageWidth {
			continue
		}
		bounds = append(bounds, model.ColumnBoundary{Start: start, End: s})
		start = s
	}
	if pageWidth-start < minColumnWidth && len(bounds) > 0 {
		// The trailing span is too narrow to stand alone; extend the last
		// column to the page edge instead.
		bounds[len(bounds)-1].End = pageWidth
		return bounds
	}
	return append(bounds, model.ColumnBoundary{Start: start, End: pageWidth})
}

// percentile returns the p-quantile (0..1) of sorted values using linear
// interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
