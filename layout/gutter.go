package layout

import (
	"fmt"

	"github.com/tsawler/colonnade/model"
)

// GutterConfig holds configuration for the band-wise gutter scan.
type GutterConfig struct {
	// Bands is the number of horizontal bands the page height is split
	// into. Default: 60.
	Bands int

	// Bins is the x-histogram resolution used for both the global and the
	// per-band density scans. Default: 120.
	Bins int

	// ClearThreshold is the normalized density at or below which the
	// gutter region of a band counts as clear. Default: 0.05.
	ClearThreshold float64

	// SearchWindowFrac bounds the search for the global gutter center to a
	// window of this fraction of the page width on each side of the
	// horizontal midpoint. Default: 0.25.
	SearchWindowFrac float64

	// ProbeWindowFrac is the half-width, as a fraction of page width, of
	// the window around the gutter center probed in each band. Default: 0.04.
	ProbeWindowFrac float64

	// MinRunFloor and MinRunDivisor size the shortest run of consecutive
	// gutter-clear bands that anchors the header fraction:
	// K = max(MinRunFloor, Bands/MinRunDivisor). Defaults: 4 and 12.
	MinRunFloor   int
	MinRunDivisor int

	// MinSideFrac is the fraction of words that must sit on each side of
	// the gutter center for the gutter to count as evidence of a split.
	// Default: 0.1.
	MinSideFrac float64

	// Smoother smooths the density histograms. Nil selects a moving
	// average with window 3.
	Smoother Smoother
}

// DefaultGutterConfig returns sensible default configuration.
func DefaultGutterConfig() GutterConfig {
	return GutterConfig{
		Bands:            60,
		Bins:             120,
		ClearThreshold:   0.05,
		SearchWindowFrac: 0.25,
		ProbeWindowFrac:  0.04,
		MinRunFloor:      4,
		MinRunDivisor:    12,
		MinSideFrac:      0.1,
	}
}

func (c GutterConfig) validate() error {
	if c.Bands < 1 {
		return fmt.Errorf("layout: Bands must be at least 1, got %d", c.Bands)
	}
	if c.Bins < 2 {
		return fmt.Errorf("layout: Bins must be at least 2, got %d", c.Bins)
	}
	if c.ClearThreshold < 0 {
		return fmt.Errorf("layout: ClearThreshold must be non-negative, got %g", c.ClearThreshold)
	}
	if c.MinRunDivisor < 1 {
		return fmt.Errorf("layout: MinRunDivisor must be at least 1, got %d", c.MinRunDivisor)
	}
	return nil
}

// GutterMetrics is the per-page result of the gutter scan.
type GutterMetrics struct {
	// Coverage is the fraction of bands where the gutter region has
	// near-zero density, in [0, 1].
	Coverage float64

	// HeaderFrac is the fraction of page height, from the top, preceding
	// the first stable run of gutter-clear bands. Zero when no such run
	// exists.
	HeaderFrac float64

	// GutterX is the detected global gutter center in page coordinates.
	GutterX float64

	// Balanced reports whether enough words sit on each side of GutterX
	// for the gutter to be evidence of a genuine split rather than
	// one-sided content.
	Balanced bool
}

// GutterScanner measures gutter continuity across horizontal bands of the
// page. It is the primary signal for whether a two-column split persists
// through the whole page rather than only locally.
type GutterScanner struct {
	config   GutterConfig
	smoother Smoother
}

// NewGutterScanner creates a scanner with default configuration.
func NewGutterScanner() *GutterScanner {
	s, _ := NewGutterScannerWithConfig(DefaultGutterConfig())
	return s
}

// NewGutterScannerWithConfig creates a scanner with custom configuration.
func NewGutterScannerWithConfig(config GutterConfig) (*GutterScanner, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	smoother := config.Smoother
	if smoother == nil {
		smoother = MovingAverageSmoother{Window: 3}
	}
	return &GutterScanner{config: config, smoother: smoother}, nil
}

// Scan computes the gutter metrics for a page.
func (s *GutterScanner) Scan(words []model.Word, pageWidth, pageHeight float64) GutterMetrics {
	var m GutterMetrics
	if len(words) == 0 || pageWidth <= 0 || pageHeight <= 0 {
		return m
	}

	binWidth := pageWidth / float64(s.config.Bins)

	global := s.smoother.Smooth(binCoverage(words, pageWidth, s.config.Bins))
	normalizeMax(global)

	gutterBin := s.findGutterBin(global)
	m.GutterX = (float64(gutterBin) + 0.5) * binWidth
	m.Balanced = s.balanced(words, m.GutterX)

	probe := int(s.config.ProbeWindowFrac * float64(s.config.Bins))
	if probe < 1 {
		probe = 1
	}

	bandHeight := pageHeight / float64(s.config.Bands)
	clear := make([]bool, s.config.Bands)
	clearCount := 0
	for b := 0; b < s.config.Bands; b++ {
		top := float64(b) * bandHeight
		bottom := top + bandHeight

		var bandWords []model.Word
		for _, w := range words {
			if w.Y1 > top && w.Y0 < bottom {
				bandWords = append(bandWords, w)
			}
		}

		local := s.smoother.Smooth(binCoverage(bandWords, pageWidth, s.config.Bins))
		normalizeMax(local)

		if minInWindow(local, gutterBin, probe) <= s.config.ClearThreshold {
			clear[b] = true
			clearCount++
		}
	}
	m.Coverage = float64(clearCount) / float64(s.config.Bands)
	m.HeaderFrac = s.headerFrac(clear)

	return m
}

// binCoverage counts, per bin, how many words horizontally cover the bin.
// Unlike the center binning used by DensityAnalyzer, coverage binning sees a
// word that straddles the gutter as blocking it, which is what the gutter
// probe has to measure.
func binCoverage(words []model.Word, pageWidth float64, bins int) []float64 {
	hist := make([]float64, bins)
	binWidth := pageWidth / float64(bins)
	for _, w := range words {
		lo := int(w.X0 / binWidth)
		hi := int(w.X1 / binWidth)
		if lo < 0 {
			lo = 0
		}
		if hi > bins-1 {
			hi = bins - 1
		}
		for i := lo; i <= hi; i++ {
			hist[i]++
		}
	}
	return hist
}

// findGutterBin locates the minimum-density bin within the search window
// around the horizontal midpoint, breaking ties toward the midpoint.
func (s *GutterScanner) findGutterBin(global []float64) int {
	mid := len(global) / 2
	window := int(s.config.SearchWindowFrac * float64(len(global)))
	lo := mid - window
	if lo < 0 {
		lo = 0
	}
	hi := mid + window
	if hi > len(global)-1 {
		hi = len(global) - 1
	}

	best := mid
	for i := lo; i <= hi; i++ {
		switch {
		case global[i] < global[best]:
			best = i
		case global[i] == global[best] && absInt(i-mid) < absInt(best-mid):
			best = i
		}
	}
	return best
}

// balanced reports whether at least MinSideFrac of the words sit on each
// side of the gutter center.
func (s *GutterScanner) balanced(words []model.Word, gutterX float64) bool {
	left, right := 0, 0
	for _, w := range words {
		if w.CenterX() < gutterX {
			left++
		} else {
			right++
		}
	}
	need := int(s.config.MinSideFrac * float64(len(words)))
	if need < 1 {
		need = 1
	}
	return left >= need && right >= need
}

// headerFrac returns the page-height fraction above the first run of at
// least K consecutive gutter-clear bands, or 0 when no such run exists.
func (s *GutterScanner) headerFrac(clear []bool) float64 {
	k := s.config.Bands / s.config.MinRunDivisor
	if k < s.config.MinRunFloor {
		k = s.config.MinRunFloor
	}

	run := 0
	for b := range clear {
		if !clear[b] {
			run = 0
			continue
		}
		run++
		if run >= k {
			start := b - run + 1
			return float64(start) / float64(s.config.Bands)
		}
	}
	return 0
}

// minInWindow returns the minimum histogram value within radius bins of
// center.
func minInWindow(hist []float64, center, radius int) float64 {
	lo := center - radius
	if lo < 0 {
		lo = 0
	}
	hi := center + radius
	if hi > len(hist)-1 {
		hi = len(hist) - 1
	}
	min := hist[lo]
	for i := lo + 1; i <= hi; i++ {
		if hist[i] < min {
			min = hist[i]
		}
	}
	return min
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
