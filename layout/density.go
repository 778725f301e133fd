package layout

import (
	"fmt"

	"github.com/tsawler/colonnade/model"
)

// DensityConfig holds configuration for the x-axis density histogram.
type DensityConfig struct {
	// Bins fixes the histogram bin count. Zero selects a width-proportional
	// count of one bin per BinWidth points, clamped to [MinBins, MaxBins].
	Bins int

	// BinWidth is the points-per-bin used when Bins is zero. Default: 4.
	BinWidth float64

	// MinBins and MaxBins clamp the width-proportional bin count.
	// Defaults: 32 and 256.
	MinBins int
	MaxBins int

	// ExpectedColumns sizes the minimum inter-peak distance
	// (binCount / (2*ExpectedColumns)). Default: 2.
	ExpectedColumns int

	// PeakMeanFactor is the multiple of mean density a strict local maximum
	// must reach to count as a peak. Default: 1.2.
	PeakMeanFactor float64

	// Smoother smooths the raw histogram. Nil selects a moving average with
	// window 3.
	Smoother Smoother
}

// DefaultDensityConfig returns sensible default configuration.
func DefaultDensityConfig() DensityConfig {
	return DensityConfig{
		Bins:            0,
		BinWidth:        4.0,
		MinBins:         32,
		MaxBins:         256,
		ExpectedColumns: 2,
		PeakMeanFactor:  1.2,
	}
}

func (c DensityConfig) validate() error {
	if c.Bins < 0 {
		return fmt.Errorf("layout: Bins must be non-negative, got %d", c.Bins)
	}
	if c.Bins == 0 && c.BinWidth <= 0 {
		return fmt.Errorf("layout: BinWidth must be positive when Bins is 0, got %g", c.BinWidth)
	}
	if c.ExpectedColumns < 1 {
		return fmt.Errorf("layout: ExpectedColumns must be at least 1, got %d", c.ExpectedColumns)
	}
	return nil
}

// DensityResult holds the smoothed histogram and its peak/valley structure.
type DensityResult struct {
	// Histogram is the smoothed density, normalized so the maximum bin is 1.
	Histogram []float64

	// Peaks are bin indices of strict local maxima above the adaptive
	// threshold, left to right.
	Peaks []int

	// Valleys are bin indices of the minimum between each pair of
	// successive peaks.
	Valleys []int

	// ValleyDepthRatio is the minimum normalized valley value across all
	// valley segments, or 1.0 when fewer than two peaks exist. Low values
	// indicate well-separated columns.
	ValleyDepthRatio float64
}

// DensityAnalyzer builds a smoothed 1-D density histogram of word-center
// x-positions and extracts its peak/valley structure. It is a corroborating
// signal only; it never produces column boundaries on its own.
type DensityAnalyzer struct {
	config   DensityConfig
	smoother Smoother
}

// NewDensityAnalyzer creates an analyzer with default configuration.
func NewDensityAnalyzer() *DensityAnalyzer {
	a, _ := NewDensityAnalyzerWithConfig(DefaultDensityConfig())
	return a
}

// NewDensityAnalyzerWithConfig creates an analyzer with custom configuration.
func NewDensityAnalyzerWithConfig(config DensityConfig) (*DensityAnalyzer, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	smoother := config.Smoother
	if smoother == nil {
		smoother = MovingAverageSmoother{Window: 3}
	}
	return &DensityAnalyzer{config: config, smoother: smoother}, nil
}

// Analyze builds the histogram for the given words.
func (a *DensityAnalyzer) Analyze(words []model.Word, pageWidth float64) DensityResult {
	result := DensityResult{ValleyDepthRatio: 1.0}
	if len(words) == 0 || pageWidth <= 0 {
		return result
	}

	bins := a.binCount(pageWidth)
	hist := binCenters(words, pageWidth, bins)
	hist = a.smoother.Smooth(hist)
	normalizeMax(hist)
	result.Histogram = hist

	result.Peaks = findPeaks(hist, a.config.PeakMeanFactor, bins/(2*a.config.ExpectedColumns))
	if len(result.Peaks) < 2 {
		return result
	}

	for i := 0; i < len(result.Peaks)-1; i++ {
		v := argminRange(hist, result.Peaks[i], result.Peaks[i+1])
		result.Valleys = append(result.Valleys, v)
		if hist[v] < result.ValleyDepthRatio {
			result.ValleyDepthRatio = hist[v]
		}
	}
	return result
}

func (a *DensityAnalyzer) binCount(pageWidth float64) int {
	if a.config.Bins > 0 {
		return a.config.Bins
	}
	bins := int(pageWidth / a.config.BinWidth)
	if bins < a.config.MinBins {
		bins = a.config.MinBins
	}
	if bins > a.config.MaxBins {
		bins = a.config.MaxBins
	}
	return bins
}

// binCenters counts word x-centers into bins spanning [0, pageWidth].
func binCenters(words []model.Word, pageWidth float64, bins int) []float64 {
	hist := make([]float64, bins)
	for _, w := range words {
		idx := int(w.CenterX() / pageWidth * float64(bins))
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		hist[idx]++
	}
	return hist
}

// normalizeMax scales the histogram so its maximum bin is 1.
func normalizeMax(hist []float64) {
	var max float64
	for _, v := range hist {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return
	}
	for i := range hist {
		hist[i] /= max
	}
}

// findPeaks returns strict local maxima at or above meanFactor*mean that are
// at least minDistance bins apart. When two candidates are too close, the
// taller one wins.
func findPeaks(hist []float64, meanFactor float64, minDistance int) []int {
	if len(hist) < 3 {
		return nil
	}
	mean := 0.0
	for _, v := range hist {
		mean += v
	}
	mean /= float64(len(hist))
	threshold := mean * meanFactor

	var peaks []int
	for i := 1; i < len(hist)-1; i++ {
		if hist[i] <= hist[i-1] || hist[i] <= hist[i+1] {
			continue
		}
		if hist[i] < threshold {
			continue
		}
		if len(peaks) > 0 && i-peaks[len(peaks)-1] < minDistance {
			if hist[i] > hist[peaks[len(peaks)-1]] {
				peaks[len(peaks)-1] = i
			}
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}

// argminRange returns the index of the minimum value in hist[lo..hi].
func argminRange(hist []float64, lo, hi int) int {
	min := lo
	for i := lo + 1; i <= hi; i++ {
		if hist[i] < hist[min] {
			min = i
		}
	}
	return min
}
