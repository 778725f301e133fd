package layout

import "math"

// Smoother smooths a histogram in place-independent fashion, returning a new
// slice of the same length. Implementations must be pure and safe for
// concurrent use.
//
// The smoother is selected once at configuration time. MovingAverageSmoother
// is the default; GaussianSmoother is an optional enhancement for noisy
// scans.
type Smoother interface {
	Smooth(values []float64) []float64
}

// MovingAverageSmoother smooths with a centered moving-average window.
type MovingAverageSmoother struct {
	// Window is the full window size; it is treated as Window/2 bins on each
	// side of the center. Values below 1 behave as 1 (no smoothing).
	Window int
}

// Smooth returns the moving average of values.
func (s MovingAverageSmoother) Smooth(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	radius := s.Window / 2
	out := make([]float64, len(values))
	for i := range values {
		lo := i - radius
		if lo < 0 {
			lo = 0
		}
		hi := i + radius
		if hi >= len(values) {
			hi = len(values) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(hi-lo+1)
	}
	return out
}

// GaussianSmoother smooths with a truncated Gaussian kernel.
type GaussianSmoother struct {
	// Sigma is the kernel standard deviation in bins. Values at or below
	// zero behave as 1.
	Sigma float64

	// Radius is the kernel truncation radius in bins. Zero means 3*Sigma.
	Radius int
}

// Smooth returns values convolved with the Gaussian kernel. Edge bins are
// renormalized over the in-range part of the kernel.
func (s GaussianSmoother) Smooth(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	sigma := s.Sigma
	if sigma <= 0 {
		sigma = 1
	}
	radius := s.Radius
	if radius <= 0 {
		radius = int(math.Ceil(3 * sigma))
	}

	kernel := make([]float64, 2*radius+1)
	for i := -radius; i <= radius; i++ {
		kernel[i+radius] = math.Exp(-float64(i*i) / (2 * sigma * sigma))
	}

	out := make([]float64, len(values))
	for i := range values {
		sum, weight := 0.0, 0.0
		for j := -radius; j <= radius; j++ {
			k := i + j
			if k < 0 || k >= len(values) {
				continue
			}
			w := kernel[j+radius]
			sum += values[k] * w
			weight += w
		}
		if weight > 0 {
			out[i] = sum / weight
		}
	}
	return out
}
