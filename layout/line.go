package layout

import (
	"fmt"
	"sort"

	"github.com/tsawler/colonnade/model"
)

// LineConfig holds configuration for line grouping and full-width line
// detection.
type LineConfig struct {
	// YTolerance is the maximum distance between a word's vertical center
	// and a band's center for the word to join the band, in points.
	// Default: 3.
	YTolerance float64

	// MaxWordGap is the largest horizontal gap allowed between adjacent
	// words of the same line. A y-band with a wider interior gap splits
	// into separate lines, so side-by-side column text never forms a
	// single line. Default: 50.
	MaxWordGap float64

	// FullWidthFraction is the fraction of page width a line's span must
	// reach to count as full-width. Default: 0.75.
	FullWidthFraction float64

	// MinFullWidthLines is the number of full-width lines required before
	// the page is considered to contain horizontal structure. Default: 3.
	MinFullWidthLines int
}

// DefaultLineConfig returns sensible default configuration.
func DefaultLineConfig() LineConfig {
	return LineConfig{
		YTolerance:        3.0,
		MaxWordGap:        50.0,
		FullWidthFraction: 0.75,
		MinFullWidthLines: 3,
	}
}

func (c LineConfig) validate() error {
	if c.YTolerance <= 0 {
		return fmt.Errorf("layout: YTolerance must be positive, got %g", c.YTolerance)
	}
	if c.MaxWordGap <= 0 {
		return fmt.Errorf("layout: MaxWordGap must be positive, got %g", c.MaxWordGap)
	}
	if c.FullWidthFraction <= 0 || c.FullWidthFraction > 1 {
		return fmt.Errorf("layout: FullWidthFraction must be in (0, 1], got %g", c.FullWidthFraction)
	}
	if c.MinFullWidthLines < 1 {
		return fmt.Errorf("layout: MinFullWidthLines must be at least 1, got %d", c.MinFullWidthLines)
	}
	return nil
}

// Line is a horizontally contiguous run of words sharing a vertical
// position.
type Line struct {
	// Words in the line, sorted left to right.
	Words []model.Word

	// CenterY is the mean of the member words' vertical centers.
	CenterY float64

	// MinX and MaxX are the horizontal extent of the line.
	MinX float64
	MaxX float64
}

// Span returns the horizontal span of the line.
func (l Line) Span() float64 {
	return l.MaxX - l.MinX
}

// LineGrouper groups words into lines by y-proximity and x-contiguity.
type LineGrouper struct {
	config LineConfig
}

// NewLineGrouper creates a grouper with default configuration.
func NewLineGrouper() *LineGrouper {
	g, _ := NewLineGrouperWithConfig(DefaultLineConfig())
	return g
}

// NewLineGrouperWithConfig creates a grouper with custom configuration.
func NewLineGrouperWithConfig(config LineConfig) (*LineGrouper, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &LineGrouper{config: config}, nil
}

// yBand is an intermediate y-proximity group before x-segmentation.
type yBand struct {
	centerY float64
	words   []model.Word
}

// GroupLines groups words into y-bands (a word joins the band whose running
// center is within YTolerance of its own; unmatched words start a new band)
// and then splits each band at interior gaps wider than MaxWordGap. Lines
// are returned sorted top to bottom.
func (g *LineGrouper) GroupLines(words []model.Word) []Line {
	var bands []yBand
	for _, w := range words {
		cy := w.CenterY()
		matched := false
		for i := range bands {
			if absFloat(cy-bands[i].centerY) <= g.config.YTolerance {
				n := float64(len(bands[i].words))
				bands[i].centerY = (bands[i].centerY*n + cy) / (n + 1)
				bands[i].words = append(bands[i].words, w)
				matched = true
				break
			}
		}
		if !matched {
			bands = append(bands, yBand{centerY: cy, words: []model.Word{w}})
		}
	}

	var lines []Line
	for _, band := range bands {
		lines = append(lines, g.splitBand(band)...)
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].CenterY < lines[j].CenterY
	})
	return lines
}

// splitBand cuts a y-band into x-contiguous lines.
func (g *LineGrouper) splitBand(band yBand) []Line {
	words := make([]model.Word, len(band.words))
	copy(words, band.words)
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].X0 < words[j].X0
	})

	var lines []Line
	current := newLine(words[0])
	for _, w := range words[1:] {
		if w.X0-current.MaxX > g.config.MaxWordGap {
			lines = append(lines, finishLine(current))
			current = newLine(w)
			continue
		}
		current.Words = append(current.Words, w)
		current.MinX = minFloat(current.MinX, w.X0)
		current.MaxX = maxFloat(current.MaxX, w.X1)
	}
	return append(lines, finishLine(current))
}

func newLine(w model.Word) Line {
	return Line{Words: []model.Word{w}, MinX: w.X0, MaxX: w.X1}
}

func finishLine(l Line) Line {
	sum := 0.0
	for _, w := range l.Words {
		sum += w.CenterY()
	}
	l.CenterY = sum / float64(len(l.Words))
	return l
}

// CountFullWidth returns how many lines span at least
// FullWidthFraction*pageWidth. Because lines are x-contiguous, a qualifying
// line necessarily crosses any prospective gutter.
func (g *LineGrouper) CountFullWidth(lines []Line, pageWidth float64) int {
	count := 0
	for _, l := range lines {
		if l.Span() >= pageWidth*g.config.FullWidthFraction {
			count++
		}
	}
	return count
}

// HasHorizontal reports whether the page contains at least
// MinFullWidthLines full-width lines. Full-width lines are evidence of
// headers or section titles breaking a clean multi-column layout.
func (g *LineGrouper) HasHorizontal(lines []Line, pageWidth float64) bool {
	return g.CountFullWidth(lines, pageWidth) >= g.config.MinFullWidthLines
}
