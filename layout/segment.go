package layout

import (
	"fmt"
	"sort"

	"github.com/tsawler/colonnade/model"
)

// SegmenterConfig holds configuration for word-to-column assignment.
type SegmenterConfig struct {
	// OverlapThreshold is the minimum fraction of a word's width that must
	// fall inside a column for first-pass assignment. Default: 0.5.
	OverlapThreshold float64

	// MinWordsPerColumn: columns with fewer words are dissolved and their
	// words reassigned to the nearest surviving column. Default: 3.
	MinWordsPerColumn int
}

// DefaultSegmenterConfig returns sensible default configuration.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		OverlapThreshold:  0.5,
		MinWordsPerColumn: 3,
	}
}

func (c SegmenterConfig) validate() error {
	if c.OverlapThreshold <= 0 || c.OverlapThreshold > 1 {
		return fmt.Errorf("layout: OverlapThreshold must be in (0, 1], got %g", c.OverlapThreshold)
	}
	if c.MinWordsPerColumn < 1 {
		return fmt.Errorf("layout: MinWordsPerColumn must be at least 1, got %d", c.MinWordsPerColumn)
	}
	return nil
}

// Segmenter assigns each word of a page to exactly one column of a Layout.
// No word is ever duplicated or dropped.
type Segmenter struct {
	config SegmenterConfig
}

// NewSegmenter creates a segmenter with default configuration.
func NewSegmenter() *Segmenter {
	s, _ := NewSegmenterWithConfig(DefaultSegmenterConfig())
	return s
}

// NewSegmenterWithConfig creates a segmenter with custom configuration.
func NewSegmenterWithConfig(config SegmenterConfig) (*Segmenter, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Segmenter{config: config}, nil
}

// Segment partitions the page's words across the layout's columns. Words
// are first assigned to the leftmost column holding at least
// OverlapThreshold of their width; leftovers go to the column whose center
// is nearest their own. Undersized columns are then dissolved into their
// nearest neighbor, surviving columns renumbered left to right, and each
// column's words sorted top to bottom (stable).
func (s *Segmenter) Segment(words []model.Word, layout *Layout) []model.Column {
	if layout == nil || len(layout.Boundaries) == 0 {
		return nil
	}

	columns := make([]model.Column, len(layout.Boundaries))
	for i, b := range layout.Boundaries {
		columns[i] = model.Column{ID: i, Boundary: b}
	}

	// First pass: overlap-ratio assignment; defer words that fit nowhere.
	var deferred []model.Word
	for _, w := range words {
		assigned := false
		for i := range columns {
			if overlapRatio(w, columns[i].Boundary) >= s.config.OverlapThreshold {
				columns[i].Words = append(columns[i].Words, w)
				assigned = true
				break
			}
		}
		if !assigned {
			deferred = append(deferred, w)
		}
	}

	// Second pass: nearest column center.
	for _, w := range deferred {
		i := nearestColumn(columns, w.CenterX())
		columns[i].Words = append(columns[i].Words, w)
	}

	for i := range columns {
		sortByTop(columns[i].Words)
	}

	columns = s.dissolveUndersized(columns)

	normalizeBoundaries(columns, layout.Boundaries[len(layout.Boundaries)-1].End)

	for i := range columns {
		columns[i].ID = i
	}
	return columns
}

// dissolveUndersized reassigns the words of columns below MinWordsPerColumn
// to the nearest surviving column. If no column meets the minimum, nothing
// is dissolved.
func (s *Segmenter) dissolveUndersized(columns []model.Column) []model.Column {
	var survivors []model.Column
	var dissolved []model.Column
	for _, col := range columns {
		if len(col.Words) >= s.config.MinWordsPerColumn {
			survivors = append(survivors, col)
		} else {
			dissolved = append(dissolved, col)
		}
	}
	if len(survivors) == 0 || len(dissolved) == 0 {
		return columns
	}

	for _, col := range dissolved {
		i := nearestColumn(survivors, col.Boundary.Center())
		survivors[i].Words = append(survivors[i].Words, col.Words...)
		sortByTop(survivors[i].Words)

		// Absorb the dissolved span so the surviving boundaries keep
		// covering the page.
		if col.Boundary.Start < survivors[i].Boundary.Start {
			survivors[i].Boundary.Start = col.Boundary.Start
		}
		if col.Boundary.End > survivors[i].Boundary.End {
			survivors[i].Boundary.End = col.Boundary.End
		}
	}
	return survivors
}

// normalizeBoundaries restores the partition invariant after dissolution:
// boundaries ascending, contiguous, starting at 0 and ending at pageEnd.
// Any residual gap is given to the column on its left.
func normalizeBoundaries(columns []model.Column, pageEnd float64) {
	if len(columns) == 0 {
		return
	}
	sort.SliceStable(columns, func(i, j int) bool {
		return columns[i].Boundary.Start < columns[j].Boundary.Start
	})
	columns[0].Boundary.Start = 0
	for i := 0; i < len(columns)-1; i++ {
		columns[i].Boundary.End = columns[i+1].Boundary.Start
	}
	columns[len(columns)-1].Boundary.End = pageEnd
}

// overlapRatio is the fraction of the word's width inside the boundary.
// Zero-width words use their center instead.
func overlapRatio(w model.Word, b model.ColumnBoundary) float64 {
	width := w.Width()
	if width <= 0 {
		if cx := w.CenterX(); cx >= b.Start && cx < b.End {
			return 1
		}
		return 0
	}
	return b.OverlapWidth(w.X0, w.X1) / width
}

// nearestColumn returns the index of the column whose boundary center is
// closest to x.
func nearestColumn(columns []model.Column, x float64) int {
	best := 0
	bestDist := absFloat(columns[0].Boundary.Center() - x)
	for i := 1; i < len(columns); i++ {
		if d := absFloat(columns[i].Boundary.Center() - x); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// sortByTop sorts words by top edge, stable so that input order breaks ties.
func sortByTop(words []model.Word) {
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Y0 < words[j].Y0
	})
}

// ReadingOrder flattens columns into a single word list: columns left to
// right, each column top to bottom.
func ReadingOrder(columns []model.Column) []model.Word {
	var out []model.Word
	for _, col := range columns {
		out = append(out, col.Words...)
	}
	return out
}

// DocumentBoundaries derives one consistent column structure for a
// multi-page document: the majority vote of per-page column counts, with
// the winning pages' boundary coordinates averaged componentwise. Ties go
// to the smaller column count. Nil when no page has a layout.
func DocumentBoundaries(layouts []*Layout) []model.ColumnBoundary {
	votes := make(map[int]int)
	for _, l := range layouts {
		if l == nil || len(l.Boundaries) == 0 {
			continue
		}
		votes[len(l.Boundaries)]++
	}
	if len(votes) == 0 {
		return nil
	}

	winner, winnerVotes := 0, 0
	for n, v := range votes {
		if v > winnerVotes || (v == winnerVotes && n < winner) {
			winner = n
			winnerVotes = v
		}
	}

	avg := make([]model.ColumnBoundary, winner)
	count := 0.0
	for _, l := range layouts {
		if l == nil || len(l.Boundaries) != winner {
			continue
		}
		for i, b := range l.Boundaries {
			avg[i].Start += b.Start
			avg[i].End += b.End
		}
		count++
	}
	for i := range avg {
		avg[i].Start /= count
		avg[i].End /= count
	}
	return avg
}
