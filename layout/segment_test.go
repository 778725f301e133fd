package layout

import (
	"testing"

	"github.com/tsawler/colonnade/model"
)

func twoColumnLayout(split, pageWidth float64) *Layout {
	return &Layout{
		Type: LayoutMulti,
		Boundaries: []model.ColumnBoundary{
			{Start: 0, End: split},
			{Start: split, End: pageWidth},
		},
		Confidence: 0.92,
	}
}

func countWords(columns []model.Column) int {
	n := 0
	for _, col := range columns {
		n += len(col.Words)
	}
	return n
}

func TestSegmenter_AssignsByOverlap(t *testing.T) {
	s := NewSegmenter()
	words := twoColumnPage(5)

	columns := s.Segment(words, twoColumnLayout(300, 600))

	if len(columns) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(columns))
	}
	if len(columns[0].Words) != 10 || len(columns[1].Words) != 10 {
		t.Errorf("expected 10 words per column, got %d and %d",
			len(columns[0].Words), len(columns[1].Words))
	}
	for _, w := range columns[0].Words {
		if w.CenterX() > 300 {
			t.Errorf("word centered at %f landed in the left column", w.CenterX())
		}
	}
}

func TestSegmenter_ConservesWords(t *testing.T) {
	s := NewSegmenter()

	// Include a word straddling the split
	words := append(twoColumnPage(5), makeWord(250, 400, 350, 412))

	columns := s.Segment(words, twoColumnLayout(300, 600))

	if got := countWords(columns); got != len(words) {
		t.Errorf("expected %d words across columns, got %d", len(words), got)
	}
}

func TestSegmenter_StraddlingWordGoesToNearestCenter(t *testing.T) {
	s := NewSegmenter()

	layout := &Layout{
		Boundaries: []model.ColumnBoundary{
			{Start: 0, End: 200},
			{Start: 200, End: 400},
			{Start: 400, End: 600},
		},
	}

	// Anchor words keep every column above the dissolution minimum.
	var words []model.Word
	for i := 0; i < 3; i++ {
		y := 100 + float64(i)*20
		words = append(words, makeRow(y,
			[2]float64{50, 150}, [2]float64{250, 350}, [2]float64{450, 550})...)
	}
	// Spans all three columns with no majority overlap anywhere; its
	// center (300) is nearest the middle column's.
	straddler := makeWord(50, 200, 550, 212)
	words = append(words, straddler)

	columns := s.Segment(words, layout)
	if len(columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(columns))
	}
	found := false
	for _, w := range columns[1].Words {
		if w == straddler {
			found = true
		}
	}
	if !found {
		t.Error("straddling word not assigned to the nearest-center column")
	}
}

func TestSegmenter_SortsTopToBottom(t *testing.T) {
	s := NewSegmenter()

	// Left-column words in shuffled vertical order
	words := []model.Word{
		makeWord(50, 300, 140, 312),
		makeWord(50, 100, 140, 112),
		makeWord(50, 200, 140, 212),
		makeWord(350, 150, 440, 162),
		makeWord(350, 120, 440, 132),
		makeWord(350, 180, 440, 192),
	}

	columns := s.Segment(words, twoColumnLayout(300, 600))
	for _, col := range columns {
		for i := 1; i < len(col.Words); i++ {
			if col.Words[i].Y0 < col.Words[i-1].Y0 {
				t.Fatalf("column %d words not sorted by top edge", col.ID)
			}
		}
	}
}

func TestSegmenter_DissolvesUndersizedColumn(t *testing.T) {
	s := NewSegmenter()

	layout := &Layout{
		Boundaries: []model.ColumnBoundary{
			{Start: 0, End: 200},
			{Start: 200, End: 400},
			{Start: 400, End: 600},
		},
	}

	// Only one word lands in the middle column
	var words []model.Word
	for i := 0; i < 5; i++ {
		y := 100 + float64(i)*20
		words = append(words,
			makeWord(50, y, 150, y+12),
			makeWord(450, y, 550, y+12))
	}
	words = append(words, makeWord(250, 100, 350, 112))

	columns := s.Segment(words, layout)

	if len(columns) != 2 {
		t.Fatalf("expected the middle column to dissolve, got %d columns", len(columns))
	}
	if got := countWords(columns); got != len(words) {
		t.Errorf("dissolution lost words: expected %d, got %d", len(words), got)
	}
	// Renumbered left to right with contiguous boundaries over the page
	if columns[0].ID != 0 || columns[1].ID != 1 {
		t.Errorf("columns not renumbered: IDs %d, %d", columns[0].ID, columns[1].ID)
	}
	if columns[0].Boundary.Start != 0 ||
		columns[0].Boundary.End != columns[1].Boundary.Start ||
		columns[1].Boundary.End != 600 {
		t.Errorf("boundaries not contiguous after dissolution: %+v, %+v",
			columns[0].Boundary, columns[1].Boundary)
	}
}

func TestSegmenter_KeepsColumnsWhenAllUndersized(t *testing.T) {
	s := NewSegmenter()

	// One word per column: dissolving would leave nothing, so nothing is
	// dissolved.
	words := []model.Word{
		makeWord(50, 100, 150, 112),
		makeWord(350, 100, 450, 112),
	}

	columns := s.Segment(words, twoColumnLayout(300, 600))
	if len(columns) != 2 {
		t.Errorf("expected both columns kept, got %d", len(columns))
	}
	if got := countWords(columns); got != 2 {
		t.Errorf("expected 2 words, got %d", got)
	}
}

func TestSegmenter_NilLayout(t *testing.T) {
	s := NewSegmenter()
	if columns := s.Segment(twoColumnPage(3), nil); columns != nil {
		t.Errorf("expected nil for nil layout, got %d columns", len(columns))
	}
}

func TestSegmenter_ConfigValidation(t *testing.T) {
	cfg := DefaultSegmenterConfig()
	cfg.OverlapThreshold = 0
	if _, err := NewSegmenterWithConfig(cfg); err == nil {
		t.Error("expected error for zero OverlapThreshold")
	}

	cfg = DefaultSegmenterConfig()
	cfg.MinWordsPerColumn = 0
	if _, err := NewSegmenterWithConfig(cfg); err == nil {
		t.Error("expected error for zero MinWordsPerColumn")
	}
}

func TestReadingOrder(t *testing.T) {
	s := NewSegmenter()
	words := twoColumnPage(3)

	columns := s.Segment(words, twoColumnLayout(300, 600))
	ordered := ReadingOrder(columns)

	if len(ordered) != len(words) {
		t.Fatalf("expected %d words, got %d", len(words), len(ordered))
	}
	// All left-column words precede all right-column words
	boundary := len(columns[0].Words)
	for i, w := range ordered {
		if i < boundary && w.CenterX() > 300 {
			t.Errorf("right-column word at reading position %d", i)
		}
		if i >= boundary && w.CenterX() < 300 {
			t.Errorf("left-column word at reading position %d", i)
		}
	}
}

func TestDocumentBoundaries_MajorityVote(t *testing.T) {
	two := func(split float64) *Layout { return twoColumnLayout(split, 600) }
	one := &Layout{
		Type:       LayoutSingle,
		Boundaries: []model.ColumnBoundary{{Start: 0, End: 600}},
	}

	bounds := DocumentBoundaries([]*Layout{two(290), two(310), one})
	if len(bounds) != 2 {
		t.Fatalf("expected the 2-column majority, got %d boundaries", len(bounds))
	}
	// Averaged componentwise over the winning pages
	if bounds[0].End != 300 || bounds[1].Start != 300 {
		t.Errorf("expected averaged split at 300, got %f / %f",
			bounds[0].End, bounds[1].Start)
	}
}

func TestDocumentBoundaries_TieGoesToFewerColumns(t *testing.T) {
	two := twoColumnLayout(300, 600)
	one := &Layout{Boundaries: []model.ColumnBoundary{{Start: 0, End: 600}}}

	bounds := DocumentBoundaries([]*Layout{two, one})
	if len(bounds) != 1 {
		t.Errorf("expected the tie to resolve to 1 column, got %d", len(bounds))
	}
}

func TestDocumentBoundaries_EmptyInput(t *testing.T) {
	if bounds := DocumentBoundaries(nil); bounds != nil {
		t.Errorf("expected nil, got %v", bounds)
	}
	if bounds := DocumentBoundaries([]*Layout{nil, {}}); bounds != nil {
		t.Errorf("expected nil for layouts without boundaries, got %v", bounds)
	}
}
