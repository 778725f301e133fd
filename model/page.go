package model

// DefaultPageMargin is added to the rightmost word edge when the page width
// must be inferred from content.
const DefaultPageMargin = 72.0

// Page is an ordered sequence of words plus the page dimensions in points.
type Page struct {
	Words  []Word
	Width  float64
	Height float64
}

// NewPage builds a Page, inferring missing dimensions from the word extents.
// A non-positive width becomes max(X1) + DefaultPageMargin; a non-positive
// height becomes max(Y1) + DefaultPageMargin.
func NewPage(words []Word, width, height float64) Page {
	if width <= 0 {
		width = maxX(words) + DefaultPageMargin
	}
	if height <= 0 {
		height = maxY(words) + DefaultPageMargin
	}
	return Page{Words: words, Width: width, Height: height}
}

func maxX(words []Word) float64 {
	var m float64
	for _, w := range words {
		if w.X1 > m {
			m = w.X1
		}
	}
	return m
}

func maxY(words []Word) float64 {
	var m float64
	for _, w := range words {
		if w.Y1 > m {
			m = w.Y1
		}
	}
	return m
}
