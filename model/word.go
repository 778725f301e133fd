package model

import "math"

// Direction represents the writing direction of a word's text.
type Direction int

const (
	// DirectionUnknown means direction was not determined (the default).
	DirectionUnknown Direction = iota
	// DirectionLTR for left-to-right scripts (Latin, Cyrillic, etc.)
	DirectionLTR
	// DirectionRTL for right-to-left scripts (Arabic, Hebrew, etc.)
	DirectionRTL
	// DirectionNeutral for digits, punctuation, and symbols
	DirectionNeutral
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "ltr"
	case DirectionRTL:
		return "rtl"
	case DirectionNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Word is a single word on a page with its bounding box. The text content is
// opaque to the layout core; only the geometry is interpreted.
//
// Invariant: X1 >= X0 and Y1 >= Y0. Y0 is the top edge, Y1 the bottom edge.
type Word struct {
	Text string

	// Bounding box in page points (top-left origin, Y down)
	X0, Y0, X1, Y1 float64

	// Optional font metadata from the extraction source. Zero values mean
	// the source did not report them.
	FontSize float64
	Bold     bool

	// Direction is optional text-direction metadata.
	Direction Direction
}

// Width returns the horizontal extent of the word.
func (w Word) Width() float64 {
	return w.X1 - w.X0
}

// Height returns the vertical extent of the word.
func (w Word) Height() float64 {
	return w.Y1 - w.Y0
}

// CenterX returns the horizontal center of the word.
func (w Word) CenterX() float64 {
	return (w.X0 + w.X1) / 2
}

// CenterY returns the vertical center of the word.
func (w Word) CenterY() float64 {
	return (w.Y0 + w.Y1) / 2
}

// Valid reports whether the bounding box satisfies the Word invariant.
func (w Word) Valid() bool {
	return w.X1 >= w.X0 && w.Y1 >= w.Y0
}

// YOverlap returns the vertical overlap with another word as a fraction of
// the smaller of the two word heights, in [0, 1]. Zero-height words yield 0.
func (w Word) YOverlap(other Word) float64 {
	overlap := math.Min(w.Y1, other.Y1) - math.Max(w.Y0, other.Y0)
	if overlap <= 0 {
		return 0
	}
	minHeight := math.Min(w.Height(), other.Height())
	if minHeight <= 0 {
		return 0
	}
	return math.Min(overlap/minHeight, 1.0)
}
