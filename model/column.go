package model

import "math"

// ColumnBoundary is a horizontal span [Start, End) occupied by one column.
// A page layout's boundaries form a left-to-right, gap-free partition of
// [0, pageWidth].
type ColumnBoundary struct {
	Start float64
	End   float64
}

// Width returns the width of the boundary span.
func (b ColumnBoundary) Width() float64 {
	return b.End - b.Start
}

// Center returns the horizontal center of the boundary span.
func (b ColumnBoundary) Center() float64 {
	return (b.Start + b.End) / 2
}

// OverlapWidth returns the width of the intersection between the boundary
// and the horizontal interval [x0, x1].
func (b ColumnBoundary) OverlapWidth(x0, x1 float64) float64 {
	overlap := math.Min(b.End, x1) - math.Max(b.Start, x0)
	if overlap < 0 {
		return 0
	}
	return overlap
}

// Column is a detected column: its boundary and the words assigned to it,
// ordered top to bottom.
type Column struct {
	// ID is the 0-based index, numbered left to right.
	ID int

	// Boundary is the horizontal span of the column.
	Boundary ColumnBoundary

	// Words assigned to this column, sorted by top edge.
	Words []Word
}
