// Package model defines the shared value types used throughout colonnade:
// words with bounding boxes, pages, column boundaries, and columns.
//
// All coordinates are in page points with the origin at the top-left corner
// and Y increasing downward, matching raster and OCR output conventions.
// Values are immutable once constructed; the analysis core never mutates a
// Word or Page it is given.
package model
