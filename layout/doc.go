// Package layout classifies the page layout of documents into single-column,
// multi-column, or hybrid layouts and partitions a page's words into ordered
// columns.
//
// The package combines five independent geometric signals:
//
//   - SeparatorDetector: candidate column boundaries from horizontal gaps
//     between word intervals, with tiered adaptive thresholds.
//   - DensityAnalyzer: a smoothed x-axis density histogram whose peak/valley
//     structure corroborates column separation.
//   - GutterScanner: gutter continuity measured across horizontal bands of
//     the page (coverage and header fraction).
//   - OverlapScorer: mean vertical overlap between word pairs, a signature
//     of side-by-side content.
//   - LineGrouper: words grouped into lines, used to count full-width lines
//     that break a clean column structure.
//
// Classifier fuses the signals into a Layout (type, confidence, boundaries)
// and Segmenter assigns every word to exactly one column. All computation is
// pure and synchronous; pages can be processed concurrently by the caller.
package layout
