// Package colonnade classifies the page layout of scanned and digital
// documents (single-column, multi-column, or hybrid) and partitions each
// page's words into ordered columns for downstream line and section
// extraction.
//
// Basic usage:
//
//	engine := colonnade.New()
//	result := engine.AnalyzePage(model.NewPage(words, 612, 792))
//	fmt.Println(result.Layout.TypeName(), result.Layout.NumColumns())
//
// Word records typically come from an OCR or PDF text-extraction source;
// the hocr and ocr packages provide ready-made adapters. The engine itself
// performs no I/O and holds no mutable state, so a single Engine may be
// shared across goroutines.
package colonnade

import (
	"fmt"

	"github.com/tsawler/colonnade/layout"
	"github.com/tsawler/colonnade/model"
)

// Config aggregates the engine configuration.
type Config struct {
	// Classifier configures layout classification.
	Classifier layout.ClassifierConfig

	// Segmenter configures word-to-column assignment.
	Segmenter layout.SegmenterConfig

	// Workers bounds the number of pages analyzed concurrently by
	// AnalyzeDocument. Zero selects runtime.NumCPU().
	Workers int
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Classifier: layout.DefaultClassifierConfig(),
		Segmenter:  layout.DefaultSegmenterConfig(),
	}
}

// PageResult is the analysis of a single page.
type PageResult struct {
	// Layout is the page classification.
	Layout *layout.Layout

	// Columns are the page's words partitioned into columns, left to
	// right, each sorted top to bottom.
	Columns []model.Column
}

// Words returns the page's words in reading order: columns left to right,
// each column top to bottom.
func (r PageResult) Words() []model.Word {
	return layout.ReadingOrder(r.Columns)
}

// Engine classifies pages and segments their words into columns.
type Engine struct {
	config     Config
	classifier *layout.Classifier
	segmenter  *layout.Segmenter
}

// New creates an engine with default configuration.
func New() *Engine {
	e, _ := NewWithConfig(DefaultConfig())
	return e
}

// NewWithConfig creates an engine with custom configuration. Invalid
// configuration is rejected here rather than surfacing during analysis.
func NewWithConfig(config Config) (*Engine, error) {
	if config.Workers < 0 {
		return nil, fmt.Errorf("colonnade: Workers must be non-negative, got %d", config.Workers)
	}
	classifier, err := layout.NewClassifierWithConfig(config.Classifier)
	if err != nil {
		return nil, err
	}
	segmenter, err := layout.NewSegmenterWithConfig(config.Segmenter)
	if err != nil {
		return nil, err
	}
	return &Engine{
		config:     config,
		classifier: classifier,
		segmenter:  segmenter,
	}, nil
}

// Analyze classifies and segments a single page of words with default
// configuration. Shorthand for New().AnalyzePage(model.NewPage(words, w, h)).
func Analyze(words []model.Word, pageWidth, pageHeight float64) PageResult {
	return New().AnalyzePage(model.NewPage(words, pageWidth, pageHeight))
}

// AnalyzePage classifies one page and assigns its words to columns. Empty
// pages yield a single-column layout with confidence 0.
func (e *Engine) AnalyzePage(page model.Page) PageResult {
	l := e.classifier.Classify(page.Words, page.Width, page.Height)
	return PageResult{
		Layout:  l,
		Columns: e.segmenter.Segment(page.Words, l),
	}
}
