package colonnade

import (
	"runtime"
	"sync"

	"github.com/tsawler/colonnade/layout"
	"github.com/tsawler/colonnade/model"
)

// DocumentResult is the analysis of a multi-page document.
type DocumentResult struct {
	// Pages holds one result per input page, in page order.
	Pages []PageResult

	// Structure is the document-level column structure: the majority vote
	// of per-page column counts with boundary coordinates averaged across
	// the winning pages.
	Structure []model.ColumnBoundary
}

// AnalyzeDocument analyzes every page of a document. Pages are independent,
// so they are processed by a bounded worker pool; results are returned in
// page order regardless of completion order.
func (e *Engine) AnalyzeDocument(pages []model.Page) DocumentResult {
	results := make([]PageResult, len(pages))
	if len(pages) == 0 {
		return DocumentResult{Pages: results}
	}

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = e.AnalyzePage(pages[i])
			}
		}()
	}
	for i := range pages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	layouts := make([]*layout.Layout, len(results))
	for i := range results {
		layouts[i] = results[i].Layout
	}

	return DocumentResult{
		Pages:     results,
		Structure: layout.DocumentBoundaries(layouts),
	}
}
