// Package hocr parses hOCR output (the HTML-based OCR interchange format
// produced by Tesseract and friends) into positioned words for layout
// analysis.
package hocr

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/bidi"

	"github.com/tsawler/colonnade/model"
)

// Reader provides access to the pages of an hOCR document.
type Reader struct {
	pages []model.Page
}

// Open opens an hOCR file for reading.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses hOCR from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hOCR: %w", err)
	}

	reader := &Reader{}
	reader.extractPages(doc)
	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	// Nothing to close (no file handles kept)
	return nil
}

// Pages returns the parsed pages in document order.
func (r *Reader) Pages() []model.Page {
	return r.pages
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() (int, error) {
	return len(r.pages), nil
}

// extractPages walks the DOM collecting ocr_page elements.
func (r *Reader) extractPages(n *html.Node) {
	if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
		r.pages = append(r.pages, parsePage(n))
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractPages(c)
	}
}

// parsePage builds a model.Page from an ocr_page element. Page dimensions
// come from the page's own bbox; missing dimensions are inferred from the
// word extents.
func parsePage(n *html.Node) model.Page {
	var width, height float64
	if box, ok := parseBBox(attrValue(n, "title")); ok {
		width = box.x1 - box.x0
		height = box.y1 - box.y0
	}

	var words []model.Word
	collectWords(n, false, &words)
	return model.NewPage(words, width, height)
}

// collectWords gathers ocrx_word descendants. Bold propagates down from
// enclosing strong/b elements, as Tesseract emits them.
func collectWords(n *html.Node, bold bool, words *[]model.Word) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "strong", "b":
			bold = true
		}
		if hasClass(n, "ocrx_word") {
			if w, ok := parseWord(n, bold); ok {
				*words = append(*words, w)
			}
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c, bold, words)
	}
}

// parseWord builds a model.Word from an ocrx_word element. Words without a
// parseable bbox are dropped.
func parseWord(n *html.Node, bold bool) (model.Word, bool) {
	title := attrValue(n, "title")
	box, ok := parseBBox(title)
	if !ok {
		return model.Word{}, false
	}

	text := strings.TrimSpace(getTextContent(n))
	w := model.Word{
		Text:      text,
		X0:        box.x0,
		Y0:        box.y0,
		X1:        box.x1,
		Y1:        box.y1,
		FontSize:  titleField(title, "x_fsize"),
		Bold:      bold || hasBoldChild(n),
		Direction: textDirection(text),
	}
	return w, w.Valid()
}

type bbox struct {
	x0, y0, x1, y1 float64
}

// parseBBox extracts the "bbox x0 y0 x1 y1" property from an hOCR title
// attribute.
func parseBBox(title string) (bbox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var vals [4]float64
		for i, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return bbox{}, false
			}
			vals[i] = v
		}
		return bbox{vals[0], vals[1], vals[2], vals[3]}, true
	}
	return bbox{}, false
}

// titleField extracts a single-valued numeric property (x_wconf, x_fsize)
// from an hOCR title attribute, or 0 when absent.
func titleField(title, name string) float64 {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(prop))
		if len(fields) != 2 || fields[0] != name {
			continue
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

// textDirection classifies the word's script direction. Layout analysis is
// geometry-driven, but the direction is carried through for downstream
// reading-order consumers.
func textDirection(text string) model.Direction {
	if text == "" {
		return model.DirectionUnknown
	}
	var p bidi.Paragraph
	if _, err := p.SetString(text); err != nil {
		return model.DirectionUnknown
	}
	ordering, err := p.Order()
	if err != nil {
		return model.DirectionUnknown
	}
	if ordering.NumRuns() == 0 {
		return model.DirectionNeutral
	}
	run := ordering.Run(0)
	switch run.Direction() {
	case bidi.LeftToRight:
		return model.DirectionLTR
	case bidi.RightToLeft:
		return model.DirectionRTL
	default:
		return model.DirectionNeutral
	}
}

// hasClass reports whether the node's class attribute contains the given
// class name.
func hasClass(n *html.Node, class string) bool {
	for _, f := range strings.Fields(attrValue(n, "class")) {
		if f == class {
			return true
		}
	}
	return false
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// hasBoldChild reports whether the word's text is wrapped in strong/b.
func hasBoldChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "strong" || c.Data == "b") {
			return true
		}
	}
	return false
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}
