//go:build ocr

// Package ocr extracts positioned words from page images for layout
// analysis.
//
// This package wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/colonnade/model"
)

// Client wraps Tesseract for word extraction.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Words performs OCR on image data (PNG, TIFF, JPEG, etc.) and returns the
// recognized words with their bounding boxes in pixel coordinates, top-left
// origin.
func (c *Client) Words(imageData []byte) ([]model.Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	words := make([]model.Word, 0, len(boxes))
	for _, b := range boxes {
		w := model.Word{
			Text: b.Word,
			X0:   float64(b.Box.Min.X),
			Y0:   float64(b.Box.Min.Y),
			X1:   float64(b.Box.Max.X),
			Y1:   float64(b.Box.Max.Y),
		}
		if w.Valid() {
			words = append(words, w)
		}
	}
	return words, nil
}

// Page performs OCR on image data and returns a page ready for layout
// analysis, with dimensions inferred from the word extents.
func (c *Client) Page(imageData []byte) (model.Page, error) {
	words, err := c.Words(imageData)
	if err != nil {
		return model.Page{}, err
	}
	return model.NewPage(words, 0, 0), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
