// Package render draws diagnostic overlays of a page analysis: word boxes,
// column boundaries, and the detected gutter, rasterized to an image for
// visual inspection of classification results.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/colonnade/layout"
	"github.com/tsawler/colonnade/model"
)

// Config holds rendering configuration.
type Config struct {
	// Scale converts page points to output pixels. Default: 1.0.
	Scale float64

	// Background fill. Default: white.
	Background color.Color

	// WordColor outlines word bounding boxes. Default: gray.
	WordColor color.Color

	// BoundaryColor draws column boundary lines. Default: red.
	BoundaryColor color.Color

	// GutterColor marks the detected gutter center. Default: blue.
	GutterColor color.Color

	// Labels draws a column index label at the top of each column.
	// Default: true.
	Labels bool
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Scale:         1.0,
		Background:    color.White,
		WordColor:     color.RGBA{R: 128, G: 128, B: 128, A: 255},
		BoundaryColor: color.RGBA{R: 220, A: 255},
		GutterColor:   color.RGBA{B: 220, A: 255},
		Labels:        true,
	}
}

func (c Config) validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("render: Scale must be positive, got %g", c.Scale)
	}
	return nil
}

// Renderer rasterizes page analyses.
type Renderer struct {
	config Config
}

// New creates a renderer with default configuration.
func New() *Renderer {
	r, _ := NewWithConfig(DefaultConfig())
	return r
}

// NewWithConfig creates a renderer with custom configuration.
func NewWithConfig(config Config) (*Renderer, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &Renderer{config: config}, nil
}

// Overlay renders the page's words, the layout's column boundaries, and the
// detected gutter center onto a fresh image. A nil layout renders words only.
func (r *Renderer) Overlay(page model.Page, l *layout.Layout) *image.RGBA {
	w := int(page.Width * r.config.Scale)
	h := int(page.Height * r.config.Scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.config.Background), image.Point{}, draw.Src)

	for _, word := range page.Words {
		r.rect(img,
			int(word.X0*r.config.Scale), int(word.Y0*r.config.Scale),
			int(word.X1*r.config.Scale), int(word.Y1*r.config.Scale),
			r.config.WordColor)
	}

	if l == nil {
		return img
	}

	// Interior boundary edges only; the page edges carry no information.
	for i, b := range l.Boundaries {
		if i > 0 {
			r.vline(img, int(b.Start*r.config.Scale), r.config.BoundaryColor)
		}
		if r.config.Labels {
			r.label(img, fmt.Sprintf("C%d", i+1), int(b.Center()*r.config.Scale), 14)
		}
	}

	if l.Type != layout.LayoutSingle && l.Metrics.GutterX > 0 {
		r.dashedVline(img, int(l.Metrics.GutterX*r.config.Scale), r.config.GutterColor)
	}

	return img
}

// rect draws a 1px rectangle outline, clipped to the image.
func (r *Renderer) rect(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	for x := x0; x <= x1; x++ {
		setClipped(img, x, y0, c)
		setClipped(img, x, y1, c)
	}
	for y := y0; y <= y1; y++ {
		setClipped(img, x0, y, c)
		setClipped(img, x1, y, c)
	}
}

// vline draws a full-height vertical line.
func (r *Renderer) vline(img *image.RGBA, x int, c color.Color) {
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		setClipped(img, x, y, c)
	}
}

// dashedVline draws a full-height vertical line with a 6px-on, 4px-off dash.
func (r *Renderer) dashedVline(img *image.RGBA, x int, c color.Color) {
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		if y%10 < 6 {
			setClipped(img, x, y, c)
		}
	}
}

// label draws text centered horizontally at x.
func (r *Renderer) label(img *image.RGBA, text string, x, y int) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.config.BoundaryColor),
		Face: face,
	}
	width := d.MeasureString(text).Ceil()
	d.Dot = fixed.P(x-width/2, y)
	d.DrawString(text)
}

func setClipped(img *image.RGBA, x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.Set(x, y, c)
	}
}
