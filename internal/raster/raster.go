// Package raster is a rendering backend drawing anti-aliased primitives into
// an in-memory image with gogpu/gg, written out as PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"polymap/internal/render"
)

// Name is the name the target is registered under.
const Name = "png"

func init() {
	render.Register(Name, func(w, h int) render.Target { return New(w, h) })
}

// Default colors per kind, used when the mapper supplies no colors.
var defaultColors = [...]color.NRGBA{
	render.Verts:  {0x11, 0x18, 0x27, 0xFF},
	render.Lines:  {0x7C, 0x3A, 0xED, 0xFF},
	render.Polys:  {0x6B, 0x72, 0x80, 0xFF},
	render.Strips: {0x24, 0x91, 0x41, 0xFF},
}

// Target draws into a Width x Height pixel image.
type Target struct {
	dc *gg.Context
	vp render.Viewport

	// Background is used by Clear.
	Background color.NRGBA
	// LineWidth is the stroke width of lines and outlines, in pixels.
	LineWidth float64
	// PointRadius is the radius of vertex dots, in pixels.
	PointRadius float64
}

var _ render.Target = (*Target)(nil)

// New returns a cleared white target of w x h pixels showing the unit cube.
func New(w, h int) *Target {
	w, h = max(w, 1), max(h, 1)
	t := &Target{
		dc:          gg.NewContext(w, h),
		vp:          render.NewViewport(render.DefaultBounds(), w, h),
		Background:  color.NRGBA{0xFF, 0xFF, 0xFF, 0xFF},
		LineWidth:   1.5,
		PointRadius: 2,
	}
	t.Clear()
	return t
}

// SetViewport sets bounds, zoom and pan. The pixel size always follows the
// image size.
func (t *Target) SetViewport(v render.Viewport) {
	v.Width, v.Height = t.dc.Width(), t.dc.Height()
	t.vp = v
}

func (t *Target) Viewport() render.Viewport { return t.vp }

// Clear fills the image with the background color.
func (t *Target) Clear() {
	t.dc.ClearPath()
	t.dc.ClearWithColor(gg.FromColor(t.Background))
}

// NewPrimitive returns a primitive drawing cells of kind k.
func (t *Target) NewPrimitive(k render.Kind) (render.Primitive, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("raster: unsupported primitive %v", k)
	}
	return &primitive{kind: k}, nil
}

// Image returns a copy of the current pixels.
func (t *Target) Image() image.Image { return t.dc.Image() }

// WriteTo encodes the image as PNG.
func (t *Target) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	err := t.dc.EncodePNG(cw)
	return cw.n, err
}

// SavePNG writes the image to a PNG file at path.
func (t *Target) SavePNG(path string) error { return t.dc.SavePNG(path) }

// Close releases the drawing context.
func (t *Target) Close() error { return t.dc.Close() }

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
