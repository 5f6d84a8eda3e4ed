// Package term is a rendering backend drawing into a grid of braille
// characters, colored for the terminal with lipgloss.
package term

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polymap/internal/render"
)

// Name is the name the target is registered under.
const Name = "term"

func init() {
	render.Register(Name, func(w, h int) render.Target { return New(w, h) })
}

// Default colors per kind, used when the mapper supplies no colors.
var defaultColors = [...]color.NRGBA{
	render.Verts:  {0xE6, 0xE6, 0xE6, 0xFF},
	render.Lines:  {0x7C, 0x3A, 0xED, 0xFF},
	render.Polys:  {0x6B, 0x72, 0x80, 0xFF},
	render.Strips: {0x24, 0x91, 0x41, 0xFF},
}

// Target is a braille canvas of Width x Height cells. Its viewport works in
// dots, two columns and four rows per cell.
type Target struct {
	canvas *canvas
	vp     render.Viewport
}

var _ render.Target = (*Target)(nil)

// New returns a target of w x h cells showing the unit cube.
func New(w, h int) *Target {
	t := &Target{}
	t.Resize(w, h)
	t.vp.Bounds = render.DefaultBounds()
	t.vp.Zoom = 1
	return t
}

// Resize changes the size in cells and clears the canvas. Bounds, zoom and
// pan are kept.
func (t *Target) Resize(w, h int) {
	t.canvas = newCanvas(w, h)
	t.vp.Width = t.canvas.w * 2
	t.vp.Height = t.canvas.h * 4
}

// Size returns the size in cells.
func (t *Target) Size() (w, h int) { return t.canvas.w, t.canvas.h }

// SetViewport sets bounds, zoom and pan. The dot grid size always follows
// the canvas size.
func (t *Target) SetViewport(v render.Viewport) {
	v.Width, v.Height = t.vp.Width, t.vp.Height
	t.vp = v
}

func (t *Target) Viewport() render.Viewport { return t.vp }

func (t *Target) Clear() { t.canvas.clear() }

// NewPrimitive returns a primitive drawing cells of kind k.
func (t *Target) NewPrimitive(k render.Kind) (render.Primitive, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("term: unsupported primitive %v", k)
	}
	return &primitive{kind: k}, nil
}

// Lines returns the canvas rows without colors.
func (t *Target) Lines() []string {
	out := make([]string, t.canvas.h)
	for y := range out {
		row := make([]rune, t.canvas.w)
		for x := range row {
			row[x] = t.canvas.glyph(x, y)
		}
		out[y] = string(row)
	}
	return out
}

// String returns the canvas rows joined by newlines, each run of equally
// colored cells styled with its color.
func (t *Target) String() string {
	rows := make([]string, t.canvas.h)
	var run strings.Builder
	for y := range rows {
		var row strings.Builder
		var runColor color.NRGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runColor.A == 0 {
				row.WriteString(run.String())
			} else {
				row.WriteString(lipgloss.NewStyle().Foreground(hexColor(runColor)).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < t.canvas.w; x++ {
			g := t.canvas.glyph(x, y)
			col := t.canvas.colors[y][x]
			if g == ' ' {
				col = color.NRGBA{}
			}
			if col != runColor {
				flush()
				runColor = col
			}
			run.WriteRune(g)
		}
		flush()
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// WriteTo writes String followed by a newline.
func (t *Target) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String()+"\n")
	return int64(n), err
}

func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}
