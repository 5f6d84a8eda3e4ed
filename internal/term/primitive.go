package term

import (
	"fmt"

	"polymap/internal/render"
)

// primitive keeps its cells in world coordinates and projects them through
// the target's viewport when drawn, so panning and zooming need no rebuild.
type primitive struct {
	kind   render.Kind
	shapes []render.Shape
}

func (p *primitive) Build(g render.Geometry, colors render.Colors) {
	p.shapes = render.Shapes(g, p.kind, colors, defaultColors[p.kind])
}

func (p *primitive) Draw(r render.Renderer) error {
	t, ok := r.(*Target)
	if !ok {
		return fmt.Errorf("term: cannot draw %s on %T", p.kind, r)
	}
	vp := t.vp
	if vp.Width <= 0 || vp.Height <= 0 {
		return nil
	}
	for _, s := range p.shapes {
		pts := make([][2]int, len(s.Points))
		for i, pt := range s.Points {
			pts[i][0], pts[i][1], _ = vp.ProjectInt(pt)
		}
		switch p.kind {
		case render.Verts:
			for i, pt := range pts {
				t.canvas.setDot(pt[0], pt[1], s.Colors[i])
			}
		case render.Lines:
			for i := 1; i < len(pts); i++ {
				t.canvas.line(pts[i-1][0], pts[i-1][1], pts[i][0], pts[i][1], s.Colors[i-1])
			}
			if len(pts) == 1 {
				t.canvas.setDot(pts[0][0], pts[0][1], s.Colors[0])
			}
		case render.Polys, render.Strips:
			t.canvas.fill(pts, s.Fill)
			t.canvas.outline(pts, s.Fill)
		}
	}
	return nil
}

func (p *primitive) Release() { p.shapes = nil }
