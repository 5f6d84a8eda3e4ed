package raster

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r3"

	"polymap/internal/render"
)

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
		return fmt.Errorf("raster: cannot draw %s on %T", p.kind, r)
	}
	if t.vp.Width <= 0 || t.vp.Height <= 0 {
		return nil
	}
	dc := t.dc
	dc.SetLineWidth(t.LineWidth)
	var errs []error
	for _, s := range p.shapes {
		switch p.kind {
		case render.Verts:
			for i, pt := range s.Points {
				x, y := project(t, pt)
				dc.SetColor(s.Colors[i])
				dc.DrawCircle(x, y, t.PointRadius)
				errs = append(errs, dc.Fill())
			}
		case render.Lines:
			for i := 1; i < len(s.Points); i++ {
				x0, y0 := project(t, s.Points[i-1])
				x1, y1 := project(t, s.Points[i])
				dc.SetColor(s.Colors[i-1])
				dc.MoveTo(x0, y0)
				dc.LineTo(x1, y1)
				errs = append(errs, dc.Stroke())
			}
		case render.Polys, render.Strips:
			if len(s.Points) < 3 {
				continue
			}
			for i, pt := range s.Points {
				x, y := project(t, pt)
				if i == 0 {
					dc.MoveTo(x, y)
				} else {
					dc.LineTo(x, y)
				}
			}
			dc.ClosePath()
			dc.SetColor(s.Fill)
			errs = append(errs, dc.Fill())
		}
	}
	return errors.Join(errs...)
}

func (p *primitive) Release() { p.shapes = nil }

// project maps pt to pixel centers.
func project(t *Target, pt r3.Vector) (x, y float64) {
	x, y, _ = t.vp.Project(pt)
	return x + 0.5, y + 0.5
}
