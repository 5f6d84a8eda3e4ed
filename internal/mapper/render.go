package mapper

import (
	"errors"
	"fmt"

	"polymap/internal/logging"
	"polymap/internal/render"
)

// Render brings the derived primitives up to date and draws them with r.
//
// The dataset is updated and the color table built on every call. The
// colors and primitives are rebuilt only when the dataset or the color table
// is newer than the last build, or the mapper's configuration changed.
// Visible kinds with at least one cell are then drawn in the order points,
// lines, polygons, triangle strips.
//
// Render returns ErrNoInput, without touching r, when no dataset is
// attached. Backend failures for one kind are collected and returned; they
// do not stop the other kinds.
func (m *PolyMapper) Render(r render.Renderer) error {
	log := logging.Logger()
	if m.input == nil {
		log.Error("mapper: no input")
		return ErrNoInput
	}
	m.input.Update()

	if m.table == nil {
		m.CreateDefaultLookupTable()
	}
	m.table.Build()

	var errs []error
	if m.stale() {
		errs = m.build(r)
	}

	for _, k := range render.Kinds {
		p := m.prims[k]
		if p == nil || !m.drawable(k) {
			continue
		}
		if err := p.Draw(r); err != nil {
			errs = append(errs, fmt.Errorf("mapper: draw %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

func (m *PolyMapper) stale() bool {
	bt := m.buildTime.Time()
	return m.forceBuild || m.input.MTime() > bt || m.table.MTime() > bt
}

func (m *PolyMapper) drawable(k render.Kind) bool {
	return m.visible[k] && count(m.input, k) > 0
}

// build regenerates the color cache and the primitive of every drawable
// kind, then stamps the build time.
func (m *PolyMapper) build(r render.Renderer) []error {
	log := logging.Logger()
	m.buildColors()

	var errs []error
	for _, k := range render.Kinds {
		if !m.drawable(k) {
			continue
		}
		if m.prims[k] == nil {
			p, err := r.NewPrimitive(k)
			if err == nil && p == nil {
				err = errors.New("backend returned no primitive")
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("mapper: new %s primitive: %w", k, err))
				continue
			}
			m.prims[k] = p
		}
		m.prims[k].Build(m.input, m.colors)
		log.Debug("mapper: built primitive", "kind", k, "cells", count(m.input, k))
	}

	m.buildTime.Modified()
	// retry kinds the backend could not provide on the next call
	m.forceBuild = len(errs) > 0
	return errs
}

// buildColors refills the color cache from the input's scalars, or drops
// it when scalar coloring is off or there is nothing to color by.
func (m *PolyMapper) buildColors() {
	scalars := m.input.PointScalars()
	n := m.input.NumberOfPoints()
	if !m.scalarsVisible || scalars == nil {
		m.colors = nil
		return
	}
	if len(scalars) < n {
		logging.Logger().Warn("mapper: fewer scalars than points, coloring disabled",
			"scalars", len(scalars), "points", n)
		m.colors = nil
		return
	}

	m.colors = make(render.Colors, n)
	m.table.SetTableRange(m.scalarRange[0], m.scalarRange[1])
	for i := range n {
		m.colors[i] = m.table.MapValue(scalars[i])
	}
	logging.Logger().Debug("mapper: colors rebuilt", "points", n)
}
