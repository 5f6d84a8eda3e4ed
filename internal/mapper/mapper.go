// Package mapper turns a polygonal dataset into backend primitives and
// draws them.
//
// A PolyMapper owns one primitive per kind (points, lines, polygons,
// triangle strips) and a per-point color cache derived from the dataset's
// scalars through a color table. Every Render call refreshes the dataset and
// the color table, rebuilds the derived state only when either of them (or
// the mapper's own configuration) changed since the last build, and then
// draws every visible, non-empty kind in a fixed order.
//
// A PolyMapper is not safe for concurrent use.
package mapper

import (
	"errors"
	"image/color"
	"slices"

	"polymap/internal/lut"
	"polymap/internal/mtime"
	"polymap/internal/render"
)

// ErrNoInput is returned by Render when no dataset is attached.
var ErrNoInput = errors.New("mapper: no input")

// Dataset is the polygonal data a mapper draws. Implementations must be
// pointer types: SetInput compares datasets by identity.
type Dataset interface {
	render.Geometry

	// Update brings the dataset up to date. It must be cheap when nothing
	// changed.
	Update()
	MTime() mtime.Time

	NumberOfVerts() int
	NumberOfLines() int
	NumberOfPolys() int
	NumberOfStrips() int

	// PointScalars returns one value per point, or nil.
	PointScalars() []float64
}

// ColorTable maps scalars to colors.
type ColorTable interface {
	// Build brings the table up to date. It must be cheap when nothing
	// changed.
	Build()
	MTime() mtime.Time
	SetTableRange(lo, hi float64)
	MapValue(v float64) color.NRGBA
}

// PolyMapper maps a Dataset to render primitives. Use New to create one.
type PolyMapper struct {
	input Dataset
	table ColorTable

	prims   [len(render.Kinds)]render.Primitive
	visible [len(render.Kinds)]bool
	colors  render.Colors

	scalarsVisible bool
	scalarRange    [2]float64

	stamp      mtime.Stamp
	buildTime  mtime.Stamp
	forceBuild bool
}

// New returns a mapper with no input, every kind visible and scalar
// coloring on over the range [0, 1].
func New() *PolyMapper {
	m := &PolyMapper{
		scalarsVisible: true,
		scalarRange:    [2]float64{0, 1},
	}
	for _, k := range render.Kinds {
		m.visible[k] = true
	}
	m.stamp.Modified()
	return m
}

// modified records a configuration change and makes the next Render rebuild.
func (m *PolyMapper) modified() {
	m.stamp.Modified()
	m.forceBuild = true
}

// MTime returns when the mapper's configuration last changed.
func (m *PolyMapper) MTime() mtime.Time { return m.stamp.Time() }

// BuildTime returns when the derived primitives and colors were last rebuilt.
func (m *PolyMapper) BuildTime() mtime.Time { return m.buildTime.Time() }

// SetInput attaches ds. A dataset other than the current one, even with
// identical contents, forces the next Render to rebuild.
func (m *PolyMapper) SetInput(ds Dataset) {
	if ds == m.input {
		return
	}
	m.input = ds
	m.modified()
}

// Input returns the attached dataset.
func (m *PolyMapper) Input() Dataset { return m.input }

// Bounds returns the bounds of the input, updating it first, or the unit
// cube when there is no input. It never rebuilds primitives.
func (m *PolyMapper) Bounds() render.Bounds {
	if m.input == nil {
		return render.DefaultBounds()
	}
	m.input.Update()
	return m.input.Bounds()
}

// SetLookupTable sets the color table used for scalar coloring.
func (m *PolyMapper) SetLookupTable(t ColorTable) {
	if t == m.table {
		return
	}
	m.table = t
	m.modified()
}

// LookupTable returns the color table, which is nil until set or until the
// first Render creates the default one.
func (m *PolyMapper) LookupTable() ColorTable { return m.table }

// CreateDefaultLookupTable installs a fresh red-to-blue table.
func (m *PolyMapper) CreateDefaultLookupTable() {
	m.table = lut.New()
	m.modified()
}

// SetScalarsVisible turns scalar coloring on or off. Turning it off releases
// the color cache.
func (m *PolyMapper) SetScalarsVisible(on bool) {
	if m.scalarsVisible == on {
		return
	}
	m.scalarsVisible = on
	if !on {
		m.colors = nil
	}
	m.modified()
}

func (m *PolyMapper) ScalarsVisible() bool { return m.scalarsVisible }

// SetScalarRange sets the scalar range handed to the color table on rebuild.
func (m *PolyMapper) SetScalarRange(lo, hi float64) {
	if m.scalarRange == [2]float64{lo, hi} {
		return
	}
	m.scalarRange = [2]float64{lo, hi}
	m.modified()
}

func (m *PolyMapper) ScalarRange() (lo, hi float64) { return m.scalarRange[0], m.scalarRange[1] }

// SetVisibility turns drawing of kind k on or off.
func (m *PolyMapper) SetVisibility(k render.Kind, on bool) {
	if !k.Valid() || m.visible[k] == on {
		return
	}
	m.visible[k] = on
	m.modified()
}

// Visibility reports whether kind k is drawn.
func (m *PolyMapper) Visibility(k render.Kind) bool {
	return k.Valid() && m.visible[k]
}

func (m *PolyMapper) SetVertsVisibility(on bool)  { m.SetVisibility(render.Verts, on) }
func (m *PolyMapper) SetLinesVisibility(on bool)  { m.SetVisibility(render.Lines, on) }
func (m *PolyMapper) SetPolysVisibility(on bool)  { m.SetVisibility(render.Polys, on) }
func (m *PolyMapper) SetStripsVisibility(on bool) { m.SetVisibility(render.Strips, on) }

func (m *PolyMapper) VertsVisibility() bool  { return m.visible[render.Verts] }
func (m *PolyMapper) LinesVisibility() bool  { return m.visible[render.Lines] }
func (m *PolyMapper) PolysVisibility() bool  { return m.visible[render.Polys] }
func (m *PolyMapper) StripsVisibility() bool { return m.visible[render.Strips] }

// Colors returns a copy of the color cache, nil when scalar coloring is off
// or the input has no scalars.
func (m *PolyMapper) Colors() render.Colors {
	return slices.Clone(m.colors)
}

// HasPrimitive reports whether the mapper holds a primitive for kind k.
func (m *PolyMapper) HasPrimitive(k render.Kind) bool {
	return k.Valid() && m.prims[k] != nil
}

// Release frees every primitive and the color cache. The input and the color
// table are not owned and stay attached; the next Render rebuilds.
func (m *PolyMapper) Release() {
	for k, p := range m.prims {
		if p != nil {
			p.Release()
			m.prims[k] = nil
		}
	}
	m.colors = nil
	m.forceBuild = true
}

func count(ds Dataset, k render.Kind) int {
	switch k {
	case render.Verts:
		return ds.NumberOfVerts()
	case render.Lines:
		return ds.NumberOfLines()
	case render.Polys:
		return ds.NumberOfPolys()
	case render.Strips:
		return ds.NumberOfStrips()
	}
	return 0
}
