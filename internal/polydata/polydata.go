// Package polydata implements a dataset of points and the four kinds of
// cells (vertices, lines, polygons, triangle strips) built on them, with
// optional per-point scalars.
package polydata

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/golang/geo/r3"

	"polymap/internal/logging"
	"polymap/internal/mtime"
	"polymap/internal/render"
)

var (
	// ErrCellIndex is returned when a cell references a point that does not exist.
	ErrCellIndex = errors.New("polydata: cell references a missing point")
	// ErrScalarCount is returned when scalars do not line up with points.
	ErrScalarCount = errors.New("polydata: scalar count does not match point count")
)

// Source fills a dataset. Update executes the source whenever the source is
// newer than the last execution.
type Source interface {
	MTime() mtime.Time
	Execute(d *PolyData) error
}

// PolyData is a polygonal dataset. The zero value is an empty dataset ready
// to use. PolyData must be used through a pointer: mappers compare datasets
// by identity.
type PolyData struct {
	points  []r3.Vector
	scalars []float64
	cells   [len(render.Kinds)][][]int

	stamp      mtime.Stamp
	bounds     render.Bounds
	boundsTime mtime.Time

	source   Source
	execTime mtime.Time
	err      error
}

// New returns an empty dataset.
func New() *PolyData {
	d := &PolyData{}
	d.Modified()
	return d
}

// NewFromSource returns an empty dataset that is filled by src on Update.
func NewFromSource(src Source) *PolyData {
	d := New()
	d.source = src
	return d
}

// Modified marks the dataset as changed.
func (d *PolyData) Modified() {
	d.stamp.Modified()
}

// MTime returns when the dataset last changed.
func (d *PolyData) MTime() mtime.Time {
	return d.stamp.Time()
}

// SetSource attaches src; nil detaches. Attaching forces the next Update to
// execute the source.
func (d *PolyData) SetSource(src Source) {
	d.source = src
	d.execTime = 0
	d.Modified()
}

// Source returns the attached source, if any.
func (d *PolyData) Source() Source {
	return d.source
}

// Update executes the attached source if it changed since the last
// execution. It is cheap when nothing changed and never fails: an execution
// error is logged and kept for Err.
func (d *PolyData) Update() {
	if d.source == nil {
		return
	}
	if d.execTime != 0 && d.source.MTime() <= d.execTime {
		return
	}
	d.err = d.source.Execute(d)
	d.execTime = mtime.Now()
	if d.err != nil {
		logging.Logger().Warn("polydata: source execution failed", "err", d.err)
	}
}

// Err returns the error of the last source execution.
func (d *PolyData) Err() error {
	return d.err
}

// Reset removes all points, scalars and cells.
func (d *PolyData) Reset() {
	d.points = nil
	d.scalars = nil
	for k := range d.cells {
		d.cells[k] = nil
	}
	d.Modified()
}

// CopyFrom replaces the geometry and scalars of d with a deep copy of
// src's. The source attachment of d is kept.
func (d *PolyData) CopyFrom(src *PolyData) {
	d.points = slices.Clone(src.points)
	d.scalars = slices.Clone(src.scalars)
	for k := range d.cells {
		d.cells[k] = make([][]int, len(src.cells[k]))
		for i, ids := range src.cells[k] {
			d.cells[k][i] = slices.Clone(ids)
		}
	}
	d.Modified()
}

// AddPoint appends a point and returns its index. If the dataset carries
// scalars the new point gets scalar 0.
func (d *PolyData) AddPoint(p r3.Vector) int {
	d.points = append(d.points, p)
	if d.scalars != nil {
		d.scalars = append(d.scalars, 0)
	}
	d.Modified()
	return len(d.points) - 1
}

// AddPointScalar appends a point with a scalar value and returns its index.
// Points added earlier without a scalar get 0.
func (d *PolyData) AddPointScalar(p r3.Vector, s float64) int {
	if d.scalars == nil {
		d.scalars = make([]float64, len(d.points), len(d.points)+1)
	}
	d.points = append(d.points, p)
	d.scalars = append(d.scalars, s)
	d.Modified()
	return len(d.points) - 1
}

// SetPoints replaces all points. Existing cells and scalars are dropped.
func (d *PolyData) SetPoints(pts []r3.Vector) {
	d.points = pts
	d.scalars = nil
	for k := range d.cells {
		d.cells[k] = nil
	}
	d.Modified()
}

// SetScalars attaches one scalar per point; nil removes the scalars.
func (d *PolyData) SetScalars(s []float64) error {
	if s != nil && len(s) != len(d.points) {
		return fmt.Errorf("%w: %d scalars for %d points", ErrScalarCount, len(s), len(d.points))
	}
	d.scalars = s
	d.Modified()
	return nil
}

// InsertCell appends a cell of kind k made of the given point indices.
func (d *PolyData) InsertCell(k render.Kind, ids ...int) error {
	if !k.Valid() {
		return fmt.Errorf("polydata: invalid kind %v", k)
	}
	if len(ids) == 0 {
		return fmt.Errorf("polydata: empty %s cell", k)
	}
	for _, id := range ids {
		if id < 0 || id >= len(d.points) {
			return fmt.Errorf("%w: %d of %d", ErrCellIndex, id, len(d.points))
		}
	}
	d.cells[k] = append(d.cells[k], append([]int(nil), ids...))
	d.Modified()
	return nil
}

// NumberOfPoints returns the number of points.
func (d *PolyData) NumberOfPoints() int { return len(d.points) }

// NumberOfCells returns the number of cells of kind k.
func (d *PolyData) NumberOfCells(k render.Kind) int {
	if !k.Valid() {
		return 0
	}
	return len(d.cells[k])
}

func (d *PolyData) NumberOfVerts() int  { return d.NumberOfCells(render.Verts) }
func (d *PolyData) NumberOfLines() int  { return d.NumberOfCells(render.Lines) }
func (d *PolyData) NumberOfPolys() int  { return d.NumberOfCells(render.Polys) }
func (d *PolyData) NumberOfStrips() int { return d.NumberOfCells(render.Strips) }

// Point returns point i.
func (d *PolyData) Point(i int) r3.Vector { return d.points[i] }

// Points returns the points. The slice must not be modified.
func (d *PolyData) Points() []r3.Vector { return d.points }

// Cells returns the cells of kind k. The slices must not be modified.
func (d *PolyData) Cells(k render.Kind) [][]int {
	if !k.Valid() {
		return nil
	}
	return d.cells[k]
}

// PointScalars returns one scalar per point, or nil if the dataset has none.
func (d *PolyData) PointScalars() []float64 {
	if d.scalars == nil || len(d.scalars) != len(d.points) {
		return nil
	}
	return d.scalars
}

// ScalarRange returns the smallest and largest finite scalar. ok is false
// when there are no scalars.
func (d *PolyData) ScalarRange() (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range d.PointScalars() {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			continue
		}
		lo, hi = min(lo, s), max(hi, s)
	}
	if lo > hi {
		return 0, 0, false
	}
	return lo, hi, true
}

// Bounds returns the box around all points, or the unit cube for an empty
// dataset.
func (d *PolyData) Bounds() render.Bounds {
	if d.boundsTime == 0 || d.stamp.Newer(d.boundsTime) {
		d.bounds = render.BoundsOf(d.points)
		d.boundsTime = d.stamp.Time()
	}
	return d.bounds
}
