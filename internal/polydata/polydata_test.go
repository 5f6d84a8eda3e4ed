package polydata

import (
	"errors"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/mtime"
	"polymap/internal/render"
)

func square(t *testing.T) *PolyData {
	t.Helper()
	d := New()
	d.AddPointScalar(r3.Vector{X: 0, Y: 0}, 0)
	d.AddPointScalar(r3.Vector{X: 1, Y: 0}, 0.5)
	d.AddPointScalar(r3.Vector{X: 1, Y: 1}, 1)
	d.AddPointScalar(r3.Vector{X: 0, Y: 1}, 0.25)
	require.NoError(t, d.InsertCell(render.Lines, 0, 1))
	require.NoError(t, d.InsertCell(render.Lines, 2, 3))
	require.NoError(t, d.InsertCell(render.Polys, 0, 1, 2, 3))
	return d
}

func TestCounts(t *testing.T) {
	d := square(t)
	assert.Equal(t, 4, d.NumberOfPoints())
	assert.Equal(t, 0, d.NumberOfVerts())
	assert.Equal(t, 2, d.NumberOfLines())
	assert.Equal(t, 1, d.NumberOfPolys())
	assert.Equal(t, 0, d.NumberOfStrips())
	assert.Equal(t, []float64{0, 0.5, 1, 0.25}, d.PointScalars())
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, d.Cells(render.Polys))
	assert.Equal(t, 0, d.NumberOfCells(render.Kind(9)))
	assert.Nil(t, d.Cells(render.Kind(-1)))
}

func TestInsertCellRejectsBadIndex(t *testing.T) {
	d := New()
	d.AddPoint(r3.Vector{})
	err := d.InsertCell(render.Lines, 0, 1)
	assert.True(t, errors.Is(err, ErrCellIndex))
	assert.Error(t, d.InsertCell(render.Lines))
	assert.Error(t, d.InsertCell(render.Kind(8), 0))
	assert.Equal(t, 0, d.NumberOfLines())
}

func TestInsertCellCopiesIDs(t *testing.T) {
	d := square(t)
	ids := []int{0, 1, 2}
	require.NoError(t, d.InsertCell(render.Strips, ids...))
	ids[0] = 3
	assert.Equal(t, []int{0, 1, 2}, d.Cells(render.Strips)[0])
}

func TestMutationsBumpMTime(t *testing.T) {
	d := New()
	steps := []func(){
		func() { d.AddPoint(r3.Vector{X: 1}) },
		func() { d.AddPointScalar(r3.Vector{X: 2}, 3) },
		func() { _ = d.InsertCell(render.Verts, 0) },
		func() { _ = d.SetScalars([]float64{1, 2}) },
		func() { d.Modified() },
		func() { d.Reset() },
	}
	for i, step := range steps {
		before := d.MTime()
		step()
		assert.Greater(t, d.MTime(), before, "step %d", i)
	}
}

func TestScalars(t *testing.T) {
	d := New()
	d.AddPoint(r3.Vector{})
	assert.Nil(t, d.PointScalars(), "no scalars yet")
	d.AddPointScalar(r3.Vector{X: 1}, 4)
	assert.Equal(t, []float64{0, 4}, d.PointScalars(), "earlier points backfilled")
	d.AddPoint(r3.Vector{X: 2})
	assert.Equal(t, []float64{0, 4, 0}, d.PointScalars())

	err := d.SetScalars([]float64{1})
	assert.True(t, errors.Is(err, ErrScalarCount))
	require.NoError(t, d.SetScalars(nil))
	assert.Nil(t, d.PointScalars())

	_, _, ok := d.ScalarRange()
	assert.False(t, ok)

	lo, hi, ok := square(t).ScalarRange()
	require.True(t, ok)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestBoundsTracksChanges(t *testing.T) {
	d := New()
	assert.Equal(t, render.DefaultBounds(), d.Bounds())
	d.AddPoint(r3.Vector{X: 2, Y: 3, Z: 4})
	d.AddPoint(r3.Vector{X: -2, Y: 0, Z: 4})
	assert.Equal(t, [6]float64{-2, 2, 0, 3, 4, 4}, d.Bounds().Array())
	d.AddPoint(r3.Vector{X: 10})
	assert.Equal(t, 10.0, d.Bounds().XMax)
}

type countingSource struct {
	stamp mtime.Stamp
	runs  int
	err   error
}

func (s *countingSource) MTime() mtime.Time { return s.stamp.Time() }

func (s *countingSource) Execute(d *PolyData) error {
	s.runs++
	d.Reset()
	d.AddPoint(r3.Vector{X: float64(s.runs)})
	return s.err
}

func TestUpdateRunsSourceOnlyWhenNewer(t *testing.T) {
	src := &countingSource{}
	src.stamp.Modified()
	d := NewFromSource(src)

	d.Update()
	d.Update()
	assert.Equal(t, 1, src.runs, "second update is a no-op")
	assert.Equal(t, 1, d.NumberOfPoints())

	src.stamp.Modified()
	before := d.MTime()
	d.Update()
	assert.Equal(t, 2, src.runs)
	assert.Greater(t, d.MTime(), before)
	assert.Equal(t, 2.0, d.Point(0).X)
}

func TestUpdateKeepsSourceError(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	d := New()
	d.SetSource(src)
	d.Update()
	assert.EqualError(t, d.Err(), "boom")
	d.Update()
	assert.Equal(t, 1, src.runs, "failed execution is not retried until the source changes")
	assert.Same(t, src, d.Source())
}

func TestUpdateWithoutSource(t *testing.T) {
	d := square(t)
	before := d.MTime()
	d.Update()
	assert.Equal(t, before, d.MTime())
	assert.NoError(t, d.Err())
}

func TestCopyFrom(t *testing.T) {
	src := square(t)
	src.SetSource(&countingSource{})
	d := New()
	keep := &countingSource{}
	d.SetSource(keep)
	before := d.MTime()

	d.CopyFrom(src)
	assert.Greater(t, d.MTime(), before)
	assert.Equal(t, src.Points(), d.Points())
	assert.Equal(t, src.PointScalars(), d.PointScalars())
	assert.Equal(t, src.Cells(render.Polys), d.Cells(render.Polys))
	assert.Same(t, keep, d.Source())

	require.NoError(t, src.InsertCell(render.Verts, 0))
	src.Cells(render.Lines)[0][0] = 3
	assert.Equal(t, 0, d.NumberOfVerts())
	assert.Equal(t, []int{0, 1}, d.Cells(render.Lines)[0])
}
