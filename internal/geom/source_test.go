package geom

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/polydata"
)

func writeFile(t *testing.T, path, content string, mod time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mod, mod))
}

func TestFileSourceReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.wkt")
	base := time.Now().Add(-time.Hour)
	writeFile(t, path, "POINT(1 2)", base)

	src := NewFileSource(path, Options{})
	assert.Equal(t, path, src.Path())
	d := polydata.NewFromSource(src)
	d.Update()
	require.NoError(t, d.Err())
	assert.Equal(t, 1, d.NumberOfVerts())

	before := d.MTime()
	d.Update()
	assert.Equal(t, before, d.MTime(), "unchanged file is not reloaded")

	writeFile(t, path, "LINESTRING(0 0, 1 1)", base.Add(time.Minute))
	d.Update()
	require.NoError(t, d.Err())
	assert.Equal(t, 0, d.NumberOfVerts())
	assert.Equal(t, 1, d.NumberOfLines())

	require.NoError(t, os.Remove(path))
	d.Update()
	assert.Error(t, d.Err())
	assert.Equal(t, 1, d.NumberOfLines(), "failed reload keeps the old data")

	writeFile(t, path, "POINT(5 5)", base.Add(2*time.Minute))
	d.Update()
	require.NoError(t, d.Err())
	assert.Equal(t, 1, d.NumberOfVerts())
	assert.Equal(t, 5.0, d.Point(0).X)
}

func TestFileSourceTouch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shape.wkt")
	writeFile(t, path, "POINT(1 2)", time.Now())
	src := NewFileSource(path, Options{})
	d := polydata.NewFromSource(src)
	d.Update()
	before := d.MTime()

	src.Touch()
	d.Update()
	assert.Greater(t, d.MTime(), before)
}

func TestLoadDispatch(t *testing.T) {
	dir := t.TempDir()
	wkt := filepath.Join(dir, "a.WKT")
	writeFile(t, wkt, "POINT(1 2)", time.Now())
	d, err := Load(wkt, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, d.NumberOfPoints())

	csv := filepath.Join(dir, "b.csv")
	writeFile(t, csv, "lat,lon\n1,2\n", time.Now())
	_, err = Load(csv, Options{})
	require.NoError(t, err)

	_, err = Load(filepath.Join(dir, "c.gpx"), Options{})
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Load(filepath.Join(dir, "missing.geojson"), Options{})
	assert.ErrorContains(t, err, "missing.geojson")

	assert.True(t, Supported("x.GeoJSON"))
	assert.True(t, Supported("x.shp"))
	assert.False(t, Supported("x.txt"))
}
