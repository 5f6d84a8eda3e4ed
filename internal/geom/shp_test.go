package geom

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/render"
)

func writePolygonShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parcels.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{shp.FloatField("height", 10, 2)}))

	outer := []shp.Point{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	hole := []shp.Point{{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 2}}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{outer, hole}))
	row := w.Write(&poly)
	require.NoError(t, w.WriteAttribute(int(row), 0, 3.5))

	far := []shp.Point{{X: 20, Y: 20}, {X: 20, Y: 30}, {X: 30, Y: 20}, {X: 20, Y: 20}}
	poly2 := shp.Polygon(*shp.NewPolyLine([][]shp.Point{far}))
	row = w.Write(&poly2)
	require.NoError(t, w.WriteAttribute(int(row), 0, 1.25))
	w.Close()

	// go-shp v0.1.1 names the attribute table "<base>dbf".
	base := strings.TrimSuffix(path, ".shp")
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	require.FileExists(t, base+".dbf")
	return path
}

func TestLoadShapefile(t *testing.T) {
	path := writePolygonShapefile(t)

	d, err := LoadShapefile(path, Options{ScalarField: "HEIGHT"})
	require.NoError(t, err)
	assert.Equal(t, counts{points: 4 + 3 + 3, polys: 2, lines: 1}, countsOf(d))
	assert.Equal(t, [][]int{{4, 5, 6, 4}}, d.Cells(render.Lines))

	s := d.PointScalars()
	require.Len(t, s, 10)
	assert.Equal(t, 3.5, s[0])
	assert.Equal(t, 1.25, s[9])

	d, err = Load(path, Options{})
	require.NoError(t, err)
	assert.Nil(t, d.PointScalars())
}

func TestLoadShapefileErrors(t *testing.T) {
	path := writePolygonShapefile(t)
	_, err := LoadShapefile(path, Options{ScalarField: "missing"})
	assert.ErrorContains(t, err, `"missing"`)

	_, err = LoadShapefile(filepath.Join(t.TempDir(), "none.shp"), Options{})
	assert.Error(t, err)
}

func TestShpPolygonsGroupsHoles(t *testing.T) {
	rings := shpParts([]int32{0, 5, 9}, shpPoints([]shp.Point{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0},
		{X: 2, Y: 2}, {X: 4, Y: 2}, {X: 4, Y: 4}, {X: 2, Y: 2},
		{X: 20, Y: 20}, {X: 20, Y: 30}, {X: 30, Y: 20}, {X: 20, Y: 20},
	}, nil))
	require.Len(t, rings, 3)
	polys := shpPolygons(rings)
	require.Len(t, polys, 2)
	assert.Len(t, polys[0], 2)
	assert.Len(t, polys[1], 1)
}
