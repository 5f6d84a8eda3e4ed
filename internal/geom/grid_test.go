package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"polymap/internal/render"
)

func TestGrid(t *testing.T) {
	d := Grid(3, 2)
	assert.Equal(t, counts{points: 6, strips: 1}, countsOf(d))
	assert.Equal(t, [][]int{{0, 3, 1, 4, 2, 5}}, d.Cells(render.Strips))
	require.Len(t, d.PointScalars(), 6)
	for i, s := range d.PointScalars() {
		assert.Equal(t, d.Point(i).Z, s)
	}

	b := d.Bounds()
	assert.Equal(t, -1.0, b.XMin)
	assert.Equal(t, 1.0, b.YMax)

	d = Grid(0, 1)
	assert.Equal(t, counts{points: 4, strips: 1}, countsOf(d))

	d = Grid(4, 5)
	assert.Equal(t, 4, d.NumberOfStrips())
}
