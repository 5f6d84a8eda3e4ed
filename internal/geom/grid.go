package geom

import (
	"math"

	"github.com/golang/geo/r3"

	"polymap/internal/polydata"
	"polymap/internal/render"
)

// Grid returns an nx x ny height field over [-1,1]^2 meshed as one triangle
// strip per row, with the height as point scalar. Sizes below 2 are raised
// to 2.
func Grid(nx, ny int) *polydata.PolyData {
	nx, ny = max(nx, 2), max(ny, 2)
	d := polydata.New()
	for j := range ny {
		for i := range nx {
			x := -1 + 2*float64(i)/float64(nx-1)
			y := -1 + 2*float64(j)/float64(ny-1)
			z := math.Sin(math.Pi*x) * math.Cos(math.Pi*y/2)
			d.AddPointScalar(r3.Vector{X: x, Y: y, Z: z}, z)
		}
	}
	ids := make([]int, 0, 2*nx)
	for j := range ny - 1 {
		ids = ids[:0]
		for i := range nx {
			ids = append(ids, j*nx+i, (j+1)*nx+i)
		}
		if err := d.InsertCell(render.Strips, ids...); err != nil {
			panic(err)
		}
	}
	return d
}
