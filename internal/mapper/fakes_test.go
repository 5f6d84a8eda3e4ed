package mapper

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/golang/geo/r3"

	"polymap/internal/mtime"
	"polymap/internal/render"
)

// fakeDataset reports whatever counts and scalars a test sets.
type fakeDataset struct {
	stamp   mtime.Stamp
	points  []r3.Vector
	counts  [4]int
	scalars []float64
	updates int
}

func newFakeDataset(points int, counts [4]int) *fakeDataset {
	d := &fakeDataset{counts: counts}
	for i := range points {
		d.points = append(d.points, r3.Vector{X: float64(i), Y: float64(i * i)})
	}
	d.stamp.Modified()
	return d
}

func (d *fakeDataset) Update()                   { d.updates++ }
func (d *fakeDataset) MTime() mtime.Time         { return d.stamp.Time() }
func (d *fakeDataset) NumberOfPoints() int       { return len(d.points) }
func (d *fakeDataset) Point(i int) r3.Vector     { return d.points[i] }
func (d *fakeDataset) Cells(render.Kind) [][]int { return nil }
func (d *fakeDataset) Bounds() render.Bounds     { return render.BoundsOf(d.points) }
func (d *fakeDataset) NumberOfVerts() int        { return d.counts[render.Verts] }
func (d *fakeDataset) NumberOfLines() int        { return d.counts[render.Lines] }
func (d *fakeDataset) NumberOfPolys() int        { return d.counts[render.Polys] }
func (d *fakeDataset) NumberOfStrips() int       { return d.counts[render.Strips] }
func (d *fakeDataset) PointScalars() []float64   { return d.scalars }

// fakeTable maps v to a red channel of v*100 and counts its calls.
type fakeTable struct {
	stamp    mtime.Stamp
	builds   int
	maps     int
	rangeSet [2]float64
}

func newFakeTable() *fakeTable {
	t := &fakeTable{}
	t.stamp.Modified()
	return t
}

func (t *fakeTable) Build()            { t.builds++ }
func (t *fakeTable) MTime() mtime.Time { return t.stamp.Time() }

func (t *fakeTable) SetTableRange(lo, hi float64) {
	if t.rangeSet != [2]float64{lo, hi} {
		t.rangeSet = [2]float64{lo, hi}
		t.stamp.Modified()
	}
}

func (t *fakeTable) MapValue(v float64) color.NRGBA {
	t.maps++
	return color.NRGBA{R: uint8(v * 100), A: 255}
}

// recorder is a backend logging every call made against it.
type recorder struct {
	calls    []string
	fail     map[render.Kind]bool
	failDraw map[render.Kind]bool
	built    map[render.Kind]render.Colors
}

func newRecorder() *recorder {
	return &recorder{
		fail:     map[render.Kind]bool{},
		failDraw: map[render.Kind]bool{},
		built:    map[render.Kind]render.Colors{},
	}
}

func (r *recorder) NewPrimitive(k render.Kind) (render.Primitive, error) {
	r.calls = append(r.calls, "new "+k.String())
	if r.fail[k] {
		return nil, errors.New("out of primitives")
	}
	return &recPrimitive{kind: k, rec: r}, nil
}

func (r *recorder) reset() { r.calls = nil }

func (r *recorder) count(prefix string) int {
	n := 0
	for _, c := range r.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

type recPrimitive struct {
	kind     render.Kind
	rec      *recorder
	released bool
}

func (p *recPrimitive) Build(g render.Geometry, colors render.Colors) {
	p.rec.calls = append(p.rec.calls, "build "+p.kind.String())
	p.rec.built[p.kind] = colors
}

func (p *recPrimitive) Draw(r render.Renderer) error {
	if r != render.Renderer(p.rec) {
		return fmt.Errorf("drawn on foreign renderer %T", r)
	}
	p.rec.calls = append(p.rec.calls, "draw "+p.kind.String())
	if p.rec.failDraw[p.kind] {
		return errors.New("lost context")
	}
	return nil
}

func (p *recPrimitive) Release() {
	p.released = true
	p.rec.calls = append(p.rec.calls, "release "+p.kind.String())
}
