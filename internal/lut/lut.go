// Package lut maps scalar values to colors through a table of linearly
// interpolated HSV ramps.
package lut

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"polymap/internal/mtime"
)

// DefaultNumberOfColors is the table size of New.
const DefaultNumberOfColors = 256

// LookupTable maps a scalar in TableRange to one of NumberOfColors colors.
// Hue, saturation, value and alpha are ramped linearly across the table;
// all ranges are fractions in [0, 1].
type LookupTable struct {
	numColors  int
	hueRange   [2]float64
	satRange   [2]float64
	valRange   [2]float64
	alphaRange [2]float64
	tableRange [2]float64

	table     []color.NRGBA
	stamp     mtime.Stamp
	buildTime mtime.Time
}

// New returns a 256 color table running from red to blue over [0, 1].
func New() *LookupTable {
	t := &LookupTable{
		numColors:  DefaultNumberOfColors,
		hueRange:   [2]float64{0, 0.6667},
		satRange:   [2]float64{1, 1},
		valRange:   [2]float64{1, 1},
		alphaRange: [2]float64{1, 1},
		tableRange: [2]float64{0, 1},
	}
	t.stamp.Modified()
	return t
}

// Grayscale returns a table running from black to white over [0, 1].
func Grayscale() *LookupTable {
	t := New()
	t.SetHueRange(0, 0)
	t.SetSaturationRange(0, 0)
	t.SetValueRange(0, 1)
	return t
}

// MTime returns when the table's configuration last changed.
func (t *LookupTable) MTime() mtime.Time { return t.stamp.Time() }

// Modified marks the table as changed.
func (t *LookupTable) Modified() { t.stamp.Modified() }

func (t *LookupTable) setPair(p *[2]float64, lo, hi float64) {
	if p[0] == lo && p[1] == hi {
		return
	}
	p[0], p[1] = lo, hi
	t.stamp.Modified()
}

// SetNumberOfColors sets the table size; values below 1 are raised to 1.
func (t *LookupTable) SetNumberOfColors(n int) {
	n = max(n, 1)
	if t.numColors == n {
		return
	}
	t.numColors = n
	t.stamp.Modified()
}

func (t *LookupTable) NumberOfColors() int { return t.numColors }

func (t *LookupTable) SetHueRange(lo, hi float64)        { t.setPair(&t.hueRange, lo, hi) }
func (t *LookupTable) SetSaturationRange(lo, hi float64) { t.setPair(&t.satRange, lo, hi) }
func (t *LookupTable) SetValueRange(lo, hi float64)      { t.setPair(&t.valRange, lo, hi) }
func (t *LookupTable) SetAlphaRange(lo, hi float64)      { t.setPair(&t.alphaRange, lo, hi) }

// SetTableRange sets the scalar range spread across the table.
func (t *LookupTable) SetTableRange(lo, hi float64) { t.setPair(&t.tableRange, lo, hi) }

func (t *LookupTable) HueRange() (lo, hi float64)        { return t.hueRange[0], t.hueRange[1] }
func (t *LookupTable) SaturationRange() (lo, hi float64) { return t.satRange[0], t.satRange[1] }
func (t *LookupTable) ValueRange() (lo, hi float64)      { return t.valRange[0], t.valRange[1] }
func (t *LookupTable) AlphaRange() (lo, hi float64)      { return t.alphaRange[0], t.alphaRange[1] }
func (t *LookupTable) TableRange() (lo, hi float64)      { return t.tableRange[0], t.tableRange[1] }

// Build regenerates the colors if the configuration changed since the last
// build. Building does not modify the table's MTime.
func (t *LookupTable) Build() {
	if t.table != nil && t.buildTime >= t.stamp.Time() {
		return
	}
	n := t.numColors
	if cap(t.table) >= n {
		t.table = t.table[:n]
	} else {
		t.table = make([]color.NRGBA, n)
	}
	for i := range t.table {
		f := 0.0
		if n > 1 {
			f = float64(i) / float64(n-1)
		}
		h := lerp(t.hueRange, f)
		s := lerp(t.satRange, f)
		v := lerp(t.valRange, f)
		a := lerp(t.alphaRange, f)
		r, g, b := colorful.Hsv(math.Mod(h, 1)*360, s, v).Clamped().RGB255()
		t.table[i] = color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(a)*255 + 0.5)}
	}
	t.buildTime = t.stamp.Time()
}

// Index returns the table entry v maps to. Values at or below the low end of
// the table range take the first entry, values at or above the high end the
// last one; NaN takes the first.
func (t *LookupTable) Index(v float64) int {
	lo, hi := t.tableRange[0], t.tableRange[1]
	n := t.numColors
	switch {
	case math.IsNaN(v) || v <= lo:
		return 0
	case v >= hi:
		return n - 1
	}
	i := int(math.Floor((v - lo) / (hi - lo) * float64(n)))
	return min(max(i, 0), n-1)
}

// MapValue returns the color of v, building the table first if needed.
func (t *LookupTable) MapValue(v float64) color.NRGBA {
	t.Build()
	return t.table[t.Index(v)]
}

// TableValue returns entry i of the built table.
func (t *LookupTable) TableValue(i int) color.NRGBA {
	t.Build()
	return t.table[min(max(i, 0), len(t.table)-1)]
}

func lerp(r [2]float64, f float64) float64 {
	return r[0] + f*(r[1]-r[0])
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
