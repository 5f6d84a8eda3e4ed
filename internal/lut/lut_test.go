package lut

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrayscaleMapping(t *testing.T) {
	tbl := Grayscale()
	tbl.Build()

	tests := []struct {
		v    float64
		want color.NRGBA
	}{
		{0, color.NRGBA{0, 0, 0, 255}},
		{0.5, color.NRGBA{128, 128, 128, 255}},
		{1, color.NRGBA{255, 255, 255, 255}},
		{0.25, color.NRGBA{64, 64, 64, 255}},
		{-3, color.NRGBA{0, 0, 0, 255}},
		{7, color.NRGBA{255, 255, 255, 255}},
		{math.NaN(), color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tbl.MapValue(tt.v), "value %v", tt.v)
	}
}

func TestDefaultRunsRedToBlue(t *testing.T) {
	tbl := New()
	assert.Equal(t, DefaultNumberOfColors, tbl.NumberOfColors())
	first := tbl.MapValue(0)
	last := tbl.MapValue(1)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, first)
	assert.Equal(t, uint8(0), last.R)
	assert.Equal(t, uint8(255), last.B)
}

func TestIndex(t *testing.T) {
	tbl := New()
	tbl.SetNumberOfColors(4)
	tbl.SetTableRange(10, 20)
	assert.Equal(t, 0, tbl.Index(10))
	assert.Equal(t, 0, tbl.Index(12.4))
	assert.Equal(t, 1, tbl.Index(12.5))
	assert.Equal(t, 3, tbl.Index(19.99))
	assert.Equal(t, 3, tbl.Index(20))

	tbl.SetTableRange(5, 5)
	assert.Equal(t, 0, tbl.Index(5))
	assert.Equal(t, 3, tbl.Index(6))
}

func TestSettersOnlyBumpOnChange(t *testing.T) {
	tbl := New()
	before := tbl.MTime()
	tbl.SetTableRange(0, 1)
	tbl.SetHueRange(0, 0.6667)
	tbl.SetNumberOfColors(DefaultNumberOfColors)
	assert.Equal(t, before, tbl.MTime(), "same values")

	tbl.SetTableRange(0, 2)
	assert.Greater(t, tbl.MTime(), before)
	lo, hi := tbl.TableRange()
	assert.Equal(t, [2]float64{0, 2}, [2]float64{lo, hi})
}

func TestBuildDoesNotBumpMTime(t *testing.T) {
	tbl := New()
	before := tbl.MTime()
	tbl.Build()
	tbl.Build()
	assert.Equal(t, before, tbl.MTime())
}

func TestBuildFollowsConfiguration(t *testing.T) {
	tbl := Grayscale()
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, tbl.TableValue(255))

	tbl.SetValueRange(1, 0)
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, tbl.TableValue(255), "rebuilt after change")

	tbl.SetAlphaRange(0, 0)
	assert.Equal(t, uint8(0), tbl.TableValue(0).A)

	tbl.SetNumberOfColors(0)
	assert.Equal(t, 1, tbl.NumberOfColors())
	assert.Equal(t, tbl.TableValue(0), tbl.MapValue(0.9))
}
