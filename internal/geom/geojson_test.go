package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const featureCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"h": 1}, "geometry": {"type": "Point", "coordinates": [1, 2]}},
    {"type": "Feature", "properties": {"h": 2}, "geometry": {"type": "LineString", "coordinates": [[0, 0], [1, 1], [2, 0]]}},
    {"type": "Feature", "properties": {"h": "x"}, "geometry": {"type": "Polygon", "coordinates": [
      [[0, 0], [4, 0], [4, 4], [0, 4], [0, 0]],
      [[1, 1], [2, 1], [2, 2], [1, 1]]
    ]}},
    {"type": "Feature", "properties": {"h": 5}, "geometry": null}
  ]
}`

func TestParseGeoJSONFeatureCollection(t *testing.T) {
	d, err := ParseGeoJSON([]byte(featureCollection), Options{})
	require.NoError(t, err)
	assert.Equal(t, counts{points: 11, verts: 1, lines: 2, polys: 1}, countsOf(d))
	assert.Nil(t, d.PointScalars())
}

func TestParseGeoJSONScalarField(t *testing.T) {
	d, err := ParseGeoJSON([]byte(featureCollection), Options{ScalarField: "h"})
	require.NoError(t, err)
	s := d.PointScalars()
	require.Len(t, s, 11)
	assert.Equal(t, 1.0, s[0])
	assert.Equal(t, []float64{2, 2, 2}, s[1:4])
	assert.True(t, math.IsNaN(s[4]), "non-numeric property")

	lo, hi, ok := d.ScalarRange()
	require.True(t, ok)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 2.0, hi)
}

func TestParseGeoJSONFeatureAndGeometry(t *testing.T) {
	d, err := ParseGeoJSON([]byte(`{"type": "Feature", "properties": {}, "geometry":
		{"type": "MultiPolygon", "coordinates": [[[[0, 0], [1, 0], [1, 1], [0, 0]]], [[[2, 2], [3, 2], [3, 3], [2, 2]]]]}}`), Options{})
	require.NoError(t, err)
	assert.Equal(t, counts{points: 6, polys: 2}, countsOf(d))

	d, err = ParseGeoJSON([]byte(`{"type": "GeometryCollection", "geometries": [
		{"type": "MultiPoint", "coordinates": [[0, 0, 5], [1, 1]]},
		{"type": "MultiLineString", "coordinates": [[[0, 0], [1, 1]], [[2, 2], [3, 3]]]}
	]}`), Options{})
	require.NoError(t, err)
	assert.Equal(t, counts{points: 6, verts: 2, lines: 2}, countsOf(d))
	assert.Equal(t, 5.0, d.Point(0).Z)
}

func TestParseGeoJSONErrors(t *testing.T) {
	for name, in := range map[string]string{
		"not json":     `{`,
		"missing type": `{"coordinates": [1, 2]}`,
		"no features":  `{"type": "FeatureCollection", "features": []}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseGeoJSON([]byte(in), Options{})
			assert.Error(t, err)
		})
	}
}
