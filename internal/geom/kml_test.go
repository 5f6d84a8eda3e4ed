package geom

import (
	"math"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kmlDoc = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
<Document>
  <Folder>
    <Placemark>
      <name>peak</name>
      <ExtendedData><Data name="height"><value>812</value></Data></ExtendedData>
      <Point><coordinates>7.5,46.1,812</coordinates></Point>
    </Placemark>
  </Folder>
  <Placemark>
    <ExtendedData><SchemaData><SimpleData name="height">3</SimpleData></SchemaData></ExtendedData>
    <LineString><coordinates>
      0,0 1,1
      2,0
    </coordinates></LineString>
  </Placemark>
  <Placemark>
    <Polygon>
      <outerBoundaryIs><LinearRing><coordinates>0,0 4,0 4,4 0,4 0,0</coordinates></LinearRing></outerBoundaryIs>
      <innerBoundaryIs><LinearRing><coordinates>1,1 2,1 2,2 1,1</coordinates></LinearRing></innerBoundaryIs>
    </Polygon>
  </Placemark>
  <Placemark>
    <MultiGeometry>
      <Point><coordinates>9,9</coordinates></Point>
      <LineString><coordinates>5,5 6,6</coordinates></LineString>
    </MultiGeometry>
  </Placemark>
</Document>
</kml>`

func TestReadKML(t *testing.T) {
	d, err := ReadKML(strings.NewReader(kmlDoc), Options{})
	require.NoError(t, err)
	assert.Equal(t, counts{points: 1 + 3 + 7 + 3, verts: 2, lines: 3, polys: 1}, countsOf(d))
	assert.Equal(t, r3.Vector{X: 7.5, Y: 46.1, Z: 812}, d.Point(0))
	assert.Nil(t, d.PointScalars())
}

func TestReadKMLScalars(t *testing.T) {
	d, err := ReadKML(strings.NewReader(kmlDoc), Options{ScalarField: "height"})
	require.NoError(t, err)
	s := d.PointScalars()
	require.Len(t, s, 14)
	assert.Equal(t, 812.0, s[0])
	assert.Equal(t, []float64{3, 3, 3}, s[1:4])
	assert.True(t, math.IsNaN(s[4]))
}

func TestReadKMLErrors(t *testing.T) {
	_, err := ReadKML(strings.NewReader(`<kml><Document></Document></kml>`), Options{})
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = ReadKML(strings.NewReader(`<kml><Placemark><Point>`), Options{})
	assert.Error(t, err)
}
