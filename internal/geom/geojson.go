package geom

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	geojson "github.com/paulmach/go.geojson"

	"polymap/internal/polydata"
)

// LoadGeoJSON reads a GeoJSON file into a dataset.
func LoadGeoJSON(path string, opts Options) (*polydata.PolyData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGeoJSON(data, opts)
}

// ParseGeoJSON converts a FeatureCollection, a Feature or a bare geometry.
// With opts.ScalarField set, the named numeric property of each feature
// becomes the scalar of all of its points.
func ParseGeoJSON(data []byte, opts Options) (*polydata.PolyData, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}

	b := newBuilder(opts.ScalarField != "")
	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		for _, f := range fc.Features {
			addFeature(b, f, opts)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		addFeature(b, f, opts)
	case "":
		return nil, fmt.Errorf("geojson: missing type")
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		addGeometry(b, g, nan)
	}
	d, err := b.result()
	if err != nil {
		return nil, fmt.Errorf("geojson: %w", err)
	}
	return d, nil
}

func addFeature(b *builder, f *geojson.Feature, opts Options) {
	if f == nil || f.Geometry == nil {
		return
	}
	s := nan
	if opts.ScalarField != "" {
		if v, err := f.PropertyFloat64(opts.ScalarField); err == nil {
			s = v
		}
	}
	addGeometry(b, f.Geometry, s)
}

func addGeometry(b *builder, g *geojson.Geometry, s float64) {
	switch g.Type {
	case geojson.GeometryPoint:
		if v, ok := vec(g.Point); ok {
			b.verts([]r3.Vector{v}, s)
		}
	case geojson.GeometryMultiPoint:
		b.verts(vecs(g.MultiPoint), s)
	case geojson.GeometryLineString:
		b.line(vecs(g.LineString), s)
	case geojson.GeometryMultiLineString:
		for _, ls := range g.MultiLineString {
			b.line(vecs(ls), s)
		}
	case geojson.GeometryPolygon:
		b.polygon(rings(g.Polygon), s)
	case geojson.GeometryMultiPolygon:
		for _, poly := range g.MultiPolygon {
			b.polygon(rings(poly), s)
		}
	case geojson.GeometryCollection:
		for _, sub := range g.Geometries {
			addGeometry(b, sub, s)
		}
	}
}

func rings(poly [][][]float64) [][]r3.Vector {
	out := make([][]r3.Vector, len(poly))
	for i, ring := range poly {
		out[i] = vecs(ring)
	}
	return out
}
