package geom

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"polymap/internal/polydata"
)

type kmlCoords struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPolygon struct {
	Outer kmlCoords   `xml:"outerBoundaryIs>LinearRing"`
	Inner []kmlCoords `xml:"innerBoundaryIs>LinearRing"`
}

type kmlMulti struct {
	Points   []kmlCoords  `xml:"Point"`
	Lines    []kmlCoords  `xml:"LineString"`
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlSimpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type kmlPlacemark struct {
	Point         *kmlCoords      `xml:"Point"`
	LineString    *kmlCoords      `xml:"LineString"`
	Polygon       *kmlPolygon     `xml:"Polygon"`
	MultiGeometry *kmlMulti       `xml:"MultiGeometry"`
	Data          []kmlData       `xml:"ExtendedData>Data"`
	SimpleData    []kmlSimpleData `xml:"ExtendedData>SchemaData>SimpleData"`
}

// LoadKML reads a KML file into a dataset.
func LoadKML(path string, opts Options) (*polydata.PolyData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadKML(f, opts)
}

// ReadKML converts every Placemark, at any depth of Documents and Folders,
// with a Point, LineString, Polygon or MultiGeometry. KML coordinates are
// "lon,lat[,alt]" tuples separated by whitespace. With opts.ScalarField set
// the matching ExtendedData value becomes the placemark's scalar.
func ReadKML(r io.Reader, opts Options) (*polydata.PolyData, error) {
	dec := xml.NewDecoder(r)
	b := newBuilder(opts.ScalarField != "")
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "Placemark" {
			continue
		}
		var pm kmlPlacemark
		if err := dec.DecodeElement(&pm, &se); err != nil {
			return nil, fmt.Errorf("kml: %w", err)
		}
		addPlacemark(b, &pm, pm.scalar(opts.ScalarField))
	}
	d, err := b.result()
	if err != nil {
		return nil, fmt.Errorf("kml: %w", err)
	}
	return d, nil
}

func (pm *kmlPlacemark) scalar(field string) float64 {
	if field == "" {
		return nan
	}
	parse := func(s string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nan
		}
		return v
	}
	for _, d := range pm.Data {
		if d.Name == field {
			return parse(d.Value)
		}
	}
	for _, d := range pm.SimpleData {
		if d.Name == field {
			return parse(d.Value)
		}
	}
	return nan
}

func addPlacemark(b *builder, pm *kmlPlacemark, s float64) {
	if pm.Point != nil {
		b.verts(parseKMLCoords(pm.Point.Coordinates), s)
	}
	if pm.LineString != nil {
		b.line(parseKMLCoords(pm.LineString.Coordinates), s)
	}
	if pm.Polygon != nil {
		b.polygon(pm.Polygon.rings(), s)
	}
	if m := pm.MultiGeometry; m != nil {
		for _, p := range m.Points {
			b.verts(parseKMLCoords(p.Coordinates), s)
		}
		for _, l := range m.Lines {
			b.line(parseKMLCoords(l.Coordinates), s)
		}
		for _, p := range m.Polygons {
			b.polygon(p.rings(), s)
		}
	}
}

func (p *kmlPolygon) rings() [][]r3.Vector {
	out := [][]r3.Vector{parseKMLCoords(p.Outer.Coordinates)}
	for _, in := range p.Inner {
		out = append(out, parseKMLCoords(in.Coordinates))
	}
	return out
}

func parseKMLCoords(s string) []r3.Vector {
	var pts []r3.Vector
	for _, tuple := range strings.Fields(s) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 {
			continue
		}
		c := make([]float64, 0, 3)
		for _, v := range vals[:min(len(vals), 3)] {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				break
			}
			c = append(c, f)
		}
		if v, ok := vec(c); ok {
			pts = append(pts, v)
		}
	}
	return pts
}
