// Package geom loads polygonal datasets from geometry files (WKT, GeoJSON,
// CSV, KML and ESRI Shapefile) and generates synthetic ones.
package geom

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"polymap/internal/logging"
	"polymap/internal/polydata"
)

var (
	// ErrUnsupported is returned for file types or geometry types that
	// cannot be loaded.
	ErrUnsupported = errors.New("geom: unsupported")
	// ErrEmpty is returned when a file holds no usable coordinates.
	ErrEmpty = errors.New("geom: no geometries found")
)

// Options control how files are turned into datasets.
type Options struct {
	// ScalarField names the attribute copied onto every point of a feature
	// as its scalar: a GeoJSON property, a CSV column, a KML ExtendedData
	// entry or a DBF field. Empty loads no scalars.
	ScalarField string
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".wkt", ".geojson", ".json", ".csv", ".kml", ".shp"}

// Supported reports whether Load understands the extension of path.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Load reads the file at path into a new dataset, choosing the format by
// extension.
func Load(path string, opts Options) (*polydata.PolyData, error) {
	var (
		d   *polydata.PolyData
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wkt":
		var b []byte
		if b, err = os.ReadFile(path); err == nil {
			d, err = ParseWKT(string(b))
		}
	case ".geojson", ".json":
		d, err = LoadGeoJSON(path, opts)
	case ".csv":
		d, err = LoadCSV(path, opts)
	case ".kml":
		d, err = LoadKML(path, opts)
	case ".shp":
		d, err = LoadShapefile(path, opts)
	default:
		return nil, fmt.Errorf("%w: file type %q", ErrUnsupported, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	logging.Logger().Debug("geom: loaded", "path", path,
		"points", d.NumberOfPoints(), "verts", d.NumberOfVerts(), "lines", d.NumberOfLines(),
		"polys", d.NumberOfPolys(), "strips", d.NumberOfStrips())
	return d, nil
}
