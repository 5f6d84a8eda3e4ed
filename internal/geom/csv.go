package geom

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"

	"polymap/internal/polydata"
)

// LoadCSV reads a CSV file of points into a dataset, one vertex cell per
// row.
func LoadCSV(path string, opts Options) (*polydata.PolyData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

// ReadCSV reads points from r. Columns are found by header name, case
// insensitive: lat|latitude|y and lon|lng|long|longitude|x, plus an optional
// alt|altitude|z|elevation column and the opts.ScalarField column. Rows
// with unparsable coordinates are skipped; an unparsable scalar is NaN.
func ReadCSV(r io.Reader, opts Options) (*polydata.PolyData, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv: %w", ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	idxLat, idxLon, idxAlt, idxScalar := -1, -1, -1, -1
	for i, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		switch lh {
		case "lat", "latitude", "y":
			if idxLat == -1 {
				idxLat = i
			}
		case "lon", "lng", "long", "longitude", "x":
			if idxLon == -1 {
				idxLon = i
			}
		case "alt", "altitude", "z", "elevation":
			if idxAlt == -1 {
				idxAlt = i
			}
		}
		if opts.ScalarField != "" && idxScalar == -1 && strings.EqualFold(lh, opts.ScalarField) {
			idxScalar = i
		}
	}
	if idxLat == -1 || idxLon == -1 {
		return nil, errors.New("csv: latitude/longitude columns not found")
	}
	if opts.ScalarField != "" && idxScalar == -1 {
		return nil, fmt.Errorf("csv: scalar column %q not found", opts.ScalarField)
	}

	b := newBuilder(idxScalar >= 0)
	field := func(row []string, i int) (float64, bool) {
		if i < 0 || i >= len(row) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		return v, err == nil
	}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		lon, ok1 := field(row, idxLon)
		lat, ok2 := field(row, idxLat)
		if !ok1 || !ok2 {
			continue
		}
		alt, _ := field(row, idxAlt)
		s, ok := field(row, idxScalar)
		if !ok {
			s = nan
		}
		b.verts([]r3.Vector{{X: lon, Y: lat, Z: alt}}, s)
	}
	d, err := b.result()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return d, nil
}
