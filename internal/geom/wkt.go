package geom

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/geo/r3"

	"polymap/internal/polydata"
)

// ParseWKT parses one or more whitespace separated WKT geometries into a
// dataset. Supported: POINT, MULTIPOINT, LINESTRING, MULTILINESTRING,
// POLYGON, MULTIPOLYGON, TRIANGLE, TIN and GEOMETRYCOLLECTION, in 2D or
// with Z/M/ZM ordinates. Triangles become triangle strip cells.
func ParseWKT(text string) (*polydata.PolyData, error) {
	p := &wktParser{src: text}
	b := newBuilder(false)
	p.next()
	if p.tok == "" {
		return nil, fmt.Errorf("wkt: %w", ErrEmpty)
	}
	for p.tok != "" {
		if err := p.geometry(b); err != nil {
			return nil, fmt.Errorf("wkt: %w", err)
		}
		if p.tok == ";" {
			p.next()
		}
	}
	d, err := b.result()
	if err != nil {
		return nil, fmt.Errorf("wkt: %w", err)
	}
	return d, nil
}

type wktParser struct {
	src string
	pos int
	tok string // current token; "" at end of input
	at  int    // offset of tok
	dim string // ordinate tag of the geometry being parsed: "", "Z", "M" or "ZM"
}

func (p *wktParser) next() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
	p.at = p.pos
	if p.pos >= len(p.src) {
		p.tok = ""
		return
	}
	switch c := p.src[p.pos]; c {
	case '(', ')', ',', ';':
		p.pos++
	default:
		for p.pos < len(p.src) && !strings.ContainsRune("(),; \t\r\n", rune(p.src[p.pos])) {
			p.pos++
		}
	}
	p.tok = p.src[p.at:p.pos]
}

func (p *wktParser) errorf(format string, args ...any) error {
	return fmt.Errorf("offset %d: %s", p.at, fmt.Sprintf(format, args...))
}

func (p *wktParser) expect(tok string) error {
	if p.tok != tok {
		if p.tok == "" {
			return p.errorf("expected %q, got end of input", tok)
		}
		return p.errorf("expected %q, got %q", tok, p.tok)
	}
	p.next()
	return nil
}

// list parses "( item {, item} )".
func (p *wktParser) list(item func() error) error {
	if err := p.expect("("); err != nil {
		return err
	}
	for {
		if err := item(); err != nil {
			return err
		}
		if p.tok != "," {
			break
		}
		p.next()
	}
	return p.expect(")")
}

func (p *wktParser) geometry(b *builder) error {
	kind := strings.ToUpper(p.tok)
	if kind == "" || kind == "(" || kind == ")" || kind == "," {
		return p.errorf("expected geometry type, got %q", p.tok)
	}
	p.next()
	p.dim = ""
	switch d := strings.ToUpper(p.tok); d {
	case "Z", "M", "ZM":
		p.dim = d
		p.next()
	}
	// "POINTZ" style tags
	for _, suffix := range []string{"ZM", "Z", "M"} {
		if base, ok := strings.CutSuffix(kind, suffix); ok && wktTypes[base] && !wktTypes[kind] {
			kind, p.dim = base, suffix
			break
		}
	}
	if !wktTypes[kind] {
		return fmt.Errorf("offset %d: %w geometry type %q", p.at, ErrUnsupported, kind)
	}
	if strings.EqualFold(p.tok, "EMPTY") {
		p.next()
		return nil
	}

	switch kind {
	case "POINT":
		var pts []r3.Vector
		if err := p.list(func() error { return p.coord(&pts) }); err != nil {
			return err
		}
		b.verts(pts, 0)
	case "MULTIPOINT":
		var pts []r3.Vector
		err := p.list(func() error {
			if p.tok == "(" {
				return p.list(func() error { return p.coord(&pts) })
			}
			return p.coord(&pts)
		})
		if err != nil {
			return err
		}
		b.verts(pts, 0)
	case "LINESTRING":
		pts, err := p.coords()
		if err != nil {
			return err
		}
		b.line(pts, 0)
	case "MULTILINESTRING":
		return p.list(func() error {
			pts, err := p.coords()
			b.line(pts, 0)
			return err
		})
	case "POLYGON":
		rings, err := p.rings()
		if err != nil {
			return err
		}
		b.polygon(rings, 0)
	case "MULTIPOLYGON":
		return p.list(func() error {
			rings, err := p.rings()
			b.polygon(rings, 0)
			return err
		})
	case "TRIANGLE":
		rings, err := p.rings()
		if err != nil {
			return err
		}
		return p.triangle(b, rings)
	case "TIN":
		return p.list(func() error {
			rings, err := p.rings()
			if err != nil {
				return err
			}
			return p.triangle(b, rings)
		})
	case "GEOMETRYCOLLECTION":
		return p.list(func() error { return p.geometry(b) })
	}
	return nil
}

var wktTypes = map[string]bool{
	"POINT": true, "MULTIPOINT": true,
	"LINESTRING": true, "MULTILINESTRING": true,
	"POLYGON": true, "MULTIPOLYGON": true,
	"TRIANGLE": true, "TIN": true,
	"GEOMETRYCOLLECTION": true,
}

func (p *wktParser) triangle(b *builder, rings [][]r3.Vector) error {
	if len(rings) == 0 {
		return nil
	}
	tri := openRing(rings[0])
	if len(tri) != 3 {
		return p.errorf("triangle with %d distinct vertices", len(tri))
	}
	b.strip(tri, 0)
	return nil
}

func (p *wktParser) rings() ([][]r3.Vector, error) {
	var rings [][]r3.Vector
	err := p.list(func() error {
		pts, err := p.coords()
		rings = append(rings, pts)
		return err
	})
	return rings, err
}

func (p *wktParser) coords() ([]r3.Vector, error) {
	var pts []r3.Vector
	err := p.list(func() error { return p.coord(&pts) })
	return pts, err
}

// coord parses the ordinates of one position and appends it to pts.
func (p *wktParser) coord(pts *[]r3.Vector) error {
	var vals []float64
	for p.tok != "" && p.tok != "," && p.tok != ")" {
		f, err := strconv.ParseFloat(p.tok, 64)
		if err != nil {
			return p.errorf("bad ordinate %q", p.tok)
		}
		vals = append(vals, f)
		p.next()
	}
	if len(vals) < 2 || len(vals) > 4 {
		return p.errorf("position with %d ordinates", len(vals))
	}
	v := r3.Vector{X: vals[0], Y: vals[1]}
	if len(vals) >= 3 && p.dim != "M" {
		v.Z = vals[2]
	}
	*pts = append(*pts, v)
	return nil
}
