package render

import "fmt"

// Kind identifies one of the four primitive kinds a dataset can hold.
type Kind int

const (
	Verts Kind = iota
	Lines
	Polys
	Strips
)

// Kinds lists every kind in draw order.
var Kinds = [...]Kind{Verts, Lines, Polys, Strips}

var kindNames = [...]string{
	Verts:  "points",
	Lines:  "lines",
	Polys:  "polygons",
	Strips: "triangle_strips",
}

// String returns the name backends know the kind by.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the four known kinds.
func (k Kind) Valid() bool {
	return k >= Verts && k <= Strips
}

// ParseKind returns the kind with the given backend name.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("render: unknown primitive kind %q", name)
}
