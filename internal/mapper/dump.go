package mapper

import (
	"fmt"
	"io"
	"strings"

	"polymap/internal/render"
)

var visibilityLabels = [...]string{
	render.Verts:  "Vertex Visibility",
	render.Lines:  "Line Visibility",
	render.Polys:  "Polygon Visibility",
	render.Strips: "Triangle Strip Visibility",
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// Dump writes a human readable description of the mapper, one field per
// line, each prefixed with indent.
func (m *PolyMapper) Dump(w io.Writer, indent string) error {
	var b strings.Builder
	if m.table != nil {
		fmt.Fprintf(&b, "%sLookup Table: (%p)\n", indent, m.table)
	} else {
		fmt.Fprintf(&b, "%sLookup Table: (none)\n", indent)
	}
	fmt.Fprintf(&b, "%sScalars Visible: %s\n", indent, onOff(m.scalarsVisible))
	fmt.Fprintf(&b, "%sScalar Range: (%g, %g)\n", indent, m.scalarRange[0], m.scalarRange[1])
	fmt.Fprintf(&b, "%sBuild Time: %d\n", indent, m.buildTime.Time())

	if m.input != nil {
		fmt.Fprintf(&b, "%sInput: (%p)\n", indent, m.input)
	} else {
		fmt.Fprintf(&b, "%sInput: (none)\n", indent)
	}
	for _, k := range render.Kinds {
		fmt.Fprintf(&b, "%s%s: %s\n", indent, visibilityLabels[k], onOff(m.visible[k]))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the Dump output without indentation.
func (m *PolyMapper) String() string {
	var b strings.Builder
	_ = m.Dump(&b, "")
	return b.String()
}
