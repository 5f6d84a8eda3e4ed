package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"
)

// maxAttrRows caps the point table; larger datasets are truncated.
const maxAttrRows = 2000

// refreshAttrsFromCurrent rebuilds the point table from the current data
// and the mapper's color cache.
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows, err := m.buildAttributes()
	if err != nil {
		m.status = "render error: " + err.Error()
	}
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no points in current dataset"
		return
	}
	tcols := make([]table.Column, len(cols))
	for i, c := range cols {
		tcols[i] = table.Column{Title: c, Width: max(len(c)+2, 10)}
	}
	tcols[0].Width = 6
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists every point with its coordinates, scalar and the
// color the mapper assigned to it.
// A failed render is returned with the rows; the color column then holds
// whatever the cache had.
func (m *Model) buildAttributes() ([]string, [][]string, error) {
	if m.data == nil {
		return nil, nil, nil
	}
	// the color cache is only current after a render
	err := m.mapper.Render(m.target)
	colors := m.mapper.Colors()
	scalars := m.data.PointScalars()
	cols := []string{"#", "x", "y", "z", "scalar", "color"}
	n := min(m.data.NumberOfPoints(), maxAttrRows)
	rows := make([][]string, 0, n)
	for i := range n {
		p := m.data.Point(i)
		scalar, col := "", ""
		if scalars != nil {
			scalar = strconv.FormatFloat(scalars[i], 'g', 6, 64)
		}
		if i < len(colors) {
			c := colors[i]
			col = fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			strconv.FormatFloat(p.X, 'g', 8, 64),
			strconv.FormatFloat(p.Y, 'g', 8, 64),
			strconv.FormatFloat(p.Z, 'g', 8, 64),
			scalar, col,
		})
	}
	return cols, rows, err
}
