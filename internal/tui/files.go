package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"polymap/internal/geom"
	"polymap/internal/polydata"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: strings.ToLower(filepath.Ext(name)), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads a file through a watching source. On failure the current
// data stays on screen.
func (m *Model) loadPath(p string) {
	src := geom.NewFileSource(p, geom.Options{ScalarField: m.cfg.Data.ScalarField})
	d := polydata.NewFromSource(src)
	d.Update()
	if err := d.Err(); err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setData(d, src)
	m.status = "loaded: " + filepath.Base(p) + "  " + countsLabel(d)
}

// reload forces the current file to be read again on the next frame.
func (m *Model) reload() {
	if m.source == nil {
		m.status = "nothing to reload"
		return
	}
	m.source.Touch()
	m.data.Update()
	if err := m.data.Err(); err != nil {
		m.status = "reload error: " + err.Error()
		return
	}
	m.cfg.Apply(m.mapper, m.table)
	m.status = "reloaded: " + filepath.Base(m.source.Path()) + "  " + countsLabel(m.data)
}

func countsLabel(d *polydata.PolyData) string {
	return fmt.Sprintf("counts: pts=%d verts=%d lines=%d polys=%d strips=%d",
		d.NumberOfPoints(), d.NumberOfVerts(), d.NumberOfLines(), d.NumberOfPolys(), d.NumberOfStrips())
}
