package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"polymap/internal/geom"
	"polymap/internal/render"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			_, _, _, h := m.mapRect()
			m.l.SetSize(sidebarWidth-2, h-2)
		}
	case tickMsg:
		m.watch()
		return m, tick()
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showAttrs {
			switch msg.String() {
			case "up", "down", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "1", "2", "3", "4":
			k := render.Kinds[msg.String()[0]-'1']
			m.mapper.SetVisibility(k, !m.mapper.Visibility(k))
			m.status = fmt.Sprintf("%s: %v", k, m.mapper.Visibility(k))
		case "l":
			all := true
			for _, k := range render.Kinds {
				all = all && m.mapper.Visibility(k)
			}
			for _, k := range render.Kinds {
				m.mapper.SetVisibility(k, !all)
			}
			m.status = fmt.Sprintf("layers: %v", !all)
		case "s":
			m.mapper.SetScalarsVisible(!m.mapper.ScalarsVisible())
			m.status = fmt.Sprintf("scalar coloring: %v", m.mapper.ScalarsVisible())
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				_, _, _, h := m.mapRect()
				m.l.SetSize(sidebarWidth-2, h-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
		case "g":
			m.selPath = ""
			d := geom.Grid(24, 16)
			m.setData(d, nil)
			m.status = "sample grid  " + countsLabel(d)
		case "r":
			m.reload()
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case "i":
			if m.infoPopup != "" {
				m.infoPopup = ""
				break
			}
			var sb strings.Builder
			name := filepath.Base(m.selPath)
			if m.selPath == "" {
				name = "<unsaved>"
			}
			fmt.Fprintf(&sb, "name: %s\n", name)
			if m.data != nil {
				b := m.data.Bounds()
				fmt.Fprintf(&sb, "bounds: [%.5g, %.5g] x [%.5g, %.5g]\n", b.XMin, b.XMax, b.YMin, b.YMax)
				fmt.Fprintf(&sb, "%s\n", countsLabel(m.data))
			}
			_ = m.mapper.Dump(&sb, "")
			m.infoPopup = strings.TrimRight(sb.String(), "\n")
			m.status = "mapper info"
		case "esc":
			m.infoPopup = ""
			m.showAttrs = false
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		x0, y0, w, h := m.mapRect()
		cx, cy := msg.X-x0, msg.Y-y0
		m.hoverHasGeo = false
		if cx >= 0 && cx < w && cy >= 0 && cy < h {
			vp := m.viewport(w, h)
			// aim at the middle of the cell's 2x4 dots
			m.hoverX, m.hoverY, m.hoverHasGeo = vp.Unproject(float64(cx*2)+0.5, float64(cy*4)+1.5)
		}
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		w := strings.TrimSpace(m.ta.Value())
		if w == "" {
			m.status = "paste: empty"
			return m, nil
		}
		d, err := geom.ParseWKT(w)
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setData(d, nil)
		m.status = "rendered WKT  " + countsLabel(d)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// watch picks up changes of the loaded file.
func (m *Model) watch() {
	if m.source == nil {
		return
	}
	before := m.data.MTime()
	m.data.Update()
	err := m.data.Err()
	switch {
	case err != nil && err != m.watchErr:
		m.status = "reload error: " + err.Error()
	case err == nil && m.data.MTime() != before:
		m.cfg.Apply(m.mapper, m.table)
		m.status = "file changed: " + filepath.Base(m.source.Path()) + "  " + countsLabel(m.data)
		if m.showAttrs {
			m.refreshAttrsFromCurrent()
		}
	}
	m.watchErr = err
}
