package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"polymap/internal/render"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// mapRect returns the origin and size, in cells, of the map area.
func (m Model) mapRect() (x, y, w, h int) {
	contentWidth := max(10, m.width)
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	w = contentWidth
	if m.showSidebar {
		w -= sidebarWidth + 1
		x = sidebarWidth + 1
	}
	return x, headerHeight, max(10, w), contentHeight
}

// viewport returns the mapper's bounds seen through the current zoom and
// pan, on a map of w x h cells. Pan offsets are kept in cells.
func (m Model) viewport(w, h int) render.Viewport {
	vp := render.NewViewport(m.mapper.Bounds(), w*2, h*4)
	vp.Zoom = m.zoom
	vp.OffsetX, vp.OffsetY = m.offsetX*2, m.offsetY*4
	return vp
}

// renderMap draws the mapper into the braille target.
func (m Model) renderMap(w, h int) string {
	if m.mapper.Input() == nil {
		return dimStyle.Render("no data: Tab to open a file, p to paste WKT, g for a sample grid")
	}
	if cw, ch := m.target.Size(); cw != w || ch != h {
		m.target.Resize(w, h)
	}
	m.target.SetViewport(m.viewport(w, h))
	m.target.Clear()
	if err := m.mapper.Render(m.target); err != nil {
		return errorStyle.Render("render error: " + err.Error())
	}
	return m.target.String()
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	_, _, mapWidth, mapHeight := m.mapRect()
	contentWidth := max(10, m.width)
	contentHeight := mapHeight

	// Header
	header := titleStyle.Render(" polyview ") + m.layerBar()
	header = lipgloss.NewStyle().Inline(true).MaxWidth(contentWidth).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	if m.showAttrs {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		if colW == 0 {
			colW = min(60, contentWidth-6)
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	} else {
		var canvas string
		if m.pasteMode {
			m.ta.SetWidth(mapWidth)
			m.ta.SetHeight(min(mapHeight, 12))
			canvas = m.ta.View()
		} else {
			canvas = m.renderMap(mapWidth, mapHeight)
		}
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(canvas)
	}

	popup := ""
	if m.infoPopup != "" && !m.showAttrs {
		maxPopupW := max(20, min(48, contentWidth/2))
		box := boxStyle.MaxWidth(maxPopupW).Render(m.infoPopup)
		popup = lipgloss.Place(contentWidth, contentHeight, lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.5g y=%.5g  ", m.hoverX, m.hoverY))
	}
	left := lipgloss.JoinVertical(lipgloss.Left, status, help)
	spacerW := max(0, contentWidth-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"1-4 kinds",
		"l layers",
		"s scalars",
		"Tab files",
		"p paste",
		"g grid",
		"a points",
		"i info",
		"r reload",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

// layerBar shows the toggle key and state of every kind plus scalar coloring.
func (m Model) layerBar() string {
	parts := make([]string, 0, len(render.Kinds)+1)
	for i, k := range render.Kinds {
		st := layerOffStyle
		if m.mapper.Visibility(k) {
			st = layerOnStyle
		}
		parts = append(parts, st.Render(fmt.Sprintf("%d %s", i+1, k)))
	}
	st := layerOffStyle
	if m.mapper.ScalarsVisible() {
		st = layerOnStyle
	}
	parts = append(parts, st.Render("s scalars"))
	return " " + strings.Join(parts, " ")
}
