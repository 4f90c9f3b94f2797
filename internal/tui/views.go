package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	sidebarOpenW      = 22
	sidebarCollapsedW = 4
	headerLines       = 3
	footerLines       = 1
)

func (m appModel) sidebarWidth() int {
	if m.sidebarOpen {
		return sidebarOpenW
	}
	return sidebarCollapsedW
}

func (m appModel) contentSize() (w, h int) {
	w = m.width - m.sidebarWidth()
	h = m.height - headerLines - footerLines
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	switch m.modal {
	case modalForm:
		return m.placeCentered(m.renderForm())
	case modalConfirmDelete:
		body := fmt.Sprintf("Are you sure you want to delete publication #%d?", m.confirmID)
		if m.deleting {
			body = "Deleting…"
		}
		return m.placeCentered(renderConfirmModal(m.width, "Delete publication", body, "Delete", "Cancel", m.confirm))
	case modalDetail:
		return m.placeCentered(m.renderDetail())
	}

	sidebar := m.renderSidebar()
	main := m.renderHeader() + "\n" + m.renderContent() + "\n" + m.renderFooter()

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
}

func (m appModel) renderSidebar() string {
	w := m.sidebarWidth()
	_, contentH := m.contentSize()
	h := contentH + headerLines + footerLines

	itemSt := lipgloss.NewStyle().Foreground(colorChromeMutedFg).Padding(0, 1)
	activeSt := lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true).
		Padding(0, 1)

	var lines []string
	brand := "Publications"
	if !m.sidebarOpen {
		brand = "☰"
	}
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1).Render(brand))
	lines = append(lines, "")

	entries := []struct {
		v     view
		label string
		icon  string
	}{
		{viewHome, "Home", "⌂"},
		{viewCards, "Cards", "▤"},
		{viewTable, "Table", "☷"},
	}
	for i, e := range entries {
		label := fmt.Sprintf("%s %s", e.icon, e.label)
		if !m.sidebarOpen {
			label = e.icon
		}
		label = fmt.Sprintf("%d %s", i+1, label)
		st := itemSt
		if m.view == e.v {
			st = activeSt
		}
		lines = append(lines, st.Render(padLine(label, w-2)))
	}

	if m.sidebarOpen {
		lines = append(lines, "")
		lines = append(lines, styleMuted().Padding(0, 1).Render("ctrl+b: collapse"))
	}

	body := normalizePane(strings.Join(lines, "\n"), w-1, h)
	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(colorCardBorder)
	return border.Render(body)
}

func (m appModel) renderHeader() string {
	w, _ := m.contentSize()

	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Render(viewTitle(m.view))
	sub := styleMuted().Render(viewSubtitle(m.view))

	right := "r: refresh   n: new post"
	if m.fetching {
		right = m.spin.View() + " loading…"
	}
	rightSt := styleMuted().Render(right)

	gap := w - lipgloss.Width(title) - lipgloss.Width(rightSt) - 2
	if gap < 1 {
		gap = 1
	}
	top := " " + title + strings.Repeat(" ", gap) + rightSt

	rule := styleMuted().Render(strings.Repeat("─", max(w, 0)))

	return padLine(top, w) + "\n" + padLine(" "+sub, w) + "\n" + rule
}

// renderContent renders the active view. A failed fetch shows its message in
// a banner while the stale list stays visible underneath.
func (m appModel) renderContent() string {
	w, h := m.contentSize()

	var banner string
	if msg := m.store.LastError(); msg != "" {
		banner = styleError().Render(truncateTo(" Error: "+msg, w-16)) +
			styleMuted().Render("  esc: dismiss") + "\n"
		h--
	}

	if m.store.Len() == 0 {
		var body string
		switch {
		case m.fetching:
			body = styleMuted().Render(" Loading publications…")
		default:
			body = styleMuted().Render(" No publications. Press n to create one, r to refresh.")
		}
		return banner + normalizePane(body, w, h)
	}

	var body string
	switch m.view {
	case viewHome:
		body = m.homeList.View()
	case viewCards:
		body = m.cardsList.View()
	case viewTable:
		body = m.renderTable(w, h)
	}
	return banner + normalizePane(body, w, h)
}

func (m appModel) renderFooter() string {
	w, _ := m.contentSize()
	text := " enter: details   e: edit   x: delete   1/2/3: views   q: quit"
	if m.flashText != "" {
		st := styleMuted()
		if m.flashIsErr {
			st = styleError()
		}
		text = " " + st.Render(truncateTo(m.flashText, w-2))
		return padLine(text, w)
	}
	return padLine(styleMuted().Render(text), w)
}
