package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// padLine forces s to exactly width columns (ANSI-aware), truncating with an
// ellipsis when it overflows. Keeps pane joins stable under JoinHorizontal.
func padLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		s = xansi.Cut(s, 0, width-1) + "…"
		w = xansi.StringWidth(s)
	}
	if w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to be exactly width columns wide and height lines
// tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = padLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return w
}

// renderModalBox draws a titled, bordered modal sized against the terminal
// width. Content is clamped to the modal body width.
func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccentFg).
		Background(colorAccent).
		Width(bodyW).
		Padding(0, 1).
		Render(title)

	lines := strings.Split(content, "\n")
	for i := range lines {
		if xansi.StringWidth(lines[i]) > bodyW {
			lines[i] = xansi.Cut(lines[i], 0, bodyW)
		}
	}

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Background(colorSurfaceBg).
		Render(strings.Join(lines, "\n"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSelectedBorder).
		Render(header + "\n\n" + body)

	return box
}

// placeCentered centers the modal within the full terminal area.
func (m appModel) placeCentered(s string) string {
	if m.width <= 0 || m.height <= 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}
