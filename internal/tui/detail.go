package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail shows one post full-width with its body rendered as markdown.
func (m appModel) renderDetail() string {
	p, ok := m.store.Find(m.detailID)
	if !ok {
		return renderModalBox(m.width, "Publication", styleMuted().Render("This publication no longer exists."))
	}

	bodyW := modalBodyWidth(m.width)

	meta := styleMuted().Render(fmt.Sprintf("#%d · user %d", p.ID, p.UserID))
	title := lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg).Width(bodyW).Render(p.Title)
	body := renderMarkdown(p.Body, bodyW)
	help := styleMuted().Width(bodyW).Render("e: edit   x: delete   esc: back")

	content := title + "\n" + meta + "\n\n" + body + "\n\n" + help
	return renderModalBox(m.width, "Publication", content)
}
