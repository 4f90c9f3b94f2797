package tui

import (
	"fmt"
	"io"
	"strings"

	"pubdeck/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type postItem struct {
	post model.Post
}

func (i postItem) Title() string       { return i.post.Title }
func (i postItem) Description() string { return i.post.Body }
func (i postItem) FilterValue() string { return i.post.Title }

// compactPostDelegate renders one post per line for the home view.
type compactPostDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	meta     lipgloss.Style
}

func newCompactPostDelegate() compactPostDelegate {
	return compactPostDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		meta: lipgloss.NewStyle().Foreground(colorCardMetaFg),
	}
}

func (d compactPostDelegate) Height() int  { return 1 }
func (d compactPostDelegate) Spacing() int { return 0 }
func (d compactPostDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactPostDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(postItem)
	if !ok {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	line := fmt.Sprintf("#%-6d %s", it.post.ID, strings.TrimSpace(it.post.Title))
	fmt.Fprint(w, style.Render(padLine(line, contentW)))
}

// postCardDelegate renders a bordered card per post for the cards view.
type postCardDelegate struct {
	normalCard   lipgloss.Style
	selectedCard lipgloss.Style

	titleStyle lipgloss.Style
	metaStyle  lipgloss.Style
	bodyStyle  lipgloss.Style
}

func newPostCardDelegate() postCardDelegate {
	base := lipgloss.NewStyle().
		Width(0). // Set per-render.
		Padding(0, 1, 0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCardBorder).
		Foreground(colorSurfaceFg)

	selected := base.BorderForeground(colorAccent)

	return postCardDelegate{
		normalCard:   base,
		selectedCard: selected,
		titleStyle:   lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg),
		metaStyle:    lipgloss.NewStyle().Foreground(colorCardMetaFg),
		bodyStyle:    lipgloss.NewStyle().Foreground(colorSurfaceFg),
	}
}

func (d postCardDelegate) Height() int  { return 5 } // 3 inner lines + border top/bottom
func (d postCardDelegate) Spacing() int { return 1 }
func (d postCardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d postCardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	totalW := m.Width()
	if totalW < 12 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(postItem)
	if !ok {
		return
	}

	card := d.normalCard
	if index == m.Index() {
		card = d.selectedCard
	}
	frameW := card.GetHorizontalFrameSize()
	innerW := totalW - frameW
	if innerW < 1 {
		innerW = 1
	}
	card = card.Width(innerW)

	title := strings.TrimSpace(it.post.Title)
	if title == "" {
		title = "(untitled)"
	}
	body := strings.Join(strings.Fields(it.post.Body), " ")

	lines := []string{
		d.titleStyle.Render(truncateTo(title, innerW)),
		d.metaStyle.Render(truncateTo(fmt.Sprintf("#%d · user %d", it.post.ID, it.post.UserID), innerW)),
		d.bodyStyle.Render(truncateTo(body, innerW)),
	}

	fmt.Fprint(w, card.Render(strings.Join(lines, "\n")))
}

func truncateTo(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}
