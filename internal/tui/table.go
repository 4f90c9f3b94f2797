package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tableIDW   = 8
	tableUserW = 6
	tableGapW  = 2
)

// renderTable renders the table view: fixed-width aligned columns with a
// header row and the selected row highlighted. Scrolling keeps the selection
// visible via a row offset.
func (m appModel) renderTable(w, h int) string {
	posts := m.store.Posts()

	rows := h - 1 // minus header
	if rows < 1 {
		rows = 1
	}

	off := m.tableOff
	if m.tableIdx < off {
		off = m.tableIdx
	}
	if m.tableIdx >= off+rows {
		off = m.tableIdx - rows + 1
	}
	if off < 0 {
		off = 0
	}

	flexW := w - tableIDW - tableUserW - 3*tableGapW
	titleW := flexW * 2 / 5
	bodyW := flexW - titleW
	if titleW < 8 {
		titleW = 8
	}
	if bodyW < 8 {
		bodyW = 8
	}
	gap := strings.Repeat(" ", tableGapW)

	headerSt := lipgloss.NewStyle().Bold(true).Foreground(colorChromeMutedFg)
	rowSt := lipgloss.NewStyle()
	selSt := lipgloss.NewStyle().
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	var b strings.Builder
	header := fmt.Sprintf("%s%s%s%s%s%s%s",
		padLine("ID", tableIDW), gap,
		padLine("TITLE", titleW), gap,
		padLine("BODY", bodyW), gap,
		padLine("USER", tableUserW))
	b.WriteString(headerSt.Render(padLine(header, w)))

	end := off + rows
	if end > len(posts) {
		end = len(posts)
	}
	for i := off; i < end; i++ {
		p := posts[i]
		body := strings.Join(strings.Fields(p.Body), " ")
		line := fmt.Sprintf("%s%s%s%s%s%s%s",
			padLine(fmt.Sprintf("%d", p.ID), tableIDW), gap,
			padLine(truncateTo(strings.TrimSpace(p.Title), titleW), titleW), gap,
			padLine(truncateTo(body, bodyW), bodyW), gap,
			padLine(fmt.Sprintf("%d", p.UserID), tableUserW))
		st := rowSt
		if i == m.tableIdx {
			st = selSt
		}
		b.WriteString("\n" + st.Render(padLine(line, w)))
	}

	return b.String()
}
