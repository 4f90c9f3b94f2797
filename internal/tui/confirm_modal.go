package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// renderConfirmModal draws a titled prompt with two buttons. Borderless
// buttons: nesting bordered components inside a modal with a background
// color produces artifacts on some terminals.
func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btn := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnFocused := btn.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	labels := []string{confirmLabel, cancelLabel}
	rendered := make([]string, len(labels))
	for i, label := range labels {
		st := btn
		if confirmModalFocus(i) == focus {
			st = btnFocused
		}
		rendered[i] = st.Render(label)
	}
	sep := lipgloss.NewStyle().Background(colorControlBg).Render(" ")
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], sep, rendered[1])

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y: confirm   esc: cancel")

	content := strings.Join([]string{body, "", buttons, "", help}, "\n")
	return renderModalBox(width, title, content)
}
