package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// We use lipgloss.AdaptiveColor where possible and only apply "faint" styling
// on dark backgrounds (faint text on light terminals often becomes illegible).

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

// Common semantic colors used across the TUI.
var (
	colorMuted lipgloss.TerminalColor = ac("240", "243")

	// Headings and other secondary chrome.
	colorChromeMutedFg lipgloss.TerminalColor = ac("240", "245")

	colorSelectedBg     lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg     lipgloss.TerminalColor = ac("235", "255")
	colorSelectedBorder lipgloss.TerminalColor = ac("232", "255")

	colorSurfaceBg lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg lipgloss.TerminalColor = ac("235", "252")

	// Slightly elevated surface for controls/inputs so they remain visible
	// on light terminals.
	colorControlBg lipgloss.TerminalColor = ac("252", "235")

	colorAccent   lipgloss.TerminalColor = ac("28", "64") // green, the original shell's lime chrome
	colorAccentFg lipgloss.TerminalColor = ac("255", "235")

	colorCardBorder lipgloss.TerminalColor = ac("250", "243")
	colorCardMetaFg lipgloss.TerminalColor = ac("238", "250")

	colorError lipgloss.TerminalColor = ac("160", "203")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleError() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorError)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the
// interactive TUI. termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE,
// which is useful for non-interactive output but can accidentally disable
// colors in a TUI, so here we only honor NO_COLOR and otherwise follow the
// terminal's capabilities.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
}
