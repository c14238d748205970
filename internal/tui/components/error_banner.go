package components

import (
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// ErrorBanner renders a dismissible error message above the upload surface.
func ErrorBanner(theme themes.Theme, message string, width int) string {
	if message == "" {
		return ""
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		theme.StatusError.Render("⚠ "+message),
		"   ",
		lipgloss.NewStyle().Foreground(theme.Muted).Render("d dismiss"),
	)

	style := theme.RoundedBox.
		BorderForeground(theme.Error).
		Padding(0, 1)
	if width > 0 {
		style = style.Width(min(width, 80))
	}
	return style.Render(body)
}
