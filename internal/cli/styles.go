// Package cli provides styled terminal output for the headless commands.
package cli

import (
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// Headless output uses the default palette so it matches the TUI.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(themes.Default.Primary).MarginBottom(1)
	SuccessStyle = lipgloss.NewStyle().Foreground(themes.Default.Success)
	WarningStyle = lipgloss.NewStyle().Foreground(themes.Default.Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(themes.Default.Error)
	InfoStyle    = lipgloss.NewStyle().Foreground(themes.Default.Info)
	SubtleStyle  = lipgloss.NewStyle().Foreground(themes.Default.Muted)

	// TableHeaderStyle underlines column headings.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(themes.Default.Border)

	// TableCellStyle pads cells so columns do not touch.
	TableCellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	TrendIcon   = "📈"
	FileIcon    = "📄"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle prefixes title with the FinSight trend icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(TrendIcon + " " + title)
}

// RiskStyle returns the style for a risk level label.
func RiskStyle(level model.RiskLevel) lipgloss.Style {
	if !level.Valid() {
		return SubtleStyle
	}
	return lipgloss.NewStyle().Bold(true).Foreground(themes.Default.RiskColor(level))
}
