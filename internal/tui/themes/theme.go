// Package themes holds the color palettes FinSight renders with.
package themes

import (
	"github.com/Veraticus/finsight/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI and the styled CLI output.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Code          lipgloss.Style
	Selected      lipgloss.Style
	Box           lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	RiskBadge     lipgloss.Style
	Toast         lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Background    lipgloss.Color
	Surface       lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// palette is the handful of colors a theme is derived from.
type palette struct {
	primary    string
	subtle     string
	success    string
	warning    string
	danger     string
	info       string
	background string
	foreground string
	surface    string
	border     string
	muted      string
	onPrimary  string
}

// Default matches the violet accent of the FinSight web front end.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	subtle:     "#a3a3a3",
	success:    "#10b981",
	warning:    "#f59e0b",
	danger:     "#ef4444",
	info:       "#3b82f6",
	background: "#1a1a1a",
	foreground: "#fafafa",
	surface:    "#262626",
	border:     "#404040",
	muted:      "#737373",
	onPrimary:  "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	subtle:     "#a6adc8",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	danger:     "#f38ba8",
	info:       "#89dceb",
	background: "#1e1e2e",
	foreground: "#cdd6f4",
	surface:    "#313244",
	border:     "#45475a",
	muted:      "#6c7086",
	onPrimary:  "#1e1e2e",
})

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)
	status := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}

	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Success:    lipgloss.Color(p.success),
		Warning:    lipgloss.Color(p.warning),
		Error:      lipgloss.Color(p.danger),
		Info:       lipgloss.Color(p.info),
		Background: lipgloss.Color(p.background),
		Foreground: fg,
		Surface:    lipgloss.Color(p.surface),
		Border:     border,
		Muted:      lipgloss.Color(p.muted),

		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.subtle)).MarginBottom(1),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.surface)).
			Foreground(fg).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.onPrimary)).
			Bold(true),

		Box:         lipgloss.NewStyle().Padding(1, 2),
		BorderedBox: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(border).Padding(1, 2),
		RoundedBox:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(1, 2),

		RiskBadge: lipgloss.NewStyle().Bold(true).Padding(0, 2),
		Toast:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(40),

		StatusSuccess: status(p.success),
		StatusWarning: status(p.warning),
		StatusError:   status(p.danger),
		StatusInfo:    status(p.info),
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Italic(true),
	}
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// RiskColor returns the accent color for a risk level.
func (t Theme) RiskColor(level model.RiskLevel) lipgloss.Color {
	switch level {
	case model.RiskHigh:
		return t.Error
	case model.RiskMedium:
		return t.Warning
	case model.RiskLow:
		return t.Success
	default:
		return t.Muted
	}
}

// RiskMarker returns the emoji shown next to a risk level.
func RiskMarker(level model.RiskLevel) string {
	switch level {
	case model.RiskHigh:
		return "🔴"
	case model.RiskMedium:
		return "🟡"
	case model.RiskLow:
		return "🟢"
	default:
		return "⚪"
	}
}
