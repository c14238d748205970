package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// HistoryPanel lists recent analyses on the idle screen.
type HistoryPanel struct {
	theme   themes.Theme
	records []model.AnalysisRecord
	width   int
}

// NewHistoryPanel creates an empty panel.
func NewHistoryPanel(theme themes.Theme) HistoryPanel {
	return HistoryPanel{theme: theme}
}

// SetRecords replaces the listed records, newest first.
func (p *HistoryPanel) SetRecords(records []model.AnalysisRecord) {
	p.records = append([]model.AnalysisRecord(nil), records...)
}

// Len returns the number of listed records.
func (p HistoryPanel) Len() int {
	return len(p.records)
}

// Resize sets the available width.
func (p *HistoryPanel) Resize(width int) {
	p.width = width
}

// View renders the panel. It is empty when there is nothing to show.
func (p HistoryPanel) View() string {
	if len(p.records) == 0 {
		return ""
	}

	muted := lipgloss.NewStyle().Foreground(p.theme.Muted)
	rows := []string{p.theme.Bold.Render("Recent Analyses")}

	for _, r := range p.records {
		when := muted.Render(r.CreatedAt.Local().Format("Jan 02 15:04"))
		rows = append(rows, fmt.Sprintf("%s  %-28s %s", when, truncate(r.FileName, 28), p.outcome(r)))
	}

	style := p.theme.Box
	if p.width > 0 {
		style = style.Width(min(p.width, 80))
	}
	return style.Render(strings.Join(rows, "\n"))
}

func (p HistoryPanel) outcome(r model.AnalysisRecord) string {
	if r.Succeeded() {
		return lipgloss.NewStyle().
			Foreground(p.theme.RiskColor(r.RiskLevel)).
			Render(themes.RiskMarker(r.RiskLevel) + " " + r.RiskLevel.Upper())
	}
	return p.theme.StatusError.Render("✗ " + truncate(r.ErrorMessage, 32))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
