package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/session"
	"github.com/Veraticus/finsight/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return m.renderHelp()
	}

	parts := []string{m.renderHeader()}
	if toast := m.toast.View(); toast != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(max(m.width-4, 0), lipgloss.Right, toast))
	}
	parts = append(parts, m.renderBody())

	return m.wrapWithBorder(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) renderHeader() string {
	brand := lipgloss.NewStyle().Foreground(m.theme.Primary).Bold(true).Render("📈 FinSight")
	tagline := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Professional Stock Risk Analysis")
	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", tagline) + "\n"
}

func (m Model) renderBody() string {
	state := m.controller.State()

	switch state.Status {
	case session.StatusSuccess:
		return m.renderResults()

	case session.StatusFailure:
		return lipgloss.JoinVertical(
			lipgloss.Left,
			components.ErrorBanner(m.theme, state.Error, m.width-4),
			m.upload.View(),
		)

	case session.StatusLoading:
		return m.upload.View()

	default:
		sections := []string{m.upload.View()}
		if m.recent.Len() > 0 {
			sections = append(sections, m.recent.View())
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}
}

func (m Model) renderResults() string {
	heading := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Title.Render("Analysis Results"),
		"   ",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("n Analyze New File"),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		heading,
		m.card.View(),
		m.charts.View(),
	)
}

func (m Model) renderHelp() string {
	title := m.theme.Title.Render("FinSight Help")

	h := m.help
	h.ShowAll = true

	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(min(m.width, 60)).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					h.View(m.keymap),
					"",
					footer,
				),
			),
	)
}

// wrapWithBorder adds a border and status bar around content.
func (m Model) wrapWithBorder(content string) string {
	fullContent := lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.renderStatusBar(),
	)

	return m.theme.BorderedBox.
		Width(m.width).
		Render(fullContent)
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left, center string

	switch m.controller.Status() {
	case session.StatusIdle:
		left = "Upload"
	case session.StatusLoading:
		left = "Analyzing"
	case session.StatusSuccess:
		left = "Results"
	case session.StatusFailure:
		left = "Error"
	}

	if file, ok := m.controller.Selected(); ok {
		center = fmt.Sprintf("%s (%s)", file.Name, file.SizeKB())
	}

	right := "? Help"

	totalWidth := m.width - 6
	spacing := max(totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftPad := spacing / 2
	rightPad := spacing - leftPad

	return fmt.Sprintf("%s%s%s%s%s",
		m.theme.StatusInfo.Render(left),
		strings.Repeat(" ", leftPad),
		m.theme.Normal.Render(center),
		strings.Repeat(" ", rightPad),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right),
	)
}
