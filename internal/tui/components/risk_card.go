package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// MaxFeatureLabels is how many feature labels the risk card lists before
// collapsing the rest into a "+N more" tag.
const MaxFeatureLabels = 6

// RiskDescription holds the headline and blurb for a risk level.
type RiskDescription struct {
	Title       string
	Description string
}

// DescribeRisk returns the card copy for level.
func DescribeRisk(level model.RiskLevel) RiskDescription {
	switch level {
	case model.RiskHigh:
		return RiskDescription{Title: "HIGH RISK", Description: "This stock shows high volatility patterns"}
	case model.RiskMedium:
		return RiskDescription{Title: "MEDIUM RISK", Description: "This stock shows moderate volatility patterns"}
	case model.RiskLow:
		return RiskDescription{Title: "LOW RISK", Description: "This stock shows stable volatility patterns"}
	default:
		return RiskDescription{Title: strings.ToUpper(string(level)) + " RISK"}
	}
}

// FeatureLabels turns feature identifiers into display labels. It returns at
// most MaxFeatureLabels labels and the number left out.
func FeatureLabels(features []string) ([]string, int) {
	shown := features
	if len(shown) > MaxFeatureLabels {
		shown = shown[:MaxFeatureLabels]
	}

	labels := make([]string, 0, len(shown))
	for _, f := range shown {
		labels = append(labels, strings.ReplaceAll(f, "_", " "))
	}
	return labels, len(features) - len(shown)
}

// RiskCard renders an analysis result.
type RiskCard struct {
	theme  themes.Theme
	result model.AnalysisResult
	width  int
}

// NewRiskCard creates a card for result.
func NewRiskCard(result model.AnalysisResult, theme themes.Theme) RiskCard {
	return RiskCard{theme: theme, result: result.Clone()}
}

// Resize sets the available width.
func (c *RiskCard) Resize(width int) {
	c.width = width
}

// View renders the card.
func (c RiskCard) View() string {
	color := c.theme.RiskColor(c.result.RiskLevel)
	desc := DescribeRisk(c.result.RiskLevel)

	badge := c.theme.RiskBadge.
		Foreground(c.theme.Background).
		Background(color).
		Render(fmt.Sprintf("%s %s", themes.RiskMarker(c.result.RiskLevel), desc.Title))

	lines := []string{badge}
	if desc.Description != "" {
		lines = append(lines, "", c.theme.Normal.Render(desc.Description))
	}

	if len(c.result.FeaturesUsed) > 0 {
		lines = append(lines, "", c.renderFeatures())
	}

	style := c.theme.RoundedBox.BorderForeground(color)
	if c.width > 0 {
		style = style.Width(min(c.width, 80))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (c RiskCard) renderFeatures() string {
	labels, rest := FeatureLabels(c.result.FeaturesUsed)

	tag := c.theme.Code
	tags := make([]string, 0, len(labels)+1)
	for _, l := range labels {
		tags = append(tags, tag.Render(l))
	}
	if rest > 0 {
		tags = append(tags, lipgloss.NewStyle().Foreground(c.theme.Muted).Render(fmt.Sprintf("+%d more", rest)))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Foreground(c.theme.Muted).Render("🛡 Analysis Features"),
		strings.Join(tags, " "),
	)
}
