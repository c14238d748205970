package components

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// FeatureImportance is one bar of the feature importance chart.
type FeatureImportance struct {
	Name       string
	Importance int
}

// VolatilityStat is one figure in the volatility panel.
type VolatilityStat struct {
	Label string
	Value string
}

// Illustrative chart data. None of it is derived from the uploaded file.
var (
	DefaultFeatureImportance = []FeatureImportance{
		{Name: "Volatility", Importance: 85},
		{Name: "RSI", Importance: 72},
		{Name: "MACD", Importance: 68},
		{Name: "Moving Avg", Importance: 55},
		{Name: "Volume", Importance: 42},
		{Name: "Bollinger Bands", Importance: 38},
	}

	DefaultVolatilityStats = []VolatilityStat{
		{Label: "Daily Volatility", Value: "2.3%"},
		{Label: "Annual Volatility", Value: "16.2%"},
		{Label: "Sharpe Ratio", Value: "0.85"},
	}
)

const (
	// PriceDays is the length of the price trend series.
	PriceDays = 30
	// PriceScale is the price that maps to a full-height bar.
	PriceScale = 130.0
)

var barLevels = []rune("▁▂▃▄▅▆▇█")

// PriceSeries generates the 30-day placeholder price trend.
func PriceSeries(rng *rand.Rand) []float64 {
	prices := make([]float64, PriceDays)
	for i := range prices {
		prices[i] = 100 + math.Sin(float64(i)*0.3)*15 + rng.Float64()*10
	}
	return prices
}

// ChartsModel renders the placeholder charts shown under a result.
type ChartsModel struct {
	theme  themes.Theme
	bar    progress.Model
	prices []float64
	width  int
}

// NewChartsModel creates the chart section with a fresh price series.
func NewChartsModel(theme themes.Theme, rng *rand.Rand) ChartsModel {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Primary)),
		progress.WithoutPercentage(),
		progress.WithWidth(30),
	)

	return ChartsModel{
		theme:  theme,
		bar:    bar,
		prices: PriceSeries(rng),
	}
}

// Prices returns the generated price series.
func (m ChartsModel) Prices() []float64 {
	return append([]float64(nil), m.prices...)
}

// Resize sets the available width.
func (m *ChartsModel) Resize(width int) {
	m.width = width
	m.bar.Width = max(min(width-30, 40), 10)
}

// View renders the three chart panels.
func (m ChartsModel) View() string {
	panels := []string{
		m.renderImportance(),
		m.renderPriceTrend(),
		m.renderVolatility(),
	}

	if m.width >= 120 {
		return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...)
}

func (m ChartsModel) panel(title, subtitle, body string) string {
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render(title),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(subtitle),
		"",
		body,
	))
}

func (m ChartsModel) renderImportance() string {
	rows := make([]string, 0, len(DefaultFeatureImportance))
	for _, f := range DefaultFeatureImportance {
		rows = append(rows, fmt.Sprintf("%-16s %s %3d%%",
			f.Name,
			m.bar.ViewAs(float64(f.Importance)/100),
			f.Importance,
		))
	}
	return m.panel("Feature Importance", "Model decision factors", strings.Join(rows, "\n"))
}

func (m ChartsModel) renderPriceTrend() string {
	var bars strings.Builder
	for _, p := range m.prices {
		bars.WriteRune(priceBar(p))
	}

	axis := fmt.Sprintf("%-14s%-15s%s", "Day 1", "Day 15", "Day 30")

	body := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Foreground(m.theme.Primary).Render(bars.String()),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(axis),
	)
	return m.panel("Price Trend", "30-day overview", body)
}

func (m ChartsModel) renderVolatility() string {
	rows := make([]string, 0, len(DefaultVolatilityStats))
	for _, s := range DefaultVolatilityStats {
		rows = append(rows, fmt.Sprintf("%-18s %s", s.Label, m.theme.Bold.Render(s.Value)))
	}
	return m.panel("Volatility Analysis", "Rolling standard deviation of returns", strings.Join(rows, "\n"))
}

// priceBar maps a price onto a block character, full height at PriceScale.
func priceBar(price float64) rune {
	ratio := price / PriceScale
	idx := int(math.Round(ratio * float64(len(barLevels)-1)))
	idx = max(0, min(idx, len(barLevels)-1))
	return barLevels[idx]
}
