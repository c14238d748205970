package tui

import (
	"math/rand"
	"time"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/service"
	"github.com/Veraticus/finsight/internal/tui/components"
	"github.com/Veraticus/finsight/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme         themes.Theme
	Analyzer      api.Analyzer
	History       service.HistoryStore
	Rand          *rand.Rand
	InitialFile   string
	ToastDuration time.Duration
	Width         int
	Height        int
	HistoryLimit  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:         themes.Default,
		ToastDuration: components.DefaultToastDuration,
		Width:         80,
		Height:        24,
		HistoryLimit:  5,
	}
}

// WithAnalyzer sets the analysis service client.
func WithAnalyzer(analyzer api.Analyzer) Option {
	return func(c *Config) {
		c.Analyzer = analyzer
	}
}

// WithHistory records every finished analysis and lists recent ones on the
// upload screen.
func WithHistory(history service.HistoryStore, limit int) Option {
	return func(c *Config) {
		c.History = history
		c.HistoryLimit = limit
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithInitialFile preselects a file on startup.
func WithInitialFile(path string) Option {
	return func(c *Config) {
		c.InitialFile = path
	}
}

// WithToastDuration sets how long notifications stay visible.
func WithToastDuration(d time.Duration) Option {
	return func(c *Config) {
		c.ToastDuration = d
	}
}

// WithRand sets the source for the illustrative price chart.
func WithRand(r *rand.Rand) Option {
	return func(c *Config) {
		c.Rand = r
	}
}
