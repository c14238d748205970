// Package tui implements the interactive FinSight screen: pick a CSV, submit
// it for analysis, and read the risk card.
package tui

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/service"
	"github.com/Veraticus/finsight/internal/session"
	"github.com/Veraticus/finsight/internal/tui/components"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the main TUI state. The session controller is the single
// source of truth for the upload/result flow; the model only mirrors it
// into components.
type Model struct {
	ctx        context.Context
	analyzer   api.Analyzer
	history    service.HistoryStore
	historyErr error
	controller *session.Controller
	rng        *rand.Rand
	theme      themes.Theme
	config     Config
	keymap     KeyMap
	help       help.Model
	upload     components.UploadModel
	toast      components.ToastModel
	card       components.RiskCard
	charts     components.ChartsModel
	recent     components.HistoryPanel
	width      int
	height     int
	showHelp   bool
	quitting   bool
}

// New creates the model. ctx bounds every exchange and storage call the
// model starts.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // chart jitter only
	}

	m := Model{
		ctx:        ctx,
		analyzer:   cfg.Analyzer,
		history:    cfg.History,
		controller: session.NewController(),
		rng:        rng,
		theme:      cfg.Theme,
		config:     cfg,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		upload:     components.NewUploadModel(cfg.Theme),
		toast:      components.NewToastModel(cfg.Theme, cfg.ToastDuration),
		recent:     components.NewHistoryPanel(cfg.Theme),
		width:      cfg.Width,
		height:     cfg.Height,
	}
	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.upload.Init(), m.loadHistory()}
	if m.config.InitialFile != "" {
		cmds = append(cmds, loadFile(m.config.InitialFile))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case components.FileChosenMsg:
		return m, loadFile(msg.Path)

	case fileLoadedMsg:
		m.handleFileLoaded(msg)
		return m, nil

	case analysisCompletedMsg:
		return m.handleAnalysisCompleted(msg)

	case historyLoadedMsg:
		m.historyErr = msg.err
		if msg.err == nil {
			m.recent.SetRecords(msg.records)
		}
		return m, nil

	case components.ToastExpiredMsg:
		var cmd tea.Cmd
		m.toast, cmd = m.toast.Update(msg)
		return m, cmd
	}

	// Spinner frames and cursor blinks.
	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

// Status returns the session status, for callers embedding the model.
func (m Model) Status() session.Status {
	return m.controller.Status()
}

// handleKey dispatches a key press. While the path input has focus, keys go
// to the input except for force quit and escape.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	if m.upload.Focused() {
		if msg.Type == tea.KeyEsc {
			m.controller.DismissError()
			if _, ok := m.controller.Selected(); ok {
				m.upload.Blur()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.upload, cmd = m.upload.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keymap.Submit):
		return m.submit()

	case key.Matches(msg, m.keymap.Clear):
		if m.controller.Loading() {
			return m, nil
		}
		m.controller.ClearSelection()
		m.upload.SetFile(nil)
		cmd := m.focusUpload()
		return m, cmd

	case key.Matches(msg, m.keymap.Reset):
		if m.controller.Loading() {
			return m, nil
		}
		m.controller.Reset()
		m.upload.SetFile(nil)
		cmd := m.focusUpload()
		return m, cmd

	case key.Matches(msg, m.keymap.Dismiss):
		m.controller.DismissError()
		return m, nil

	case key.Matches(msg, m.keymap.Browse):
		cmd := m.focusUpload()
		return m, cmd
	}

	return m, nil
}

// focusUpload moves the cursor to the path input when a file may be chosen.
func (m *Model) focusUpload() tea.Cmd {
	switch m.controller.Status() {
	case session.StatusLoading, session.StatusSuccess:
		return nil
	}
	return m.upload.Focus()
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	file, ok := m.controller.Submit()
	if !ok {
		return m, nil
	}

	m.upload.Blur()
	spin := m.upload.SetLoading(true)

	common.LogInfo("Submitting file for analysis", common.Fields{
		"file": file.Name,
		"size": file.Size(),
	})
	return m, tea.Batch(spin, m.analyze(file))
}

func (m *Model) handleFileLoaded(msg fileLoadedMsg) {
	if msg.err != nil {
		m.upload.SetNotice(fmt.Sprintf("Could not read file: %v", msg.err))
		return
	}

	// Non-CSV picks leave the page untouched.
	if !m.controller.Select(msg.file) {
		return
	}

	selected, _ := m.controller.Selected()
	m.upload.SetFile(&selected)
	m.upload.Blur()
}

func (m Model) handleAnalysisCompleted(msg analysisCompletedMsg) (tea.Model, tea.Cmd) {
	notification, ok := m.controller.Resolve(msg.result, msg.err)
	if !ok {
		return m, nil
	}
	m.upload.SetLoading(false)

	state := m.controller.State()
	var record model.AnalysisRecord
	if state.Status == session.StatusSuccess {
		m.card = components.NewRiskCard(*state.Result, m.theme)
		m.charts = components.NewChartsModel(m.theme, m.rng)
		m.handleResize()
		record = model.NewAnalysisRecord(msg.file, state.Result, "")
	} else {
		record = model.NewAnalysisRecord(msg.file, nil, state.Error)
	}

	common.LogInfo("Analysis finished", common.Fields{
		"file":   msg.file.Name,
		"status": state.Status.String(),
	})

	toastCmd := m.toast.Show(notification)
	return m, tea.Batch(toastCmd, m.recordAnalysis(record))
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	usable := max(m.width-4, 20)
	m.upload.Resize(usable)
	m.card.Resize(usable)
	m.charts.Resize(usable)
	m.recent.Resize(usable)
	m.help.Width = usable
}
