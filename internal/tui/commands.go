package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/config"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// loadFile reads the chosen path off the UI goroutine.
func loadFile(path string) tea.Cmd {
	return func() tea.Msg {
		file, err := model.LoadUploadedFile(config.ExpandPath(path))
		return fileLoadedMsg{file: file, err: err}
	}
}

// analyze performs the exchange for file. It is the only place the TUI
// waits on the network.
func (m Model) analyze(file model.UploadedFile) tea.Cmd {
	ctx := m.ctx
	analyzer := m.analyzer
	return func() tea.Msg {
		if analyzer == nil {
			return analysisCompletedMsg{file: file, err: fmt.Errorf("analysis service not configured")}
		}
		result, err := analyzer.Analyze(ctx, file)
		return analysisCompletedMsg{file: file, result: result, err: err}
	}
}

// recordAnalysis stores a finished exchange and reloads the recent list.
func (m Model) recordAnalysis(record model.AnalysisRecord) tea.Cmd {
	if m.history == nil {
		return nil
	}

	ctx := m.ctx
	history := m.history
	limit := m.config.HistoryLimit
	return func() tea.Msg {
		if err := history.SaveAnalysis(ctx, &record); err != nil {
			return historyLoadedMsg{err: fmt.Errorf("failed to save analysis: %w", err)}
		}
		return listHistory(ctx, history, limit)
	}
}

// loadHistory fetches recent analyses from storage.
func (m Model) loadHistory() tea.Cmd {
	if m.history == nil || m.config.HistoryLimit == 0 {
		return nil
	}

	ctx := m.ctx
	history := m.history
	limit := m.config.HistoryLimit
	return func() tea.Msg {
		return listHistory(ctx, history, limit)
	}
}

func listHistory(ctx context.Context, history service.HistoryStore, limit int) tea.Msg {
	if limit == 0 {
		return historyLoadedMsg{}
	}
	records, err := history.ListAnalyses(ctx, limit)
	if err != nil {
		common.LogError(err, "Failed to load analysis history", common.Fields{"limit": limit})
		return historyLoadedMsg{err: err}
	}
	return historyLoadedMsg{records: records}
}
