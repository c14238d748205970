package tui

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/session"
	"github.com/Veraticus/finsight/internal/tui/components"
	tuitesting "github.com/Veraticus/finsight/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	err    error
	result model.AnalysisResult
	files  []model.UploadedFile
	mu     sync.Mutex
}

func (f *fakeAnalyzer) Analyze(_ context.Context, file model.UploadedFile) (model.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files = append(f.files, file)
	return f.result, f.err
}

func (f *fakeAnalyzer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type fakeHistory struct {
	saveErr error
	records []model.AnalysisRecord
	mu      sync.Mutex
}

func (h *fakeHistory) SaveAnalysis(_ context.Context, record *model.AnalysisRecord) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.saveErr != nil {
		return h.saveErr
	}
	record.ID = "rec"
	record.CreatedAt = time.Now()
	h.records = append([]model.AnalysisRecord{*record}, h.records...)
	return nil
}

func (h *fakeHistory) ListAnalyses(_ context.Context, limit int) ([]model.AnalysisRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if limit > len(h.records) {
		limit = len(h.records)
	}
	return append([]model.AnalysisRecord(nil), h.records[:limit]...), nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestModel(analyzer api.Analyzer, history *fakeHistory) Model {
	opts := []Option{
		WithAnalyzer(analyzer),
		WithSize(120, 40),
		WithToastDuration(time.Millisecond),
		WithRand(rand.New(rand.NewSource(1))),
	}
	if history != nil {
		opts = append(opts, WithHistory(history, 5))
	}
	return New(context.Background(), opts...)
}

// drain feeds cmd's messages back into m until no work remains.
func drain(t *testing.T, m tea.Model, cmd tea.Cmd) Model {
	t.Helper()
	r := tuitesting.NewTestRenderer()
	out := r.Drain(m, cmd, tuitesting.IsAnimationMsg)
	result, ok := out.(Model)
	require.True(t, ok)
	return result
}

// chooseFile sends the chosen path the way the upload surface does.
func chooseFile(t *testing.T, m Model, path string) Model {
	t.Helper()
	updated, cmd := m.Update(components.FileChosenMsg{Path: path})
	return drain(t, updated, cmd)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok)
	return result, cmd
}

func view(m Model) string {
	return tuitesting.StripANSI(m.View())
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)

	assert.Equal(t, session.StatusIdle, m.Status())
	assert.True(t, m.upload.Focused())

	v := view(m)
	assert.Contains(t, v, "FinSight")
	assert.Contains(t, v, components.UploadTitle)
	assert.Contains(t, v, components.RequiredHint)
	assert.Contains(t, v, "Upload")
}

func TestModel_SuccessfulAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{
		RiskLevel:    model.RiskHigh,
		FeaturesUsed: []string{"rolling_volatility", "rsi"},
	}}
	history := &fakeHistory{}
	m := newTestModel(analyzer, history)

	m = chooseFile(t, m, writeFile(t, "AAPL.csv", "Date,Open,High,Low,Close,Volume\n"))
	selected, ok := m.controller.Selected()
	require.True(t, ok)
	assert.Equal(t, "AAPL.csv", selected.Name)
	assert.False(t, m.upload.Focused())
	assert.Contains(t, view(m), components.SubmitLabel)

	m, cmd := press(t, m, tuitesting.KeyEnter())
	assert.Equal(t, session.StatusLoading, m.Status())
	assert.Contains(t, view(m), components.AnalyzingLabel)

	m = drain(t, m, cmd)

	assert.Equal(t, 1, analyzer.calls())
	assert.Equal(t, session.StatusSuccess, m.Status())
	assert.Zero(t, m.controller.InFlight())

	v := view(m)
	assert.Contains(t, v, "Analysis Results")
	assert.Contains(t, v, "HIGH RISK")
	assert.Contains(t, v, "rolling volatility")
	assert.Contains(t, v, "Feature Importance")
	assert.NotContains(t, v, components.UploadTitle)

	require.Len(t, history.records, 1)
	assert.Equal(t, model.RiskHigh, history.records[0].RiskLevel)
	assert.Equal(t, "AAPL.csv", history.records[0].FileName)
	assert.Equal(t, 1, m.recent.Len())
}

func TestModel_ToastShownThenExpires(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{RiskLevel: model.RiskLow}}
	m := newTestModel(analyzer, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))

	m, _ = press(t, m, tuitesting.KeyEnter())

	// Resolve by hand so the toast is observed before it expires.
	updated, follow := m.Update(analysisCompletedMsg{result: analyzer.result})
	m = updated.(Model)
	n, ok := m.toast.Current()
	require.True(t, ok)
	assert.Equal(t, session.Notification{Title: "Analysis Complete", Description: "Risk level: LOW"}, n)
	assert.Contains(t, view(m), "Risk level: LOW")

	m = drain(t, m, follow)
	_, ok = m.toast.Current()
	assert.False(t, ok)
}

func TestModel_FailedAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{err: &api.AnalysisError{
		Kind:       api.KindProtocol,
		StatusCode: 400,
		Message:    "Missing Close column",
	}}
	history := &fakeHistory{}
	m := newTestModel(analyzer, history)
	m = chooseFile(t, m, writeFile(t, "bad.csv", "Date\n"))

	m, _ = press(t, m, tuitesting.KeyEnter())
	file, _ := m.controller.Selected()
	updated, follow := m.Update(analysisCompletedMsg{file: file, err: analyzer.err})
	m = updated.(Model)

	assert.Equal(t, session.StatusFailure, m.Status())
	n, ok := m.toast.Current()
	require.True(t, ok)
	assert.Equal(t, session.VariantDestructive, n.Variant)
	assert.Equal(t, "Analysis Failed", n.Title)
	assert.Equal(t, "Missing Close column", n.Description)

	v := view(m)
	assert.Contains(t, v, "Missing Close column")
	assert.Contains(t, v, "bad.csv")
	assert.Contains(t, v, components.SubmitLabel)

	m = drain(t, m, follow)
	require.Len(t, history.records, 1)
	assert.Equal(t, "Missing Close column", history.records[0].ErrorMessage)

	m, _ = press(t, m, tuitesting.KeyPress("d"))
	assert.Equal(t, session.StatusIdle, m.Status())
	assert.Empty(t, m.controller.State().Error)

	_, ok = m.controller.Selected()
	assert.True(t, ok, "dismissing the error keeps the selection")
}

func TestModel_GenericErrorMessage(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))
	m, _ = press(t, m, tuitesting.KeyEnter())

	updated, _ := m.Update(analysisCompletedMsg{err: errors.New("boom")})
	m = updated.(Model)

	assert.Equal(t, api.MessageAnalysisFailed, m.controller.State().Error)
}

func TestModel_SubmitWhileLoadingIgnored(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{RiskLevel: model.RiskMedium}}
	m := newTestModel(analyzer, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))

	m, first := press(t, m, tuitesting.KeyEnter())
	require.NotNil(t, first)

	m, second := press(t, m, tuitesting.KeyEnter())
	assert.Nil(t, second)
	assert.Equal(t, 1, m.controller.InFlight())

	m, clearCmd := press(t, m, tuitesting.KeyPress("x"))
	assert.Nil(t, clearCmd)
	_, ok := m.controller.Selected()
	assert.True(t, ok, "clear is disabled while loading")

	m, _ = press(t, m, tuitesting.KeyPress("n"))
	assert.Equal(t, session.StatusLoading, m.Status())

	m = drain(t, m, first)
	assert.Equal(t, 1, analyzer.calls())
	assert.Equal(t, session.StatusSuccess, m.Status())
}

func TestModel_StaleCompletionIgnored(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)

	updated, cmd := m.Update(analysisCompletedMsg{result: model.AnalysisResult{RiskLevel: model.RiskHigh}})
	m = updated.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, session.StatusIdle, m.Status())
	_, ok := m.toast.Current()
	assert.False(t, ok)
}

func TestModel_ResetAfterSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{RiskLevel: model.RiskLow}}
	m := newTestModel(analyzer, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))
	m, cmd := press(t, m, tuitesting.KeyEnter())
	m = drain(t, m, cmd)
	require.Equal(t, session.StatusSuccess, m.Status())

	m, _ = press(t, m, tuitesting.KeyPress("n"))

	assert.Equal(t, session.StatusIdle, m.Status())
	_, ok := m.controller.Selected()
	assert.False(t, ok)
	assert.True(t, m.upload.Focused())
	assert.Contains(t, view(m), components.RequiredHint)
}

func TestModel_SelectionIgnoredAfterSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{RiskLevel: model.RiskLow}}
	m := newTestModel(analyzer, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))
	m, cmd := press(t, m, tuitesting.KeyEnter())
	m = drain(t, m, cmd)

	m, cmd = press(t, m, tuitesting.KeyPress("o"))
	assert.Nil(t, cmd)
	assert.False(t, m.upload.Focused())
}

func TestModel_NonCSVIgnoredSilently(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	m := newTestModel(analyzer, nil)
	before := view(m)

	m = chooseFile(t, m, writeFile(t, "notes.txt", "hello"))

	_, ok := m.controller.Selected()
	assert.False(t, ok)
	assert.Equal(t, session.StatusIdle, m.Status())
	assert.True(t, m.upload.Focused())
	assert.Empty(t, m.upload.Notice())

	after := view(m)
	assert.Equal(t, before, after)
	assert.NotContains(t, after, "notes.txt")
	assert.NotContains(t, after, "Only CSV")

	updated, cmd := m.submit()
	assert.Nil(t, cmd)
	_ = drain(t, updated, cmd)
	analyzer.mu.Lock()
	defer analyzer.mu.Unlock()
	assert.Empty(t, analyzer.files)
}

func TestModel_MissingFile(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)
	m = chooseFile(t, m, filepath.Join(t.TempDir(), "missing.csv"))

	_, ok := m.controller.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.upload.Notice(), "Could not read file")
}

func TestModel_ClearSelection(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))

	m, _ = press(t, m, tuitesting.KeyPress("x"))

	_, ok := m.controller.Selected()
	assert.False(t, ok)
	assert.True(t, m.upload.Focused())

	m, cmd := press(t, m, tuitesting.KeyEnter())
	assert.Nil(t, cmd, "nothing to submit without a selection")
	assert.Equal(t, session.StatusIdle, m.Status())
}

func TestModel_EscapeReturnsToShortcuts(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))

	m, _ = press(t, m, tuitesting.KeyPress("o"))
	require.True(t, m.upload.Focused())

	m, _ = press(t, m, tuitesting.KeyEsc())
	assert.False(t, m.upload.Focused())
}

func TestModel_InitialFile(t *testing.T) {
	path := writeFile(t, "start.csv", "Date\n")
	m := New(context.Background(), WithInitialFile(path), WithAnalyzer(&fakeAnalyzer{}))

	m = drain(t, m, m.Init())

	selected, ok := m.controller.Selected()
	require.True(t, ok)
	assert.Equal(t, "start.csv", selected.Name)
}

func TestModel_HistoryLoadedOnInit(t *testing.T) {
	history := &fakeHistory{records: []model.AnalysisRecord{
		{ID: "1", FileName: "old.csv", RiskLevel: model.RiskMedium, CreatedAt: time.Now()},
	}}
	m := newTestModel(&fakeAnalyzer{}, history)

	m = drain(t, m, m.Init())

	assert.Equal(t, 1, m.recent.Len())
	assert.Contains(t, view(m), "old.csv")
}

func TestModel_HistorySaveFailureKeepsResult(t *testing.T) {
	analyzer := &fakeAnalyzer{result: model.AnalysisResult{RiskLevel: model.RiskLow}}
	history := &fakeHistory{saveErr: errors.New("disk full")}
	m := newTestModel(analyzer, history)
	m = chooseFile(t, m, writeFile(t, "a.csv", "Date\n"))

	m, cmd := press(t, m, tuitesting.KeyEnter())
	m = drain(t, m, cmd)

	assert.Equal(t, session.StatusSuccess, m.Status())
	assert.Error(t, m.historyErr)
}

func TestModel_Help(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)
	m.upload.Blur()

	m, _ = press(t, m, tuitesting.KeyPress("?"))
	require.True(t, m.showHelp)
	v := view(m)
	assert.Contains(t, v, "FinSight Help")
	assert.Contains(t, v, "analyze risk")

	m, _ = press(t, m, tuitesting.KeyEsc())
	assert.False(t, m.showHelp)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)

	// q is text while the path input is focused.
	m, _ = press(t, m, tuitesting.KeyPress("q"))
	assert.False(t, m.quitting)

	m, cmd := press(t, m, tuitesting.KeyCtrlC())
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(&fakeAnalyzer{}, nil)

	updated, _ := m.Update(tuitesting.WindowSize(60, 20))
	m = updated.(Model)

	assert.Equal(t, 60, m.width)
	assert.Equal(t, 20, m.height)
	assert.Contains(t, view(m), components.UploadTitle)
}
