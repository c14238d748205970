package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/cli"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/stubserver"
	"github.com/Veraticus/finsight/internal/testutil"
	tuitesting "github.com/Veraticus/finsight/internal/tui/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingAnalyzer struct {
	calls int
}

func (a *countingAnalyzer) Analyze(context.Context, model.UploadedFile) (model.AnalysisResult, error) {
	a.calls++
	return model.AnalysisResult{}, errors.New("unexpected call")
}

// volatileCSV alternates closes by 5% a day, which the stub classifies as high risk.
func volatileCSV() string {
	var b strings.Builder
	b.WriteString("Date,Open,High,Low,Close,Volume\n")
	price := 100.0
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			price *= 1.05
		} else {
			price *= 0.95
		}
		fmt.Fprintf(&b, "2024-02-%02d,%.2f,%.2f,%.2f,%.2f,5000\n", i+1, price, price, price, price)
	}
	return b.String()
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newStubClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(stubserver.New().Router())
	t.Cleanup(srv.Close)

	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	return client
}

func TestAnalyzeFile_Success(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	path := writeTemp(t, "volatile.csv", volatileCSV())

	var out, progress bytes.Buffer
	err := analyzeFile(ctx, path, newStubClient(t), db.Storage, &out, &progress)
	require.NoError(t, err)

	text := tuitesting.StripANSI(out.String())
	assert.Contains(t, text, "Analysis Results")
	assert.Contains(t, text, "HIGH RISK")
	assert.Contains(t, text, "volatile.csv")

	records := db.MustList(10)
	require.Len(t, records, 1)
	assert.Equal(t, model.RiskHigh, records[0].RiskLevel)
	assert.True(t, records[0].Succeeded())
}

func TestAnalyzeFile_ServerRejects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	path := writeTemp(t, "prices.csv", "Date,Close\n2024-01-01,10\n")

	var out, progress bytes.Buffer
	err := analyzeFile(context.Background(), path, newStubClient(t), db.Storage, &out, &progress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Analysis Failed")
	assert.Contains(t, err.Error(), "invalid columns")
	assert.Contains(t, tuitesting.StripANSI(out.String()), "invalid columns")

	records := db.MustList(10)
	require.Len(t, records, 1)
	assert.Equal(t, "invalid columns", records[0].ErrorMessage)
}

func TestAnalyzeFile_NetworkError(t *testing.T) {
	srv := httptest.NewServer(stubserver.New().Router())
	client, err := api.NewClient(srv.URL)
	require.NoError(t, err)
	srv.Close()

	path := writeTemp(t, "volatile.csv", volatileCSV())

	var out, progress bytes.Buffer
	err = analyzeFile(context.Background(), path, client, nil, &out, &progress)
	require.Error(t, err)
	assert.Contains(t, tuitesting.StripANSI(out.String()), api.MessageNetworkError)
}

func TestAnalyzeFile_RejectsNonCSV(t *testing.T) {
	analyzer := &countingAnalyzer{}
	path := writeTemp(t, "notes.txt", "hello")

	var out, progress bytes.Buffer
	err := analyzeFile(context.Background(), path, analyzer, nil, &out, &progress)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotCSV)
	assert.Equal(t, "Only CSV files can be analyzed", common.UserMessage(err))
	assert.Zero(t, analyzer.calls)
	assert.Empty(t, out.String())
}

func TestAnalyzeFile_MissingFile(t *testing.T) {
	analyzer := &countingAnalyzer{}

	var out, progress bytes.Buffer
	err := analyzeFile(context.Background(), filepath.Join(t.TempDir(), "gone.csv"), analyzer, nil, &out, &progress)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, "Could not read file", common.UserMessage(err))
	assert.Zero(t, analyzer.calls)
}

func TestHistoryStore_NilStore(t *testing.T) {
	assert.Nil(t, historyStore(nil))
	assert.NotNil(t, historyStore(testutil.SetupTestDB(t).Storage))
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "finsight.log")
	f, err := openLogFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)

	_, err = openLogFile("")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestHistory_RendersSeededRecords(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.NewRecordBuilder().
		WithSuccess("aapl.csv", model.RiskLow).
		WithFailure("tsla.csv", "invalid columns").
		Records()...)

	var out bytes.Buffer
	require.NoError(t, cli.RenderHistory(&out, db.MustList(10)))

	text := tuitesting.StripANSI(out.String())
	assert.True(t, tuitesting.ContainsInOrder(text, "tsla.csv", "aapl.csv"))
	assert.Contains(t, text, "invalid columns")
}
