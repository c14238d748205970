package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "finsight.db")

	store, err := Open(context.Background(), dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
}

func TestSQLiteStorage_Migrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	// Test initial migration
	store1, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Migrate(ctx))

	var version int
	require.NoError(t, store1.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)
	_ = store1.Close()

	// Running migrations again against the same file should not error
	store2, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()
	require.NoError(t, store2.Migrate(ctx))

	var indexCount int
	err = store2.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name IN ('idx_analyses_created_at', 'idx_analyses_risk_level')
	`).Scan(&indexCount)
	require.NoError(t, err)
	assert.Equal(t, 2, indexCount)

	// Database is functional after migrations
	record := model.NewAnalysisRecord(
		model.UploadedFile{Name: "prices.csv", Data: []byte("Date,Close\n")},
		&model.AnalysisResult{RiskLevel: model.RiskLow},
		"",
	)
	assert.NoError(t, store2.SaveAnalysis(ctx, &record))
}

func TestSQLiteStorage_ConcurrentAccess(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)

	// Concurrent writers
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			record := model.NewAnalysisRecord(
				model.UploadedFile{Name: fmt.Sprintf("concurrent-%d.csv", id)},
				nil,
				"Network error",
			)
			if err := store.SaveAnalysis(ctx, &record); err != nil {
				errs <- err
			}
		}(i)
	}

	// Concurrent readers
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.ListAnalyses(ctx, 10); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("Concurrent access error: %v", err)
	}

	records, err := store.ListAnalyses(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 5)
}
