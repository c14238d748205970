// Package testutil provides test helpers for code that reads or writes the
// analysis history database.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/storage"
)

// TestDB represents a migrated in-memory history database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Records []model.AnalysisRecord
}

// SetupTestDB creates a new in-memory test database seeded with records.
// Cleanup is registered on t.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewRecordBuilder().
//			WithSuccess("aapl.csv", model.RiskHigh).
//			WithFailure("bad.csv", "invalid columns").
//			Records()...,
//	)
func SetupTestDB(t *testing.T, records ...model.AnalysisRecord) *TestDB {
	t.Helper()

	store, err := storage.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	db := &TestDB{
		Storage: store,
		t:       t,
	}
	db.Seed(records...)

	return db
}

// Seed saves records in order, so the last one is the newest.
func (db *TestDB) Seed(records ...model.AnalysisRecord) {
	db.t.Helper()

	ctx := context.Background()
	for i := range records {
		record := records[i]
		if err := db.Storage.SaveAnalysis(ctx, &record); err != nil {
			db.t.Fatalf("failed to seed analysis %q: %v", record.FileName, err)
		}
		db.Records = append(db.Records, record)
	}
}

// MustList returns up to limit records, newest first, or fails the test.
func (db *TestDB) MustList(limit int) []model.AnalysisRecord {
	db.t.Helper()

	records, err := db.Storage.ListAnalyses(context.Background(), limit)
	if err != nil {
		db.t.Fatalf("failed to list analyses: %v", err)
	}
	return records
}
