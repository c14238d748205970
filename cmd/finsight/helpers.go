package main

import (
	"context"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/service"
	"github.com/Veraticus/finsight/internal/storage"
)

// newAnalyzer builds the client for the configured analysis service.
func newAnalyzer() (*api.Client, error) {
	return api.NewClient(settings.APIBaseURL)
}

// initStorage opens the history database, or returns nil when history is off.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	if !settings.HistoryEnabled {
		return nil, nil
	}
	return storage.Open(ctx, settings.StoragePath)
}

func closeStorage(store *storage.SQLiteStorage) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		common.LogError(err, "Failed to close history database", nil)
	}
}

// historyStore hides a nil store behind a nil interface.
func historyStore(store *storage.SQLiteStorage) service.HistoryStore {
	if store == nil {
		return nil
	}
	return store
}
