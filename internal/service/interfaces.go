// Package service defines the interfaces shared between the UI, the CLI and storage.
package service

import (
	"context"

	"github.com/Veraticus/finsight/internal/model"
)

// HistoryStore persists resolved analysis exchanges.
type HistoryStore interface {
	SaveAnalysis(ctx context.Context, record *model.AnalysisRecord) error
	ListAnalyses(ctx context.Context, limit int) ([]model.AnalysisRecord, error)
}
