package testutil

import (
	"fmt"
	"time"

	"github.com/Veraticus/finsight/internal/model"
)

// DefaultFeatures is the feature list attached to successful records unless
// the caller names its own.
var DefaultFeatures = []string{"daily_return", "volatility_20d", "rsi_14"}

// RecordBuilder assembles history records with increasing timestamps.
type RecordBuilder struct {
	start   time.Time
	records []model.AnalysisRecord
}

// NewRecordBuilder starts a builder whose first record is dated 2024-01-02 09:30 UTC.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		start: time.Date(2024, time.January, 2, 9, 30, 0, 0, time.UTC),
	}
}

// WithSuccess adds a record for an analysis that returned level.
func (b *RecordBuilder) WithSuccess(name string, level model.RiskLevel, features ...string) *RecordBuilder {
	if len(features) == 0 {
		features = DefaultFeatures
	}
	return b.add(model.AnalysisRecord{
		FileName:     name,
		RiskLevel:    level,
		FeaturesUsed: append([]string(nil), features...),
	})
}

// WithFailure adds a record for an analysis that failed with message.
func (b *RecordBuilder) WithFailure(name, message string) *RecordBuilder {
	return b.add(model.AnalysisRecord{
		FileName:     name,
		ErrorMessage: message,
	})
}

// Records returns the built records, oldest first.
func (b *RecordBuilder) Records() []model.AnalysisRecord {
	return append([]model.AnalysisRecord(nil), b.records...)
}

func (b *RecordBuilder) add(record model.AnalysisRecord) *RecordBuilder {
	n := len(b.records)
	record.ID = fmt.Sprintf("record-%03d", n+1)
	record.FileSize = int64(1024 * (n + 1))
	record.CreatedAt = b.start.Add(time.Duration(n) * time.Minute)
	b.records = append(b.records, record)
	return b
}
