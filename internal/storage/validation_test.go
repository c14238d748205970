package storage

import (
	"context"
	"testing"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateContext(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, validateContext(context.Background()))
	assert.NoError(t, validateContext(canceled), "a canceled context is still a context")
	//nolint:staticcheck // exercising the nil guard
	assert.ErrorIs(t, validateContext(nil), ErrNilContext)
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain", value: "finsight.db"},
		{name: "padded", value: "  finsight.db  "},
		{name: "empty", value: "", wantErr: true},
		{name: "whitespace only", value: " \t ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.value, "dbPath")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrEmptyString)
			assert.Contains(t, err.Error(), "dbPath")
		})
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		record  *model.AnalysisRecord
		name    string
		wantErr error
	}{
		{
			name:   "success record",
			record: &model.AnalysisRecord{FileName: "a.csv", RiskLevel: model.RiskMedium},
		},
		{
			name:   "failure record",
			record: &model.AnalysisRecord{FileName: "a.csv", ErrorMessage: "Network error"},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrNilParameter,
		},
		{
			name:    "missing file name",
			record:  &model.AnalysisRecord{FileName: "  ", RiskLevel: model.RiskLow},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "negative size",
			record:  &model.AnalysisRecord{FileName: "a.csv", FileSize: -1, RiskLevel: model.RiskLow},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "both outcomes",
			record:  &model.AnalysisRecord{FileName: "a.csv", RiskLevel: model.RiskLow, ErrorMessage: "boom"},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "no outcome",
			record:  &model.AnalysisRecord{FileName: "a.csv"},
			wantErr: ErrInvalidRecord,
		},
		{
			name:    "unknown risk level",
			record:  &model.AnalysisRecord{FileName: "a.csv", RiskLevel: "extreme"},
			wantErr: ErrInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
