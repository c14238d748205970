package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/finsight/internal/common"
	"github.com/Veraticus/finsight/internal/model"
	"github.com/google/uuid"
)

// SaveAnalysis records a resolved exchange. ID and CreatedAt are filled in when empty.
func (s *SQLiteStorage) SaveAnalysis(ctx context.Context, record *model.AnalysisRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	var features sql.NullString
	if record.Succeeded() {
		encoded, err := json.Marshal(nonNil(record.FeaturesUsed))
		if err != nil {
			return fmt.Errorf("failed to encode features: %w", err)
		}
		features = sql.NullString{String: string(encoded), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (
			id, file_name, file_size, risk_level,
			features_used, error_message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID,
		record.FileName,
		record.FileSize,
		nullString(string(record.RiskLevel)),
		features,
		nullString(record.ErrorMessage),
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}

	return nil
}

// GetAnalysis returns a single record by id.
func (s *SQLiteStorage) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, file_name, file_size, risk_level, features_used, error_message, created_at
		FROM analyses
		WHERE id = ?
	`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListAnalyses returns the most recent records, newest first.
func (s *SQLiteStorage) ListAnalyses(ctx context.Context, limit int) ([]model.AnalysisRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name, file_size, risk_level, features_used, error_message, created_at
		FROM analyses
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.AnalysisRecord
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return records, nil
}

// ClearAnalyses deletes every record and returns how many were removed.
func (s *SQLiteStorage) ClearAnalyses(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear analyses: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared analyses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.AnalysisRecord, error) {
	var (
		record    model.AnalysisRecord
		riskLevel sql.NullString
		features  sql.NullString
		errMsg    sql.NullString
	)

	if err := row.Scan(
		&record.ID,
		&record.FileName,
		&record.FileSize,
		&riskLevel,
		&features,
		&errMsg,
		&record.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	record.RiskLevel = model.RiskLevel(riskLevel.String)
	record.ErrorMessage = errMsg.String

	if features.Valid && features.String != "" {
		if err := json.Unmarshal([]byte(features.String), &record.FeaturesUsed); err != nil {
			return nil, fmt.Errorf("failed to decode features for %s: %w", record.ID, err)
		}
	}

	return &record, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
