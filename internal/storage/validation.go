// Package storage provides the data persistence layer for analysis history.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrInvalidRecord = errors.New("invalid analysis record")
	ErrInvalidLimit  = errors.New("limit must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecord checks that a record holds exactly one of a result or an error.
func validateRecord(record *model.AnalysisRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(record.FileName) == "" {
		return fmt.Errorf("%w: missing file name", ErrInvalidRecord)
	}
	if record.FileSize < 0 {
		return fmt.Errorf("%w: negative file size", ErrInvalidRecord)
	}

	hasResult := record.RiskLevel != ""
	hasError := record.ErrorMessage != ""
	switch {
	case hasResult && hasError:
		return fmt.Errorf("%w: record has both a risk level and an error", ErrInvalidRecord)
	case !hasResult && !hasError:
		return fmt.Errorf("%w: record has neither a risk level nor an error", ErrInvalidRecord)
	case hasResult && !record.RiskLevel.Valid():
		return fmt.Errorf("%w: risk level %q", ErrInvalidRecord, record.RiskLevel)
	}
	return nil
}
