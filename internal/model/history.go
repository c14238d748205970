package model

import "time"

// AnalysisRecord is a resolved exchange kept in the local history.
type AnalysisRecord struct {
	CreatedAt    time.Time
	ID           string
	FileName     string
	RiskLevel    RiskLevel
	ErrorMessage string
	FeaturesUsed []string
	FileSize     int64
}

// Succeeded reports whether the exchange produced a result.
func (r AnalysisRecord) Succeeded() bool {
	return r.ErrorMessage == ""
}

// NewAnalysisRecord builds a history record for a resolved exchange. Exactly one of
// result and errMessage should be set.
func NewAnalysisRecord(file UploadedFile, result *AnalysisResult, errMessage string) AnalysisRecord {
	record := AnalysisRecord{
		FileName:     file.Name,
		FileSize:     int64(file.Size()),
		ErrorMessage: errMessage,
	}
	if result != nil && errMessage == "" {
		record.RiskLevel = result.RiskLevel
		record.FeaturesUsed = append([]string(nil), result.FeaturesUsed...)
	}
	return record
}
