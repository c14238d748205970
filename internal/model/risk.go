// Package model defines the core domain models used throughout the application.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RiskLevel classifies the volatility profile of an analyzed stock.
type RiskLevel string

// Risk level constants.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// ErrUnknownRiskLevel is returned when a risk level outside the known set is decoded.
var ErrUnknownRiskLevel = errors.New("unknown risk level")

// ParseRiskLevel validates a raw risk level string.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch level := RiskLevel(s); level {
	case RiskLow, RiskMedium, RiskHigh:
		return level, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRiskLevel, s)
	}
}

// UnmarshalJSON rejects anything that is not one of the three known levels.
func (r *RiskLevel) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("risk_level must be a string: %w", err)
	}

	level, err := ParseRiskLevel(raw)
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// Valid reports whether the level is one of the known values.
func (r RiskLevel) Valid() bool {
	_, err := ParseRiskLevel(string(r))
	return err == nil
}

// Upper returns the level as shown in notifications, e.g. "HIGH".
func (r RiskLevel) Upper() string {
	return strings.ToUpper(string(r))
}

// AnalysisResult is the decoded body of a successful analysis response.
type AnalysisResult struct {
	RiskLevel    RiskLevel `json:"risk_level"`
	FeaturesUsed []string  `json:"features_used"`
}

// Clone returns a copy that shares no memory with r.
func (r AnalysisResult) Clone() AnalysisResult {
	features := make([]string, len(r.FeaturesUsed))
	copy(features, r.FeaturesUsed)
	return AnalysisResult{
		RiskLevel:    r.RiskLevel,
		FeaturesUsed: features,
	}
}
