package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalysisResult_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  error
		want     AnalysisResult
		anyError bool
	}{
		{
			name: "high risk with features",
			body: `{"risk_level":"high","features_used":["volatility","rsi"]}`,
			want: AnalysisResult{RiskLevel: RiskHigh, FeaturesUsed: []string{"volatility", "rsi"}},
		},
		{
			name: "low risk with no features",
			body: `{"risk_level":"low","features_used":[]}`,
			want: AnalysisResult{RiskLevel: RiskLow, FeaturesUsed: []string{}},
		},
		{
			name: "medium risk with features omitted",
			body: `{"risk_level":"medium"}`,
			want: AnalysisResult{RiskLevel: RiskMedium},
		},
		{
			name:    "unknown risk level",
			body:    `{"risk_level":"extreme","features_used":[]}`,
			wantErr: ErrUnknownRiskLevel,
		},
		{
			name:    "uppercase is not accepted",
			body:    `{"risk_level":"HIGH"}`,
			wantErr: ErrUnknownRiskLevel,
		},
		{
			name:     "risk level of wrong type",
			body:     `{"risk_level":3}`,
			anyError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got AnalysisResult
			err := json.Unmarshal([]byte(tt.body), &got)

			switch {
			case tt.wantErr != nil:
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.anyError:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestRiskLevel_Helpers(t *testing.T) {
	assert.True(t, RiskMedium.Valid())
	assert.False(t, RiskLevel("").Valid())
	assert.Equal(t, "HIGH", RiskHigh.Upper())
}

func TestAnalysisResult_Clone(t *testing.T) {
	orig := AnalysisResult{RiskLevel: RiskLow, FeaturesUsed: []string{"rsi"}}
	clone := orig.Clone()
	clone.FeaturesUsed[0] = "macd"

	assert.Equal(t, "rsi", orig.FeaturesUsed[0])
}
