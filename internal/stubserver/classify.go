package stubserver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Veraticus/finsight/internal/model"
)

// RequiredColumns must all be present in the CSV header.
var RequiredColumns = []string{"Date", "Open", "High", "Low", "Close", "Volume"}

// Volatility thresholds on the standard deviation of daily returns.
const (
	LowVolatilityLimit    = 0.01
	MediumVolatilityLimit = 0.02
)

var (
	// ErrInvalidColumns is returned when the header lacks a required column.
	ErrInvalidColumns = errors.New("invalid columns")
	// ErrInvalidPrice is returned when a Close value is not a positive number.
	ErrInvalidPrice = errors.New("invalid price")
)

// ReadCloses parses stock rows and returns the Close column in file order.
func ReadCloses(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidColumns, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, col := range RequiredColumns {
		if _, ok := index[strings.ToLower(col)]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrInvalidColumns, col)
		}
	}
	closeIdx := index["close"]

	var closes []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if closeIdx >= len(record) {
			return nil, fmt.Errorf("%w on line %d: missing Close", ErrInvalidPrice, line)
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(record[closeIdx]), 64)
		if err != nil || price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, fmt.Errorf("%w on line %d: %q", ErrInvalidPrice, line, record[closeIdx])
		}
		closes = append(closes, price)
	}

	return closes, nil
}

// DailyReturnVolatility is the sample standard deviation of close-to-close
// returns. Fewer than two returns yields zero.
func DailyReturnVolatility(closes []float64) float64 {
	if len(closes) < 3 {
		return 0
	}

	returns := make([]float64, 0, len(closes)-1)
	var sum float64
	for i := 1; i < len(closes); i++ {
		r := closes[i]/closes[i-1] - 1
		returns = append(returns, r)
		sum += r
	}

	mean := sum / float64(len(returns))
	var sq float64
	for _, r := range returns {
		sq += (r - mean) * (r - mean)
	}
	return math.Sqrt(sq / float64(len(returns)-1))
}

// Classify maps a volatility figure onto a risk level.
func Classify(volatility float64) model.RiskLevel {
	switch {
	case volatility < LowVolatilityLimit:
		return model.RiskLow
	case volatility < MediumVolatilityLimit:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}
