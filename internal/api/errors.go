package api

import (
	"fmt"

	"github.com/Veraticus/finsight/internal/common"
)

// Messages shown to the user when the server does not supply one.
const (
	MessageNetworkError   = "Network error"
	MessageAnalysisFailed = "Failed to analyze stock data"
	messageInvalidBody    = "Invalid response from analysis service"
)

// ErrorKind distinguishes the ways an exchange can fail.
type ErrorKind int

// Error kinds.
const (
	KindTransport ErrorKind = iota
	KindProtocol
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// AnalysisError is the single error type returned by Client.Analyze.
// Message is what the user sees; Err keeps the underlying cause for logs.
type AnalysisError struct {
	Err        error
	Message    string
	Kind       ErrorKind
	StatusCode int
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is matches the common sentinel for the error's kind.
func (e *AnalysisError) Is(target error) bool {
	switch e.Kind {
	case KindTransport:
		return target == common.ErrTransport
	case KindProtocol:
		return target == common.ErrProtocol
	case KindDecode:
		return target == common.ErrDecode
	}
	return false
}

func transportError(err error) *AnalysisError {
	return &AnalysisError{
		Kind:    KindTransport,
		Message: MessageNetworkError,
		Err:     err,
	}
}

func protocolError(status int, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Kind:       KindProtocol,
		Message:    message,
		StatusCode: status,
		Err:        cause,
	}
}

func decodeError(status int, err error) *AnalysisError {
	return &AnalysisError{
		Kind:       KindDecode,
		Message:    fmt.Sprintf("%s: %v", messageInvalidBody, err),
		StatusCode: status,
		Err:        err,
	}
}
