// Package session holds the page-level upload/result state machine.
package session

import "github.com/Veraticus/finsight/internal/model"

// Status is the phase the page is in.
type Status int

// Status constants.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// State is a snapshot of the page state. Result is set only in StatusSuccess,
// Error only in StatusFailure.
type State struct {
	Result *model.AnalysisResult
	Error  string
	Status Status
}

// Variant selects the notification style.
type Variant int

// Notification variants.
const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Notification is a transient message raised when an exchange resolves.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
}

// Notification titles.
const (
	TitleComplete = "Analysis Complete"
	TitleFailed   = "Analysis Failed"
)
