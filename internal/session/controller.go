package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/finsight/internal/api"
	"github.com/Veraticus/finsight/internal/model"
)

// Controller owns the page state. It is not safe for concurrent use; callers drive
// it from a single event loop.
type Controller struct {
	selected *model.UploadedFile
	state    State
	inFlight int
}

// NewController returns a controller in the idle state.
func NewController() *Controller {
	return &Controller{}
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	s := c.state
	if s.Result != nil {
		r := s.Result.Clone()
		s.Result = &r
	}
	return s
}

// Status returns the current phase.
func (c *Controller) Status() Status {
	return c.state.Status
}

// Loading reports whether an exchange is in flight.
func (c *Controller) Loading() bool {
	return c.state.Status == StatusLoading
}

// InFlight returns the number of exchanges started and not yet resolved.
func (c *Controller) InFlight() int {
	return c.inFlight
}

// Selected returns the file chosen for submission, if any.
func (c *Controller) Selected() (model.UploadedFile, bool) {
	if c.selected == nil {
		return model.UploadedFile{}, false
	}
	return *c.selected, true
}

// Select chooses a file for submission. Files that are not CSV are ignored
// without surfacing an error, as are selections while loading or showing a result.
func (c *Controller) Select(file model.UploadedFile) bool {
	if c.state.Status == StatusLoading || c.state.Status == StatusSuccess {
		return false
	}
	if !file.IsCSV() {
		slog.Debug("Ignoring non-CSV selection", "file", file.Name, "media_type", file.MediaType)
		return false
	}

	c.selected = &file
	slog.Debug("File selected", "file", file.Name, "bytes", file.Size())
	return true
}

// ClearSelection drops the selected file.
func (c *Controller) ClearSelection() {
	if c.state.Status == StatusLoading {
		return
	}
	c.selected = nil
}

// Submit moves to loading and returns the file to send. It returns false when
// there is nothing to submit or an exchange is already in flight.
func (c *Controller) Submit() (model.UploadedFile, bool) {
	if c.selected == nil {
		return model.UploadedFile{}, false
	}
	switch c.state.Status {
	case StatusLoading, StatusSuccess:
		return model.UploadedFile{}, false
	}

	c.transition(State{Status: StatusLoading})
	c.inFlight++
	return *c.selected, true
}

// Resolve applies the outcome of the in-flight exchange and returns the
// notification to raise. It does nothing unless an exchange is in flight.
func (c *Controller) Resolve(result model.AnalysisResult, err error) (Notification, bool) {
	if c.state.Status != StatusLoading {
		return Notification{}, false
	}
	c.inFlight--

	if err != nil {
		message := ErrorMessage(err)
		c.transition(State{Status: StatusFailure, Error: message})
		return Notification{
			Title:       TitleFailed,
			Description: message,
			Variant:     VariantDestructive,
		}, true
	}

	r := result.Clone()
	c.transition(State{Status: StatusSuccess, Result: &r})
	return Notification{
		Title:       TitleComplete,
		Description: fmt.Sprintf("Risk level: %s", r.RiskLevel.Upper()),
	}, true
}

// Reset discards the result, any error and the selection, returning to idle.
func (c *Controller) Reset() {
	if c.state.Status == StatusLoading {
		return
	}
	c.selected = nil
	c.transition(State{Status: StatusIdle})
}

// DismissError clears a displayed error. A displayed result is left alone.
func (c *Controller) DismissError() {
	if c.state.Status != StatusFailure {
		return
	}
	c.transition(State{Status: StatusIdle})
}

// Run submits the selected file, waits for the analyzer and resolves the outcome.
func (c *Controller) Run(ctx context.Context, analyzer api.Analyzer) (Notification, bool) {
	file, ok := c.Submit()
	if !ok {
		return Notification{}, false
	}

	result, err := analyzer.Analyze(ctx, file)
	return c.Resolve(result, err)
}

// ErrorMessage converts an exchange failure into the text shown to the user.
func ErrorMessage(err error) string {
	var analysisErr *api.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Message != "" {
		return analysisErr.Message
	}
	return api.MessageAnalysisFailed
}

func (c *Controller) transition(next State) {
	slog.Debug("Session transition",
		"from", c.state.Status.String(),
		"to", next.Status.String())
	c.state = next
}
