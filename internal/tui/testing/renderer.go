// Package testing provides test utilities for TUI components.
package testing

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer drives a Bubble Tea model without a terminal and records
// what it saw.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Messages contains every message delivered to the model
	Messages []tea.Msg
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Update sends a message to the model and renders the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.Messages = append(r.Messages, msg)

	newModel, cmd := model.Update(msg)
	r.Output = newModel.View()

	return newModel, cmd
}

// Drain runs cmd, feeds every message it yields back into the model and
// repeats for the commands those updates return. Batches are flattened.
// Messages matching skip are dropped, which keeps timers and spinners from
// blocking the test.
func (r *TestRenderer) Drain(model tea.Model, cmd tea.Cmd, skip func(tea.Msg) bool) tea.Model {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil || (skip != nil && skip(msg)) {
			continue
		}

		var follow tea.Cmd
		model, follow = r.Update(model, msg)
		queue = append(queue, follow)
	}
	return model
}

// IsAnimationMsg reports whether msg only drives an animation, such as a
// cursor blink or spinner frame. Pass it to Drain to skip them.
func IsAnimationMsg(msg tea.Msg) bool {
	name := fmt.Sprintf("%T", msg)
	return strings.HasPrefix(name, "cursor.") || strings.HasPrefix(name, "spinner.")
}
