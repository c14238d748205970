package components

import (
	"time"

	"github.com/Veraticus/finsight/internal/session"
	"github.com/Veraticus/finsight/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultToastDuration is how long a notification stays on screen.
const DefaultToastDuration = 4 * time.Second

// ToastModel shows one transient notification at a time.
type ToastModel struct {
	theme    themes.Theme
	current  *session.Notification
	duration time.Duration
	id       int
}

// NewToastModel creates an empty toast area.
func NewToastModel(theme themes.Theme, duration time.Duration) ToastModel {
	if duration <= 0 {
		duration = DefaultToastDuration
	}
	return ToastModel{theme: theme, duration: duration}
}

// Show replaces the current notification and schedules its removal.
func (m *ToastModel) Show(n session.Notification) tea.Cmd {
	m.id++
	m.current = &n

	id := m.id
	return tea.Tick(m.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Update handles expiry. Expiry of an already replaced toast is ignored.
func (m ToastModel) Update(msg tea.Msg) (ToastModel, tea.Cmd) {
	if msg, ok := msg.(ToastExpiredMsg); ok && msg.ID == m.id {
		m.current = nil
	}
	return m, nil
}

// Current returns the visible notification.
func (m ToastModel) Current() (session.Notification, bool) {
	if m.current == nil {
		return session.Notification{}, false
	}
	return *m.current, true
}

// View renders the toast, or nothing when none is visible.
func (m ToastModel) View() string {
	if m.current == nil {
		return ""
	}

	accent := m.theme.Success
	title := m.theme.StatusSuccess
	if m.current.Variant == session.VariantDestructive {
		accent = m.theme.Error
		title = m.theme.StatusError
	}

	return m.theme.Toast.
		BorderForeground(accent).
		Render(lipgloss.JoinVertical(
			lipgloss.Left,
			title.Render(m.current.Title),
			m.theme.Normal.Render(m.current.Description),
		))
}
