package components

import (
	"strings"

	"github.com/Veraticus/finsight/internal/model"
	"github.com/Veraticus/finsight/internal/tui/themes"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Upload surface copy.
const (
	UploadTitle    = "Stock Data Analysis"
	UploadSubtitle = "Upload your CSV file containing stock data to reveal its risk potential"
	UploadPrompt   = "Enter the path to your CSV file"
	RequiredHint   = "Required columns: Date, Open, High, Low, Close, Volume"
	SubmitLabel    = "Analyze Risk"
	AnalyzingLabel = "Analyzing..."
)

// UploadModel is the file selection surface: a path input, the selected
// file, and the submit control.
type UploadModel struct {
	theme   themes.Theme
	file    *model.UploadedFile
	notice  string
	input   textinput.Model
	spinner spinner.Model
	width   int
	loading bool
}

// NewUploadModel creates an empty upload surface with the path input focused.
func NewUploadModel(theme themes.Theme) UploadModel {
	input := textinput.New()
	input.Placeholder = "~/data/AAPL.csv"
	input.Prompt = "› "
	input.CharLimit = 4096
	input.Width = 48
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return UploadModel{
		theme:   theme,
		input:   input,
		spinner: s,
	}
}

// Init starts the cursor blinking.
func (m UploadModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m UploadModel) Update(msg tea.Msg) (UploadModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			return m, func() tea.Msg {
				return FileChosenMsg{Path: path}
			}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Focus puts the cursor in the path input.
func (m *UploadModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur releases the path input so single-key shortcuts work.
func (m *UploadModel) Blur() {
	m.input.Blur()
}

// Focused reports whether the path input has the cursor.
func (m UploadModel) Focused() bool {
	return m.input.Focused()
}

// SetFile shows file as the current selection. Nil clears it.
func (m *UploadModel) SetFile(file *model.UploadedFile) {
	if file == nil {
		m.file = nil
		return
	}
	f := *file
	m.file = &f
	m.notice = ""
	m.input.Reset()
}

// File returns the displayed selection.
func (m UploadModel) File() (model.UploadedFile, bool) {
	if m.file == nil {
		return model.UploadedFile{}, false
	}
	return *m.file, true
}

// SetLoading switches the submit control to its busy state. Starting the
// spinner returns the command that drives it.
func (m *UploadModel) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// SetNotice shows a one-line hint under the surface, e.g. a rejected file.
func (m *UploadModel) SetNotice(notice string) {
	m.notice = notice
}

// Notice returns the current hint.
func (m UploadModel) Notice() string {
	return m.notice
}

// Resize sets the available width.
func (m *UploadModel) Resize(width int) {
	m.width = width
	m.input.Width = max(min(width-12, 64), 16)
}

// View renders the upload surface.
func (m UploadModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	sections := []string{
		m.theme.Title.Render(UploadTitle),
		m.theme.Subtitle.Render(UploadSubtitle),
	}

	if m.file == nil {
		drop := lipgloss.JoinVertical(
			lipgloss.Left,
			m.theme.Normal.Render(UploadPrompt),
			m.input.View(),
			"",
			muted.Render(RequiredHint),
		)
		sections = append(sections, m.theme.RoundedBox.Render(drop))
	} else {
		sections = append(sections, m.renderSelection(), "", m.renderSubmit())
	}

	if m.notice != "" {
		sections = append(sections, "", m.theme.StatusWarning.Render(m.notice))
	}

	box := m.theme.BorderedBox
	if m.width > 0 {
		box = box.Width(min(m.width, 80))
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m UploadModel) renderSelection() string {
	clearHint := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("x clear")
	if m.loading {
		clearHint = lipgloss.NewStyle().Foreground(m.theme.Border).Render("x clear")
	}

	info := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Bold.Render("📄 "+m.file.Name),
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.file.SizeKB()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, info, "    ", clearHint)
}

func (m UploadModel) renderSubmit() string {
	if m.loading {
		return m.theme.StatusPending.Render(m.spinner.View() + " " + AnalyzingLabel)
	}
	return m.theme.Selected.Padding(0, 2).Render(SubmitLabel) +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("  enter")
}
