package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Upload surface
	Browse key.Binding
	Submit key.Binding
	Clear  key.Binding

	// Results
	Reset   key.Binding
	Dismiss key.Binding

	// Application
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Browse: key.NewBinding(
			key.WithKeys("o", "/"),
			key.WithHelp("o", "choose file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "analyze risk"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x", "backspace"),
			key.WithHelp("x", "clear file"),
		),
		Reset: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "analyze new file"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d/Esc", "dismiss error"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Browse, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Browse, k.Submit, k.Clear},
		{k.Reset, k.Dismiss},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
