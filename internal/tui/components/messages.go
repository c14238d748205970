package components

// FileChosenMsg is sent when the user confirms a path on the upload surface.
type FileChosenMsg struct {
	Path string
}

// ToastExpiredMsg is sent when a toast's display time has elapsed.
type ToastExpiredMsg struct {
	ID int
}
