package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

// Notifier reports flow outcomes to the user.
type Notifier interface {
	ShowError(err error)
	ShowSuccess(title, message string)
}

// dialogNotifier shows one modal dialog per outcome on the installer window.
type dialogNotifier struct {
	window fyne.Window
}

// NewDialogNotifier creates the default Notifier for a window.
func NewDialogNotifier(window fyne.Window) Notifier {
	return &dialogNotifier{window: window}
}

func (n *dialogNotifier) ShowError(err error) {
	dialog.ShowError(err, n.window)
}

func (n *dialogNotifier) ShowSuccess(title, message string) {
	dialog.ShowInformation(title, message, n.window)
}
