package ui

// Package ui contains the Fyne-based installer window. It sequences the
// Get Started, Download, Extract and Done steps, renders the animated
// presentation (gradient, glowing border, pulsing title, fading buttons),
// and marshals service callbacks onto the UI goroutine. All UI strings are
// localized via Localization.
