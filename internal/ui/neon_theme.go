package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// NeonTheme is a dark theme with the installer's blue neon palette.
// It ignores the requested variant; the window is always dark.
type NeonTheme struct{}

// NewNeonTheme creates a new neon theme
func NewNeonTheme() fyne.Theme {
	return &NeonTheme{}
}

// Color returns theme colors
func (t *NeonTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return ColorBackgroundTop
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNamePrimary:
		return ColorButtonEnd
	case theme.ColorNameButton:
		return ColorButtonStart
	case theme.ColorNameHover:
		return color.NRGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0x40}
	case theme.ColorNamePressed:
		return ColorButtonPressed
	case theme.ColorNameFocus:
		return color.NRGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0x60}
	case theme.ColorNameDisabledButton:
		return color.NRGBA{R: 0x11, G: 0x1a, B: 0x26, A: 0xff}
	case theme.ColorNameDisabled:
		return color.NRGBA{R: 0x66, G: 0x77, B: 0x88, A: 0xff}
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 46, G: 160, B: 67, A: 255}
	case theme.ColorNameError:
		return color.NRGBA{R: 183, G: 28, B: 28, A: 255}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *NeonTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *NeonTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *NeonTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameHeadingText:
		return TitleTextSize
	case theme.SizeNameCaptionText:
		return FooterTextSize
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return ButtonRadius
	}

	return theme.DefaultTheme().Size(name)
}
