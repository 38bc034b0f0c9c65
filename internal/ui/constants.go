package ui

import (
	"image/color"
	"time"
)

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Window
const (
	WindowWidth  float32 = 480
	WindowHeight float32 = 360
)

// Palette
var (
	ColorBackgroundTop    = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	ColorBackgroundBottom = color.NRGBA{R: 0x00, G: 0x11, B: 0x33, A: 0xff}
	ColorNeon             = color.NRGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0xff}
	ColorButtonStart      = color.NRGBA{R: 0x00, G: 0x22, B: 0x44, A: 0xff}
	ColorButtonEnd        = color.NRGBA{R: 0x00, G: 0x44, B: 0xff, A: 0xff}
	ColorButtonPressed    = color.NRGBA{R: 0x00, G: 0x33, B: 0xaa, A: 0xff}
	ColorTitleDim         = color.NRGBA{R: 0x00, G: 0x66, B: 0x99, A: 0xff}
	ColorFooter           = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	ColorFadeOverlay      = color.NRGBA{R: 0x00, G: 0x08, B: 0x1a, A: 0xff}
	ColorTransparent      = color.NRGBA{}
)

// Text
const (
	TitleTextSize  float32 = 20
	FooterTextSize float32 = 9
	FooterText             = "Discord: Tan_12931"
)

// Border glow: intensity oscillates between the bounds by GlowStep every tick
const (
	GlowTickInterval          = 40 * time.Millisecond
	GlowStep                  = 0.02
	GlowMin                   = 0.4
	GlowMax                   = 1.0
	GlowMaxAlpha              = 80
	BorderStrokeWidth float32 = 6
	BorderRadius      float32 = 15
	BorderInset       float32 = 3
)

// Button glow
const (
	ButtonHeight       float32 = 50
	ButtonRadius       float32 = 12
	ButtonGlowDuration         = 1000 * time.Millisecond
	ButtonGlowMin      float32 = 20
	ButtonGlowMax      float32 = 35
	ButtonGlowScale    float32 = 5 // blur radius to halo stroke width
)

// Animations and transitions
const (
	WindowFadeInDuration = 1200 * time.Millisecond
	TitlePulseDuration   = 1500 * time.Millisecond
	ButtonFadeDuration   = 600 * time.Millisecond
	NextStepDelay        = 400 * time.Millisecond
)

// Settings dialog sizing
const (
	SettingsDialogWidth  float32 = 440
	SettingsDialogHeight float32 = 300
)
