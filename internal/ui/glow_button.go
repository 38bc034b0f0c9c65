package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// GlowButton is a high-importance button wrapped in a pulsing neon halo.
// An overlay in the window's mid gradient color hides the button until
// FadeIn runs.
type GlowButton struct {
	widget.BaseWidget

	button  *widget.Button
	halo    *canvas.Rectangle
	overlay *canvas.Rectangle

	glowAnim *fyne.Animation
	fadeAnim *fyne.Animation
}

// NewGlowButton creates a hidden glow button; call FadeIn to reveal it.
func NewGlowButton(text string, onTapped func()) *GlowButton {
	b := &GlowButton{
		button:  widget.NewButton(text, onTapped),
		halo:    canvas.NewRectangle(ColorTransparent),
		overlay: canvas.NewRectangle(ColorFadeOverlay),
	}
	b.button.Importance = widget.HighImportance

	b.halo.StrokeColor = ColorNeon
	b.halo.StrokeWidth = ButtonGlowMin / ButtonGlowScale
	b.halo.CornerRadius = ButtonRadius
	b.overlay.CornerRadius = ButtonRadius

	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *GlowButton) CreateRenderer() fyne.WidgetRenderer {
	sized := container.New(layout.NewGridWrapLayout(fyne.NewSize(WindowWidth*0.75, ButtonHeight)), b.button)
	return widget.NewSimpleRenderer(container.NewStack(b.halo, container.NewCenter(sized), b.overlay))
}

// SetText updates the button label.
func (b *GlowButton) SetText(text string) {
	b.button.SetText(text)
}

// Text returns the button label.
func (b *GlowButton) Text() string {
	return b.button.Text
}

// Enable allows taps.
func (b *GlowButton) Enable() {
	b.button.Enable()
}

// Disable blocks taps.
func (b *GlowButton) Disable() {
	b.button.Disable()
}

// Disabled reports whether taps are blocked.
func (b *GlowButton) Disabled() bool {
	return b.button.Disabled()
}

// FadeIn clears the overlay over ButtonFadeDuration and starts the halo pulse.
func (b *GlowButton) FadeIn() {
	if b.fadeAnim != nil {
		b.fadeAnim.Stop()
	}
	b.fadeAnim = canvas.NewColorRGBAAnimation(ColorFadeOverlay, ColorTransparent, ButtonFadeDuration, func(c color.Color) {
		b.overlay.FillColor = c
		b.overlay.Refresh()
	})
	b.fadeAnim.Curve = fyne.AnimationEaseInOut
	b.fadeAnim.Start()

	b.startGlow()
}

// StopAnimations halts the fade and the halo pulse.
func (b *GlowButton) StopAnimations() {
	if b.fadeAnim != nil {
		b.fadeAnim.Stop()
	}
	if b.glowAnim != nil {
		b.glowAnim.Stop()
	}
}

func (b *GlowButton) startGlow() {
	if b.glowAnim != nil {
		return
	}
	b.glowAnim = fyne.NewAnimation(ButtonGlowDuration, func(p float32) {
		radius := ButtonGlowMin + (ButtonGlowMax-ButtonGlowMin)*p
		b.halo.StrokeWidth = radius / ButtonGlowScale
		b.halo.StrokeColor = color.NRGBA{R: ColorNeon.R, G: ColorNeon.G, B: ColorNeon.B, A: uint8(96 + 159*p)}
		b.halo.Refresh()
	})
	b.glowAnim.AutoReverse = true
	b.glowAnim.RepeatCount = fyne.AnimationRepeatForever
	b.glowAnim.Start()
}
