package ui

import (
	"image/color"

	"fyne.io/fyne/v2/canvas"
)

// GlowState drives the pulsing window border. Intensity bounces between
// GlowMin and GlowMax by GlowStep per tick.
type GlowState struct {
	Intensity  float64
	increasing bool
}

// NewGlowState starts at the dimmest intensity, brightening.
func NewGlowState() *GlowState {
	return &GlowState{Intensity: GlowMin, increasing: true}
}

// Step advances the state by one tick.
func (g *GlowState) Step() {
	if g.increasing {
		g.Intensity += GlowStep
		if g.Intensity >= GlowMax {
			g.Intensity = GlowMax
			g.increasing = false
		}
		return
	}

	g.Intensity -= GlowStep
	if g.Intensity <= GlowMin {
		g.Intensity = GlowMin
		g.increasing = true
	}
}

// BorderAlpha is the border stroke alpha for the current intensity.
func (g *GlowState) BorderAlpha() uint8 {
	return uint8(GlowMaxAlpha * g.Intensity)
}

// BorderColor is the neon color at the current border alpha.
func (g *GlowState) BorderColor() color.NRGBA {
	c := ColorNeon
	c.A = g.BorderAlpha()
	return c
}

func newGlowBorder(state *GlowState) *canvas.Rectangle {
	border := canvas.NewRectangle(ColorTransparent)
	border.StrokeColor = state.BorderColor()
	border.StrokeWidth = BorderStrokeWidth
	border.CornerRadius = BorderRadius
	return border
}
