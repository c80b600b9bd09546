package main

import (
	"image/color"

	"github.com/plus3/dotfall/matrix"
)

// Layout places the LEDs of a portrait chain on screen, panel 0 on top.
type Layout struct {
	Panels int
	Scale  int
	Gap    int
	Margin int
}

// Size is the window size needed to show every panel.
func (l Layout) Size() (w, h int) {
	w = 2*l.Margin + matrix.PanelSize*l.Scale
	h = 2*l.Margin + l.Panels*matrix.PanelSize*l.Scale
	if l.Panels > 1 {
		h += (l.Panels - 1) * l.Gap
	}
	return w, h
}

// Center is the screen position of the LED for field cell i.
func (l Layout) Center(i int) (x, y float32) {
	col := i % matrix.PanelSize
	row := i / matrix.PanelSize
	panel := row / matrix.PanelSize

	half := float32(l.Scale) / 2
	x = float32(l.Margin+col*l.Scale) + half
	y = float32(l.Margin+row*l.Scale+panel*l.Gap) + half
	return x, y
}

// Radius leaves a small dark ring between neighbouring LEDs.
func (l Layout) Radius() float32 {
	return float32(l.Scale) * 0.4
}

var ledOff = color.RGBA{R: 40, G: 8, B: 8, A: 255}

// ledColor shades a lit LED by chip intensity, which spans 1/32 to 31/32
// duty cycle on the real part.
func ledColor(lit bool, i matrix.Intensity) color.RGBA {
	if !lit {
		return ledOff
	}
	duty := float32(2*int(i)+1) / 32
	return color.RGBA{
		R: uint8(96 + duty*159),
		G: uint8(16 + duty*40),
		B: uint8(16 + duty*24),
		A: 255,
	}
}
