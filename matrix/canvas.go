package matrix

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Target is a flat pixel buffer a Canvas paints into. *Display satisfies it.
type Target interface {
	Set(index int, value byte)
	Len() int
}

type flusher interface {
	Flush() error
}

// Canvas exposes a Target as a drivers.Displayer so that tinydraw and
// tinyfont can paint onto it. Pixel (x, y) maps to index y*width + x.
type Canvas struct {
	target Target
	width  int16
	height int16
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas creates a width x height view of t. The height is clamped to
// what the target can hold.
func NewCanvas(t Target, width, height int) *Canvas {
	if width <= 0 {
		width = PanelSize
	}
	if maxHeight := t.Len() / width; height > maxHeight {
		height = maxHeight
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{target: t, width: int16(width), height: int16(height)}
}

// Canvas returns a portrait view of the whole chain with the given width.
func (d *Display) Canvas(width int) *Canvas {
	if width <= 0 {
		width = PanelSize
	}
	return NewCanvas(d, width, d.Len()/width)
}

// Size is the canvas size in pixels.
func (c *Canvas) Size() (x, y int16) {
	return c.width, c.height
}

// SetPixel lights the pixel when any colour channel is non-zero. Points
// outside the canvas are ignored.
func (c *Canvas) SetPixel(x, y int16, clr color.RGBA) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	var v byte
	if clr.R != 0 || clr.G != 0 || clr.B != 0 {
		v = 1
	}
	c.target.Set(int(y)*int(c.width)+int(x), v)
}

// Display flushes the target when it supports flushing.
func (c *Canvas) Display() error {
	if f, ok := c.target.(flusher); ok {
		return f.Flush()
	}
	return nil
}
