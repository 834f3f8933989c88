// Package display draws ranging results on small monochrome displays.
package display

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 0}
)

// Screen exposes the few drawing primitives the dashboard needs on top of a
// TinyGo display driver.
type Screen struct {
	d        drivers.Displayer
	font     tinyfont.Fonter
	baseline int16
	fg, bg   color.RGBA
}

func NewScreen(d drivers.Displayer) *Screen {
	return &Screen{
		d:        d,
		font:     &proggy.TinySZ8pt7b,
		baseline: 7,
		fg:       white,
		bg:       black,
	}
}

func (s *Screen) Size() (int16, int16) {
	return s.d.Size()
}

// DrawString writes text with its top-left corner at x, y.
func (s *Screen) DrawString(text string, x, y int16) {
	tinyfont.WriteLine(s.d, s.font, x, y+s.baseline, text, s.fg)
}

func (s *Screen) ClearRegion(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	tinydraw.FilledRectangle(s.d, x, y, w, h, s.bg)
}

func (s *Screen) DrawFilledRect(x, y, w, h int16) {
	if w <= 0 || h <= 0 {
		return
	}
	tinydraw.FilledRectangle(s.d, x, y, w, h, s.fg)
}

// Flush pushes the buffer to the panel.
func (s *Screen) Flush() error {
	return s.d.Display()
}
