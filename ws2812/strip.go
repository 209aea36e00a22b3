package ws2812

import (
	"image/color"

	"tinygo.org/x/drivers"

	"github.com/tinygo-org/neopixel/pixel"
)

// Strip is a frame buffer for a chain of LEDs. It is a one row display, so
// code written against drivers.Displayer can draw on it.
type Strip struct {
	ch         Channel
	buf        []pixel.Color
	brightness pixel.Brightness
}

var _ drivers.Displayer = (*Strip)(nil)

// NewStrip returns a Strip of n pixels at full brightness, all off.
func NewStrip(ch Channel, n int) *Strip {
	return &Strip{
		ch:         ch,
		buf:        make([]pixel.Color, n),
		brightness: pixel.Full,
	}
}

// Pixels returns the frame buffer. Changes show on the next Display.
func (s *Strip) Pixels() []pixel.Color { return s.buf }

// SetBrightness sets the dimming applied on Display.
func (s *Strip) SetBrightness(b pixel.Brightness) { s.brightness = b }

// Brightness returns the dimming applied on Display.
func (s *Strip) Brightness() pixel.Brightness { return s.brightness }

// Size implements drivers.Displayer.
func (s *Strip) Size() (x, y int16) { return int16(len(s.buf)), 1 }

// SetPixel implements drivers.Displayer. Coordinates outside the strip are
// ignored.
func (s *Strip) SetPixel(x, y int16, c color.RGBA) {
	if y != 0 || x < 0 || int(x) >= len(s.buf) {
		return
	}
	s.buf[x] = pixel.Color{R: c.R, G: c.G, B: c.B}
}

// Display implements drivers.Displayer by transmitting the frame buffer.
func (s *Strip) Display() error {
	return s.ch.Transmit(s.buf, s.brightness)
}

// Clear turns every pixel off in the frame buffer.
func (s *Strip) Clear() {
	for i := range s.buf {
		s.buf[i] = pixel.Black
	}
}
