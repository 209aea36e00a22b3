// Package pixel holds the color math for addressable RGB LEDs: the 8-bit
// Color triplet, brightness scaling and the hue generators used by the
// animation sequencers.
//
// Everything here is integer arithmetic on bytes so it runs the same on the
// host and on a microcontroller without an FPU.
package pixel

import "image/color"

// Color is an 8-bit per channel RGB triplet.
type Color struct {
	R, G, B uint8
}

// Black is the zero Color.
var Black Color

// RGB returns a Color from its three channels.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// RGBA implements [color.Color]. The alpha channel is always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// FromColor converts any [color.Color] to a Color by dropping the low byte of
// each 16-bit channel. Alpha is ignored.
func FromColor(c color.Color) Color {
	if px, ok := c.(Color); ok {
		return px
	}
	r, g, b, _ := c.RGBA()
	return Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Brightness is a multiplicative dimming factor. Full leaves colors untouched
// and 0 turns every channel off.
type Brightness uint8

// Full brightness.
const Full Brightness = 255

// Scale dims c by b. Each channel is computed as ch*(b+1)/256 in 16-bit
// arithmetic so the result never exceeds the input channel.
func (c Color) Scale(b Brightness) Color {
	if b == Full {
		return c
	}
	m := uint16(b) + 1
	return Color{
		R: uint8(uint16(c.R) * m >> 8),
		G: uint8(uint16(c.G) * m >> 8),
		B: uint8(uint16(c.B) * m >> 8),
	}
}

// ScaleAll writes the colors of src dimmed by b into dst and returns the
// number of colors written, which is the minimum of both lengths.
// dst and src may be the same slice.
func ScaleAll(dst, src []Color, b Brightness) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i].Scale(b)
	}
	return n
}
