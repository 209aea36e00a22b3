// Package sequence generates the colors shown on each animation frame from a
// wrapping phase counter.
package sequence

import "github.com/tinygo-org/neopixel/pixel"

// Phase is the animation position. It wraps modulo 256.
type Phase uint8

// Advance moves p one step forward, wrapping 255 to 0.
func (p *Phase) Advance() { *p++ }

// Sequencer produces the colors of one frame.
type Sequencer interface {
	// Fill writes the colors for phase p into dst. It must not keep dst.
	Fill(p Phase, dst []pixel.Color)
}

// WheelSweep walks every pixel around [pixel.Wheel].
type WheelSweep struct {
	// Spread is the phase offset between consecutive pixels. Zero shows the
	// same color on the whole chain.
	Spread uint8
}

// Fill implements Sequencer.
func (w WheelSweep) Fill(p Phase, dst []pixel.Color) {
	pos := uint8(p)
	for i := range dst {
		dst[i] = pixel.Wheel(pos)
		pos += w.Spread
	}
}

// HSVSweep keeps saturation and value fixed and sweeps the hue with the phase.
type HSVSweep struct {
	Sat, Val uint8
	// Spread is the hue offset between consecutive pixels.
	Spread uint8
}

// Fill implements Sequencer.
func (h HSVSweep) Fill(p Phase, dst []pixel.Color) {
	c := pixel.HSV{Hue: uint8(p), Sat: h.Sat, Val: h.Val}
	for i := range dst {
		dst[i] = c.RGB()
		c.Hue += h.Spread
	}
}

// SpreadFor returns the Spread that lays one full color turn across n
// pixels. It returns 0 for chains of zero or one pixel.
func SpreadFor(n int) uint8 {
	if n <= 1 {
		return 0
	}
	if n >= 256 {
		return 1
	}
	return uint8(256 / n)
}
