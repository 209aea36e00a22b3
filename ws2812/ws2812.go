// Package ws2812 serializes colors onto the single-wire NRZ protocol spoken by
// WS2812/WS2812B ("NeoPixel") LEDs.
//
// Two strategies produce the waveform. [Bitbang] drives a GPIO pin directly,
// pacing every edge against a free-running hardware counter with interrupts
// disabled. [StateMachine] feeds 24-bit words into a hardware queue, such as
// an RP2040 PIO TX FIFO, and lets the peripheral shape the pulses. Both
// implement [Channel].
//
// Colors go out green, red, blue, most significant bit first. After the last
// bit the line is held low for the Timing's Reset so the chain latches.
package ws2812

import (
	"errors"

	"periph.io/x/conn/v3/physic"

	"github.com/tinygo-org/neopixel/pixel"
)

const bitsPerPixel = 24

var (
	ErrTiming       = errors.New("ws2812: invalid timing profile")
	ErrResolution   = errors.New("ws2812: time base too coarse for timing profile")
	ErrQueueBlocked = errors.New("ws2812: queue blocked")
	errNilPeriph    = errors.New("ws2812: nil pin, queue or counter")
)

// Channel transmits a frame of colors to a chain of LEDs.
type Channel interface {
	// Transmit sends colors in chain order, each dimmed by scale, and returns
	// once the chain has latched them.
	Transmit(colors []pixel.Color, scale pixel.Brightness) error
}

// Pin is an output line. machine.Pin satisfies it.
type Pin interface {
	High()
	Low()
}

// Counter is a free-running hardware tick counter.
type Counter interface {
	// Ticks returns the current count. The count increases and wraps modulo
	// 2^Width.
	Ticks() uint32
	// Frequency returns the tick rate.
	Frequency() physic.Frequency
	// Width returns the number of significant bits of Ticks, at most 32.
	Width() uint8
}

// Guard brackets code that must not be preempted.
type Guard interface {
	Disable() uintptr
	Restore(state uintptr)
}

// Word packs c as sent on the wire: green in the top byte, then red, then
// blue, leaving the low byte zero for a left-shifting 24-bit transfer.
func Word(c pixel.Color) uint32 {
	return uint32(c.G)<<24 | uint32(c.R)<<16 | uint32(c.B)<<8
}

// waiter busy-waits on a Counter.
type waiter struct {
	c    Counter
	mask uint32
}

func newWaiter(c Counter) waiter {
	w := c.Width()
	if w == 0 || w > 32 {
		w = 32
	}
	return waiter{c: c, mask: uint32(1<<w - 1)}
}

// until spins until the counter reaches deadline. Deadlines up to half the
// counter range in the past count as reached.
func (w waiter) until(deadline uint32) {
	for {
		left := (deadline - w.c.Ticks()) & w.mask
		if left == 0 || left > w.mask>>1 {
			return
		}
	}
}

// elapsed returns the ticks since start, modulo the counter width.
func (w waiter) elapsed(start uint32) uint32 {
	return (w.c.Ticks() - start) & w.mask
}
