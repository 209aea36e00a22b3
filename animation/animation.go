// Package animation paces a Sequencer onto a display one frame at a time.
package animation

import (
	"image/color"
	"time"

	"tinygo.org/x/drivers"

	"github.com/tinygo-org/neopixel/pixel"
	"github.com/tinygo-org/neopixel/sequence"
)

// Loop shows consecutive phases of Sequencer on Display, Interval apart.
//
// Display is usually a *ws2812.Strip, but any drivers.Displayer works. Its
// pixels are filled row by row in sequence order.
type Loop struct {
	Display   drivers.Displayer
	Sequencer sequence.Sequencer
	// Phase is the phase of the next frame.
	Phase    sequence.Phase
	Interval time.Duration
	// Sleep waits between frames. Nil means time.Sleep.
	Sleep func(time.Duration)
	// Frames counts the frames transmitted so far.
	Frames uint32

	buf []pixel.Color
}

// Step computes and transmits one frame. The phase only advances when the
// frame was transmitted.
func (l *Loop) Step() error {
	w, h := l.Display.Size()
	if w < 0 || h < 0 {
		w, h = 0, 0
	}
	n := int(w) * int(h)
	if cap(l.buf) < n {
		l.buf = make([]pixel.Color, n)
	}
	l.buf = l.buf[:n]

	l.Sequencer.Fill(l.Phase, l.buf)
	for i, c := range l.buf {
		x, y := int16(i%int(w)), int16(i/int(w))
		l.Display.SetPixel(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	}
	if err := l.Display.Display(); err != nil {
		return err
	}
	l.Phase.Advance()
	l.Frames++
	return nil
}

// Run steps forever. It returns only when a frame fails to transmit, and the
// display is not touched after that.
func (l *Loop) Run() error {
	sleep := l.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for {
		if err := l.Step(); err != nil {
			return err
		}
		sleep(l.Interval)
	}
}
