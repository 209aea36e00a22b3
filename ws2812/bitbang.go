package ws2812

import "github.com/tinygo-org/neopixel/pixel"

// Bitbang generates the waveform in software on a GPIO pin.
//
// Each bit is paced against a Counter: the pin goes high, the CPU spins until
// the high time has elapsed, drops the pin and spins until the bit period is
// over. Preemption is disabled for the whole of each pixel so no interrupt can
// stretch a high pulse; the short gap between pixels is tolerated by the LEDs.
type Bitbang struct {
	pin   Pin
	guard Guard
	w     waiter
	ticks Ticks
}

var _ Channel = (*Bitbang)(nil)

// NewBitbang returns a Bitbang channel on pin timed by counter. guard may be
// nil when nothing can preempt the caller. It fails with ErrResolution when
// counter runs too slow for timing, or when a reset would overflow the
// counter range.
func NewBitbang(pin Pin, counter Counter, guard Guard, timing Timing) (*Bitbang, error) {
	if pin == nil || counter == nil {
		return nil, errNilPeriph
	}
	tk, err := timing.Ticks(counter.Frequency())
	if err != nil {
		return nil, err
	}
	w := newWaiter(counter)
	if tk.Reset > w.mask>>1 {
		return nil, ErrResolution
	}
	if guard == nil {
		guard = noGuard{}
	}
	pin.Low()
	return &Bitbang{pin: pin, guard: guard, w: w, ticks: tk}, nil
}

// Ticks returns the tick counts used to pace the pin.
func (b *Bitbang) Ticks() Ticks { return b.ticks }

// Transmit implements Channel. It never fails once the Bitbang is built.
func (b *Bitbang) Transmit(colors []pixel.Color, scale pixel.Brightness) error {
	var end uint32
	for _, c := range colors {
		end = b.writeWord(Word(c.Scale(scale)))
	}
	b.pin.Low()
	if len(colors) == 0 {
		end = b.w.c.Ticks()
	}
	b.w.until(end + b.ticks.Reset)
	return nil
}

// writeWord sends the top 24 bits of word and returns the tick at which the
// last bit period ends.
func (b *Bitbang) writeWord(word uint32) (end uint32) {
	state := b.guard.Disable()
	deadline := b.w.c.Ticks()
	for i := 0; i < bitsPerPixel; i++ {
		high := b.ticks.T0H
		if word&(1<<31) != 0 {
			high = b.ticks.T1H
		}
		b.pin.High()
		b.w.until(deadline + high)
		b.pin.Low()
		deadline += b.ticks.Period
		b.w.until(deadline)
		word <<= 1
	}
	b.guard.Restore(state)
	return deadline
}

type noGuard struct{}

func (noGuard) Disable() uintptr  { return 0 }
func (noGuard) Restore(_ uintptr) {}
