package ws2812

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Timing is the pulse shape of one bit on the wire plus the latch time that
// ends a frame.
type Timing struct {
	// T0H is how long the line stays high for a 0 bit.
	T0H time.Duration
	// T1H is how long the line stays high for a 1 bit.
	T1H time.Duration
	// Period is the full bit time, high plus low, for either bit value.
	Period time.Duration
	// Reset is the minimum low time after the last bit for the chain to
	// latch the new colors.
	Reset time.Duration
}

// WS2812B timing from the datasheet. Reset uses the 280µs+ figure of newer
// parts so older and newer LEDs both latch.
//
// https://cdn-shop.adafruit.com/datasheets/WS2812B.pdf
var WS2812B = Timing{
	T0H:    400 * time.Nanosecond,
	T1H:    800 * time.Nanosecond,
	Period: 1250 * time.Nanosecond,
	Reset:  300 * time.Microsecond,
}

// BitRate returns the number of bits per second on the wire.
func (t Timing) BitRate() physic.Frequency {
	if t.Period <= 0 {
		return 0
	}
	return physic.Frequency(int64(time.Second) / int64(t.Period) * int64(physic.Hertz))
}

// FrameTime returns how long a frame of n pixels occupies the wire including
// the trailing reset.
func (t Timing) FrameTime(n int) time.Duration {
	return time.Duration(n*bitsPerPixel)*t.Period + t.Reset
}

func (t Timing) valid() error {
	if t.T0H <= 0 || t.T1H <= t.T0H || t.Period <= t.T1H || t.Reset <= 0 {
		return ErrTiming
	}
	return nil
}

// Ticks is a Timing expressed in counts of a free-running counter.
type Ticks struct {
	T0H, T1H, Period, Reset uint32
}

// Ticks converts t to counts of a counter running at freq, rounding to the
// nearest tick. It fails with ErrResolution if the counter is too slow to
// tell a 0 bit from a 1 bit.
func (t Timing) Ticks(freq physic.Frequency) (Ticks, error) {
	if err := t.valid(); err != nil {
		return Ticks{}, err
	}
	hz := uint64(freq / physic.Hertz)
	if hz == 0 {
		return Ticks{}, ErrResolution
	}
	conv := func(d time.Duration) uint32 {
		return uint32((uint64(d)*hz + uint64(time.Second)/2) / uint64(time.Second))
	}
	tk := Ticks{
		T0H:    conv(t.T0H),
		T1H:    conv(t.T1H),
		Period: conv(t.Period),
		Reset:  conv(t.Reset),
	}
	if tk.T0H == 0 || tk.T1H <= tk.T0H || tk.Period <= tk.T1H {
		return Ticks{}, ErrResolution
	}
	if tk.Reset == 0 {
		tk.Reset = 1
	}
	return tk, nil
}

// Cycles splits one bit into the three delay slots of the PIO program:
//
//	T1: high for both bit values
//	T2: high for a 1 bit, low for a 0 bit
//	T3: low for both bit values
type Cycles struct {
	T1, T2, T3 uint8
}

// Max cycles per slot. The program has one side-set bit which leaves four
// delay bits, so a slot is at most 16 cycles long.
const maxSlotCycles = 16

// Sum returns the number of state machine cycles per bit.
func (c Cycles) Sum() uint8 { return c.T1 + c.T2 + c.T3 }

// Cycles divides one bit period into perBit state machine cycles and
// returns the slot lengths that best approximate t.
func (t Timing) Cycles(perBit uint8) (Cycles, error) {
	if err := t.valid(); err != nil {
		return Cycles{}, err
	}
	if perBit < 3 || perBit > 3*maxSlotCycles {
		return Cycles{}, ErrResolution
	}
	round := func(d time.Duration) int {
		return int((int64(d)*int64(perBit) + int64(t.Period)/2) / int64(t.Period))
	}
	t1 := round(t.T0H)
	t2 := round(t.T1H) - t1
	t3 := int(perBit) - t1 - t2
	for _, n := range [...]int{t1, t2, t3} {
		if n < 1 || n > maxSlotCycles {
			return Cycles{}, ErrResolution
		}
	}
	return Cycles{T1: uint8(t1), T2: uint8(t2), T3: uint8(t3)}, nil
}
