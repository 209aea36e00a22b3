package ws2812

import (
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/tinygo-org/neopixel/pixel"
)

// Queue is a hardware FIFO in front of a peripheral that shifts out 24-bit
// words with WS2812 timing, such as piolib.WS2812.
type Queue interface {
	// PutRaw enqueues a word built by Word. The queue must not be full.
	PutRaw(grb uint32)
	IsQueueFull() bool
	IsQueueEmpty() bool
}

// DefaultTimeout bounds how long StateMachine waits on a queue that does not
// accept or drain words.
const DefaultTimeout = 10 * time.Millisecond

// StateMachine hands colors to a hardware queue and lets the peripheral
// produce the pulses. The caller only needs the Counter to bound waits and to
// time the trailing reset, so preemption stays enabled throughout.
type StateMachine struct {
	q     Queue
	w     waiter
	ticks Ticks
	// timeout in counter ticks.
	timeout uint32
}

var _ Channel = (*StateMachine)(nil)

// NewStateMachine returns a Channel writing to q. counter is only used for
// waiting, so a coarse time base such as a 1MHz timer is enough.
func NewStateMachine(q Queue, counter Counter, timing Timing) (*StateMachine, error) {
	if q == nil || counter == nil {
		return nil, errNilPeriph
	}
	if err := timing.valid(); err != nil {
		return nil, err
	}
	sm := &StateMachine{q: q, w: newWaiter(counter)}
	hz := uint64(counter.Frequency() / physic.Hertz)
	if hz == 0 {
		return nil, ErrResolution
	}
	toTicks := func(d time.Duration) uint32 {
		return uint32((uint64(d)*hz + uint64(time.Second) - 1) / uint64(time.Second))
	}
	// Rounded up: every wait below is a minimum.
	sm.ticks = Ticks{
		T0H:    toTicks(timing.T0H),
		T1H:    toTicks(timing.T1H),
		Period: toTicks(timing.Period),
		Reset:  toTicks(timing.Reset),
	}
	if err := sm.SetTimeout(DefaultTimeout); err != nil {
		return nil, err
	}
	return sm, nil
}

// SetTimeout sets how long Transmit waits on a full or undrained queue
// before failing with ErrQueueBlocked.
func (sm *StateMachine) SetTimeout(d time.Duration) error {
	hz := uint64(sm.w.c.Frequency() / physic.Hertz)
	ticks := uint64(d) * hz / uint64(time.Second)
	if ticks == 0 || ticks > uint64(sm.w.mask>>1) {
		return ErrResolution
	}
	sm.timeout = uint32(ticks)
	return nil
}

// Transmit implements Channel.
func (sm *StateMachine) Transmit(colors []pixel.Color, scale pixel.Brightness) error {
	for _, c := range colors {
		start := sm.w.c.Ticks()
		for sm.q.IsQueueFull() {
			if sm.w.elapsed(start) > sm.timeout {
				return ErrQueueBlocked
			}
		}
		sm.q.PutRaw(Word(c.Scale(scale)))
	}
	start := sm.w.c.Ticks()
	for !sm.q.IsQueueEmpty() {
		if sm.w.elapsed(start) > sm.timeout {
			return ErrQueueBlocked
		}
	}
	// The FIFO empties as the last word enters the shift register, so that
	// word still has to go out before the latch time starts.
	sm.w.until(sm.w.c.Ticks() + bitsPerPixel*sm.ticks.Period + sm.ticks.Reset)
	return nil
}
