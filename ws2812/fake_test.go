package ws2812

import (
	"periph.io/x/conn/v3/physic"

	"github.com/tinygo-org/neopixel/pixel"
)

// simCounter advances one tick on every read so busy-waits terminate.
type simCounter struct {
	now   uint32
	freq  physic.Frequency
	width uint8
}

func (c *simCounter) Ticks() uint32 {
	t := c.now
	c.now++
	return t & (1<<c.width - 1)
}

func (c *simCounter) Frequency() physic.Frequency { return c.freq }
func (c *simCounter) Width() uint8                { return c.width }

type edge struct {
	high     bool
	at       uint32
	critical bool
}

// scopePin records every level change with the simulated time it happened.
type scopePin struct {
	c     *simCounter
	g     *countGuard
	edges []edge
}

func (p *scopePin) High() { p.record(true) }
func (p *scopePin) Low()  { p.record(false) }

func (p *scopePin) record(level bool) {
	crit := p.g != nil && p.g.depth > 0
	p.edges = append(p.edges, edge{high: level, at: p.c.now, critical: crit})
}

// pulses returns the (rise, fall) pairs of every high pulse.
func (p *scopePin) pulses() (rise, fall []uint32) {
	var up bool
	for _, e := range p.edges {
		switch {
		case e.high && !up:
			rise = append(rise, e.at)
			up = true
		case !e.high && up:
			fall = append(fall, e.at)
			up = false
		}
	}
	return rise, fall
}

type countGuard struct {
	depth    int
	disables int
}

func (g *countGuard) Disable() uintptr {
	g.depth++
	g.disables++
	return uintptr(g.depth)
}

func (g *countGuard) Restore(state uintptr) {
	if int(state) != g.depth {
		panic("unbalanced guard")
	}
	g.depth--
}

// fifo is a Queue with a fixed depth that drains one word every time it is
// polled while drain is set.
type fifo struct {
	depth int
	drain bool
	held  []uint32
	sent  []uint32
}

func (f *fifo) PutRaw(grb uint32) {
	if len(f.held) >= f.depth {
		panic("PutRaw on full queue")
	}
	f.held = append(f.held, grb)
}

func (f *fifo) IsQueueFull() bool {
	f.step()
	return len(f.held) >= f.depth
}

func (f *fifo) IsQueueEmpty() bool {
	f.step()
	return len(f.held) == 0
}

func (f *fifo) step() {
	if f.drain && len(f.held) > 0 {
		f.sent = append(f.sent, f.held[0])
		f.held = f.held[1:]
	}
}

// recorder is a Channel that keeps every frame it is given.
type recorder struct {
	frames [][]pixel.Color
	scales []pixel.Brightness
	err    error
}

func (r *recorder) Transmit(colors []pixel.Color, scale pixel.Brightness) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, append([]pixel.Color(nil), colors...))
	r.scales = append(r.scales, scale)
	return nil
}
