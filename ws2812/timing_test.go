package ws2812

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/physic"

	"github.com/tinygo-org/neopixel/pixel"
)

func TestTimingDerived(t *testing.T) {
	assert.Equal(t, 800*physic.KiloHertz, WS2812B.BitRate())
	assert.Equal(t, 24*1250*time.Nanosecond+300*time.Microsecond, WS2812B.FrameTime(1))
	assert.GreaterOrEqual(t, WS2812B.Reset, 50*time.Microsecond)
}

func TestTimingCycles(t *testing.T) {
	cy, err := WS2812B.Cycles(10)
	require.NoError(t, err)
	assert.Equal(t, Cycles{T1: 3, T2: 3, T3: 4}, cy)
	assert.Equal(t, uint8(10), cy.Sum())

	// High times land within half a state machine cycle of the profile.
	cycle := WS2812B.Period / 10
	t0h := time.Duration(cy.T1) * cycle
	t1h := time.Duration(cy.T1+cy.T2) * cycle
	assert.InDelta(t, float64(WS2812B.T0H), float64(t0h), float64(cycle/2))
	assert.InDelta(t, float64(WS2812B.T1H), float64(t1h), float64(cycle/2))

	_, err = WS2812B.Cycles(2)
	assert.ErrorIs(t, err, ErrResolution)
	_, err = WS2812B.Cycles(60)
	assert.ErrorIs(t, err, ErrResolution)
}

func TestTimingTicks(t *testing.T) {
	tk, err := WS2812B.Ticks(125 * physic.MegaHertz)
	require.NoError(t, err)
	assert.Equal(t, Ticks{T0H: 50, T1H: 100, Period: 156, Reset: 37500}, tk)

	_, err = WS2812B.Ticks(0)
	assert.ErrorIs(t, err, ErrResolution)
	_, err = Timing{}.Ticks(physic.GigaHertz)
	assert.ErrorIs(t, err, ErrTiming)
}

func TestWord(t *testing.T) {
	assert.Equal(t, uint32(0x22113300), Word(pixel.Color{R: 0x11, G: 0x22, B: 0x33}))
	assert.Equal(t, uint32(0x00ff0000), Word(pixel.Color{R: 0xff}))
}
