package ws2812

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/drivers"

	"github.com/tinygo-org/neopixel/pixel"
)

func TestStrip(t *testing.T) {
	rec := &recorder{}
	s := NewStrip(rec, 3)
	x, y := s.Size()
	assert.Equal(t, [2]int16{3, 1}, [2]int16{x, y})

	s.SetPixel(1, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	s.SetPixel(3, 0, color.RGBA{R: 9})
	s.SetPixel(0, 1, color.RGBA{R: 9})
	s.SetPixel(-1, 0, color.RGBA{R: 9})
	s.SetBrightness(32)
	require.NoError(t, s.Display())
	require.Len(t, rec.frames, 1)
	assert.Equal(t, []pixel.Color{{}, {R: 1, G: 2, B: 3}, {}}, rec.frames[0])
	assert.Equal(t, pixel.Brightness(32), rec.scales[0])

	s.Clear()
	assert.Equal(t, []pixel.Color{{}, {}, {}}, s.Pixels())

	rec.err = ErrQueueBlocked
	assert.ErrorIs(t, s.Display(), ErrQueueBlocked)
}

func TestStripAsDisplayer(t *testing.T) {
	rec := &recorder{}
	var d drivers.Displayer = NewStrip(rec, 2)
	x, y := d.Size()
	for i := int16(0); i < x; i++ {
		d.SetPixel(i, y-1, color.RGBA{G: uint8(10 * (i + 1)), A: 255})
	}
	require.NoError(t, d.Display())
	require.Len(t, rec.frames, 1)
	assert.Equal(t, []pixel.Color{{G: 10}, {G: 20}}, rec.frames[0])
	assert.Equal(t, pixel.Full, rec.scales[0])
}
