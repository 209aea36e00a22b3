package pixel

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWheelLiterals(t *testing.T) {
	tests := []struct {
		pos  uint8
		want Color
	}{
		{0, Color{255, 0, 0}},
		{1, Color{252, 3, 0}},
		{84, Color{3, 252, 0}},
		{85, Color{0, 255, 0}},
		{86, Color{0, 252, 3}},
		{128, Color{0, 126, 129}},
		{169, Color{0, 3, 252}},
		{170, Color{0, 0, 255}},
		{171, Color{3, 0, 252}},
		{254, Color{252, 0, 3}},
		{255, Color{255, 0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wheel(tt.pos), "Wheel(%d)", tt.pos)
	}
}

func TestWheelSectors(t *testing.T) {
	for i := 0; i < 256; i++ {
		c := Wheel(uint8(i))
		zeros := 0
		for _, ch := range []uint8{c.R, c.G, c.B} {
			if ch == 0 {
				zeros++
			}
		}
		assert.GreaterOrEqual(t, zeros, 1, "Wheel(%d)=%v lights all three channels", i, c)
		assert.Equal(t, 255, int(c.R)+int(c.G)+int(c.B), "Wheel(%d)=%v", i, c)
	}
}

func TestWheelContinuous(t *testing.T) {
	absdiff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	for i := 0; i < 256; i++ {
		a, b := Wheel(uint8(i)), Wheel(uint8(i+1))
		assert.LessOrEqual(t, absdiff(a.R, b.R), 3, "R step %d→%d", i, i+1)
		assert.LessOrEqual(t, absdiff(a.G, b.G), 3, "G step %d→%d", i, i+1)
		assert.LessOrEqual(t, absdiff(a.B, b.B), 3, "B step %d→%d", i, i+1)
	}
}

func TestScale(t *testing.T) {
	for v := 0; v < 256; v++ {
		c := Color{uint8(v), uint8(255 - v), uint8(v / 2)}
		assert.Equal(t, c, c.Scale(Full))
		assert.Equal(t, Black, c.Scale(0))
		for _, b := range []Brightness{1, 32, 128, 254} {
			s := c.Scale(b)
			assert.LessOrEqual(t, s.R, c.R)
			assert.LessOrEqual(t, s.G, c.G)
			assert.LessOrEqual(t, s.B, c.B)
		}
	}
	assert.Equal(t, Color{31, 16, 0}, Color{255, 128, 0}.Scale(31))
}

func TestScaleAll(t *testing.T) {
	src := []Color{{255, 255, 255}, {128, 64, 2}, {10, 20, 30}}
	dst := make([]Color, 2)
	n := ScaleAll(dst, src, 127)
	assert.Equal(t, 2, n)
	assert.Equal(t, []Color{{127, 127, 127}, {64, 32, 1}}, dst)

	// In place.
	n = ScaleAll(src, src, 0)
	assert.Equal(t, 3, n)
	assert.Equal(t, []Color{Black, Black, Black}, src)
}

func TestHSV(t *testing.T) {
	tests := []struct {
		in   HSV
		want Color
	}{
		{HSV{0, 255, 16}, Color{16, 0, 0}},
		{HSV{85, 255, 16}, Color{0, 16, 0}},
		{HSV{170, 255, 16}, Color{0, 0, 16}},
		{HSV{255, 255, 16}, Color{16, 0, 0}},
		{HSV{42, 255, 255}, Color{255, 252, 0}},
		{HSV{99, 0, 200}, Color{200, 200, 200}},
		{HSV{200, 255, 0}, Black},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.RGB(), "%+v", tt.in)
	}
	for h := 0; h < 256; h++ {
		c := HSV{uint8(h), 255, 16}.RGB()
		assert.LessOrEqual(t, c.R, uint8(16))
		assert.LessOrEqual(t, c.G, uint8(16))
		assert.LessOrEqual(t, c.B, uint8(16))
	}
}

func TestColorModel(t *testing.T) {
	c := Color{0x12, 0x34, 0x56}
	var _ color.Color = c
	r, g, b, a := c.RGBA()
	assert.Equal(t, [4]uint32{0x1212, 0x3434, 0x5656, 0xffff}, [4]uint32{r, g, b, a})
	assert.Equal(t, c, FromColor(color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}))
	assert.Equal(t, c, FromColor(c))
}
