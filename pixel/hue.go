package pixel

// Wheel maps pos onto a three-sector color wheel that fades
// red, green, blue and back to red as pos goes from 0 to 255.
//
// Only byte arithmetic is used. Products wrap modulo 256 exactly as uint8
// multiplication does; callers rely on the result being bit-for-bit stable.
func Wheel(pos uint8) Color {
	pos = 255 - pos
	switch {
	case pos < 85:
		// No green.
		return Color{R: 255 - pos*3, G: 0, B: pos * 3}
	case pos < 170:
		// No red.
		pos -= 85
		return Color{R: 0, G: pos * 3, B: 255 - pos*3}
	default:
		// No blue.
		pos -= 170
		return Color{R: pos * 3, G: 255 - pos*3, B: 0}
	}
}

// HSV is a hue/saturation/value color with every component in 0..255.
// A full hue turn spans the whole byte range.
type HSV struct {
	Hue, Sat, Val uint8
}

// RGB converts h to RGB with the integer six-sector method. Each sector
// covers 42 or 43 hue steps and intermediates stay within 16 bits.
func (h HSV) RGB() Color {
	v := uint16(h.Val)
	s := uint16(h.Sat)
	// Position inside the current sector scaled to 0..252.
	f := (uint16(h.Hue) * 2 % 85) * 3

	p := uint8(v * (255 - s) / 255)
	q := uint8(v * (255 - s*f/255) / 255)
	t := uint8(v * (255 - s*(255-f)/255) / 255)
	val := uint8(v)

	switch {
	case h.Hue < 43:
		return Color{R: val, G: t, B: p}
	case h.Hue < 85:
		return Color{R: q, G: val, B: p}
	case h.Hue < 128:
		return Color{R: p, G: val, B: t}
	case h.Hue < 170:
		return Color{R: p, G: q, B: val}
	case h.Hue < 213:
		return Color{R: t, G: p, B: val}
	case h.Hue < 255:
		return Color{R: val, G: p, B: q}
	default:
		return Color{R: val, G: t, B: p}
	}
}
