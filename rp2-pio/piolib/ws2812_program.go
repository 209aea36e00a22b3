package piolib

import (
	pio "github.com/tinygo-org/neopixel/rp2-pio"
	"github.com/tinygo-org/neopixel/ws2812"
)

// Cycles per WS2812 bit. The clock divider is chosen so that these cycles
// span one bit period.
const ws2812CyclesPerBit = 10

const (
	ws2812WrapTarget = 0
	ws2812Wrap       = 3
	ws2812Sideset    = 1
)

// ws2812Program assembles the bit loop for the given slot lengths:
//
//	.side_set 1
//	.wrap_target
//	bitloop:
//	    out x, 1       side 0 [T3 - 1] ; low tail of previous bit
//	    jmp !x do_zero side 1 [T1 - 1] ; rise
//	do_one:
//	    jmp bitloop    side 1 [T2 - 1] ; stay high for a 1
//	do_zero:
//	    nop            side 0 [T2 - 1] ; drop early for a 0
//	.wrap
func ws2812Program(c ws2812.Cycles) []uint16 {
	assm := pio.Assembler{SidesetBits: ws2812Sideset}
	const (
		bitloop = 0
		doZero  = 3
	)
	return []uint16{
		bitloop: assm.Out(pio.OutDestX, 1).Side(0).Delay(c.T3 - 1).Encode(),
		assm.Jmp(doZero, pio.JmpXZero).Side(1).Delay(c.T1 - 1).Encode(),
		assm.Jmp(bitloop, pio.JmpAlways).Side(1).Delay(c.T2 - 1).Encode(),
		doZero: assm.Nop().Side(0).Delay(c.T2 - 1).Encode(),
	}
}
