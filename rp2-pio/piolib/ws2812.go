//go:build rp2040

// Package piolib holds PIO-backed peripheral drivers.
package piolib

import (
	"machine"

	"periph.io/x/conn/v3/physic"

	pio "github.com/tinygo-org/neopixel/rp2-pio"
	"github.com/tinygo-org/neopixel/ws2812"
)

// WS2812 runs the WS2812 bit loop on a PIO state machine. Each word put in
// its TX FIFO is shifted out MSB first, 24 bits per pixel. It satisfies
// ws2812.Queue.
type WS2812 struct {
	sm pio.StateMachine
}

// NewWS2812 claims sm, loads the bit loop for timing into its PIO block,
// routes pin to it and starts the state machine. On failure sm is released.
func NewWS2812(sm pio.StateMachine, pin machine.Pin, timing ws2812.Timing) (*WS2812, error) {
	sm.TryClaim() // SM should be claimed beforehand, we just guarantee it's claimed.
	cy, err := timing.Cycles(ws2812CyclesPerBit)
	if err != nil {
		sm.Unclaim()
		return nil, err
	}
	freq := uint32(timing.BitRate()/physic.Hertz) * ws2812CyclesPerBit
	whole, frac, err := pio.ClkDivFromFrequency(freq, machine.CPUFrequency())
	if err != nil {
		sm.Unclaim()
		return nil, err
	}
	Pio := sm.PIO()
	offset, err := Pio.AddProgram(ws2812Program(cy), -1)
	if err != nil {
		sm.Unclaim()
		return nil, err
	}
	pin.Configure(machine.PinConfig{Mode: Pio.PinMode()})
	sm.SetPindirsConsecutive(pin, 1, true)

	cfg := pio.DefaultStateMachineConfig()
	cfg.SetWrap(offset+ws2812WrapTarget, offset+ws2812Wrap)
	cfg.SetSidesetParams(ws2812Sideset, false, false)
	cfg.SetSidesetPins(pin)
	// Only the Tx FIFO is used.
	cfg.SetFIFOJoin(pio.FifoJoinTx)
	cfg.SetClkDivIntFrac(whole, frac)
	// Shift left with autopull every 24 bits: the low byte of a word is unused.
	cfg.SetOutShift(false, true, 24)
	sm.Init(offset, cfg)
	sm.SetEnabled(true)
	return &WS2812{sm: sm}, nil
}

// PutRaw puts a GRB word (see ws2812.Word) in the Tx FIFO. A word put in a
// full FIFO is discarded.
func (ws *WS2812) PutRaw(grb uint32) { ws.sm.TxPut(grb) }

// IsQueueFull returns true if the Tx FIFO holds 8 words.
func (ws *WS2812) IsQueueFull() bool { return ws.sm.IsTxFIFOFull() }

// IsQueueEmpty returns true once the state machine has pulled every word.
// The last word may still be on the wire.
func (ws *WS2812) IsQueueEmpty() bool { return ws.sm.IsTxFIFOEmpty() }

// SetEnabled starts or halts the bit loop.
func (ws *WS2812) SetEnabled(enabled bool) { ws.sm.SetEnabled(enabled) }
