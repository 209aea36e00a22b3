//go:build rp2040

package pio

import (
	"device/rp"
	"machine"
)

// DefaultStateMachineConfig returns the reset configuration of a state
// machine: full speed, wrap over all of memory, shifting right with no
// autopush or autopull.
func DefaultStateMachineConfig() StateMachineConfig {
	cfg := StateMachineConfig{}
	cfg.SetClkDivIntFrac(1, 0)
	cfg.SetWrap(0, 31)
	cfg.SetInShift(true, false, 32)
	cfg.SetOutShift(true, false, 32)
	return cfg
}

// StateMachineConfig holds register values for a state machine. Build it with
// the setters and apply it with StateMachine.Init or StateMachine.SetConfig.
type StateMachineConfig struct {
	// Clock divider.
	//  Frequency = clock freq / (CLKDIV_INT + CLKDIV_FRAC / 256)
	ClkDiv uint32
	// Wrap, side-set enable and status selection.
	ExecCtrl uint32
	// Shift directions, thresholds and FIFO join.
	ShiftCtrl uint32
	// Pin mapping.
	PinCtrl uint32
}

// SetClkDivIntFrac sets the clock divider from a whole and fractional part.
//
//	Frequency = clock freq / (CLKDIV_INT + CLKDIV_FRAC / 256)
func (cfg *StateMachineConfig) SetClkDivIntFrac(whole uint16, frac uint8) {
	cfg.ClkDiv = clkDiv(whole, frac)
}

func clkDiv(whole uint16, frac uint8) uint32 {
	return (uint32(frac) << rp.PIO0_SM0_CLKDIV_FRAC_Pos) |
		(uint32(whole) << rp.PIO0_SM0_CLKDIV_INT_Pos)
}

// SetWrap sets the absolute addresses the program counter wraps from (wrap)
// and to (wrapTarget).
func (cfg *StateMachineConfig) SetWrap(wrapTarget uint8, wrap uint8) {
	if wrap >= 32 || wrapTarget >= 32 {
		panic("pio:bad wrap")
	}
	cfg.ExecCtrl =
		(cfg.ExecCtrl & ^uint32(rp.PIO0_SM0_EXECCTRL_WRAP_TOP_Msk|rp.PIO0_SM0_EXECCTRL_WRAP_BOTTOM_Msk)) |
			(uint32(wrapTarget) << rp.PIO0_SM0_EXECCTRL_WRAP_BOTTOM_Pos) |
			(uint32(wrap) << rp.PIO0_SM0_EXECCTRL_WRAP_TOP_Pos)
}

// SetInShift sets the ISR shift direction, autopush and push threshold.
func (cfg *StateMachineConfig) SetInShift(shiftRight bool, autoPush bool, pushThreshold uint16) {
	cfg.ShiftCtrl = cfg.ShiftCtrl &
		^uint32(rp.PIO0_SM0_SHIFTCTRL_IN_SHIFTDIR_Msk|
			rp.PIO0_SM0_SHIFTCTRL_AUTOPUSH_Msk|
			rp.PIO0_SM0_SHIFTCTRL_PUSH_THRESH_Msk) |
		(uint32(boolAsU8(shiftRight)) << rp.PIO0_SM0_SHIFTCTRL_IN_SHIFTDIR_Pos) |
		(uint32(boolAsU8(autoPush)) << rp.PIO0_SM0_SHIFTCTRL_AUTOPUSH_Pos) |
		(uint32(pushThreshold&0x1f) << rp.PIO0_SM0_SHIFTCTRL_PUSH_THRESH_Pos)
}

// SetOutShift sets the OSR shift direction, autopull and pull threshold.
// A threshold of 32 is encoded as zero.
func (cfg *StateMachineConfig) SetOutShift(shiftRight bool, autoPull bool, pullThreshold uint16) {
	cfg.ShiftCtrl = cfg.ShiftCtrl &
		^uint32(rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Msk|
			rp.PIO0_SM0_SHIFTCTRL_AUTOPULL_Msk|
			rp.PIO0_SM0_SHIFTCTRL_PULL_THRESH_Msk) |
		(uint32(boolAsU8(shiftRight)) << rp.PIO0_SM0_SHIFTCTRL_OUT_SHIFTDIR_Pos) |
		(uint32(boolAsU8(autoPull)) << rp.PIO0_SM0_SHIFTCTRL_AUTOPULL_Pos) |
		(uint32(pullThreshold&0x1f) << rp.PIO0_SM0_SHIFTCTRL_PULL_THRESH_Pos)
}

// SetSidesetParams sets how many delay bits are used for side-set, whether
// the topmost one is an enable flag, and whether side-set drives pin
// directions instead of values.
func (cfg *StateMachineConfig) SetSidesetParams(bitCount uint8, optional bool, pindirs bool) {
	if bitCount > 5 {
		panic("SetSideSet: bitCount")
	}
	cfg.PinCtrl = (cfg.PinCtrl & ^uint32(rp.PIO0_SM0_PINCTRL_SIDESET_COUNT_Msk)) |
		(uint32(bitCount) << uint32(rp.PIO0_SM0_PINCTRL_SIDESET_COUNT_Pos))

	cfg.ExecCtrl = (cfg.ExecCtrl & ^uint32(rp.PIO0_SM0_EXECCTRL_SIDE_EN_Msk|rp.PIO0_SM0_EXECCTRL_SIDE_PINDIR_Msk)) |
		(uint32(boolAsU8(optional)) << rp.PIO0_SM0_EXECCTRL_SIDE_EN_Pos) |
		(uint32(boolAsU8(pindirs)) << rp.PIO0_SM0_EXECCTRL_SIDE_PINDIR_Pos)
}

// SetSidesetPins sets the lowest pin driven by side-set.
func (cfg *StateMachineConfig) SetSidesetPins(firstPin machine.Pin) {
	checkPinBaseAndCount(firstPin, 1)
	cfg.PinCtrl = (cfg.PinCtrl & ^uint32(rp.PIO0_SM0_PINCTRL_SIDESET_BASE_Msk)) |
		(uint32(firstPin) << rp.PIO0_SM0_PINCTRL_SIDESET_BASE_Pos)
}

func checkPinBaseAndCount(base machine.Pin, count uint8) {
	if base >= 32 {
		panic("pio:bad pin")
	} else if count > 32 {
		panic("pio:count too large")
	}
}

// FifoJoin selects how the two 4-word FIFOs of a state machine are used.
type FifoJoin uint8

const (
	// FifoJoinNone keeps separate 4-word RX and TX FIFOs.
	FifoJoinNone FifoJoin = iota
	// FifoJoinTx gives the TX FIFO all 8 words.
	FifoJoinTx
	// FifoJoinRx gives the RX FIFO all 8 words.
	FifoJoinRx
)

// SetFIFOJoin sets the FIFO join mode.
func (cfg *StateMachineConfig) SetFIFOJoin(join FifoJoin) {
	if join > FifoJoinRx {
		panic("SetFIFOJoin: join")
	}
	cfg.ShiftCtrl = (cfg.ShiftCtrl & ^uint32(rp.PIO0_SM0_SHIFTCTRL_FJOIN_TX_Msk|rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk)) |
		(uint32(join) << rp.PIO0_SM0_SHIFTCTRL_FJOIN_TX_Pos)
}
