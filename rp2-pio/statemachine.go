//go:build rp2040

package pio

import (
	"device/rp"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// StateMachine is one of the four state machines of a PIO block.
type StateMachine struct {
	pio   *PIO
	index uint8
}

// Unclaim releases the state machine for use by other code.
func (sm StateMachine) Unclaim() { sm.pio.claimedSMMask.release(sm.index) }

// TryClaim claims the state machine and reports whether it was free. The
// state machine is claimed when the call returns either way.
func (sm StateMachine) TryClaim() bool { return sm.pio.claimedSMMask.tryClaim(sm.index) }

// HW returns the configuration registers of this state machine.
func (sm StateMachine) HW() *statemachineHW { return sm.pio.smHW(sm.index) }

// PIO returns the block this state machine belongs to.
func (sm StateMachine) PIO() *PIO {
	sm.pio.BlockIndex() // Panic if PIO is not a valid block.
	return sm.pio
}

// IsValid returns true if sm refers to a real state machine.
func (sm StateMachine) IsValid() bool {
	return sm.pio != nil && (sm.pio.hw == rp.PIO0 || sm.pio.hw == rp.PIO1) && sm.index <= 3
}

// Init halts the state machine, applies cfg, clears its FIFOs and shift
// counters and jumps to initialPC. The state machine is left disabled.
// The zero cfg selects DefaultStateMachineConfig.
func (sm StateMachine) Init(initialPC uint8, cfg StateMachineConfig) {
	if !sm.IsValid() {
		panic(badStateMachineIndex)
	}
	sm.SetEnabled(false)
	if cfg == (StateMachineConfig{}) {
		cfg = DefaultStateMachineConfig()
	}
	sm.SetConfig(cfg)
	sm.ClearFIFOs()

	// Clear sticky FIFO debug flags.
	const fdebugMask = uint32((1 << rp.PIO0_FDEBUG_TXOVER_Pos) |
		(1 << rp.PIO0_FDEBUG_RXUNDER_Pos) |
		(1 << rp.PIO0_FDEBUG_TXSTALL_Pos) |
		(1 << rp.PIO0_FDEBUG_RXSTALL_Pos))
	sm.pio.hw.FDEBUG.Set(fdebugMask << sm.index)

	sm.Restart()
	sm.ClkDivRestart()
	sm.Exec(EncodeJmp(initialPC, JmpAlways))
}

// SetEnabled starts or halts the state machine.
func (sm StateMachine) SetEnabled(enabled bool) {
	sm.pio.hw.CTRL.ReplaceBits(uint32(boolAsU8(enabled)), 0x1, sm.index+rp.PIO0_CTRL_SM_ENABLE_Pos)
}

// Restart clears internal state such as shift counters and the delay counter.
func (sm StateMachine) Restart() {
	sm.pio.hw.CTRL.SetBits(1 << (rp.PIO0_CTRL_SM_RESTART_Pos + sm.index))
}

// ClkDivRestart zeroes the clock divider phase.
func (sm StateMachine) ClkDivRestart() {
	sm.pio.hw.CTRL.SetBits(1 << (rp.PIO0_CTRL_CLKDIV_RESTART_Pos + sm.index))
}

// SetConfig writes cfg to the state machine registers.
func (sm StateMachine) SetConfig(cfg StateMachineConfig) {
	hw := sm.HW()
	hw.CLKDIV.Set(cfg.ClkDiv)
	hw.EXECCTRL.Set(cfg.ExecCtrl)
	hw.SHIFTCTRL.Set(cfg.ShiftCtrl)
	hw.PINCTRL.Set(cfg.PinCtrl)
}

// TxPut writes data to the TX FIFO without checking for space. A write to a
// full FIFO is dropped and sets the sticky TXOVER flag.
func (sm StateMachine) TxPut(data uint32) {
	sm.TxReg().Set(data)
}

// TxReg returns the TX FIFO register of this state machine.
func (sm StateMachine) TxReg() *volatile.Register32 {
	start := unsafe.Pointer(&sm.pio.hw.TXF0) // 0x10
	return (*volatile.Register32)(unsafe.Add(start, uintptr(sm.index)*4))
}

// IsTxFIFOEmpty returns true if the TX FIFO is empty.
func (sm StateMachine) IsTxFIFOEmpty() bool {
	return sm.pio.hw.FSTAT.HasBits(1 << (rp.PIO0_FSTAT_TXEMPTY_Pos + sm.index))
}

// IsTxFIFOFull returns true if the TX FIFO is full.
func (sm StateMachine) IsTxFIFOFull() bool {
	return sm.pio.hw.FSTAT.HasBits(1 << (rp.PIO0_FSTAT_TXFULL_Pos + sm.index))
}

// ClearFIFOs drops the contents of both FIFOs.
func (sm StateMachine) ClearFIFOs() {
	// Toggling FJOIN_RX flushes the FIFOs; toggling twice restores the join.
	shiftctl := &sm.HW().SHIFTCTRL
	xorBits(shiftctl, rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk)
	xorBits(shiftctl, rp.PIO0_SM0_SHIFTCTRL_FJOIN_RX_Msk)
}

// Exec executes instr immediately on the state machine.
func (sm StateMachine) Exec(instr uint16) {
	sm.HW().INSTR.Set(uint32(instr))
}

// SetPindirsConsecutive sets count pins from pin to outputs or inputs. Call
// it before enabling the state machine for every pin the program drives.
func (sm StateMachine) SetPindirsConsecutive(pin machine.Pin, count uint8, isOut bool) {
	checkPinBaseAndCount(pin, count)
	hw := sm.HW()
	pinctrlSaved := hw.PINCTRL.Get()
	execctrlSaved := hw.EXECCTRL.Get()
	hw.EXECCTRL.ClearBits(1 << rp.PIO0_SM0_EXECCTRL_OUT_STICKY_Pos)
	for p := uint8(pin); p < uint8(pin)+count; p++ {
		hw.PINCTRL.Set(1<<rp.PIO0_SM0_PINCTRL_SET_COUNT_Pos | uint32(p)<<rp.PIO0_SM0_PINCTRL_SET_BASE_Pos)
		sm.Exec(EncodeSet(SetDestPindirs, boolAsU8(isOut)))
	}
	hw.PINCTRL.Set(pinctrlSaved)
	hw.EXECCTRL.Set(execctrlSaved)
}

const regAliasXOR = 0x1 << 12

// xorBits writes bits through the atomic XOR alias of reg.
// See 2.1.2. Atomic Register Access in the RP2040 Datasheet.
func xorBits(reg *volatile.Register32, bits uint32) {
	alias := uintptr(unsafe.Pointer(reg)) | regAliasXOR
	(*volatile.Register32)(unsafe.Pointer(alias)).Set(bits)
}
