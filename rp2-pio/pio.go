//go:build rp2040

// Package pio drives the RP2040 programmable I/O blocks: it loads programs
// into instruction memory, configures and runs state machines and feeds
// their FIFOs.
package pio

import (
	"device/rp"
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"
)

// RP2040 PIO peripheral handles.
var (
	PIO0 = &PIO{
		hw: rp.PIO0,
	}
	PIO1 = &PIO{
		hw: rp.PIO1,
	}
)

// PIO errors.
var (
	ErrOutOfProgramSpace   = errors.New("pio: out of program space")
	ErrNoSpaceAtOffset     = errors.New("pio: program space unavailable at offset")
	errStateMachineClaimed = errors.New("pio: state machine already claimed")
)

const (
	badStateMachineIndex = "invalid state machine index"
	badPIO               = "invalid PIO"
)

// PIO is one of the two PIO blocks. Each block has 32 instruction slots
// shared by 4 state machines.
type PIO struct {
	hw *rp.PIO0_Type
	// Bitmask of used instruction slots.
	usedSpaceMask uint32
	// Bitmask of claimed state machines.
	claimedSMMask smMask
	nc            noCopy
}

// BlockIndex returns 0 for PIO0 and 1 for PIO1.
func (pio *PIO) BlockIndex() uint8 {
	switch pio.hw {
	case rp.PIO0:
		return 0
	case rp.PIO1:
		return 1
	}
	panic(badPIO)
}

// StateMachine returns a state machine by index.
func (pio *PIO) StateMachine(index uint8) StateMachine {
	if index > 3 {
		panic(badStateMachineIndex)
	}
	return StateMachine{
		pio:   pio,
		index: index,
	}
}

// ClaimStateMachine returns an unused state machine
// or an error if all state machines on this PIO are claimed.
func (pio *PIO) ClaimStateMachine() (sm StateMachine, err error) {
	i, ok := pio.claimedSMMask.claimFirst()
	if !ok {
		return StateMachine{}, errStateMachineClaimed
	}
	return pio.StateMachine(i), nil
}

// AddProgram loads instructions into the first free run of slots, searching
// from the top of memory, and returns the load offset.
// origin is the required offset, or -1 if the program is relocatable.
func (pio *PIO) AddProgram(instructions []uint16, origin int8) (offset uint8, _ error) {
	maybeOffset := pio.findOffsetForProgram(instructions, origin)
	if maybeOffset < 0 {
		return 0, ErrOutOfProgramSpace
	}
	offset = uint8(maybeOffset)
	return offset, pio.AddProgramAtOffset(instructions, origin, offset)
}

// AddProgramAtOffset loads instructions at offset. JMP targets are relocated
// by offset.
func (pio *PIO) AddProgramAtOffset(instructions []uint16, origin int8, offset uint8) error {
	if !pio.CanAddProgramAtOffset(instructions, origin, offset) {
		return ErrNoSpaceAtOffset
	}
	for i, instr := range instructions {
		if instr&_INSTR_BITS_Msk == _INSTR_BITS_JMP {
			instr += uint16(offset)
		}
		pio.writeInstructionMemory(offset+uint8(i), instr)
	}
	pio.usedSpaceMask |= programMask(len(instructions)) << offset
	return nil
}

// CanAddProgramAtOffset returns true if the slots at offset are free and
// compatible with origin.
func (pio *PIO) CanAddProgramAtOffset(instructions []uint16, origin int8, offset uint8) bool {
	if origin >= 0 && origin != int8(offset) {
		return false
	}
	if int(offset)+len(instructions) > 32 {
		return false
	}
	return pio.usedSpaceMask&(programMask(len(instructions))<<offset) == 0
}

func programMask(n int) uint32 { return uint32(1)<<n - 1 }

func (pio *PIO) writeInstructionMemory(offset uint8, value uint16) {
	// INSTR_MEM0..31 are consecutive 32-bit registers, low half used.
	start := unsafe.Pointer(&pio.hw.INSTR_MEM0)
	reg := (*volatile.Register32)(unsafe.Add(start, uintptr(offset)*4))
	reg.Set(uint32(value))
}

func (pio *PIO) findOffsetForProgram(instructions []uint16, origin int8) int8 {
	n := len(instructions)
	if n == 0 || n > 32 {
		return -1
	}
	mask := programMask(n)
	if origin >= 0 {
		if int(origin) > 32-n || pio.usedSpaceMask&(mask<<origin) != 0 {
			return -1
		}
		return origin
	}
	for i := 32 - n; i >= 0; i-- {
		if pio.usedSpaceMask&(mask<<i) == 0 {
			return int8(i)
		}
	}
	return -1
}

type statemachineHW struct {
	CLKDIV    volatile.Register32 // 0xC8 for SM0
	EXECCTRL  volatile.Register32 // 0xCC for SM0
	SHIFTCTRL volatile.Register32 // 0xD0 for SM0
	ADDR      volatile.Register32 // 0xD4 for SM0
	INSTR     volatile.Register32 // 0xD8 for SM0
	PINCTRL   volatile.Register32 // 0xDC for SM0
}

func (pio *PIO) smHW(index uint8) *statemachineHW {
	if index > 3 {
		panic(badStateMachineIndex)
	}
	const size = unsafe.Sizeof(statemachineHW{})
	return (*statemachineHW)(unsafe.Add(unsafe.Pointer(&pio.hw.SM0_CLKDIV), uintptr(index)*size))
}

// PinMode returns the pin function that routes a GPIO to this PIO block.
func (pio *PIO) PinMode() machine.PinMode {
	return machine.PinPIO0 + machine.PinMode(pio.BlockIndex())
}

// noCopy may be embedded into structs which must not be copied
// after the first use.
//
// See https://golang.org/issues/8005#issuecomment-190753527
// for details.
type noCopy struct{}

// Lock is a no-op used by -copylocks checker from `go vet`.
func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
