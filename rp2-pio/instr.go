package pio

import (
	"errors"
	"math"
)

// Instruction opcodes in bits 15..13.
const (
	_INSTR_BITS_JMP  = 0x0000
	_INSTR_BITS_WAIT = 0x2000
	_INSTR_BITS_IN   = 0x4000
	_INSTR_BITS_OUT  = 0x6000
	_INSTR_BITS_PUSH = 0x8000
	_INSTR_BITS_PULL = 0x8080
	_INSTR_BITS_MOV  = 0xa000
	_INSTR_BITS_IRQ  = 0xc000
	_INSTR_BITS_SET  = 0xe000

	// Bit mask for instruction code
	_INSTR_BITS_Msk = 0xe000
)

// JmpCond is the condition field of a JMP instruction.
type JmpCond uint8

const (
	// No condition, always jumps.
	JmpAlways JmpCond = iota
	// Jump if X is zero.
	JmpXZero
	// Jump if X is not zero, prior to decrement of X.
	JmpXNZeroDec
	// Jump if Y is zero.
	JmpYZero
	// Jump if Y is not zero, prior to decrement of Y.
	JmpYNZeroDec
	// Jump if X is not equal to Y.
	JmpXNotEqualY
	// Jump if EXECCTRL_JMP_PIN (state machine configured) is high.
	JmpPinInput
	// Jump if the OSR still holds bits below the pull threshold.
	JmpOSRNotEmpty
)

// OutDest is the destination of an OUT instruction.
type OutDest uint8

const (
	OutDestPins    OutDest = 0
	OutDestX       OutDest = 1
	OutDestY       OutDest = 2
	OutDestNull    OutDest = 3
	OutDestPindirs OutDest = 4
	OutDestPC      OutDest = 5
	OutDestISR     OutDest = 6
	OutDestExec    OutDest = 7
)

// SetDest is the destination of a SET instruction.
type SetDest uint8

const (
	SetDestPins    SetDest = 0
	SetDestX       SetDest = 1
	SetDestY       SetDest = 2
	SetDestPindirs SetDest = 4
)

// MovDest and MovSrc select the operands of a MOV instruction.
type (
	MovDest uint8
	MovSrc  uint8
)

const (
	MovDestPins MovDest = 0
	MovDestX    MovDest = 1
	MovDestY    MovDest = 2
	MovDestExec MovDest = 4
	MovDestPC   MovDest = 5
	MovDestISR  MovDest = 6
	MovDestOSR  MovDest = 7

	MovSrcPins   MovSrc = 0
	MovSrcX      MovSrc = 1
	MovSrcY      MovSrc = 2
	MovSrcNull   MovSrc = 3
	MovSrcStatus MovSrc = 5
	MovSrcISR    MovSrc = 6
	MovSrcOSR    MovSrc = 7
)

// Assembler builds PIO instructions from Go. SidesetBits must match the
// side-set count configured on the state machine running the program,
// including the enable bit when side-set is optional.
type Assembler struct {
	SidesetBits uint8
}

// Instruction is a PIO instruction under construction. Side and Delay return
// a modified copy; Encode returns the 16-bit machine word.
type Instruction struct {
	instr uint16
	asm   Assembler
}

// Encode returns the instruction word.
func (i Instruction) Encode() uint16 { return i.instr }

// Side sets the side-set value of the instruction.
func (i Instruction) Side(value uint8) Instruction {
	n := i.asm.SidesetBits
	if n == 0 {
		panic("pio: side-set with no side-set bits")
	}
	mask := uint16(1)<<n - 1
	i.instr = i.instr&^(mask<<(13-n)) | (uint16(value)&mask)<<(13-n)
	return i
}

// Delay sets the number of idle cycles after the instruction executes. The
// delay field shares five bits with side-set.
func (i Instruction) Delay(cycles uint8) Instruction {
	if cycles > i.asm.maxDelay() {
		panic("pio: delay too long for side-set configuration")
	}
	delayMask := uint16(0x1f) >> i.asm.SidesetBits << 8
	i.instr = i.instr&^delayMask | uint16(cycles)<<8&delayMask
	return i
}

func (asm Assembler) maxDelay() uint8 { return 0x1f >> asm.SidesetBits }

func (asm Assembler) instrArgs(op uint16, arg1, arg2 uint8) Instruction {
	return Instruction{
		instr: op | uint16(arg1&0b111)<<5 | uint16(arg2&0x1f),
		asm:   asm,
	}
}

// Jmp jumps to addr when cond holds. addr is relative to the program start;
// PIO.AddProgram patches it to the load offset.
func (asm Assembler) Jmp(addr uint8, cond JmpCond) Instruction {
	return asm.instrArgs(_INSTR_BITS_JMP, uint8(cond), addr)
}

// Out shifts bitCount bits out of the OSR into dest. A bitCount of 32 is
// encoded as zero.
func (asm Assembler) Out(dest OutDest, bitCount uint8) Instruction {
	return asm.instrArgs(_INSTR_BITS_OUT, uint8(dest), bitCount)
}

// Pull loads the OSR from the TX FIFO.
func (asm Assembler) Pull(ifEmpty, block bool) Instruction {
	return asm.instrArgs(_INSTR_BITS_PULL, boolAsU8(ifEmpty)<<1|boolAsU8(block), 0)
}

// Mov copies src into dest.
func (asm Assembler) Mov(dest MovDest, src MovSrc) Instruction {
	return asm.instrArgs(_INSTR_BITS_MOV, uint8(dest), uint8(src)&0b111)
}

// Nop is encoded as mov y, y.
func (asm Assembler) Nop() Instruction { return asm.Mov(MovDestY, MovSrcY) }

// Set writes the 5-bit immediate value to dest.
func (asm Assembler) Set(dest SetDest, value uint8) Instruction {
	return asm.instrArgs(_INSTR_BITS_SET, uint8(dest), value)
}

// EncodeJmp returns an unconditional-or-conditional jump with no side-set or
// delay, as used by StateMachine.Exec.
func EncodeJmp(addr uint8, cond JmpCond) uint16 {
	return Assembler{}.Jmp(addr, cond).Encode()
}

// EncodeSet returns a SET instruction with no side-set or delay.
func EncodeSet(dest SetDest, value uint8) uint16 {
	return Assembler{}.Set(dest, value).Encode()
}

// ClkDiv errors.
var (
	ErrClkDivTooLarge = errors.New("pio: clock divider too large for period or CPU frequency")
	ErrClkDivTooSmall = errors.New("pio: clock divider too small for period or CPU frequency")
)

// ClkDivFromPeriod calculates the CLKDIV register values
// to reach a given StateMachine cycle period given the RP2040 CPU frequency.
// period is expected to be in nanoseconds. freq is expected to be in Hz.
//
// Prefer using ClkDivFromFrequency if possible for speed and accuracy.
func ClkDivFromPeriod(period, cpuFreq uint32) (whole uint16, frac uint8, err error) {
	//  freq = 256*clockfreq / (256*whole + frac)
	// where period = 1e9/freq => freq = 1e9/period, so:
	//  256*whole + frac = 256*clockfreq*period/1e9
	return splitClkdiv(256 * uint64(period) * uint64(cpuFreq) / uint64(1e9))
}

// ClkDivFromFrequency calculates the CLKDIV register values
// to reach a given StateMachine cycle frequency. freq and cpuFreq are expected to be in Hz.
func ClkDivFromFrequency(freq, cpuFreq uint32) (whole uint16, frac uint8, err error) {
	if freq == 0 {
		return 0, 0, ErrClkDivTooLarge
	}
	//  256*whole + frac = 256*clockfreq / freq
	return splitClkdiv(256 * uint64(cpuFreq) / uint64(freq))
}

func splitClkdiv(clkdiv uint64) (whole uint16, frac uint8, err error) {
	if clkdiv > 256*math.MaxUint16 {
		return 0, 0, ErrClkDivTooLarge
	} else if clkdiv < 256 {
		return 0, 0, ErrClkDivTooSmall
	}
	whole = uint16(clkdiv / 256)
	frac = uint8(clkdiv % 256)
	return whole, frac, nil
}

func boolAsU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
