package pio

import (
	"testing"
)

func TestAssembler_ws2812(t *testing.T) {
	assm := Assembler{
		SidesetBits: 1,
	}
	const (
		bitloop = 0
		doZero  = 3
	)
	var program = []uint16{
		//     .wrap_target
		// 0: out    x, 1            side 0 [2]
		bitloop: assm.Out(OutDestX, 1).Side(0).Delay(2).Encode(),
		// 1: jmp    !x, 3           side 1 [1]
		assm.Jmp(doZero, JmpXZero).Side(1).Delay(1).Encode(),
		// 2: jmp    0               side 1 [4]
		assm.Jmp(bitloop, JmpAlways).Side(1).Delay(4).Encode(),
		// 3: nop                    side 0 [4]
		doZero: assm.Nop().Side(0).Delay(4).Encode(),
		//     .wrap
	}
	var expectedProgram = []uint16{
		0x6221, //  0: out    x, 1            side 0 [2]
		0x1123, //  1: jmp    !x, 3           side 1 [1]
		0x1400, //  2: jmp    0               side 1 [4]
		0xa442, //  3: nop                    side 0 [4]
	}
	for i := range program {
		if program[i] != expectedProgram[i] {
			t.Errorf("instr %d mismatch got!=expected: %#x != %#x", i, program[i], expectedProgram[i])
		}
	}
}

func TestAssembler_noSideset(t *testing.T) {
	var assm Assembler
	tests := []struct {
		got, want uint16
	}{
		{assm.Set(SetDestPindirs, 1).Encode(), 0xe081},                      // set pindirs, 1
		{assm.Set(SetDestPins, 31).Delay(31).Encode(), 0xff1f},              // set pins, 31 [31]
		{assm.Pull(false, true).Encode(), 0x80a0},                           // pull block
		{assm.Out(OutDestPins, 32).Encode(), 0x6000},                        // out pins, 32
		{assm.Mov(MovDestX, MovSrcOSR).Encode(), 0xa027},                    // mov x, osr
		{assm.Jmp(7, JmpXNZeroDec).Delay(3).Encode(), 0x0347},               // jmp x--, 7 [3]
		{EncodeJmp(12, JmpAlways), 0x000c},                                  // jmp 12
		{Assembler{SidesetBits: 2}.Nop().Side(3).Delay(7).Encode(), 0xbf42}, // nop side 3 [7]
	}
	for i, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("case %d: got %#04x, want %#04x", i, tt.got, tt.want)
		}
	}
}

func TestAssembler_delayOverflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for delay wider than the delay field")
		}
	}()
	Assembler{SidesetBits: 1}.Nop().Delay(16)
}

func TestClkDiv(t *testing.T) {
	tests := []struct {
		freq, cpu uint32
		whole     uint16
		frac      uint8
		err       error
	}{
		// 800kHz bits at 10 cycles each from a 125MHz system clock.
		{8_000_000, 125_000_000, 15, 160, nil},
		{8_000_000, 48_000_000, 6, 0, nil},
		{125_000_000, 125_000_000, 1, 0, nil},
		{250_000_000, 125_000_000, 0, 0, ErrClkDivTooSmall},
		{1, 125_000_000, 0, 0, ErrClkDivTooLarge},
		{0, 125_000_000, 0, 0, ErrClkDivTooLarge},
	}
	for _, tt := range tests {
		whole, frac, err := ClkDivFromFrequency(tt.freq, tt.cpu)
		if err != tt.err || whole != tt.whole || frac != tt.frac {
			t.Errorf("ClkDivFromFrequency(%d, %d) = %d, %d, %v; want %d, %d, %v",
				tt.freq, tt.cpu, whole, frac, err, tt.whole, tt.frac, tt.err)
		}
	}

	// 125ns cycle at 125MHz.
	whole, frac, err := ClkDivFromPeriod(125, 125_000_000)
	if err != nil || whole != 15 || frac != 160 {
		t.Errorf("ClkDivFromPeriod(125, 125e6) = %d, %d, %v", whole, frac, err)
	}
}

func TestClaimMask(t *testing.T) {
	var m smMask
	for want := uint8(0); want < 4; want++ {
		got, ok := m.claimFirst()
		if !ok || got != want {
			t.Fatalf("claimFirst() = %d, %v; want %d, true", got, ok, want)
		}
	}
	if _, ok := m.claimFirst(); ok {
		t.Error("claimFirst succeeded with all state machines claimed")
	}
	if m.tryClaim(2) {
		t.Error("tryClaim(2) succeeded on a claimed state machine")
	}

	// A released state machine is handed out again.
	m.release(2)
	if m.has(2) {
		t.Error("state machine 2 still claimed after release")
	}
	if got, ok := m.claimFirst(); !ok || got != 2 {
		t.Errorf("claimFirst() after release = %d, %v; want 2, true", got, ok)
	}
	if m != 0b1111 {
		t.Errorf("mask = %04b, want 1111", m)
	}
}
