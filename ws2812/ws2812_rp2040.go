//go:build rp2040

package ws2812

import (
	"device/arm"
	"device/rp"
	"machine"
	"runtime/interrupt"

	"periph.io/x/conn/v3/physic"
)

const sysTickMask = 1<<24 - 1

// SysTick returns the Cortex-M SysTick timer configured as a free-running
// 24-bit counter at the CPU frequency. The TinyGo rp2040 runtime keeps time
// with the TIMER peripheral, so SysTick is free for pacing bits.
func SysTick() Counter {
	arm.SYST.SYST_CSR.Set(0)
	arm.SYST.SYST_RVR.Set(sysTickMask)
	arm.SYST.SYST_CVR.Set(0)
	arm.SYST.SYST_CSR.Set(arm.SYST_CSR_ENABLE_Msk | arm.SYST_CSR_CLKSOURCE_Msk)
	return sysTick{}
}

type sysTick struct{}

// SysTick counts down; invert it so callers see an increasing count.
func (sysTick) Ticks() uint32 { return sysTickMask - arm.SYST.SYST_CVR.Get() }

func (sysTick) Frequency() physic.Frequency {
	return physic.Frequency(machine.CPUFrequency()) * physic.Hertz
}

func (sysTick) Width() uint8 { return 24 }

// Timer returns the RP2040 system timer, a 1MHz counter whose low 32 bits
// are read without latching.
func Timer() Counter { return timer{} }

type timer struct{}

func (timer) Ticks() uint32 { return rp.TIMER.TIMERAWL.Get() }

func (timer) Frequency() physic.Frequency { return physic.MegaHertz }

func (timer) Width() uint8 { return 32 }

// Interrupts is a Guard that masks all interrupts on the current core.
type Interrupts struct{}

func (Interrupts) Disable() uintptr { return uintptr(interrupt.Disable()) }

func (Interrupts) Restore(state uintptr) { interrupt.Restore(interrupt.State(state)) }
