//go:build cortexm

package systick

import "device/arm"

// SysTick paces with the Cortex-M core timer clocked from the core clock.
// The core timer must not be used by anything else while a SysTick is in use.
type SysTick struct{}

// Init stops the core timer, loads the maximum reload value and restarts it
// from the core clock with interrupts disabled.
func (SysTick) Init() {
	arm.SYST.SYST_CSR.Set(0)
	arm.SYST.SYST_RVR.Set(reloadMax)
	arm.SYST.SYST_CVR.Set(0)
	arm.SYST.SYST_CSR.Set(arm.SYST_CSR_ENABLE | arm.SYST_CSR_CLKSOURCE)
}

// Wait spins for ticks core clock cycles. Delays longer than the 24-bit
// counter are split into chunks. Wait(1) returns at once.
func (s SysTick) Wait(ticks uint32) {
	for n := chunk(ticks); n != 0; n = chunk(ticks) {
		s.wait(n)
		ticks -= n
	}
}

// wait requires ticks >= 2.
func (SysTick) wait(ticks uint32) {
	arm.SYST.SYST_RVR.Set(ticks - 1)
	arm.SYST.SYST_CVR.Set(0) // Any write clears the counter and COUNTFLAG.
	for !arm.SYST.SYST_CSR.HasBits(arm.SYST_CSR_COUNTFLAG) {
	}
}
