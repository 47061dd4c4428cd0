// Package systick provides blocking tick timers for pacing sample output.
//
// All timers here busy-wait: Wait never yields to the scheduler, so the caller
// owns the CPU for the whole delay.
package systick

import "time"

// DefaultClockHz is the tick rate of the 16 MHz internal oscillator.
const DefaultClockHz = 16_000_000

// Busy is a portable busy-wait timer based on the monotonic clock.
type Busy struct {
	// ClockHz is the tick rate. Init sets DefaultClockHz when zero.
	ClockHz uint32
}

// Init sets up the time base.
func (b *Busy) Init() {
	if b.ClockHz == 0 {
		b.ClockHz = DefaultClockHz
	}
}

// Wait spins until ticks ticks have elapsed.
func (b *Busy) Wait(ticks uint32) {
	if ticks == 0 {
		return
	}
	d := b.Duration(ticks)
	start := time.Now()
	for time.Since(start) < d {
	}
}

// Duration converts a tick count to wall time, rounding down to the nanosecond.
// A zero ClockHz counts as DefaultClockHz.
func (b *Busy) Duration(ticks uint32) time.Duration {
	hz := uint64(b.ClockHz)
	if hz == 0 {
		hz = DefaultClockHz
	}
	return time.Duration(uint64(ticks) * uint64(time.Second) / hz)
}

// reloadMax is the largest value the 24-bit SysTick reload register holds.
const reloadMax = 1<<24 - 1

// chunk returns how many ticks the next hardware wait should cover when
// remaining ticks are left, or 0 when done. Chunks are never shorter than two
// ticks since a reload value of zero never sets COUNTFLAG: a lone tick is
// dropped, the call overhead already exceeds it, and the chunk before a
// remainder of one is shortened by a tick.
func chunk(remaining uint32) uint32 {
	switch {
	case remaining < 2:
		return 0
	case remaining <= reloadMax:
		return remaining
	case remaining-reloadMax < 2:
		return reloadMax - 1
	default:
		return reloadMax
	}
}

// Nop is a Timer that never waits.
type Nop struct{}

func (Nop) Init() {}

func (Nop) Wait(uint32) {}
