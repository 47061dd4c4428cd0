// Package sim is a virtual bench for the sine generator: a tick clock, a DAC
// that records what it is sent and when, and helpers to turn the recording
// into audio or a measured frequency.
package sim

import (
	"errors"

	"github.com/tinygo-org/sinedac/wave"
)

var errNotConfigured = errors.New("sim:DAC not configured")

// Clock is a virtual tick counter implementing wavegen.Timer.
// Waiting advances the clock instead of blocking.
type Clock struct {
	now   uint64
	inits int
	waits int
}

// Init only counts the call; the clock runs from zero on creation.
func (c *Clock) Init() {
	c.inits++
}

// Wait advances the clock by ticks.
func (c *Clock) Wait(ticks uint32) {
	c.now += uint64(ticks)
	c.waits++
}

// Advance moves the clock without counting a Wait.
func (c *Clock) Advance(ticks uint64) { c.now += ticks }

// Now returns the number of ticks elapsed.
func (c *Clock) Now() uint64 { return c.now }

// Inits returns how many times Init was called.
func (c *Clock) Inits() int { return c.inits }

// Waits returns how many times Wait was called.
func (c *Clock) Waits() int { return c.waits }

// Sample is one word latched by the DAC at tick At.
type Sample struct {
	At   uint64
	Word uint16
}

// Value returns the DAC output scaled to [-1, 1] around midscale.
func (s Sample) Value() float32 {
	return float32(int(wave.Code(s.Word))-wave.CodeMid) / wave.CodeMid
}

// Event kinds recorded by DAC.
const (
	EventConfigure = iota
	EventOut
)

// DAC records words written to it, implementing wavegen.DAC.
type DAC struct {
	// Clock supplies timestamps. Required.
	Clock *Clock

	// TransferTicks is how long each write holds the caller, typically
	// 16 bits at the bus rate plus chip select handling.
	TransferTicks uint32

	Samples []Sample
	Events  []int

	configured bool
}

// Configure latches the initial word at the current time.
func (d *DAC) Configure(initial uint16) error {
	d.configured = true
	d.Events = append(d.Events, EventConfigure)
	d.latch(initial)
	return nil
}

// Out latches word at the current time and advances the clock by TransferTicks.
func (d *DAC) Out(word uint16) error {
	if !d.configured {
		return errNotConfigured
	}
	d.Events = append(d.Events, EventOut)
	d.latch(word)
	return nil
}

func (d *DAC) latch(word uint16) {
	d.Clock.Advance(uint64(d.TransferTicks))
	d.Samples = append(d.Samples, Sample{At: d.Clock.Now(), Word: word})
}

// Outputs returns the samples written with Out, skipping the initial word.
func (d *DAC) Outputs() []Sample {
	if len(d.Samples) == 0 {
		return nil
	}
	return d.Samples[1:]
}

// Reset drops the recording but keeps the DAC configured.
func (d *DAC) Reset() {
	if len(d.Samples) > 0 {
		d.Samples = d.Samples[len(d.Samples)-1:]
	}
	d.Events = d.Events[:0]
}
