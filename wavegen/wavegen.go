// Package wavegen streams a waveform table to a DAC one sample at a time,
// pacing the samples with a blocking timer.
//
// The output frequency is len(table) times the time spent per sample, which is
// the configured delay plus whatever the DAC transfer and loop itself cost.
// The delay is picked by hand; see Presets for calibrated values.
package wavegen

import "github.com/tinygo-org/sinedac/wave"

// DAC is the output side of the generator. *max5353.Device implements it.
type DAC interface {
	// Configure is called once before the first Out with the initial word.
	Configure(initial uint16) error
	// Out writes one word. The generator never inspects the result.
	Out(word uint16) error
}

// Timer paces the generator.
type Timer interface {
	// Init sets up the time base. Called once before the first Wait.
	Init()
	// Wait blocks for the given number of ticks.
	Wait(ticks uint32)
}

// Config configures a Generator.
type Config struct {
	// Table to stream. Defaults to wave.Sine.
	Table *wave.Table

	// Delay in timer ticks after every sample.
	Delay uint32

	// Initial word written when the DAC is configured, used as given.
	// The sine table starts at wave.Word(wave.CodeMid).
	Initial uint16
}

// Generator outputs Table cyclically. It is not safe for concurrent use.
type Generator struct {
	dac     DAC
	timer   Timer
	table   *wave.Table
	delay   uint32
	initial uint16
	started bool
	counter uint32
}

// New returns a Generator ready to Run.
func New(dac DAC, timer Timer, cfg Config) *Generator {
	if cfg.Table == nil {
		cfg.Table = &wave.Sine
	}
	return &Generator{
		dac:     dac,
		timer:   timer,
		table:   cfg.Table,
		delay:   cfg.Delay,
		initial: cfg.Initial,
	}
}

// Start configures the DAC and initializes the timer. Only the first call has
// any effect. Step and Run call Start.
func (g *Generator) Start() {
	if g.started {
		return
	}
	g.started = true
	g.dac.Configure(g.initial)
	g.timer.Init()
}

// Step outputs the next sample and then waits for the configured delay.
// The first Step starts the generator if Start was not called.
func (g *Generator) Step() {
	g.Start()
	sample := g.table.At(wave.Index(g.counter))
	g.dac.Out(sample)
	g.counter++
	g.timer.Wait(g.delay)
}

// Run starts the generator and outputs samples forever.
func (g *Generator) Run() {
	g.Start()
	for {
		g.Step()
	}
}

// Counter returns the number of samples output so far, modulo 2^32.
func (g *Generator) Counter() uint32 {
	return g.counter
}

// Delay returns the per-sample delay in ticks.
func (g *Generator) Delay() uint32 {
	return g.delay
}
