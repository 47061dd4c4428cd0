package wavegen

// PresetClockHz is the tick rate the presets were measured with: the 16 MHz
// internal oscillator with the DAC bus at 8 Mbit/s.
const PresetClockHz = 16_000_000

// Preset is a hand-calibrated per-sample delay. Nominal is what the delay alone
// would produce with a 32 sample table, Measured is what an oscilloscope showed.
// The difference is the cost of the SPI transfer and loop overhead, which
// dominates at short delays.
type Preset struct {
	Delay    uint32
	Nominal  float32 // Hz, 0 when unbounded
	Measured float32 // Hz
}

// Presets lists measured delays, shortest first.
var Presets = []Preset{
	{Delay: 0, Nominal: 0, Measured: 12000},
	{Delay: 9, Nominal: 55600, Measured: 10000},
	{Delay: 15, Nominal: 33300, Measured: 8500},
	{Delay: 19, Nominal: 26300, Measured: 8500},
	{Delay: 64, Nominal: 7810, Measured: 4800},
	{Delay: 99, Nominal: 5050, Measured: 3500},
	{Delay: 1136, Nominal: 440, Measured: 420},
	{Delay: 50000, Nominal: 10, Measured: 9.9},
}

// Common delays.
const (
	Delay440Hz = 1136
	Delay10Hz  = 50000
)

// PresetFor returns the calibrated preset for delay, if one exists.
func PresetFor(delay uint32) (Preset, bool) {
	for _, p := range Presets {
		if p.Delay == delay {
			return p, true
		}
	}
	return Preset{}, false
}
