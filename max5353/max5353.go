// Package max5353 implements a driver for the MAX5353 12-bit voltage output DAC.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/MAX5352-MAX5353.pdf
package max5353

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Bus settings the device accepts. CS is driven by the driver.
const (
	MaxFrequency = 10_000_000
	Mode         = 0 // CPOL=0, CPHA=0, MSB first.
)

// Control bits 15:13 of an input word.
const (
	// CmdLoadUpdate loads the input register and updates the output at once.
	CmdLoadUpdate uint16 = 0b000 << 13
	cmdMask       uint16 = 0b111 << 13
)

var (
	ErrNotConfigured = errors.New("max5353:not configured")
	errBadCommand    = errors.New("max5353:initial word carries control bits")
)

// Pin is an output pin. machine.Pin satisfies it.
type Pin interface {
	High()
	Low()
}

// Device wraps a MAX5353 connected over SPI.
type Device struct {
	bus        drivers.SPI
	cs         Pin
	configured bool
}

// New returns a MAX5353 device on bus. The bus must already be configured for
// Mode and a frequency up to MaxFrequency. *machine.SPI, piolib.SPI and
// bitbang.SPI all work.
func New(bus drivers.SPI, cs Pin) *Device {
	return &Device{bus: bus, cs: cs}
}

// Configure deselects the device and writes the initial word, which sets the
// output before the first sample. Only load-and-update words are accepted.
func (d *Device) Configure(initial uint16) error {
	if initial&cmdMask != CmdLoadUpdate {
		return errBadCommand
	}
	d.cs.High()
	d.configured = true
	return d.write(initial)
}

// Out writes one 16-bit word to the DAC input register.
func (d *Device) Out(word uint16) error {
	if !d.configured {
		return ErrNotConfigured
	}
	return d.write(word)
}

// write sends word MSB first one byte at a time. Transfer is the one call
// every bus shares: the PIO SPI rejects a write-only Tx.
func (d *Device) write(word uint16) (err error) {
	d.cs.Low()
	if _, err = d.bus.Transfer(byte(word >> 8)); err == nil {
		_, err = d.bus.Transfer(byte(word))
	}
	d.cs.High()
	return err
}
