// Package bitbang implements an SPI controller in software over plain GPIO pins.
// It is slow, but lets the DAC sit on any free pins.
package bitbang

import "errors"

var errLengthMismatch = errors.New("bitbang:length mismatch")

// Output is an output pin. machine.Pin satisfies it.
type Output interface {
	High()
	Low()
}

// Input is an input pin. machine.Pin satisfies it.
type Input interface {
	Get() bool
}

// Waiter spaces out clock edges. systick timers satisfy it.
type Waiter interface {
	Wait(ticks uint32)
}

// Config holds the pins and timing of a SPI.
type Config struct {
	SCK Output
	SDO Output

	// SDI may be nil for a write-only bus, in which case reads return zeros.
	SDI Input

	// Delay waits HalfPeriod ticks after every clock edge. A nil Delay runs
	// the bus as fast as the pins toggle.
	Delay      Waiter
	HalfPeriod uint32
}

// SPI is a mode 0, MSB first SPI controller. It implements drivers.SPI.
type SPI struct {
	sck, sdo   Output
	sdi        Input
	delay      Waiter
	halfPeriod uint32
}

// NewSPI returns a SPI with SCK idling low.
func NewSPI(cfg Config) *SPI {
	cfg.SCK.Low()
	cfg.SDO.Low()
	return &SPI{
		sck:        cfg.SCK,
		sdo:        cfg.SDO,
		sdi:        cfg.SDI,
		delay:      cfg.Delay,
		halfPeriod: cfg.HalfPeriod,
	}
}

// Tx transmits w and receives into r at the same time. The buffers must be the
// same length unless one of them is nil, in which case only the other side is used.
func (spi *SPI) Tx(w, r []byte) error {
	switch {
	case w == nil:
		for i := range r {
			r[i] = spi.shift(0)
		}
	case r == nil:
		for _, c := range w {
			spi.shift(c)
		}
	case len(w) != len(r):
		return errLengthMismatch
	default:
		for i, c := range w {
			r[i] = spi.shift(c)
		}
	}
	return nil
}

// Transfer writes a single byte and returns the byte read at the same time.
func (spi *SPI) Transfer(c byte) (rx byte, _ error) {
	return spi.shift(c), nil
}

func (spi *SPI) shift(c byte) (rx byte) {
	for bit := 7; bit >= 0; bit-- {
		// Data changes while SCK is low and is sampled on the rising edge.
		if c&(1<<bit) != 0 {
			spi.sdo.High()
		} else {
			spi.sdo.Low()
		}
		spi.wait()
		spi.sck.High()
		if spi.sdi != nil && spi.sdi.Get() {
			rx |= 1 << bit
		}
		spi.wait()
		spi.sck.Low()
	}
	return rx
}

func (spi *SPI) wait() {
	if spi.delay != nil {
		spi.delay.Wait(spi.halfPeriod)
	}
}
