// Package wave holds the fixed-point waveform tables streamed to a MAX5353 DAC.
//
// A MAX5353 input word is 16 bits wide: bits 15:13 are control bits, bits 12:1
// carry the 12-bit code and bit 0 is a sub-bit that must be zero. All table
// entries are complete words with the control bits cleared, which asks the
// DAC to load and update its output immediately.
package wave

import "math"

// Len is the number of samples in one waveform period. It must stay a power of two.
const Len = 32

const (
	// CodeMax is the largest 12-bit DAC code.
	CodeMax = 1<<12 - 1
	// CodeMid is the midscale DAC code.
	CodeMid = 1 << 11

	codeShift = 1
	codeMask  = CodeMax << codeShift
)

// Table is one period of a waveform as DAC words.
type Table [Len]uint16

// Sine is a 12-bit 32-element sine wave with every code shifted into bits 12:1.
// With the MAX5353 in unipolar rail-to-rail configuration code 0 outputs 0V,
// code 0x800 outputs Vref and code 0xFFF outputs 2*Vref.
var Sine = Table{
	2048 * 2, 2448 * 2, 2832 * 2, 3186 * 2, 3496 * 2, 3751 * 2, 3940 * 2, 4057 * 2,
	4095 * 2, 4057 * 2, 3940 * 2, 3751 * 2, 3496 * 2, 3186 * 2, 2832 * 2, 2448 * 2,
	2048 * 2, 1648 * 2, 1264 * 2, 910 * 2, 600 * 2, 345 * 2, 156 * 2, 39 * 2,
	0 * 2, 39 * 2, 156 * 2, 345 * 2, 600 * 2, 910 * 2, 1264 * 2, 1648 * 2,
}

// Index maps a free-running sample counter onto a table position.
// The result is always in [0, Len).
func Index(counter uint32) uint32 {
	return counter & (Len - 1)
}

// At returns the word at position i. i must already be in range, see Index.
func (t *Table) At(i uint32) uint16 {
	return t[i]
}

// Word builds a load-and-update DAC word from a 12-bit code.
// Codes above CodeMax are truncated to their low 12 bits.
func Word(code uint16) uint16 {
	return (code << codeShift) & codeMask
}

// Code extracts the 12-bit DAC code from a word.
func Code(word uint16) uint16 {
	return (word & codeMask) >> codeShift
}

// Generate computes a sine table around mid with the given peak amplitude,
// starting at phase zero like Sine. Codes are rounded and clamped to [0, CodeMax].
func Generate(mid, amplitude uint16) Table {
	var t Table
	for i := range t {
		v := float64(mid) + float64(amplitude)*math.Sin(2*math.Pi*float64(i)/Len)
		v = math.Round(v)
		if v < 0 {
			v = 0
		} else if v > CodeMax {
			v = CodeMax
		}
		t[i] = Word(uint16(v))
	}
	return t
}
