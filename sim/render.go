package sim

import (
	"encoding/binary"
	"io"
	"math"
	"sort"
	"sync"
)

// Render resamples a recording to sampleRate with a zero-order hold, the way
// the DAC output holds each word until the next one. samples must be sorted by
// At. The result spans from the first to the last sample.
func Render(samples []Sample, tickHz, sampleRate int) []float32 {
	if len(samples) < 2 || tickHz <= 0 || sampleRate <= 0 {
		return nil
	}
	start := samples[0].At
	span := samples[len(samples)-1].At - start
	n := int(span * uint64(sampleRate) / uint64(tickHz))
	out := make([]float32, n)
	j := 0
	for i := range out {
		at := start + uint64(i)*uint64(tickHz)/uint64(sampleRate)
		for j+1 < len(samples) && samples[j+1].At <= at {
			j++
		}
		out[i] = samples[j].Value()
	}
	return out
}

// Frequency estimates the output frequency in Hz from rising crossings of
// midscale. It returns 0 when fewer than two crossings were recorded.
func Frequency(samples []Sample, tickHz int) float64 {
	var first, last uint64
	crossings := 0
	for i := 1; i < len(samples); i++ {
		if samples[i-1].Value() < 0 && samples[i].Value() >= 0 {
			if crossings == 0 {
				first = samples[i].At
			}
			last = samples[i].At
			crossings++
		}
	}
	if crossings < 2 || last == first {
		return 0
	}
	return float64(crossings-1) * float64(tickHz) / float64(last-first)
}

// At returns the DAC output level at tick, holding the latest sample written
// at or before it. Before the first sample it returns 0.
func At(samples []Sample, tick uint64) float32 {
	i := sort.Search(len(samples), func(i int) bool { return samples[i].At > tick })
	if i == 0 {
		return 0
	}
	return samples[i-1].Value()
}

// Reader streams rendered samples as mono float32 little-endian PCM,
// starting over at the end of buf. It is safe for use from an audio thread.
type Reader struct {
	mu  sync.Mutex
	buf []float32
	pos int
}

// NewReader returns a Reader looping over buf.
func NewReader(buf []float32) *Reader {
	return &Reader{buf: buf}
}

// Read fills p with whole float32 samples.
func (r *Reader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.buf) == 0 {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	n := len(p) / 4
	if n == 0 {
		return 0, io.ErrShortBuffer
	}
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(r.buf[r.pos]))
		r.pos++
		if r.pos == len(r.buf) {
			r.pos = 0
		}
	}
	return n * 4, nil
}
