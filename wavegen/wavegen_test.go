package wavegen

import (
	"math"
	"testing"

	"github.com/tinygo-org/sinedac/systick"
	"github.com/tinygo-org/sinedac/wave"
)

// recorder implements DAC and Timer and logs calls in order.
type recorder struct {
	calls   []string
	initial []uint16
	outs    []uint16
	waits   []uint32
	limit   int // panic with stop{} after this many Out calls, 0 = never.
}

type stop struct{}

func (r *recorder) Configure(initial uint16) error {
	r.calls = append(r.calls, "configure")
	r.initial = append(r.initial, initial)
	return nil
}

func (r *recorder) Out(word uint16) error {
	r.calls = append(r.calls, "out")
	r.outs = append(r.outs, word)
	if r.limit > 0 && len(r.outs) == r.limit {
		panic(stop{})
	}
	return nil
}

func (r *recorder) Init() { r.calls = append(r.calls, "init") }

func (r *recorder) Wait(ticks uint32) {
	r.calls = append(r.calls, "wait")
	r.waits = append(r.waits, ticks)
}

func (r *recorder) count(call string) (n int) {
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

func TestFirstSamples(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{Delay: 7})
	g.Start()
	for i := 0; i < 3; i++ {
		g.Step()
	}
	got := r.outs
	for i := range got {
		if got[i] != wave.Sine[i] {
			t.Errorf("sample %d = %#x, want %#x", i, got[i], wave.Sine[i])
		}
	}
	if g.Counter() != 3 {
		t.Errorf("counter = %d, want 3", g.Counter())
	}
}

func TestWrapToFirstSample(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{})
	g.Start()
	g.counter = 31
	g.Step()
	g.Step()
	got := r.outs
	if got[0] != wave.Sine[31] || got[1] != wave.Sine[0] {
		t.Errorf("samples = %#x %#x, want %#x %#x", got[0], got[1], wave.Sine[31], wave.Sine[0])
	}
	if g.Counter() != 33 {
		t.Errorf("counter = %d, want 33", g.Counter())
	}
}

func TestCounterOverflow(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{})
	g.Start()
	g.counter = math.MaxUint32 - 1
	for i := 0; i < 3; i++ {
		g.Step()
	}
	want := []uint16{wave.Sine[30], wave.Sine[31], wave.Sine[0]}
	got := r.outs
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %#x, want %#x", i, got[i], want[i])
		}
	}
	if g.Counter() != 1 {
		t.Errorf("counter = %d, want 1 after wraparound", g.Counter())
	}
}

func TestFullPeriodFromAnyStart(t *testing.T) {
	for _, start := range []uint32{0, 5, 31, 32, 1 << 20, math.MaxUint32 - 10, math.MaxUint32} {
		r := &recorder{}
		g := New(r, r, Config{})
		g.Start()
		g.counter = start
		for i := 0; i < wave.Len; i++ {
			g.Step()
		}
		got := r.outs
		seen := make(map[uint32]bool)
		for i, w := range got {
			idx := (start + uint32(i)) % wave.Len
			if w != wave.Sine[idx] {
				t.Errorf("start %d step %d = %#x, want table[%d] %#x", start, i, w, idx, wave.Sine[idx])
			}
			seen[idx] = true
		}
		if len(seen) != wave.Len {
			t.Errorf("start %d visited %d entries, want %d", start, len(seen), wave.Len)
		}
	}
}

func TestPacing(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{Delay: 1136})
	g.Start()
	g.Start() // no-op
	for i := 0; i < 5; i++ {
		g.Step()
	}
	if r.calls[0] != "configure" || r.calls[1] != "init" {
		t.Fatalf("setup calls = %v, want configure then init", r.calls[:2])
	}
	if r.count("configure") != 1 || r.count("init") != 1 {
		t.Errorf("configure/init called %d/%d times, want 1/1", r.count("configure"), r.count("init"))
	}
	loop := r.calls[2:]
	for i, c := range loop {
		want := "out"
		if i%2 == 1 {
			want = "wait"
		}
		if c != want {
			t.Fatalf("call %d = %q, want %q (%v)", i, c, want, loop)
		}
	}
	for i, w := range r.waits {
		if w != 1136 {
			t.Errorf("wait %d = %d ticks, want 1136", i, w)
		}
	}
}

func TestRunInitializesOnceThenLoops(t *testing.T) {
	r := &recorder{limit: 70}
	g := New(r, r, Config{Delay: 3, Initial: wave.Word(0x123)})
	func() {
		defer func() {
			if v := recover(); v != nil {
				if _, ok := v.(stop); !ok {
					panic(v)
				}
			}
		}()
		g.Run()
		t.Fatal("Run returned")
	}()
	if r.initial[0] != wave.Word(0x123) {
		t.Errorf("initial word = %#x, want %#x", r.initial[0], wave.Word(0x123))
	}
	if r.count("configure") != 1 || r.count("init") != 1 {
		t.Errorf("configure/init called %d/%d times, want 1/1", r.count("configure"), r.count("init"))
	}
	outs := r.outs
	if len(outs) != 70 {
		t.Fatalf("got %d samples, want 70", len(outs))
	}
	for i, w := range outs {
		if w != wave.Sine[i%wave.Len] {
			t.Errorf("sample %d = %#x, want %#x", i, w, wave.Sine[i%wave.Len])
		}
	}
	// Panic happened inside Out, so the last sample has no wait yet.
	if n := r.count("wait"); n != 69 {
		t.Errorf("waits = %d, want 69", n)
	}
}

func TestDefaults(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{})
	g.Start()
	if r.initial[0] != 0 {
		t.Errorf("zero initial configured as %#x, want 0", r.initial[0])
	}
	if g.Delay() != 0 {
		t.Errorf("default delay = %d, want 0", g.Delay())
	}
	if g.table != &wave.Sine {
		t.Error("default table is not wave.Sine")
	}
	square := wave.Table{}
	for i := wave.Len / 2; i < wave.Len; i++ {
		square[i] = wave.Word(wave.CodeMax)
	}
	r = &recorder{}
	g = New(r, r, Config{Table: &square})
	g.Start()
	for i := 0; i < wave.Len; i++ {
		g.Step()
	}
	for i, w := range r.outs {
		if w != square[i] {
			t.Errorf("square sample %d = %#x, want %#x", i, w, square[i])
		}
	}
}

func TestPresetFor(t *testing.T) {
	p, ok := PresetFor(Delay440Hz)
	if !ok || p.Nominal != 440 || p.Measured != 420 {
		t.Errorf("PresetFor(%d) = %+v, %v", Delay440Hz, p, ok)
	}
	if _, ok := PresetFor(1234); ok {
		t.Error("PresetFor(1234) found a preset")
	}
	for i := 1; i < len(Presets); i++ {
		if Presets[i].Delay <= Presets[i-1].Delay {
			t.Errorf("presets not sorted at %d", i)
		}
	}
}

func TestIndexingWithNopTimer(t *testing.T) {
	r := &recorder{}
	g := New(r, systick.Nop{}, Config{Delay: 50000})
	g.Start()
	for i := 0; i < 3*wave.Len; i++ {
		g.Step()
	}
	if len(r.waits) != 0 {
		t.Errorf("recorder saw %d waits, want none", len(r.waits))
	}
	for i, w := range r.outs {
		if w != wave.Sine[i%wave.Len] {
			t.Fatalf("sample %d = %#x, want %#x", i, w, wave.Sine[i%wave.Len])
		}
	}
}

func TestInitialZeroVolts(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{Initial: wave.Word(0), Delay: Delay10Hz})
	g.Start()
	if len(r.initial) != 1 || r.initial[0] != 0 {
		t.Errorf("initial words = %#x, want [0]", r.initial)
	}
	if g.Delay() != Delay10Hz {
		t.Errorf("Delay() = %d, want %d", g.Delay(), Delay10Hz)
	}
}

func TestStepStartsGenerator(t *testing.T) {
	r := &recorder{}
	g := New(r, r, Config{Delay: 1})
	g.Step()
	g.Step()
	want := []string{"configure", "init", "out", "wait", "out", "wait"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", r.calls, want)
		}
	}
}

func TestStepWithUninitializedBusyTimer(t *testing.T) {
	r := &recorder{}
	timer := &systick.Busy{}
	g := New(r, timer, Config{Delay: 1})
	g.Step()
	if timer.ClockHz != systick.DefaultClockHz {
		t.Errorf("timer ClockHz = %d, want %d after Step", timer.ClockHz, systick.DefaultClockHz)
	}
	if r.count("configure") != 1 || len(r.outs) != 1 {
		t.Errorf("calls = %v, want configure before the first out", r.calls)
	}
}
