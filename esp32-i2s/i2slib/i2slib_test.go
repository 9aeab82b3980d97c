package i2slib

import (
	"errors"
	"image/color"
	"testing"
	"time"

	i2s "github.com/robocamp/i2sparallel/esp32-i2s"
	"github.com/robocamp/i2sparallel/esp32-i2s/i2stest"
)

func TestDescriptorsFor(t *testing.T) {
	for _, tc := range []struct{ n, want int }{
		{0, 0},
		{1, 1},
		{i2s.DMAMax, 1},
		{i2s.DMAMax + 1, 2},
		{4096, 2},
		{8192, 3},
	} {
		if got := DescriptorsFor(tc.n); got != tc.want {
			t.Errorf("DescriptorsFor(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestLinkChain(t *testing.T) {
	buf := make([]byte, 8192)
	var descs [4]i2s.Descriptor
	n, err := LinkChain(descs[:], buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("used %d descriptors, want 3", n)
	}
	wantLen := []int{i2s.DMAMax, i2s.DMAMax, 8192 - 2*i2s.DMAMax}
	for i := 0; i < n; i++ {
		if descs[i].Length() != wantLen[i] || !descs[i].Owned() {
			t.Errorf("descriptor %d: length %d owned %v", i, descs[i].Length(), descs[i].Owned())
		}
	}
	if descs[0].Next() != &descs[1] || descs[1].Next() != &descs[2] || descs[2].Next() != nil {
		t.Error("chain not linked in order")
	}

	if _, err := LinkChain(descs[:2], buf); !errors.Is(err, ErrShortChain) {
		t.Errorf("short chain: %v", err)
	}
}

func TestMakeCyclic(t *testing.T) {
	var descs [2]i2s.Descriptor
	if _, err := LinkChain(descs[:], make([]byte, 5000)); err != nil {
		t.Fatal(err)
	}
	MakeCyclic(descs[:])
	if descs[1].Next() != &descs[0] {
		t.Error("tail not linked to head")
	}
	MakeCyclic(nil)
}

type fixture struct {
	p      *i2stest.Platform
	drv    *i2s.Driver[i2s.Original]
	frames [2][]byte
	descs  [2][2]i2s.Descriptor
}

func newFixture(t *testing.T, size int) (*fixture, *DoubleBuffer) {
	t.Helper()
	return newFixtureMode(t, size, false)
}

func newFixtureMode(t *testing.T, size int, polled bool) (*fixture, *DoubleBuffer) {
	t.Helper()
	f := &fixture{p: i2stest.New()}
	f.drv = i2s.New[i2s.Original](f.p)
	f.frames = [2][]byte{make([]byte, size), make([]byte, size)}
	pins := Hub75Pins{
		R1: 25, G1: 26, B1: 27, R2: 14, G2: 12, B2: 13,
		A: 23, B: 19, C: 5, D: 17, E: 18, LAT: 4, OE: 15, CLK: 16,
	}
	db, err := NewDoubleBuffer(f.drv, DoubleBufferConfig{
		Port:        i2s.I2S0,
		Width:       i2s.Width16,
		SampleRate:  10_000_000,
		Data:        pins.Data(),
		Clock:       pins.CLK,
		Frames:      f.frames,
		Descriptors: [2][]i2s.Descriptor{f.descs[0][:], f.descs[1][:]},
		Timeout:     time.Millisecond,
		Polled:      polled,
	})
	if err != nil {
		t.Fatal(err)
	}
	return f, db
}

func TestDoubleBuffer(t *testing.T) {
	f, db := newFixture(t, 4096)
	a, b := &f.descs[0], &f.descs[1]
	if !a[1].EOF() || !b[1].EOF() || a[0].EOF() {
		t.Error("EOF not marked on chain tails only")
	}
	if a[1].Next() != &a[0] || b[1].Next() != &b[0] {
		t.Error("chains not cyclic")
	}
	if !f.drv.Installed() || f.p.ISR[0] == nil {
		t.Fatal("driver not installed with EOF interrupt")
	}
	if &db.Front()[0] != &f.frames[0][0] || &db.Back()[0] != &f.frames[1][0] {
		t.Error("frame 0 not in front")
	}

	if err := db.WaitFree(); err != nil {
		t.Fatalf("initial WaitFree: %v", err)
	}
	db.Swap()
	if a[1].Next() != &b[0] || b[1].Next() != &b[0] {
		t.Error("swap did not redirect tails to B")
	}
	if &db.Back()[0] != &f.frames[0][0] {
		t.Error("frame 0 not in back after swap")
	}
	if err := db.WaitFree(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("WaitFree before EOF: %v", err)
	}
	f.p.FireEOF(i2s.I2S0)
	if err := db.WaitFree(); err != nil {
		t.Fatalf("WaitFree after EOF: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if f.drv.Installed() || f.p.ClockOn[0] {
		t.Error("driver still installed after Close")
	}
}

func TestDoubleBufferPolled(t *testing.T) {
	f, db := newFixtureMode(t, 4096, true)
	const outEOF = 1 << 12
	if f.p.ISR[0] != nil || f.p.Regs[0].INT_ENA.HasBits(outEOF) {
		t.Fatal("interrupt attached in polled mode")
	}
	frames := 0
	f.drv.SetShiftCompleteCallback(func() { frames++ })

	db.Swap()
	if err := db.WaitFree(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("WaitFree before EOF: %v", err)
	}
	f.p.FireEOF(i2s.I2S0)
	if err := db.WaitFree(); err != nil {
		t.Fatalf("WaitFree after EOF: %v", err)
	}
	if frames != 1 {
		t.Errorf("callback ran %d times, want 1", frames)
	}
	f.p.Settle(i2s.I2S0)

	// An EOF raised before the swap belongs to the previous frame.
	f.p.FireEOF(i2s.I2S0)
	db.Swap()
	f.p.Settle(i2s.I2S0)
	if err := db.WaitFree(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("stale EOF released the frame: %v", err)
	}
	f.p.FireEOF(i2s.I2S0)
	if err := db.WaitFree(); err != nil {
		t.Fatalf("WaitFree after EOF: %v", err)
	}
	if frames != 3 {
		t.Errorf("callback ran %d times, want 3", frames)
	}
}

func TestDoubleBufferBadConfig(t *testing.T) {
	drv := i2s.New[i2s.Original](i2stest.New())
	var descs [2][1]i2s.Descriptor
	_, err := NewDoubleBuffer(drv, DoubleBufferConfig{
		Frames:      [2][]byte{make([]byte, 16), make([]byte, 32)},
		Descriptors: [2][]i2s.Descriptor{descs[0][:], descs[1][:]},
	})
	if !errors.Is(err, ErrBadFrame) {
		t.Errorf("mismatched frames: %v", err)
	}
	_, err = NewDoubleBuffer(drv, DoubleBufferConfig{
		Width:       i2s.Width16,
		SampleRate:  10_000_000,
		Data:        make([]int, 16),
		Frames:      [2][]byte{make([]byte, 8000), make([]byte, 8000)},
		Descriptors: [2][]i2s.Descriptor{descs[0][:], descs[1][:]},
	})
	if !errors.Is(err, ErrShortChain) {
		t.Errorf("short chain: %v", err)
	}
	_, err = NewDoubleBuffer(drv, DoubleBufferConfig{
		Width:       i2s.Width16,
		SampleRate:  1,
		Data:        make([]int, 16),
		Frames:      [2][]byte{make([]byte, 16), make([]byte, 16)},
		Descriptors: [2][]i2s.Descriptor{descs[0][:], descs[1][:]},
	})
	if !errors.Is(err, i2s.ErrInvalidArg) {
		t.Errorf("bad rate: %v", err)
	}
	if drv.Installed() {
		t.Error("driver installed by failed constructor")
	}
}

func TestHub75Pins(t *testing.T) {
	data := Hub75Pins{R1: 1, G1: 2, B1: 3, R2: 4, G2: 5, B2: 6, A: 7, B: 8, C: 9, D: 10, E: i2s.NoPin, LAT: 11, OE: 12}.Data()
	if len(data) != 16 {
		t.Fatalf("%d lines", len(data))
	}
	want := []int{1, 2, 3, 4, 5, 6, -1, -1, 7, 8, 9, 10, -1, 11, 12, -1}
	for i := range want {
		if data[i] != want[i] {
			t.Errorf("line %d: %d, want %d", i, data[i], want[i])
		}
	}
}

func word(frame []byte, i int) uint16 {
	return uint16(frame[2*i]) | uint16(frame[2*i+1])<<8
}

func TestHub75Display(t *testing.T) {
	f, db := newFixture(t, Hub75FrameSize(4, 4))
	hub, err := NewHub75(db, Hub75Config{Width: 4, Height: 4})
	if err != nil {
		t.Fatal(err)
	}
	if w, h := hub.Size(); w != 4 || h != 4 {
		t.Errorf("size %dx%d", w, h)
	}
	hub.SetPixel(0, 0, color.RGBA{R: 0xff})
	hub.SetPixel(1, 2, color.RGBA{B: 0xff})
	hub.SetPixel(2, 3, color.RGBA{R: 0x80, G: 0x80, B: 0x7f})
	hub.SetPixel(9, 9, color.RGBA{R: 0xff}) // clipped

	if err := hub.Display(); err != nil {
		t.Fatal(err)
	}
	frame := f.frames[1]
	want := []uint16{
		// row pair 0
		0x0001, 0x0020, 0x0000, 0x6000,
		// row pair 1
		0x0100, 0x0100, 0x0118, 0x6100,
	}
	for i, w := range want {
		if got := word(frame, i); got != w {
			t.Errorf("word %d: %#04x, want %#04x", i, got, w)
		}
	}
	// The first frame has not been released yet.
	if err := hub.Display(); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Display before EOF: %v", err)
	}
	f.p.FireEOF(i2s.I2S0)
	if err := hub.Display(); err != nil {
		t.Fatal(err)
	}
	if got := word(f.frames[0], 0); got != 0x0001 {
		t.Errorf("second frame word 0: %#04x", got)
	}
}

func TestHub75SwapHalfWords(t *testing.T) {
	f, db := newFixture(t, Hub75FrameSize(4, 2))
	hub, err := NewHub75(db, Hub75Config{Width: 4, Height: 2, SwapHalfWords: true})
	if err != nil {
		t.Fatal(err)
	}
	hub.SetPixel(0, 0, color.RGBA{G: 0xff})
	if err := hub.Display(); err != nil {
		t.Fatal(err)
	}
	frame := f.frames[1]
	if word(frame, 0) != 0 || word(frame, 1) != 0x0002 {
		t.Errorf("words %#04x %#04x", word(frame, 0), word(frame, 1))
	}
	if word(frame, 2) != 0x6000 {
		t.Errorf("latch word %#04x", word(frame, 2))
	}
}

func TestHub75BadGeometry(t *testing.T) {
	_, db := newFixture(t, Hub75FrameSize(4, 4))
	for _, cfg := range []Hub75Config{
		{Width: 0, Height: 4},
		{Width: 4, Height: 3},
		{Width: 8, Height: 4}, // frame size mismatch
		{Width: 2, Height: 128},
	} {
		if _, err := NewHub75(db, cfg); !errors.Is(err, ErrBadFrame) {
			t.Errorf("%+v: %v", cfg, err)
		}
	}
}

func TestDeadliner(t *testing.T) {
	var ch deadliner
	for _, tc := range []struct {
		in, want time.Duration
	}{
		{3 * time.Millisecond, 3 * time.Millisecond},
		{1 << 62, 1 << 62},
		{0, 0},
		{-time.Second, 0},
	} {
		ch.setTimeout(tc.in)
		if ch.timeout != tc.want {
			t.Errorf("setTimeout(%v): %v, want %v", tc.in, ch.timeout, tc.want)
		}
	}

	ch.setTimeout(0)
	if ch.newDeadline().expired() {
		t.Error("zero timeout expired")
	}
	ch.setTimeout(1 << 62)
	if ch.newDeadline().expired() {
		t.Error("long timeout expired at once")
	}
	ch.setTimeout(time.Nanosecond)
	dl := ch.newDeadline()
	time.Sleep(time.Millisecond)
	if !dl.expired() {
		t.Error("1ns deadline not expired after 1ms")
	}
}
