package analyzer

import (
	"math"
	"testing"
)

type fakeTap struct {
	samples []float32
}

func (f *fakeTap) Latest(dst []float32) int {
	n := len(f.samples)
	if n > len(dst) {
		n = len(dst)
	}
	pad := len(dst) - n
	clear(dst[:pad])
	copy(dst[pad:], f.samples[len(f.samples)-n:])
	return n
}

func sine(n, bin int, amp float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*float64(bin)*float64(i)/float64(n)))
	}
	return out
}

func TestFrequencyBinCountIsHalfFFTSize(t *testing.T) {
	a, err := New(&fakeTap{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if a.FrequencyBinCount() != 128 {
		t.Fatalf("expected 128 bins, got %d", a.FrequencyBinCount())
	}
	if got := len(a.FrequencyData()); got != 128 {
		t.Fatalf("expected 128 values, got %d", got)
	}
}

func TestSilenceYieldsZeros(t *testing.T) {
	a, err := New(&fakeTap{samples: make([]float32, 256)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i, v := range a.FrequencyData() {
		if v != 0 {
			t.Fatalf("bin %d = %d, expected 0 for silence", i, v)
		}
	}
}

func TestEmptyTapYieldsZeros(t *testing.T) {
	a, err := New(&fakeTap{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for i, v := range a.FrequencyData() {
		if v != 0 {
			t.Fatalf("bin %d = %d, expected 0 with no samples", i, v)
		}
	}
}

func TestSinePeaksInItsBin(t *testing.T) {
	a, err := New(&fakeTap{samples: sine(256, 16, 1)})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	data := a.FrequencyData()
	if data[16] != 255 {
		t.Fatalf("expected full-scale bin 16, got %d", data[16])
	}
	if data[64] >= 128 {
		t.Fatalf("expected distant bin 64 to stay low, got %d", data[64])
	}
	for i, v := range data {
		if v > data[16] {
			t.Fatalf("bin %d (%d) exceeds the tone bin", i, v)
		}
	}
}

func TestSmoothingDecaysAfterSignalStops(t *testing.T) {
	tap := &fakeTap{samples: sine(256, 8, 1)}
	a, err := New(tap)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	for range 20 {
		a.FrequencyData()
	}
	loud := a.FrequencyData()[8]

	tap.samples = make([]float32, 256)
	first := a.FrequencyData()[8]
	if first == 0 {
		t.Fatal("expected smoothing to hold energy for at least one frame")
	}
	for range 200 {
		a.FrequencyData()
	}
	if got := a.FrequencyData()[8]; got != 0 || got >= loud {
		t.Fatalf("expected bin to decay to 0, got %d (loud %d)", got, loud)
	}
}

func TestNoSmoothingIsMemoryless(t *testing.T) {
	tap := &fakeTap{samples: sine(256, 8, 1)}
	a, err := New(tap, WithSmoothing(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	a.FrequencyData()
	tap.samples = nil
	if got := a.FrequencyData()[8]; got != 0 {
		t.Fatalf("expected 0 without smoothing, got %d", got)
	}
}

func TestNewValidatesOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"not power of two", []Option{WithFFTSize(300)}},
		{"too small", []Option{WithFFTSize(16)}},
		{"too large", []Option{WithFFTSize(65536)}},
		{"smoothing", []Option{WithSmoothing(1.5)}},
		{"decibels", []Option{WithDecibelRange(-30, -100)}},
	}
	for _, tt := range tests {
		if _, err := New(&fakeTap{}, tt.opts...); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if _, err := New(nil); err == nil {
		t.Error("expected error for nil tap")
	}

	a, err := New(&fakeTap{}, WithFFTSize(1024))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if a.FrequencyBinCount() != 512 {
		t.Fatalf("expected 512 bins, got %d", a.FrequencyBinCount())
	}
}

func TestWindowIsPeriodicBlackman(t *testing.T) {
	a, err := New(&fakeTap{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	w := a.window
	if len(w) != 256 {
		t.Fatalf("expected 256 coefficients, got %d", len(w))
	}
	if math.Abs(w[0]) > 1e-12 {
		t.Fatalf("expected window to start at 0, got %g", w[0])
	}
	if math.Abs(w[128]-1) > 1e-12 {
		t.Fatalf("expected window peak 1 at center, got %g", w[128])
	}
	// Periodic: symmetric around n/2, with no repeated end point.
	if math.Abs(w[1]-w[255]) > 1e-12 {
		t.Fatalf("expected w[1] == w[255], got %g and %g", w[1], w[255])
	}
}
