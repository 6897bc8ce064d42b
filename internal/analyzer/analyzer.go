// Package analyzer turns the most recent window of played samples into a byte
// spectrum, following the contract of a Web Audio AnalyserNode's byte
// frequency data.
package analyzer

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-dsp/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

const (
	DefaultFFTSize     = 256
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0

	minFFTSize = 32
	maxFFTSize = 32768
)

// Tap supplies the most recent mono samples. Latest fills dst oldest first
// and zero-pads the front when fewer samples exist.
type Tap interface {
	Latest(dst []float32) int
}

// FrequencyData holds one byte per frequency bin, 0..255.
type FrequencyData []uint8

// Option configures an Analyzer.
type Option func(*options)

type options struct {
	fftSize   int
	smoothing float64
	minDB     float64
	maxDB     float64
}

// WithFFTSize sets the transform length. It must be a power of two between
// 32 and 32768.
func WithFFTSize(n int) Option { return func(o *options) { o.fftSize = n } }

// WithSmoothing sets the averaging constant between frames, 0 to 1.
func WithSmoothing(s float64) Option { return func(o *options) { o.smoothing = s } }

// WithDecibelRange sets the dB values mapped to 0 and 255.
func WithDecibelRange(minDB, maxDB float64) Option {
	return func(o *options) {
		o.minDB = minDB
		o.maxDB = maxDB
	}
}

// Analyzer pulls a spectrum from a Tap on demand. It is not safe for
// concurrent use; the frame loop owns it.
type Analyzer struct {
	tap       Tap
	size      int
	smoothing float64
	minDB     float64
	maxDB     float64

	window   []float64
	plan     *algofft.Plan[complex128]
	samples  []float32
	windowed []float64
	in       []complex128
	out      []complex128
	re, im   []float64
	mag      []float64
	smoothed []float64
	data     FrequencyData
}

// New creates an Analyzer reading from tap.
func New(tap Tap, opts ...Option) (*Analyzer, error) {
	if tap == nil {
		return nil, errors.New("analyzer: nil tap")
	}
	o := options{
		fftSize:   DefaultFFTSize,
		smoothing: DefaultSmoothing,
		minDB:     DefaultMinDecibels,
		maxDB:     DefaultMaxDecibels,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if o.fftSize < minFFTSize || o.fftSize > maxFFTSize || o.fftSize&(o.fftSize-1) != 0 {
		return nil, fmt.Errorf("analyzer: fft size %d is not a power of two in [%d, %d]", o.fftSize, minFFTSize, maxFFTSize)
	}
	if o.smoothing < 0 || o.smoothing > 1 {
		return nil, fmt.Errorf("analyzer: smoothing %v outside [0, 1]", o.smoothing)
	}
	if o.minDB >= o.maxDB {
		return nil, fmt.Errorf("analyzer: min decibels %v must be below max %v", o.minDB, o.maxDB)
	}

	win, err := window.Blackman(o.fftSize, window.WithPeriodic())
	if err != nil {
		return nil, fmt.Errorf("analyzer: window: %w", err)
	}
	plan, err := algofft.NewPlan64(o.fftSize)
	if err != nil {
		return nil, fmt.Errorf("analyzer: fft plan: %w", err)
	}

	bins := o.fftSize / 2
	return &Analyzer{
		tap:       tap,
		size:      o.fftSize,
		smoothing: o.smoothing,
		minDB:     o.minDB,
		maxDB:     o.maxDB,
		window:    win,
		plan:      plan,
		samples:   make([]float32, o.fftSize),
		windowed:  make([]float64, o.fftSize),
		in:        make([]complex128, o.fftSize),
		out:       make([]complex128, o.fftSize),
		re:        make([]float64, bins),
		im:        make([]float64, bins),
		mag:       make([]float64, bins),
		smoothed:  make([]float64, bins),
		data:      make(FrequencyData, bins),
	}, nil
}

// FFTSize returns the transform length.
func (a *Analyzer) FFTSize() int { return a.size }

// FrequencyBinCount returns half the FFT size.
func (a *Analyzer) FrequencyBinCount() int { return a.size / 2 }

// FrequencyData analyzes the latest window and returns the byte spectrum.
// The returned slice is reused by the next call.
func (a *Analyzer) FrequencyData() FrequencyData {
	a.tap.Latest(a.samples)
	for i, s := range a.samples {
		a.windowed[i] = float64(s)
	}
	vecmath.MulBlockInPlace(a.windowed, a.window)
	for i, s := range a.windowed {
		a.in[i] = complex(s, 0)
	}

	if err := a.plan.Forward(a.out, a.in); err != nil {
		clear(a.data)
		return a.data
	}

	for k := range a.re {
		a.re[k] = real(a.out[k])
		a.im[k] = imag(a.out[k])
	}
	vecmath.Magnitude(a.mag, a.re, a.im)

	n := float64(a.size)
	scale := 255 / (a.maxDB - a.minDB)
	for k, m := range a.mag {
		v := a.smoothing*a.smoothed[k] + (1-a.smoothing)*(m/n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		a.smoothed[k] = v
		a.data[k] = toByte((decibels(v) - a.minDB) * scale)
	}
	return a.data
}

// Reset forgets the smoothing history.
func (a *Analyzer) Reset() {
	clear(a.smoothed)
	clear(a.data)
}

func decibels(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

func toByte(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
