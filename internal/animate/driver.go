// Package animate applies the per-frame motion and audio response to a scene.
package animate

import (
	"math"

	"github.com/olivier-w/climp3d/internal/analyzer"
	"github.com/olivier-w/climp3d/internal/scene"
)

const (
	IcosahedronSpin = 0.2  // radians per second
	ParticleSpin    = 0.05 // radians per second
	MaxExtraScale   = 1.5
	BarMaxHue       = 0.6
)

// FrequencySource yields the current byte spectrum.
type FrequencySource interface {
	FrequencyData() analyzer.FrequencyData
}

// State reports whether the last frame reacted to audio.
type State int

const (
	Idle State = iota
	Reactive
)

func (s State) String() string {
	if s == Reactive {
		return "reactive"
	}
	return "idle"
}

// Driver mutates a Scene once per frame.
type Driver struct {
	scene *scene.Scene
	state State
	last  analyzer.FrequencyData
}

// NewDriver returns a Driver for s.
func NewDriver(s *scene.Scene) *Driver {
	return &Driver{scene: s}
}

// State returns the mode of the most recent frame.
func (d *Driver) State() State { return d.state }

// Spectrum returns the data used by the most recent reactive frame, or nil.
func (d *Driver) Spectrum() analyzer.FrequencyData { return d.last }

// Frame advances the scene to elapsed seconds. With a nil source only the
// rotations run and every audio-driven property keeps its previous value.
func (d *Driver) Frame(elapsed float64, source FrequencySource) {
	s := d.scene
	s.Icosahedron.Rotation[1] = float32(elapsed * IcosahedronSpin)
	s.Particles.Rotation[1] = float32(elapsed * ParticleSpin)

	if source == nil {
		d.state = Idle
		d.last = nil
		return
	}
	d.state = Reactive

	data := source.FrequencyData()
	d.last = data
	s.Icosahedron.SetScalar(float32(Scale(data)))

	wave := s.Wave
	segments := wave.Segments()
	for i := 0; i < segments; i++ {
		var v uint8
		if len(data) > 0 {
			v = data[BinIndex(i, segments, len(data))]
		}
		wave.SetBar(i, float32(BarHeight(v)), scene.HSL(BarHue(v), 1, 0.5))
	}
	wave.MarkDirty()
}

// Scale maps the spectrum mean to the icosahedron scale, 1 to 2.5.
func Scale(data analyzer.FrequencyData) float64 {
	if len(data) == 0 {
		return 1
	}
	sum := 0
	for _, v := range data {
		sum += int(v)
	}
	avg := float64(sum) / float64(len(data))
	return 1 + (avg/255)*MaxExtraScale
}

// BinIndex maps bar i of segments onto the lower half of a spectrum of
// length n.
func BinIndex(i, segments, n int) int {
	if segments <= 1 {
		return 0
	}
	idx := int(math.Floor(float64(i) / float64(segments-1) * float64(n/2)))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

// BarHeight maps a bin value to a bar height, 0 to 3.
func BarHeight(v uint8) float64 {
	return float64(v) / 255 * scene.WaveHeightScale
}

// BarHue maps a bin value to a hue fraction, 0 (red) to 0.6 (blue).
func BarHue(v uint8) float64 {
	return float64(v) / 255 * BarMaxHue
}
