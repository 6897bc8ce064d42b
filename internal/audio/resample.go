package audio

import (
	"math"

	"github.com/cwbudde/algo-dsp/dsp/interp"
)

// Resample converts buf to the given rate using 4-point Hermite (Catmull-Rom)
// interpolation. A buffer already at rate is returned unchanged.
func Resample(buf *Buffer, rate int) *Buffer {
	if buf.SampleRate == rate || buf.SampleRate <= 0 || rate <= 0 {
		return buf
	}

	inFrames := buf.Frames()
	outFrames := int(math.Round(float64(inFrames) * float64(rate) / float64(buf.SampleRate)))
	step := float64(buf.SampleRate) / float64(rate)

	out := NewBuffer(rate, buf.Channels(), outFrames)
	for ch, in := range buf.Data {
		dst := out.Data[ch]
		for i := range dst {
			pos := float64(i) * step
			idx := int(pos)
			dst[i] = float32(interp.Hermite4(
				pos-float64(idx),
				float64(sampleAt(in, idx-1)),
				float64(sampleAt(in, idx)),
				float64(sampleAt(in, idx+1)),
				float64(sampleAt(in, idx+2)),
			))
		}
	}
	return out
}

// sampleAt clamps i to the valid range so edges repeat their last sample.
func sampleAt(s []float32, i int) float32 {
	if len(s) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s) {
		i = len(s) - 1
	}
	return s[i]
}
