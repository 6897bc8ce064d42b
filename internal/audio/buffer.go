package audio

import "time"

// DefaultSampleRate is the rate every decoded Buffer is converted to.
const DefaultSampleRate = 44100

// Buffer holds fully decoded PCM audio in planar float32 form, one slice per
// channel, values nominally in [-1, 1].
type Buffer struct {
	SampleRate int
	Data       [][]float32
}

// NewBuffer allocates a silent buffer.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}
	return &Buffer{SampleRate: sampleRate, Data: data}
}

// Channels returns the number of channels.
func (b *Buffer) Channels() int { return len(b.Data) }

// Frames returns the number of sample frames per channel.
func (b *Buffer) Frames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Duration returns the playback length of one pass through the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// deinterleave splits interleaved samples into planar channels, dropping a
// trailing partial frame.
func deinterleave(samples []float32, channels int) [][]float32 {
	frames := len(samples) / channels
	data := make([][]float32, channels)
	for ch := range data {
		data[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			data[ch][i] = samples[base+ch]
		}
	}
	return data
}
