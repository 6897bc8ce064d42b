package audio

import (
	"encoding/binary"
	"io"
	"sync"
	"time"
)

const (
	// DefaultVolume is the gain applied to a new Source.
	DefaultVolume = 0.5
	// TapSize is the capacity, in mono samples, of a Source's analysis tap.
	TapSize = 4096

	bytesPerFrame = outputChannels * 2
)

// loopReader streams a Buffer as interleaved int16 stereo, optionally
// wrapping at the end, and mirrors every frame it emits into a mono tap.
type loopReader struct {
	buf  *Buffer
	tap  *RingBuffer
	loop bool
	mono []float32

	mu  sync.Mutex
	pos int // next frame
}

func newLoopReader(buf *Buffer, loop bool, tap *RingBuffer) *loopReader {
	return &loopReader{buf: buf, loop: loop, tap: tap}
}

func (r *loopReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := r.buf.Frames()
	if frames == 0 {
		return 0, io.EOF
	}
	want := len(p) / bytesPerFrame
	if want == 0 {
		return 0, nil
	}
	if cap(r.mono) < want {
		r.mono = make([]float32, want)
	}
	mono := r.mono[:0]

	left := r.buf.Data[0]
	right := left
	if r.buf.Channels() > 1 {
		right = r.buf.Data[1]
	}

	n := 0
	for i := 0; i < want; i++ {
		if r.pos >= frames {
			if !r.loop {
				break
			}
			r.pos = 0
		}
		l, rt := left[r.pos], right[r.pos]
		binary.LittleEndian.PutUint16(p[n:], uint16(toInt16(l)))
		binary.LittleEndian.PutUint16(p[n+2:], uint16(toInt16(rt)))
		mono = append(mono, r.mixDown(r.pos))
		n += bytesPerFrame
		r.pos++
	}

	if r.tap != nil && len(mono) > 0 {
		r.tap.Write(mono)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (r *loopReader) mixDown(frame int) float32 {
	var sum float32
	for _, ch := range r.buf.Data {
		sum += ch[frame]
	}
	return sum / float32(len(r.buf.Data))
}

// Frame returns the index of the next frame to be emitted.
func (r *loopReader) Frame() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

func (r *loopReader) setLoop(loop bool) {
	r.mu.Lock()
	r.loop = loop
	r.mu.Unlock()
}

func toInt16(s float32) int16 {
	if s > 1 {
		s = 1
	} else if s < -1 {
		s = -1
	}
	return int16(s * 32767)
}

// Source plays a Buffer through a Context. It loops by default and keeps a
// tap of recently emitted mono samples for analysis.
type Source struct {
	ctx    *Context
	buf    *Buffer
	tap    *RingBuffer
	reader *loopReader
	player Player
	loop   bool
	volume float64
	mu     sync.Mutex
}

// NewSource wraps buf for playback on ctx with looping on and volume 0.5.
func NewSource(ctx *Context, buf *Buffer) *Source {
	return &Source{
		ctx:    ctx,
		buf:    buf,
		tap:    NewRingBuffer(TapSize),
		loop:   true,
		volume: DefaultVolume,
	}
}

// Buffer returns the decoded audio being played.
func (s *Source) Buffer() *Buffer { return s.buf }

// Tap returns the ring buffer that receives emitted samples.
func (s *Source) Tap() *RingBuffer { return s.tap }

// Loop reports whether playback wraps at the end of the buffer.
func (s *Source) Loop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// SetLoop enables or disables wrapping.
func (s *Source) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = loop
	if s.reader != nil {
		s.reader.setLoop(loop)
	}
}

// Volume returns the current gain (0.0 to 1.0).
func (s *Source) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume sets the gain, clamped to 0.0 - 1.0.
func (s *Source) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.volume = v
	if s.player != nil {
		s.player.SetVolume(v)
	}
}

// AdjustVolume adjusts volume by delta.
func (s *Source) AdjustVolume(delta float64) {
	s.mu.Lock()
	v := s.volume + delta
	s.mu.Unlock()
	s.SetVolume(v) // SetVolume handles clamping
}

// Play resumes the context if it is suspended and starts playback from the
// beginning of the buffer. Playing an already playing Source is a no-op.
func (s *Source) Play() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player != nil && s.player.IsPlaying() {
		return nil
	}
	s.release()

	reader := newLoopReader(s.buf, s.loop, s.tap)
	player, err := s.ctx.newPlayer(reader)
	if err != nil {
		return err
	}
	player.SetVolume(s.volume)
	player.Play()

	s.reader = reader
	s.player = player
	return nil
}

// Stop halts playback and rewinds to the start.
func (s *Source) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.release()
	s.tap.Clear()
}

func (s *Source) release() {
	if s.player != nil {
		s.player.Pause()
		s.player.Close()
	}
	s.player = nil
	s.reader = nil
}

// IsPlaying reports whether the output is currently pulling audio.
func (s *Source) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.player != nil && s.player.IsPlaying()
}

// Position returns the read position within the current pass.
// Frames buffered by the device but not yet audible are counted as played.
func (s *Source) Position() time.Duration {
	s.mu.Lock()
	reader := s.reader
	s.mu.Unlock()
	if reader == nil || s.buf.SampleRate <= 0 {
		return 0
	}
	frame := reader.Frame()
	return time.Duration(float64(frame) / float64(s.buf.SampleRate) * float64(time.Second))
}

// Duration returns the length of one pass through the buffer.
func (s *Source) Duration() time.Duration { return s.buf.Duration() }
