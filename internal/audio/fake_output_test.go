package audio

import (
	"errors"
	"io"
	"sync"
)

// fakeOutput records player lifecycle events instead of touching a device.
type fakeOutput struct {
	mu        sync.Mutex
	events    []string
	players   []*fakePlayer
	resumes   int
	resumeErr error
}

func (o *fakeOutput) log(e string) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func (o *fakeOutput) NewPlayer(r io.Reader) Player {
	p := &fakePlayer{out: o, r: r, id: len(o.players)}
	o.players = append(o.players, p)
	return p
}

func (o *fakeOutput) Suspend() error { o.log("suspend"); return nil }

func (o *fakeOutput) Resume() error {
	if o.resumeErr != nil {
		return o.resumeErr
	}
	o.resumes++
	o.log("resume")
	return nil
}

type fakePlayer struct {
	out     *fakeOutput
	r       io.Reader
	id      int
	playing bool
	volume  float64
	closed  bool
}

func (p *fakePlayer) Play()               { p.playing = true; p.out.log(p.tag("play")) }
func (p *fakePlayer) Pause()              { p.playing = false; p.out.log(p.tag("pause")) }
func (p *fakePlayer) IsPlaying() bool     { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Close() error        { p.closed = true; return nil }

func (p *fakePlayer) tag(e string) string {
	return e + ":" + string(rune('A'+p.id))
}

func newFakeContext() (*Context, *fakeOutput) {
	out := &fakeOutput{}
	ctx := NewContextWithOutput(DefaultSampleRate, func(int, int) (Output, error) {
		return out, nil
	})
	return ctx, out
}

func failingContext() *Context {
	return NewContextWithOutput(DefaultSampleRate, func(int, int) (Output, error) {
		return nil, errors.New("no audio device")
	})
}

// rampBuffer returns a mono buffer whose samples count up from 0.
func rampBuffer(frames int) *Buffer {
	buf := NewBuffer(DefaultSampleRate, 1, frames)
	for i := range buf.Data[0] {
		buf.Data[0][i] = float32(i) / 100
	}
	return buf
}
