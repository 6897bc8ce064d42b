package audio

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// State mirrors the lifecycle of an audio output context.
type State int

const (
	// Suspended is the initial state: no output device has been started.
	Suspended State = iota
	// Running means the output device is pulling audio.
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "suspended"
}

// outputChannels is the channel count sent to the device.
const outputChannels = 2

// Player plays PCM pulled from a reader. *oto.Player satisfies it.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

// Output is an audio device that creates players for signed 16-bit
// little-endian interleaved stereo PCM.
type Output interface {
	NewPlayer(r io.Reader) Player
	Suspend() error
	Resume() error
}

// OutputOpener opens an Output at the given sample rate and channel count.
type OutputOpener func(sampleRate, channels int) (Output, error)

// Context owns the audio output. The device is opened lazily on the first
// Resume, so constructing a Context never touches the sound card.
type Context struct {
	rate int
	open OutputOpener

	once    sync.Once
	out     Output
	openErr error

	mu    sync.Mutex
	state State
}

// NewContext returns a suspended Context backed by the system audio device.
func NewContext(sampleRate int) *Context {
	return NewContextWithOutput(sampleRate, openOto)
}

// NewContextWithOutput returns a suspended Context that opens its device
// through open.
func NewContextWithOutput(sampleRate int, open OutputOpener) *Context {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Context{rate: sampleRate, open: open}
}

// SampleRate returns the rate buffers are decoded to.
func (c *Context) SampleRate() int { return c.rate }

// State returns the current lifecycle state.
func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Context) output() (Output, error) {
	c.once.Do(func() {
		c.out, c.openErr = c.open(c.rate, outputChannels)
		if c.openErr != nil {
			c.openErr = fmt.Errorf("opening audio output: %w", c.openErr)
		}
	})
	return c.out, c.openErr
}

// Resume opens the device if necessary and moves the context to Running.
// Resuming a running context is a no-op.
func (c *Context) Resume() error {
	out, err := c.output()
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Running {
		return nil
	}
	if err := out.Resume(); err != nil {
		return fmt.Errorf("resuming audio output: %w", err)
	}
	c.state = Running
	return nil
}

// Suspend pauses the device. It is a no-op before the first Resume.
func (c *Context) Suspend() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Suspended {
		return nil
	}
	if err := c.out.Suspend(); err != nil {
		return fmt.Errorf("suspending audio output: %w", err)
	}
	c.state = Suspended
	return nil
}

// DecodeAudioData decodes data into a Buffer at the context sample rate.
func (c *Context) DecodeAudioData(ctx context.Context, name string, data []byte) (*Buffer, error) {
	return decode(ctx, name, data, c.rate)
}

func (c *Context) newPlayer(r io.Reader) (Player, error) {
	if err := c.Resume(); err != nil {
		return nil, err
	}
	out, _ := c.output()
	return out.NewPlayer(r), nil
}
