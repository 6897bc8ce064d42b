package audio

import (
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// oto allows a single context per process.
var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

type otoOutput struct {
	ctx *oto.Context
}

func (o otoOutput) NewPlayer(r io.Reader) Player { return o.ctx.NewPlayer(r) }
func (o otoOutput) Suspend() error               { return o.ctx.Suspend() }
func (o otoOutput) Resume() error                { return o.ctx.Resume() }

func openOto(sampleRate, channels int) (Output, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	if otoInitErr != nil {
		return nil, otoInitErr
	}
	return otoOutput{ctx: globalOtoCtx}, nil
}
