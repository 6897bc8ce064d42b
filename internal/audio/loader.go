package audio

import (
	"context"
	"sync"
)

// Ticket identifies one file selection. Ctx is canceled as soon as a newer
// selection begins.
type Ticket struct {
	Seq uint64
	Ctx context.Context
}

// Loader tracks in-flight decodes so that the most recent selection always
// wins. Results carrying an older sequence number are stale.
type Loader struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// Begin starts a new selection and cancels the previous one.
func (l *Loader) Begin() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.seq++
	l.cancel = cancel
	return Ticket{Seq: l.seq, Ctx: ctx}
}

// IsCurrent reports whether seq belongs to the latest selection.
func (l *Loader) IsCurrent(seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return seq == l.seq
}

// Finish releases the context of seq if it is still the latest selection.
func (l *Loader) Finish(seq uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq == l.seq && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

// Cancel aborts any in-flight decode and invalidates its result.
func (l *Loader) Cancel() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.seq++
}

// Install hands playback from prev to next: the context is resumed, prev is
// stopped, then next starts. If the context cannot be resumed prev keeps
// playing and the error is returned. prev may be nil.
func Install(prev, next *Source) error {
	if err := next.ctx.Resume(); err != nil {
		return err
	}
	if prev != nil && prev != next {
		prev.Stop()
	}
	return next.Play()
}
