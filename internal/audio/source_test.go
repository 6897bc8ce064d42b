package audio

import (
	"encoding/binary"
	"errors"
	"io"
	"strings"
	"testing"
)

func readFrames(t *testing.T, r io.Reader, frames int) []int16 {
	t.Helper()
	p := make([]byte, frames*bytesPerFrame)
	n, err := r.Read(p)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	out := make([]int16, n/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(p[2*i:]))
	}
	return out
}

func TestNewSourceDefaults(t *testing.T) {
	ctx, _ := newFakeContext()
	src := NewSource(ctx, rampBuffer(10))
	if !src.Loop() {
		t.Fatal("expected loop to default to true")
	}
	if src.Volume() != 0.5 {
		t.Fatalf("expected volume 0.5, got %v", src.Volume())
	}
	if src.IsPlaying() {
		t.Fatal("expected new source to be stopped")
	}
}

func TestPlayResumesSuspendedContext(t *testing.T) {
	ctx, out := newFakeContext()
	if ctx.State() != Suspended {
		t.Fatalf("expected new context to be suspended, got %v", ctx.State())
	}

	src := NewSource(ctx, rampBuffer(10))
	if err := src.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if ctx.State() != Running {
		t.Fatalf("expected running context after Play, got %v", ctx.State())
	}
	if !src.IsPlaying() {
		t.Fatal("expected source to be playing")
	}
	if got := out.players[0].volume; got != 0.5 {
		t.Fatalf("expected player volume 0.5, got %v", got)
	}

	// A second Play must not create another player or resume again.
	if err := src.Play(); err != nil {
		t.Fatalf("second Play returned error: %v", err)
	}
	if len(out.players) != 1 || out.resumes != 1 {
		t.Fatalf("expected one player and one resume, got %d players %d resumes", len(out.players), out.resumes)
	}
}

func TestPlayWithoutDeviceReturnsError(t *testing.T) {
	src := NewSource(failingContext(), rampBuffer(10))
	err := src.Play()
	if err == nil || !strings.Contains(err.Error(), "no audio device") {
		t.Fatalf("expected device error, got %v", err)
	}
	if src.IsPlaying() {
		t.Fatal("expected source to remain stopped")
	}
}

func TestLoopReaderWrapsAround(t *testing.T) {
	tap := NewRingBuffer(64)
	r := newLoopReader(rampBuffer(4), true, tap)

	got := readFrames(t, r, 10)
	// Mono input is duplicated on both output channels.
	for i := 0; i < 10; i++ {
		want := toInt16(float32(i%4) / 100)
		if got[2*i] != want || got[2*i+1] != want {
			t.Fatalf("frame %d = (%d, %d), want %d", i, got[2*i], got[2*i+1], want)
		}
	}
	if r.Frame() != 2 {
		t.Fatalf("expected position to wrap to 2, got %d", r.Frame())
	}
	if tap.Len() != 10 {
		t.Fatalf("expected 10 tapped samples, got %d", tap.Len())
	}
}

func TestLoopReaderWithoutLoopEnds(t *testing.T) {
	r := newLoopReader(rampBuffer(3), false, nil)
	p := make([]byte, 10*bytesPerFrame)
	n, err := r.Read(p)
	if err != nil || n != 3*bytesPerFrame {
		t.Fatalf("expected 3 frames then nil error, got n=%d err=%v", n, err)
	}
	if _, err := r.Read(p); err != io.EOF {
		t.Fatalf("expected EOF after the last frame, got %v", err)
	}
}

func TestLoopReaderMixesStereoIntoTap(t *testing.T) {
	buf := NewBuffer(DefaultSampleRate, 2, 2)
	buf.Data[0][0], buf.Data[1][0] = 1, 0
	buf.Data[0][1], buf.Data[1][1] = -0.5, -0.5
	tap := NewRingBuffer(8)

	readFrames(t, newLoopReader(buf, true, tap), 2)

	dst := make([]float32, 2)
	tap.Latest(dst)
	if dst[0] != 0.5 || dst[1] != -0.5 {
		t.Fatalf("expected mono mix [0.5 -0.5], got %v", dst)
	}
}

func TestStopRewindsAndClearsTap(t *testing.T) {
	ctx, out := newFakeContext()
	src := NewSource(ctx, rampBuffer(100))
	if err := src.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	readFrames(t, out.players[0].r, 10)
	if src.Position() == 0 {
		t.Fatal("expected position to advance")
	}

	src.Stop()
	if src.IsPlaying() {
		t.Fatal("expected source to be stopped")
	}
	if !out.players[0].closed {
		t.Fatal("expected player to be closed on Stop")
	}
	if src.Position() != 0 {
		t.Fatalf("expected position 0 after Stop, got %v", src.Position())
	}
	if src.Tap().Len() != 0 {
		t.Fatal("expected tap to be cleared on Stop")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	ctx, _ := newFakeContext()
	src := NewSource(ctx, rampBuffer(1))
	src.SetVolume(2)
	if src.Volume() != 1 {
		t.Fatalf("expected volume clamp to 1, got %v", src.Volume())
	}
	src.AdjustVolume(-1.5)
	if src.Volume() != 0 {
		t.Fatalf("expected volume clamp to 0, got %v", src.Volume())
	}
}

func TestInstallStopsPreviousBeforeStartingNext(t *testing.T) {
	ctx, out := newFakeContext()
	a := NewSource(ctx, rampBuffer(10))
	b := NewSource(ctx, rampBuffer(10))
	if err := Install(nil, a); err != nil {
		t.Fatalf("Install A: %v", err)
	}
	if err := Install(a, b); err != nil {
		t.Fatalf("Install B: %v", err)
	}

	want := []string{"resume", "play:A", "pause:A", "play:B"}
	if strings.Join(out.events, ",") != strings.Join(want, ",") {
		t.Fatalf("expected events %v, got %v", want, out.events)
	}
	if a.IsPlaying() || !b.IsPlaying() {
		t.Fatal("expected only B to be playing")
	}
}

func TestInstallFailureLeavesPreviousPlaying(t *testing.T) {
	ctx, out := newFakeContext()
	a := NewSource(ctx, rampBuffer(10))
	if err := Install(nil, a); err != nil {
		t.Fatalf("Install A: %v", err)
	}

	b := NewSource(failingContext(), rampBuffer(10))
	if err := Install(a, b); err == nil {
		t.Fatal("expected Install to fail without an output device")
	}
	if !a.IsPlaying() {
		t.Fatal("expected previous source to keep playing")
	}
	if len(out.players) != 1 {
		t.Fatalf("expected no new players, got %d", len(out.players))
	}
}

func TestContextResumeError(t *testing.T) {
	ctx, out := newFakeContext()
	out.resumeErr = errors.New("device busy")
	if err := ctx.Resume(); err == nil {
		t.Fatal("expected resume error")
	}
	if ctx.State() != Suspended {
		t.Fatal("expected context to stay suspended")
	}
	out.resumeErr = nil
	if err := ctx.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if err := ctx.Suspend(); err != nil || ctx.State() != Suspended {
		t.Fatalf("expected suspend to succeed, got %v state %v", err, ctx.State())
	}
}
