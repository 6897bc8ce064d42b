package audio

import (
	"context"
	"errors"
	"testing"
)

func TestLoaderLatestSelectionWins(t *testing.T) {
	var l Loader
	first := l.Begin()
	second := l.Begin()

	if l.IsCurrent(first.Seq) {
		t.Fatal("expected first selection to be stale")
	}
	if !l.IsCurrent(second.Seq) {
		t.Fatal("expected second selection to be current")
	}
	if !errors.Is(first.Ctx.Err(), context.Canceled) {
		t.Fatalf("expected first decode context to be canceled, got %v", first.Ctx.Err())
	}
	if second.Ctx.Err() != nil {
		t.Fatalf("expected second decode context to be live, got %v", second.Ctx.Err())
	}
}

func TestLoaderFinishOnlyReleasesCurrent(t *testing.T) {
	var l Loader
	first := l.Begin()
	second := l.Begin()

	l.Finish(first.Seq)
	if second.Ctx.Err() != nil {
		t.Fatal("finishing a stale ticket must not cancel the current one")
	}
	l.Finish(second.Seq)
	if second.Ctx.Err() == nil {
		t.Fatal("expected current ticket context to be released")
	}
	if !l.IsCurrent(second.Seq) {
		t.Fatal("finishing must not invalidate the result")
	}
}

func TestLoaderCancelInvalidates(t *testing.T) {
	var l Loader
	tk := l.Begin()
	l.Cancel()
	if l.IsCurrent(tk.Seq) {
		t.Fatal("expected canceled ticket to be stale")
	}
	if tk.Ctx.Err() == nil {
		t.Fatal("expected canceled ticket context to be done")
	}
}
