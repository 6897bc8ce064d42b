package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/climp3d/internal/audio"
)

// frameMsg drives one animation frame.
type frameMsg time.Time

// decodedMsg carries the outcome of a load started with sequence seq.
type decodedMsg struct {
	seq  uint64
	name string
	buf  *audio.Buffer
	meta audio.Metadata
	err  error
}

// overlayRemovedMsg fires once the overlay fade has finished.
type overlayRemovedMsg struct{}

// overlayFadeDuration is how long the overlay takes to disappear.
const overlayFadeDuration = 500 * time.Millisecond

func frameCmd(fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func overlayRemoveCmd() tea.Cmd {
	return tea.Tick(overlayFadeDuration, func(time.Time) tea.Msg {
		return overlayRemovedMsg{}
	})
}
