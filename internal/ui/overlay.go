package ui

import (
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type overlayPhase uint8

const (
	overlayVisible overlayPhase = iota
	overlayFading
	overlayHidden
)

const overlayPrompt = "PLAY MY MUSIC"

// overlay is the start prompt. Once playback starts it fades toward
// transparency and is removed by overlayRemovedMsg.
type overlay struct {
	phase    overlayPhase
	opacity  float64
	velocity float64
	spring   harmonica.Spring
}

func newOverlay(fps int) overlay {
	if fps <= 0 {
		fps = 30
	}
	return overlay{
		phase:   overlayVisible,
		opacity: 1,
		// Critically damped, settles well inside the removal delay.
		spring: harmonica.NewSpring(harmonica.FPS(fps), 12.0, 1.0),
	}
}

// hide starts the fade. It reports whether the fade was started by this
// call; only a visible overlay can start fading.
func (o *overlay) hide() bool {
	if o.phase != overlayVisible {
		return false
	}
	o.phase = overlayFading
	return true
}

// step advances the fade by one frame.
func (o *overlay) step() {
	if o.phase != overlayFading {
		return
	}
	o.opacity, o.velocity = o.spring.Update(o.opacity, o.velocity, 0)
	if o.opacity < 0 {
		o.opacity = 0
	}
}

func (o *overlay) remove() {
	o.phase = overlayHidden
	o.opacity = 0
	o.velocity = 0
}

func (o overlay) shown() bool { return o.phase != overlayHidden }

// view renders the prompt box with its colors blended toward the background
// by the current opacity.
func (o overlay) view(decoding bool, spin string) string {
	bg, _ := colorful.Hex(backgroundColor)
	text := bg.BlendRgb(colorful.Color{R: 1, G: 1, B: 1}, o.opacity).Clamped()
	accent, _ := colorful.Hex(accentColor)
	border := bg.BlendRgb(accent, o.opacity).Clamped()

	body := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(text.Hex())).Render(overlayPrompt)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(border.Hex())).Render("press enter to choose an audio file")
	if decoding {
		hint = lipgloss.NewStyle().Foreground(lipgloss.Color(border.Hex())).Render(spin + " decoding...")
	}
	return overlayBoxStyle.BorderForeground(lipgloss.Color(border.Hex())).Render(body + "\n\n" + hint)
}
