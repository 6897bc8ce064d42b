package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/olivier-w/climp3d/internal/analyzer"
	"github.com/olivier-w/climp3d/internal/animate"
	"github.com/olivier-w/climp3d/internal/audio"
	"github.com/olivier-w/climp3d/internal/config"
	"github.com/olivier-w/climp3d/internal/render"
	"github.com/olivier-w/climp3d/internal/scene"
	"github.com/olivier-w/climp3d/internal/util"
	"github.com/olivier-w/climp3d/internal/viewport"
)

// hudRows is the number of terminal rows below the scene.
const hudRows = 2

const loadFailedText = "Could not load audio file. Please try another file."

// Options holds the collaborators a Model is built from.
type Options struct {
	Config config.Config
	// Audio is the output context. Defaults to the system device.
	Audio *audio.Context
	// Profile selects the terminal color encoding.
	Profile termenv.Profile
	// InitialPath, when set, is loaded as soon as the program starts.
	InitialPath string
	// Width and Height are the initial terminal size in cells.
	Width, Height int
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Model is the application context: it owns the scene, the audio graph and
// every piece of UI state. All mutation happens in Update.
type Model struct {
	cfg config.Config

	scene    *scene.Scene
	driver   *animate.Driver
	renderer *render.Renderer
	encoder  *render.Encoder
	surface  *render.Surface
	viewport *viewport.Manager

	audioCtx *audio.Context
	loader   *audio.Loader
	source   *audio.Source
	analyzer *analyzer.Analyzer
	metadata audio.Metadata

	start   time.Time
	running *bool
	frame   string

	overlay  overlay
	browser  BrowserModel
	picking  bool
	notice   string
	decoding bool
	loading  string
	pending  tea.Cmd

	spinner  spinner.Model
	progress progress.Model
	width    int
	height   int
	quitting bool
}

// New builds the scene, renderer and audio context.
func New(opts Options) Model {
	cfg := opts.Config
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	actx := opts.Audio
	if actx == nil {
		actx = audio.NewContext(audio.DefaultSampleRate)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	pw, ph := viewport.CellsToPixels(width, height, hudRows)
	aspect := float32(1)
	if ph > 0 {
		aspect = float32(pw) / float32(ph)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(now().UnixNano())
	}
	sc := scene.New(aspect, cfg.Particles, scene.NewRand(seed))
	surface := render.NewSurface(pw, ph, cfg.PixelRatio)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor))

	p := progress.New(
		progress.WithScaledGradient("#00FFFF", accentColor),
		progress.WithoutPercentage(),
	)

	running := true
	m := Model{
		cfg:      cfg,
		scene:    sc,
		driver:   animate.NewDriver(sc),
		renderer: render.NewRenderer(),
		encoder:  render.NewEncoder(opts.Profile),
		surface:  surface,
		viewport: viewport.New(sc.Camera, surface, cfg.PixelRatio),
		audioCtx: actx,
		loader:   &audio.Loader{},
		start:    now(),
		running:  &running,
		overlay:  newOverlay(cfg.FPS),
		spinner:  s,
		progress: p,
		width:    width,
		height:   height,
	}
	m.viewport.Resize(pw, ph)
	m.progress.Width = progressWidth(width)

	if opts.InitialPath != "" {
		m.pending = m.load(opts.InitialPath)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.cfg.FPS), m.pending, tea.SetWindowTitle("climp3d"))
}

// Stop halts the frame loop. Already scheduled frames are dropped.
func (m *Model) Stop() {
	if m.running != nil {
		*m.running = false
	}
}

// Running reports whether the frame loop is still re-arming.
func (m Model) Running() bool { return m.running != nil && *m.running }

// load starts decoding path, superseding any load already in flight.
func (m *Model) load(path string) tea.Cmd {
	tk := m.loader.Begin()
	m.decoding = true
	m.loading = filepath.Base(path)
	return tea.Batch(m.spinner.Tick, loadCmd(m.audioCtx, tk, path))
}

func loadCmd(actx *audio.Context, tk audio.Ticket, path string) tea.Cmd {
	return func() tea.Msg {
		name := filepath.Base(path)
		data, err := audio.ReadFile(path)
		if err != nil {
			return decodedMsg{seq: tk.Seq, name: name, err: &audio.DecodeError{Name: name, Err: err}}
		}
		buf, err := actx.DecodeAudioData(tk.Ctx, name, data)
		if err != nil {
			return decodedMsg{seq: tk.Seq, name: name, err: err}
		}
		return decodedMsg{seq: tk.Seq, name: name, buf: buf, meta: audio.ReadMetadata(path, data)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		if !m.Running() {
			return m, nil
		}
		m.renderFrame(time.Time(msg))
		return m, frameCmd(m.cfg.FPS)

	case decodedMsg:
		return m.handleDecoded(msg)

	case overlayRemovedMsg:
		m.overlay.remove()
		return m, nil

	case BrowserSelectedMsg:
		m.picking = false
		cmd := m.load(msg.Path)
		return m, tea.Batch(cmd, tea.SetWindowTitle("climp3d"))

	case BrowserCancelledMsg:
		m.picking = false
		return m, tea.SetWindowTitle("climp3d")

	case spinner.TickMsg:
		if !m.decoding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		model, cmd := m.progress.Update(msg)
		if p, ok := model.(progress.Model); ok {
			m.progress = p
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.viewport.Resize(viewport.CellsToPixels(msg.Width, msg.Height, hudRows))
		m.progress.Width = progressWidth(msg.Width)
		if m.picking {
			var cmd tea.Cmd
			m.browser, cmd = m.browser.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.picking {
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.notice != "" {
		if isDismiss(msg) {
			m.notice = ""
		}
		return m, nil
	}
	if m.picking {
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}

	switch {
	case isQuit(msg):
		return m.quit()
	case isOpen(msg):
		m.picking = true
		m.browser = NewBrowser(m.cfg.StartDir, m.width, m.height)
		return m, m.browser.Init()
	}

	if m.source == nil {
		return m, nil
	}
	switch msg.String() {
	case " ":
		if m.source.IsPlaying() {
			m.source.Stop()
			if m.analyzer != nil {
				m.analyzer.Reset()
			}
		} else if err := m.source.Play(); err != nil {
			log.Printf("climp3d: resuming playback: %v", err)
			m.notice = loadFailedText
		}
	case "+", "=", "up":
		m.source.AdjustVolume(0.05)
	case "-", "down":
		m.source.AdjustVolume(-0.05)
	}
	return m, nil
}

func (m Model) handleDecoded(msg decodedMsg) (Model, tea.Cmd) {
	if !m.loader.IsCurrent(msg.seq) {
		// Superseded by a newer selection.
		return m, nil
	}
	m.loader.Finish(msg.seq)
	m.decoding = false
	m.loading = ""

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			return m, nil
		}
		log.Printf("climp3d: error decoding %s: %v", msg.name, msg.err)
		m.notice = loadFailedText
		return m, nil
	}

	next := audio.NewSource(m.audioCtx, msg.buf)
	next.SetVolume(m.cfg.Volume)
	if err := audio.Install(m.source, next); err != nil {
		log.Printf("climp3d: starting playback of %s: %v", msg.name, err)
		m.notice = loadFailedText
		return m, nil
	}
	an, err := analyzer.New(next.Tap())
	if err != nil {
		log.Printf("climp3d: creating analyzer: %v", err)
	}
	m.source = next
	m.analyzer = an
	m.metadata = msg.meta

	title := "climp3d - " + m.metadata.Title
	if m.overlay.hide() {
		return m, tea.Batch(overlayRemoveCmd(), tea.SetWindowTitle(title))
	}
	return m, tea.SetWindowTitle(title)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Stop()
	m.loader.Cancel()
	if m.source != nil {
		m.source.Stop()
	}
	m.quitting = true
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

// renderFrame advances the animation to t and re-encodes the scene.
func (m *Model) renderFrame(t time.Time) {
	elapsed := t.Sub(m.start).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	// Frequency data only exists while the source is playing.
	var src animate.FrequencySource
	if m.analyzer != nil && m.source != nil && m.source.IsPlaying() {
		src = m.analyzer
	}
	m.driver.Frame(elapsed, src)
	m.renderer.Render(m.scene, m.scene.Camera, m.surface)
	m.frame = m.encoder.Encode(m.surface)
	m.overlay.step()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.picking {
		return m.browser.View()
	}

	rows := m.height - hudRows
	if rows < 0 {
		rows = 0
	}
	body := m.frame
	switch {
	case m.notice != "":
		box := noticeBoxStyle.Render(noticeTextStyle.Render(m.notice) + "\n\n" + helpStyle.Render("enter to dismiss"))
		body = spliceCenter(body, box, m.width, rows)
	case m.overlay.shown():
		body = spliceCenter(body, m.overlay.view(m.decoding, m.spinner.View()), m.width, rows)
	default:
		body = spliceCenter(body, "", m.width, rows)
	}

	return body + "\n" + m.hudView()
}

func (m Model) hudView() string {
	var left string
	switch {
	case m.decoding:
		left = m.spinner.View() + " " + statusStyle.Render("decoding "+m.loading)
	case m.source != nil:
		left = titleStyle.Render(m.metadata.Title)
		if m.metadata.Artist != "" {
			left += artistStyle.Render(" - " + m.metadata.Artist)
		}
		pos, dur := m.source.Position(), m.source.Duration()
		ratio := 0.0
		if dur > 0 {
			ratio = float64(pos) / float64(dur)
		}
		state := "■ stopped"
		if m.source.IsPlaying() {
			state = "▶ looping"
		}
		left += "  " + m.progress.ViewAs(ratio) + " " +
			timeStyle.Render(util.FormatPosition(pos, dur)) + "  " +
			statusStyle.Render(fmt.Sprintf("%s  %s", state, renderVolumePercent(m.source.Volume())))
	default:
		left = headerStyle.Render("climp3d") + "  " + statusStyle.Render("no audio loaded")
	}
	help := helpStyle.Render(helpText(m.source != nil) + "  " + m.driver.State().String())
	return truncateLine(left, m.width) + "\n" + truncateLine(help, m.width)
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimRight(s, " "))
}

func progressWidth(termWidth int) int {
	w := termWidth / 4
	if w < 10 {
		w = 10
	}
	if w > 40 {
		w = 40
	}
	return w
}
