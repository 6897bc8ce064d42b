package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/climp3d/internal/media"
)

// BrowserSelectedMsg is emitted when the user picks a file.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg is emitted when the user leaves the browser.
type BrowserCancelledMsg struct{}

type audioItem struct {
	name string
	ext  string
}

func (i audioItem) Title() string       { return i.name }
func (i audioItem) Description() string { return i.ext }
func (i audioItem) FilterValue() string { return i.name }

type dirItem struct {
	name string
}

func (i dirItem) Title() string       { return i.name + "/" }
func (i dirItem) Description() string { return "directory" }
func (i dirItem) FilterValue() string { return i.name }

type pathItem struct{}

func (i pathItem) Title() string       { return "Open path..." }
func (i pathItem) Description() string { return "type the path of an audio file" }
func (i pathItem) FilterValue() string { return "path" }

// BrowserModel lists the audio files and subdirectories of one directory.
type BrowserModel struct {
	dir      string
	list     list.Model
	input    textinput.Model
	pathMode bool
	width    int
	height   int
	err      error
}

// NewBrowser creates a browser scanning dir.
func NewBrowser(dir string, width, height int) BrowserModel {
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 20
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return BrowserModel{dir: abs, width: width, height: height, err: fmt.Errorf("cannot read directory: %w", err)}
	}

	var dirs, files []list.Item
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if e.IsDir() {
			dirs = append(dirs, dirItem{name: e.Name()})
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !media.IsSupportedExt(ext) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		files = append(files, audioItem{name: name, ext: filepath.Ext(e.Name())})
	}
	sortItems(dirs)
	sortItems(files)

	items := []list.Item{pathItem{}}
	if parent := filepath.Dir(abs); parent != abs {
		items = append(items, dirItem{name: ".."})
	}
	items = append(items, dirs...)
	items = append(items, files...)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.Color(accentColor))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.Color(accentColor))

	l := list.New(items, delegate, width, height)
	l.Title = "climp3d  " + abs
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "/path/to/song.mp3"
	ti.CharLimit = 4096
	ti.Width = 60

	return BrowserModel{dir: abs, list: l, input: ti, width: width, height: height}
}

func sortItems(items []list.Item) {
	sort.Slice(items, func(i, j int) bool {
		return strings.ToLower(items[i].FilterValue()) < strings.ToLower(items[j].FilterValue())
	})
}

// Dir returns the directory being listed.
func (m BrowserModel) Dir() string { return m.dir }

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("climp3d - open")
}

func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	if m.err != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cancelled
		}
		return m, nil
	}
	if m.pathMode {
		return m.updatePathInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Don't intercept keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case pathItem:
				m.pathMode = true
				m.input.Focus()
				return m, textinput.Blink
			case dirItem:
				next := NewBrowser(filepath.Join(m.dir, item.name), m.width, m.height)
				return next, nil
			case audioItem:
				path := filepath.Join(m.dir, item.name+item.ext)
				return m, selected(path)
			}
		case "backspace", "left":
			if parent := filepath.Dir(m.dir); parent != m.dir {
				return NewBrowser(parent, m.width, m.height), nil
			}
		case "q", "esc":
			return m, cancelled
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) updatePathInput(msg tea.Msg) (BrowserModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path != "" {
				return m, selected(path)
			}
		case "esc":
			m.pathMode = false
			m.input.Reset()
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func selected(path string) tea.Cmd {
	return func() tea.Msg { return BrowserSelectedMsg{Path: path} }
}

func cancelled() tea.Msg { return BrowserCancelledMsg{} }

func (m BrowserModel) View() string {
	if m.err != nil {
		return "\n  " + headerStyle.Render("climp3d") + "\n\n  " + noticeTextStyle.Render(m.err.Error()) + "\n\n  " + helpStyle.Render("any key to go back") + "\n"
	}
	if m.pathMode {
		s := "\n"
		s += "  " + headerStyle.Render("climp3d") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Enter path:") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter confirm  esc back") + "\n"
		return s
	}
	return m.list.View()
}
