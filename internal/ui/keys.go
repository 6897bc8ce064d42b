package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func isOpen(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "o", "enter":
		return true
	}
	return false
}

func isDismiss(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "enter", "esc", " ":
		return true
	}
	return false
}

func helpText(hasSource bool) string {
	s := "o open"
	if hasSource {
		s += "  space stop/play  +/- volume"
	}
	s += "  q quit"
	return s
}
