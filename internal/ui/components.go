package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderVolumePercent(vol float64) string {
	return fmt.Sprintf("vol %d%%", int(vol*100+0.5))
}

// spliceCenter replaces the middle lines of frame with block, each block
// line centered across width. Frame lines outside the block are kept.
// The result always has exactly height lines.
func spliceCenter(frame, block string, width, height int) string {
	lines := strings.Split(frame, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if block == "" {
		return strings.Join(lines[:max(height, 0)], "\n")
	}
	blockLines := strings.Split(block, "\n")
	top := (height - len(blockLines)) / 2
	if top < 0 {
		top = 0
	}
	for i, bl := range blockLines {
		row := top + i
		if row >= len(lines) {
			break
		}
		lines[row] = lipgloss.PlaceHorizontal(width, lipgloss.Center, bl)
	}
	return strings.Join(lines[:max(height, 0)], "\n")
}
