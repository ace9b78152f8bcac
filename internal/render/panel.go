// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gemchat/internal/ui/styles"
)

// panelChrome is the horizontal space taken by the borders and padding.
const panelChrome = 4

// renderPanel draws body in a rounded box with title centered in the top
// border. The box fits its content and never exceeds maxWidth columns.
func renderPanel(theme *styles.Theme, title, body string, maxWidth int) string {
	border := lipgloss.RoundedBorder()
	box := lipgloss.NewStyle().
		Border(border, false, true, true, true).
		BorderForeground(styles.Magenta).
		Padding(0, 1)

	label := " " + title + " "
	inner := widest(body) + 2
	need := lipgloss.Width(label) + 2
	switch {
	case inner+2 > maxWidth:
		box = box.Width(maxWidth - 2)
	case inner < need:
		box = box.Width(need)
	}

	rendered := box.Render(body)
	boxWidth := lipgloss.Width(rendered)

	fill := max(boxWidth-2-lipgloss.Width(label), 0)
	left := fill / 2
	right := fill - left

	top := theme.PanelBorder.Render(border.TopLeft+strings.Repeat(border.Top, left)) +
		theme.PanelTitle.Render(label) +
		theme.PanelBorder.Render(strings.Repeat(border.Top, right)+border.TopRight)

	return top + "\n" + rendered
}

// widest returns the display width of the longest line in s.
func widest(s string) int {
	w := 0
	for _, line := range strings.Split(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

// tail keeps the last n lines of s.
func tail(s string, n int) string {
	if n <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
