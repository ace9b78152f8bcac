// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

// Markdown renders markdown with glamour, reusing the renderer while the
// wrap width stays the same. Creating a TermRenderer is expensive and the
// live panel renders the whole response on every redraw.
type Markdown struct {
	mu       sync.Mutex
	style    ansi.StyleConfig
	renderer *glamour.TermRenderer
	width    int
}

// NewMarkdown creates a markdown renderer for a glamour theme name.
func NewMarkdown(theme string) *Markdown {
	return &Markdown{style: styleFor(theme)}
}

// styleFor maps a theme name to a glamour style with outer margins removed.
// "auto" is expected to be resolved by the caller; it falls back to dark.
func styleFor(theme string) ansi.StyleConfig {
	var style ansi.StyleConfig
	switch strings.ToLower(theme) {
	case "light":
		style = glamourstyles.LightStyleConfig
	case "notty":
		style = glamourstyles.NoTTYStyleConfig
	default:
		style = glamourstyles.DarkStyleConfig
	}
	margin := uint(0)
	style.Document.Margin = &margin
	style.Document.BlockPrefix = ""
	style.Document.BlockSuffix = ""
	style.CodeBlock.Margin = &margin
	return style
}

// Render renders content wrapped to width. On error the content is
// returned unchanged.
func (m *Markdown) Render(content string, width int) string {
	if content == "" {
		return ""
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.renderer == nil || m.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStyles(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return content
		}
		m.renderer, m.width = r, width
	}

	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return tidy(rendered)
}

// tidy strips the padding glamour adds to every line and the blank lines
// around the document.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
