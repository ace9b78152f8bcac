// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// ==========================================================================
	// BANNER STYLES
	// ==========================================================================

	Banner      lipgloss.Style
	BannerTitle lipgloss.Style
	BannerLabel lipgloss.Style
	BannerValue lipgloss.Style

	// ==========================================================================
	// ASSISTANT PANEL STYLES
	// ==========================================================================

	PanelBorder lipgloss.Style
	PanelTitle  lipgloss.Style
	Placeholder lipgloss.Style

	// ==========================================================================
	// MODEL LIST STYLES
	// ==========================================================================

	ListIndex   lipgloss.Style
	ListModel   lipgloss.Style
	ListCurrent lipgloss.Style

	// ==========================================================================
	// STATUS LINE STYLES
	// ==========================================================================

	Info        lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Error       lipgloss.Style
	Interrupted lipgloss.Style
	Muted       lipgloss.Style
	Prompt      lipgloss.Style
}

// NewTheme creates a new theme with all styles configured. Colors degrade
// according to the lipgloss color profile in effect when styles render.
func NewTheme() *Theme {
	t := &Theme{}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Banner
	t.Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2)

	t.BannerTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.BannerLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.BannerValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Assistant panel
	t.PanelBorder = lipgloss.NewStyle().
		Foreground(Magenta)

	t.PanelTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Magenta)

	t.Placeholder = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Model list
	t.ListIndex = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ListModel = lipgloss.NewStyle().
		Foreground(Cyan)

	t.ListCurrent = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Status lines
	t.Info = lipgloss.NewStyle().
		Foreground(Cyan)

	t.Success = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.Warning = lipgloss.NewStyle().
		Foreground(Amber)

	t.Error = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Interrupted = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)
}

// =============================================================================
// STATUS LINE HELPERS
// =============================================================================

// RenderSuccess renders a success line.
func (t *Theme) RenderSuccess(message string) string {
	return t.Success.Render(message)
}

// RenderError renders a message-level error with its text marker.
func (t *Theme) RenderError(message string) string {
	return t.Error.Render(StatusIndicators.Error + " " + message)
}

// RenderStreamError renders a failure that ended a response stream.
func (t *Theme) RenderStreamError(message string) string {
	return t.Error.Render(StatusIndicators.StreamError + " " + message)
}

// RenderInterrupted renders the marker shown when the user cancels a stream.
func (t *Theme) RenderInterrupted() string {
	return t.Interrupted.Render(StatusIndicators.Interrupted)
}

// RenderWarning renders a warning line with its text marker.
func (t *Theme) RenderWarning(message string) string {
	return t.Warning.Render(StatusIndicators.Warning + " " + message)
}
