// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - User-facing output for the chat REPL.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/gemchat/internal/model"
	"github.com/jeranaias/gemchat/internal/render"
	"github.com/jeranaias/gemchat/internal/ui/styles"
	"github.com/jeranaias/gemchat/internal/util"
)

// Prompts shown by the REPL.
const (
	InputPrompt  = "You > "
	SelectPrompt = "Select > "
	BannerTitle  = "Quick Chatbot Assistant"
)

// Shell writes styled status lines, the welcome banner and model lists.
// It also receives stream failures from the renderer.
type Shell struct {
	out   io.Writer
	theme *styles.Theme
	width func() int
}

var _ render.Reporter = (*Shell)(nil)

// NewShell creates a shell writing to out. width reports the terminal
// width used to truncate long error lines; nil disables truncation.
func NewShell(out io.Writer, width func() int) *Shell {
	if width == nil {
		width = func() int { return 0 }
	}
	return &Shell{out: out, theme: theme, width: width}
}

// =============================================================================
// BANNER
// =============================================================================

// Banner prints the welcome box.
func (s *Shell) Banner(modelID string) {
	t := s.theme
	body := strings.Join([]string{
		t.BannerTitle.Render(BannerTitle),
		t.BannerLabel.Render("Model: ") + t.BannerValue.Render(modelID),
		t.BannerLabel.Render("Type ") + t.ListModel.Render("/model") + t.BannerLabel.Render(" to select a model"),
		t.BannerLabel.Render("Type ") + t.ListModel.Render("q") + t.BannerLabel.Render(" or ") +
			t.ListModel.Render("exit") + t.BannerLabel.Render(" to quit"),
		t.BannerLabel.Render("Ctrl+C cancels a response"),
	}, "\n")
	fmt.Fprintln(s.out, t.Banner.Render(body))
}

// =============================================================================
// STATUS LINES
// =============================================================================

// Println writes an empty line.
func (s *Shell) Println() {
	fmt.Fprintln(s.out)
}

// Info prints a neutral notice.
func (s *Shell) Info(msg string) {
	fmt.Fprintln(s.out, s.theme.Info.Render(msg))
}

// Hint prints de-emphasized help text.
func (s *Shell) Hint(msg string) {
	fmt.Fprintln(s.out, s.theme.Muted.Render(msg))
}

// Success prints a confirmation.
func (s *Shell) Success(msg string) {
	fmt.Fprintln(s.out, s.theme.RenderSuccess(msg))
}

// Warn prints a warning.
func (s *Shell) Warn(msg string) {
	fmt.Fprintln(s.out, s.theme.RenderWarning(s.fit(msg)))
}

// Error prints a message-level failure.
func (s *Shell) Error(msg string) {
	fmt.Fprintln(s.out, s.theme.RenderError(s.fit(msg)))
}

// StreamError prints the failure that ended a response stream.
func (s *Shell) StreamError(err error) {
	fmt.Fprintln(s.out, s.theme.RenderStreamError(s.fit(err.Error())))
}

// Interrupted prints the marker for a response cancelled by the user.
func (s *Shell) Interrupted() {
	fmt.Fprintln(s.out, s.theme.RenderInterrupted())
}

// fit truncates msg so the marked line stays on one terminal row.
func (s *Shell) fit(msg string) string {
	w := s.width()
	if w <= 0 {
		return truncateLine(msg, 0)
	}
	// room for the longest marker and a space
	return truncateLine(msg, max(w-len(styles.StatusIndicators.StreamError)-1, 10))
}

// =============================================================================
// MODEL LIST
// =============================================================================

// ModelList prints a 1-indexed list of models, marking current. Display
// names, when the service provides them, are aligned in a second column.
func (s *Shell) ModelList(models []model.Descriptor, current string) {
	t := s.theme

	labels := make([]string, len(models))
	column := 0
	for i, m := range models {
		labels[i] = m.ID
		if m.ID == current {
			labels[i] += " (current)"
		}
		column = max(column, util.StringWidth(labels[i]))
	}

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, t.BannerTitle.Render("Available models:"))
	for i, m := range models {
		row := "  " + t.ListIndex.Render(fmt.Sprintf("%d.", i+1)) + " " + t.ListModel.Render(m.ID)
		if m.ID == current {
			row += " " + t.ListCurrent.Render("(current)")
		}
		if m.DisplayName != "" && m.DisplayName != m.ID {
			pad := column - util.StringWidth(labels[i]) + 2
			row += strings.Repeat(" ", pad) + t.Muted.Render(m.DisplayName)
		}
		fmt.Fprintln(s.out, row)
	}
	fmt.Fprintln(s.out)
}

// Prompt returns a styled prompt string.
func (s *Shell) Prompt(text string) string {
	return s.theme.Prompt.Render(text)
}
