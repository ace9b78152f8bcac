// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styling for gemchat terminal output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/gemchat/internal/ui/styles"
	"github.com/jeranaias/gemchat/internal/util"
)

// init configures lipgloss color profile based on terminal capabilities.
func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// theme is shared by every shell and renderer in the process.
var theme = styles.NewTheme()

// =============================================================================
// HELPER FUNCTIONS FOR COMMON PATTERNS
// =============================================================================

// truncateLine shortens s to fit width terminal cells, keeping only the
// first line. Used for error text that would otherwise wrap the terminal.
func truncateLine(s string, width int) string {
	if line, more := util.FirstLine(s); more {
		s = line + " " + util.Ellipsis
	}
	if width <= 0 {
		return s
	}
	return util.TruncateWidth(s, width)
}
