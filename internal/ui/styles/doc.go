// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for gemchat.

This package defines the color palette and the lipgloss styles shared by the
terminal shell and the response renderer. All colors use Lip Gloss
AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

  - Magenta - Assistant panel border and title
  - Purple - Welcome banner border
  - Cyan - Info lines, commands and model identifiers
  - Emerald - Success lines and the current model marker
  - Amber - Warnings and interrupts
  - Rose - Errors and stream failures

Every status line carries a text marker from StatusIndicators ([Error],
[Stream error], [Interrupted], ...) so it stays readable when color is off.

# Theme (theme.go)

	theme := styles.NewTheme()
	fmt.Println(theme.RenderStreamError("connection reset"))
*/
package styles
