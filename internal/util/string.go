// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// UNICODE: Width-aware truncation keeps wide (CJK, emoji) characters whole
// and counts them as two terminal columns.

// Ellipsis marks truncated text.
const Ellipsis = "..."

// StringWidth returns the number of terminal columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth truncates s to at most maxWidth terminal columns, ending
// truncated text with an ellipsis when there is room for one.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= len(Ellipsis) {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// FirstLine returns the first line of s and whether anything followed it.
func FirstLine(s string) (string, bool) {
	line, _, more := strings.Cut(s, "\n")
	return strings.TrimRight(line, "\r"), more
}
