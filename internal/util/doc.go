// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides string helpers for terminal output.
//
// # Key Functions
//
//   - StringWidth: display width in terminal columns
//   - TruncateWidth: width-aware truncation with ellipsis
//   - FirstLine: first line of multi-line text
//
// # Usage
//
//	// Keep an error message on one terminal row
//	line, _ := util.FirstLine(err.Error())
//	display := util.TruncateWidth(line, 60)
package util
