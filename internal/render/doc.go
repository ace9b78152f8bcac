// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render displays streamed model responses in the terminal.
//
// Two strategies implement Renderer:
//
//   - LivePanel redraws a titled markdown panel in place as chunks arrive,
//     at a capped refresh rate.
//   - RawThenFinal prints each chunk as it arrives, then re-renders the
//     whole response as formatted markdown.
//
// Both consume a Streamer until it ends or fails, keep whatever text arrived,
// and report failures through a Reporter instead of returning them.
package render
