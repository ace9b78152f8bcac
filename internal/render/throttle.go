// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// REDRAW GATE
// =============================================================================

// RedrawGate batches content changes into redraws at a capped frame rate.
// Content is marked dirty as chunks arrive; a redraw is allowed only when
// the frame is dirty and the limiter has a token. Chunks that arrive between
// frames are folded into the next one.
//
// RedrawGate is used from the single goroutine consuming a stream and is
// not safe for concurrent use.
type RedrawGate struct {
	limiter *rate.Limiter
	dirty   bool
	frames  int
}

// NewRedrawGate creates a gate allowing at most fps redraws per second.
func NewRedrawGate(fps int) *RedrawGate {
	if fps <= 0 {
		fps = 12
	}
	return &RedrawGate{limiter: rate.NewLimiter(rate.Limit(fps), 1)}
}

// Mark records that the frame content changed.
func (g *RedrawGate) Mark() {
	g.dirty = true
}

// Dirty reports whether content changed since the last redraw.
func (g *RedrawGate) Dirty() bool {
	return g.dirty
}

// Ready reports whether a redraw should happen at now. A true result
// consumes the frame budget and clears the dirty flag.
func (g *RedrawGate) Ready(now time.Time) bool {
	if !g.dirty || !g.limiter.AllowN(now, 1) {
		return false
	}
	g.dirty = false
	g.frames++
	return true
}

// Frames returns the number of redraws allowed so far.
func (g *RedrawGate) Frames() int {
	return g.frames
}
