// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/jeranaias/gemchat/internal/model"
)

// =============================================================================
// LIVE REGION
// =============================================================================

// liveRegion is a block of lines at the bottom of the output that is erased
// and redrawn in place.
type liveRegion struct {
	out   *termenv.Output
	lines int
}

func newLiveRegion(w io.Writer) *liveRegion {
	return &liveRegion{out: termenv.NewOutput(w)}
}

// draw replaces the previous frame with frame. The cursor is left at the
// start of the line below the frame.
func (r *liveRegion) draw(frame string) {
	if r.lines > 0 {
		r.out.ClearLines(r.lines)
	}
	r.out.WriteString(frame + "\n")
	r.lines = strings.Count(frame, "\n") + 1
}

// =============================================================================
// LIVE PANEL
// =============================================================================

// LivePanel redraws the accumulated response as markdown inside a titled
// panel while the stream is in progress. Redraws run on a ticker, so text
// that arrived during the frame budget appears even if the stream pauses.
type LivePanel struct {
	opts Options
	md   *Markdown
	raw  *RawThenFinal
	now  func() time.Time
}

// NewLivePanel creates the live panel strategy.
func NewLivePanel(opts Options) *LivePanel {
	opts = opts.withDefaults()
	return &LivePanel{
		opts: opts,
		md:   NewMarkdown(opts.Theme),
		raw:  NewRawThenFinal(opts),
		now:  time.Now,
	}
}

// streamEvent carries one chunk, or the end of the stream, from the reading
// goroutine to the drawing loop.
type streamEvent struct {
	text string
	done bool
	err  error
}

// Render sends message and redraws the panel as the response streams in.
// The final frame is drawn in full and left on screen. Terminals narrower
// than the panel minimum get the raw strategy instead, since wrapped frame
// lines cannot be erased reliably.
func (p *LivePanel) Render(ctx context.Context, s Streamer, message string) Outcome {
	if p.opts.narrow() {
		p.opts.Logger.Debug("terminal too narrow for live panel, using raw output")
		return p.raw.Render(ctx, s, message)
	}

	region := newLiveRegion(p.opts.Out)
	gate := NewRedrawGate(p.opts.RefreshPerSecond)

	// The reader always runs to the end of the stream; the loop below
	// receives every event, so it never blocks on send.
	events := make(chan streamEvent)
	go func() {
		text, err := model.Collect(s.SendStream(ctx, message), func(chunk model.StreamChunk) {
			events <- streamEvent{text: chunk.Text}
		})
		events <- streamEvent{text: text, done: true, err: err}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(p.opts.RefreshPerSecond))
	defer ticker.Stop()

	var acc strings.Builder
	region.draw(p.frame("", true))

	var last streamEvent
	for !last.done {
		select {
		case ev := <-events:
			if ev.done {
				last = ev
				continue
			}
			acc.WriteString(ev.text)
			gate.Mark()
		case <-ticker.C:
		}
		if gate.Ready(p.now()) {
			region.draw(p.frame(acc.String(), true))
		}
	}

	text := last.text
	region.draw(p.frame(text, false))

	outcome := finish(text, last.err, p.opts.Reporter)
	p.opts.Logger.Debug("live render finished",
		"chars", len(text), "frames", gate.Frames()+2, "failed", outcome.Failed())
	return outcome
}

// frame renders the panel for text. While streaming, a panel taller than
// the terminal is cut to its last lines so the in-place redraw stays on
// screen.
func (p *LivePanel) frame(text string, streaming bool) string {
	width := p.opts.width()

	body := p.opts.Styles.Placeholder.Render(Placeholder)
	if text != "" {
		body = p.md.Render(text, width-panelChrome)
	}

	panel := renderPanel(p.opts.Styles, PanelTitle, body, width)
	if streaming {
		panel = tail(panel, p.opts.height()-1)
	}
	return panel
}
