// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"io"

	"github.com/jeranaias/gemchat/internal/model"
)

// RawThenFinal prints chunks the moment they arrive, then prints the whole
// response again as formatted markdown.
type RawThenFinal struct {
	opts Options
	md   *Markdown
}

// NewRawThenFinal creates the raw-then-final strategy.
func NewRawThenFinal(opts Options) *RawThenFinal {
	opts = opts.withDefaults()
	return &RawThenFinal{opts: opts, md: NewMarkdown(opts.Theme)}
}

// Render sends message, echoes each chunk unbuffered, and re-renders the
// accumulated text once the stream ends.
func (r *RawThenFinal) Render(ctx context.Context, s Streamer, message string) Outcome {
	out := r.opts.Out

	text, streamErr := model.Collect(s.SendStream(ctx, message), func(chunk model.StreamChunk) {
		io.WriteString(out, chunk.Text)
	})
	fmt.Fprintln(out)

	outcome := finish(text, streamErr, r.opts.Reporter)

	if text != "" {
		fmt.Fprintln(out, r.md.Render(text, r.opts.width()))
	}

	r.opts.Logger.Debug("raw render finished", "chars", len(text), "failed", outcome.Failed())
	return outcome
}
