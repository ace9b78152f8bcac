// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"context"
	"iter"
	"strings"
)

// StreamChunk is a single piece of a streamed response.
// Text may be empty; consumers treat empty chunks as no-ops.
type StreamChunk struct {
	Text string
}

// Empty reports whether the chunk carries no text.
func (c StreamChunk) Empty() bool {
	return c.Text == ""
}

// ChatSession is a conversation bound to exactly one model. The server-side
// context (prior turns) lives as long as the session value.
type ChatSession interface {
	// ID is a local identifier used to correlate log lines
	ID() string

	// Model is the identifier the session was created for
	Model() string

	// SendStream sends text and returns the response as a finite,
	// non-restartable sequence. A non-nil error ends the sequence.
	SendStream(ctx context.Context, text string) iter.Seq2[StreamChunk, error]
}

// Collect drains a stream, concatenating the text of every chunk in order.
// each, when non-nil, sees every non-empty chunk as it arrives. On error the
// text received so far is returned with it.
func Collect(stream iter.Seq2[StreamChunk, error], each func(StreamChunk)) (string, error) {
	var b strings.Builder
	for chunk, err := range stream {
		if err != nil {
			return b.String(), err
		}
		if chunk.Empty() {
			continue
		}
		if each != nil {
			each(chunk)
		}
		b.WriteString(chunk.Text)
	}
	return b.String(), nil
}
