// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"iter"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/model"
)

// Session is a Gemini chat bound to one model. The genai chat keeps the
// conversation history, so every SendStream continues the same conversation.
type Session struct {
	id          string
	model       string
	chat        messageStreamer
	idleTimeout time.Duration
	log         *slog.Logger
}

// ID returns the local session identifier.
func (s *Session) ID() string { return s.id }

// Model returns the model identifier the session is bound to.
func (s *Session) Model() string { return s.model }

// SendStream sends text and yields response chunks as they arrive.
//
// The sequence ends after the service signals completion or after the first
// error, which is always a *ClientError. Cancelling ctx aborts the request and
// yields an ErrTypeCancelled error; a stall longer than the idle timeout yields
// ErrTypeTimeout. Breaking out of the range loop closes the request.
func (s *Session) SendStream(ctx context.Context, text string) iter.Seq2[model.StreamChunk, error] {
	return func(yield func(model.StreamChunk, error) bool) {
		streamCtx, cancel := context.WithCancelCause(ctx)
		defer cancel(nil)

		wd := startWatchdog(s.idleTimeout, func() { cancel(errIdle) })
		defer wd.stop()

		start := time.Now()
		chunks, chars := 0, 0

		for resp, err := range s.chat.SendMessageStream(streamCtx, genai.Part{Text: text}) {
			wd.reset()
			if err != nil {
				err = streamError(ctx, streamCtx, err)
				s.log.Warn("stream failed", "session", s.id, "model", s.model,
					"chunks", chunks, "chars", chars, "error", err)
				yield(model.StreamChunk{}, err)
				return
			}

			chunk := model.StreamChunk{Text: responseText(resp)}
			chunks++
			chars += len(chunk.Text)
			if !yield(chunk, nil) {
				s.log.Debug("stream abandoned by consumer", "session", s.id, "chunks", chunks)
				return
			}
		}

		// The SDK may end the sequence quietly when its context is cancelled.
		if streamCtx.Err() != nil {
			err := streamError(ctx, streamCtx, nil)
			s.log.Warn("stream aborted", "session", s.id, "model", s.model, "chunks", chunks, "error", err)
			yield(model.StreamChunk{}, err)
			return
		}

		s.log.Info("stream complete", "session", s.id, "model", s.model,
			"chunks", chunks, "chars", chars, "elapsed", time.Since(start).Round(time.Millisecond))
	}
}

// responseText concatenates the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// =============================================================================
// IDLE WATCHDOG
// =============================================================================

// watchdog fires once if it is not reset within its timeout.
type watchdog struct {
	timer   *time.Timer
	timeout time.Duration
}

func startWatchdog(timeout time.Duration, fire func()) *watchdog {
	if timeout <= 0 {
		return &watchdog{}
	}
	return &watchdog{timer: time.AfterFunc(timeout, fire), timeout: timeout}
}

func (w *watchdog) reset() {
	if w.timer != nil {
		w.timer.Reset(w.timeout)
	}
}

func (w *watchdog) stop() {
	if w.timer != nil {
		w.timer.Stop()
	}
}
