// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/model"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeLister struct {
	models []*genai.Model
	failAt int // index at which to yield an error; -1 for never
	err    error
}

func (f *fakeLister) All(ctx context.Context) iter.Seq2[*genai.Model, error] {
	return func(yield func(*genai.Model, error) bool) {
		for i, m := range f.models {
			if i == f.failAt {
				yield(nil, f.err)
				return
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

// step is one event produced by fakeChat: a response text, an error, or a
// stall that waits for the request context to end.
type step struct {
	text  string
	err   error
	stall bool
}

type fakeChat struct {
	steps    []step
	sent     []string
	finished bool
}

func (f *fakeChat) SendMessageStream(ctx context.Context, parts ...genai.Part) iter.Seq2[*genai.GenerateContentResponse, error] {
	for _, p := range parts {
		f.sent = append(f.sent, p.Text)
	}
	return func(yield func(*genai.GenerateContentResponse, error) bool) {
		for _, s := range f.steps {
			switch {
			case s.stall:
				<-ctx.Done()
				yield(nil, ctx.Err())
				return
			case s.err != nil:
				yield(nil, s.err)
				return
			default:
				if !yield(textResponse(s.text), nil) {
					return
				}
			}
		}
		f.finished = true
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func testClient(lister modelLister, chat *fakeChat, idle time.Duration) *Client {
	factory := func(ctx context.Context, modelID string, cfg *genai.GenerateContentConfig) (messageStreamer, error) {
		if chat == nil {
			return nil, errors.New("unknown model")
		}
		return chat, nil
	}
	return newClient(lister, factory, ClientConfig{IdleTimeout: idle})
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestListModels_FiltersConversational(t *testing.T) {
	lister := &fakeLister{
		failAt: -1,
		models: []*genai.Model{
			{Name: "models/gemini-2.0-flash", SupportedActions: []string{"generateContent", "countTokens"}},
			{Name: "models/text-embedding-004", SupportedActions: []string{"embedContent"}},
			{Name: "models/gemini-flash-lite-latest", SupportedActions: []string{"generateContent"}},
		},
	}
	c := testClient(lister, nil, 0)

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "gemini-2.0-flash", models[0].ID)
	assert.Equal(t, "gemini-flash-lite-latest", models[1].ID)
}

func TestListModels_EmptyIsNotAnError(t *testing.T) {
	lister := &fakeLister{
		failAt: -1,
		models: []*genai.Model{{Name: "models/embedding", SupportedActions: []string{"embedContent"}}},
	}
	c := testClient(lister, nil, 0)

	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, models)
}

func TestListModels_FailureDiscardsPartialList(t *testing.T) {
	lister := &fakeLister{
		failAt: 1,
		err:    errors.New("503 unavailable"),
		models: []*genai.Model{
			{Name: "models/gemini-2.0-flash", SupportedActions: []string{"generateContent"}},
			{Name: "models/gemini-2.5-pro", SupportedActions: []string{"generateContent"}},
		},
	}
	c := testClient(lister, nil, 0)

	models, err := c.ListModels(context.Background())
	require.Error(t, err)
	assert.Nil(t, models)
	assert.ErrorIs(t, err, ErrCatalog)
	assert.Contains(t, err.Error(), "503 unavailable")
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestNewSession(t *testing.T) {
	var gotModel string
	var gotCfg *genai.GenerateContentConfig
	factory := func(ctx context.Context, modelID string, cfg *genai.GenerateContentConfig) (messageStreamer, error) {
		gotModel, gotCfg = modelID, cfg
		return &fakeChat{}, nil
	}
	c := newClient(&fakeLister{failAt: -1}, factory, ClientConfig{})

	s, err := c.NewSession(context.Background(), "models/gemini-2.0-flash")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", gotModel)
	assert.Equal(t, "gemini-2.0-flash", s.Model())
	assert.NotEmpty(t, s.ID())
	require.NotNil(t, gotCfg.Temperature)
	assert.Equal(t, float32(1.0), *gotCfg.Temperature)
}

func TestNewSession_UniqueIDs(t *testing.T) {
	c := testClient(&fakeLister{failAt: -1}, &fakeChat{}, 0)

	a, err := c.NewSession(context.Background(), "gemini-2.0-flash")
	require.NoError(t, err)
	b, err := c.NewSession(context.Background(), "gemini-2.0-flash")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewSession_Errors(t *testing.T) {
	c := testClient(&fakeLister{failAt: -1}, nil, 0)

	_, err := c.NewSession(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrSession)

	_, err = c.NewSession(context.Background(), "no-such-model")
	assert.ErrorIs(t, err, ErrSession)
	assert.Contains(t, err.Error(), "unknown model")
}

// =============================================================================
// STREAM TESTS
// =============================================================================

func openSession(t *testing.T, chat *fakeChat, idle time.Duration) model.ChatSession {
	t.Helper()
	c := testClient(&fakeLister{failAt: -1}, chat, idle)
	s, err := c.NewSession(context.Background(), "gemini-flash-lite-latest")
	require.NoError(t, err)
	return s
}

func TestSendStream_Complete(t *testing.T) {
	chat := &fakeChat{steps: []step{{text: "Hel"}, {text: ""}, {text: "lo"}}}
	s := openSession(t, chat, time.Second)

	var got []string
	for chunk, err := range s.SendStream(context.Background(), "hi") {
		require.NoError(t, err)
		got = append(got, chunk.Text)
	}

	assert.Equal(t, []string{"Hel", "", "lo"}, got)
	assert.Equal(t, []string{"hi"}, chat.sent)
	assert.True(t, chat.finished)
}

func TestSendStream_MidStreamFailure(t *testing.T) {
	chat := &fakeChat{steps: []step{{text: "Hel"}, {text: "lo"}, {err: errors.New("connection reset")}}}
	s := openSession(t, chat, 0)

	text, err := model.Collect(s.SendStream(context.Background(), "hi"), nil)
	assert.Equal(t, "Hello", text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStream)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestSendStream_IdleTimeout(t *testing.T) {
	chat := &fakeChat{steps: []step{{text: "Hel"}, {stall: true}}}
	s := openSession(t, chat, 20*time.Millisecond)

	text, err := model.Collect(s.SendStream(context.Background(), "hi"), nil)
	assert.Equal(t, "Hel", text)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestSendStream_Cancelled(t *testing.T) {
	chat := &fakeChat{steps: []step{{text: "Hel"}, {stall: true}}}
	s := openSession(t, chat, 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var text string
	var streamErr error
	for chunk, err := range s.SendStream(ctx, "hi") {
		if err != nil {
			streamErr = err
			break
		}
		text += chunk.Text
		cancel()
	}

	assert.Equal(t, "Hel", text)
	assert.ErrorIs(t, streamErr, ErrCancelled)
	assert.ErrorIs(t, streamErr, context.Canceled)
}

func TestSendStream_ConsumerBreak(t *testing.T) {
	chat := &fakeChat{steps: []step{{text: "a"}, {text: "b"}, {text: "c"}}}
	s := openSession(t, chat, 0)

	for range s.SendStream(context.Background(), "hi") {
		break
	}
	assert.False(t, chat.finished)
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: "Hello"},
				nil,
				{Text: " world"},
			}},
		}},
	}
	assert.Equal(t, "Hello world", responseText(resp))
}

func TestErrorType_String(t *testing.T) {
	assert.Equal(t, "catalog", ErrTypeCatalog.String())
	assert.Equal(t, "timeout", ErrTypeTimeout.String())
	assert.Equal(t, "unknown", ErrorType(99).String())
}
