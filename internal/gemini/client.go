// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package gemini

import (
	"context"
	"errors"
	"iter"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/jeranaias/gemchat/internal/model"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Gemini client.
type ClientConfig struct {
	// APIKey authenticates against the Gemini API (required)
	APIKey string

	// Temperature is sent with every message (default: 1.0)
	Temperature float64

	// IdleTimeout aborts a stream when no chunk arrives in time (0 = disabled)
	IdleTimeout time.Duration

	// Logger receives debug events; nil discards them
	Logger *slog.Logger
}

// =============================================================================
// BACKEND SEAMS
// =============================================================================

// modelLister is satisfied by genai's Models service.
type modelLister interface {
	All(ctx context.Context) iter.Seq2[*genai.Model, error]
}

// messageStreamer is satisfied by *genai.Chat.
type messageStreamer interface {
	SendMessageStream(ctx context.Context, parts ...genai.Part) iter.Seq2[*genai.GenerateContentResponse, error]
}

// chatFactory opens a server-side chat for a model.
type chatFactory func(ctx context.Context, modelID string, cfg *genai.GenerateContentConfig) (messageStreamer, error)

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Gemini API.
//
// Example:
//
//	client, err := gemini.NewClient(ctx, gemini.ClientConfig{APIKey: key})
//	models, err := client.ListModels(ctx)
type Client struct {
	models      modelLister
	newChat     chatFactory
	temperature float64
	idleTimeout time.Duration
	log         *slog.Logger
}

// NewClient creates a client for the Gemini Developer API.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeUnknown, Message: "failed to create Gemini client", Cause: err}
	}

	newChat := func(ctx context.Context, modelID string, gcfg *genai.GenerateContentConfig) (messageStreamer, error) {
		chat, err := gc.Chats.Create(ctx, modelID, gcfg, nil)
		if err != nil {
			return nil, err
		}
		return chat, nil
	}

	return newClient(gc.Models, newChat, cfg), nil
}

func newClient(models modelLister, newChat chatFactory, cfg ClientConfig) *Client {
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 1.0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		models:      models,
		newChat:     newChat,
		temperature: temperature,
		idleTimeout: cfg.IdleTimeout,
		log:         logger,
	}
}

// =============================================================================
// MODEL CATALOG
// =============================================================================

// ListModels returns the models that support conversational generation, in
// the order the service lists them. Any failure while paging aborts the
// whole listing; a partial list is never returned. An empty result with a
// nil error means the service offers no conversational models.
func (c *Client) ListModels(ctx context.Context) ([]model.Descriptor, error) {
	var all []model.Descriptor
	for m, err := range c.models.All(ctx) {
		if err != nil {
			c.log.Warn("catalog fetch failed", "error", err, "seen", len(all))
			return nil, &ClientError{Type: ErrTypeCatalog, Message: "failed to list models", Cause: err}
		}
		if m == nil {
			continue
		}
		all = append(all, model.NewDescriptor(m.Name, m.DisplayName, m.SupportedActions))
	}

	models := model.FilterConversational(all)
	c.log.Debug("catalog fetched", "total", len(all), "conversational", len(models))
	return models, nil
}

// =============================================================================
// CHAT SESSIONS
// =============================================================================

// NewSession opens a chat bound to modelID with an empty history.
func (c *Client) NewSession(ctx context.Context, modelID string) (model.ChatSession, error) {
	id := model.NormalizeID(modelID)
	if id == "" {
		return nil, &ClientError{Type: ErrTypeSession, Message: "model identifier is empty"}
	}

	gcfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(c.temperature)),
	}
	chat, err := c.newChat(ctx, id, gcfg)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeSession, Message: "failed to create chat session for " + id, Cause: err}
	}

	s := &Session{
		id:          uuid.NewString(),
		model:       id,
		chat:        chat,
		idleTimeout: c.idleTimeout,
		log:         c.log,
	}
	c.log.Info("session created", "session", s.id, "model", id)
	return s, nil
}
