// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gemini provides the client for the Google Gemini API.
//
// It wraps google.golang.org/genai behind the small surface the chat client
// needs: listing conversational models and opening chat sessions whose
// responses arrive as a lazy sequence of model.StreamChunk values.
//
// # Key Types
//
//   - Client: Catalog access and chat session creation
//   - Session: A chat bound to one model, implementing model.ChatSession
//   - ClientError: Categorized errors (catalog, session, stream, timeout)
//
// # Usage
//
//	client, err := gemini.NewClient(ctx, gemini.ClientConfig{APIKey: key})
//	if err != nil {
//	    return err
//	}
//	models, err := client.ListModels(ctx)
//	session, err := client.NewSession(ctx, "gemini-flash-lite-latest")
//	for chunk, err := range session.SendStream(ctx, "Hello") {
//	    ...
//	}
package gemini
