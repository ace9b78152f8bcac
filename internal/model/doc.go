// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the domain types shared by the chat client.
//
// # Key Types
//
//   - Descriptor: A model exposed by the remote catalog and its supported actions
//   - ChatSession: A conversation bound to exactly one model
//   - StreamChunk: One incremental piece of a streamed response
//
// # Usage
//
// Keep only the models that can hold a conversation:
//
//	models := model.FilterConversational(all)
//	for _, m := range models {
//	    fmt.Println(m.ID)
//	}
package model
