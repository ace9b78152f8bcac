// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the gemchat command line and interactive chat REPL.
//
// # Key Types
//
//   - Controller: the REPL state machine owning the active model and session
//   - Selector: interactive model selection for /model
//   - Shell: styled terminal output and the welcome banner
//   - Prompt: liner-backed line editing with in-memory history
//
// # Commands
//
//   - gemchat: interactive chat
//   - gemchat models: list chat-capable models
//   - gemchat version: version information
//
// Startup errors are printed once by Execute and exit with status 1.
// Errors inside the REPL are reported and the loop continues.
package cli
