// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for gemchat.
//
// Settings come from a TOML file with sensible defaults and environment
// variable overrides. The Gemini API key is never stored in the TOML file;
// it is read from the environment after loading optional .env files.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - RenderConfig: Streaming renderer strategy and refresh rate
//   - StreamConfig: Stream hardening (idle timeout)
//   - MissingCredentialError: Fatal startup error when GEMINI_API_KEY is absent
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (GEMCHAT_*)
//   - ~/.gemchat/config.toml
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	key, err := config.LoadAPIKey(config.DefaultEnvFiles()...)
package config
