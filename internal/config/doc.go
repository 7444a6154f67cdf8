// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for promptchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - APIConfig: Backend endpoint
//   - ChatConfig: Greeting and the static model list
//   - UIConfig: Markdown rendering and theme
//   - LogConfig: Developer log level and file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command-line flags (applied by the caller)
//   - Environment variables (PROMPTCHAT_*), including those from ./.env
//   - ~/.promptchat/config.toml
//   - ~/.promptchat/config.json
//   - Built-in defaults
//
// The API key is never part of the configuration.
//
// # Usage
//
//	_ = config.LoadDotEnv()
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
//	}
//
//	endpoint := cfg.API.Endpoint
//	models := cfg.Chat.Models
package config
