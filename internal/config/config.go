// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for promptchat.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// .env and environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.promptchat/config.toml
//   - ~/.promptchat/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/jeranaias/promptchat/internal/util"
)

// Defaults shared with the rest of the program.
const (
	DefaultEndpoint = "http://localhost:3000"
	DefaultGreeting = "Hi! 👋, try to prompt and see what happens."
	DefaultModel    = "huggingface-projects/llama-3.2-3B-Instruct"
	DefaultLogLevel = "info"
	DefaultTheme    = "auto"

	dirName = ".promptchat"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete promptchat configuration.
// The API key is deliberately absent: it lives in memory only.
type Config struct {
	API  APIConfig  `toml:"api" json:"api"`
	Chat ChatConfig `toml:"chat" json:"chat"`
	UI   UIConfig   `toml:"ui" json:"ui"`
	Log  LogConfig  `toml:"log" json:"log"`
}

// APIConfig contains the backend connection settings.
type APIConfig struct {
	// Endpoint is the base URL; questions are posted to Endpoint + "/api".
	Endpoint string `toml:"endpoint" json:"endpoint"`
}

// ChatConfig contains the chat widget settings.
type ChatConfig struct {
	// Greeting is the seed bot entry shown when the transcript opens.
	Greeting string `toml:"greeting" json:"greeting"`
	// Models is the static list offered by the model selector.
	Models []string `toml:"models" json:"models"`
	// DefaultModel is the model selected on start.
	DefaultModel string `toml:"default_model" json:"default_model"`
}

// UIConfig contains terminal rendering settings.
type UIConfig struct {
	// Markdown renders bot answers as markdown when true.
	Markdown bool `toml:"markdown" json:"markdown"`
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
}

// LogConfig contains developer log settings.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" json:"level"`
	// File is the log path (empty = ~/.promptchat/logs/promptchat.log).
	File string `toml:"file" json:"file"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a configuration with all defaults applied.
func Default() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
		},
		Chat: ChatConfig{
			Greeting:     DefaultGreeting,
			Models:       []string{DefaultModel},
			DefaultModel: DefaultModel,
		},
		UI: UIConfig{
			Markdown: false,
			Theme:    DefaultTheme,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the promptchat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogFile returns ~/.promptchat/logs/promptchat.log.
func DefaultLogFile() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs", "promptchat.log"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last. Fields missing from a file take
// their defaults in SetDefaults.
//
// When a file exists but cannot be decoded, Load returns the defaults together
// with the decode error so callers can warn and carry on.
func Load() (*Config, error) {
	var loadErr error

	if path, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			cfg := &Config{}
			if err := LoadTOML(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if path, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			cfg := &Config{}
			if err := LoadJSON(cfg, path); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Files ending in .json are decoded as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadDotEnv loads environment variables from the given .env files, or from
// ./.env when none are given. Variables already set in the environment win.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// SaveTOML writes the configuration to path atomically, creating parent
// directories.
func SaveTOML(cfg *Config, path string) error {
	err := util.WriteFileAtomic(path, 0644, func(w io.Writer) error {
		io.WriteString(w, "# promptchat configuration file\n")
		io.WriteString(w, "# The API key is never stored here; enter it in the app.\n\n")
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

var (
	validThemes    = map[string]bool{"auto": true, "dark": true, "light": true}
	validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate validates the configuration and returns any errors as ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.API.Endpoint); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.endpoint",
			Message: fmt.Sprintf("invalid URL '%s', must be an http or https URL", c.API.Endpoint),
		})
	}

	if len(c.Chat.Models) == 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.models",
			Message: "at least one model is required",
		})
	}
	for i, m := range c.Chat.Models {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("chat.models[%d]", i),
				Message: "model identifier is empty",
			})
		}
	}
	if strings.TrimSpace(c.Chat.DefaultModel) == "" {
		errs = append(errs, ValidationError{
			Field:   "chat.default_model",
			Message: "default model is empty",
		})
	}

	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills empty fields with defaults and makes sure the default
// model is offered by the selector.
func (c *Config) SetDefaults() {
	defaults := Default()

	c.API.Endpoint = strings.TrimSuffix(strings.TrimSpace(c.API.Endpoint), "/")
	if c.API.Endpoint == "" {
		c.API.Endpoint = defaults.API.Endpoint
	}
	if c.Chat.Greeting == "" {
		c.Chat.Greeting = defaults.Chat.Greeting
	}
	if c.Chat.DefaultModel == "" {
		if len(c.Chat.Models) > 0 {
			c.Chat.DefaultModel = c.Chat.Models[0]
		} else {
			c.Chat.DefaultModel = defaults.Chat.DefaultModel
		}
	}
	if !contains(c.Chat.Models, c.Chat.DefaultModel) {
		c.Chat.Models = append(c.Chat.Models, c.Chat.DefaultModel)
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	c.Log.Level = strings.ToLower(c.Log.Level)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// envOverrides lists the variables read by ApplyEnvOverrides. Empty means
// unset.
type envOverrides struct {
	Endpoint string `env:"PROMPTCHAT_ENDPOINT"`
	Model    string `env:"PROMPTCHAT_MODEL"`
	LogLevel string `env:"PROMPTCHAT_LOG_LEVEL"`
	LogFile  string `env:"PROMPTCHAT_LOG_FILE"`
	Markdown string `env:"PROMPTCHAT_MARKDOWN"`
	Theme    string `env:"PROMPTCHAT_THEME"`
}

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - PROMPTCHAT_ENDPOINT: overrides api.endpoint
//   - PROMPTCHAT_MODEL: overrides chat.default_model
//   - PROMPTCHAT_LOG_LEVEL: overrides log.level
//   - PROMPTCHAT_LOG_FILE: overrides log.file
//   - PROMPTCHAT_MARKDOWN: "1"/"true" or "0"/"false", overrides ui.markdown
//   - PROMPTCHAT_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if o.Endpoint != "" {
		c.API.Endpoint = o.Endpoint
	}
	if o.Model != "" {
		c.Chat.DefaultModel = o.Model
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFile != "" {
		c.Log.File = o.LogFile
	}
	if o.Markdown != "" {
		v, err := strconv.ParseBool(o.Markdown)
		if err != nil {
			return fmt.Errorf("PROMPTCHAT_MARKDOWN: invalid boolean '%s'", o.Markdown)
		}
		c.UI.Markdown = v
	}
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	return nil
}
