// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at a temp dir and clears every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{
		"PROMPTCHAT_ENDPOINT",
		"PROMPTCHAT_MODEL",
		"PROMPTCHAT_LOG_LEVEL",
		"PROMPTCHAT_LOG_FILE",
		"PROMPTCHAT_MARKDOWN",
		"PROMPTCHAT_THEME",
	} {
		t.Setenv(name, "")
	}
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// =============================================================================
// DEFAULTS
// =============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:3000", cfg.API.Endpoint)
	assert.Equal(t, "Hi! 👋, try to prompt and see what happens.", cfg.Chat.Greeting)
	assert.Equal(t, []string{"huggingface-projects/llama-3.2-3B-Instruct"}, cfg.Chat.Models)
	assert.Equal(t, "huggingface-projects/llama-3.2-3B-Instruct", cfg.Chat.DefaultModel)
	assert.False(t, cfg.UI.Markdown)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// =============================================================================
// FILE LOADING
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".promptchat", "config.toml"), `
[api]
endpoint = "https://chat.example.test/"

[chat]
greeting = "Hello"
models = ["org/a", "org/b"]

[ui]
markdown = true
theme = "Dark"

[log]
level = "DEBUG"
file = "/tmp/pc.log"
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://chat.example.test", cfg.API.Endpoint)
	assert.Equal(t, "Hello", cfg.Chat.Greeting)
	assert.Equal(t, []string{"org/a", "org/b"}, cfg.Chat.Models)
	assert.Equal(t, "org/a", cfg.Chat.DefaultModel, "first listed model becomes the default")
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/pc.log", cfg.Log.File)
}

func TestLoad_JSONFallback(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".promptchat", "config.json"),
		`{"chat": {"default_model": "org/json"}}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "org/json", cfg.Chat.DefaultModel)
	assert.Equal(t, []string{"org/json"}, cfg.Chat.Models)
	assert.Equal(t, DefaultEndpoint, cfg.API.Endpoint)
}

func TestLoad_BadTOMLFallsBackToDefaults(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".promptchat", "config.toml"), "[api\nendpoint = ")

	cfg, err := Load()
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "custom.toml")
	writeFile(t, tomlPath, "[chat]\ndefault_model = \"org/extra\"\n")

	cfg, err := LoadFromPath(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "org/extra", cfg.Chat.DefaultModel)
	assert.Contains(t, cfg.Chat.Models, "org/extra")

	jsonPath := filepath.Join(dir, "custom.JSON")
	writeFile(t, jsonPath, `{"ui": {"theme": "light"}}`)
	cfg, err = LoadFromPath(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)

	_, err = LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoadFromPath_InvalidValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, path, `
[api]
endpoint = "ftp://example.test"
[ui]
theme = "neon"
[log]
level = "loud"
`)

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"api.endpoint", "ui.theme", "log.level"}, fields)
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"https endpoint", func(c *Config) { c.API.Endpoint = "https://x.test" }, ""},
		{"no scheme", func(c *Config) { c.API.Endpoint = "localhost:3000" }, "api.endpoint"},
		{"empty endpoint", func(c *Config) { c.API.Endpoint = "" }, "api.endpoint"},
		{"no models", func(c *Config) { c.Chat.Models = nil }, "chat.models"},
		{"blank model", func(c *Config) { c.Chat.Models = []string{"a", " "} }, "chat.models[1]"},
		{"blank default", func(c *Config) { c.Chat.DefaultModel = "" }, "chat.default_model"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidateErrors{}.Error())
	errs := ValidateErrors{{Field: "a", Message: "x"}, {Field: "b", Message: "y"}}
	assert.Equal(t, "a: x; b: y", errs.Error())
}

func TestSetDefaults_AddsDefaultModelToList(t *testing.T) {
	cfg := &Config{Chat: ChatConfig{Models: []string{"org/a"}, DefaultModel: "org/z"}}
	cfg.SetDefaults()
	assert.Equal(t, []string{"org/a", "org/z"}, cfg.Chat.Models)
	assert.Equal(t, DefaultEndpoint, cfg.API.Endpoint)
	assert.Equal(t, DefaultGreeting, cfg.Chat.Greeting)
}

// =============================================================================
// ENVIRONMENT
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".promptchat", "config.toml"), `
[api]
endpoint = "http://file.test"
[chat]
default_model = "org/file"
[log]
level = "warn"
`)
	t.Setenv("PROMPTCHAT_ENDPOINT", "http://env.test:8080")
	t.Setenv("PROMPTCHAT_MODEL", "org/env")
	t.Setenv("PROMPTCHAT_LOG_LEVEL", "debug")
	t.Setenv("PROMPTCHAT_LOG_FILE", "/var/tmp/pc.log")
	t.Setenv("PROMPTCHAT_MARKDOWN", "true")
	t.Setenv("PROMPTCHAT_THEME", "light")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://env.test:8080", cfg.API.Endpoint)
	assert.Equal(t, "org/env", cfg.Chat.DefaultModel)
	assert.Contains(t, cfg.Chat.Models, "org/env")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/tmp/pc.log", cfg.Log.File)
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, "light", cfg.UI.Theme)
}

func TestApplyEnvOverrides_BadBool(t *testing.T) {
	isolate(t)
	t.Setenv("PROMPTCHAT_MARKDOWN", "sometimes")

	cfg := Default()
	err := cfg.ApplyEnvOverrides()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROMPTCHAT_MARKDOWN")
}

func TestLoadDotEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "PROMPTCHAT_TEST_DOTENV=from-file\n")
	t.Cleanup(func() { os.Unsetenv("PROMPTCHAT_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("PROMPTCHAT_TEST_DOTENV"))

	// Missing files are ignored.
	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "nope.env")))
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "PROMPTCHAT_ENDPOINT=http://dotenv.test\n")
	t.Setenv("PROMPTCHAT_ENDPOINT", "http://real.test")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "http://real.test", os.Getenv("PROMPTCHAT_ENDPOINT"))
}

// =============================================================================
// SAVE
// =============================================================================

func TestSaveTOML_RoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.UI.Markdown = true
	cfg.Chat.Models = append(cfg.Chat.Models, "org/other")
	require.NoError(t, SaveTOML(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
