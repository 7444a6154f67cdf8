// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for promptchat.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display the effective configuration
//   path                Show the configuration file path
//   init                Write a default config file (fails if one exists)
//   set <key> <value>   Set a value in the config file
//
// Examples:
//   promptchat config
//   promptchat config set api.endpoint https://chat.example.com
//   promptchat config set chat.models "org/model-a,org/model-b"
//   promptchat config set ui.markdown true
//   promptchat --config ./dev.toml config init
//
// "set" edits the file as written: environment overrides are not saved.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jeranaias/promptchat/internal/config"
)

// HandleConfig runs a config subcommand. path is the file to use; empty means
// the default location.
func HandleConfig(args Args, out io.Writer) error {
	path, err := configPath(args.ConfigPath)
	if err != nil {
		return NewCommandError("config", args.Subcommand, err)
	}

	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(path, args.ConfigPath != "", out)

	case "path":
		fmt.Fprintln(out, path)
		return nil

	case "init":
		return handleConfigInit(path, out)

	case "set":
		if len(args.Raw) < 2 {
			return &UsageError{Reason: "config set needs a key and a value", Usage: "promptchat config set <key> <value>"}
		}
		return handleConfigSet(path, args.Raw[0], strings.Join(args.Raw[1:], " "), out)

	default:
		return &UsageError{Reason: fmt.Sprintf("unknown config subcommand: %s", args.Subcommand)}
	}
}

func configPath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	return config.ConfigPathTOML()
}

// handleConfigShow prints the effective configuration: file, then
// environment overrides, then defaults.
func handleConfigShow(path string, explicit bool, out io.Writer) error {
	var cfg *config.Config
	var err error
	if explicit {
		cfg, err = config.LoadFromPath(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if cfg == nil {
			return NewCommandError("config", "show", err)
		}
		fmt.Fprintf(out, "%s %v (showing defaults)\n", WarningStyle.Render("[!]"), err)
	}

	logFile := cfg.Log.File
	if logFile == "" {
		if def, err := config.DefaultLogFile(); err == nil {
			logFile = def
		}
	}

	fmt.Fprintln(out, TitleStyle.Render("promptchat configuration"))
	fmt.Fprintln(out, RenderSeparator(30))
	rows := []struct{ key, value string }{
		{"api.endpoint", cfg.API.Endpoint},
		{"chat.greeting", cfg.Chat.Greeting},
		{"chat.models", strings.Join(cfg.Chat.Models, ", ")},
		{"chat.default_model", cfg.Chat.DefaultModel},
		{"ui.markdown", fmt.Sprintf("%t", cfg.UI.Markdown)},
		{"ui.theme", cfg.UI.Theme},
		{"log.level", cfg.Log.Level},
		{"log.file", logFile},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %s%s\n", RenderLabel(r.key), ValueStyle.Render(r.value))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Config file: %s\n", DimStyle.Render(path))
	return nil
}

func handleConfigInit(path string, out io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return NewCommandError("config", "init", fmt.Errorf("%s already exists", path))
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", err)
	}
	fmt.Fprintf(out, "%s Wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

// handleConfigSet loads the file as written, applies one value, validates
// and saves it back.
func handleConfigSet(path, key, value string, out io.Writer) error {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewCommandError("config", "set", errors.New("only TOML config files can be edited"))
	}

	cfg := config.Default()
	if err := config.LoadTOML(cfg, path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return NewCommandError("config", "set", err)
	}

	if err := SetConfigValue(cfg, key, value); err != nil {
		return &UsageError{Reason: err.Error()}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return NewCommandError("config", "set", err)
	}

	fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), strings.ToLower(key), value)
	return nil
}

// SetConfigValue sets one dotted key on cfg. Keys use the names of the TOML
// file; "_" and "." are interchangeable after the section name.
func SetConfigValue(cfg *config.Config, key, value string) error {
	switch normalizeConfigKey(key) {
	case "api.endpoint":
		cfg.API.Endpoint = value

	case "chat.greeting":
		cfg.Chat.Greeting = value

	case "chat.default_model":
		cfg.Chat.DefaultModel = value

	case "chat.models":
		var models []string
		for _, m := range strings.Split(value, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
		cfg.Chat.Models = models
		// SetDefaults picks the first listed model.
		if !containsModel(models, cfg.Chat.DefaultModel) {
			cfg.Chat.DefaultModel = ""
		}

	case "ui.markdown":
		v, err := ParseBoolString(value)
		if err != nil {
			return fmt.Errorf("ui.markdown: %w", err)
		}
		cfg.UI.Markdown = v

	case "ui.theme":
		cfg.UI.Theme = value

	case "log.level":
		cfg.Log.Level = value

	case "log.file":
		cfg.Log.File = value

	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// normalizeConfigKey maps "chat.default.model" and "CHAT.DEFAULT_MODEL" to
// "chat.default_model".
func normalizeConfigKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	section, field, ok := strings.Cut(key, ".")
	if !ok {
		return key
	}
	return section + "." + strings.ReplaceAll(field, ".", "_")
}
