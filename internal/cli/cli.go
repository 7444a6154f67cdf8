// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command line parsing, usage and version output for promptchat.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Plain      bool
	Verbose    bool
	Model      string
	Endpoint   string
	ConfigPath string

	// Command-specific
	Query      string
	Subcommand string

	// Positionals after the command and its subcommand
	Raw []string
}

// Flag names. Each long name may have a one-letter alias.
const (
	flagPlain    = "plain"
	flagVerbose  = "verbose"
	flagModel    = "model"
	flagEndpoint = "endpoint"
	flagConfig   = "config"
	flagHelp     = "help"
	flagVersion  = "version"
)

var flagAliases = map[string]string{
	"v": flagVerbose,
	"m": flagModel,
	"e": flagEndpoint,
	"c": flagConfig,
	"h": flagHelp,
}

var boolFlagNames = []string{flagPlain, flagVerbose, "v", flagHelp, "h", flagVersion}

var valueFlagNames = map[string]bool{flagModel: true, flagEndpoint: true, flagConfig: true}

const usageText = `promptchat - terminal chat client for a model question API

Type a question, press Enter, and the answer from the selected model is
appended to the transcript. The API key is entered in the app and kept in
memory only. "ask" prompts for it, or reads it from the first line of stdin
when stdin is not a terminal.

Usage:
  promptchat [flags]               Start the full-screen chat (default)
  promptchat chat [flags]          Line-oriented chat (same as --plain)
  promptchat ask [flags] QUESTION  Ask one question and print the answer
  promptchat config [show|path|init|set KEY VALUE]
                                   Show or edit the config file
  promptchat version               Show version information
  promptchat help                  Show this help

Flags:
  -m, --model ID        Model to select on start
  -e, --endpoint URL    Base URL of the question API
  -c, --config PATH     Config file (TOML, or JSON when it ends in .json)
      --plain           Use the line-oriented chat instead of the TUI
  -v, --verbose         Debug-level developer log
  -h, --help            Show this help
      --version         Show version information

Config keys for "config set":
  api.endpoint, chat.greeting, chat.default_model, chat.models (comma list),
  ui.markdown, ui.theme, log.level, log.file

Environment:
  PROMPTCHAT_ENDPOINT   Overrides api.endpoint
  PROMPTCHAT_MODEL      Overrides chat.default_model
  PROMPTCHAT_MARKDOWN   Overrides ui.markdown
  PROMPTCHAT_THEME      Overrides ui.theme
  PROMPTCHAT_LOG_LEVEL  Overrides log.level
  PROMPTCHAT_LOG_FILE   Overrides log.file
  NO_COLOR              Disable colors

Keys in the full-screen chat:
  enter send   ctrl+o model   ctrl+k API key   pgup/pgdown scroll
  f1 help      esc quit
`

// PrintUsage writes the usage text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "promptchat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses argv (without the program name) into a command and its
// arguments. Flags may appear before or after the command.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)

	var args Args
	for _, raw := range p.FlagNames() {
		name := canonicalFlag(raw)
		switch {
		case name == flagPlain:
			args.Plain = p.BoolFlag(raw)
		case name == flagVerbose:
			args.Verbose = p.BoolFlag(raw)
		case name == flagHelp:
			if p.BoolFlag(raw) {
				return CmdHelp, args, nil
			}
		case name == flagVersion:
			if p.BoolFlag(raw) {
				return CmdVersion, args, nil
			}
		case valueFlagNames[name]:
			value := p.Flag(raw)
			if value == "" {
				return CmdHelp, args, &UsageError{Reason: fmt.Sprintf("flag --%s requires a value", name)}
			}
			switch name {
			case flagModel:
				args.Model = value
			case flagEndpoint:
				args.Endpoint = value
			case flagConfig:
				args.ConfigPath = value
			}
		default:
			return CmdHelp, args, &UsageError{Reason: fmt.Sprintf("unknown flag: %s", flagDisplay(raw))}
		}
	}

	if p.PositionalCount() == 0 {
		return CmdTUI, args, nil
	}

	cmd := strings.ToLower(p.Subcommand())
	rest := p.PositionalFrom(1)

	switch cmd {
	case "tui":
		return CmdTUI, args, nil

	case "chat":
		args.Plain = true
		return CmdChat, args, nil

	case "ask":
		args.Query = strings.TrimSpace(JoinPositionalArgs(p, 1))
		if args.Query == "" {
			return CmdAsk, args, &UsageError{Reason: "ask needs a question", Usage: `promptchat ask "What is Go?"`}
		}
		return CmdAsk, args, nil

	case "config":
		args.Subcommand = "show"
		if len(rest) > 0 {
			args.Subcommand = strings.ToLower(rest[0])
			args.Raw = rest[1:]
		}
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil

	default:
		return CmdHelp, args, &UsageError{Reason: fmt.Sprintf("unknown command: %s", cmd)}
	}
}

func canonicalFlag(name string) string {
	if long, ok := flagAliases[name]; ok {
		return long
	}
	return name
}

func flagDisplay(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}
