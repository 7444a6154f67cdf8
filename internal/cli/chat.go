// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-oriented chat for promptchat.
//
// Used with --plain, the "chat" command, or when stdout is not a terminal.
// It drives the same widget as the full-screen chat and prints each bot
// entry as it is appended.
//
// Slash commands:
//   /model [id]   Show or select the model
//   /models       List the configured models
//   /key          Enter the API key (cleared when left empty)
//   /help         Show commands
//   /quit         Exit (also /exit, /q, Ctrl+D)
//
// A line starting with "//" is sent as a question with one slash removed.
//
// Line history is kept in memory only.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/ui/components"
	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/widget"
)

const (
	chatPrompt   = "> "
	keyPrompt    = "API key: "
	noAnswerText = "No answer. Check your API key and model."
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader reads lines from the user. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
	AppendHistory(item string)
	Close() error
}

// NewLineReader returns a liner-backed reader with Ctrl+C aborting the
// current prompt.
func NewLineReader() LineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return line
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// ChatSession is one line-oriented chat bound to a widget.
type ChatSession struct {
	Widget   *widget.Widget
	Asker    api.Asker
	Models   []string
	Theme    *styles.Theme
	Markdown *components.MarkdownRenderer
	Reader   LineReader
	Out      io.Writer
	Width    int
	Logger   *slog.Logger
}

// Run prints the transcript so far and then reads lines until /quit, EOF or
// Ctrl+C, or until ctx is done.
func (s *ChatSession) Run(ctx context.Context) error {
	if s.Logger == nil {
		s.Logger = slog.Default()
	}
	if s.Width <= 0 {
		s.Width = DefaultTerminalWidth
	}

	s.printWelcome()
	for _, entry := range s.Widget.Snapshot().Interactions {
		s.printEntry(entry)
	}

	s.Widget.OnAppend(func(_ int, entry widget.Interaction) {
		if entry.IsBot {
			s.printEntry(entry)
		}
	})

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := s.Reader.Prompt(chatPrompt)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(s.Out)
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		keepGoing, err := s.HandleLine(ctx, line)
		if err != nil {
			fmt.Fprintf(s.Out, "%s %s\n", WarningStyle.Render("[!]"), err)
		}
		if !keepGoing {
			return nil
		}
	}
}

// HandleLine processes one input line. It returns false when the session
// should end.
func (s *ChatSession) HandleLine(ctx context.Context, line string) (bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true, nil
	}
	s.Reader.AppendHistory(line)

	switch {
	case strings.HasPrefix(trimmed, "//"):
		// A doubled slash sends the rest of the line, one slash dropped.
		line = line[strings.Index(line, "/")+1:]
	case strings.HasPrefix(trimmed, "/"):
		return s.handleSlashCommand(trimmed)
	}

	s.Widget.SetQuestion(line)
	ok, err := s.Widget.Ask(ctx, s.Asker)
	if err != nil {
		return true, err
	}
	if !ok {
		s.Logger.Debug("question settled without answer", "model", s.Widget.Snapshot().Model)
		fmt.Fprintln(s.Out, ErrorStyle.Render(styles.Markers.Alert+" "+noAnswerText))
	}
	return true, nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand processes slash commands.
// Returns (shouldContinue, error) where shouldContinue=false means exit.
func (s *ChatSession) handleSlashCommand(cmd string) (bool, error) {
	parts := strings.Fields(cmd)
	command := strings.ToLower(parts[0])
	args := parts[1:]

	switch command {
	case "/help", "/h", "/?", "/":
		s.printHelp()
		return true, nil

	case "/quit", "/q", "/exit":
		return false, nil

	case "/models":
		s.printModels()
		return true, nil

	case "/model", "/m":
		return true, s.handleModelCommand(args)

	case "/key", "/k":
		return true, s.handleKeyCommand()

	default:
		return true, fmt.Errorf("unknown command: %s (type /help for commands)", command)
	}
}

// handleModelCommand shows the current model or selects one from the list.
func (s *ChatSession) handleModelCommand(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(s.Out, "%s %s\n", DimStyle.Render("Model:"), ValueStyle.Render(s.Widget.Snapshot().Model))
		return nil
	}

	id := args[0]
	if !containsModel(s.Models, id) {
		return fmt.Errorf("unknown model: %s (type /models for the list)", id)
	}
	s.Widget.SelectModel(id)
	fmt.Fprintf(s.Out, "%s Switched to model: %s\n", SuccessStyle.Render("[OK]"), id)
	return nil
}

// handleKeyCommand reads the API key without echo where possible.
func (s *ChatSession) handleKeyCommand() error {
	key, err := s.readSecret(keyPrompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(s.Out, DimStyle.Render("Key unchanged."))
			return nil
		}
		return err
	}

	s.Widget.SetAPIKey(key)
	if key == "" {
		fmt.Fprintln(s.Out, DimStyle.Render("Key cleared."))
	} else {
		fmt.Fprintln(s.Out, SuccessStyle.Render("[OK]")+" Key set for this session.")
	}
	return nil
}

func (s *ChatSession) readSecret(prompt string) (string, error) {
	key, err := s.Reader.PasswordPrompt(prompt)
	if errors.Is(err, liner.ErrNotTerminalOutput) {
		key, err = s.Reader.Prompt(prompt)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(key), nil
}

func containsModel(models []string, id string) bool {
	for _, m := range models {
		if m == id {
			return true
		}
	}
	return false
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

func (s *ChatSession) printWelcome() {
	state := s.Widget.Snapshot()

	fmt.Fprintln(s.Out, TitleStyle.Render("promptchat"))
	fmt.Fprintln(s.Out, RenderSeparator(30))
	fmt.Fprintf(s.Out, "%s %s\n", DimStyle.Render("Model:"), ValueStyle.Render(state.Model))
	if state.APIKey == "" {
		fmt.Fprintln(s.Out, WarningStyle.Render(styles.Markers.Alert+" No API key. Type /key to enter one."))
	}
	fmt.Fprintln(s.Out, DimStyle.Render("Type your question and press Enter. Commands: /help, /quit"))
	fmt.Fprintln(s.Out)
}

func (s *ChatSession) printHelp() {
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/model [id]", "Show or select the model"},
		{"/models", "List the configured models"},
		{"/key", "Enter the API key (empty clears it)"},
		{"/help", "Show this help"},
		{"/quit", "Exit chat"},
	}

	fmt.Fprintln(s.Out, TitleStyle.Render("Commands"))
	for _, c := range commands {
		fmt.Fprintf(s.Out, "  %-14s %s\n", c.cmd, DimStyle.Render(c.desc))
	}
	fmt.Fprintln(s.Out, DimStyle.Render("Start a line with // to ask something that begins with /."))
	fmt.Fprintln(s.Out, DimStyle.Render("Ctrl+C or Ctrl+D exits."))
}

func (s *ChatSession) printModels() {
	current := s.Widget.Snapshot().Model
	if len(s.Models) == 0 {
		fmt.Fprintln(s.Out, DimStyle.Render("No models configured."))
		return
	}
	for _, m := range s.Models {
		if m == current {
			fmt.Fprintf(s.Out, "* %s\n", SuccessStyle.Render(m))
		} else {
			fmt.Fprintf(s.Out, "  %s\n", m)
		}
	}
}

func (s *ChatSession) printEntry(entry widget.Interaction) {
	view := components.NewEntryView(entry, s.Theme)
	view.Width = s.Width
	view.Markdown = s.Markdown
	fmt.Fprintln(s.Out, view.View())
	fmt.Fprintln(s.Out)
}
