// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for promptchat.
//
// Command: ask QUESTION
//
// Examples:
//   promptchat ask "What is the capital of France?"
//   echo "$HF_KEY" | promptchat ask --model my/model "Summarize Go generics"
//
// The key is prompted for without echo, or read from the first line of stdin
// when stdin is not a terminal. Only the answer goes to stdout.

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/ui/components"
	"github.com/jeranaias/promptchat/internal/widget"
)

// AskOptions configures RunAsk.
type AskOptions struct {
	Widget   *widget.Widget
	Asker    api.Asker
	Markdown *components.MarkdownRenderer
	Query    string
	Width    int

	In     io.Reader
	Out    io.Writer // answer
	ErrOut io.Writer // prompts and notices
}

// RunAsk sends one question and prints the answer. It returns ErrNoAnswer
// when the question settles without one.
func RunAsk(ctx context.Context, opts AskOptions) error {
	if opts.Width <= 0 {
		opts.Width = DefaultTerminalWidth
	}

	if opts.Widget.Snapshot().APIKey == "" {
		key, err := ReadSecret(opts.In, opts.ErrOut, keyPrompt)
		if err != nil {
			return err
		}
		opts.Widget.SetAPIKey(key)
	}

	opts.Widget.SetQuestion(opts.Query)
	ok, err := opts.Widget.Ask(ctx, opts.Asker)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoAnswer
	}

	entries := opts.Widget.Snapshot().Interactions
	answer := entries[len(entries)-1].Message
	if opts.Markdown.Enabled() {
		answer = opts.Markdown.Render(answer, opts.Width)
	}
	fmt.Fprintln(opts.Out, answer)
	return nil
}
