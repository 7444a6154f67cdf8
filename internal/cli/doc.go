// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package cli implements the promptchat command line: argument parsing,
help and version output, the line-oriented chat, the one-shot ask command
and the config command.

# Commands

	promptchat                 Full-screen chat (default)
	promptchat chat            Line-oriented chat
	promptchat ask QUESTION    Ask one question and print the answer
	promptchat config [...]    Show or edit the config file
	promptchat version         Version information
	promptchat help            Usage

# Usage

	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}

The line-oriented chat is used for --plain, for the chat command and when
stdout is not a terminal. It drives the same widget.Widget as the
full-screen chat:

	session := &cli.ChatSession{
		Widget: w,
		Asker:  client,
		Models: cfg.Chat.Models,
		Theme:  theme,
		Reader: cli.NewLineReader(),
		Out:    os.Stdout,
	}
	err := session.Run(ctx)
*/
package cli
