// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view of promptchat.

The Model binds a widget.Widget to the terminal using Bubble Tea. The widget
owns the session state; the Model renders it and turns key presses into
widget actions.

# Key Components

## Model (model.go)

The Bubble Tea model. It subscribes to the widget and applies each state
snapshot to the header, transcript viewport, input form and status bar.
The OnAppend hook scrolls the transcript to the bottom.

## View Rendering (view.go)

Header, transcript, input form with the Send button and status bar, or one
of the overlays: model selector, API key dialog, key help.

## Update Loop (update.go)

Submitting calls widget.Begin, then sends the question from a tea.Cmd. The
result comes back as an AnswerMsg and is settled in the update loop, which
is the only writer of the widget.

# Usage

	w := widget.New(widget.Options{Greeting: cfg.Chat.Greeting, Model: cfg.Chat.DefaultModel})
	m := chat.New(styles.NewTheme(cfg.UI.Theme), chat.Options{
		Widget: w,
		Asker:  api.NewClient(cfg.API.Endpoint),
		Models: cfg.Chat.Models,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
*/
package chat
