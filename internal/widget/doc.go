// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget holds the chat session state and the actions that mutate it.
//
// The widget knows nothing about terminals. The full-screen UI and the plain
// REPL are both renderers of the same Widget: they dispatch actions
// (SetQuestion, SelectModel, SetAPIKey, Begin/Settle) and redraw from the
// State snapshots handed to their observers.
//
// # Key Types
//
//   - Widget: The state store, safe for concurrent use
//   - State: A copy of the session state
//   - Interaction: One transcript entry, user or bot
//   - Request: The snapshot handed to the outbound call
//
// # Usage
//
//	w := widget.New(widget.Options{Greeting: greeting, Model: model})
//	unsubscribe := w.Subscribe(func(s widget.State) { redraw(s) })
//	defer unsubscribe()
//
//	w.SetQuestion("hello")
//	if _, err := w.Ask(ctx, client); err != nil {
//	    // ErrEmptyQuestion or ErrBusy: nothing was sent
//	}
//
// # Submission Cycle
//
// A submission moves the widget from idle to sending and back. Begin appends
// the user entry, sets Processing and returns the Request to send. Settle
// clears Processing and, on a successful answer, appends the bot entry and
// clears the question. Any other outcome leaves the transcript and the
// question as they were. At most one submission is in flight: Begin returns
// ErrBusy while Processing is set.
package widget
