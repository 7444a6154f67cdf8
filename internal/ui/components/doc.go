// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the UI components of the promptchat TUI.

Components are built on Bubble Tea and Lip Gloss and take their styles from
a *styles.Theme. None of them touch the chat state directly: they render
what they are given and report user decisions as tea messages.

# Display Components

Header (header.go) - Title, model selector trigger and API key button.
Transcript and EntryView (message.go) - The interaction list, with bot
answers optionally rendered as markdown.
StatusBar (statusbar.go) - Request state and key hints.

# Overlays

ModelPalette (palette.go) - Model list; emits ModelSelectedMsg.
KeyDialog (key_dialog.go) - API key entry; emits APIKeySavedMsg or
APIKeyCancelledMsg.

# Animation

Spinner (spinner.go) - Busy indicator shown in place of the send button.
Pulse (pulse.go) - On/off phase driving the missing-key alert and the
pending entry.

# Usage

	theme := styles.NewTheme(styles.ModeAuto)
	dialog := components.NewKeyDialog(theme)
	cmd := dialog.Show(currentKey)

	// in Update
	if cmd, handled := dialog.Update(msg); handled {
	    return m, cmd
	}
*/
package components
