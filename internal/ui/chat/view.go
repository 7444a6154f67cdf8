// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file contains the rendering logic for the chat interface.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/util"
)

// sendButtonWidth is the rendered width of the Send button and of the
// spinner slot that replaces it.
const sendButtonWidth = 6

// SendLabel is the label of the submit button.
const SendLabel = "Send"

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view.
// Layout: header (1 line) + transcript (viewport) + input (2 lines) + status (1 line).
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	switch {
	case m.keyDialog.IsVisible():
		return m.keyDialog.View()
	case m.palette.IsVisible():
		return m.palette.View()
	case m.showHelp:
		return m.renderHelpOverlay()
	}

	header := m.header.View(m.pulse.On())
	input := m.renderInput()
	status := m.statusBar.View()

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.viewport.View(),
		input,
		status,
	)
}

// renderInput renders the question field and the Send button. While a
// question is outstanding the field is dimmed and the spinner takes the
// button's place.
func (m Model) renderInput() string {
	var field, button string

	if m.state.Processing {
		value := util.TruncateWidth(util.SingleLine(m.input.Value()), m.input.Width)
		field = m.theme.InputDisabled.Render(m.input.Prompt + value)
		button = lipgloss.PlaceHorizontal(sendButtonWidth, lipgloss.Center, m.spinner.View())
	} else {
		field = m.input.View()
		if m.input.Value() == "" {
			button = m.theme.SendButtonDisabled.Render(SendLabel)
		} else {
			button = m.theme.SendButton.Render(SendLabel)
		}
	}

	width := m.width
	inner := width - 2
	gap := inner - lipgloss.Width(field) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	line := field + strings.Repeat(" ", gap) + button

	return m.theme.InputContainer.Width(width).MaxWidth(width).Render(line)
}

// renderHelpOverlay renders the key bindings centered on screen.
func (m Model) renderHelpOverlay() string {
	title := m.theme.OverlayTitle.Render("Keys")
	body := m.help.FullHelpView(m.keyMap.FullHelp())
	hint := m.theme.StatusHint.Render("esc or ? to close")

	box := m.theme.Overlay.Render(lipgloss.JoinVertical(lipgloss.Left, title, body, "", hint))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
