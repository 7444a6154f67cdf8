// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/util"
)

// Labels of the API key button.
const (
	KeyButtonMissing = "API Key"
	KeyButtonPresent = "Your HF Key"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the top bar: title, model selector trigger and API key button.
type Header struct {
	Title  string
	Model  string
	HasKey bool
	Width  int
	theme  *styles.Theme
}

// NewHeader creates a new Header component with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "promptchat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetModel updates the active model shown in the selector trigger.
func (h *Header) SetModel(model string) {
	h.Model = model
}

// SetHasKey switches the key button between its two labels.
func (h *Header) SetHasKey(hasKey bool) {
	h.HasKey = hasKey
}

// KeyLabel returns the plain text of the key button.
func (h *Header) KeyLabel() string {
	if h.HasKey {
		return styles.Markers.Key + " " + KeyButtonPresent
	}
	return styles.Markers.Alert + " " + KeyButtonMissing
}

// View renders the header. pulseOn selects the phase of the missing-key
// alert; it has no effect once a key is set.
func (h *Header) View(pulseOn bool) string {
	width := h.Width
	if width < 20 {
		width = 20
	}
	// Header style padding.
	inner := width - 2

	title := h.theme.HeaderTitle.Render(h.Title)

	var key string
	switch {
	case h.HasKey:
		key = h.theme.KeyButton.Render(h.KeyLabel())
	case pulseOn:
		key = h.theme.KeyButtonAlert.Render(h.KeyLabel())
	default:
		key = h.theme.KeyButtonDim.Render(h.KeyLabel())
	}
	key += h.theme.StatusHint.Render(" ^K")

	// Model trigger gets whatever is left between title and key button.
	modelRoom := inner - lipgloss.Width(title) - lipgloss.Width(key) - 4
	model := ""
	if modelRoom > 6 {
		label := util.TruncateWidth(util.SingleLine(h.Model), modelRoom-3)
		model = h.theme.HeaderModel.Render(label) + h.theme.StatusHint.Render(" ^O")
	}

	left := title
	if model != "" {
		left += "  " + model
	}

	gap := inner - lipgloss.Width(left) - lipgloss.Width(key)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + key

	return h.theme.Header.Width(width).MaxWidth(width).Render(line)
}
