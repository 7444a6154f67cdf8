// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
)

// Dialog copy.
const (
	KeyDialogTitle       = "Hugging Face API key"
	KeyDialogRequirement = "This tool requires your Hugging Face API key."
	KeyDialogStorage     = "It will not be stored, only temporarily on this page."
	KeyDialogPlaceholder = "Enter your HF API key..."
)

// APIKeySavedMsg is emitted when the dialog is confirmed.
type APIKeySavedMsg struct {
	Key string
}

// APIKeyCancelledMsg is emitted when the dialog is dismissed without saving.
type APIKeyCancelledMsg struct{}

// Focus targets, in tab order.
const (
	FocusKeyField = 0
	FocusCancel   = 1
	FocusSave     = 2
	focusCount    = 3
)

// =============================================================================
// API KEY DIALOG
// =============================================================================

const (
	keyDialogWidth      = 60
	keyDialogMinWidth   = 36
	keyDialogInputInset = 10
)

// KeyDialog is the modal for entering the API key. It edits a draft: the
// key only changes when the draft is saved.
type KeyDialog struct {
	input   textinput.Model
	focus   int
	visible bool

	width  int
	height int

	theme *styles.Theme
}

// NewKeyDialog creates a hidden key dialog.
func NewKeyDialog(theme *styles.Theme) *KeyDialog {
	ti := textinput.New()
	ti.Placeholder = KeyDialogPlaceholder
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.CharLimit = 256
	ti.Width = keyDialogWidth - keyDialogInputInset
	ti.PromptStyle = theme.InputPrompt
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextMuted).Italic(true)

	return &KeyDialog{
		input: ti,
		theme: theme,
	}
}

// Show opens the dialog with the draft seeded from current.
func (d *KeyDialog) Show(current string) tea.Cmd {
	d.visible = true
	d.focus = FocusKeyField
	d.input.SetValue(current)
	d.input.CursorEnd()
	return d.input.Focus()
}

// Hide closes the dialog and drops the draft.
func (d *KeyDialog) Hide() {
	d.visible = false
	d.input.Blur()
	d.input.Reset()
}

// IsVisible reports whether the dialog is open.
func (d *KeyDialog) IsVisible() bool {
	return d.visible
}

// Draft returns the uncommitted key.
func (d *KeyDialog) Draft() string {
	return d.input.Value()
}

// Focus returns the focused element.
func (d *KeyDialog) Focus() int {
	return d.focus
}

// SetSize sets the area the dialog is centered in and fits the key field
// to the resulting box.
func (d *KeyDialog) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.input.Width = d.boxWidth() - keyDialogInputInset
}

// boxWidth is the dialog width for the current area.
func (d *KeyDialog) boxWidth() int {
	w := keyDialogWidth
	if d.width > 0 && d.width < w+10 {
		w = d.width - 10
	}
	if w < keyDialogMinWidth {
		w = keyDialogMinWidth
	}
	return w
}

// =============================================================================
// BUBBLE TEA METHODS
// =============================================================================

// Update handles messages while visible. The bool reports whether the
// message was consumed.
func (d *KeyDialog) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !d.visible {
		return nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		// Cursor blink and friends.
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return cmd, false
	}

	switch keyMsg.String() {
	case "esc":
		return d.cancel(), true

	case "tab":
		return d.setFocus((d.focus + 1) % focusCount), true

	case "shift+tab":
		return d.setFocus((d.focus - 1 + focusCount) % focusCount), true

	case "enter":
		if d.focus == FocusCancel {
			return d.cancel(), true
		}
		return d.save(), true
	}

	if d.focus != FocusKeyField {
		switch keyMsg.String() {
		case "left", "h":
			return d.setFocus(FocusCancel), true
		case "right", "l":
			return d.setFocus(FocusSave), true
		case " ":
			if d.focus == FocusCancel {
				return d.cancel(), true
			}
			return d.save(), true
		}
		return nil, true
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd, true
}

func (d *KeyDialog) setFocus(focus int) tea.Cmd {
	d.focus = focus
	if focus == FocusKeyField {
		return d.input.Focus()
	}
	d.input.Blur()
	return nil
}

func (d *KeyDialog) save() tea.Cmd {
	key := d.input.Value()
	d.Hide()
	return func() tea.Msg {
		return APIKeySavedMsg{Key: key}
	}
}

func (d *KeyDialog) cancel() tea.Cmd {
	d.Hide()
	return func() tea.Msg {
		return APIKeyCancelledMsg{}
	}
}

// =============================================================================
// VIEW RENDERING
// =============================================================================

// View renders the dialog centered in its area.
func (d *KeyDialog) View() string {
	if !d.visible {
		return ""
	}

	boxWidth := d.boxWidth()

	var content strings.Builder
	content.WriteString(d.theme.OverlayTitle.Render(KeyDialogTitle))
	content.WriteString("\n")
	content.WriteString(d.theme.OverlayText.Render(KeyDialogRequirement))
	content.WriteString("\n")
	content.WriteString(d.theme.OverlayText.Render(KeyDialogStorage))
	content.WriteString("\n\n")
	content.WriteString(d.input.View())
	content.WriteString("\n\n")
	content.WriteString(d.renderButtons())
	content.WriteString("\n")
	content.WriteString(d.theme.StatusHint.Render("Tab=Navigate  Enter=Save  Esc=Cancel"))

	box := d.theme.Overlay.Width(boxWidth).Render(content.String())

	if d.width > 0 && d.height > 0 {
		return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderButtons renders the Cancel/Save row.
func (d *KeyDialog) renderButtons() string {
	cancel := d.theme.Button.Render("Cancel")
	if d.focus == FocusCancel {
		cancel = d.theme.ButtonFocused.Render("Cancel")
	}
	save := d.theme.Button.Render("Save")
	if d.focus == FocusSave {
		save = d.theme.ButtonFocused.Render("Save")
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, cancel, " ", save)
}
