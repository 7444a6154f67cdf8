// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/util"
)

// ModelSelectedMsg is emitted when a model is picked from the palette.
type ModelSelectedMsg struct {
	Model string
}

// =============================================================================
// MODEL PALETTE
// =============================================================================

// ModelPalette is an overlay listing the configured models.
type ModelPalette struct {
	models   []string
	selected int

	width   int
	height  int
	visible bool

	theme    *styles.Theme
	maxItems int
}

// NewModelPalette creates a palette over models.
func NewModelPalette(models []string, theme *styles.Theme) *ModelPalette {
	return &ModelPalette{
		models:   append([]string(nil), models...),
		theme:    theme,
		maxItems: 10,
	}
}

// Show opens the palette with current highlighted.
func (mp *ModelPalette) Show(current string) {
	mp.visible = true
	mp.selected = 0
	for i, m := range mp.models {
		if m == current {
			mp.selected = i
			break
		}
	}
}

// Hide closes the palette.
func (mp *ModelPalette) Hide() {
	mp.visible = false
}

// IsVisible reports whether the palette is open.
func (mp *ModelPalette) IsVisible() bool {
	return mp.visible
}

// Selected returns the highlighted model id, or "" for an empty list.
func (mp *ModelPalette) Selected() string {
	if mp.selected < 0 || mp.selected >= len(mp.models) {
		return ""
	}
	return mp.models[mp.selected]
}

// SetSize sets the area the palette is centered in.
func (mp *ModelPalette) SetSize(width, height int) {
	mp.width = width
	mp.height = height
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update handles keys while visible. The bool reports whether the message
// was consumed.
func (mp *ModelPalette) Update(msg tea.Msg) (tea.Cmd, bool) {
	if !mp.visible {
		return nil, false
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, false
	}

	n := len(mp.models)
	switch keyMsg.String() {
	case "esc":
		mp.Hide()
		return nil, true

	case "enter":
		model := mp.Selected()
		mp.Hide()
		if model == "" {
			return nil, true
		}
		return func() tea.Msg {
			return ModelSelectedMsg{Model: model}
		}, true

	case "up", "k", "shift+tab", "ctrl+p":
		if n > 0 {
			mp.selected = (mp.selected - 1 + n) % n
		}
		return nil, true

	case "down", "j", "tab", "ctrl+n":
		if n > 0 {
			mp.selected = (mp.selected + 1) % n
		}
		return nil, true

	case "home":
		mp.selected = 0
		return nil, true

	case "end":
		if n > 0 {
			mp.selected = n - 1
		}
		return nil, true
	}

	// Modal: swallow everything else.
	return nil, true
}

// View renders the palette centered in its area.
func (mp *ModelPalette) View() string {
	if !mp.visible {
		return ""
	}

	boxWidth := 60
	if mp.width > 0 && mp.width < boxWidth+10 {
		boxWidth = mp.width - 10
	}
	if boxWidth < 30 {
		boxWidth = 30
	}
	itemWidth := boxWidth - 6

	header := mp.theme.OverlayTitle.Render("Select model")

	// Window of maxItems rows that keeps the selection visible.
	start := 0
	if mp.selected >= mp.maxItems {
		start = mp.selected - mp.maxItems + 1
	}
	end := clamp(start+mp.maxItems, 0, len(mp.models))

	var items []string
	for i := start; i < end; i++ {
		items = append(items, mp.renderItem(mp.models[i], i == mp.selected, itemWidth))
	}
	if remaining := len(mp.models) - end; remaining > 0 {
		items = append(items, mp.theme.StatusHint.Render("  ... "+formatInt(remaining)+" more"))
	}
	list := strings.Join(items, "\n")
	if len(mp.models) == 0 {
		list = mp.theme.EmptyAnswer.Render("No models configured")
	}

	help := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		PaddingTop(1).
		Render("Up/Down navigate | Enter select | Esc close")

	box := mp.theme.Overlay.
		Width(boxWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, list, help))

	if mp.width > 0 && mp.height > 0 {
		return lipgloss.Place(mp.width, mp.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// renderItem renders a single model row.
func (mp *ModelPalette) renderItem(model string, selected bool, width int) string {
	indicator := "  "
	if selected {
		indicator = "> "
	}
	label := indicator + util.TruncateWidth(util.SingleLine(model), width-4)
	if selected {
		return mp.theme.ListItemSelected.Width(width).Render(label)
	}
	return mp.theme.ListItem.Render(label)
}
