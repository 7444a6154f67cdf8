// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/promptchat/internal/ui/styles"
)

func newTestPalette() *ModelPalette {
	return NewModelPalette([]string{"org/a", "org/b", "org/c"}, styles.NewTheme(styles.ModeDark))
}

func TestModelPalette_ShowHighlightsCurrent(t *testing.T) {
	mp := newTestPalette()
	assert.False(t, mp.IsVisible())

	mp.Show("org/b")
	assert.True(t, mp.IsVisible())
	assert.Equal(t, "org/b", mp.Selected())

	mp.Show("org/unknown")
	assert.Equal(t, "org/a", mp.Selected())
}

func TestModelPalette_Navigation(t *testing.T) {
	mp := newTestPalette()
	mp.Show("org/b")

	_, handled := mp.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.True(t, handled)
	assert.Equal(t, "org/c", mp.Selected())

	mp.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "org/a", mp.Selected(), "down should wrap")

	mp.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "org/c", mp.Selected(), "up should wrap")

	mp.Update(tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, "org/a", mp.Selected())
}

func TestModelPalette_EnterEmitsSelection(t *testing.T) {
	mp := newTestPalette()
	mp.Show("org/a")
	mp.Update(tea.KeyMsg{Type: tea.KeyDown})

	cmd, handled := mp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, handled)
	assert.False(t, mp.IsVisible())
	require.NotNil(t, cmd)
	assert.Equal(t, ModelSelectedMsg{Model: "org/b"}, cmd())
}

func TestModelPalette_EscCloses(t *testing.T) {
	mp := newTestPalette()
	mp.Show("org/c")

	cmd, handled := mp.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	assert.Nil(t, cmd)
	assert.False(t, mp.IsVisible())
}

func TestModelPalette_HiddenIgnoresKeys(t *testing.T) {
	mp := newTestPalette()
	cmd, handled := mp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.Empty(t, mp.View())
}

func TestModelPalette_View(t *testing.T) {
	mp := newTestPalette()
	mp.SetSize(100, 30)
	mp.Show("org/b")

	view := mp.View()
	assert.Contains(t, view, "Select model")
	assert.Contains(t, view, "> org/b")
	assert.Contains(t, view, "org/a")
	assert.Contains(t, view, "org/c")
}

func TestModelPalette_EmptyList(t *testing.T) {
	mp := NewModelPalette(nil, styles.NewTheme(styles.ModeDark))
	mp.Show("")

	mp.Update(tea.KeyMsg{Type: tea.KeyDown})
	cmd, handled := mp.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, handled)
	assert.Nil(t, cmd)
}
