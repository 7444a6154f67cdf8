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

func typeRunes(d *KeyDialog, s string) {
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestKeyDialog_SaveCommitsDraft(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	d.Show("")
	require.True(t, d.IsVisible())

	typeRunes(d, "hf_abc")
	assert.Equal(t, "hf_abc", d.Draft())

	cmd, handled := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, APIKeySavedMsg{Key: "hf_abc"}, cmd())
	assert.False(t, d.IsVisible())
}

func TestKeyDialog_EscDiscardsDraft(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	d.Show("old")
	typeRunes(d, "-edited")

	cmd, handled := d.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, APIKeyCancelledMsg{}, cmd())
	assert.False(t, d.IsVisible())

	// Reopening starts from the committed key, not the discarded draft.
	d.Show("old")
	assert.Equal(t, "old", d.Draft())
}

func TestKeyDialog_TabOrder(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	d.Show("")
	assert.Equal(t, FocusKeyField, d.Focus())

	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusCancel, d.Focus())
	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusSave, d.Focus())
	d.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, FocusKeyField, d.Focus())
	d.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, FocusSave, d.Focus())
}

func TestKeyDialog_Buttons(t *testing.T) {
	tests := []struct {
		name string
		tabs int
		want tea.Msg
	}{
		{"cancel button", 1, APIKeyCancelledMsg{}},
		{"save button", 2, APIKeySavedMsg{Key: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
			d.Show("")
			typeRunes(d, "k")
			for i := 0; i < tt.tabs; i++ {
				d.Update(tea.KeyMsg{Type: tea.KeyTab})
			}
			cmd, _ := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestKeyDialog_TypingOnButtonsIsIgnored(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	d.Show("abc")
	d.Update(tea.KeyMsg{Type: tea.KeyTab})

	_, handled := d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.True(t, handled)
	assert.Equal(t, "abc", d.Draft())
}

func TestKeyDialog_ViewMasksKey(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	d.SetSize(100, 30)
	d.Show("hf_secret")

	view := d.View()
	assert.Contains(t, view, KeyDialogRequirement)
	assert.Contains(t, view, KeyDialogStorage)
	assert.Contains(t, view, "Cancel")
	assert.Contains(t, view, "Save")
	assert.NotContains(t, view, "hf_secret")
}

func TestKeyDialog_SetSizeFitsField(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{0, 50},
		{100, 50},
		{56, 36},
		{30, 26},
	}

	for _, tt := range tests {
		d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
		d.SetSize(tt.width, 24)
		d.Show("k")
		if d.input.Width != tt.want {
			t.Errorf("SetSize(%d): field width = %d, want %d", tt.width, d.input.Width, tt.want)
		}
		_ = d.View()
		if d.input.Width != tt.want {
			t.Errorf("View() changed field width to %d at width %d", d.input.Width, tt.width)
		}
	}
}

func TestKeyDialog_HiddenIgnoresKeys(t *testing.T) {
	d := NewKeyDialog(styles.NewTheme(styles.ModeDark))
	cmd, handled := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, handled)
	assert.Nil(t, cmd)
	assert.Empty(t, d.View())
}
