// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the promptchat TUI.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderModel    lipgloss.Style
	KeyButton      lipgloss.Style
	KeyButtonAlert lipgloss.Style
	KeyButtonDim   lipgloss.Style

	// ==========================================================================
	// TRANSCRIPT
	// ==========================================================================

	BotMarker   lipgloss.Style
	BotEntry    lipgloss.Style
	UserMarker  lipgloss.Style
	UserEntry   lipgloss.Style
	PendingOn   lipgloss.Style
	PendingOff  lipgloss.Style
	EmptyAnswer lipgloss.Style

	// ==========================================================================
	// INPUT FORM
	// ==========================================================================

	InputContainer     lipgloss.Style
	InputPrompt        lipgloss.Style
	InputDisabled      lipgloss.Style
	SendButton         lipgloss.Style
	SendButtonDisabled lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusHint   lipgloss.Style
	StatusFailed lipgloss.Style

	// ==========================================================================
	// OVERLAYS
	// ==========================================================================

	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	OverlayText      lipgloss.Style
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	Button           lipgloss.Style
	ButtonFocused    lipgloss.Style
}

// NewTheme creates a theme for the given mode ("auto", "dark" or "light").
// "dark" and "light" override the terminal's background detection.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case ModeDark:
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case ModeLight:
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderModel = lipgloss.NewStyle().
		Foreground(Cyan)

	t.KeyButton = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.KeyButtonAlert = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Blink(true)

	t.KeyButtonDim = lipgloss.NewStyle().
		Foreground(Rose).
		Faint(true)

	// Transcript
	t.BotMarker = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.BotEntry = lipgloss.NewStyle().
		Foreground(BotEntryFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(BotEntryEdge).
		PaddingLeft(1)

	t.UserMarker = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.UserEntry = lipgloss.NewStyle().
		Foreground(UserEntryFg).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(UserEntryEdge).
		PaddingLeft(1)

	t.PendingOn = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.PendingOff = lipgloss.NewStyle().
		Foreground(TextMuted).
		Faint(true)

	t.EmptyAnswer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	// Input form
	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.InputDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Faint(true)

	t.SendButton = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Cyan).
		Bold(true).
		Padding(0, 1)

	t.SendButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusFailed = lipgloss.NewStyle().
		Foreground(Amber).
		Faint(true)

	// Overlays
	t.Overlay = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.OverlayTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.OverlayText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		PaddingLeft(2)

	t.ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true).
		PaddingLeft(2)

	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.ButtonFocused = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 2)
}
