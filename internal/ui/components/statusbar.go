// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// Status is the request state shown in the status bar.
type Status int

const (
	StatusReady Status = iota
	StatusWaiting
	StatusNoAnswer
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusWaiting:
		return "Waiting for answer"
	case StatusNoAnswer:
		return "No answer, check key and model"
	default:
		return "Unknown"
	}
}

// StatusBar is the bottom line: request state on the left, key hints on
// the right.
type StatusBar struct {
	Status  Status
	Elapsed string
	Hints   string
	Width   int
	theme   *styles.Theme
}

// NewStatusBar creates a status bar in the ready state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status: StatusReady,
		Width:  80,
		theme:  theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the request state. elapsed is shown while waiting.
func (s *StatusBar) SetStatus(status Status, elapsed string) {
	s.Status = status
	s.Elapsed = elapsed
}

// SetHints sets the right-hand key hints.
func (s *StatusBar) SetHints(hints string) {
	s.Hints = hints
}

// View renders the status bar. Hints are dropped first when space is short.
func (s *StatusBar) View() string {
	width := s.Width
	if width < 10 {
		width = 10
	}
	inner := width - 2

	label := s.Status.String()
	if s.Status == StatusWaiting && s.Elapsed != "" {
		label += " " + s.Elapsed
	}

	var left string
	switch s.Status {
	case StatusNoAnswer:
		left = s.theme.StatusFailed.Render(styles.Markers.Alert + " " + label)
	default:
		left = label
	}

	line := left
	if s.Hints != "" {
		hints := s.theme.StatusHint.Render(s.Hints)
		gap := inner - lipgloss.Width(left) - lipgloss.Width(hints)
		if gap >= 2 {
			line = left + strings.Repeat(" ", gap) + hints
		}
	}

	return s.theme.StatusBar.Width(width).MaxWidth(width).Render(line)
}
