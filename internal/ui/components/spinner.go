// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is the busy indicator shown while a question is pending.
type Spinner struct {
	spinner   spinner.Model
	startTime time.Time
	isActive  bool
}

// NewSpinner creates a spinner with the ASCII line frames.
func NewSpinner() Spinner {
	return NewSpinnerFrom(styles.LineSpinner)
}

// NewSpinnerFrom creates a spinner from a frame configuration.
func NewSpinnerFrom(cfg styles.SpinnerConfig) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: cfg.Frames,
		FPS:    cfg.Duration(),
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.Purple)
	return Spinner{spinner: s}
}

// =============================================================================
// STATE MANAGEMENT
// =============================================================================

// Start activates the spinner and returns the first tick.
func (s *Spinner) Start() tea.Cmd {
	s.isActive = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner. Pending ticks are dropped by Update.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// GetElapsed returns the duration since the spinner started.
func (s *Spinner) GetElapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update advances the animation. Ticks arriving while stopped are dropped,
// which ends the tick chain.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the current frame, or nothing when stopped.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}
	return s.spinner.View()
}

// Elapsed renders the time since Start, e.g. "4s" or "1m 5s".
func (s Spinner) Elapsed() string {
	return formatElapsed(s.GetElapsed())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// formatElapsed formats a duration for display.
func formatElapsed(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 60 {
		return formatInt(seconds) + "s"
	}
	return formatInt(seconds/60) + "m " + formatInt(seconds%60) + "s"
}
