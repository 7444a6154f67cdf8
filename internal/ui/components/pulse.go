// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/promptchat/internal/ui/styles"
)

// =============================================================================
// PULSE
// =============================================================================

var lastPulseID int64

// PulseMsg flips a Pulse. Messages for other pulses are ignored.
type PulseMsg struct {
	id int
}

// Pulse alternates between on and off at styles.PulseInterval. It drives
// the missing-key alert and the pending bot entry.
type Pulse struct {
	id       int
	on       bool
	interval time.Duration
}

// NewPulse creates a pulse that starts in the on phase.
func NewPulse() Pulse {
	return Pulse{
		id:       int(atomic.AddInt64(&lastPulseID, 1)),
		on:       true,
		interval: styles.PulseInterval,
	}
}

// On reports the current phase.
func (p Pulse) On() bool {
	return p.on
}

// Tick schedules the next flip.
func (p Pulse) Tick() tea.Cmd {
	id := p.id
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return PulseMsg{id: id}
	})
}

// Update flips the phase on its own PulseMsg and schedules the next one.
func (p Pulse) Update(msg tea.Msg) (Pulse, tea.Cmd) {
	m, ok := msg.(PulseMsg)
	if !ok || m.id != p.id {
		return p, nil
	}
	p.on = !p.on
	return p, p.Tick()
}
