// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// MarkdownRenderer renders bot answers as terminal markdown. A disabled
// renderer, or one whose glamour setup fails, returns its input unchanged.
type MarkdownRenderer struct {
	enabled bool
	style   string

	mu       sync.Mutex
	width    int
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer. style is "dark", "light" or
// anything else for glamour's auto detection.
func NewMarkdownRenderer(enabled bool, style string) *MarkdownRenderer {
	return &MarkdownRenderer{enabled: enabled, style: style}
}

// Enabled reports whether markdown rendering is on.
func (r *MarkdownRenderer) Enabled() bool {
	return r != nil && r.enabled
}

// Render renders content wrapped to width columns.
func (r *MarkdownRenderer) Render(content string, width int) string {
	if !r.Enabled() || strings.TrimSpace(content) == "" {
		return content
	}
	if width < 20 {
		width = 20
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.renderer == nil || r.width != width {
		tr, err := glamour.NewTermRenderer(r.styleOption(), glamour.WithWordWrap(width))
		if err != nil {
			// Fallback to plain text if renderer initialization fails
			return content
		}
		r.renderer = tr
		r.width = width
	}

	rendered, err := r.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

func (r *MarkdownRenderer) styleOption() glamour.TermRendererOption {
	switch r.style {
	case "dark", "light":
		return glamour.WithStandardStyle(r.style)
	default:
		return glamour.WithAutoStyle()
	}
}
