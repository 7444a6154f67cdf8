// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/promptchat/internal/ui/styles"
	"github.com/jeranaias/promptchat/internal/widget"
)

// EmptyAnswerText stands in for a bot entry whose message is empty.
const EmptyAnswerText = "(empty answer)"

// PendingText is the body of the pending bot entry.
const PendingText = "..."

// =============================================================================
// TRANSCRIPT ENTRY
// =============================================================================

// EntryView renders one transcript entry: a marker line followed by the
// message body, indented behind a colored edge.
type EntryView struct {
	Entry    widget.Interaction
	Width    int
	Markdown *MarkdownRenderer
	theme    *styles.Theme
}

// NewEntryView creates a view for a single interaction.
func NewEntryView(entry widget.Interaction, theme *styles.Theme) *EntryView {
	return &EntryView{
		Entry: entry,
		Width: 80,
		theme: theme,
	}
}

// View renders the entry.
func (e *EntryView) View() string {
	if e.Entry.IsBot {
		return e.renderBot()
	}
	return e.renderUser()
}

func (e *EntryView) bodyWidth() int {
	// Edge plus padding.
	w := e.Width - 2
	if w < 10 {
		w = 10
	}
	return w
}

func (e *EntryView) renderBot() string {
	marker := e.theme.BotMarker.Render(styles.Markers.Bot)

	var body string
	switch {
	case e.Entry.Message == "":
		body = e.theme.EmptyAnswer.Render(EmptyAnswerText)
	case e.Markdown.Enabled():
		body = e.Markdown.Render(e.Entry.Message, e.bodyWidth())
	default:
		body = wordWrap(e.Entry.Message, e.bodyWidth())
	}

	return lipgloss.JoinVertical(lipgloss.Left, marker, e.theme.BotEntry.Render(body))
}

func (e *EntryView) renderUser() string {
	marker := e.theme.UserMarker.Render(styles.Markers.User)
	body := wordWrap(e.Entry.Message, e.bodyWidth())
	return lipgloss.JoinVertical(lipgloss.Left, marker, e.theme.UserEntry.Render(body))
}

// RenderPending renders the placeholder bot entry shown while an answer is
// outstanding. pulseOn selects the phase of the "..." animation.
func RenderPending(theme *styles.Theme, spinnerView string, pulseOn bool) string {
	marker := theme.BotMarker.Render(styles.Markers.Bot)
	if spinnerView != "" {
		marker += " " + spinnerView
	}
	dots := theme.PendingOff.Render(PendingText)
	if pulseOn {
		dots = theme.PendingOn.Render(PendingText)
	}
	return lipgloss.JoinVertical(lipgloss.Left, marker, theme.BotEntry.Render(dots))
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// Transcript renders the full interaction list in order.
type Transcript struct {
	Entries  []widget.Interaction
	Width    int
	Markdown *MarkdownRenderer
	theme    *styles.Theme
}

// NewTranscript creates an empty transcript.
func NewTranscript(theme *styles.Theme, md *MarkdownRenderer) *Transcript {
	return &Transcript{
		Width:    80,
		Markdown: md,
		theme:    theme,
	}
}

// SetEntries replaces the rendered interactions.
func (t *Transcript) SetEntries(entries []widget.Interaction) {
	t.Entries = entries
}

// SetWidth sets the transcript width.
func (t *Transcript) SetWidth(width int) {
	t.Width = width
}

// View renders every entry, followed by the pending entry when pending is
// non-empty.
func (t *Transcript) View(pending string) string {
	parts := make([]string, 0, len(t.Entries)+1)
	for _, entry := range t.Entries {
		ev := NewEntryView(entry, t.theme)
		ev.Width = t.Width
		ev.Markdown = t.Markdown
		parts = append(parts, ev.View())
	}
	if pending != "" {
		parts = append(parts, pending)
	}
	return strings.Join(parts, "\n\n")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// wordWrap wraps text on spaces to fit within width cells. Words longer than
// width are left intact. Line breaks in the input are kept.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for lineIdx, line := range lines {
		if lineIdx > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if lipgloss.Width(currentLine)+1+lipgloss.Width(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}

		result.WriteString(currentLine)
	}

	return result.String()
}
