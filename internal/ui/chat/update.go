// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/promptchat/internal/api"
	"github.com/jeranaias/promptchat/internal/widget"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// askCmd sends req on a Bubble Tea goroutine and reports the result as an
// AnswerMsg. The widget is not touched here; the update loop settles it.
func askCmd(ctx context.Context, asker api.Asker, req widget.Request) tea.Cmd {
	return func() tea.Msg {
		if asker == nil {
			return AnswerMsg{}
		}
		return AnswerMsg{Answer: asker.Ask(ctx, req.APIKey, req.Model, req.UserInput)}
	}
}
