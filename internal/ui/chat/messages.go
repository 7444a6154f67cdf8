// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea messages owned by the chat model. Overlay
// results (ModelSelectedMsg, APIKeySavedMsg, APIKeyCancelledMsg) live in the
// components package next to the overlays that emit them.
package chat

import (
	"github.com/jeranaias/promptchat/internal/api"
)

// =============================================================================
// REQUEST MESSAGES
// =============================================================================

// AnswerMsg carries the result of a question back into the update loop.
// A nil Answer means the request failed.
type AnswerMsg struct {
	Answer *api.Answer
}
