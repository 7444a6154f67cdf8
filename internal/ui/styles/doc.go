// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the promptchat TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The "dark" and "light" theme modes force one side.

# Color System (colors.go)

  - Purple - Bot entries and overlay borders
  - Cyan - User entries, focus and the Send button
  - Emerald - API key present
  - Rose - API key missing
  - Amber - The "no answer" hint

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	header := theme.Header.Render(theme.HeaderTitle.Render("promptchat"))

# Animation System (animations.go)

	LineSpinner   - Replaces the Send button while a question is pending
	DotsSpinner   - The pending bot entry
	PulseInterval - Half-period of the missing-key and pending pulses
*/
package styles
