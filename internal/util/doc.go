// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the terminal renderers and
// the config writer.
//
// # Key Functions
//
// Text Layout:
//   - StringWidth: Terminal column width of a string
//   - TruncateWidth: Column-aware truncation with an ellipsis
//   - SingleLine: Collapse whitespace for one-row labels
//
// File Operations:
//   - WriteFileAtomic: Crash-safe streaming write with fsync and rename
//
// # Usage
//
//	label := util.TruncateWidth(modelID, 30)
//	err := util.WriteFileAtomic(path, 0644, func(w io.Writer) error {
//		return toml.NewEncoder(w).Encode(cfg)
//	})
package util
