// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation sidebar component for the TUI.
//
// The component owns cursor movement, folder expansion, mutation intents
// (pin, archive, rename, delete, move to folder), and incremental page
// loading. List composition and windowed rendering are delegated to the
// core engine in internal/sidebar.
//
// # Key Types
//
//   - Model: Bubble Tea model for the sidebar pane
//   - KeyMap: Keyboard bindings
//   - SelectedMsg: Emitted when the user opens a conversation
//
// # Usage
//
// Create the component and wire it into a parent model:
//
//	sb := sidebar.New(st, db, cfg.Sidebar, theme)
//	cmd := sb.Init()
package sidebar
