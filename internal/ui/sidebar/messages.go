// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation sidebar component for the TUI.
//
// This file defines all Bubble Tea message types used by the sidebar.
// Messages are organized into the following categories:
//   - Paging: Page load completion from the incremental loader
//   - Selection: Conversation opened by the user
//   - Folders: External folder document reloads
//
// All message types follow Bubble Tea conventions and are immutable.
package sidebar

import (
	"github.com/quillchat/quill-tui/internal/model"
)

// =============================================================================
// PAGING MESSAGES
// =============================================================================

// pageLoadedMsg delivers the outcome of an asynchronous page load.
type pageLoadedMsg struct {
	convs   []model.Conversation
	hasMore bool
	err     error
}

// =============================================================================
// SELECTION MESSAGES
// =============================================================================

// SelectedMsg signals that the user opened a conversation. The parent model
// routes this to the preview pane.
type SelectedMsg struct {
	Conversation model.Conversation
}

// =============================================================================
// FOLDER MESSAGES
// =============================================================================

// FoldersReloadedMsg delivers a folder collection reloaded from disk after
// an external write. Sent into the program by the folder watcher.
type FoldersReloadedMsg struct {
	Folders []model.Folder
}

// StatusMsg displays a transient message in the sidebar status line.
type StatusMsg struct {
	Text    string
	IsError bool
}
