// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preview renders the selected conversation's last message as
// markdown in the preview pane.
//
// Rendering goes through Glamour and is cached per (conversation, width)
// so cursor movement does not re-render unchanged content.
package preview
