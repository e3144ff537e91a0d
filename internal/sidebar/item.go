// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
package sidebar

import "github.com/quillchat/quill-tui/internal/model"

// =============================================================================
// COMPOSED LIST ITEMS
// =============================================================================

// Item is one row of the composed sequence. It is a closed tagged variant:
// renderers switch exhaustively on the concrete type.
//
// Every Item yields a globally unique, stable Key independent of its
// position. The Key is the sole identity used by the Window's height cache
// and by row-level UI state, so reordering (pin/unpin, folder
// expand/collapse) never resets unrelated rows.
type Item interface {
	// Key returns the item's stable identity key.
	Key() string

	sealed()
}

// Section is a fixed section-header row ("Pinned", "Recent").
type Section struct {
	ID    string // "pinned" or "recent"
	Title string
}

// Key returns "section-" plus the section ID.
func (s Section) Key() string { return "section-" + s.ID }

func (Section) sealed() {}

// FolderHeader is a folder's header row. Count is the number of the folder's
// conversations visible under the current filter, excluding archived ones.
type FolderHeader struct {
	ID       string
	Name     string
	Color    string
	Count    int
	Expanded bool
}

// Key returns the folder's own ID.
func (f FolderHeader) Key() string { return f.ID }

func (FolderHeader) sealed() {}

// ConversationRow is a single conversation. InFolder marks rows emitted
// beneath an expanded folder header (rendered indented).
type ConversationRow struct {
	Conversation model.Conversation
	InFolder     bool
}

// Key returns the conversation's own ID. A given conversation appears at
// most once per composition, so the ID is unique within a sequence.
func (r ConversationRow) Key() string { return r.Conversation.ID }

func (ConversationRow) sealed() {}

// ItemKey is the key function handed to a Window over composed items.
func ItemKey(it Item) string { return it.Key() }
