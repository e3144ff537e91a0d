// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
package sidebar

import "github.com/quillchat/quill-tui/internal/model"

// Section identifiers. There are exactly two fixed sections.
const (
	SectionPinned = "pinned"
	SectionRecent = "recent"
)

// =============================================================================
// COMPOSER INPUTS
// =============================================================================

// Inputs is the immutable snapshot Compose derives the row sequence from.
// Callers pass fresh copies on every recompute; Compose never mutates them.
type Inputs struct {
	// Conversations in display order (newest first, as delivered by the
	// store). Order is preserved within each section.
	Conversations []model.Conversation

	// Folders in folder-collection order.
	Folders []model.Folder

	// Pinned conversation IDs. Pin wins placement over folder membership.
	Pinned model.IDSet

	// Archived conversation IDs. Archived conversations never appear;
	// archive dominates pin.
	Archived model.IDSet

	// Expanded folder IDs. Pure render state, not domain truth.
	Expanded model.IDSet

	// Project, when non-nil, restricts the sequence to its members and
	// suppresses the folder section entirely.
	Project *model.Project
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Compose merges the input collections into a single flat ordered sequence
// of typed rows. Section and folder headers are ordinary rows so the Window
// can give each its own height.
//
// Guarantees:
//   - a conversation ID appears at most once in the output
//   - pinned placement wins over folder membership
//   - archived conversations never appear
//   - empty sections contribute no header and no rows
//
// Malformed input is tolerated, never rejected: a folder member ID with no
// matching conversation is skipped, and an ID claimed by more than one
// folder is emitted only under the first folder that lists it
// (first-writer-wins).
func Compose(in Inputs) []Item {
	convs := in.Conversations
	if in.Project != nil {
		convs = filterToProject(convs, in.Project)
	}

	byID := make(map[string]model.Conversation, len(convs))
	for _, c := range convs {
		byID[c.ID] = c
	}

	// IDs already emitted somewhere in the sequence.
	emitted := make(map[string]struct{}, len(convs))

	items := make([]Item, 0, len(convs)+len(in.Folders)+2)

	// Pinned section. Input order is preserved; archive dominates pin.
	var pinned []model.Conversation
	for _, c := range convs {
		if in.Pinned.Has(c.ID) && !in.Archived.Has(c.ID) {
			pinned = append(pinned, c)
		}
	}
	if len(pinned) > 0 {
		items = append(items, Section{ID: SectionPinned, Title: "Pinned"})
		for _, c := range pinned {
			items = append(items, ConversationRow{Conversation: c})
			emitted[c.ID] = struct{}{}
		}
	}

	// Union of all folder memberships, computed before the folder section so
	// Recent excludes filed conversations even when the section is
	// suppressed by an active project.
	inFolder := make(map[string]struct{})
	for _, f := range in.Folders {
		for _, id := range f.ConversationIDs {
			inFolder[id] = struct{}{}
		}
	}

	// Folder section. Suppressed entirely under a project filter. A folder
	// with zero visible members still shows its header with count 0.
	if in.Project == nil {
		for _, f := range in.Folders {
			count := 0
			var members []model.Conversation
			for _, id := range f.ConversationIDs {
				c, ok := byID[id]
				if !ok || in.Archived.Has(id) {
					continue
				}
				count++
				if _, dup := emitted[id]; dup {
					// Pinned here, or claimed by an earlier folder.
					continue
				}
				members = append(members, c)
			}

			items = append(items, FolderHeader{
				ID:       f.ID,
				Name:     f.Name,
				Color:    f.Color,
				Count:    count,
				Expanded: in.Expanded.Has(f.ID),
			})

			if !in.Expanded.Has(f.ID) {
				continue
			}
			for _, c := range members {
				items = append(items, ConversationRow{Conversation: c, InFolder: true})
				emitted[c.ID] = struct{}{}
			}
		}
	}

	// Recent section: everything unpinned, unfiled, and unarchived. The
	// header is emitted only when preceding sections produced rows.
	var recent []model.Conversation
	for _, c := range convs {
		if in.Pinned.Has(c.ID) || in.Archived.Has(c.ID) {
			continue
		}
		if _, filed := inFolder[c.ID]; filed {
			continue
		}
		if _, dup := emitted[c.ID]; dup {
			continue
		}
		recent = append(recent, c)
	}
	if len(recent) > 0 {
		if len(items) > 0 {
			items = append(items, Section{ID: SectionRecent, Title: "Recent"})
		}
		for _, c := range recent {
			items = append(items, ConversationRow{Conversation: c})
		}
	}

	return items
}

// filterToProject restricts conversations to the project's members,
// preserving the input collection's order.
func filterToProject(convs []model.Conversation, p *model.Project) []model.Conversation {
	members := p.Members()
	out := make([]model.Conversation, 0, len(convs))
	for _, c := range convs {
		if members.Has(c.ID) {
			out = append(out, c)
		}
	}
	return out
}
