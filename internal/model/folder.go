// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, folders,
// and projects.
package model

import "github.com/google/uuid"

// =============================================================================
// FOLDER TYPE
// =============================================================================

// Folder groups conversations under a user-defined name. ConversationIDs is
// an ordered set: membership order is display order, and a given ID appears
// at most once. Cross-folder disjointness is enforced by the store's move
// operation, not by this type.
type Folder struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Color           string   `json:"color,omitempty"`
	ConversationIDs []string `json:"conversation_ids"`
}

// NewFolder creates an empty folder with a generated ID.
func NewFolder(name, color string) Folder {
	return Folder{
		ID:    uuid.NewString(),
		Name:  name,
		Color: color,
	}
}

// Contains reports whether the folder holds the given conversation ID.
func (f *Folder) Contains(id string) bool {
	for _, member := range f.ConversationIDs {
		if member == id {
			return true
		}
	}
	return false
}

// Add appends id to the folder, preserving the ordered-set invariant.
// Adding an existing member is a no-op.
func (f *Folder) Add(id string) {
	if f.Contains(id) {
		return
	}
	f.ConversationIDs = append(f.ConversationIDs, id)
}

// Remove deletes id from the folder. Returns true if the ID was a member.
func (f *Folder) Remove(id string) bool {
	for i, member := range f.ConversationIDs {
		if member == id {
			f.ConversationIDs = append(f.ConversationIDs[:i], f.ConversationIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the folder.
func (f Folder) Clone() Folder {
	out := f
	out.ConversationIDs = append([]string(nil), f.ConversationIDs...)
	return out
}

// =============================================================================
// PROJECT TYPE
// =============================================================================

// Project is a named grouping used to filter the sidebar. Unlike folders,
// project membership does not affect placement; an active project restricts
// the composed list to its members and suppresses the folder section.
type Project struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ConversationIDs []string `json:"conversation_ids"`
}

// Members returns the project's conversation IDs as a set.
func (p *Project) Members() IDSet {
	return NewIDSet(p.ConversationIDs...)
}
