// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, folders,
// and projects.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is the unit the sidebar lists. It is immutable from the
// sidebar engine's point of view; only the store mutates it.
type Conversation struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewConversation creates a conversation with a generated ID.
func NewConversation(title string) Conversation {
	return Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		UpdatedAt: time.Now(),
	}
}

// DisplayTitle returns the title, or a default for untitled conversations.
func (c Conversation) DisplayTitle() string {
	if t := strings.TrimSpace(c.Title); t != "" {
		return t
	}
	return "New Conversation"
}

// =============================================================================
// ID SET
// =============================================================================

// IDSet is a set of entity IDs. It is passed by snapshot: the sidebar engine
// never mutates a set it receives.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given IDs.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set. Safe on a nil set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s IDSet) Add(id string) {
	s[id] = struct{}{}
}

// Remove deletes id from the set.
func (s IDSet) Remove(id string) {
	delete(s, id)
}

// Toggle flips membership of id and reports the new state.
func (s IDSet) Toggle(id string) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

// Clone returns an independent copy of the set.
func (s IDSet) Clone() IDSet {
	out := make(IDSet, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}
