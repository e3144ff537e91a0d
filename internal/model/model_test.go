// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, folders,
// and projects.
package model

import "testing"

// =============================================================================
// ID SET TESTS
// =============================================================================

func TestIDSet_Basics(t *testing.T) {
	s := NewIDSet("a", "b")

	if !s.Has("a") || !s.Has("b") {
		t.Error("NewIDSet should contain seed IDs")
	}
	if s.Has("c") {
		t.Error("IDSet should not contain unseen ID")
	}

	s.Add("c")
	if !s.Has("c") {
		t.Error("Add should insert ID")
	}

	s.Remove("a")
	if s.Has("a") {
		t.Error("Remove should delete ID")
	}
}

func TestIDSet_Toggle(t *testing.T) {
	s := NewIDSet()

	if got := s.Toggle("x"); !got {
		t.Error("Toggle on absent ID should return true")
	}
	if got := s.Toggle("x"); got {
		t.Error("Toggle on present ID should return false")
	}
	if s.Has("x") {
		t.Error("ID should be absent after double toggle")
	}
}

func TestIDSet_NilSafety(t *testing.T) {
	var s IDSet
	if s.Has("a") {
		t.Error("nil IDSet should report no members")
	}
}

func TestIDSet_Clone(t *testing.T) {
	s := NewIDSet("a")
	c := s.Clone()
	c.Add("b")

	if s.Has("b") {
		t.Error("mutating clone should not affect original")
	}
}

// =============================================================================
// FOLDER TESTS
// =============================================================================

func TestFolder_OrderedSet(t *testing.T) {
	f := NewFolder("Work", "#FF0000")

	f.Add("c1")
	f.Add("c2")
	f.Add("c1") // duplicate add is a no-op

	if len(f.ConversationIDs) != 2 {
		t.Fatalf("folder should hold 2 members, got %d", len(f.ConversationIDs))
	}
	if f.ConversationIDs[0] != "c1" || f.ConversationIDs[1] != "c2" {
		t.Errorf("folder should preserve insertion order, got %v", f.ConversationIDs)
	}
}

func TestFolder_Remove(t *testing.T) {
	f := NewFolder("Work", "")
	f.Add("c1")
	f.Add("c2")
	f.Add("c3")

	if !f.Remove("c2") {
		t.Error("Remove should report true for a member")
	}
	if f.Remove("c2") {
		t.Error("Remove should report false for a non-member")
	}
	if len(f.ConversationIDs) != 2 || f.ConversationIDs[1] != "c3" {
		t.Errorf("remaining members should keep order, got %v", f.ConversationIDs)
	}
}

func TestFolder_Clone(t *testing.T) {
	f := NewFolder("Work", "")
	f.Add("c1")

	c := f.Clone()
	c.Add("c2")

	if f.Contains("c2") {
		t.Error("mutating clone should not affect original")
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestNewConversation(t *testing.T) {
	c := NewConversation("hello")

	if c.ID == "" {
		t.Error("NewConversation should generate an ID")
	}
	if c.UpdatedAt.IsZero() {
		t.Error("NewConversation should set UpdatedAt")
	}
	if c.DisplayTitle() != "hello" {
		t.Errorf("DisplayTitle = %q, want %q", c.DisplayTitle(), "hello")
	}
}

func TestConversation_DisplayTitleDefault(t *testing.T) {
	c := Conversation{ID: "c1", Title: "   "}
	if c.DisplayTitle() != "New Conversation" {
		t.Errorf("blank title should fall back, got %q", c.DisplayTitle())
	}
}

func TestProject_Members(t *testing.T) {
	p := Project{ID: "p1", ConversationIDs: []string{"a", "b"}}
	m := p.Members()
	if !m.Has("a") || !m.Has("b") || m.Has("c") {
		t.Error("Members should reflect exactly the project's IDs")
	}
}
