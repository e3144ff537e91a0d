// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar.
package store

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/text/language"

	"github.com/quillchat/quill-tui/internal/model"
)

func seedStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	s := New()
	convs := make([]model.Conversation, len(ids))
	for i, id := range ids {
		convs[i] = model.Conversation{ID: id, Title: "title " + id}
	}
	s.AppendConversations(convs)
	return s
}

// =============================================================================
// CONVERSATION COLLECTION TESTS
// =============================================================================

func TestStore_AppendDeduplicates(t *testing.T) {
	s := seedStore(t, "a", "b")

	added := s.AppendConversations([]model.Conversation{
		{ID: "b"}, {ID: "c"},
	})
	if added != 1 {
		t.Errorf("added = %d, want 1", added)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}

	snap := s.Snapshot()
	if snap.Conversations[2].ID != "c" {
		t.Errorf("appended page should preserve delivery order, got %v", snap.Conversations)
	}
}

func TestStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, "a", "b")

	f, err := s.CreateFolder("Work", "")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	if err := s.MoveToFolder("a", f.ID); err != nil {
		t.Fatalf("MoveToFolder: %v", err)
	}
	if err := s.SetPinned(ctx, "a", true); err != nil {
		t.Fatalf("SetPinned: %v", err)
	}

	if err := s.DeleteConversation(ctx, "a"); err != nil {
		t.Fatalf("DeleteConversation: %v", err)
	}

	snap := s.Snapshot()
	if len(snap.Conversations) != 1 || snap.Conversations[0].ID != "b" {
		t.Errorf("conversation should be gone, got %v", snap.Conversations)
	}
	if snap.Pinned.Has("a") {
		t.Error("pin flag should be cleared on delete")
	}
	if snap.Folders[0].Contains("a") {
		t.Error("folder membership should be cleared on delete")
	}

	if err := s.DeleteConversation(ctx, "a"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}

func TestStore_RenameUnknown(t *testing.T) {
	s := New()
	err := s.RenameConversation(context.Background(), "ghost", "x")
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}

// =============================================================================
// FOLDER DISJOINTNESS TESTS
// =============================================================================

func TestStore_MoveToFolderDisjointness(t *testing.T) {
	s := seedStore(t, "a")

	f1, _ := s.CreateFolder("Work", "")
	f2, _ := s.CreateFolder("Play", "")

	if err := s.MoveToFolder("a", f1.ID); err != nil {
		t.Fatalf("move to f1: %v", err)
	}
	if err := s.MoveToFolder("a", f2.ID); err != nil {
		t.Fatalf("move to f2: %v", err)
	}

	snap := s.Snapshot()
	if snap.Folders[0].Contains("a") {
		t.Error("moving into f2 should remove membership in f1")
	}
	if !snap.Folders[1].Contains("a") {
		t.Error("conversation should be a member of f2")
	}

	// Unfile entirely.
	if err := s.MoveToFolder("a", ""); err != nil {
		t.Fatalf("unfile: %v", err)
	}
	for _, f := range s.Folders() {
		if f.Contains("a") {
			t.Errorf("folder %s should not contain unfiled conversation", f.Name)
		}
	}
}

func TestStore_MoveToFolderErrors(t *testing.T) {
	s := seedStore(t, "a")

	if err := s.MoveToFolder("ghost", ""); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
	if err := s.MoveToFolder("a", "nope"); !errors.Is(err, ErrFolderNotFound) {
		t.Errorf("err = %v, want ErrFolderNotFound", err)
	}
}

func TestStore_MoveIsIdempotent(t *testing.T) {
	s := seedStore(t, "a")
	f, _ := s.CreateFolder("Work", "")

	s.MoveToFolder("a", f.ID)
	s.MoveToFolder("a", f.ID)

	if got := len(s.Folders()[0].ConversationIDs); got != 1 {
		t.Errorf("repeated move should not duplicate membership, got %d", got)
	}
}

// =============================================================================
// SNAPSHOT ISOLATION TESTS
// =============================================================================

func TestStore_SnapshotIsolation(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, "a", "b")
	f, _ := s.CreateFolder("Work", "")
	s.MoveToFolder("a", f.ID)
	s.SetPinned(ctx, "b", true)

	snap := s.Snapshot()

	// Mutate the snapshot aggressively.
	snap.Conversations[0].Title = "hacked"
	snap.Folders[0].Add("b")
	snap.Pinned.Add("a")
	snap.Archived.Add("a")

	fresh := s.Snapshot()
	if fresh.Conversations[0].Title != "title a" {
		t.Error("snapshot mutation leaked into store conversations")
	}
	if fresh.Folders[0].Contains("b") {
		t.Error("snapshot mutation leaked into store folders")
	}
	if fresh.Pinned.Has("a") || fresh.Archived.Has("a") {
		t.Error("snapshot mutation leaked into store flag sets")
	}
}

// =============================================================================
// PIN / ARCHIVE TESTS
// =============================================================================

func TestStore_TogglePin(t *testing.T) {
	ctx := context.Background()
	s := seedStore(t, "a")

	on, err := s.TogglePin(ctx, "a")
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}
	off, err := s.TogglePin(ctx, "a")
	if err != nil || off {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", off, err)
	}
}

func TestStore_SetArchivedUnknown(t *testing.T) {
	s := New()
	err := s.SetArchived(context.Background(), "ghost", true)
	if !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("err = %v, want ErrConversationNotFound", err)
	}
}

// =============================================================================
// PROJECT MEMBERSHIP TESTS
// =============================================================================

func TestStore_ToggleProjectMember(t *testing.T) {
	s := seedStore(t, "a", "b")
	s.SetProjects([]model.Project{
		{ID: "p1", Name: "Research", ConversationIDs: []string{"a"}},
	})

	on, err := s.ToggleProjectMember("p1", "b")
	if err != nil || !on {
		t.Fatalf("adding a new member = (%v, %v), want (true, nil)", on, err)
	}
	off, err := s.ToggleProjectMember("p1", "a")
	if err != nil || off {
		t.Fatalf("removing a member = (%v, %v), want (false, nil)", off, err)
	}

	p, ok := s.Project("p1")
	if !ok {
		t.Fatal("project p1 should exist")
	}
	if len(p.ConversationIDs) != 1 || p.ConversationIDs[0] != "b" {
		t.Errorf("members = %v, want [b]", p.ConversationIDs)
	}
}

func TestStore_ToggleProjectMemberErrors(t *testing.T) {
	s := seedStore(t, "a")
	s.SetProjects([]model.Project{{ID: "p1", Name: "Research"}})

	if _, err := s.ToggleProjectMember("p1", "ghost"); !errors.Is(err, ErrConversationNotFound) {
		t.Errorf("unknown conversation: err = %v, want ErrConversationNotFound", err)
	}
	if _, err := s.ToggleProjectMember("nope", "a"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("unknown project: err = %v, want ErrProjectNotFound", err)
	}
}

// =============================================================================
// FOLDER SORTING TESTS
// =============================================================================

func TestStore_SortFoldersByName(t *testing.T) {
	s := New()
	s.SetFolders([]model.Folder{
		{ID: "f1", Name: "zebra"},
		{ID: "f2", Name: "Apple"},
		{ID: "f3", Name: "mango"},
	})

	if err := s.SortFoldersByName(language.English); err != nil {
		t.Fatalf("SortFoldersByName: %v", err)
	}

	got := s.Folders()
	want := []string{"Apple", "mango", "zebra"}
	for i, name := range want {
		if got[i].Name != name {
			t.Fatalf("folder order = [%s %s %s], want %v", got[0].Name, got[1].Name, got[2].Name, want)
		}
	}
}
