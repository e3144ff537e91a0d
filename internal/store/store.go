// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar.
package store

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/quillchat/quill-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

// StoreError is a store-level error comparable with errors.Is.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string { return e.Message }

// Is implements errors.Is support.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// ErrConversationNotFound is returned when a conversation ID is unknown.
var ErrConversationNotFound = &StoreError{Message: "conversation not found"}

// ErrFolderNotFound is returned when a folder ID is unknown.
var ErrFolderNotFound = &StoreError{Message: "folder not found"}

// ErrProjectNotFound is returned when a project ID is unknown.
var ErrProjectNotFound = &StoreError{Message: "project not found"}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot is an immutable copy of the store's collections, safe to hand to
// the composer. Mutating a snapshot never affects the store.
type Snapshot struct {
	Conversations []model.Conversation
	Folders       []model.Folder
	Projects      []model.Project
	Pinned        model.IDSet
	Archived      model.IDSet
}

// =============================================================================
// STORE
// =============================================================================

// Store holds the in-memory entity collections and applies mutation intents
// as single, discrete, idempotent operations. When persistence backends are
// attached, mutations write through to them.
type Store struct {
	mu sync.RWMutex

	conversations []model.Conversation
	index         map[string]int // conversation ID -> position
	folders       []model.Folder
	projects      []model.Project
	pinned        model.IDSet
	archived      model.IDSet

	db      *DB         // optional conversation persistence
	folderf *FolderFile // optional folder persistence
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		index:    make(map[string]int),
		pinned:   model.NewIDSet(),
		archived: model.NewIDSet(),
	}
}

// AttachDB routes conversation mutations through the given database.
func (s *Store) AttachDB(db *DB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.db = db
}

// AttachFolderFile routes folder mutations through the given document.
func (s *Store) AttachFolderFile(f *FolderFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderf = f
}

// Snapshot returns an independent copy of all collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Conversations: append([]model.Conversation(nil), s.conversations...),
		Folders:       make([]model.Folder, len(s.folders)),
		Projects:      make([]model.Project, len(s.projects)),
		Pinned:        s.pinned.Clone(),
		Archived:      s.archived.Clone(),
	}
	for i, f := range s.folders {
		snap.Folders[i] = f.Clone()
	}
	for i, p := range s.projects {
		snap.Projects[i] = p
		snap.Projects[i].ConversationIDs = append([]string(nil), p.ConversationIDs...)
	}
	return snap
}

// Len returns the number of conversations currently loaded.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

// =============================================================================
// CONVERSATION COLLECTION
// =============================================================================

// AppendConversations adds a loaded page to the end of the collection in
// server-delivered order. IDs already present are skipped, so replayed pages
// are harmless.
func (s *Store) AppendConversations(convs []model.Conversation) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for _, c := range convs {
		if _, ok := s.index[c.ID]; ok {
			continue
		}
		s.index[c.ID] = len(s.conversations)
		s.conversations = append(s.conversations, c)
		added++
	}
	return added
}

// ReplaceConversations swaps the whole collection, e.g. after a refresh.
func (s *Store) ReplaceConversations(convs []model.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = append([]model.Conversation(nil), convs...)
	s.reindex()
}

// Conversation looks up a conversation by ID.
func (s *Store) Conversation(id string) (model.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return model.Conversation{}, false
	}
	return s.conversations[i], true
}

// RenameConversation sets a conversation's title.
func (s *Store) RenameConversation(ctx context.Context, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrConversationNotFound
	}
	s.conversations[i].Title = title
	if s.db != nil {
		return s.db.Rename(ctx, id, title)
	}
	return nil
}

// DeleteConversation removes a conversation and every reference to it:
// folder memberships, pin and archive flags.
func (s *Store) DeleteConversation(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrConversationNotFound
	}
	s.conversations = append(s.conversations[:i], s.conversations[i+1:]...)
	s.reindex()
	s.pinned.Remove(id)
	s.archived.Remove(id)

	changedFolders := false
	for fi := range s.folders {
		if s.folders[fi].Remove(id) {
			changedFolders = true
		}
	}

	if s.db != nil {
		if err := s.db.Delete(ctx, id); err != nil {
			return err
		}
	}
	if changedFolders {
		return s.persistFolders()
	}
	return nil
}

// =============================================================================
// PIN AND ARCHIVE INTENTS
// =============================================================================

// SetPinned pins or unpins a conversation. Idempotent.
func (s *Store) SetPinned(ctx context.Context, id string, pinned bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrConversationNotFound
	}
	if pinned {
		s.pinned.Add(id)
	} else {
		s.pinned.Remove(id)
	}
	if s.db != nil {
		return s.db.SetPinned(ctx, id, pinned)
	}
	return nil
}

// TogglePin flips a conversation's pin state and reports the new state.
func (s *Store) TogglePin(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	pinned := s.pinned.Has(id)
	s.mu.RUnlock()

	err := s.SetPinned(ctx, id, !pinned)
	return !pinned, err
}

// SetArchived archives or unarchives a conversation. Idempotent.
func (s *Store) SetArchived(ctx context.Context, id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrConversationNotFound
	}
	if archived {
		s.archived.Add(id)
	} else {
		s.archived.Remove(id)
	}
	if s.db != nil {
		return s.db.SetArchived(ctx, id, archived)
	}
	return nil
}

// SetFlags seeds the pin and archive sets, e.g. from the database at
// startup.
func (s *Store) SetFlags(pinned, archived model.IDSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pinned = pinned.Clone()
	s.archived = archived.Clone()
}

// =============================================================================
// FOLDER INTENTS
// =============================================================================

// CreateFolder adds an empty folder and returns it.
func (s *Store) CreateFolder(name, color string) (model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := model.NewFolder(name, color)
	s.folders = append(s.folders, f)
	return f, s.persistFolders()
}

// RenameFolder sets a folder's name.
func (s *Store) RenameFolder(id, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders[i].Name = name
			return s.persistFolders()
		}
	}
	return ErrFolderNotFound
}

// DeleteFolder removes a folder. Its members become unfiled; the
// conversations themselves are untouched.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.folders {
		if s.folders[i].ID == id {
			s.folders = append(s.folders[:i], s.folders[i+1:]...)
			return s.persistFolders()
		}
	}
	return ErrFolderNotFound
}

// MoveToFolder files a conversation under folderID, or unfiles it when
// folderID is empty. The ID is removed from every other folder first, which
// is what keeps folder memberships pairwise disjoint.
func (s *Store) MoveToFolder(id, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return ErrConversationNotFound
	}

	var target *model.Folder
	for i := range s.folders {
		if s.folders[i].ID == folderID {
			target = &s.folders[i]
			break
		}
	}
	if folderID != "" && target == nil {
		return ErrFolderNotFound
	}

	for i := range s.folders {
		if s.folders[i].ID != folderID {
			s.folders[i].Remove(id)
		}
	}
	if target != nil {
		target.Add(id)
	}
	return s.persistFolders()
}

// SetFolders replaces the folder collection, e.g. when the watcher reports
// an external write to the folder document.
func (s *Store) SetFolders(folders []model.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.folders = make([]model.Folder, len(folders))
	for i, f := range folders {
		s.folders[i] = f.Clone()
	}
}

// Folders returns a copy of the folder collection.
func (s *Store) Folders() []model.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Folder, len(s.folders))
	for i, f := range s.folders {
		out[i] = f.Clone()
	}
	return out
}

// SortFoldersByName orders folders by locale-aware name comparison. Folder
// collection order is display order, so this is itself a mutation intent.
func (s *Store) SortFoldersByName(tag language.Tag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := collate.New(tag, collate.IgnoreCase)
	sort.SliceStable(s.folders, func(i, j int) bool {
		return c.CompareString(s.folders[i].Name, s.folders[j].Name) < 0
	})
	return s.persistFolders()
}

// =============================================================================
// PROJECTS
// =============================================================================

// SetProjects replaces the project collection.
func (s *Store) SetProjects(projects []model.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = append([]model.Project(nil), projects...)
}

// ToggleProjectMember flips a conversation's membership in a project and
// reports the new state.
func (s *Store) ToggleProjectMember(projectID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[id]; !ok {
		return false, ErrConversationNotFound
	}
	for pi := range s.projects {
		if s.projects[pi].ID != projectID {
			continue
		}
		p := &s.projects[pi]
		for i, member := range p.ConversationIDs {
			if member == id {
				p.ConversationIDs = append(p.ConversationIDs[:i], p.ConversationIDs[i+1:]...)
				return false, nil
			}
		}
		p.ConversationIDs = append(p.ConversationIDs, id)
		return true, nil
	}
	return false, ErrProjectNotFound
}

// Project looks up a project by ID.
func (s *Store) Project(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return model.Project{}, false
}

// =============================================================================
// INTERNAL
// =============================================================================

// persistFolders writes the folder collection through to the folder
// document. Callers hold the write lock.
func (s *Store) persistFolders() error {
	if s.folderf == nil {
		return nil
	}
	return s.folderf.Save(s.folders)
}

// reindex rebuilds the ID index. Callers hold the write lock.
func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.conversations))
	for i, c := range s.conversations {
		s.index[c.ID] = i
	}
}
