// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar.
package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/quillchat/quill-tui/internal/model"
	"github.com/quillchat/quill-tui/internal/util"
)

// FolderNamespace is the fixed key-value namespace folder definitions live
// under. Readers ignore documents with any other namespace.
const FolderNamespace = "quill.folders"

// folderDocVersion is bumped on incompatible document layout changes.
const folderDocVersion = 1

// =============================================================================
// FOLDER DOCUMENT
// =============================================================================

// folderDoc is the on-disk layout of the folder key-value document.
type folderDoc struct {
	Namespace string         `json:"namespace"`
	Version   int            `json:"version"`
	Folders   []model.Folder `json:"folders"`
}

// FolderFile persists the folder collection to a single JSON document,
// written atomically. Other processes may write the same document; the
// Watcher makes such writes visible.
type FolderFile struct {
	path string
}

// NewFolderFile creates a folder document handle at the given path. The
// file itself is created on first Save.
func NewFolderFile(path string) *FolderFile {
	return &FolderFile{path: path}
}

// Path returns the document's file path.
func (f *FolderFile) Path() string { return f.path }

// Load reads the folder collection. A missing file is an empty collection,
// not an error.
func (f *FolderFile) Load() ([]model.Folder, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read folder document: %w", err)
	}

	var doc folderDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode folder document: %w", err)
	}
	if doc.Namespace != FolderNamespace {
		return nil, fmt.Errorf("folder document has namespace %q, want %q", doc.Namespace, FolderNamespace)
	}
	return doc.Folders, nil
}

// Save writes the folder collection atomically.
func (f *FolderFile) Save(folders []model.Folder) error {
	doc := folderDoc{
		Namespace: FolderNamespace,
		Version:   folderDocVersion,
		Folders:   folders,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode folder document: %w", err)
	}
	if err := util.AtomicWriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("write folder document: %w", err)
	}
	return nil
}
