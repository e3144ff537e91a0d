// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar: the
// conversation list, user-defined folders, and the pin and archive sets.
//
// The sidebar engine never mutates these collections directly; it issues
// mutation intents (pin, archive, move-to-folder, delete, rename) as method
// calls and re-derives its row sequence from the next Snapshot. Snapshots
// are independent copies, so a composition in progress can never observe a
// half-applied mutation.
//
// # Persistence
//
// Conversations, pins, and archive flags persist to a local SQLite database
// (DB), which also serves the incremental loader's paged listing. Folder
// definitions persist to a JSON document under a fixed namespace
// (FolderFile), written atomically; a Watcher picks up external writes to
// that document so the in-memory folder collection stays eventually
// consistent.
package store
