// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar implements the list composition engine behind the
// conversation sidebar.
//
// It merges several heterogeneous, mutually-exclusive collections (pinned
// conversations, user-defined folders with their members, unfiled "recent"
// conversations, plus section-header markers) into a single ordered sequence,
// and drives variable-height windowed rendering and incremental loading over
// that sequence.
//
// # Key Types
//
//   - Item: tagged variant of composed rows (Section | FolderHeader |
//     ConversationRow), each with a stable identity Key
//   - Inputs / Compose: pure composition of the ordered row sequence
//   - Window: windowed renderer over an arbitrary row type, with a per-key
//     height cache and prefix-sum scroll bookkeeping
//   - Loader: single-flight incremental load trigger
//
// # Design
//
// Compose is a pure function over immutable snapshots; it holds no state and
// is re-run from scratch whenever any input collection changes. The Window
// matches rows across recompositions by Key, never by index, so row heights
// and open row-level UI state survive reordering. Scroll-event work is
// O(log n): the visible range is found by binary search over lazily
// maintained cumulative-height prefix sums.
package sidebar
