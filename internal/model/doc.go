// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, folders,
// and projects.
//
// These types are plain data: they carry no behavior beyond small ordered-set
// helpers on Folder and the IDSet type used to pass pin/archive/expansion
// state between the store and the sidebar engine.
package model
