// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the quill TUI.
//
// All colors use Lip Gloss AdaptiveColor so the palette adjusts to light
// and dark terminal backgrounds automatically.
//
// # Key Types
//
//   - Theme: All styled components, built once at startup
//
// # Usage
//
// Create a theme and use its styles:
//
//	theme := styles.NewTheme()
//	out := theme.SectionHeader.Render("Pinned")
package styles
