// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the quill TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App     lipgloss.Style
	Sidebar lipgloss.Style
	Preview lipgloss.Style

	// ==========================================================================
	// SECTION HEADER STYLES
	// ==========================================================================

	SectionHeader lipgloss.Style

	// ==========================================================================
	// FOLDER STYLES
	// ==========================================================================

	FolderHeader         lipgloss.Style
	FolderHeaderSelected lipgloss.Style
	FolderCount          lipgloss.Style
	FolderChevron        lipgloss.Style

	// ==========================================================================
	// CONVERSATION ROW STYLES
	// ==========================================================================

	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowTitle    lipgloss.Style
	RowSnippet  lipgloss.Style
	RowTime     lipgloss.Style
	PinMarker   lipgloss.Style

	// ==========================================================================
	// STATUS LINE STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusError  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// PROMPT STYLES
	// ==========================================================================

	RenamePrompt  lipgloss.Style
	ConfirmPrompt lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// Containers
	t.App = lipgloss.NewStyle()

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(Overlay)

	t.Preview = lipgloss.NewStyle().
		Padding(0, 1)

	// Section headers
	t.SectionHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Padding(0, 1)

	// Folder headers
	t.FolderHeader = lipgloss.NewStyle().
		Foreground(Emerald).
		Padding(0, 1)

	t.FolderHeaderSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Emerald).
		Padding(0, 1)

	t.FolderCount = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FolderChevron = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Conversation rows
	t.Row = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.RowSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.RowTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.RowSnippet = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.RowTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PinMarker = lipgloss.NewStyle().
		Foreground(Cyan)

	// Status line
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.StatusError = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(Rose).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Prompts
	t.RenamePrompt = lipgloss.NewStyle().
		Foreground(Amber).
		Padding(0, 1)

	t.ConfirmPrompt = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Padding(0, 1)
}
