// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation sidebar component for the TUI.
package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	core "github.com/quillchat/quill-tui/internal/sidebar"
	"github.com/quillchat/quill-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the sidebar. Only rows inside the materialized window are
// rendered; their real heights are fed back into the window so subsequent
// frames use measured heights instead of estimates.
func (m *Model) View() string {
	body := m.viewList()
	status := m.viewStatus()
	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m *Model) viewList() string {
	vp := m.win.ViewportHeight()
	if vp <= 0 {
		return ""
	}

	first, last, ok := m.win.Range()
	if !ok {
		return m.padLines([]string{m.theme.RowSnippet.Render("no conversations")}, vp)
	}

	var lines []string
	for i := first; i <= last; i++ {
		rendered := m.renderItem(i)
		m.win.ObserveHeight(m.win.KeyAt(i), lipgloss.Height(rendered))
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	// The materialized block starts `leading` rows above the viewport; drop
	// the off-screen prefix and keep one viewport's worth of lines.
	leading, _ := m.win.Spacers(first, last)
	skip := m.win.ScrollTop() - leading
	if skip < 0 {
		skip = 0
	}
	if skip > len(lines) {
		skip = len(lines)
	}
	visible := lines[skip:]
	if len(visible) > vp {
		visible = visible[:vp]
	}
	return m.padLines(visible, vp)
}

// padLines bottom-pads to the viewport height so the status line stays put.
func (m *Model) padLines(lines []string, vp int) string {
	for len(lines) < vp {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// ROW RENDERING
// =============================================================================

func (m *Model) renderItem(i int) string {
	selected := i == m.cursor
	switch it := m.win.ItemAt(i).(type) {
	case core.Section:
		return m.theme.SectionHeader.Render(strings.ToUpper(it.Title))
	case core.FolderHeader:
		return m.renderFolderHeader(it, selected)
	case core.ConversationRow:
		return m.renderConversation(it, selected)
	}
	return ""
}

func (m *Model) renderFolderHeader(f core.FolderHeader, selected bool) string {
	chevron := "▸"
	if f.Expanded {
		chevron = "▾"
	}

	dot := ""
	if f.Color != "" {
		dot = lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color)).Render("●") + " "
	}

	count := m.theme.FolderCount.Render(fmt.Sprintf(" (%d)", f.Count))
	name := util.TruncateWidth(f.Name, m.width-8)

	line := m.theme.FolderChevron.Render(chevron) + " " + dot + name + count
	if selected {
		return m.theme.FolderHeaderSelected.Render(chevron + " " + util.TruncateWidth(f.Name, m.width-8) + fmt.Sprintf(" (%d)", f.Count))
	}
	return m.theme.FolderHeader.Render(line)
}

func (m *Model) renderConversation(r core.ConversationRow, selected bool) string {
	indent := ""
	if r.InFolder {
		indent = "  "
	}

	marker := ""
	if m.pinned.Has(r.Conversation.ID) {
		marker = m.theme.PinMarker.Render("● ")
	}

	avail := m.width - 4 - len(indent)
	title := util.TruncateWidth(r.Conversation.DisplayTitle(), avail)
	snippet := util.TruncateWidth(util.FirstLine(r.Conversation.LastMessage), avail)

	if selected {
		top := m.theme.RowSelected.Width(m.width).Render(indent + marker + title)
		bottom := m.theme.RowSelected.Width(m.width).Render(indent + "  " + snippet)
		return top + "\n" + bottom
	}
	top := m.theme.Row.Render(indent + marker + m.theme.RowTitle.Render(title))
	bottom := m.theme.Row.Render(indent + "  " + m.theme.RowSnippet.Render(snippet))
	return top + "\n" + bottom
}

// =============================================================================
// STATUS LINE
// =============================================================================

func (m *Model) viewStatus() string {
	switch m.mode {
	case modeRename:
		return m.theme.RenamePrompt.Render(m.renameInput.View())

	case modeConfirmDelete:
		return m.theme.ConfirmPrompt.Render("delete conversation? (y/n)")

	case modeMove:
		name := "unfiled"
		if m.moveIndex < len(m.moveFolders) {
			name = m.moveFolders[m.moveIndex].Name
		}
		return m.theme.RenamePrompt.Render("move to: " + name + "  ↑/↓ pick, Enter confirm, Esc cancel")
	}

	if m.statusMsg != "" {
		if m.statusErr {
			return m.theme.StatusError.Render(util.TruncateWidth(m.statusMsg, m.width-2))
		}
		return m.theme.StatusBar.Render(util.TruncateWidth(m.statusMsg, m.width-2))
	}

	left := fmt.Sprintf("%d conversations", m.store.Len())
	if m.project != nil {
		left += " · " + m.project.Name
	}
	if m.loader.Loading() {
		left = m.spinner.View() + " " + left
	} else if !m.loader.HasMore() {
		left += " · all loaded"
	}
	return m.theme.StatusBar.Render(util.TruncateWidth(left, m.width-2))
}
