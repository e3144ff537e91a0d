// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sidebar provides the conversation sidebar component for the TUI.
package sidebar

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	core "github.com/quillchat/quill-tui/internal/sidebar"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the sidebar.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case FoldersReloadedMsg:
		m.store.SetFolders(msg.Folders)
		m.recompose()
		m.setStatus("folders reloaded", false)
		return m, nil

	case StatusMsg:
		m.setStatus(msg.Text, msg.IsError)
		return m, nil

	case spinner.TickMsg:
		if !m.loader.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.mode {
		case modeRename:
			return m.updateRename(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeMove:
			return m.updateMove(msg)
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m *Model) handlePageLoaded(msg pageLoadedMsg) (*Model, tea.Cmd) {
	m.loader.Complete(msg.hasMore, msg.err)
	if msg.err != nil {
		m.setStatus(fmt.Sprintf("load failed: %v", msg.err), true)
		return m, nil
	}
	m.store.AppendConversations(msg.convs)
	m.recompose()

	// The first pages may not fill the viewport yet.
	if cmd := m.maybeLoadMore(); cmd != nil {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, nil
}

// =============================================================================
// NORMAL MODE
// =============================================================================

func (m *Model) updateNormal(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m.afterScroll()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m.afterScroll()

	case key.Matches(msg, m.keys.PageUp):
		m.win.ScrollBy(-m.win.ViewportHeight())
		m.snapCursorToWindow()
		return m.afterScroll()

	case key.Matches(msg, m.keys.PageDown):
		m.win.ScrollBy(m.win.ViewportHeight())
		m.snapCursorToWindow()
		return m.afterScroll()

	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
		m.clampCursor()
		m.win.SetScrollTop(0)
		return m.afterScroll()

	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.items) - 1
		m.clampCursor()
		m.win.ScrollIndexIntoView(m.cursor)
		return m.afterScroll()

	case key.Matches(msg, m.keys.Select):
		return m.handleSelect()

	case key.Matches(msg, m.keys.Pin):
		return m.handlePin()

	case key.Matches(msg, m.keys.Archive):
		return m.handleArchive()

	case key.Matches(msg, m.keys.Rename):
		return m.startRename()

	case key.Matches(msg, m.keys.Delete):
		return m.startConfirmDelete()

	case key.Matches(msg, m.keys.Move):
		return m.startMove()

	case key.Matches(msg, m.keys.Sort):
		return m.handleSortFolders()

	case key.Matches(msg, m.keys.Project):
		m.cycleProject()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleSelect() (*Model, tea.Cmd) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return m, nil
	}
	switch it := m.items[m.cursor].(type) {
	case core.FolderHeader:
		m.expanded.Toggle(it.ID)
		m.recompose()
		return m, nil
	case core.ConversationRow:
		conv := it.Conversation
		return m, func() tea.Msg { return SelectedMsg{Conversation: conv} }
	}
	return m, nil
}

func (m *Model) handlePin() (*Model, tea.Cmd) {
	conv, ok := m.Selected()
	if !ok {
		return m, nil
	}
	pinned, err := m.store.TogglePin(context.Background(), conv.ID)
	if err != nil {
		m.setStatus(fmt.Sprintf("pin failed: %v", err), true)
		return m, nil
	}
	m.recompose()
	if pinned {
		m.setStatus("pinned "+conv.DisplayTitle(), false)
	} else {
		m.setStatus("unpinned "+conv.DisplayTitle(), false)
	}
	return m, nil
}

func (m *Model) handleArchive() (*Model, tea.Cmd) {
	conv, ok := m.Selected()
	if !ok {
		return m, nil
	}
	if err := m.store.SetArchived(context.Background(), conv.ID, true); err != nil {
		m.setStatus(fmt.Sprintf("archive failed: %v", err), true)
		return m, nil
	}
	m.recompose()
	m.setStatus("archived "+conv.DisplayTitle(), false)
	return m, nil
}

func (m *Model) handleSortFolders() (*Model, tea.Cmd) {
	if err := m.store.SortFoldersByName(language.English); err != nil {
		m.setStatus(fmt.Sprintf("sort failed: %v", err), true)
		return m, nil
	}
	m.recompose()
	m.setStatus("folders sorted", false)
	return m, nil
}

func (m *Model) cycleProject() {
	snap := m.store.Snapshot()
	projects := snap.Projects

	if len(projects) == 0 {
		m.project = nil
		return
	}
	switch {
	case m.project == nil:
		m.project = &projects[0]
	default:
		next := -1
		for i := range projects {
			if projects[i].ID == m.project.ID {
				next = i + 1
				break
			}
		}
		if next < 0 || next >= len(projects) {
			m.project = nil
		} else {
			m.project = &projects[next]
		}
	}
	m.recompose()
	if m.project != nil {
		m.setStatus("project: "+m.project.Name, false)
	} else {
		m.setStatus("project filter off", false)
	}
}

// =============================================================================
// RENAME MODE
// =============================================================================

func (m *Model) startRename() (*Model, tea.Cmd) {
	conv, ok := m.Selected()
	if !ok {
		return m, nil
	}
	m.mode = modeRename
	m.actionID = conv.ID
	m.renameInput.SetValue(conv.Title)
	m.renameInput.CursorEnd()
	return m, m.renameInput.Focus()
}

func (m *Model) updateRename(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.exitMode()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		title := m.renameInput.Value()
		if title != "" {
			if err := m.store.RenameConversation(context.Background(), m.actionID, title); err != nil {
				m.setStatus(fmt.Sprintf("rename failed: %v", err), true)
			} else {
				m.recompose()
				m.setStatus("renamed", false)
			}
		}
		m.exitMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// =============================================================================
// DELETE CONFIRMATION MODE
// =============================================================================

func (m *Model) startConfirmDelete() (*Model, tea.Cmd) {
	conv, ok := m.Selected()
	if !ok {
		return m, nil
	}
	m.mode = modeConfirmDelete
	m.actionID = conv.ID
	return m, nil
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if err := m.store.DeleteConversation(context.Background(), m.actionID); err != nil {
			m.setStatus(fmt.Sprintf("delete failed: %v", err), true)
		} else {
			m.recompose()
			m.setStatus("deleted", false)
		}
		m.exitMode()
	case "n", "N", "esc":
		m.exitMode()
	}
	return m, nil
}

// =============================================================================
// MOVE-TO-FOLDER MODE
// =============================================================================

func (m *Model) startMove() (*Model, tea.Cmd) {
	conv, ok := m.Selected()
	if !ok {
		return m, nil
	}
	folders := m.store.Folders()
	if len(folders) == 0 {
		m.setStatus("no folders", true)
		return m, nil
	}
	m.mode = modeMove
	m.actionID = conv.ID
	m.moveFolders = folders
	m.moveIndex = 0
	return m, nil
}

func (m *Model) updateMove(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.exitMode()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.moveIndex > 0 {
			m.moveIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		// The index one past the folder list means "unfiled".
		if m.moveIndex < len(m.moveFolders) {
			m.moveIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		folderID := ""
		name := "unfiled"
		if m.moveIndex < len(m.moveFolders) {
			folderID = m.moveFolders[m.moveIndex].ID
			name = m.moveFolders[m.moveIndex].Name
		}
		if err := m.store.MoveToFolder(m.actionID, folderID); err != nil {
			m.setStatus(fmt.Sprintf("move failed: %v", err), true)
		} else {
			m.recompose()
			m.setStatus("moved to "+name, false)
		}
		m.exitMode()
		return m, nil
	}
	return m, nil
}

// =============================================================================
// CURSOR AND STATUS HELPERS
// =============================================================================

func (m *Model) exitMode() {
	m.mode = modeNormal
	m.actionID = ""
	m.moveFolders = nil
	m.renameInput.Blur()
}

// moveCursor steps the cursor to the next selectable row in the given
// direction, leaving it in place at either edge.
func (m *Model) moveCursor(delta int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	i := m.cursor
	for {
		i += delta
		if i < 0 || i >= n {
			return
		}
		if selectable(m.items[i]) {
			m.cursor = i
			return
		}
	}
}

// snapCursorToWindow pulls the cursor into the visible range after a page
// scroll so it never points off-screen.
func (m *Model) snapCursorToWindow() {
	first, last, ok := m.win.Range()
	if !ok {
		return
	}
	if m.cursor < first {
		m.cursor = first
	} else if m.cursor > last {
		m.cursor = last
	}
	m.clampCursor()
}

// afterScroll finishes any cursor movement: keeps the cursor visible and
// kicks the incremental loader when the window nears the end.
func (m *Model) afterScroll() (*Model, tea.Cmd) {
	m.win.ScrollIndexIntoView(m.cursor)
	if cmd := m.maybeLoadMore(); cmd != nil {
		return m, tea.Batch(cmd, m.spinner.Tick)
	}
	return m, nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
}
