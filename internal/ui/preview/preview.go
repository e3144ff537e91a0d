// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package preview

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/quillchat/quill-tui/internal/model"
	"github.com/quillchat/quill-tui/internal/ui/styles"
)

// =============================================================================
// PREVIEW MODEL
// =============================================================================

// Model renders the selected conversation's last message as markdown.
type Model struct {
	theme *styles.Theme

	conv   *model.Conversation
	width  int
	height int
	wrap   int
	rend   *glamour.TermRenderer

	// Cache of the last render, keyed by conversation ID, message content,
	// and wrap width.
	cacheID    string
	cacheMsg   string
	cacheWrap  int
	cacheLines string
}

// New creates an empty preview pane.
func New(theme *styles.Theme) *Model {
	return &Model{theme: theme}
}

// SetSize lays out the pane. Width changes invalidate the renderer because
// Glamour bakes word wrap into the renderer instance.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	if wrap != m.wrap {
		m.wrap = wrap
		m.rend = nil
	}
}

// SetConversation points the preview at a conversation. Passing nil clears
// the pane.
func (m *Model) SetConversation(c *model.Conversation) {
	m.conv = c
}

// View renders the pane.
func (m *Model) View() string {
	if m.conv == nil {
		return m.theme.Preview.Render(m.theme.RowSnippet.Render("select a conversation"))
	}

	header := m.theme.SectionHeader.Render(m.conv.DisplayTitle())
	body := m.renderBody()
	return m.theme.Preview.Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

func (m *Model) renderBody() string {
	if m.conv.LastMessage == "" {
		return m.theme.RowSnippet.Render("(empty)")
	}
	if m.cacheID == m.conv.ID && m.cacheMsg == m.conv.LastMessage && m.cacheWrap == m.wrap {
		return m.cacheLines
	}

	out := m.renderMarkdown(m.conv.LastMessage)
	m.cacheID = m.conv.ID
	m.cacheMsg = m.conv.LastMessage
	m.cacheWrap = m.wrap
	m.cacheLines = out
	return out
}

// renderMarkdown renders markdown for terminal display. Returns the raw
// content if the renderer is unavailable or fails.
func (m *Model) renderMarkdown(content string) string {
	if m.rend == nil {
		rend, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.wrap),
		)
		if err != nil {
			return content
		}
		m.rend = rend
	}
	rendered, err := m.rend.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
